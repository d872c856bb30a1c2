package session

import "time"

// Session is one companion session: a single user bound to one persona. All
// engine state (wellbeing, cooldowns, response cache) hangs off the session.
type Session struct {
	ID        string    `json:"id"`
	PersonaID string    `json:"personaId"`
	CreatedAt time.Time `json:"createdAt"`
}
