package session

import (
	"time"

	"github.com/linmiao/lumipet/backend/internal/model/pet"
)

// Source tags where an interaction originated.
type Source string

const (
	SourceUI    Source = "ui"
	SourceChat  Source = "chat"
	SourceVoice Source = "voice"
)

// ParseSource validates a source tag; unknown values default to chat.
func ParseSource(s string) Source {
	switch Source(s) {
	case SourceUI, SourceChat, SourceVoice:
		return Source(s)
	}
	return SourceChat
}

// InteractionRecord persists one resolved interaction for audit/debug.
type InteractionRecord struct {
	ID        string           `json:"id"`
	SessionID string           `json:"sessionId"`
	Source    Source           `json:"source"`
	Input     string           `json:"input"`
	Result    pet.ActionResult `json:"result"`
	CreatedAt time.Time        `json:"createdAt"`
}
