package pet

import "time"

// Mood is a user-reported or inferred emotional state for the mood journey.
type Mood string

const (
	MoodHappy       Mood = "happy"
	MoodSad         Mood = "sad"
	MoodFrustrated  Mood = "frustrated"
	MoodTired       Mood = "tired"
	MoodOverwhelmed Mood = "overwhelmed"
	MoodAnxious     Mood = "anxious"
	MoodNeutral     Mood = "neutral"
)

// ParseMood validates a mood label from the API surface.
func ParseMood(s string) (Mood, bool) {
	switch Mood(s) {
	case MoodHappy, MoodSad, MoodFrustrated, MoodTired, MoodOverwhelmed, MoodAnxious, MoodNeutral:
		return Mood(s), true
	}
	return "", false
}

// MoodEntry is one append-only mood journey record.
type MoodEntry struct {
	Mood      Mood      `json:"mood"`
	Timestamp time.Time `json:"timestamp"`
}
