package pet

// WellbeingVector tracks the companion's four wellbeing stats. Every field
// stays within [0,100]; mutation goes through Apply, never direct writes.
type WellbeingVector struct {
	Hunger    int `json:"hunger"`
	Thirst    int `json:"thirst"`
	Happiness int `json:"happiness"`
	Energy    int `json:"energy"`
}

// StatDelta is a partial update to a WellbeingVector. Zero fields leave the
// corresponding stat untouched.
type StatDelta struct {
	Hunger    int `json:"hunger,omitempty"`
	Thirst    int `json:"thirst,omitempty"`
	Happiness int `json:"happiness,omitempty"`
	Energy    int `json:"energy,omitempty"`
}

// IsZero reports whether the delta changes nothing.
func (d StatDelta) IsZero() bool {
	return d == StatDelta{}
}

// DefaultStats returns the session-start wellbeing values.
func DefaultStats() WellbeingVector {
	return WellbeingVector{Hunger: 50, Thirst: 50, Happiness: 50, Energy: 80}
}

// Apply returns the vector with the delta added, each field clamped to
// [0,100]. Pure; the receiver value is not modified.
func Apply(v WellbeingVector, d StatDelta) WellbeingVector {
	return WellbeingVector{
		Hunger:    clamp(v.Hunger + d.Hunger),
		Thirst:    clamp(v.Thirst + d.Thirst),
		Happiness: clamp(v.Happiness + d.Happiness),
		Energy:    clamp(v.Energy + d.Energy),
	}
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
