// Package mood infers the user's emotional state from free-form text with
// keyword buckets. It backs the LLM mood classifier as the always-available
// fallback and never errors.
package mood

import (
	"strings"

	"github.com/linmiao/lumipet/backend/internal/model/pet"
)

// Decision is the inferred mood with its keyword score. Score zero means
// nothing matched and the mood defaulted to neutral.
type Decision struct {
	Mood  pet.Mood
	Score int
}

var keywordBuckets = map[pet.Mood][]string{
	pet.MoodHappy: {
		"happy", "glad", "great day", "wonderful", "joy", "excited", "amazing",
		"awesome", "thanks", "thank you", "love", "smile", "yay", "lol",
	},
	pet.MoodSad: {
		"sad", "unhappy", "down", "cry", "crying", "lonely", "miss", "hurt",
		"depressed", "upset", "heartbroken", "blue",
	},
	pet.MoodFrustrated: {
		"frustrated", "annoyed", "angry", "mad", "furious", "fed up",
		"sick of", "hate", "argh", "ugh",
	},
	pet.MoodTired: {
		"tired", "exhausted", "sleepy", "drained", "worn out", "no energy",
		"burned out", "burnt out", "can't focus",
	},
	pet.MoodOverwhelmed: {
		"overwhelmed", "too much", "so much to do", "drowning", "swamped",
		"deadline", "pressure", "can't keep up",
	},
	pet.MoodAnxious: {
		"anxious", "worried", "nervous", "scared", "afraid", "panic",
		"stress", "stressed", "uneasy", "on edge",
	},
}

// bucketOrder breaks score ties deterministically, most specific first.
var bucketOrder = []pet.Mood{
	pet.MoodOverwhelmed,
	pet.MoodAnxious,
	pet.MoodFrustrated,
	pet.MoodTired,
	pet.MoodSad,
	pet.MoodHappy,
}

// Analyze scores the text against every bucket and returns the best match,
// or neutral when nothing matches.
func Analyze(text string) Decision {
	normalized := strings.TrimSpace(strings.ToLower(text))
	if normalized == "" {
		return Decision{Mood: pet.MoodNeutral}
	}

	scores := make(map[pet.Mood]int)
	for mood, keywords := range keywordBuckets {
		for _, word := range keywords {
			if strings.Contains(normalized, word) {
				scores[mood] += 3
			}
		}
	}

	best := Decision{Mood: pet.MoodNeutral}
	for _, mood := range bucketOrder {
		if score := scores[mood]; score > best.Score {
			best = Decision{Mood: mood, Score: score}
		}
	}
	return best
}

// Guidance renders a tone hint for the remote framing, or "" for neutral.
func Guidance(d Decision) string {
	switch d.Mood {
	case pet.MoodSad:
		return "The user seems sad. Comfort them gently and stay close."
	case pet.MoodFrustrated:
		return "The user seems frustrated. Stay calm and steady, don't push."
	case pet.MoodTired:
		return "The user seems tired. Suggest rest, keep the energy low."
	case pet.MoodOverwhelmed:
		return "The user seems overwhelmed. Slow things down, one small step."
	case pet.MoodAnxious:
		return "The user seems anxious. Be reassuring and grounded."
	case pet.MoodHappy:
		return "The user is in a good mood. Match their energy."
	}
	return ""
}
