package mood

import (
	"testing"

	"github.com/linmiao/lumipet/backend/internal/model/pet"
)

func TestAnalyzeBuckets(t *testing.T) {
	cases := []struct {
		input string
		want  pet.Mood
	}{
		{"I'm so happy today!", pet.MoodHappy},
		{"feeling really sad and lonely", pet.MoodSad},
		{"ugh, I'm so annoyed with this", pet.MoodFrustrated},
		{"completely exhausted, no energy left", pet.MoodTired},
		{"there's just too much to do, I'm drowning", pet.MoodOverwhelmed},
		{"I'm worried and stressed about tomorrow", pet.MoodAnxious},
		{"the sky is grey", pet.MoodNeutral},
		{"", pet.MoodNeutral},
	}

	for _, tc := range cases {
		got := Analyze(tc.input)
		if got.Mood != tc.want {
			t.Errorf("Analyze(%q) = %s (score %d), want %s", tc.input, got.Mood, got.Score, tc.want)
		}
	}
}

func TestAnalyzeNeutralHasZeroScore(t *testing.T) {
	if d := Analyze("nothing emotional here"); d.Score != 0 {
		t.Fatalf("neutral decision should carry score 0, got %d", d.Score)
	}
}

func TestGuidance(t *testing.T) {
	if g := Guidance(Decision{Mood: pet.MoodSad, Score: 3}); g == "" {
		t.Fatal("sad mood should produce framing guidance")
	}
	if g := Guidance(Decision{Mood: pet.MoodNeutral}); g != "" {
		t.Fatalf("neutral mood should produce no guidance, got %q", g)
	}
}
