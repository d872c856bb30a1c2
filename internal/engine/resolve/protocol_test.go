package resolve

import "testing"

func TestParseLabeledPlainText(t *testing.T) {
	got := ParseLabeled("Just a friendly line. 🐾")
	if got.Display != "Just a friendly line. 🐾" {
		t.Fatalf("display: got %q", got.Display)
	}
	if got.Voice != "" {
		t.Fatalf("voice should be empty for plain text, got %q", got.Voice)
	}
	if got.VoiceOrDisplay() != got.Display {
		t.Fatal("plain text should be spoken as-is")
	}
}

func TestParseLabeledExtractsVoice(t *testing.T) {
	raw := "[VOICE]: \"Dinner is served!\"\n[VISUAL]: tail wagging\n[TEXT]: 🦴 Meal time\n[ACTION]: try playing fetch next"

	got := ParseLabeled(raw)
	if got.Voice != "Dinner is served!" {
		t.Fatalf("voice: got %q", got.Voice)
	}
	if got.Visual != "tail wagging" {
		t.Fatalf("visual: got %q", got.Visual)
	}
	if got.Text != "🦴 Meal time" {
		t.Fatalf("text: got %q", got.Text)
	}
	if got.Action != "try playing fetch next" {
		t.Fatalf("action: got %q", got.Action)
	}
	if got.VoiceOrDisplay() != "Dinner is served!" {
		t.Fatal("speech should prefer the [VOICE] line")
	}
}

func TestParseLabeledKeepsNonVoiceLinesVerbatim(t *testing.T) {
	raw := "[VOICE]: \"hi\"\n[PROGRESS]: ▓▓░░ step 2 of 4"

	got := ParseLabeled(raw)
	if got.Progress != "▓▓░░ step 2 of 4" {
		t.Fatalf("progress: got %q", got.Progress)
	}
	// The [VOICE] line is consumed; labeled display lines stay verbatim.
	if got.Display != "[PROGRESS]: ▓▓░░ step 2 of 4" {
		t.Fatalf("display: got %q", got.Display)
	}
}
