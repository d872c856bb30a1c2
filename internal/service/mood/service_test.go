package mood

import (
	"context"
	"testing"

	"github.com/linmiao/lumipet/backend/internal/model/pet"
)

func TestInferHeuristicWhenDisabled(t *testing.T) {
	svc, err := NewService(context.Background(), nil, Config{Enabled: true})
	if err != nil {
		t.Fatalf("NewService err: %v", err)
	}
	if svc.Enabled() {
		t.Fatal("service without a chat model must stay on the heuristic")
	}

	g := svc.Infer(context.Background(), "I'm so sad and lonely tonight")
	if g.Mood != pet.MoodSad {
		t.Fatalf("mood: got %s want sad", g.Mood)
	}
	if g.Hint == "" {
		t.Fatal("non-neutral mood should produce a framing hint")
	}
}

func TestInferNeutralForPlainText(t *testing.T) {
	svc, _ := NewService(context.Background(), nil, Config{})

	g := svc.Infer(context.Background(), "what time is it")
	if g.Mood != pet.MoodNeutral {
		t.Fatalf("mood: got %s want neutral", g.Mood)
	}
	if g.Hint != "" {
		t.Fatalf("neutral mood should carry no hint, got %q", g.Hint)
	}
}

func TestParseClassifierOutput(t *testing.T) {
	payload, err := parseClassifierOutput("Sure! Here you go:\n{\"mood\": \"tired\", \"confidence\": 0.8, \"reason\": \"mentions exhaustion\"}\nHope that helps.")
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	if payload.Mood != "tired" || payload.Confidence != 0.8 {
		t.Fatalf("payload: %+v", payload)
	}

	if _, err := parseClassifierOutput("no json here"); err == nil {
		t.Fatal("expected error for missing json object")
	}
}
