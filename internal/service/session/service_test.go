package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/linmiao/lumipet/backend/internal/engine"
	"github.com/linmiao/lumipet/backend/internal/model/persona"
	"github.com/linmiao/lumipet/backend/internal/model/pet"
	sessionmodel "github.com/linmiao/lumipet/backend/internal/model/session"
	session "github.com/linmiao/lumipet/backend/internal/service/session"
)

func newService() *session.Service {
	store := persona.NewMemoryStore(persona.Seed())
	return session.NewService(store, engine.Options{})
}

func TestServiceCreateAndGetSession(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	sess, err := svc.CreateSession(ctx, "buddy-dog")
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}

	got, err := svc.GetSession(ctx, sess.ID)
	if err != nil {
		t.Fatalf("GetSession err: %v", err)
	}
	if got.PersonaID != "buddy-dog" {
		t.Fatalf("persona ID: got %s", got.PersonaID)
	}
}

func TestServiceCreateSessionValidation(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	if _, err := svc.CreateSession(ctx, ""); !errors.Is(err, session.ErrPersonaRequired) {
		t.Fatalf("empty persona: got %v", err)
	}
	if _, err := svc.CreateSession(ctx, "dragon"); !errors.Is(err, session.ErrPersonaUnknown) {
		t.Fatalf("unknown persona: got %v", err)
	}
}

func TestServiceInteractRecordsTranscript(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	sess, _ := svc.CreateSession(ctx, "buddy-dog")

	result, stats, err := svc.Interact(ctx, sess.ID, engine.Interaction{
		Input:  "feed",
		Source: sessionmodel.SourceUI,
	})
	if err != nil {
		t.Fatalf("Interact err: %v", err)
	}
	if result.Animation != pet.AnimationEating {
		t.Fatalf("animation: got %s", result.Animation)
	}
	if stats.Hunger != 75 {
		t.Fatalf("hunger: got %d want 75", stats.Hunger)
	}

	records, err := svc.Transcript(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Transcript err: %v", err)
	}
	if len(records) != 1 || records[0].Input != "feed" {
		t.Fatalf("transcript: %+v", records)
	}
}

func TestServiceSessionStateIncludesMoods(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	sess, _ := svc.CreateSession(ctx, "luna-cat")
	if _, err := svc.RecordMood(ctx, sess.ID, pet.MoodTired); err != nil {
		t.Fatalf("RecordMood err: %v", err)
	}

	state, err := svc.SessionState(ctx, sess.ID)
	if err != nil {
		t.Fatalf("SessionState err: %v", err)
	}
	if state.Stats != pet.DefaultStats() {
		t.Fatalf("fresh session stats: %+v", state.Stats)
	}
	if len(state.MoodHistory) != 1 || state.MoodHistory[0].Mood != pet.MoodTired {
		t.Fatalf("mood history: %+v", state.MoodHistory)
	}
}

func TestServiceUnknownSession(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	if _, _, err := svc.Interact(ctx, "missing", engine.Interaction{Input: "hi"}); !errors.Is(err, session.ErrSessionNotFound) {
		t.Fatalf("Interact: got %v", err)
	}
	if _, err := svc.SessionState(ctx, "missing"); !errors.Is(err, session.ErrSessionNotFound) {
		t.Fatalf("SessionState: got %v", err)
	}
	if _, err := svc.Transcript(ctx, "missing"); !errors.Is(err, session.ErrSessionNotFound) {
		t.Fatalf("Transcript: got %v", err)
	}
}
