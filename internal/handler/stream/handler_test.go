package stream_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/linmiao/lumipet/backend/internal/engine"
	"github.com/linmiao/lumipet/backend/internal/handler/stream"
	"github.com/linmiao/lumipet/backend/internal/model/persona"
	sessionservice "github.com/linmiao/lumipet/backend/internal/service/session"
)

func TestHandleStreamRequestEmitsTypedEvents(t *testing.T) {
	svc := sessionservice.NewService(persona.NewMemoryStore(persona.Seed()), engine.Options{})
	sess, err := svc.CreateSession(context.Background(), "buddy-dog")
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}

	h := stream.New(svc)
	rec := httptest.NewRecorder()

	if err := h.HandleStreamRequest(context.Background(), rec, sess.ID, "feed", "ui"); err != nil {
		t.Fatalf("HandleStreamRequest err: %v", err)
	}

	body := rec.Body.String()
	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("content type: got %s", ct)
	}
	for _, event := range []string{"event: start", "event: result", "event: stats", "event: end"} {
		if !strings.Contains(body, event) {
			t.Errorf("missing %s in body:\n%s", event, body)
		}
	}
	if !strings.Contains(body, `"animation":"eating"`) {
		t.Errorf("result event should carry the eating animation:\n%s", body)
	}
	if !strings.Contains(body, `"hunger":75`) {
		t.Errorf("stats event should carry the updated vector:\n%s", body)
	}
}

func TestHandleStreamRequestUnknownSession(t *testing.T) {
	svc := sessionservice.NewService(persona.NewMemoryStore(persona.Seed()), engine.Options{})
	h := stream.New(svc)
	rec := httptest.NewRecorder()

	err := h.HandleStreamRequest(context.Background(), rec, "missing", "feed", "ui")
	if err == nil {
		t.Fatal("expected error for unknown session")
	}
	if !strings.Contains(rec.Body.String(), "event: error") {
		t.Fatalf("expected error event, got:\n%s", rec.Body.String())
	}
}
