// Package stream serves interaction results over Server-Sent Events so the
// frontend can render the animation, progress text, and final reply as
// separate frames.
package stream

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/linmiao/lumipet/backend/internal/engine"
	sessionmodel "github.com/linmiao/lumipet/backend/internal/model/session"
	sessionservice "github.com/linmiao/lumipet/backend/internal/service/session"
	"github.com/linmiao/lumipet/backend/pkg/utils"
)

// Handler streams one interaction per request.
type Handler struct {
	sessions *sessionservice.Service
}

// New creates a stream handler.
func New(sessions *sessionservice.Service) *Handler {
	return &Handler{
		sessions: sessions,
	}
}

// sessionFrame tags lifecycle events with the session they belong to.
type sessionFrame struct {
	SessionID string `json:"sessionId"`
}

type errorFrame struct {
	Error string `json:"error"`
}

// HandleStreamRequest resolves one gesture and emits typed start, result,
// stats, and end events. The HTTP status is already committed once
// streaming starts, so failures after that surface as error events.
func (h *Handler) HandleStreamRequest(ctx context.Context, w http.ResponseWriter, sessionID, input, source string) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return fmt.Errorf("streaming unsupported")
	}

	utils.SetupSSEHeaders(w)

	sess, err := h.sessions.GetSession(ctx, sessionID)
	if err != nil {
		utils.SendSSEEvent(w, flusher, "error", errorFrame{Error: err.Error()})
		return err
	}

	utils.SendSSEEvent(w, flusher, "start", sessionFrame{SessionID: sess.ID})

	result, stats, err := h.sessions.Interact(ctx, sessionID, engine.Interaction{
		Input:  input,
		Source: sessionmodel.ParseSource(source),
	})
	if err != nil {
		if errors.Is(err, engine.ErrSuperseded) {
			// The event tells the client to drop this resolution quietly.
			utils.SendSSEEvent(w, flusher, "superseded", sessionFrame{SessionID: sess.ID})
			return nil
		}
		utils.SendSSEEvent(w, flusher, "error", errorFrame{Error: err.Error()})
		return err
	}

	utils.SendSSEEvent(w, flusher, "result", result)
	utils.SendSSEEvent(w, flusher, "stats", stats)
	utils.SendSSEEvent(w, flusher, "end", sessionFrame{SessionID: sess.ID})

	log.Printf("[stream] completed interaction for session=%s", sessionID)
	return nil
}
