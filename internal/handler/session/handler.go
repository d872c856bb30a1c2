package session

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/linmiao/lumipet/backend/internal/engine"
	"github.com/linmiao/lumipet/backend/internal/model/pet"
	sessionmodel "github.com/linmiao/lumipet/backend/internal/model/session"
	sessionservice "github.com/linmiao/lumipet/backend/internal/service/session"
	"github.com/linmiao/lumipet/backend/pkg/utils"
)

// Handler exposes the session lifecycle and the interaction endpoint.
type Handler struct {
	sessions *sessionservice.Service
}

// New creates a session handler.
func New(sessions *sessionservice.Service) *Handler {
	return &Handler{
		sessions: sessions,
	}
}

// RegisterRoutes registers session routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/session", h.handleCreateSession)
	r.Route("/session/{sessionID}", func(sr chi.Router) {
		sr.Post("/interact", h.handleInteract)
		sr.Get("/state", h.handleState)
		sr.Post("/mood", h.handleRecordMood)
		sr.Get("/transcript", h.handleTranscript)
	})
}

// InteractResponse is the envelope returned for one resolved gesture.
type InteractResponse struct {
	Result pet.ActionResult    `json:"result"`
	Stats  pet.WellbeingVector `json:"stats"`
}

// handleCreateSession creates a session bound to a persona.
func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		PersonaID string `json:"personaId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess, err := h.sessions.CreateSession(r.Context(), payload.PersonaID)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusCreated, sess)
}

// handleInteract resolves one gesture for the session.
func (h *Handler) handleInteract(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var payload struct {
		Input    string `json:"input"`
		Source   string `json:"source"`
		Location string `json:"location"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Input == "" {
		utils.RespondError(w, http.StatusBadRequest, "input is required")
		return
	}

	result, stats, err := h.sessions.Interact(r.Context(), sessionID, engine.Interaction{
		Input:    payload.Input,
		Source:   sessionmodel.ParseSource(payload.Source),
		Location: payload.Location,
	})
	if err != nil {
		switch {
		case errors.Is(err, sessionservice.ErrSessionNotFound):
			utils.RespondError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, engine.ErrSuperseded):
			// A newer interaction already won; the client should only
			// render that one.
			utils.RespondError(w, http.StatusConflict, err.Error())
		default:
			log.Printf("[session] interact failed session=%s: %v", sessionID, err)
			utils.RespondError(w, http.StatusInternalServerError, "interaction failed")
		}
		return
	}

	utils.RespondJSON(w, http.StatusOK, InteractResponse{Result: result, Stats: stats})
}

// handleState returns the wellbeing vector and mood journey.
func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	state, err := h.sessions.SessionState(r.Context(), sessionID)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, state)
}

// handleRecordMood appends a mood check-in to the session's journey.
func (h *Handler) handleRecordMood(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var payload struct {
		Mood string `json:"mood"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	mood, ok := pet.ParseMood(payload.Mood)
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "unknown mood")
		return
	}

	entry, err := h.sessions.RecordMood(r.Context(), sessionID, mood)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusCreated, entry)
}

// handleTranscript returns the stored interaction records.
func (h *Handler) handleTranscript(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	records, err := h.sessions.Transcript(r.Context(), sessionID)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, records)
}
