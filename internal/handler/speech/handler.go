package speech

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	speechmodel "github.com/linmiao/lumipet/backend/internal/model/speech"
	sessionservice "github.com/linmiao/lumipet/backend/internal/service/session"
	"github.com/linmiao/lumipet/backend/pkg/utils"
)

// Synthesizer abstracts the speech service so tests can stub it.
type Synthesizer interface {
	SynthesizeSpeech(ctx context.Context, text, voiceID string) *speechmodel.TTSResponse
}

// Handler serves text-to-speech requests.
type Handler struct {
	speechSvc Synthesizer
	sessions  *sessionservice.Service
}

// New creates a speech handler. sessions may be nil; it is only used to
// resolve a session persona's voice when the request names no voice.
func New(speechSvc Synthesizer, sessions *sessionservice.Service) *Handler {
	return &Handler{
		speechSvc: speechSvc,
		sessions:  sessions,
	}
}

// RegisterRoutes registers speech routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/speech/synthesize", h.handleSynthesize)
}

// handleSynthesize converts text to audio. No audio is not an error: voice
// is an enhancement, so the endpoint returns 204 and the client continues
// without it.
func (h *Handler) handleSynthesize(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text      string `json:"text"`
		VoiceID   string `json:"voiceId"`
		SessionID string `json:"sessionId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(payload.Text) == "" {
		utils.RespondError(w, http.StatusBadRequest, "text is required")
		return
	}

	voiceID := strings.TrimSpace(payload.VoiceID)
	if voiceID == "" {
		voiceID = h.resolveVoiceFromSession(payload.SessionID)
	}

	resp := h.speechSvc.SynthesizeSpeech(r.Context(), payload.Text, voiceID)
	if resp == nil || len(resp.AudioData) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	format := resp.Format
	if format == "" {
		format = "octet-stream"
	}
	w.Header().Set("Content-Type", "audio/"+format)
	w.Header().Set("Content-Length", strconv.Itoa(len(resp.AudioData)))
	w.WriteHeader(http.StatusOK)
	w.Write(resp.AudioData)
}

func (h *Handler) resolveVoiceFromSession(sessionID string) string {
	if h.sessions == nil || strings.TrimSpace(sessionID) == "" {
		return ""
	}
	p, err := h.sessions.Persona(sessionID)
	if err != nil {
		return ""
	}
	return p.VoiceID
}
