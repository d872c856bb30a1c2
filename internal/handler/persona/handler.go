package persona

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/linmiao/lumipet/backend/internal/model/persona"
	"github.com/linmiao/lumipet/backend/pkg/utils"
)

// Handler serves the companion catalogue.
type Handler struct {
	personas persona.Store
}

// New creates a persona handler.
func New(personas persona.Store) *Handler {
	return &Handler{
		personas: personas,
	}
}

// RegisterRoutes registers persona routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/personas", h.handleListPersonas)
}

// handleListPersonas lists all available companions.
func (h *Handler) handleListPersonas(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.personas.List())
}
