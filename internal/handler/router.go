package handler

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/linmiao/lumipet/backend/internal/handler/persona"
	sessionHandler "github.com/linmiao/lumipet/backend/internal/handler/session"
	speechHandler "github.com/linmiao/lumipet/backend/internal/handler/speech"
	"github.com/linmiao/lumipet/backend/internal/handler/stream"
	"github.com/linmiao/lumipet/backend/internal/handler/ws"
	middlewarePkg "github.com/linmiao/lumipet/backend/internal/middleware"
	personaModel "github.com/linmiao/lumipet/backend/internal/model/persona"
	sessionService "github.com/linmiao/lumipet/backend/internal/service/session"
	speechService "github.com/linmiao/lumipet/backend/internal/service/speech"
	"github.com/linmiao/lumipet/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(personas personaModel.Store, sessionSvc *sessionService.Service, speechSvc *speechService.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	personaH := persona.New(personas)
	sessionH := sessionHandler.New(sessionSvc)
	streamH := stream.New(sessionSvc)
	wsH := ws.New(sessionSvc)

	r.Route("/api", func(api chi.Router) {
		personaH.RegisterRoutes(api)
		sessionH.RegisterRoutes(api)
		wsH.RegisterRoutes(api)

		api.Get("/stream/{sessionID}", func(w http.ResponseWriter, r *http.Request) {
			sessionID := chi.URLParam(r, "sessionID")
			input := r.URL.Query().Get("input")
			source := r.URL.Query().Get("source")

			if input == "" {
				utils.RespondError(w, http.StatusBadRequest, "input query parameter is required")
				return
			}

			if err := streamH.HandleStreamRequest(r.Context(), w, sessionID, input, source); err != nil {
				log.Printf("[stream] error handling request: %v", err)
			}
		})

		if speechSvc != nil {
			speechHandler.New(speechSvc, sessionSvc).RegisterRoutes(api)
		} else {
			api.Post("/speech/synthesize", func(w http.ResponseWriter, _ *http.Request) {
				utils.RespondError(w, http.StatusServiceUnavailable, "speech synthesis unavailable")
			})
		}
	})

	return r
}
