// Package ws carries interactions over a WebSocket so clients that keep a
// live connection (voice frontends mostly) avoid per-gesture HTTP overhead.
package ws

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/linmiao/lumipet/backend/internal/engine"
	"github.com/linmiao/lumipet/backend/internal/model/pet"
	sessionmodel "github.com/linmiao/lumipet/backend/internal/model/session"
	sessionservice "github.com/linmiao/lumipet/backend/internal/service/session"
	"github.com/linmiao/lumipet/backend/pkg/utils"
)

// Handler upgrades connections and pumps interactions through the session
// engine.
type Handler struct {
	sessions *sessionservice.Service
	upgrader websocket.Upgrader
}

// New creates a WebSocket handler.
func New(sessions *sessionservice.Service) *Handler {
	return &Handler{
		sessions: sessions,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes registers the WebSocket endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws/{sessionID}", h.handleWebSocket)
}

type inboundMessage struct {
	Type     string `json:"type"`
	Input    string `json:"input"`
	Source   string `json:"source"`
	Location string `json:"location"`
	Mood     string `json:"mood"`
}

type outgoingMessage struct {
	Type      string      `json:"type"`
	SessionID string      `json:"sessionId,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if _, err := h.sessions.GetSession(r.Context(), sessionID); err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed session=%s: %v", sessionID, err)
		return
	}
	defer conn.Close()

	log.Printf("[ws] connected session=%s", sessionID)

	for {
		var msg inboundMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ws] read error session=%s: %v", sessionID, err)
			}
			return
		}

		switch msg.Type {
		case "interact":
			h.handleInteract(r, conn, sessionID, msg)
		case "mood":
			h.handleMood(r, conn, sessionID, msg)
		case "state":
			h.handleState(r, conn, sessionID)
		default:
			h.send(conn, outgoingMessage{
				Type:  "error",
				Error: "unknown message type: " + msg.Type,
			})
		}
	}
}

func (h *Handler) handleInteract(r *http.Request, conn *websocket.Conn, sessionID string, msg inboundMessage) {
	if msg.Input == "" {
		h.send(conn, outgoingMessage{Type: "error", SessionID: sessionID, Error: "input is required"})
		return
	}

	source := msg.Source
	if source == "" {
		source = string(sessionmodel.SourceVoice)
	}

	result, stats, err := h.sessions.Interact(r.Context(), sessionID, engine.Interaction{
		Input:    msg.Input,
		Source:   sessionmodel.ParseSource(source),
		Location: msg.Location,
	})
	if err != nil {
		if errors.Is(err, engine.ErrSuperseded) {
			h.send(conn, outgoingMessage{Type: "superseded", SessionID: sessionID})
			return
		}
		h.send(conn, outgoingMessage{Type: "error", SessionID: sessionID, Error: err.Error()})
		return
	}

	h.send(conn, outgoingMessage{Type: "result", SessionID: sessionID, Data: result})
	h.send(conn, outgoingMessage{Type: "stats", SessionID: sessionID, Data: stats})
}

func (h *Handler) handleMood(r *http.Request, conn *websocket.Conn, sessionID string, msg inboundMessage) {
	mood, ok := pet.ParseMood(msg.Mood)
	if !ok {
		h.send(conn, outgoingMessage{Type: "error", SessionID: sessionID, Error: "unknown mood"})
		return
	}

	entry, err := h.sessions.RecordMood(r.Context(), sessionID, mood)
	if err != nil {
		h.send(conn, outgoingMessage{Type: "error", SessionID: sessionID, Error: err.Error()})
		return
	}

	h.send(conn, outgoingMessage{Type: "mood", SessionID: sessionID, Data: entry})
}

func (h *Handler) handleState(r *http.Request, conn *websocket.Conn, sessionID string) {
	state, err := h.sessions.SessionState(r.Context(), sessionID)
	if err != nil {
		h.send(conn, outgoingMessage{Type: "error", SessionID: sessionID, Error: err.Error()})
		return
	}

	h.send(conn, outgoingMessage{Type: "state", SessionID: sessionID, Data: state})
}

func (h *Handler) send(conn *websocket.Conn, msg outgoingMessage) {
	msg.Timestamp = time.Now().UnixMilli()
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("[ws] write failed: %v", err)
	}
}
