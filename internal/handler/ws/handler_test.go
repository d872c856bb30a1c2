package ws_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/linmiao/lumipet/backend/internal/engine"
	handler "github.com/linmiao/lumipet/backend/internal/handler/ws"
	"github.com/linmiao/lumipet/backend/internal/model/persona"
	sessionservice "github.com/linmiao/lumipet/backend/internal/service/session"
)

type frame struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId"`
	Data      json.RawMessage `json:"data"`
	Error     string          `json:"error"`
}

func dialSession(t *testing.T) (*websocket.Conn, func()) {
	t.Helper()

	svc := sessionservice.NewService(persona.NewMemoryStore(persona.Seed()), engine.Options{})
	sess, err := svc.CreateSession(context.Background(), "buddy-dog")
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}

	r := chi.NewRouter()
	handler.New(svc).RegisterRoutes(r)
	srv := httptest.NewServer(r)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/" + sess.ID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		srv.Close()
		t.Fatalf("dial err: %v", err)
	}

	return conn, func() {
		conn.Close()
		srv.Close()
	}
}

func readFrame(t *testing.T, conn *websocket.Conn) frame {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var f frame
	if err := conn.ReadJSON(&f); err != nil {
		t.Fatalf("read frame: %v", err)
	}
	return f
}

func TestInteractOverWebSocket(t *testing.T) {
	conn, cleanup := dialSession(t)
	defer cleanup()

	if err := conn.WriteJSON(map[string]string{"type": "interact", "input": "feed", "source": "ui"}); err != nil {
		t.Fatalf("write err: %v", err)
	}

	result := readFrame(t, conn)
	if result.Type != "result" {
		t.Fatalf("first frame: got %s (%s)", result.Type, result.Error)
	}
	if !strings.Contains(string(result.Data), `"animation":"eating"`) {
		t.Fatalf("result data: %s", result.Data)
	}

	stats := readFrame(t, conn)
	if stats.Type != "stats" {
		t.Fatalf("second frame: got %s", stats.Type)
	}
	if !strings.Contains(string(stats.Data), `"hunger":75`) {
		t.Fatalf("stats data: %s", stats.Data)
	}
}

func TestUnknownMessageTypeOverWebSocket(t *testing.T) {
	conn, cleanup := dialSession(t)
	defer cleanup()

	if err := conn.WriteJSON(map[string]string{"type": "dance"}); err != nil {
		t.Fatalf("write err: %v", err)
	}

	f := readFrame(t, conn)
	if f.Type != "error" || !strings.Contains(f.Error, "unknown message type") {
		t.Fatalf("frame: %+v", f)
	}
}

func TestMoodAndStateOverWebSocket(t *testing.T) {
	conn, cleanup := dialSession(t)
	defer cleanup()

	if err := conn.WriteJSON(map[string]string{"type": "mood", "mood": "happy"}); err != nil {
		t.Fatalf("write err: %v", err)
	}
	if f := readFrame(t, conn); f.Type != "mood" {
		t.Fatalf("mood frame: %+v", f)
	}

	if err := conn.WriteJSON(map[string]string{"type": "state"}); err != nil {
		t.Fatalf("write err: %v", err)
	}
	f := readFrame(t, conn)
	if f.Type != "state" || !strings.Contains(string(f.Data), `"moodHistory"`) {
		t.Fatalf("state frame: %+v", f)
	}
}
