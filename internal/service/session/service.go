// Package session manages the live companion sessions: one engine instance
// per session, plus the interaction transcript kept for audit/debug.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/linmiao/lumipet/backend/internal/engine"
	"github.com/linmiao/lumipet/backend/internal/model/persona"
	"github.com/linmiao/lumipet/backend/internal/model/pet"
	sessionmodel "github.com/linmiao/lumipet/backend/internal/model/session"
)

var (
	ErrPersonaRequired = errors.New("persona id is required")
	ErrPersonaUnknown  = errors.New("persona not found")
	ErrSessionNotFound = errors.New("session not found")
)

// State is the read-only session surface exposed to the UI layer.
type State struct {
	Stats       pet.WellbeingVector `json:"stats"`
	MoodHistory []pet.MoodEntry     `json:"moodHistory"`
}

// Service owns all sessions for this process.
type Service struct {
	personas   persona.Store
	engineOpts engine.Options

	mu       sync.RWMutex
	sessions map[string]sessionmodel.Session
	engines  map[string]*engine.Engine
	records  map[string][]sessionmodel.InteractionRecord
}

// NewService bootstraps the in-memory session registry. engineOpts carries
// the shared tunables; each session still gets its own engine state.
func NewService(personas persona.Store, engineOpts engine.Options) *Service {
	return &Service{
		personas:   personas,
		engineOpts: engineOpts,
		sessions:   make(map[string]sessionmodel.Session),
		engines:    make(map[string]*engine.Engine),
		records:    make(map[string][]sessionmodel.InteractionRecord),
	}
}

// CreateSession provisions an anonymous session bound to a persona.
func (s *Service) CreateSession(_ context.Context, personaID string) (sessionmodel.Session, error) {
	if personaID == "" {
		return sessionmodel.Session{}, ErrPersonaRequired
	}

	p, ok := s.personas.FindByID(personaID)
	if !ok {
		return sessionmodel.Session{}, ErrPersonaUnknown
	}

	sess := sessionmodel.Session{
		ID:        uuid.NewString(),
		PersonaID: p.ID,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.engines[sess.ID] = engine.New(p, s.engineOpts)
	s.records[sess.ID] = make([]sessionmodel.InteractionRecord, 0, 16)
	s.mu.Unlock()

	return sess, nil
}

// GetSession retrieves a session by identifier.
func (s *Service) GetSession(_ context.Context, sessionID string) (sessionmodel.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return sessionmodel.Session{}, ErrSessionNotFound
	}
	return sess, nil
}

// Interact resolves one gesture against the session's engine and records
// the outcome. Superseded resolutions are neither recorded nor returned.
func (s *Service) Interact(ctx context.Context, sessionID string, in engine.Interaction) (pet.ActionResult, pet.WellbeingVector, error) {
	eng, err := s.engineFor(sessionID)
	if err != nil {
		return pet.ActionResult{}, pet.WellbeingVector{}, err
	}

	result, stats, err := eng.Interact(ctx, in)
	if err != nil {
		return pet.ActionResult{}, stats, err
	}

	record := sessionmodel.InteractionRecord{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Source:    in.Source,
		Input:     in.Input,
		Result:    result,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.records[sessionID] = append(s.records[sessionID], record)
	s.mu.Unlock()

	return result, stats, nil
}

// SessionState returns the wellbeing vector and mood journey.
func (s *Service) SessionState(_ context.Context, sessionID string) (State, error) {
	eng, err := s.engineFor(sessionID)
	if err != nil {
		return State{}, err
	}
	return State{Stats: eng.Stats(), MoodHistory: eng.MoodHistory()}, nil
}

// RecordMood appends a mood check-in to the session's journey log.
func (s *Service) RecordMood(_ context.Context, sessionID string, mood pet.Mood) (pet.MoodEntry, error) {
	eng, err := s.engineFor(sessionID)
	if err != nil {
		return pet.MoodEntry{}, err
	}
	return eng.RecordMood(mood), nil
}

// Persona returns the companion bound to the session.
func (s *Service) Persona(sessionID string) (persona.Persona, error) {
	eng, err := s.engineFor(sessionID)
	if err != nil {
		return persona.Persona{}, err
	}
	return eng.Persona(), nil
}

// Transcript returns the stored interaction records for the session.
func (s *Service) Transcript(_ context.Context, sessionID string) ([]sessionmodel.InteractionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, ok := s.records[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	copied := make([]sessionmodel.InteractionRecord, len(records))
	copy(copied, records)
	return copied, nil
}

func (s *Service) engineFor(sessionID string) (*engine.Engine, error) {
	if sessionID == "" {
		return nil, ErrSessionNotFound
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	eng, ok := s.engines[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return eng, nil
}
