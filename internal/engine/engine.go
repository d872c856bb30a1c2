// Package engine hosts the interaction resolution core for one companion
// session. Every user gesture — discrete action, blocked action, or
// free-form chat — resolves to the same ActionResult shape, and the
// wellbeing vector, cooldown state, and response cache live here and
// nowhere else.
package engine

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/linmiao/lumipet/backend/internal/engine/action"
	"github.com/linmiao/lumipet/backend/internal/engine/cooldown"
	"github.com/linmiao/lumipet/backend/internal/engine/intent"
	"github.com/linmiao/lumipet/backend/internal/engine/resolve"
	"github.com/linmiao/lumipet/backend/internal/engine/sanitize"
	"github.com/linmiao/lumipet/backend/internal/model/persona"
	"github.com/linmiao/lumipet/backend/internal/model/pet"
	"github.com/linmiao/lumipet/backend/internal/model/session"
)

// ErrSuperseded marks a resolution that finished after a newer interaction
// had already been issued. Its result carries no side effects and must be
// dropped by the caller.
var ErrSuperseded = errors.New("interaction superseded by a newer one")

// chatDurationMs is how long the talking animation runs for a resolved
// free-form reply.
const chatDurationMs = 4000

// Options configures an engine instance. Zero values take the defaults the
// product ships with; Clock and Rand exist for tests.
type Options struct {
	Windows       cooldown.Windows
	RemoteTimeout time.Duration
	Generator     resolve.Generator
	Clock         func() time.Time
	Rand          *rand.Rand
}

// Engine owns all mutable state for one session.
type Engine struct {
	persona   persona.Persona
	gate      *cooldown.Gate
	responder *action.Responder
	resolver  *resolve.Resolver
	clock     func() time.Time

	seq atomic.Uint64

	mu    sync.Mutex
	stats pet.WellbeingVector
	moods []pet.MoodEntry
}

// New builds an engine for the persona with session-start defaults.
func New(p persona.Persona, opts Options) *Engine {
	if opts.Windows == (cooldown.Windows{}) {
		opts.Windows = cooldown.DefaultWindows()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	// The responder and resolver each guard their random source with their
	// own lock, so they must not share one *rand.Rand. An injected source
	// only seeds two independent streams.
	var responderRand, resolverRand *rand.Rand
	if opts.Rand != nil {
		responderRand = rand.New(rand.NewSource(opts.Rand.Int63()))
		resolverRand = rand.New(rand.NewSource(opts.Rand.Int63()))
	}

	return &Engine{
		persona:   p,
		gate:      cooldown.NewGate(opts.Windows),
		responder: action.NewResponder(responderRand),
		resolver:  resolve.NewResolver(opts.Generator, resolve.NewCache(), sanitize.New(), opts.RemoteTimeout, resolverRand),
		clock:     opts.Clock,
		stats:     pet.DefaultStats(),
	}
}

// Interaction is one user gesture to resolve.
type Interaction struct {
	Input    string
	Source   session.Source
	Location string // optional petting location
}

// Interact resolves one gesture and returns the result plus the wellbeing
// vector after any delta was applied. A resolution that is no longer the
// latest when it completes returns ErrSuperseded and commits nothing.
func (e *Engine) Interact(ctx context.Context, in Interaction) (pet.ActionResult, pet.WellbeingVector, error) {
	seq := e.seq.Add(1)

	matched := intent.Classify(in.Input)
	if matched == intent.None {
		return e.resolveChat(ctx, seq, in)
	}

	gateRes := e.gate.TryTrigger(matched, e.clock())
	if !gateRes.Allowed {
		deflection := e.responder.Deflect(e.persona, matched)
		return e.commit(seq, deflection)
	}

	result := e.responder.Respond(e.persona, action.Request{
		Intent:   matched,
		Source:   in.Source,
		Location: in.Location,
	})
	return e.commit(seq, result)
}

// resolveChat runs the fallback chain for non-action input. The remote call
// may outlive a newer interaction; commit drops it in that case.
func (e *Engine) resolveChat(ctx context.Context, seq uint64, in Interaction) (pet.ActionResult, pet.WellbeingVector, error) {
	text := e.resolver.Resolve(ctx, e.persona, in.Input)
	labeled := resolve.ParseLabeled(text)

	result := pet.ActionResult{
		Animation:   pet.AnimationHappy,
		DisplayText: labeled.Display,
		VoiceText:   labeled.VoiceOrDisplay(),
		DurationMs:  chatDurationMs,
	}
	return e.commit(seq, result)
}

// commit applies the result's delta unless a newer interaction was issued
// while this one was in flight.
func (e *Engine) commit(seq uint64, result pet.ActionResult) (pet.ActionResult, pet.WellbeingVector, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if seq != e.seq.Load() {
		return pet.ActionResult{}, e.stats, ErrSuperseded
	}

	if !result.StatDelta.IsZero() {
		e.stats = pet.Apply(e.stats, result.StatDelta)
	}
	return result, e.stats, nil
}

// Stats returns the current wellbeing vector.
func (e *Engine) Stats() pet.WellbeingVector {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

// RecordMood appends a mood journey entry.
func (e *Engine) RecordMood(mood pet.Mood) pet.MoodEntry {
	entry := pet.MoodEntry{Mood: mood, Timestamp: e.clock()}
	e.mu.Lock()
	e.moods = append(e.moods, entry)
	e.mu.Unlock()
	return entry
}

// MoodHistory returns the append-only mood log.
func (e *Engine) MoodHistory() []pet.MoodEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]pet.MoodEntry(nil), e.moods...)
}

// Persona returns the session's companion profile.
func (e *Engine) Persona() persona.Persona {
	return e.persona
}
