// Package action turns a gate-approved discrete intent into the structured
// result the rendering layer consumes: animation, display line, voice line,
// stat delta, and how long the animation runs before idling.
package action

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/linmiao/lumipet/backend/internal/engine/intent"
	"github.com/linmiao/lumipet/backend/internal/model/persona"
	"github.com/linmiao/lumipet/backend/internal/model/pet"
	"github.com/linmiao/lumipet/backend/internal/model/session"
)

// Durations per intent, in milliseconds. The renderer returns the companion
// to idle once these elapse.
const (
	feedDurationMs       = 10000
	waterDurationMs      = 8000
	playDurationMs       = 8000
	petDurationMs        = 5000
	deflectionDurationMs = 3000
)

// Responder selects flavor lines and fixed stat deltas for discrete actions.
// The random source is injected so tests can pin the selection.
type Responder struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewResponder builds a responder around the given random source. A nil
// source falls back to a time-seeded one.
func NewResponder(rng *rand.Rand) *Responder {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Responder{rng: rng}
}

// Request carries everything Respond needs besides the persona.
type Request struct {
	Intent   intent.Intent
	Source   session.Source
	Location string // petting location; empty for other intents
}

// Respond produces the ActionResult for an allowed trigger. It never writes
// the wellbeing vector itself; the caller applies StatDelta via pet.Apply.
func (r *Responder) Respond(p persona.Persona, req Request) pet.ActionResult {
	switch req.Intent {
	case intent.Feed:
		display := fmt.Sprintf("🦴 Preparing %s's meal...", p.Name)
		if req.Source == session.SourceUI {
			display = fmt.Sprintf("You fed %s.", p.Name)
		}
		return pet.ActionResult{
			Animation:   pet.AnimationEating,
			DisplayText: display,
			VoiceText:   r.pick(p.Corpus.Feeding),
			StatDelta:   pet.StatDelta{Hunger: 25, Happiness: 15},
			DurationMs:  feedDurationMs,
		}
	case intent.Water:
		return pet.ActionResult{
			Animation:   pet.AnimationDrinking,
			DisplayText: fmt.Sprintf("%s drinks gratefully.", p.Name),
			VoiceText:   r.pick(p.Corpus.Drinking),
			StatDelta:   pet.StatDelta{Thirst: 40, Happiness: 5},
			DurationMs:  waterDurationMs,
		}
	case intent.Play:
		return pet.ActionResult{
			Animation:   pet.AnimationPlaying,
			DisplayText: fmt.Sprintf("🎾 Playing with %s...", p.Name),
			VoiceText:   r.pick(p.Corpus.Playing),
			StatDelta:   pet.StatDelta{Happiness: 20, Energy: -15},
			DurationMs:  playDurationMs,
		}
	case intent.Pet:
		return r.respondPet(p, req.Location)
	}
	// Unreachable for a classified intent; keep the companion idle.
	return pet.ActionResult{Animation: pet.AnimationIdle}
}

func (r *Responder) respondPet(p persona.Persona, location string) pet.ActionResult {
	lines, ok := p.Corpus.Petting[location]
	if !ok || len(lines) == 0 {
		location = ""
		lines = p.Corpus.Petting[""]
	}

	happiness := 10
	if location != "" && location == p.FavoriteSpot {
		happiness = 15
	}

	display := fmt.Sprintf("❤️ You petted %s.", p.Name)
	if location != "" {
		display = fmt.Sprintf("❤️ You petted %s's %s.", p.Name, location)
	}

	return pet.ActionResult{
		Animation:   pet.AnimationPetting,
		DisplayText: display,
		VoiceText:   r.pick(lines),
		StatDelta:   pet.StatDelta{Happiness: happiness},
		DurationMs:  petDurationMs,
	}
}

// Deflect synthesizes the informative, non-mutating result for a blocked
// trigger. The animation stays idle and the delta is empty; this is final
// output, never re-routed through the resolver.
func (r *Responder) Deflect(p persona.Persona, in intent.Intent) pet.ActionResult {
	var display, voice string
	switch in {
	case intent.Feed:
		display = fmt.Sprintf("🦴 %s is still full. Try playing instead?", p.Name)
		voice = r.pick(p.Corpus.FeedFull)
	case intent.Water:
		display = fmt.Sprintf("💧 %s isn't thirsty yet. Maybe pet her?", p.Name)
		voice = r.pick(p.Corpus.NotThirsty)
	case intent.Pet:
		display = fmt.Sprintf("❤️ %s is still savoring the last pets.", p.Name)
		voice = "That was lovely, give me a moment."
	case intent.Play:
		display = fmt.Sprintf("🎾 %s is catching her breath.", p.Name)
		voice = "Whew, let me rest a little first."
	}

	return pet.ActionResult{
		Animation:   pet.AnimationIdle,
		DisplayText: display,
		VoiceText:   voice,
		StatDelta:   pet.StatDelta{},
		DurationMs:  deflectionDurationMs,
	}
}

func (r *Responder) pick(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return lines[r.rng.Intn(len(lines))]
}
