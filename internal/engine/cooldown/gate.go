// Package cooldown rate-limits repeatable discrete actions. The gate owns
// the per-intent last-trigger timestamps for one session.
package cooldown

import (
	"sync"
	"time"

	"github.com/linmiao/lumipet/backend/internal/engine/intent"
)

// Windows holds the minimum elapsed time between successful triggers of
// each rate-limited intent.
type Windows struct {
	Feed  time.Duration
	Water time.Duration
	Pet   time.Duration
	Play  time.Duration
}

// DefaultWindows mirrors the product defaults: feeding and watering carry
// real cooldowns, petting only a short debounce.
func DefaultWindows() Windows {
	return Windows{
		Feed:  60 * time.Second,
		Water: 30 * time.Second,
		Pet:   5 * time.Second,
		Play:  20 * time.Second,
	}
}

func (w Windows) forIntent(in intent.Intent) time.Duration {
	switch in {
	case intent.Feed:
		return w.Feed
	case intent.Water:
		return w.Water
	case intent.Pet:
		return w.Pet
	case intent.Play:
		return w.Play
	}
	return 0
}

// Result reports the gate's decision. Elapsed is only meaningful when
// Allowed is false.
type Result struct {
	Allowed bool
	Elapsed time.Duration
}

// Gate tracks last-trigger times per intent. The zero time means the intent
// has never fired, so the first trigger is always allowed.
type Gate struct {
	mu      sync.Mutex
	windows Windows
	last    map[intent.Intent]time.Time
}

// NewGate returns a gate with no recorded triggers.
func NewGate(windows Windows) *Gate {
	return &Gate{
		windows: windows,
		last:    make(map[intent.Intent]time.Time, 4),
	}
}

// TryTrigger tests the window for the intent and, when allowed, records now
// as the last-trigger time in the same critical section. Two concurrent
// calls inside one window can therefore never both be allowed.
func (g *Gate) TryTrigger(in intent.Intent, now time.Time) Result {
	window := g.windows.forIntent(in)
	if window <= 0 {
		return Result{Allowed: true}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	last, fired := g.last[in]
	if fired {
		elapsed := now.Sub(last)
		if elapsed < window {
			return Result{Allowed: false, Elapsed: elapsed}
		}
	}

	g.last[in] = now
	return Result{Allowed: true}
}
