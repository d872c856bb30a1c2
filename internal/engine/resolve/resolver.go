// Package resolve produces the companion's reply for free-form input via a
// strict three-tier chain: remote generation, then the session response
// cache, then the persona's local corpora. Every tier's candidate passes
// the sanitizer before it may reach the user; no tier failure escapes.
package resolve

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/linmiao/lumipet/backend/internal/engine/sanitize"
	"github.com/linmiao/lumipet/backend/internal/model/persona"
)

// ErrQuota lets a Generator flag a quota signal so the failure is recorded
// under the right kind. Any other error counts as a transport failure.
var ErrQuota = errors.New("generation quota exhausted")

// ErrorKind classifies a tier-1 failure. Internal to the resolver; it is
// logged, never surfaced.
type ErrorKind string

const (
	TransportFailure   ErrorKind = "transport_failure"
	QuotaExceeded      ErrorKind = "quota_exceeded"
	MalformedResponse  ErrorKind = "malformed_response"
	SanitizationReject ErrorKind = "sanitization_reject"
)

// Generator is the remote generative dialogue port. Implementations wrap
// the provider client; the resolver treats them as opaque.
type Generator interface {
	Generate(ctx context.Context, p persona.Persona, userText string) (string, error)
}

// outcome is the tagged result of one tier attempt.
type outcome struct {
	text string
	kind ErrorKind
	ok   bool
}

func success(text string) outcome   { return outcome{text: text, ok: true} }
func failed(kind ErrorKind) outcome { return outcome{kind: kind} }

// topicOrder fixes the scan order of the conversational fallback buckets.
var topicOrder = []string{"play", "sad", "happy", "tired", "hello", "food"}

// lastResortLine backs the terminal tier if every curated corpus were ever
// edited into something the sanitizer rejects.
const lastResortLine = "I'm right here with you."

// Resolver runs the fallback chain. Safe for concurrent use.
type Resolver struct {
	generator Generator
	cache     *Cache
	sanitizer *sanitize.Sanitizer
	timeout   time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// NewResolver assembles the chain. generator may be nil when no remote
// service is configured; tier 1 then always fails over. A nil rng falls
// back to a time-seeded source.
func NewResolver(generator Generator, cache *Cache, sanitizer *sanitize.Sanitizer, timeout time.Duration, rng *rand.Rand) *Resolver {
	if cache == nil {
		cache = NewCache()
	}
	if sanitizer == nil {
		sanitizer = sanitize.New()
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Resolver{
		generator: generator,
		cache:     cache,
		sanitizer: sanitizer,
		timeout:   timeout,
		rng:       rng,
	}
}

// Resolve returns a sanitized, in-persona reply for the input. It cannot
// fail: the terminal tier always yields a line.
func (r *Resolver) Resolve(ctx context.Context, p persona.Persona, text string) string {
	normalized := Normalize(text)

	if out := r.attemptRemote(ctx, p, text, normalized); out.ok {
		return out.text
	} else if out.kind != "" {
		log.Printf("[resolver] tier-1 failed persona=%s kind=%s, falling back", p.ID, out.kind)
	}

	if cached, ok := r.cache.Get(p.ID, normalized); ok {
		// Sanitized at write time; not re-checked.
		return cached
	}

	return r.localFallback(p, normalized)
}

// attemptRemote runs tier 1 under the bounded timeout. Transport errors,
// quota signals, empty output, and sanitizer rejects all collapse into a
// failed outcome; nothing propagates.
func (r *Resolver) attemptRemote(ctx context.Context, p persona.Persona, text, normalized string) outcome {
	if r.generator == nil {
		return failed(TransportFailure)
	}

	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	raw, err := r.generator.Generate(callCtx, p, text)
	if err != nil {
		if errors.Is(err, ErrQuota) {
			return failed(QuotaExceeded)
		}
		return failed(TransportFailure)
	}
	if raw == "" {
		return failed(MalformedResponse)
	}
	if !r.sanitizer.Check(raw) {
		return failed(SanitizationReject)
	}

	r.cache.Put(p.ID, normalized, raw)
	return success(raw)
}

// localFallback is tier 3: a topic-matched line, else a generic one. The
// corpora are curated, but they still pass the sanitizer so a future corpus
// edit cannot smuggle a denylisted token past the chain.
func (r *Resolver) localFallback(p persona.Persona, normalized string) string {
	for _, topic := range topicOrder {
		lines := p.Corpus.Topics[topic]
		if len(lines) == 0 {
			continue
		}
		if containsTopic(normalized, topic) {
			if line := r.pickClean(lines); line != "" {
				return line
			}
		}
	}

	if line := r.pickClean(p.Corpus.Generic); line != "" {
		return line
	}
	return lastResortLine
}

// pickClean draws uniformly from lines, preferring one the sanitizer
// accepts. With curated corpora the first draw passes.
func (r *Resolver) pickClean(lines []string) string {
	if len(lines) == 0 {
		return ""
	}

	r.mu.Lock()
	start := r.rng.Intn(len(lines))
	r.mu.Unlock()

	for i := 0; i < len(lines); i++ {
		line := lines[(start+i)%len(lines)]
		if r.sanitizer.Check(line) {
			return line
		}
	}
	return ""
}

// containsTopic matches on the normalized (already lowercased) input.
func containsTopic(normalized, topic string) bool {
	return topic != "" && strings.Contains(normalized, topic)
}
