package resolve

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/linmiao/lumipet/backend/internal/engine/sanitize"
	"github.com/linmiao/lumipet/backend/internal/model/persona"
)

type stubGenerator struct {
	text  string
	err   error
	delay time.Duration
	calls int
}

func (g *stubGenerator) Generate(ctx context.Context, _ persona.Persona, _ string) (string, error) {
	g.calls++
	if g.delay > 0 {
		select {
		case <-time.After(g.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return g.text, g.err
}

func luna(t *testing.T) persona.Persona {
	t.Helper()
	for _, p := range persona.Seed() {
		if p.ID == "luna-cat" {
			return p
		}
	}
	t.Fatal("luna-cat persona missing from seed")
	return persona.Persona{}
}

func newResolver(gen Generator) (*Resolver, *Cache) {
	cache := NewCache()
	r := NewResolver(gen, cache, sanitize.New(), time.Second, rand.New(rand.NewSource(1)))
	return r, cache
}

func TestResolveTierOneSuccessPopulatesCache(t *testing.T) {
	gen := &stubGenerator{text: "Purrr. The moon is lovely tonight. 🌙"}
	r, cache := newResolver(gen)
	p := luna(t)

	got := r.Resolve(context.Background(), p, "  What a NIGHT  sky ")
	if got != gen.text {
		t.Fatalf("got %q want the generated text", got)
	}

	cached, ok := cache.Get(p.ID, "what a night sky")
	if !ok || cached != gen.text {
		t.Fatalf("tier-1 success should cache under the normalized key, got %q ok=%v", cached, ok)
	}
}

func TestResolveTierTwoReturnsCachedValue(t *testing.T) {
	gen := &stubGenerator{err: errors.New("connection refused")}
	r, cache := newResolver(gen)
	p := luna(t)

	cache.Put(p.ID, "hello there", "Mrrow. Welcome back. 🌙")

	got := r.Resolve(context.Background(), p, "Hello   THERE")
	if got != "Mrrow. Welcome back. 🌙" {
		t.Fatalf("expected the cached value, got %q", got)
	}
}

func TestResolveQuotaFallsThroughToTopics(t *testing.T) {
	gen := &stubGenerator{err: ErrQuota}
	r, _ := newResolver(gen)
	p := luna(t)

	got := r.Resolve(context.Background(), p, "hello there")

	found := false
	for _, line := range p.Corpus.Topics["hello"] {
		if got == line {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a line from the hello topic corpus, got %q", got)
	}
}

func TestResolveGenericFallbackWhenNoTopicMatches(t *testing.T) {
	r, _ := newResolver(nil) // no generator configured: tier 1 always fails
	p := luna(t)

	got := r.Resolve(context.Background(), p, "the weather is strange")

	found := false
	for _, line := range p.Corpus.Generic {
		if got == line {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a generic corpus line, got %q", got)
	}
}

func TestResolveLeakedResponseNeverSurfaces(t *testing.T) {
	gen := &stubGenerator{text: "Error: quota exceeded for project"}
	r, cache := newResolver(gen)
	p := luna(t)

	got := r.Resolve(context.Background(), p, "how are you")
	if got == gen.text {
		t.Fatal("leaked text must not surface")
	}
	if _, ok := cache.Get(p.ID, "how are you"); ok {
		t.Fatal("rejected text must not be cached")
	}

	s := sanitize.New()
	if !s.Check(got) {
		t.Fatalf("substituted fallback itself failed sanitization: %q", got)
	}
}

func TestResolveTimesOutSlowGenerator(t *testing.T) {
	gen := &stubGenerator{text: "too late", delay: 5 * time.Second}
	cache := NewCache()
	r := NewResolver(gen, cache, sanitize.New(), 50*time.Millisecond, rand.New(rand.NewSource(1)))
	p := luna(t)

	start := time.Now()
	got := r.Resolve(context.Background(), p, "tell me a story")
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("resolve did not respect the tier-1 timeout, took %v", elapsed)
	}
	if got == "too late" {
		t.Fatal("timed-out generation must not be returned")
	}
}

func TestResolveEmptyResponseIsMalformed(t *testing.T) {
	gen := &stubGenerator{text: ""}
	r, _ := newResolver(gen)
	p := luna(t)

	got := r.Resolve(context.Background(), p, "hmm")
	if got == "" {
		t.Fatal("resolver must always produce a line")
	}
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"  Hello   THERE ":   "hello there",
		"one\ttwo\n three":   "one two three",
		"already normalized": "already normalized",
		"   ":                "",
	}
	for input, want := range cases {
		if got := Normalize(input); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestCacheIsAppendOnly(t *testing.T) {
	cache := NewCache()
	cache.Put("p", "hi", "first answer")
	cache.Put("p", "hi", "second answer")

	got, ok := cache.Get("p", "hi")
	if !ok || got != "first answer" {
		t.Fatalf("cache entries must never be overwritten, got %q", got)
	}
	if cache.Len() != 1 {
		t.Fatalf("cache length: got %d want 1", cache.Len())
	}
}
