// Package sanitize keeps technical vocabulary out of the companion's mouth.
// Remote generation can echo provider errors back as message content; any
// such leak disqualifies the whole candidate rather than being redacted,
// so the user never sees half a sentence in a broken voice.
package sanitize

import "strings"

// denylist tokens mark a candidate response as a technical leak. Matching is
// case-insensitive substring.
var denylist = []string{
	"gemini",
	"api",
	"quota",
	"exceeded",
	"429",
	"requests",
	"invalid",
	"error",
	"failed to call",
	"model",
	"token",
	"http",
	"network",
	"key",
	"status",
	"timeout",
}

// Sanitizer rejects candidate text containing denylisted tokens.
type Sanitizer struct {
	tokens []string
}

// New returns a sanitizer with the built-in denylist.
func New() *Sanitizer {
	return &Sanitizer{tokens: denylist}
}

// NewWithTokens returns a sanitizer over a custom denylist; used in tests.
func NewWithTokens(tokens []string) *Sanitizer {
	return &Sanitizer{tokens: tokens}
}

// Check reports whether text is safe to surface. Empty text is rejected so
// callers always substitute a real line.
func (s *Sanitizer) Check(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, token := range s.tokens {
		if strings.Contains(lower, token) {
			return false
		}
	}
	return true
}
