// Package intent maps free-form user input onto the closed set of discrete
// companion actions. Anything that is not a discrete action is None and goes
// to the response resolver instead.
package intent

import "strings"

// Intent is one of the discrete companion actions.
type Intent string

const (
	Feed  Intent = "feed"
	Water Intent = "water"
	Pet   Intent = "pet"
	Play  Intent = "play"
	None  Intent = "none"
)

// keywordSets are evaluated in this fixed order; the first set with any
// match wins. First-match, not longest-match.
var keywordSets = []struct {
	intent   Intent
	keywords []string
}{
	{Feed, []string{"feed", "food", "meal", "dinner", "kibble", "eat"}},
	{Water, []string{"water", "drink", "thirsty", "hydration"}},
	{Pet, []string{"pet", "stroke", "pat", "cuddle"}},
	{Play, []string{"play", "fetch", "toy", "game"}},
}

// Classify resolves text to an Intent by case-insensitive substring match.
// Unmatched input is None, which is a common and valid outcome.
func Classify(text string) Intent {
	lower := strings.ToLower(text)
	for _, set := range keywordSets {
		for _, kw := range set.keywords {
			if strings.Contains(lower, kw) {
				return set.intent
			}
		}
	}
	return None
}
