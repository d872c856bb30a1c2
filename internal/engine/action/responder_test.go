package action

import (
	"math/rand"
	"testing"

	"github.com/linmiao/lumipet/backend/internal/engine/intent"
	"github.com/linmiao/lumipet/backend/internal/model/persona"
	"github.com/linmiao/lumipet/backend/internal/model/pet"
	"github.com/linmiao/lumipet/backend/internal/model/session"
)

func buddy(t *testing.T) persona.Persona {
	t.Helper()
	for _, p := range persona.Seed() {
		if p.ID == "buddy-dog" {
			return p
		}
	}
	t.Fatal("buddy-dog persona missing from seed")
	return persona.Persona{}
}

func TestRespondFeed(t *testing.T) {
	r := NewResponder(rand.New(rand.NewSource(1)))
	p := buddy(t)

	res := r.Respond(p, Request{Intent: intent.Feed, Source: session.SourceChat})

	if res.Animation != pet.AnimationEating {
		t.Fatalf("animation: got %s want eating", res.Animation)
	}
	if res.StatDelta != (pet.StatDelta{Hunger: 25, Happiness: 15}) {
		t.Fatalf("stat delta: got %+v", res.StatDelta)
	}
	if res.DurationMs != 10000 {
		t.Fatalf("duration: got %d want 10000", res.DurationMs)
	}
	if res.VoiceText == "" {
		t.Fatal("voice text should come from the feeding corpus")
	}
}

func TestRespondFeedDisplayVariesBySource(t *testing.T) {
	r := NewResponder(rand.New(rand.NewSource(1)))
	p := buddy(t)

	ui := r.Respond(p, Request{Intent: intent.Feed, Source: session.SourceUI})
	chat := r.Respond(p, Request{Intent: intent.Feed, Source: session.SourceChat})

	if ui.DisplayText != "You fed Buddy." {
		t.Fatalf("ui display: got %q", ui.DisplayText)
	}
	if chat.DisplayText == ui.DisplayText {
		t.Fatal("chat-sourced feed should use the preparing-meal line")
	}
}

func TestRespondDeterministicWithSeed(t *testing.T) {
	p := buddy(t)

	a := NewResponder(rand.New(rand.NewSource(42))).Respond(p, Request{Intent: intent.Water})
	b := NewResponder(rand.New(rand.NewSource(42))).Respond(p, Request{Intent: intent.Water})

	if a.VoiceText != b.VoiceText {
		t.Fatalf("same seed should pick the same line: %q vs %q", a.VoiceText, b.VoiceText)
	}
}

func TestRespondPetFavoriteLocationBonus(t *testing.T) {
	r := NewResponder(rand.New(rand.NewSource(7)))
	p := buddy(t) // favorite spot: ears

	favorite := r.Respond(p, Request{Intent: intent.Pet, Location: "ears"})
	if favorite.StatDelta.Happiness != 15 {
		t.Fatalf("favorite spot happiness: got %d want 15", favorite.StatDelta.Happiness)
	}

	other := r.Respond(p, Request{Intent: intent.Pet, Location: "back"})
	if other.StatDelta.Happiness != 10 {
		t.Fatalf("non-favorite spot happiness: got %d want 10", other.StatDelta.Happiness)
	}

	plain := r.Respond(p, Request{Intent: intent.Pet})
	if plain.StatDelta.Happiness != 10 {
		t.Fatalf("plain pet happiness: got %d want 10", plain.StatDelta.Happiness)
	}
	if plain.Animation != pet.AnimationPetting || plain.DurationMs != 5000 {
		t.Fatalf("pet result: %+v", plain)
	}
}

func TestRespondPetUnknownLocationFallsBack(t *testing.T) {
	r := NewResponder(rand.New(rand.NewSource(7)))
	p := buddy(t)

	res := r.Respond(p, Request{Intent: intent.Pet, Location: "tail"})
	if res.StatDelta.Happiness != 10 {
		t.Fatalf("unknown location should use the default delta, got %d", res.StatDelta.Happiness)
	}
	if res.VoiceText == "" {
		t.Fatal("unknown location should fall back to the default petting lines")
	}
}

func TestDeflectIsNonMutatingAndIdle(t *testing.T) {
	r := NewResponder(rand.New(rand.NewSource(3)))
	p := buddy(t)

	for _, in := range []intent.Intent{intent.Feed, intent.Water, intent.Pet, intent.Play} {
		res := r.Deflect(p, in)
		if res.Animation != pet.AnimationIdle {
			t.Fatalf("%s deflection animation: got %s want idle", in, res.Animation)
		}
		if !res.StatDelta.IsZero() {
			t.Fatalf("%s deflection must not carry a stat delta: %+v", in, res.StatDelta)
		}
		if res.DurationMs != 3000 {
			t.Fatalf("%s deflection duration: got %d want 3000", in, res.DurationMs)
		}
		if res.DisplayText == "" || res.VoiceText == "" {
			t.Fatalf("%s deflection should still speak to the user", in)
		}
	}
}
