package pet

import "testing"

func TestApplyAddsAndClamps(t *testing.T) {
	v := DefaultStats()

	v = Apply(v, StatDelta{Hunger: 25, Happiness: 15})
	if v.Hunger != 75 {
		t.Fatalf("hunger: got %d want 75", v.Hunger)
	}
	if v.Happiness != 65 {
		t.Fatalf("happiness: got %d want 65", v.Happiness)
	}

	v = Apply(v, StatDelta{Hunger: 80})
	if v.Hunger != 100 {
		t.Fatalf("hunger should clamp at 100, got %d", v.Hunger)
	}

	v = Apply(v, StatDelta{Energy: -200})
	if v.Energy != 0 {
		t.Fatalf("energy should clamp at 0, got %d", v.Energy)
	}
}

func TestApplyStaysInRangeUnderAnySequence(t *testing.T) {
	deltas := []StatDelta{
		{Hunger: 25, Happiness: 15},
		{Thirst: 40, Happiness: 5},
		{Happiness: 20, Energy: -15},
		{Happiness: -90, Energy: -90},
		{Hunger: 100, Thirst: 100, Happiness: 100, Energy: 100},
		{Hunger: -7},
	}

	v := DefaultStats()
	for round := 0; round < 50; round++ {
		for _, d := range deltas {
			v = Apply(v, d)
			for name, field := range map[string]int{
				"hunger": v.Hunger, "thirst": v.Thirst,
				"happiness": v.Happiness, "energy": v.Energy,
			} {
				if field < 0 || field > 100 {
					t.Fatalf("%s out of range after delta %+v: %d", name, d, field)
				}
			}
		}
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	v := DefaultStats()
	_ = Apply(v, StatDelta{Hunger: 10})
	if v != DefaultStats() {
		t.Fatalf("input vector mutated: %+v", v)
	}
}
