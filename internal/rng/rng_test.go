package rng

import (
	"math"
	"testing"
)

func TestWeightedChoice(t *testing.T) {
	r := New(7)

	t.Run("empty choices", func(t *testing.T) {
		if _, ok := WeightedChoice[string](r, nil); ok {
			t.Error("expected no choice from empty list")
		}
	})

	t.Run("zero weights", func(t *testing.T) {
		choices := []Choice[string]{{Item: "a", Weight: 0}, {Item: "b", Weight: 0}}
		if _, ok := WeightedChoice(r, choices); ok {
			t.Error("expected no choice when all weights are zero")
		}
	})

	t.Run("zero weight never picked", func(t *testing.T) {
		choices := []Choice[string]{{Item: "gk", Weight: 0}, {Item: "at", Weight: 1}}
		for range 1000 {
			got, ok := WeightedChoice(r, choices)
			if !ok || got != "at" {
				t.Fatalf("WeightedChoice() = %q, %v; want at, true", got, ok)
			}
		}
	})

	t.Run("roughly proportional", func(t *testing.T) {
		choices := []Choice[int]{{Item: 0, Weight: 1}, {Item: 1, Weight: 3}}
		counts := make([]int, 2)
		for range 10000 {
			got, _ := WeightedChoice(r, choices)
			counts[got]++
		}
		share := float64(counts[1]) / 10000
		if share < 0.7 || share > 0.8 {
			t.Errorf("heavy choice share = %.3f, want about 0.75", share)
		}
	})
}

func TestIntBetween(t *testing.T) {
	r := New(3)
	seen := make(map[int]bool)
	for range 500 {
		v := IntBetween(r, 1, 3)
		if v < 1 || v > 3 {
			t.Fatalf("IntBetween(1, 3) = %d", v)
		}
		seen[v] = true
	}
	if len(seen) != 3 {
		t.Errorf("saw %d distinct values, want 3", len(seen))
	}
	if got := IntBetween(r, 5, 5); got != 5 {
		t.Errorf("IntBetween(5, 5) = %d, want 5", got)
	}
}

func TestSeededSourcesRepeat(t *testing.T) {
	a, b := New(99), New(99)
	for range 20 {
		if a.Float64() != b.Float64() {
			t.Fatal("sources with the same seed diverged")
		}
	}
}

func TestHelpers(t *testing.T) {
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"clamp low", Clamp(-1, 0, 1), 0},
		{"clamp high", Clamp(2, 0, 1), 1},
		{"normalize mid", Normalize(28, 18, 38), 0.5},
		{"normalize clamps", Normalize(50, 18, 38), 1},
		{"normalize flat range", Normalize(3, 3, 3), 0},
		{"balance equal", Balance(4, 4), 0.5},
		{"balance dominant", Balance(3, 1), 0.75},
		{"balance zero", Balance(0, 0), 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got-tt.want) > 1e-9 {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}
