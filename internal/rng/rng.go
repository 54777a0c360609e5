// Package rng wraps the random source the simulation draws from so that
// callers can inject a seeded generator and replay a career exactly.
package rng

import (
	"math"
	"math/rand"
	"time"
)

// Source is the subset of *rand.Rand the simulation needs.
type Source interface {
	Float64() float64
	Intn(n int) int
	NormFloat64() float64
	ExpFloat64() float64
	Shuffle(n int, swap func(i, j int))
}

// New returns a source seeded with seed. A zero seed picks one from the clock.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Chance reports whether a draw lands below p.
func Chance(r Source, p float64) bool {
	return r.Float64() < p
}

// Uniform returns a float in [lo, hi).
func Uniform(r Source, lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}

// IntBetween returns an int in [lo, hi], both inclusive.
func IntBetween(r Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

// Gauss returns a normally distributed value.
func Gauss(r Source, mean, stdDev float64) float64 {
	return mean + stdDev*r.NormFloat64()
}

// Exponential returns an exponentially distributed value with the given rate.
func Exponential(r Source, rate float64) float64 {
	return r.ExpFloat64() / rate
}

// Choice is one weighted option for WeightedChoice.
type Choice[T any] struct {
	Item   T
	Weight float64
}

// WeightedChoice picks one item with probability proportional to its
// weight. It reports false when there is nothing to choose from.
func WeightedChoice[T any](r Source, choices []Choice[T]) (T, bool) {
	var zero T
	total := 0.0
	for _, c := range choices {
		total += c.Weight
	}
	if len(choices) == 0 || total <= 0 {
		return zero, false
	}
	x := r.Float64() * total
	for _, c := range choices {
		if x < c.Weight {
			return c.Item, true
		}
		x -= c.Weight
	}
	return choices[len(choices)-1].Item, true
}

// Pick returns a uniformly chosen element of items.
func Pick[T any](r Source, items []T) T {
	return items[r.Intn(len(items))]
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// Normalize maps v from [lo, hi] onto [0, 1], clamping first.
func Normalize(v, lo, hi float64) float64 {
	if hi == lo {
		return 0
	}
	return (Clamp(v, lo, hi) - lo) / (hi - lo)
}

// Balance maps two strengths onto the share of the first: 0.5 when equal.
func Balance(a, b float64) float64 {
	if a+b == 0 {
		return 0.5
	}
	return ((a-b)/(a+b) + 1) * 0.5
}
