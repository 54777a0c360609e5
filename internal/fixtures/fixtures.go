package fixtures

import (
	"fmt"
)

// Fixture is a single pairing between two team slots. Slots index into the
// caller's team list.
type Fixture struct {
	Home int
	Away int
}

// Round is every fixture played in one schedule week.
type Round []Fixture

// Strategy generates the rounds of a season for n teams.
type Strategy interface {
	GenerateRounds(n int) []Round
}

// Get returns a Strategy by name.
func Get(name string) (Strategy, error) {
	switch name {
	case "", "double_round_robin":
		return &DoubleRoundRobin{}, nil
	case "single_round_robin":
		return &SingleRoundRobin{}, nil
	default:
		return nil, fmt.Errorf("unknown fixture strategy: %q", name)
	}
}

// SingleRoundRobin pairs every team with every other team once using the
// circle method: slot 0..n-1 are laid out in two rows, the last slot stays
// fixed and the rest rotate by half the table each round.
type SingleRoundRobin struct{}

func (s *SingleRoundRobin) GenerateRounds(n int) []Round {
	if n < 2 {
		return nil
	}
	// An odd team count gets a phantom slot; whoever meets it has a bye.
	slots := n
	if slots%2 == 1 {
		slots++
	}
	bye := func(i int) bool { return i >= n }

	order := make([]int, slots)
	for i := range order {
		order[i] = i
	}
	mid := slots / 2

	rounds := make([]Round, 0, slots-1)
	for r := 0; r < slots-1; r++ {
		var round Round
		for j := 0; j < mid; j++ {
			home := order[j]
			away := order[slots-1-j]
			if bye(home) || bye(away) {
				continue
			}
			// The first pairing always involves the fixed slot; flip it on
			// odd rounds so it alternates home and away.
			if j == 0 && r%2 == 1 {
				home, away = away, home
			}
			round = append(round, Fixture{Home: home, Away: away})
		}
		rounds = append(rounds, round)

		next := make([]int, 0, slots)
		next = append(next, order[mid:slots-1]...)
		next = append(next, order[:mid]...)
		next = append(next, order[slots-1])
		order = next
	}
	return rounds
}

// DoubleRoundRobin plays the single round robin twice, the second half
// mirroring the first with home and away reversed.
type DoubleRoundRobin struct{}

func (s *DoubleRoundRobin) GenerateRounds(n int) []Round {
	first := (&SingleRoundRobin{}).GenerateRounds(n)
	rounds := make([]Round, 0, 2*len(first))
	rounds = append(rounds, first...)
	for _, r := range first {
		mirrored := make(Round, len(r))
		for i, f := range r {
			mirrored[i] = Fixture{Home: f.Away, Away: f.Home}
		}
		rounds = append(rounds, mirrored)
	}
	return rounds
}
