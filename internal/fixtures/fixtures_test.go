package fixtures

import "testing"

func TestDoubleRoundRobin(t *testing.T) {
	for _, n := range []int{2, 4, 5, 7, 16} {
		s, err := Get("double_round_robin")
		if err != nil {
			t.Fatalf("Get() error: %v", err)
		}
		rounds := s.GenerateRounds(n)

		slots := n
		if slots%2 == 1 {
			slots++
		}

		t.Run("round count", func(t *testing.T) {
			if want := 2 * (slots - 1); len(rounds) != want {
				t.Errorf("n=%d: rounds = %d, want %d", n, len(rounds), want)
			}
		})

		t.Run("each team at most once per round", func(t *testing.T) {
			for i, r := range rounds {
				seen := make(map[int]bool)
				for _, f := range r {
					if f.Home == f.Away {
						t.Errorf("n=%d round %d: team %d plays itself", n, i, f.Home)
					}
					if seen[f.Home] || seen[f.Away] {
						t.Errorf("n=%d round %d: team repeated in %v", n, i, r)
					}
					seen[f.Home] = true
					seen[f.Away] = true
				}
				if n%2 == 0 && len(seen) != n {
					t.Errorf("n=%d round %d: %d teams played, want %d", n, i, len(seen), n)
				}
				if n%2 == 1 && len(seen) != n-1 {
					t.Errorf("n=%d round %d: %d teams played, want %d", n, i, len(seen), n-1)
				}
			}
		})

		t.Run("every ordered pair exactly once", func(t *testing.T) {
			counts := make(map[Fixture]int)
			for _, r := range rounds {
				for _, f := range r {
					counts[f]++
				}
			}
			for a := 0; a < n; a++ {
				for b := 0; b < n; b++ {
					if a == b {
						continue
					}
					if c := counts[Fixture{Home: a, Away: b}]; c != 1 {
						t.Errorf("n=%d: %d vs %d played %d times, want 1", n, a, b, c)
					}
				}
			}
		})

		t.Run("second half mirrors first", func(t *testing.T) {
			half := len(rounds) / 2
			for i := 0; i < half; i++ {
				for j, f := range rounds[i] {
					m := rounds[half+i][j]
					if m.Home != f.Away || m.Away != f.Home {
						t.Errorf("n=%d round %d: mirror of %v is %v", n, i, f, m)
					}
				}
			}
		})
	}
}

func TestSingleRoundRobinHomeBalance(t *testing.T) {
	s := &SingleRoundRobin{}
	rounds := s.GenerateRounds(16)
	home := make(map[int]int)
	for _, r := range rounds {
		for _, f := range r {
			home[f.Home]++
		}
	}
	for team := 0; team < 16; team++ {
		if home[team] < 6 || home[team] > 9 {
			t.Errorf("team %d has %d home games of 15", team, home[team])
		}
	}
}

func TestGenerateRoundsTooFewTeams(t *testing.T) {
	s := &DoubleRoundRobin{}
	if rounds := s.GenerateRounds(1); len(rounds) != 0 {
		t.Errorf("rounds = %d, want 0", len(rounds))
	}
}

func TestGetUnknown(t *testing.T) {
	if _, err := Get("swiss"); err == nil {
		t.Error("expected error for unknown strategy")
	}
}
