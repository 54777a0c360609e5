package game

import (
	"fmt"
	"testing"
)

func testDivision(env *Env, n int, level int) *Division {
	d := newDivision(env, fmt.Sprintf("League %d", level+1), level, true)
	for i := range n {
		t := newTeam(env, fmt.Sprintf("Team %d", i+1), "ENG", "red", float64(5+i))
		t.division = d
		d.Teams = append(d.Teams, t)
	}
	return d
}

func TestDivisionSchedule(t *testing.T) {
	for _, n := range []int{4, 16} {
		env := testEnv(int64(n))
		d := testDivision(env, n, 0)
		d.StartOfSeason()

		t.Run(fmt.Sprintf("%d teams: week count", n), func(t *testing.T) {
			if want := 2 * (n - 1); len(d.Weeks) != want {
				t.Errorf("weeks = %d, want %d", len(d.Weeks), want)
			}
		})

		t.Run(fmt.Sprintf("%d teams: each team once per week", n), func(t *testing.T) {
			for w, week := range d.Weeks {
				seen := make(map[*Team]int)
				for _, m := range week {
					seen[m.Home()]++
					seen[m.Away()]++
				}
				for _, team := range d.Teams {
					if seen[team] != 1 {
						t.Errorf("week %d: %s plays %d times", w+1, team.Name, seen[team])
					}
				}
			}
		})

		t.Run(fmt.Sprintf("%d teams: each ordered pair once", n), func(t *testing.T) {
			type pair struct{ home, away *Team }
			counts := make(map[pair]int)
			for _, week := range d.Weeks {
				for _, m := range week {
					counts[pair{m.Home(), m.Away()}]++
				}
			}
			for _, a := range d.Teams {
				for _, b := range d.Teams {
					if a == b {
						continue
					}
					if c := counts[pair{a, b}]; c != 1 {
						t.Errorf("%s v %s played %d times, want 1", a.Name, b.Name, c)
					}
				}
			}
		})

		t.Run(fmt.Sprintf("%d teams: team matches", n), func(t *testing.T) {
			team := d.Teams[0]
			if got := len(d.TeamMatches(team)); got != 2*(n-1) {
				t.Errorf("TeamMatches() = %d, want %d", got, 2*(n-1))
			}
			if team.NextMatch(0) == nil || team.NextOpponent(0) == nil {
				t.Error("no fixture in week 0")
			}
		})
	}
}

func TestTeamPositionWithoutResults(t *testing.T) {
	env := testEnv(30)
	d := testDivision(env, 4, 0)
	d.StartOfSeason()

	for i, team := range d.Teams {
		if got := d.TeamPosition(team); got != i+1 {
			t.Errorf("TeamPosition(%s) = %d, want %d", team.Name, got, i+1)
		}
	}
	if got := d.TeamPosition(newTeam(env, "Stranger", "ENG", "red", 5)); got != 0 {
		t.Errorf("TeamPosition(stranger) = %d, want 0", got)
	}
}

func TestTable(t *testing.T) {
	env := testEnv(31)
	d := testDivision(env, 4, 0)
	a, b, c, e := d.Teams[0], d.Teams[1], d.Teams[2], d.Teams[3]
	a.Stats = LeagueStats{Wins: 1, Losses: 1, GoalsFor: 2, GoalsAgainst: 2}
	b.Stats = LeagueStats{Wins: 2, GoalsFor: 3, GoalsAgainst: 0}
	c.Stats = LeagueStats{Wins: 1, Losses: 1, GoalsFor: 4, GoalsAgainst: 2}
	e.Stats = LeagueStats{Draws: 2, GoalsFor: 1, GoalsAgainst: 1}

	want := []*Team{b, c, a, e}
	got := d.Table()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("table[%d] = %s, want %s", i, got[i].Name, want[i].Name)
		}
	}
	if d.Teams[0] != a {
		t.Error("Table() reordered Teams")
	}
	d.OrderTableByPosition()
	if d.Teams[0] != b {
		t.Error("OrderTableByPosition() did not reorder Teams")
	}
	if b.Zone() != ZonePromotion || e.Zone() != ZoneRelegation {
		t.Errorf("zones = %v/%v", b.Zone(), e.Zone())
	}
}

func TestDivisionMoney(t *testing.T) {
	env := testEnv(32)
	top := testDivision(env, 16, 0)
	bottom := testDivision(env, 16, 3)

	topWin, topDraw := top.MoneyPerResult()
	bottomWin, _ := bottom.MoneyPerResult()
	if topWin <= bottomWin {
		t.Errorf("top win prize %d <= bottom %d", topWin, bottomWin)
	}
	if topDraw >= topWin {
		t.Errorf("draw prize %d >= win prize %d", topDraw, topWin)
	}

	for pos := 2; pos <= 16; pos++ {
		if top.MoneyPerEndOfSeasonPosition(pos) > top.MoneyPerEndOfSeasonPosition(pos-1) {
			t.Errorf("season prize rises from position %d to %d", pos-1, pos)
		}
		if top.SponsorshipPerEndOfSeasonPosition(pos) > top.SponsorshipPerEndOfSeasonPosition(pos-1) {
			t.Errorf("sponsorship rises from position %d to %d", pos-1, pos)
		}
	}
	if top.SponsorshipPerEndOfSeasonPosition(1) <= bottom.SponsorshipPerEndOfSeasonPosition(1) {
		t.Error("top division sponsorship not above bottom division")
	}
}

func TestSeasonPointsPerWeek(t *testing.T) {
	env := testEnv(33)
	d := testDivision(env, 6, 0)
	d.StartOfSeason()
	goals := env.Config.TeamGoals

	var strongest, weakest *Team
	for _, team := range d.Teams {
		if strongest == nil || team.AvgSkill > strongest.AvgSkill {
			strongest = team
		}
		if weakest == nil || team.AvgSkill < weakest.AvgSkill {
			weakest = team
		}
	}
	if strongest.SeasonPointsPerWeek != goals.MaxPointsPerWeek {
		t.Errorf("strongest target = %v, want %v", strongest.SeasonPointsPerWeek, goals.MaxPointsPerWeek)
	}
	if diff := weakest.SeasonPointsPerWeek - goals.MinPointsPerWeek; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("weakest target = %v, want %v", weakest.SeasonPointsPerWeek, goals.MinPointsPerWeek)
	}
}

func TestDivisionNextWeekPrizes(t *testing.T) {
	env := testEnv(34)
	d := testDivision(env, 4, 0)
	d.StartOfSeason()
	d.SimulateWeeklyMatches(0)
	d.NextWeek(0)

	win, draw := d.MoneyPerResult()
	for _, m := range d.WeekMatches(0) {
		if !m.Finished {
			t.Fatalf("%s not played", m)
		}
		if w := m.Winner(); w != nil {
			if w.Money != win || m.Loser().Money != 0 {
				t.Errorf("%s: winner got %d, loser %d; want %d and 0", m, w.Money, m.Loser().Money, win)
			}
			continue
		}
		if m.Home().Money != draw || m.Away().Money != draw {
			t.Errorf("%s: draw paid %d/%d, want %d", m, m.Home().Money, m.Away().Money, draw)
		}
	}
	if d.WeekMatches(-1) != nil || d.WeekMatches(len(d.Weeks)) != nil {
		t.Error("WeekMatches out of range returned fixtures")
	}
}
