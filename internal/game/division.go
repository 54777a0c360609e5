package game

import (
	"math"
	"sort"

	"github.com/derekprior/sfm/internal/fixtures"
)

// Division is one tier of the pyramid. Level 0 is the top flight. The
// bottom pool of extra teams is not playable and has no schedule.
type Division struct {
	Name     string     `json:"name"`
	Level    int        `json:"level"`
	Playable bool       `json:"playable"`
	Teams    []*Team    `json:"teams"`
	Weeks    [][]*Match `json:"weeks"`

	env *Env
}

func newDivision(env *Env, name string, level int, playable bool) *Division {
	return &Division{Name: name, Level: level, Playable: playable, env: env}
}

// MONEY

// levelMultiplier is base raised to the distance from the bottom of the
// playable pyramid, shifted by offset.
func (d *Division) levelMultiplier(base float64, offset int) float64 {
	return math.Pow(base, float64(d.env.Config.Competition.Divisions-d.Level+offset))
}

// MoneyPerResult returns the prize for a win and for a draw this week.
func (d *Division) MoneyPerResult() (win, draw int64) {
	cfg := d.env.Config.Money
	multi := d.levelMultiplier(cfg.DivisionInfluenceOnResultPrize, 0)
	return int64(float64(cfg.MinPerWin) * multi), int64(float64(cfg.MinPerDraw) * multi)
}

// positionBoost grows quadratically with how high pos (1-based) finished.
func (d *Division) positionBoost(pos int, influence float64) float64 {
	fromBottom := float64(d.env.Config.Competition.TeamsPerDivision - (pos - 1))
	return math.Pow(fromBottom*influence, 2)
}

// MoneyPerEndOfSeasonPosition is the season prize for finishing at pos.
func (d *Division) MoneyPerEndOfSeasonPosition(pos int) int64 {
	cfg := d.env.Config.Money
	base := float64(cfg.MinEndOfSeason) * d.levelMultiplier(cfg.DivisionInfluenceOnSeasonPrize, 0)
	return int64(base + base*d.positionBoost(pos, cfg.PositionInfluenceOnSeasonPrize))
}

// SponsorshipPerEndOfSeasonPosition is next season's weekly sponsorship
// for finishing at pos. The top three and bottom three get a multiplier.
func (d *Division) SponsorshipPerEndOfSeasonPosition(pos int) int64 {
	cfg := d.env.Config.Money
	base := float64(cfg.MinSponsors) * d.levelMultiplier(cfg.DivisionInfluenceOnSponsorship, -1)
	sponsorship := float64(int64(base + base*d.positionBoost(pos, cfg.PositionInfluenceOnSponsorship)))

	idx := pos - 1
	n := d.env.Config.Competition.TeamsPerDivision
	switch {
	case idx < len(cfg.Top3Multipliers):
		sponsorship *= cfg.Top3Multipliers[idx]
	case idx >= n-len(cfg.Bottom3Multipliers) && idx < n:
		sponsorship *= cfg.Bottom3Multipliers[idx-(n-len(cfg.Bottom3Multipliers))]
	}
	return int64(sponsorship)
}

// SEASON

// StartOfSeason shuffles the teams, builds the double round robin,
// resets every team and hands out points-per-week targets.
func (d *Division) StartOfSeason() {
	d.env.Rand.Shuffle(len(d.Teams), func(i, j int) {
		d.Teams[i], d.Teams[j] = d.Teams[j], d.Teams[i]
	})

	d.Weeks = nil
	if d.Playable {
		d.createMatches()
	}
	for _, t := range d.Teams {
		t.division = d
		t.StartOfSeason()
	}
	d.setSeasonPointsPerWeek()
}

func (d *Division) createMatches() {
	strategy, err := fixtures.Get("double_round_robin")
	if err != nil {
		panic(err)
	}
	for _, round := range strategy.GenerateRounds(len(d.Teams)) {
		week := make([]*Match, 0, len(round))
		for _, f := range round {
			week = append(week, newMatch(d.env, d.Teams[f.Home], d.Teams[f.Away]))
		}
		d.Weeks = append(d.Weeks, week)
	}
}

// setSeasonPointsPerWeek gives the strongest team the highest target and
// steps down evenly to the weakest.
func (d *Division) setSeasonPointsPerWeek() {
	goals := d.env.Config.TeamGoals
	teams := make([]*Team, len(d.Teams))
	copy(teams, d.Teams)
	sort.SliceStable(teams, func(i, j int) bool {
		return teams[i].AverageSkill() > teams[j].AverageSkill()
	})

	step := 0.0
	if len(teams) > 1 {
		step = (goals.MaxPointsPerWeek - goals.MinPointsPerWeek) / float64(len(teams)-1)
	}
	for i, t := range teams {
		t.SeasonPointsPerWeek = goals.MaxPointsPerWeek - float64(i)*step
	}
}

func (d *Division) EndOfSeason() {
	for _, t := range d.Teams {
		t.EndOfSeason()
	}
}

// TABLE

func tableLess(a, b *Team) bool {
	if a.Points() != b.Points() {
		return a.Points() > b.Points()
	}
	if a.GoalDifference() != b.GoalDifference() {
		return a.GoalDifference() > b.GoalDifference()
	}
	if a.Stats.Wins != b.Stats.Wins {
		return a.Stats.Wins > b.Stats.Wins
	}
	if a.Stats.GoalsFor != b.Stats.GoalsFor {
		return a.Stats.GoalsFor > b.Stats.GoalsFor
	}
	return a.Stats.Losses < b.Stats.Losses
}

// Table returns the teams in standings order without reordering Teams.
// Ties keep their current order. The extra pool is returned as is.
func (d *Division) Table() []*Team {
	table := make([]*Team, len(d.Teams))
	copy(table, d.Teams)
	if d.Playable {
		sort.SliceStable(table, func(i, j int) bool { return tableLess(table[i], table[j]) })
	}
	return table
}

// OrderTableByPosition sorts Teams into standings order.
func (d *Division) OrderTableByPosition() {
	d.Teams = d.Table()
}

// TeamPosition returns t's 1-based table position, or 0 if t is not here.
func (d *Division) TeamPosition(t *Team) int {
	for i, other := range d.Table() {
		if other == t {
			return i + 1
		}
	}
	return 0
}

// TeamMatches returns every fixture t plays this season in week order.
func (d *Division) TeamMatches(t *Team) []*Match {
	var out []*Match
	for _, week := range d.Weeks {
		for _, m := range week {
			if m.side(t) >= 0 {
				out = append(out, m)
			}
		}
	}
	return out
}

// WeekMatches returns the fixtures of week (0-based).
func (d *Division) WeekMatches(week int) []*Match {
	if week < 0 || week >= len(d.Weeks) {
		return nil
	}
	return d.Weeks[week]
}

func (d *Division) AverageSkill() float64 {
	if len(d.Teams) == 0 {
		return 0
	}
	var sum float64
	for _, t := range d.Teams {
		sum += t.AverageSkill()
	}
	return sum / float64(len(d.Teams))
}

// WEEKLY

// NextWeek runs every team's weekly tick, then pays prize money and moves
// fan happiness for the results of week.
func (d *Division) NextWeek(week int) {
	if !d.Playable {
		return
	}
	for _, t := range d.Teams {
		t.NextWeek()
	}

	win, draw := d.MoneyPerResult()
	for _, m := range d.WeekMatches(week) {
		if !m.Finished || m.teams[0] == nil || m.teams[1] == nil {
			continue
		}
		if w := m.Winner(); w != nil {
			w.changeFinances(PrizeMoney, win)
			w.FanHappinessChangeWithResult(3)
			m.Loser().FanHappinessChangeWithResult(0)
			continue
		}
		for _, t := range m.teams {
			t.changeFinances(PrizeMoney, draw)
			t.FanHappinessChangeWithResult(1)
		}
	}
}

// SimulateWeeklyMatches plays every unfinished fixture of week, covering
// injuries from the bench.
func (d *Division) SimulateWeeklyMatches(week int) {
	if !d.Playable {
		return
	}
	for _, m := range d.WeekMatches(week) {
		if !m.Finished {
			m.SimulateWithCover(0)
		}
	}
}
