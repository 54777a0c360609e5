// Package view flattens the simulation into plain records for the CLI and
// the workbook export. Nothing here mutates the game.
package view

import (
	"time"

	"github.com/derekprior/sfm/internal/calendar"
	"github.com/derekprior/sfm/internal/game"
)

type PlayerSummary struct {
	ID               string
	Name             string
	Country          string
	Age              int
	Position         string
	Skill            float64
	Status           string
	Injury           int
	Contract         int
	WantsNewContract bool
	Salary           int64
	WantedSalary     int64
	Value            int64
	Training         float64
	SkillChange      int
	Games            int
	Goals            int
	Homegrown        bool
}

func Player(p *game.Player) PlayerSummary {
	return PlayerSummary{
		ID:               p.ID,
		Name:             p.Name,
		Country:          p.Country,
		Age:              p.Age,
		Position:         p.Position.String(),
		Skill:            p.Skill,
		Status:           p.Status.String(),
		Injury:           p.Injury,
		Contract:         p.Contract,
		WantsNewContract: p.WantsNewContract,
		Salary:           p.Salary,
		WantedSalary:     p.WantedSalary,
		Value:            p.CurrentValue(),
		Training:         p.WeeklyTraining,
		SkillChange:      p.SkillChangeLastWeek,
		Games:            p.SeasonStats.Games,
		Goals:            p.SeasonStats.Goals,
		Homegrown:        p.Homegrown,
	}
}

// Squad lists the players in their current order.
func Squad(players []*game.Player) []PlayerSummary {
	out := make([]PlayerSummary, len(players))
	for i, p := range players {
		out[i] = Player(p)
	}
	return out
}

type TableRow struct {
	Position       int
	Team           string
	Human          bool
	Played         int
	Wins           int
	Draws          int
	Losses         int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
	Zone           string
}

// Table returns the standings. The extra pool has no zones.
func Table(d *game.Division) []TableRow {
	teams := d.Table()
	rows := make([]TableRow, len(teams))
	for i, t := range teams {
		rows[i] = TableRow{
			Position:       i + 1,
			Team:           t.Name,
			Human:          t.Human,
			Played:         t.Stats.Played(),
			Wins:           t.Stats.Wins,
			Draws:          t.Stats.Draws,
			Losses:         t.Stats.Losses,
			GoalsFor:       t.Stats.GoalsFor,
			GoalsAgainst:   t.Stats.GoalsAgainst,
			GoalDifference: t.GoalDifference(),
			Points:         t.Points(),
		}
		if d.Playable {
			rows[i].Zone = t.Zone().String()
		}
	}
	return rows
}

type FixtureRow struct {
	Division  string
	Week      int
	Date      time.Time
	Home      string
	Away      string
	Played    bool
	HomeGoals int
	AwayGoals int
}

// Fixtures lists every match of the division's season in week order with
// its matchday date.
func Fixtures(g *game.Game, d *game.Division) []FixtureRow {
	cal := g.Env().Config.Calendar
	days, _ := calendar.Matchdays(cal, g.Season, len(d.Weeks))
	var rows []FixtureRow
	for w, week := range d.Weeks {
		for _, m := range week {
			if m.Home() == nil || m.Away() == nil {
				continue
			}
			rows = append(rows, FixtureRow{
				Division:  d.Name,
				Week:      w + 1,
				Date:      days[w].Date,
				Home:      m.Home().Name,
				Away:      m.Away().Name,
				Played:    m.Finished,
				HomeGoals: m.Score[0],
				AwayGoals: m.Score[1],
			})
		}
	}
	return rows
}

type GoalLine struct {
	Minute int
	Team   string
	Player string
}

type MatchContext struct {
	Home             string
	Away             string
	Minute           int
	Score            [2]int
	Possession       [2]int
	RecentPossession [2]int
	Substitutions    [2]int
	Goals            []GoalLine
	Finished         bool
}

func Match(m *game.Match) MatchContext {
	ctx := MatchContext{
		Minute:           m.Minutes,
		Score:            m.Score,
		Possession:       m.BallPossession(),
		RecentPossession: m.BallPossessionRecent(),
		Substitutions:    m.Substitutions,
		Finished:         m.Finished,
	}
	teams := [2]*game.Team{m.Home(), m.Away()}
	names := [2]string{"bye", "bye"}
	for i, t := range teams {
		if t != nil {
			names[i] = t.Name
		}
	}
	ctx.Home, ctx.Away = names[0], names[1]
	for _, g := range m.Goals {
		ctx.Goals = append(ctx.Goals, GoalLine{Minute: g.Minute, Team: names[g.Side], Player: g.PlayerName})
	}
	return ctx
}

type FinanceLine struct {
	Category string
	Income   bool
	Weekly   int64
	Yearly   int64
}

type FinanceSummary struct {
	Money         int64
	Sponsorship   int64
	SalarySum     int64
	SquadValue    int64
	Lines         []FinanceLine
	WeeklyIncome  int64
	WeeklyExpense int64
	YearlyIncome  int64
	YearlyExpense int64
}

func Finances(t *game.Team) FinanceSummary {
	s := FinanceSummary{
		Money:         t.Money,
		Sponsorship:   t.WeeklySponsorship,
		SalarySum:     t.PlayersSalarySum(),
		SquadValue:    t.PlayersValueSum(),
		WeeklyIncome:  t.WeeklyFinances.Income(),
		WeeklyExpense: t.WeeklyFinances.Expense(),
		YearlyIncome:  t.YearlyFinances.Income(),
		YearlyExpense: t.YearlyFinances.Expense(),
	}
	for c := game.Salaries; c <= game.Sponsors; c++ {
		s.Lines = append(s.Lines, FinanceLine{
			Category: c.String(),
			Income:   c.Income(),
			Weekly:   t.WeeklyFinances[c],
			Yearly:   t.YearlyFinances[c],
		})
	}
	return s
}

// TeamSummary is the header shown above a human team's screens.
type TeamSummary struct {
	Name         string
	Division     string
	Position     int
	Objective    int
	FanHappiness float64
	Tactic       string
	AverageSkill float64
	Money        int64
	NextOpponent string
	Manager      string
}

func Team(g *game.Game, t *game.Team) TeamSummary {
	s := TeamSummary{
		Name:         t.Name,
		Objective:    t.ObjectivePosition(),
		FanHappiness: t.FanHappiness,
		Tactic:       t.CurrentTactic().String(),
		AverageSkill: t.AverageSkill(),
		Money:        t.Money,
	}
	if d := t.Division(); d != nil {
		s.Division = d.Name
		s.Position = d.TeamPosition(t)
	}
	if opp := t.NextOpponent(g.Week); opp != nil {
		s.NextOpponent = opp.Name
	}
	if m := t.Manager(); m != nil {
		s.Manager = m.Name
	}
	return s
}
