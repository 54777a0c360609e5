package view

import (
	"testing"
	"time"

	"golang.org/x/text/language"

	"github.com/derekprior/sfm/internal/config"
	"github.com/derekprior/sfm/internal/game"
	"github.com/derekprior/sfm/internal/rng"
)

func testSession(t *testing.T) *game.Session {
	t.Helper()
	cfg := config.Default()
	cfg.Competition = config.Competition{Divisions: 2, TeamsPerDivision: 4, PromotedAndDemoted: 1, ExtraTeams: 2}
	cfg.TeamGoals.FiringThreshold = 0
	env := game.NewEnv(cfg, rng.New(1), nil, nil)
	s, err := game.NewSession(env, "view", &game.HumanTeam{Name: "View United", Country: "ENG"}, "Boss")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.PlayWeek(); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestTable(t *testing.T) {
	s := testSession(t)
	human, _ := s.HumanTeam()
	rows := Table(human.Division())

	if len(rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(rows))
	}
	foundHuman := false
	for i, r := range rows {
		if r.Position != i+1 {
			t.Errorf("row %d position = %d", i, r.Position)
		}
		if i > 0 && r.Points > rows[i-1].Points {
			t.Errorf("row %d has more points than the row above", i)
		}
		if r.Played != 1 {
			t.Errorf("%s played %d, want 1", r.Team, r.Played)
		}
		if r.Human {
			foundHuman = r.Team == "View United"
		}
	}
	if !foundHuman {
		t.Error("human team not flagged")
	}
	if rows[0].Zone != "promotion" || rows[3].Zone != "relegation" || rows[1].Zone != "" {
		t.Errorf("zones = %q %q %q", rows[0].Zone, rows[1].Zone, rows[3].Zone)
	}

	pool := Table(s.Game.Divisions[2])
	for _, r := range pool {
		if r.Zone != "" {
			t.Errorf("pool row %s has zone %q", r.Team, r.Zone)
		}
	}
}

func TestFixtures(t *testing.T) {
	s := testSession(t)
	d := s.Game.Divisions[0]
	rows := Fixtures(s.Game, d)

	if len(rows) != 12 {
		t.Fatalf("rows = %d, want 12", len(rows))
	}
	first := time.Date(2018, 8, 11, 0, 0, 0, 0, time.UTC)
	for _, r := range rows {
		if r.Week == 1 && (!r.Played || !r.Date.Equal(first)) {
			t.Errorf("week 1 row %+v", r)
		}
		if r.Week > 1 && r.Played {
			t.Errorf("week %d already played", r.Week)
		}
	}
}

func TestFinances(t *testing.T) {
	s := testSession(t)
	human, _ := s.HumanTeam()
	f := Finances(human)

	if len(f.Lines) != 5 {
		t.Fatalf("lines = %d, want 5", len(f.Lines))
	}
	var in, out int64
	for _, l := range f.Lines {
		if l.Income {
			in += l.Weekly
		} else {
			out += l.Weekly
		}
	}
	if in != f.WeeklyIncome || out != f.WeeklyExpense {
		t.Errorf("lines sum to %d/%d, summary says %d/%d", in, out, f.WeeklyIncome, f.WeeklyExpense)
	}
	if f.Money != human.Money {
		t.Errorf("money = %d, want %d", f.Money, human.Money)
	}
}

func TestSquadAndTeam(t *testing.T) {
	s := testSession(t)
	human, _ := s.HumanTeam()

	squad := Squad(human.Players)
	if len(squad) != len(human.Players) {
		t.Fatalf("squad = %d, want %d", len(squad), len(human.Players))
	}
	for i, p := range squad {
		if p.ID != human.Players[i].ID || p.Value != human.Players[i].CurrentValue() {
			t.Errorf("summary %d does not match player", i)
		}
	}

	sum := Team(s.Game, human)
	if sum.Name != "View United" || sum.Manager != "Boss" || sum.Division != "League 2" {
		t.Errorf("summary = %+v", sum)
	}
	if sum.Position < 1 || sum.Position > 4 {
		t.Errorf("position = %d", sum.Position)
	}
	if sum.NextOpponent == "" {
		t.Error("no next opponent")
	}
}

func TestMatch(t *testing.T) {
	s := testSession(t)
	m := s.Game.Divisions[0].WeekMatches(0)[0]
	ctx := Match(m)
	if !ctx.Finished || ctx.Minute != 90 {
		t.Errorf("context = %+v", ctx)
	}
	if len(ctx.Goals) != ctx.Score[0]+ctx.Score[1] {
		t.Errorf("%d goal lines for score %v", len(ctx.Goals), ctx.Score)
	}
	if ctx.Possession[0]+ctx.Possession[1] != 100 {
		t.Errorf("possession = %v", ctx.Possession)
	}
}

func TestMoney(t *testing.T) {
	en := NewPrinter(language.English)
	tests := []struct {
		in   int64
		want string
	}{
		{0, "$0"},
		{1000, "$1,000"},
		{1250000, "$1,250,000"},
		{-1500, "-$1,500"},
	}
	for _, tt := range tests {
		if got := en.Money(tt.in); got != tt.want {
			t.Errorf("Money(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := NewPrinter(language.German).Number(1250000); got != "1.250.000" {
		t.Errorf("German Number() = %q, want 1.250.000", got)
	}
}
