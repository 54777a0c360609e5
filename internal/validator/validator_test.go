package validator

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/derekprior/sfm/internal/config"
	"github.com/derekprior/sfm/internal/excel"
	"github.com/derekprior/sfm/internal/game"
	"github.com/derekprior/sfm/internal/rng"
)

func smallConfig() *config.Config {
	cfg := config.Default()
	cfg.Competition = config.Competition{Divisions: 2, TeamsPerDivision: 4, PromotedAndDemoted: 1, ExtraTeams: 2}
	cfg.TeamGoals.FiringThreshold = 0
	cfg.Calendar.BlackoutDates = []config.BlackoutDate{
		{Date: config.Date{Time: d(8, 18)}, Reason: "Cup Final"},
	}
	return cfg
}

func exportWorkbook(t *testing.T, cfg *config.Config) *excelize.File {
	t.Helper()
	env := game.NewEnv(cfg, rng.New(11), nil, nil)
	s, err := game.NewSession(env, "validate", &game.HumanTeam{Name: "Checker FC", Country: "ENG"}, "Boss")
	if err != nil {
		t.Fatal(err)
	}
	for range 3 {
		if _, err := s.PlayWeek(); err != nil {
			t.Fatal(err)
		}
	}
	f, err := excel.Generate(s.Game)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	return f
}

func save(t *testing.T, f *excelize.File) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "career.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs error: %v", err)
	}
	return path
}

func TestValidateExportedWorkbook(t *testing.T) {
	cfg := smallConfig()
	f := exportWorkbook(t, cfg)

	t.Run("clean export has no violations", func(t *testing.T) {
		violations, err := Validate(cfg, save(t, f))
		if err != nil {
			t.Fatalf("Validate() error: %v", err)
		}
		for _, v := range violations {
			t.Errorf("%s (row %d): %s", v.Type, v.Row, v.Message)
		}
	})

	t.Run("tampered fixture is reported", func(t *testing.T) {
		home, _ := f.GetCellValue(excel.FixturesSheet, "E2")
		f.SetCellValue(excel.FixturesSheet, "F2", home)
		violations, err := Validate(cfg, save(t, f))
		if err != nil {
			t.Fatalf("Validate() error: %v", err)
		}
		found := false
		for _, v := range violations {
			if v.Type == "error" && strings.Contains(v.Message, "plays itself") && v.Row == 2 {
				found = true
			}
		}
		if !found {
			t.Errorf("self-play not reported, got %v", violations)
		}
	})

	t.Run("missing sheet", func(t *testing.T) {
		empty := excelize.NewFile()
		if _, err := Validate(cfg, save(t, empty)); err == nil {
			t.Error("expected error for workbook without fixtures")
		}
	})
}

func d(month, day int) time.Time {
	return time.Date(2018, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func TestCheckOncePerWeek(t *testing.T) {
	t.Run("no violation when teams play once per week", func(t *testing.T) {
		games := []fixture{
			{Row: 2, Week: 1, Home: "Ashford", Away: "Bexley"},
			{Row: 3, Week: 1, Home: "Crawley", Away: "Dover"},
		}
		if v := checkOncePerWeek(games); len(v) != 0 {
			t.Errorf("expected 0 violations, got %d", len(v))
		}
	})

	t.Run("violation when a team plays twice", func(t *testing.T) {
		games := []fixture{
			{Row: 2, Week: 1, Home: "Ashford", Away: "Bexley"},
			{Row: 3, Week: 1, Home: "Crawley", Away: "Ashford"},
		}
		v := checkOncePerWeek(games)
		if len(v) != 1 {
			t.Fatalf("expected 1 violation, got %d", len(v))
		}
		if v[0].Row != 3 {
			t.Errorf("row = %d, want 3", v[0].Row)
		}
	})
}

func TestCheckPairings(t *testing.T) {
	full := []fixture{
		{Row: 2, Home: "A", Away: "B"},
		{Row: 3, Home: "B", Away: "A"},
	}

	t.Run("double round robin is clean", func(t *testing.T) {
		if v := checkPairings("League 1", full); len(v) != 0 {
			t.Errorf("expected 0 violations, got %v", v)
		}
	})

	t.Run("missing return fixture", func(t *testing.T) {
		v := checkPairings("League 1", full[:1])
		if len(v) != 1 || !strings.Contains(v[0].Message, "B never hosts A") {
			t.Errorf("got %v", v)
		}
	})

	t.Run("repeated fixture", func(t *testing.T) {
		games := append(full, fixture{Row: 4, Home: "A", Away: "B"})
		v := checkPairings("League 1", games)
		if len(v) != 1 || v[0].Row != 4 {
			t.Errorf("got %v", v)
		}
	})
}

func TestCheckWeekCount(t *testing.T) {
	cfg := smallConfig()
	var games []fixture
	for w := 1; w <= 5; w++ {
		games = append(games, fixture{Row: w + 1, Week: w})
	}
	v := checkWeekCount(cfg, "League 1", games)
	if len(v) != 1 || !strings.Contains(v[0].Message, "5 weeks scheduled, want 6") {
		t.Errorf("got %v", v)
	}

	games = append(games, fixture{Row: 9, Week: 7})
	v = checkWeekCount(cfg, "League 1", games)
	if len(v) != 2 {
		t.Errorf("expected out-of-range week and short count, got %v", v)
	}
}

func TestCheckDates(t *testing.T) {
	t.Run("weeks out of order", func(t *testing.T) {
		games := []fixture{
			{Row: 2, Week: 1, Date: d(8, 18)},
			{Row: 3, Week: 2, Date: d(8, 11)},
		}
		v := checkDates(games)
		if len(v) != 1 || v[0].Type != "error" {
			t.Errorf("got %v", v)
		}
	})

	t.Run("week split across days", func(t *testing.T) {
		games := []fixture{
			{Row: 2, Week: 1, Date: d(8, 11)},
			{Row: 3, Week: 1, Date: d(8, 12)},
		}
		v := checkDates(games)
		if len(v) != 1 || v[0].Type != "warning" || v[0].Row != 3 {
			t.Errorf("got %v", v)
		}
	})
}

func TestCheckResultsInOrder(t *testing.T) {
	games := []fixture{
		{Row: 2, Week: 1, Played: true},
		{Row: 3, Week: 2},
		{Row: 4, Week: 3, Played: true},
	}
	v := checkResultsInOrder(games)
	if len(v) != 1 || v[0].Row != 4 {
		t.Errorf("got %v", v)
	}
}

func TestCheckBlackouts(t *testing.T) {
	cfg := smallConfig()

	t.Run("first season", func(t *testing.T) {
		games := []fixture{
			{Row: 2, Date: d(8, 11), Home: "A", Away: "B"},
			{Row: 3, Date: d(8, 18), Home: "B", Away: "A"},
		}
		v := checkBlackouts(cfg, games)
		if len(v) != 1 || v[0].Row != 3 {
			t.Errorf("got %v", v)
		}
	})

	t.Run("shifted to later season", func(t *testing.T) {
		games := []fixture{
			{Row: 2, Date: d(8, 11).AddDate(1, 0, 0), Home: "A", Away: "B"},
			{Row: 3, Date: d(8, 18).AddDate(1, 0, 0), Home: "B", Away: "A"},
		}
		v := checkBlackouts(cfg, games)
		if len(v) != 1 || v[0].Row != 3 {
			t.Errorf("got %v", v)
		}
	})
}

func TestParseResult(t *testing.T) {
	tests := []struct {
		cell       string
		home, away int
		ok         bool
	}{
		{"2 - 1", 2, 1, true},
		{"0 - 0", 0, 0, true},
		{"2-1", 0, 0, false},
		{"x - 1", 0, 0, false},
		{"-1 - 1", 0, 0, false},
	}
	for _, tt := range tests {
		h, a, ok := parseResult(tt.cell)
		if ok != tt.ok || h != tt.home || a != tt.away {
			t.Errorf("parseResult(%q) = %d, %d, %v", tt.cell, h, a, ok)
		}
	}
}
