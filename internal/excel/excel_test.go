package excel

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/derekprior/sfm/internal/config"
	"github.com/derekprior/sfm/internal/game"
	"github.com/derekprior/sfm/internal/rng"
)

func testGame(t *testing.T) *game.Game {
	t.Helper()
	cfg := config.Default()
	cfg.Competition = config.Competition{Divisions: 2, TeamsPerDivision: 4, PromotedAndDemoted: 1, ExtraTeams: 2}
	cfg.TeamGoals.FiringThreshold = 0
	cfg.Calendar.BlackoutDates = []config.BlackoutDate{{Date: config.Date{Time: cfg.Calendar.FirstMatchday.Time.AddDate(0, 0, 7)}, Reason: "Cup Final"}}
	env := game.NewEnv(cfg, rng.New(3), nil, nil)
	s, err := game.NewSession(env, "excel", &game.HumanTeam{Name: "Export Athletic", Country: "ENG"}, "Boss")
	if err != nil {
		t.Fatal(err)
	}
	for range 2 {
		if _, err := s.PlayWeek(); err != nil {
			t.Fatal(err)
		}
	}
	return s.Game
}

func TestGenerateWorkbook(t *testing.T) {
	g := testGame(t)
	f, err := Generate(g)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	t.Run("sheets", func(t *testing.T) {
		want := []string{"League 1", "League 2", FixturesSheet, "Squad", "Finances"}
		for _, name := range want {
			idx, err := f.GetSheetIndex(name)
			if err != nil || idx < 0 {
				t.Errorf("sheet %q not found", name)
			}
		}
		if idx, _ := f.GetSheetIndex("Extra Teams"); idx >= 0 {
			t.Error("extra pool should not get a table sheet")
		}
		if idx, _ := f.GetSheetIndex("Sheet1"); idx >= 0 {
			t.Error("default sheet not removed")
		}
	})

	t.Run("table rows", func(t *testing.T) {
		rows, err := f.GetRows("League 2")
		if err != nil {
			t.Fatal(err)
		}
		if len(rows) != 5 {
			t.Fatalf("rows = %d, want header + 4", len(rows))
		}
		if rows[0][1] != "Team" || rows[1][0] != "1" {
			t.Errorf("unexpected table layout: %v / %v", rows[0], rows[1])
		}
		found := false
		for _, r := range rows[1:] {
			if r[1] == "Export Athletic" {
				found = true
				if r[2] != "2" {
					t.Errorf("human played %s, want 2", r[2])
				}
			}
		}
		if !found {
			t.Error("human team missing from League 2")
		}
	})

	t.Run("fixtures", func(t *testing.T) {
		rows, err := f.GetRows(FixturesSheet)
		if err != nil {
			t.Fatal(err)
		}
		for i, h := range FixtureHeaders[:7] {
			if rows[0][i] != h {
				t.Errorf("header %d = %q, want %q", i, rows[0][i], h)
			}
		}
		// two divisions of four: 6 weeks of 2 matches each
		if len(rows)-1 != 24 {
			t.Fatalf("fixture rows = %d, want 24", len(rows)-1)
		}
		played, moved := 0, 0
		for _, r := range rows[1:] {
			if len(r) > 6 && r[6] != "" {
				played++
			}
			if len(r) > 7 && r[7] == "moved: Cup Final" {
				moved++
				if r[1] != "2" || r[2] != "08/19/2018" {
					t.Errorf("moved fixture row %v", r)
				}
			}
		}
		if played != 8 {
			t.Errorf("played fixtures = %d, want 8", played)
		}
		if moved != 4 {
			t.Errorf("moved fixtures = %d, want 4", moved)
		}
	})

	t.Run("squad", func(t *testing.T) {
		human, _ := g.HumanTeam()
		rows, err := f.GetRows("Squad")
		if err != nil {
			t.Fatal(err)
		}
		if len(rows)-1 != len(human.Players) {
			t.Errorf("squad rows = %d, want %d", len(rows)-1, len(human.Players))
		}
	})

	t.Run("saves and reopens", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "career.xlsx")
		if err := f.SaveAs(path); err != nil {
			t.Fatal(err)
		}
		r, err := excelize.OpenFile(path)
		if err != nil {
			t.Fatal(err)
		}
		defer r.Close()
		val, _ := r.GetCellValue("Finances", "A2")
		if val != "Salaries" {
			t.Errorf("Finances A2 = %q, want Salaries", val)
		}
	})
}

func TestColLetter(t *testing.T) {
	tests := []struct {
		col  int
		want string
	}{
		{1, "A"}, {11, "K"}, {26, "Z"}, {27, "AA"}, {52, "AZ"},
	}
	for _, tt := range tests {
		if got := colLetter(tt.col); got != tt.want {
			t.Errorf("colLetter(%d) = %q, want %q", tt.col, got, tt.want)
		}
	}
}
