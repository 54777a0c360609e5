package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/derekprior/sfm/internal/calendar"
	"github.com/derekprior/sfm/internal/game"
	"github.com/derekprior/sfm/internal/view"
)

// FixturesSheet is the sheet the validator reads back.
const FixturesSheet = "Fixtures"

// FixtureHeaders are the columns of the fixtures sheet, in order.
var FixtureHeaders = []string{"Division", "Week", "Date", "Day", "Home", "Away", "Result", "Note"}

// Generate creates a workbook with a table per playable division, the
// season's fixtures and, when there is a human club, its squad and
// finances.
func Generate(g *game.Game) (*excelize.File, error) {
	f := excelize.NewFile()

	// Set default font for the workbook
	f.SetDefaultFont("Arial")
	st, err := newStyles(f)
	if err != nil {
		return nil, fmt.Errorf("creating styles: %w", err)
	}

	for _, d := range g.Divisions {
		if !d.Playable {
			continue
		}
		if err := writeTableSheet(f, st, d); err != nil {
			return nil, fmt.Errorf("writing %s table: %w", d.Name, err)
		}
	}
	if err := writeFixturesSheet(f, st, g); err != nil {
		return nil, fmt.Errorf("writing fixtures sheet: %w", err)
	}
	if human, err := g.HumanTeam(); err == nil {
		if err := writeSquadSheet(f, st, human); err != nil {
			return nil, fmt.Errorf("writing squad sheet: %w", err)
		}
		if err := writeFinancesSheet(f, st, human); err != nil {
			return nil, fmt.Errorf("writing finances sheet: %w", err)
		}
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

type styles struct {
	header   int
	cell     int
	centered int
	money    int
	promote  int
	relegate int
}

func newStyles(f *excelize.File) (styles, error) {
	var st styles
	var err error
	st.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 16, Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return st, err
	}
	if st.cell, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Size: 16, Family: "Arial"}}); err != nil {
		return st, err
	}
	st.centered, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 16, Family: "Arial"},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return st, err
	}
	if st.money, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Size: 16, Family: "Arial"}, NumFmt: 3}); err != nil {
		return st, err
	}
	st.promote, err = f.NewConditionalStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#C6EFCE"}},
	})
	if err != nil {
		return st, err
	}
	st.relegate, err = f.NewConditionalStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#FFC7CE"}},
	})
	return st, err
}

func writeHeaders(f *excelize.File, st styles, sheet string, headers []string) {
	for i, h := range headers {
		f.SetCellValue(sheet, cellRef(i+1, 1), h)
	}
	f.SetCellStyle(sheet, cellRef(1, 1), cellRef(len(headers), 1), st.header)
}

func writeTableSheet(f *excelize.File, st styles, d *game.Division) error {
	sheet := d.Name
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	headers := []string{"Pos", "Team", "P", "W", "D", "L", "GF", "GA", "GD", "Pts", "Zone"}
	writeHeaders(f, st, sheet, headers)

	rows := view.Table(d)
	for i, r := range rows {
		row := i + 2
		values := []any{r.Position, r.Team, r.Played, r.Wins, r.Draws, r.Losses, r.GoalsFor, r.GoalsAgainst, r.GoalDifference, r.Points, r.Zone}
		for col, v := range values {
			f.SetCellValue(sheet, cellRef(col+1, row), v)
		}
		f.SetCellStyle(sheet, cellRef(1, row), cellRef(len(headers), row), st.centered)
		f.SetCellStyle(sheet, cellRef(2, row), cellRef(2, row), st.cell)
	}

	// Set column widths (sized for Arial 16)
	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "B", 30)
	f.SetColWidth(sheet, "C", "J", 8)
	f.SetColWidth(sheet, "K", "K", 14)

	// Colour the promotion and relegation places
	if len(rows) == 0 {
		return nil
	}
	cellRange := fmt.Sprintf("A2:K%d", len(rows)+1)
	return f.SetConditionalFormat(sheet, cellRange, []excelize.ConditionalFormatOptions{
		{Type: "formula", Criteria: `$K2="promotion"`, Format: &st.promote},
		{Type: "formula", Criteria: `$K2="relegation"`, Format: &st.relegate},
	})
}

func writeFixturesSheet(f *excelize.File, st styles, g *game.Game) error {
	sheet := FixturesSheet
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	writeHeaders(f, st, sheet, FixtureHeaders)

	cal := g.Env().Config.Calendar
	start := calendar.SeasonStart(cal, g.Season)

	row := 2
	for _, d := range g.Divisions {
		if !d.Playable {
			continue
		}
		_, skipped := calendar.Matchdays(cal, g.Season, len(d.Weeks))
		moved := make(map[string]string)
		for _, s := range skipped {
			moved[s.Date.Format("2006-01-02")] = s.Reason
		}

		for _, fx := range view.Fixtures(g, d) {
			result := ""
			if fx.Played {
				result = fmt.Sprintf("%d - %d", fx.HomeGoals, fx.AwayGoals)
			}
			note := ""
			planned := start.AddDate(0, 0, 7*(fx.Week-1)).Format("2006-01-02")
			if reason, ok := moved[planned]; ok {
				note = "moved: " + reason
			}
			values := []any{fx.Division, fx.Week, fx.Date.Format("01/02/2006"), fx.Date.Format("Mon"), fx.Home, fx.Away, result, note}
			for col, v := range values {
				f.SetCellValue(sheet, cellRef(col+1, row), v)
			}
			f.SetCellStyle(sheet, cellRef(1, row), cellRef(len(FixtureHeaders), row), st.cell)
			f.SetCellStyle(sheet, cellRef(7, row), cellRef(7, row), st.centered)
			row++
		}
	}

	widths := map[string]float64{"A": 16, "B": 8, "C": 18, "D": 8, "E": 30, "F": 30, "G": 12, "H": 30}
	for col, w := range widths {
		f.SetColWidth(sheet, col, col, w)
	}
	return nil
}

func writeSquadSheet(f *excelize.File, st styles, t *game.Team) error {
	sheet := "Squad"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	headers := []string{"Name", "Pos", "Age", "Skill", "Status", "Injury", "Contract", "Salary", "Value", "Games", "Goals", "Country"}
	writeHeaders(f, st, sheet, headers)

	for i, p := range view.Squad(t.Players) {
		row := i + 2
		values := []any{p.Name, p.Position, p.Age, p.Skill, p.Status, p.Injury, p.Contract, p.Salary, p.Value, p.Games, p.Goals, p.Country}
		for col, v := range values {
			f.SetCellValue(sheet, cellRef(col+1, row), v)
		}
		f.SetCellStyle(sheet, cellRef(1, row), cellRef(len(headers), row), st.centered)
		f.SetCellStyle(sheet, cellRef(1, row), cellRef(1, row), st.cell)
		f.SetCellStyle(sheet, cellRef(8, row), cellRef(9, row), st.money)
	}

	f.SetColWidth(sheet, "A", "A", 28)
	f.SetColWidth(sheet, "B", "G", 10)
	f.SetColWidth(sheet, "H", "I", 18)
	f.SetColWidth(sheet, "J", "L", 10)
	return nil
}

func writeFinancesSheet(f *excelize.File, st styles, t *game.Team) error {
	sheet := "Finances"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	writeHeaders(f, st, sheet, []string{"Category", "Type", "Week", "Season"})

	sum := view.Finances(t)
	row := 2
	for _, l := range sum.Lines {
		kind := "Expense"
		if l.Income {
			kind = "Income"
		}
		f.SetCellValue(sheet, cellRef(1, row), l.Category)
		f.SetCellValue(sheet, cellRef(2, row), kind)
		f.SetCellValue(sheet, cellRef(3, row), l.Weekly)
		f.SetCellValue(sheet, cellRef(4, row), l.Yearly)
		row++
	}
	totals := []struct {
		label          string
		weekly, yearly int64
	}{
		{"Total income", sum.WeeklyIncome, sum.YearlyIncome},
		{"Total expense", sum.WeeklyExpense, sum.YearlyExpense},
		{"Balance", sum.Money, sum.Money},
	}
	for _, tot := range totals {
		f.SetCellValue(sheet, cellRef(1, row), tot.label)
		f.SetCellValue(sheet, cellRef(3, row), tot.weekly)
		f.SetCellValue(sheet, cellRef(4, row), tot.yearly)
		row++
	}
	f.SetCellStyle(sheet, "A2", cellRef(2, row-1), st.cell)
	f.SetCellStyle(sheet, "C2", cellRef(4, row-1), st.money)

	f.SetColWidth(sheet, "A", "A", 24)
	f.SetColWidth(sheet, "B", "B", 12)
	f.SetColWidth(sheet, "C", "D", 20)
	return nil
}

func cellRef(col, row int) string {
	return fmt.Sprintf("%s%d", colLetter(col), row)
}

func colLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}
