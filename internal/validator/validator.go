package validator

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/derekprior/sfm/internal/config"
	"github.com/derekprior/sfm/internal/excel"
)

// Violation represents a problem found in an exported fixtures sheet.
type Violation struct {
	Row     int
	Type    string // "error" or "warning"
	Message string
}

// Validate reads an exported workbook and checks its fixtures against the
// competition rules in cfg.
func Validate(cfg *config.Config, path string) ([]Violation, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	fixtures, violations, err := readFixtures(f)
	if err != nil {
		return nil, fmt.Errorf("reading fixtures: %w", err)
	}

	byDivision := make(map[string][]fixture)
	var order []string
	for _, fx := range fixtures {
		if _, ok := byDivision[fx.Division]; !ok {
			order = append(order, fx.Division)
		}
		byDivision[fx.Division] = append(byDivision[fx.Division], fx)
	}
	for _, div := range order {
		games := byDivision[div]
		violations = append(violations, checkSelfPlay(games)...)
		violations = append(violations, checkOncePerWeek(games)...)
		violations = append(violations, checkWeekCount(cfg, div, games)...)
		violations = append(violations, checkPairings(div, games)...)
		violations = append(violations, checkDates(games)...)
		violations = append(violations, checkResultsInOrder(games)...)
	}
	violations = append(violations, checkBlackouts(cfg, fixtures)...)

	return violations, nil
}

type fixture struct {
	Row      int
	Division string
	Week     int
	Date     time.Time
	Home     string
	Away     string
	Played   bool
}

func readFixtures(f *excelize.File) ([]fixture, []Violation, error) {
	rows, err := f.GetRows(excel.FixturesSheet)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", excel.FixturesSheet, err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("%s is empty", excel.FixturesSheet)
	}
	for i, h := range excel.FixtureHeaders[:6] {
		if i >= len(rows[0]) || rows[0][i] != h {
			return nil, nil, fmt.Errorf("%s: column %d should be %q", excel.FixturesSheet, i+1, h)
		}
	}

	var fixtures []fixture
	var violations []Violation
	for i, row := range rows[1:] {
		rowNum := i + 2
		if len(row) == 0 || row[0] == "" {
			continue
		}
		if len(row) < 6 {
			violations = append(violations, Violation{Row: rowNum, Type: "error", Message: "incomplete fixture row"})
			continue
		}
		week, err := strconv.Atoi(row[1])
		if err != nil {
			violations = append(violations, Violation{Row: rowNum, Type: "error", Message: fmt.Sprintf("invalid week %q", row[1])})
			continue
		}
		date, err := time.Parse("01/02/2006", row[2])
		if err != nil {
			violations = append(violations, Violation{Row: rowNum, Type: "error", Message: fmt.Sprintf("invalid date %q", row[2])})
			continue
		}
		fx := fixture{Row: rowNum, Division: row[0], Week: week, Date: date, Home: row[4], Away: row[5]}
		if len(row) > 6 && row[6] != "" {
			if _, _, ok := parseResult(row[6]); !ok {
				violations = append(violations, Violation{Row: rowNum, Type: "error", Message: fmt.Sprintf("invalid result %q", row[6])})
			}
			fx.Played = true
		}
		fixtures = append(fixtures, fx)
	}
	return fixtures, violations, nil
}

// parseResult parses "H - A" into the home and away goals.
func parseResult(cell string) (home, away int, ok bool) {
	h, a, found := strings.Cut(cell, " - ")
	if !found {
		return 0, 0, false
	}
	home, err := strconv.Atoi(h)
	if err != nil || home < 0 {
		return 0, 0, false
	}
	away, err = strconv.Atoi(a)
	if err != nil || away < 0 {
		return 0, 0, false
	}
	return home, away, true
}

func checkSelfPlay(games []fixture) []Violation {
	var violations []Violation
	for _, g := range games {
		if g.Home == g.Away {
			violations = append(violations, Violation{
				Row:     g.Row,
				Type:    "error",
				Message: fmt.Sprintf("%s plays itself in week %d", g.Home, g.Week),
			})
		}
	}
	return violations
}

func checkOncePerWeek(games []fixture) []Violation {
	type teamWeek struct {
		team string
		week int
	}
	counts := make(map[teamWeek][]int)
	for _, g := range games {
		counts[teamWeek{g.Home, g.Week}] = append(counts[teamWeek{g.Home, g.Week}], g.Row)
		counts[teamWeek{g.Away, g.Week}] = append(counts[teamWeek{g.Away, g.Week}], g.Row)
	}

	var violations []Violation
	for tw, rows := range counts {
		if len(rows) > 1 {
			violations = append(violations, Violation{
				Row:     rows[1],
				Type:    "error",
				Message: fmt.Sprintf("%s plays %d games in week %d", tw.team, len(rows), tw.week),
			})
		}
	}
	sortByRow(violations)
	return violations
}

func checkWeekCount(cfg *config.Config, division string, games []fixture) []Violation {
	want := cfg.Competition.TotalGames()
	weeks := make(map[int]bool)
	var violations []Violation
	for _, g := range games {
		if g.Week < 1 || g.Week > want {
			violations = append(violations, Violation{
				Row:     g.Row,
				Type:    "error",
				Message: fmt.Sprintf("%s: week %d outside 1-%d", division, g.Week, want),
			})
			continue
		}
		weeks[g.Week] = true
	}
	if len(weeks) != want {
		violations = append(violations, Violation{
			Type:    "error",
			Message: fmt.Sprintf("%s: %d weeks scheduled, want %d", division, len(weeks), want),
		})
	}
	return violations
}

// checkPairings requires every ordered pair of teams in the division to
// meet exactly once: each club hosts every other club one time.
func checkPairings(division string, games []fixture) []Violation {
	type pair struct{ home, away string }
	seen := make(map[pair][]int)
	teams := make(map[string]bool)
	for _, g := range games {
		teams[g.Home] = true
		teams[g.Away] = true
		if g.Home != g.Away {
			seen[pair{g.Home, g.Away}] = append(seen[pair{g.Home, g.Away}], g.Row)
		}
	}

	names := make([]string, 0, len(teams))
	for name := range teams {
		names = append(names, name)
	}
	sort.Strings(names)

	var violations []Violation
	for _, home := range names {
		for _, away := range names {
			if home == away {
				continue
			}
			rows := seen[pair{home, away}]
			switch {
			case len(rows) == 0:
				violations = append(violations, Violation{
					Type:    "error",
					Message: fmt.Sprintf("%s: %s never hosts %s", division, home, away),
				})
			case len(rows) > 1:
				violations = append(violations, Violation{
					Row:     rows[1],
					Type:    "error",
					Message: fmt.Sprintf("%s: %s hosts %s %d times", division, home, away, len(rows)),
				})
			}
		}
	}
	return violations
}

// checkDates wants one date per week with weeks in calendar order.
func checkDates(games []fixture) []Violation {
	dates := make(map[int]time.Time)
	var violations []Violation
	for _, g := range games {
		d, ok := dates[g.Week]
		if !ok {
			dates[g.Week] = g.Date
			continue
		}
		if !d.Equal(g.Date) {
			violations = append(violations, Violation{
				Row:     g.Row,
				Type:    "warning",
				Message: fmt.Sprintf("week %d played on both %s and %s", g.Week, d.Format("01/02"), g.Date.Format("01/02")),
			})
		}
	}

	weeks := make([]int, 0, len(dates))
	for w := range dates {
		weeks = append(weeks, w)
	}
	sort.Ints(weeks)
	for i := 1; i < len(weeks); i++ {
		prev, cur := dates[weeks[i-1]], dates[weeks[i]]
		if !cur.After(prev) {
			violations = append(violations, Violation{
				Type: "error",
				Message: fmt.Sprintf("week %d (%s) is not after week %d (%s)",
					weeks[i], cur.Format("01/02/2006"), weeks[i-1], prev.Format("01/02/2006")),
			})
		}
	}
	return violations
}

// checkResultsInOrder flags a played week that follows an unplayed one.
func checkResultsInOrder(games []fixture) []Violation {
	firstUnplayed := 0
	for _, g := range games {
		if !g.Played && (firstUnplayed == 0 || g.Week < firstUnplayed) {
			firstUnplayed = g.Week
		}
	}
	if firstUnplayed == 0 {
		return nil
	}
	var violations []Violation
	for _, g := range games {
		if g.Played && g.Week > firstUnplayed {
			violations = append(violations, Violation{
				Row:     g.Row,
				Type:    "warning",
				Message: fmt.Sprintf("%s v %s has a result but week %d is unplayed", g.Home, g.Away, firstUnplayed),
			})
		}
	}
	return violations
}

// checkBlackouts flags fixtures dated on a blackout. Blackouts are given
// for the first season, so they are shifted to the year the sheet starts in.
func checkBlackouts(cfg *config.Config, games []fixture) []Violation {
	if len(games) == 0 || len(cfg.Calendar.BlackoutDates) == 0 {
		return nil
	}
	start := games[0].Date
	for _, g := range games {
		if g.Date.Before(start) {
			start = g.Date
		}
	}
	shift := start.Year() - cfg.Calendar.FirstMatchday.Time.Year()

	blackouts := make(map[time.Time]string)
	for _, b := range cfg.Calendar.BlackoutDates {
		blackouts[b.Date.Time.AddDate(shift, 0, 0)] = b.Reason
	}
	var violations []Violation
	for _, g := range games {
		if reason, ok := blackouts[g.Date]; ok {
			violations = append(violations, Violation{
				Row:     g.Row,
				Type:    "error",
				Message: fmt.Sprintf("%s v %s on blackout date %s (%s)", g.Home, g.Away, g.Date.Format("01/02/2006"), reason),
			})
		}
	}
	return violations
}

func sortByRow(violations []Violation) {
	sort.Slice(violations, func(i, j int) bool {
		return violations[i].Row < violations[j].Row
	})
}
