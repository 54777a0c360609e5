// Package calendar places schedule weeks on real dates.
package calendar

import (
	"time"

	"github.com/derekprior/sfm/internal/config"
)

// Matchday is the date a schedule week is played on.
type Matchday struct {
	Week int
	Date time.Time
}

// Skipped is a date a matchday would have fallen on but could not.
type Skipped struct {
	Date   time.Time
	Reason string
}

// SeasonStart returns the first matchday of season (1-based). Later seasons
// start one year on, moved forward to the same weekday as the first season.
func SeasonStart(cal config.Calendar, season int) time.Time {
	base := cal.FirstMatchday.Time
	if season <= 1 {
		return base
	}
	d := base.AddDate(season-1, 0, 0)
	for d.Weekday() != base.Weekday() {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// Matchdays lays weeks matchdays a week apart from the season start. A
// matchday landing on a blackout date moves to the next free day; the
// following weeks keep their weekly cadence.
func Matchdays(cal config.Calendar, season, weeks int) ([]Matchday, []Skipped) {
	blackouts := blackoutsFor(cal, season)

	start := SeasonStart(cal, season)
	days := make([]Matchday, 0, weeks)
	var skipped []Skipped
	for w := 0; w < weeks; w++ {
		d := start.AddDate(0, 0, 7*w)
		for {
			reason, blocked := blackouts[d]
			if !blocked {
				break
			}
			skipped = append(skipped, Skipped{Date: d, Reason: reason})
			d = d.AddDate(0, 0, 1)
		}
		days = append(days, Matchday{Week: w + 1, Date: d})
	}
	return days, skipped
}

// DateOf returns the matchday date of week (1-based) in season.
func DateOf(cal config.Calendar, season, week int) time.Time {
	if week < 1 {
		week = 1
	}
	days, _ := Matchdays(cal, season, week)
	return days[week-1].Date
}

func blackoutsFor(cal config.Calendar, season int) map[time.Time]string {
	shift := season - 1
	if shift < 0 {
		shift = 0
	}
	m := make(map[time.Time]string, len(cal.BlackoutDates))
	for _, b := range cal.BlackoutDates {
		m[b.Date.Time.AddDate(shift, 0, 0)] = b.Reason
	}
	return m
}
