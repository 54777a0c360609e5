package calendar

import (
	"testing"
	"time"

	"github.com/derekprior/sfm/internal/config"
)

func mustDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func date(s string) config.Date {
	return config.Date{Time: mustDate(s)}
}

func testCalendar() config.Calendar {
	return config.Calendar{
		FirstMatchday: date("2018-08-11"), // Saturday
		BlackoutDates: []config.BlackoutDate{
			{Date: date("2018-08-25"), Reason: "Cup Final"},
			{Date: date("2018-08-26"), Reason: "Cup Final"},
		},
	}
}

func TestMatchdays(t *testing.T) {
	days, skipped := Matchdays(testCalendar(), 1, 4)

	t.Run("count", func(t *testing.T) {
		if len(days) != 4 {
			t.Fatalf("matchdays = %d, want 4", len(days))
		}
	})

	t.Run("weekly cadence", func(t *testing.T) {
		if !days[0].Date.Equal(mustDate("2018-08-11")) {
			t.Errorf("week 1 = %v, want 2018-08-11", days[0].Date)
		}
		if !days[1].Date.Equal(mustDate("2018-08-18")) {
			t.Errorf("week 2 = %v, want 2018-08-18", days[1].Date)
		}
		if !days[3].Date.Equal(mustDate("2018-09-01")) {
			t.Errorf("week 4 = %v, want 2018-09-01", days[3].Date)
		}
	})

	t.Run("blackout pushes matchday forward", func(t *testing.T) {
		if !days[2].Date.Equal(mustDate("2018-08-27")) {
			t.Errorf("week 3 = %v, want 2018-08-27", days[2].Date)
		}
		if len(skipped) != 2 {
			t.Fatalf("skipped = %d, want 2", len(skipped))
		}
		if skipped[0].Reason != "Cup Final" {
			t.Errorf("reason = %q, want Cup Final", skipped[0].Reason)
		}
	})

	t.Run("weeks numbered from one", func(t *testing.T) {
		for i, d := range days {
			if d.Week != i+1 {
				t.Errorf("days[%d].Week = %d", i, d.Week)
			}
		}
	})
}

func TestSeasonStart(t *testing.T) {
	cal := testCalendar()

	if got := SeasonStart(cal, 1); !got.Equal(mustDate("2018-08-11")) {
		t.Errorf("season 1 = %v", got)
	}
	// 2019-08-11 is a Sunday; the season keeps Saturday matchdays.
	if got := SeasonStart(cal, 2); !got.Equal(mustDate("2019-08-17")) {
		t.Errorf("season 2 = %v, want 2019-08-17", got)
	}
}

func TestBlackoutsShiftWithSeason(t *testing.T) {
	cal := config.Calendar{
		FirstMatchday: date("2018-08-11"),
		BlackoutDates: []config.BlackoutDate{{Date: date("2018-08-17"), Reason: "Friendly"}},
	}
	// Season 2 starts 2019-08-17, which is the shifted blackout.
	got := DateOf(cal, 2, 1)
	if !got.Equal(mustDate("2019-08-18")) {
		t.Errorf("DateOf(season 2, week 1) = %v, want 2019-08-18", got)
	}
}
