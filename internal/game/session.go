package game

import (
	"fmt"
	"time"
)

// Session owns one game graph and the environment it runs in. Commands
// operate on the session rather than on shared globals.
type Session struct {
	Game *Game
	Env  *Env
}

// NewSession starts a fresh game. human may be nil for an all-AI league.
func NewSession(env *Env, name string, human *HumanTeam, managerName string) (*Session, error) {
	g := New(env, name)
	if err := g.Start(human, managerName); err != nil {
		return nil, fmt.Errorf("starting game: %w", err)
	}
	g.StartOfSeason()
	return &Session{Game: g, Env: env}, nil
}

// LoadSession decodes a snapshot into a session bound to env.
func LoadSession(env *Env, data []byte) (*Session, error) {
	g, err := Decode(data, env)
	if err != nil {
		return nil, err
	}
	return &Session{Game: g, Env: env}, nil
}

func (s *Session) Snapshot() ([]byte, error) { return Encode(s.Game) }

func (s *Session) HumanTeam() (*Team, error) { return s.Game.HumanTeam() }

// WeekReport summarizes one played week.
type WeekReport struct {
	Season      int
	Week        int
	Date        time.Time
	Matches     []*Match
	News        []string
	SeasonEnded bool
	GameOver    bool
	EndReason   EndReason
}

// PlayWeek simulates the current week, advances every team and rolls the
// season over once the last week has been played.
func (s *Session) PlayWeek() (WeekReport, error) {
	g := s.Game
	if g.Ended {
		return WeekReport{}, ErrGameOver
	}

	rep := WeekReport{Season: g.Season, Week: g.Week + 1, Date: g.Date()}
	human, herr := g.HumanTeam()
	if herr == nil && human.division != nil {
		rep.Matches = human.division.WeekMatches(g.Week)
	}

	g.SimulateWeeklyMatches()
	g.NextWeek()
	if herr == nil {
		rep.News = human.News.Lines()
	}

	if g.IsSeasonOver() {
		g.EndOfSeason()
		rep.SeasonEnded = true
		if !g.Ended {
			g.StartOfSeason()
		}
	}
	rep.GameOver = g.Ended
	rep.EndReason = g.EndReason
	s.Env.Log.Debug("week played", "season", rep.Season, "week", rep.Week, "game_over", rep.GameOver)
	return rep, nil
}

// PlaySeason plays weeks until the current season ends or the game is over.
func (s *Session) PlaySeason() ([]WeekReport, error) {
	var reports []WeekReport
	for {
		rep, err := s.PlayWeek()
		if err != nil {
			return reports, err
		}
		reports = append(reports, rep)
		if rep.SeasonEnded || rep.GameOver {
			return reports, nil
		}
	}
}
