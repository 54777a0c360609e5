package game

import "strconv"

// SeasonRecord is a manager's league record for one season. The current
// season's record is kept up to date after every match.
type SeasonRecord struct {
	Division      string      `json:"division"`
	DivisionLevel int         `json:"division_level"`
	Position      int         `json:"position"`
	Points        int         `json:"points"`
	Stats         LeagueStats `json:"stats"`
}

type CareerStats struct {
	Games           int
	Wins            int
	Draws           int
	Losses          int
	GoalsFor        int
	GoalsAgainst    int
	Points          int
	Promotions      int
	Relegations     int
	Championships   int
	TopFlightTitles int
}

type Manager struct {
	Name    string         `json:"name"`
	TeamID  string         `json:"team_id"`
	Human   bool           `json:"human"`
	Seasons []SeasonRecord `json:"seasons"`

	team *Team
	env  *Env
}

func newManager(env *Env, name string, team *Team, human bool) *Manager {
	m := &Manager{Name: name, TeamID: team.ID, Human: human, team: team, env: env}
	team.manager = m
	return m
}

func (m *Manager) Team() *Team { return m.team }

func (m *Manager) record() SeasonRecord {
	t := m.team
	rec := SeasonRecord{Stats: t.Stats, Points: t.Points()}
	if d := t.division; d != nil {
		rec.Division = d.Name
		rec.DivisionLevel = d.Level
		rec.Position = d.TeamPosition(t)
	}
	return rec
}

// UpdateStats refreshes the current season's record.
func (m *Manager) UpdateStats() {
	if len(m.Seasons) == 0 || m.team == nil {
		return
	}
	m.Seasons[len(m.Seasons)-1] = m.record()
}

// NewSeason opens a record for the season about to start.
func (m *Manager) NewSeason() {
	if m.team == nil {
		return
	}
	m.Seasons = append(m.Seasons, m.record())
}

// divisionMultiplier weights a season by how high the division sits.
func (m *Manager) divisionMultiplier(level int) int {
	return m.env.Config.Competition.Divisions - level
}

// Points scores a career: league points weighted by division, plus bonuses
// for top-three finishes and titles.
func (m *Manager) Points() int {
	cfg := m.env.Config.Manager
	points := 0
	for _, s := range m.Seasons {
		multi := m.divisionMultiplier(s.DivisionLevel)
		points += s.Points * multi
		if s.Position >= 1 && s.Position <= 3 {
			points += cfg.PointsPerTop3Position * (4 - s.Position) * multi
		}
		if s.Position == 1 {
			points += cfg.PointsPerChampionship * multi
		}
	}
	return points
}

// Championships counts titles per division level.
func (m *Manager) Championships() []int {
	titles := make([]int, m.env.Config.Competition.Divisions)
	for _, s := range m.Seasons {
		if s.Position == 1 && s.DivisionLevel < len(titles) {
			titles[s.DivisionLevel]++
		}
	}
	return titles
}

func (m *Manager) CareerStats() CareerStats {
	var c CareerStats
	for i, s := range m.Seasons {
		c.Games += s.Stats.Played()
		c.Wins += s.Stats.Wins
		c.Draws += s.Stats.Draws
		c.Losses += s.Stats.Losses
		c.GoalsFor += s.Stats.GoalsFor
		c.GoalsAgainst += s.Stats.GoalsAgainst
		c.Points += s.Points
		if i+1 < len(m.Seasons) {
			next := m.Seasons[i+1].DivisionLevel
			switch {
			case next < s.DivisionLevel:
				c.Promotions++
			case next > s.DivisionLevel:
				c.Relegations++
			}
		}
	}
	titles := m.Championships()
	for _, n := range titles {
		c.Championships += n
	}
	if len(titles) > 0 {
		c.TopFlightTitles = titles[0]
	}
	return c
}

var gameMilestones = []int{1, 10, 50, 100, 200, 500, 1000}

// Achievements lists the games-managed milestones reached.
func (m *Manager) Achievements() []string {
	games := m.CareerStats().Games
	var out []string
	for _, n := range gameMilestones {
		if games < n {
			break
		}
		if n == 1 {
			out = append(out, "1_GAME")
			continue
		}
		out = append(out, strconv.Itoa(n)+"_GAMES")
	}
	return out
}
