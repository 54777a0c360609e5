package game

import (
	"fmt"

	"github.com/derekprior/sfm/internal/rng"
)

// Goal is one entry of the scorer log. Side is 0 for the home team and 1
// for the away team. AI scorers have a name but no player ID.
type Goal struct {
	PlayerID   string `json:"player_id,omitempty"`
	PlayerName string `json:"player_name"`
	Side       int    `json:"side"`
	Minute     int    `json:"minute"`
}

// Match is one fixture, played minute by minute. Either team may be nil
// for a bye.
type Match struct {
	HomeID           string `json:"home_id"`
	AwayID           string `json:"away_id"`
	Minutes          int    `json:"minutes"`
	Score            [2]int `json:"score"`
	Possession       [2]int `json:"possession"`
	RecentPossession []int  `json:"recent_possession"`
	Goals            []Goal `json:"goals"`
	Substitutions    [2]int `json:"substitutions"`
	Finished         bool   `json:"finished"`
	Neutral          bool   `json:"neutral"`

	teams      [2]*Team
	injuredOut *Player
	env        *Env
}

func newMatch(env *Env, home, away *Team) *Match {
	m := &Match{env: env}
	m.setTeams(home, away)
	return m
}

func (m *Match) setTeams(home, away *Team) {
	m.teams = [2]*Team{home, away}
	if home != nil {
		m.HomeID = home.ID
	}
	if away != nil {
		m.AwayID = away.ID
	}
}

func (m *Match) Home() *Team { return m.teams[0] }
func (m *Match) Away() *Team { return m.teams[1] }

func (m *Match) String() string {
	name := func(t *Team) string {
		if t == nil {
			return "bye"
		}
		return t.Name
	}
	if !m.Finished {
		return fmt.Sprintf("%s x %s", name(m.teams[0]), name(m.teams[1]))
	}
	return fmt.Sprintf("%s %d x %d %s", name(m.teams[0]), m.Score[0], m.Score[1], name(m.teams[1]))
}

// side returns 0 or 1 for a team in the match, -1 otherwise.
func (m *Match) side(t *Team) int {
	switch {
	case t == nil:
		return -1
	case m.teams[0] == t:
		return 0
	case m.teams[1] == t:
		return 1
	}
	return -1
}

// Opponent returns the other team, or nil if t is not playing.
func (m *Match) Opponent(t *Team) *Team {
	switch m.side(t) {
	case 0:
		return m.teams[1]
	case 1:
		return m.teams[0]
	}
	return nil
}

// InjuredPlayerOut is the player injured in the last minute played, if any.
func (m *Match) InjuredPlayerOut() *Player { return m.injuredOut }

// AllowSubstitution reports whether t has substitutions left in a match
// that has kicked off.
func (m *Match) AllowSubstitution(t *Team) bool {
	s := m.side(t)
	if s < 0 || m.Minutes == 0 || m.Finished {
		return false
	}
	return m.Substitutions[s] < m.env.Config.Match.MaxSubstitutions
}

func (m *Match) SubstitutionMadeByTeam(t *Team) {
	if s := m.side(t); s >= 0 {
		m.Substitutions[s]++
	}
}

// Substitute brings in on for out, spending one of t's substitutions.
func (m *Match) Substitute(t *Team, in, out *Player) error {
	if !m.AllowSubstitution(t) {
		return fmt.Errorf("substitute %s: %w", out.Name, ErrSubstitutionLimit)
	}
	if err := t.SubstitutePlayer(in, out, m.Minutes); err != nil {
		return err
	}
	m.SubstitutionMadeByTeam(t)
	if m.injuredOut == out {
		m.injuredOut = nil
	}
	return nil
}

// Simulate plays to full time, or up to minutes when it is positive and
// short of full time, and then ends the match. Injured starters are not
// replaced.
func (m *Match) Simulate(minutes int) { m.simulate(minutes, false) }

// SimulateWithCover plays like Simulate, but a starter injured in a minute
// is replaced from the bench at once while substitutions remain.
func (m *Match) SimulateWithCover(minutes int) { m.simulate(minutes, true) }

func (m *Match) simulate(minutes int, cover bool) {
	full := m.env.Config.Match.Minutes
	if m.teams[0] == nil || m.teams[1] == nil || m.Finished {
		m.End()
		return
	}
	if minutes <= 0 || minutes >= full {
		minutes = full
	}
	for m.Minutes < minutes && m.Minute() {
		if cover {
			m.coverInjury()
		}
	}
	m.End()
}

// coverInjury brings the best bench player on for a starter injured in the
// last minute, preferring the same position, while substitutions remain.
func (m *Match) coverInjury() {
	out := m.injuredOut
	if out == nil || out.team == nil || !m.AllowSubstitution(out.team) {
		return
	}
	var best *Player
	better := func(p *Player) bool {
		if best == nil {
			return true
		}
		if (p.Position == out.Position) != (best.Position == out.Position) {
			return p.Position == out.Position
		}
		return p.Skill > best.Skill
	}
	for _, p := range out.team.Bench() {
		if p.Available() && out.team.CanSubstitutePlayer(p, out) && better(p) {
			best = p
		}
	}
	if best != nil {
		_ = m.Substitute(out.team, best, out)
	}
}

// GoalLastMinute reports whether a goal was scored in the last minute played.
func (m *Match) GoalLastMinute() bool {
	for _, g := range m.Goals {
		if g.Minute == m.Minutes {
			return true
		}
	}
	return false
}

// chooseGoalScorer picks a starter weighted by position for human teams.
// AI teams have no squad: previous scorers are picked again with the same
// weight as a set of fresh names, one more than the scorers so far.
func (m *Match) chooseGoalScorer(side int) Goal {
	t := m.teams[side]
	r := m.env.Rand
	g := Goal{Side: side, Minute: m.Minutes}

	if t.Human {
		weights := m.env.Config.Match.GoalWeightPerPosition
		var choices []rng.Choice[*Player]
		for _, p := range t.Starters() {
			choices = append(choices, rng.Choice[*Player]{Item: p, Weight: weights[p.Position]})
		}
		if p, ok := rng.WeightedChoice(r, choices); ok {
			g.PlayerID = p.ID
			g.PlayerName = p.Name
			p.SeasonStats.Goals++
		}
		return g
	}

	weight := m.env.Config.Match.AIScorerWeight
	var choices []rng.Choice[string]
	for _, prev := range m.Goals {
		if prev.Side == side {
			choices = append(choices, rng.Choice[string]{Item: prev.PlayerName, Weight: weight})
		}
	}
	for range len(choices) + 1 {
		name, _ := m.env.Names.RandomName(r, t.Country)
		choices = append(choices, rng.Choice[string]{Item: name, Weight: weight})
	}
	g.PlayerName, _ = rng.WeightedChoice(r, choices)
	return g
}

func (m *Match) goal(side int) {
	m.Score[side]++
	m.Goals = append(m.Goals, m.chooseGoalScorer(side))
}

// Minute plays one minute and reports whether the match goes on.
func (m *Match) Minute() bool {
	cfg := m.env.Config.Match
	r := m.env.Rand
	m.injuredOut = nil

	if m.teams[0] == nil || m.teams[1] == nil {
		m.End()
		return false
	}
	if m.Finished {
		return false
	}
	if m.Minutes >= cfg.Minutes {
		m.End()
		return false
	}

	m.Minutes++
	for _, t := range m.teams {
		for _, p := range t.Players {
			if p.Status == Starting {
				p.MatchMinutes++
			}
		}
	}

	home := m.teams[0].TacticalSkill(true, m.Minutes)
	away := m.teams[1].TacticalSkill(true, m.Minutes)
	if !m.Neutral {
		for i := range home {
			home[i] *= cfg.HomeAdvantage
		}
	}

	// Midfield decides who has the ball, attack against defence whether it
	// goes in.
	homeBall := rng.Clamp(rng.Balance(home[1], away[1]), 1-cfg.MaxPossession, cfg.MaxPossession)
	possession, attack, defence := 1, away[2], home[0]
	if rng.Chance(r, homeBall) {
		possession, attack, defence = 0, home[2], away[0]
	}
	goalProb := rng.Clamp(rng.Balance(attack, defence), cfg.MinSkillBalance, 1) * cfg.MaxGoalProbPerPossession

	if rng.Chance(r, goalProb) {
		m.goal(possession)
	} else {
		for _, t := range m.teams {
			if !t.Human || !rng.Chance(r, cfg.InjuryProbPerMinute) {
				continue
			}
			if p := m.playerInjured(t); p != nil {
				p.SetInjury()
				m.injuredOut = p
			}
		}
	}

	for side, t := range m.teams {
		if t.Human && len(t.Starters()) < cfg.MinimumPlayers {
			m.forfeit(side)
			return false
		}
	}

	m.Possession[possession]++
	m.RecentPossession = append(m.RecentPossession, possession)
	if over := len(m.RecentPossession) - cfg.PossessionWindow; over > 0 {
		m.RecentPossession = m.RecentPossession[over:]
	}
	return true
}

// forfeit ends the match when side can no longer field enough players: it
// scores nothing and the opponent wins by at least the forfeit margin.
func (m *Match) forfeit(side int) {
	other := 1 - side
	m.Score[side] = 0
	m.Score[other] = max(m.env.Config.Match.ForfeitGoals, m.Score[other])
	m.env.Log.Info("match forfeited", "team", m.teams[side].Name, "minute", m.Minutes)
	m.End()
}

func (m *Match) playerInjured(t *Team) *Player {
	cfg := m.env.Config.Player
	var choices []rng.Choice[*Player]
	for _, p := range t.Starters() {
		w := cfg.InjuryWeightOutfield
		if p.Position == Goalkeeper {
			w = cfg.InjuryWeightGoalkeeper
		}
		choices = append(choices, rng.Choice[*Player]{Item: p, Weight: w})
	}
	p, _ := rng.WeightedChoice(m.env.Rand, choices)
	return p
}

func (m *Match) clampShare(home int) [2]int {
	cfg := m.env.Config.Match
	away := 100 - home
	switch {
	case home >= cfg.PossessionDisplayMax:
		return [2]int{cfg.PossessionDisplayMax, 100 - cfg.PossessionDisplayMax}
	case away >= cfg.PossessionDisplayMax:
		return [2]int{100 - cfg.PossessionDisplayMax, cfg.PossessionDisplayMax}
	}
	return [2]int{home, away}
}

// BallPossession returns each side's share of the minutes played, in percent.
func (m *Match) BallPossession() [2]int {
	if m.Minutes == 0 {
		return [2]int{50, 50}
	}
	total := m.Possession[0] + m.Possession[1]
	if total == 0 {
		return [2]int{50, 50}
	}
	home := int(float64(m.Possession[0])/float64(total)*100 + 0.5)
	return m.clampShare(home)
}

// BallPossessionRecent is BallPossession over the last few minutes only.
func (m *Match) BallPossessionRecent() [2]int {
	n := len(m.RecentPossession)
	if n == 0 {
		return [2]int{50, 50}
	}
	away := 0
	for _, s := range m.RecentPossession {
		away += s
	}
	awayShare := away * 100 / n
	return m.clampShare(100 - awayShare)
}

// End finishes the match and records the result for both teams. A bye
// records nothing. Calling it again does nothing.
func (m *Match) End() {
	if m.Finished {
		return
	}
	m.Minutes = m.env.Config.Match.Minutes
	m.Finished = true
	if m.teams[0] == nil || m.teams[1] == nil {
		return
	}
	for side, t := range m.teams {
		t.UpdateStatsPostMatch(m.Score[side], m.Score[1-side])
		if t.Human {
			for _, p := range t.Players {
				if p.MatchMinutes > 0 {
					p.SeasonStats.Games++
				}
			}
		}
	}
}

// Winner returns the team with more goals, or nil on a draw.
func (m *Match) Winner() *Team {
	switch {
	case m.Score[0] > m.Score[1]:
		return m.teams[0]
	case m.Score[1] > m.Score[0]:
		return m.teams[1]
	}
	return nil
}

// Loser returns the team with fewer goals, or nil on a draw.
func (m *Match) Loser() *Team {
	switch {
	case m.Score[0] < m.Score[1]:
		return m.teams[0]
	case m.Score[1] < m.Score[0]:
		return m.teams[1]
	}
	return nil
}
