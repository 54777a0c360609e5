// Package game is the simulation core: players, teams, matches, divisions
// and the season loop that ties them together.
package game

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/derekprior/sfm/internal/calendar"
	"github.com/derekprior/sfm/internal/rng"
	"github.com/derekprior/sfm/internal/teamdb"
)

// HumanTeam describes the club a player takes charge of. A name from the
// club database takes over that club; any other name creates a new one.
// PrevDivision and PrevPosition (both 1-based) place the club in the
// pyramid; left at 0 a database club keeps its slot and a new club starts
// at the bottom of the lowest playable division.
type HumanTeam struct {
	Name         string
	Country      string
	Color        string
	PrevDivision int
	PrevPosition int
}

// EndReason records how a career finished.
type EndReason string

const (
	EndFired     EndReason = "fired"
	EndRelegated EndReason = "relegated"
)

type Game struct {
	Name         string      `json:"name"`
	Season       int         `json:"season"`
	Week         int         `json:"week"`
	Divisions    []*Division `json:"divisions"`
	HumanTeamIDs []string    `json:"human_team_ids"`
	Managers     []*Manager  `json:"managers"`
	Ended        bool        `json:"ended"`
	EndReason    EndReason   `json:"end_reason,omitempty"`

	humans []*Team
	env    *Env
}

func New(env *Env, name string) *Game {
	return &Game{Name: name, env: env}
}

func (g *Game) Env() *Env { return g.env }

// teamSkillForSlot interpolates the stand-in skill of the team at position
// (1-based) of division (1-based) across the whole playable pyramid.
func (g *Game) teamSkillForSlot(division, position int) float64 {
	cfg := g.env.Config
	total := cfg.TotalTeams()
	step := (cfg.Team.MaxSkill - cfg.Team.MinDivisionSkill) / float64(total)
	index := (division-1)*cfg.Competition.TeamsPerDivision + (position - 1)
	return cfg.Team.MaxSkill - float64(index)*step
}

// Start fills the pyramid from the club database. With a human team the
// named club is handed a generated squad and a manager.
func (g *Game) Start(human *HumanTeam, managerName string) error {
	cfg := g.env.Config
	comp := cfg.Competition
	clubs := slices.Clone(g.env.Names.Clubs)

	humanSlot := -1
	if human != nil {
		var err error
		clubs, humanSlot, err = g.placeHumanClub(clubs, human)
		if err != nil {
			return err
		}
	}

	need := cfg.TotalTeams() + comp.ExtraTeams
	if len(clubs) < need {
		return fmt.Errorf("club database has %d clubs, need %d", len(clubs), need)
	}

	var humanTeam *Team
	g.Divisions = nil
	for level := 0; level <= comp.Divisions; level++ {
		name := fmt.Sprintf("League %d", level+1)
		size := comp.TeamsPerDivision
		playable := level < comp.Divisions
		if !playable {
			name = "Extra Teams"
			size = comp.ExtraTeams
		}
		div := newDivision(g.env, name, level, playable)
		for pos := 0; pos < size; pos++ {
			slot := level*comp.TeamsPerDivision + pos
			club := clubs[slot]
			t := newTeam(g.env, club.Name, club.Country, club.Color, g.teamSkillForSlot(level+1, pos+1))
			t.division = div
			div.Teams = append(div.Teams, t)
			if slot == humanSlot {
				humanTeam = t
			}
		}
		g.Divisions = append(g.Divisions, div)
	}

	if humanTeam != nil {
		div := humanSlot / comp.TeamsPerDivision
		pos := humanSlot % comp.TeamsPerDivision
		g.createHumanTeam(humanTeam, div, pos, managerName)
	}
	g.env.Log.Info("game started", "name", g.Name, "teams", need)
	return nil
}

// placeHumanClub puts the human club into the slot list and returns it.
func (g *Game) placeHumanClub(clubs []teamdb.Club, human *HumanTeam) ([]teamdb.Club, int, error) {
	comp := g.env.Config.Competition
	club := teamdb.Club{Name: human.Name, Country: human.Country, Color: human.Color}

	existing := slices.IndexFunc(clubs, func(c teamdb.Club) bool { return strings.EqualFold(c.Name, human.Name) })
	if existing >= 0 {
		if club.Country == "" {
			club.Country = clubs[existing].Country
		}
		if club.Color == "" {
			club.Color = clubs[existing].Color
		}
		club.Name = clubs[existing].Name
		clubs = slices.Delete(clubs, existing, existing+1)
	}
	if club.Country == "" {
		club.Country = g.env.Names.RandomCountry(g.env.Rand)
	}

	var slot int
	switch {
	case human.PrevDivision > 0 && human.PrevPosition > 0:
		if human.PrevDivision > comp.Divisions || human.PrevPosition > comp.TeamsPerDivision {
			return nil, 0, fmt.Errorf("previous position %d in division %d is outside the pyramid", human.PrevPosition, human.PrevDivision)
		}
		slot = (human.PrevDivision-1)*comp.TeamsPerDivision + human.PrevPosition - 1
	case existing >= 0 && existing < g.env.Config.TotalTeams():
		slot = existing
	default:
		slot = g.env.Config.TotalTeams() - 1
	}
	clubs = slices.Insert(clubs, slot, club)
	return clubs, slot, nil
}

// createHumanTeam gives the club a generated squad, opening finances and a
// manager. div and pos are 0-based.
func (g *Game) createHumanTeam(t *Team, div, pos int, managerName string) {
	cfg := g.env.Config
	r := g.env.Rand
	t.Human = true

	perPos := cfg.Team.StartingPlayersPerPosition
	perPos[rng.IntBetween(r, int(Defender), int(Midfielder))]--

	sameCountry := 0.55 + 0.125*float64(div)
	clampSkill := func(v float64) float64 {
		return float64(int(rng.Clamp(v, cfg.Player.MinSkill, cfg.Player.MaxSkill)))
	}
	for position, amount := range perPos {
		for i := range amount {
			var lo, hi float64
			if i <= amount/2 {
				lo, hi = clampSkill(t.AvgSkill), clampSkill(t.AvgSkill+1)
			} else {
				lo, hi = clampSkill(t.AvgSkill-3), clampSkill(t.AvgSkill-1)
			}
			skill := float64(rng.IntBetween(r, int(lo), int(hi)))
			country := ""
			if rng.Chance(r, sameCountry) {
				country = t.Country
			}
			p := newPlayer(g.env, skill, country, Position(position), 0, false)
			p.team = t
			p.Contract = rng.IntBetween(r, 0, cfg.Competition.TotalGames())
			t.Players = append(t.Players, p)
		}
	}

	// Clamp the opening position so a new club does not start broke.
	opening := min(max(pos+1, 4), cfg.Competition.TeamsPerDivision-3)
	t.WeeklySponsorship = t.division.SponsorshipPerEndOfSeasonPosition(opening)
	t.changeFinances(Sponsors, t.WeeklySponsorship)
	t.changeFinances(PrizeMoney, t.division.MoneyPerEndOfSeasonPosition(opening))
	t.reassignTactic()
	t.SetTransferList()
	t.OrderPlayersByPlayingStatus()

	m := newManager(g.env, managerName, t, true)
	g.humans = append(g.humans, t)
	g.HumanTeamIDs = append(g.HumanTeamIDs, t.ID)
	g.Managers = append(g.Managers, m)
}

// HumanTeams returns the clubs managed by players.
func (g *Game) HumanTeams() []*Team { return g.humans }

// HumanTeam returns the first human club.
func (g *Game) HumanTeam() (*Team, error) {
	if len(g.humans) == 0 {
		return nil, ErrNoHumanTeam
	}
	return g.humans[0], nil
}

// Teams returns every team in the pyramid, top division first.
func (g *Game) Teams() []*Team {
	var out []*Team
	for _, d := range g.Divisions {
		out = append(out, d.Teams...)
	}
	return out
}

// FindTeam looks a team up by ID or case-insensitive name.
func (g *Game) FindTeam(key string) (*Team, bool) {
	for _, t := range g.Teams() {
		if t.ID == key || strings.EqualFold(t.Name, key) {
			return t, true
		}
	}
	return nil, false
}

// SEASON

func (g *Game) StartOfSeason() {
	g.Season++
	g.Week = 0
	for _, d := range g.Divisions {
		d.StartOfSeason()
	}
	for _, m := range g.Managers {
		m.NewSeason()
	}
	g.env.Log.Info("season started", "season", g.Season, "year", g.Year())
}

func (g *Game) IsSeasonOver() bool {
	return g.Week >= g.env.Config.Competition.TotalGames()
}

// promotedAndDemoted returns, per division level, the teams leaving
// upwards and downwards. The extra pool only sends teams up.
func (g *Game) promotedAndDemoted() (promoted, demoted [][]*Team) {
	n := g.env.Config.Competition.PromotedAndDemoted
	promoted = make([][]*Team, len(g.Divisions))
	demoted = make([][]*Team, len(g.Divisions))
	for _, d := range g.Divisions {
		d.OrderTableByPosition()
		count := min(n, len(d.Teams))
		promoted[d.Level] = slices.Clone(d.Teams[:count])
		if d.Playable {
			demoted[d.Level] = slices.Clone(d.Teams[len(d.Teams)-count:])
		}
	}
	return promoted, demoted
}

func (g *Game) promotionsAndRelegations() {
	n := g.env.Config.Competition.PromotedAndDemoted
	promoted, demoted := g.promotedAndDemoted()
	last := len(g.Divisions) - 1

	for _, d := range g.Divisions {
		if d.Level != last {
			d.Teams = slices.Clone(d.Teams[n : len(d.Teams)-n])
		} else {
			d.Teams = slices.Clone(d.Teams[n:])
		}
	}
	for _, d := range g.Divisions {
		if d.Level == 0 {
			d.Teams = append(d.Teams, promoted[0]...)
		}
		if d.Level != last {
			d.Teams = append(d.Teams, promoted[d.Level+1]...)
		}
		if d.Level > 0 {
			d.Teams = append(d.Teams, demoted[d.Level-1]...)
		}
		for _, t := range d.Teams {
			if t.division != d {
				g.env.Log.Debug("team moved", "team", t.Name, "from", t.division.Name, "to", d.Name)
			}
			t.division = d
		}
	}
}

// updateTeamSkills re-levels every stand-in skill from the final tables.
// Teams in the extra pool get a bonus so they can bounce back.
func (g *Game) updateTeamSkills() {
	bonus := g.env.Config.Team.PoolSkillBonus
	for _, d := range g.Divisions {
		d.OrderTableByPosition()
		for pos, t := range d.Teams {
			t.AvgSkill = g.teamSkillForSlot(d.Level+1, pos+1)
			if !d.Playable {
				t.AvgSkill += bonus
			}
		}
	}
}

// EndOfSeason pays out the season, re-levels skills and moves teams
// between divisions. A human team dropping into the extra pool ends the
// game.
func (g *Game) EndOfSeason() {
	for _, d := range g.Divisions {
		d.EndOfSeason()
	}
	sort.SliceStable(g.Divisions, func(i, j int) bool { return g.Divisions[i].Level < g.Divisions[j].Level })
	g.updateTeamSkills()
	g.promotionsAndRelegations()

	pool := g.Divisions[len(g.Divisions)-1]
	for _, t := range g.humans {
		if slices.Contains(pool.Teams, t) {
			g.end(EndRelegated)
			g.env.Log.Info("game over: relegated out of the league", "team", t.Name)
		}
	}
	g.env.Log.Info("season ended", "season", g.Season)
}

// WEEKLY

// NextWeek advances every division and may fire a manager whose fans have
// run out of patience.
func (g *Game) NextWeek() {
	for _, d := range g.Divisions {
		d.NextWeek(g.Week)
	}
	g.Week++

	if t, err := g.HumanTeam(); err == nil && g.fired(t) {
		g.end(EndFired)
		g.env.Log.Info("game over: manager fired", "team", t.Name, "fan_happiness", t.FanHappiness)
	}
	for _, m := range g.Managers {
		m.UpdateStats()
	}
}

// end stops the career. The first reason recorded wins.
func (g *Game) end(reason EndReason) {
	g.Ended = true
	if g.EndReason == "" {
		g.EndReason = reason
	}
}

// fired rolls the sack: below the threshold, the further happiness has
// fallen the likelier it is.
func (g *Game) fired(t *Team) bool {
	threshold := g.env.Config.TeamGoals.FiringThreshold
	if threshold <= 0 || t.FanHappiness >= threshold {
		return false
	}
	return rng.Chance(g.env.Rand, (threshold-t.FanHappiness)/threshold)
}

func (g *Game) SimulateWeeklyMatches() {
	for _, d := range g.Divisions {
		d.SimulateWeeklyMatches(g.Week)
	}
}

// INFORMATION

func (g *Game) Year() int {
	return g.env.Config.Game.StartingYear + g.Season - 1
}

// Date is the matchday of the coming week.
func (g *Game) Date() time.Time {
	week := min(g.Week+1, g.env.Config.Competition.TotalGames())
	return calendar.DateOf(g.env.Config.Calendar, g.Season, week)
}
