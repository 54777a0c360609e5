package game

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/derekprior/sfm/internal/rng"
)

// Tactic is the number of defenders, midfielders and attackers fielded
// alongside the goalkeeper.
type Tactic [3]int

func (t Tactic) String() string {
	return fmt.Sprintf("%d-%d-%d", t[0], t[1], t[2])
}

// ParseTactic reads a "4-4-2" style formation.
func ParseTactic(s string) (Tactic, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return Tactic{}, fmt.Errorf("invalid tactic %q: want D-M-A", s)
	}
	var t Tactic
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return Tactic{}, fmt.Errorf("invalid tactic %q: %q is not a count", s, part)
		}
		t[i] = n
	}
	if t[0]+t[1]+t[2] != 10 {
		return Tactic{}, fmt.Errorf("invalid tactic %q: must field 10 outfield players", s)
	}
	return t, nil
}

type FinanceCategory int

const (
	Salaries FinanceCategory = iota
	BoughtPlayers
	SoldPlayers
	PrizeMoney
	Sponsors
)

var financeNames = [...]string{"Salaries", "Bought Players", "Sold Players", "Prize Money", "Sponsors"}

func (c FinanceCategory) String() string { return financeNames[c] }

// Income reports whether the category brings money in.
func (c FinanceCategory) Income() bool { return c >= SoldPlayers }

// Ledger holds the amount moved per category, always as a positive number.
type Ledger [5]int64

func (l Ledger) Income() int64 {
	return l[SoldPlayers] + l[PrizeMoney] + l[Sponsors]
}

func (l Ledger) Expense() int64 {
	return l[Salaries] + l[BoughtPlayers]
}

type LeagueStats struct {
	Wins         int `json:"wins"`
	Draws        int `json:"draws"`
	Losses       int `json:"losses"`
	GoalsFor     int `json:"goals_for"`
	GoalsAgainst int `json:"goals_against"`
}

func (s LeagueStats) Played() int         { return s.Wins + s.Draws + s.Losses }
func (s LeagueStats) Points() int         { return s.Wins*3 + s.Draws }
func (s LeagueStats) GoalDifference() int { return s.GoalsFor - s.GoalsAgainst }

// Zone is where a team finished relative to the promotion and relegation places.
type Zone int

const (
	ZonePromotion Zone = iota
	ZoneMiddle
	ZoneRelegation
)

func (z Zone) String() string {
	switch z {
	case ZonePromotion:
		return "promotion"
	case ZoneRelegation:
		return "relegation"
	}
	return ""
}

type Team struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
	Color   string `json:"color"`
	Human   bool   `json:"human"`

	// Tactic is the formation an AI team plays. Human teams derive theirs
	// from the starting eleven.
	Tactic Tactic `json:"tactic"`
	// Formation is the formation a human manager picked; nil plays the
	// best eleven regardless of position.
	Formation *Tactic `json:"formation,omitempty"`

	// AvgSkill stands in for the squad of AI teams.
	AvgSkill float64 `json:"avg_skill"`

	Players      []*Player `json:"players"`
	PlayersToBuy []*Player `json:"players_to_buy"`

	Stats LeagueStats `json:"stats"`

	WeeklyFinances    Ledger `json:"weekly_finances"`
	YearlyFinances    Ledger `json:"yearly_finances"`
	Money             int64  `json:"money"`
	WeeklySponsorship int64  `json:"weekly_sponsorship"`

	FanHappiness        float64  `json:"fan_happiness"`
	SeasonPointsPerWeek float64  `json:"season_points_per_week"`
	News                NewsList `json:"news"`

	env      *Env
	division *Division
	manager  *Manager
}

func newTeam(env *Env, name, country, color string, avgSkill float64) *Team {
	goals := env.Config.TeamGoals
	t := &Team{
		ID:           uuid.NewString(),
		Name:         name,
		Country:      country,
		Color:        color,
		AvgSkill:     avgSkill,
		FanHappiness: (goals.MaxFanHappiness - goals.MinFanHappiness) / 2,
		env:          env,
	}
	t.Tactic = t.randomTactic()
	return t
}

func (t *Team) Division() *Division { return t.division }
func (t *Team) Manager() *Manager   { return t.manager }

func (t *Team) addNews(n News) {
	t.News = append(t.News, n)
}

func (t *Team) randomTactic() Tactic {
	cfg := t.env.Config.Team
	var pool [][3]int
	pool = append(pool, cfg.BaseTactics...)
	pool = append(pool, cfg.BaseTactics...)
	pool = append(pool, cfg.DefensiveTactics...)
	pool = append(pool, cfg.AttackingTactics...)
	return Tactic(rng.Pick(t.env.Rand, pool))
}

// SQUAD INFORMATION

// AverageSkill is the squad mean plus a bonus for human teams, or the
// stand-in skill for AI teams.
func (t *Team) AverageSkill() float64 {
	if !t.Human {
		return t.AvgSkill
	}
	if len(t.Players) == 0 {
		return 0
	}
	var sum float64
	for _, p := range t.Players {
		sum += p.Skill
	}
	return sum/float64(len(t.Players)) + t.env.Config.Team.HumanSkillBonus
}

func (t *Team) Starters() []*Player {
	return t.withStatus(Starting)
}

func (t *Team) Bench() []*Player {
	return t.withStatus(Bench)
}

func (t *Team) withStatus(s PlayingStatus) []*Player {
	var out []*Player
	for _, p := range t.Players {
		if p.Status == s {
			out = append(out, p)
		}
	}
	return out
}

// Player looks up a squad member by ID.
func (t *Team) Player(id string) (*Player, bool) {
	for _, p := range t.Players {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// ListedPlayer looks up a transfer list entry by ID.
func (t *Team) ListedPlayer(id string) (*Player, bool) {
	for _, p := range t.PlayersToBuy {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

func (t *Team) goalkeepers() int {
	n := 0
	for _, p := range t.Players {
		if p.Position == Goalkeeper {
			n++
		}
	}
	return n
}

// startersTotalSkill sums starter skill per position. AI teams spread their
// stand-in skill over the formation and tire linearly.
func (t *Team) startersTotalSkill(match bool, minutes int) [4]float64 {
	var total [4]float64
	if !t.Human {
		drop := float64(minutes) * t.env.Config.Player.SkillDropPerMinuteAI
		total[Goalkeeper] = t.AvgSkill - drop
		for pos := Defender; pos <= Attacker; pos++ {
			total[pos] = t.AvgSkill*float64(t.Tactic[pos-1]) - drop
		}
		return total
	}
	for _, p := range t.Players {
		if p.Status != Starting {
			continue
		}
		if match {
			total[p.Position] += p.MatchSkill()
		} else {
			total[p.Position] += p.Skill
		}
	}
	return total
}

// TacticalSkill returns the defence, midfield and attack strength of the
// current lineup. Each line's average skill goes through an exponential
// curve, the formation shape applies its penalties and the goalkeeper
// strengthens the defence.
func (t *Team) TacticalSkill(match bool, minutes int) [3]float64 {
	cfg := t.env.Config.Team
	pen := cfg.Penalties
	curve := func(skill float64) float64 {
		return math.Pow(2, skill/11*cfg.SkillBalanceExponent)
	}

	total := t.startersTotalSkill(match, minutes)
	gk := curve(total[Goalkeeper])
	df := curve(total[Defender])
	md := curve(total[Midfielder])
	at := curve(total[Attacker])

	tac := t.CurrentTactic()
	switch {
	case tac[0] <= 2:
		df *= pen.DFAtMost2
		md *= pen.MDWhenDFAtMost2
	case tac[0] == 3:
		df *= pen.DFIs3
	case tac[0] == 5:
		df *= pen.DFIs5
	}
	if tac[1] <= 1 {
		df *= pen.WhenMDAtMost1
		at *= pen.WhenMDAtMost1
	}
	if tac[1] <= 2 {
		md *= pen.MDAtMost2
	}
	switch tac[2] {
	case 0:
		md *= pen.MDWhenATIs0
		at *= pen.ATIs0
	case 1:
		at *= pen.ATIs1
	case 2:
		at *= pen.ATIs2
	case 4:
		at *= pen.ATIs4
	}

	hasGK := true
	if t.Human {
		hasGK = false
		for _, p := range t.Players {
			if p.Status == Starting && p.Position == Goalkeeper {
				hasGK = true
				break
			}
		}
	}
	if hasGK {
		df += gk * cfg.GoalkeeperBonus
	} else {
		df *= pen.NoGoalkeeper
	}
	return [3]float64{df, md, at}
}

// CurrentTactic is the formation being played: counted from the starting
// eleven for human teams.
func (t *Team) CurrentTactic() Tactic {
	if !t.Human {
		return t.Tactic
	}
	var tac Tactic
	for _, p := range t.Players {
		if p.Status == Starting && p.Position != Goalkeeper {
			tac[p.Position-1]++
		}
	}
	return tac
}

// MATCH INFORMATION

// NextMatch returns the team's fixture in week (0-based), or nil.
func (t *Team) NextMatch(week int) *Match {
	if t.division == nil || week < 0 || week >= len(t.division.Weeks) {
		return nil
	}
	for _, m := range t.division.Weeks[week] {
		if m.side(t) >= 0 {
			return m
		}
	}
	return nil
}

func (t *Team) NextOpponent(week int) *Team {
	m := t.NextMatch(week)
	if m == nil {
		return nil
	}
	return m.Opponent(t)
}

// SQUAD CHANGES

func (t *Team) checkSubstitute(in, out *Player) error {
	if (in.Position == Goalkeeper) != (out.Position == Goalkeeper) {
		return ErrIncompatiblePositions
	}
	if in.Status == out.Status {
		return ErrSameStatus
	}
	return nil
}

func (t *Team) checkReplace(in, out *Player) error {
	if err := t.checkSubstitute(in, out); err != nil {
		return err
	}
	if in.Injured() || out.Injured() {
		return ErrPlayerInjured
	}
	return nil
}

// CanSubstitutePlayer reports whether in may come on for out during a match.
func (t *Team) CanSubstitutePlayer(in, out *Player) bool {
	return t.checkSubstitute(in, out) == nil
}

// CanReplacePlayer reports whether in and out may swap places before a match.
func (t *Team) CanReplacePlayer(in, out *Player) bool {
	return t.checkReplace(in, out) == nil
}

// ReplacePlayer swaps the playing status of two players before a match.
// Goalkeepers only swap with goalkeepers.
func (t *Team) ReplacePlayer(in, out *Player) error {
	if err := t.checkReplace(in, out); err != nil {
		return fmt.Errorf("replace %s with %s: %w", out.Name, in.Name, err)
	}
	in.Status, out.Status = out.Status, in.Status
	return nil
}

// SubstitutePlayer brings in on for out at minute. The substitution budget
// is kept by the match; see Match.Substitute.
func (t *Team) SubstitutePlayer(in, out *Player, minute int) error {
	if err := t.checkSubstitute(in, out); err != nil {
		return fmt.Errorf("substitute %s with %s: %w", out.Name, in.Name, err)
	}
	in.Status = Starting
	in.SubMinutes = minute
	out.Status = Reserve
	return nil
}

func (t *Team) playersPerPosition() [4][]*Player {
	var out [4][]*Player
	for _, p := range t.Players {
		if p.Available() {
			out[p.Position] = append(out[p.Position], p)
		}
	}
	return out
}

// TRANSFERS

func (t *Team) HasPlaceToSellPlayer() bool {
	return len(t.Players) > t.env.Config.Team.MinPlayers
}

func (t *Team) HasPlaceToBuyPlayer() bool {
	return len(t.Players) < t.env.Config.Team.MaxPlayers
}

// HasAtLeastOneGoalkeeper reports whether a keeper would remain after one
// leaves the squad.
func (t *Team) HasAtLeastOneGoalkeeper() bool {
	return t.goalkeepers() > 1
}

func (t *Team) HasMoneyToBuyPlayer(p *Player) bool {
	return p.CurrentValue() <= t.Money
}

// CanSellPlayer returns the reason p cannot be sold, or nil.
func (t *Team) CanSellPlayer(p *Player) error {
	if !slices.Contains(t.Players, p) {
		return ErrPlayerNotFound
	}
	if p.Position == Goalkeeper && !t.HasAtLeastOneGoalkeeper() {
		return ErrLastGoalkeeper
	}
	if !p.Sellable() {
		return ErrNotSellable
	}
	if !t.HasPlaceToSellPlayer() {
		return ErrSquadTooSmall
	}
	return nil
}

// SellPlayer sells p for its current value.
func (t *Team) SellPlayer(p *Player) error {
	if err := t.CanSellPlayer(p); err != nil {
		return fmt.Errorf("sell %s: %w", p.Name, err)
	}
	value := p.CurrentValue()
	t.changeFinances(SoldPlayers, value)
	t.Players = slices.DeleteFunc(t.Players, func(q *Player) bool { return q == p })
	p.team = nil
	t.reassignTactic()
	t.env.Log.Debug("player sold", "team", t.Name, "player", p.Name, "value", value)
	return nil
}

// CanBuyPlayer returns the reason p cannot be bought, or nil.
func (t *Team) CanBuyPlayer(p *Player) error {
	if !slices.Contains(t.PlayersToBuy, p) {
		return ErrNotListed
	}
	if !t.HasMoneyToBuyPlayer(p) {
		return ErrInsufficientFunds
	}
	if !t.HasPlaceToBuyPlayer() {
		return ErrSquadFull
	}
	return nil
}

// BuyPlayer signs p from the transfer list on a season-long contract.
func (t *Team) BuyPlayer(p *Player) error {
	if err := t.CanBuyPlayer(p); err != nil {
		return fmt.Errorf("buy %s: %w", p.Name, err)
	}
	value := p.CurrentValue()
	t.PlayersToBuy = slices.DeleteFunc(t.PlayersToBuy, func(q *Player) bool { return q == p })
	t.Players = append(t.Players, p)
	p.team = t
	p.env = t.env
	p.Status = Reserve
	p.Contract = t.env.Config.Competition.TotalGames()
	t.changeFinances(BoughtPlayers, -value)
	t.env.Log.Debug("player bought", "team", t.Name, "player", p.Name, "value", value)
	return nil
}

// RenewContract gives an out-of-contract player a new season-long deal at
// the salary they asked for.
func (t *Team) RenewContract(p *Player) error {
	if !slices.Contains(t.Players, p) {
		return fmt.Errorf("renew %s: %w", p.Name, ErrPlayerNotFound)
	}
	if p.Contract > 0 {
		return fmt.Errorf("renew %s: %w", p.Name, ErrContractNotExpired)
	}
	p.renewContract()
	return nil
}

func (t *Team) PlayersValueSum() int64 {
	var sum int64
	for _, p := range t.Players {
		sum += p.CurrentValue()
	}
	return sum
}

func (t *Team) PlayersSalarySum() int64 {
	var sum int64
	for _, p := range t.Players {
		sum += p.Salary
	}
	return sum
}

// SetTransferList regenerates the players on offer this week. Skill is
// drawn around the mean of the team and division level, and players the
// club could not afford even after selling its out-of-contract players are
// made weaker until they fit or dropped.
func (t *Team) SetTransferList() {
	cfg := t.env.Config
	r := t.env.Rand

	budget := t.Money
	for _, p := range t.Players {
		if p.Contract <= 0 {
			budget += p.CurrentValue()
		}
	}
	if budget < 0 {
		t.PlayersToBuy = nil
		return
	}

	divSkill := t.AverageSkill()
	level := 0
	if t.division != nil {
		divSkill = t.division.AverageSkill()
		level = t.division.Level
	}
	center := (t.AverageSkill() + divSkill) * 0.5
	sameCountry := cfg.Transfers.SameCountryBase + cfg.Transfers.SameCountryPerLevel*float64(level)

	v := cfg.Transfers.PlayersPerTurnVariation
	n := cfg.Transfers.AveragePlayersPerTurn + rng.IntBetween(r, -v, v)

	var list []*Player
	for range n {
		country := ""
		if rng.Chance(r, sameCountry) {
			country = t.Country
		}
		p := newPlayer(t.env, t.transferSkill(center), country, AnyPosition, 0, false)
		for p.Skill >= cfg.Player.MinSkill {
			if p.CurrentValue() <= budget {
				p.Salary = p.calculateSalary()
				list = append(list, p)
				break
			}
			p.Skill--
		}
	}
	t.PlayersToBuy = list
}

func (t *Team) transferSkill(center float64) float64 {
	cfg := t.env.Config
	weights := cfg.Transfers.MaxSkillWeights
	keys := make([]int, 0, len(weights))
	for k := range weights {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	choices := make([]rng.Choice[float64], len(keys))
	for i, k := range keys {
		choices[i] = rng.Choice[float64]{Item: float64(k), Weight: float64(weights[k])}
	}
	limit, ok := rng.WeightedChoice(t.env.Rand, choices)
	if !ok {
		limit = cfg.Player.MaxSkill
	}

	variation := cfg.Transfers.SkillVariation
	lo := math.Min(limit-variation, center-variation)
	hi := math.Min(limit, center+variation)
	skill := rng.Clamp(rng.Uniform(t.env.Rand, lo, hi), cfg.Player.MinSkill, cfg.Player.MaxSkill)
	return math.Round(skill)
}

// changeFinances books value against cat in both ledgers and moves the
// cash balance by the same amount. Expenses are negative values.
func (t *Team) changeFinances(cat FinanceCategory, value int64) {
	amount := value
	if amount < 0 {
		amount = -amount
	}
	t.WeeklyFinances[cat] += amount
	t.YearlyFinances[cat] += amount
	t.Money += value
}

// WEEKLY

// NextWeek runs the team's weekly tick.
func (t *Team) NextWeek() {
	t.News = nil

	t.WeeklyFinances = Ledger{}
	t.changeFinances(Sponsors, t.WeeklySponsorship)
	t.changeFinances(Salaries, -t.PlayersSalarySum())

	for t.Money < 0 && t.forceSale() {
	}

	for _, p := range t.Players {
		if p.Injured() {
			p.reduceInjury()
		}
	}
	for _, p := range t.Players {
		p.SetWeeklyTraining()
		p.MatchMinutes = 0
		p.SubMinutes = 0
	}
	for _, p := range t.Players {
		if p.Contract > 0 {
			p.Contract--
		}
	}
	t.contractDemand()

	if t.Human {
		t.SetTransferList()
	}
	t.reassignTactic()
}

// forceSale sells one player to cover negative cash: the cheapest one whose
// value covers the debt, otherwise the most valuable one the rules allow.
func (t *Team) forceSale() bool {
	var sellable []*Player
	for _, p := range t.Players {
		if p.Sellable() {
			sellable = append(sellable, p)
		}
	}
	if len(sellable) == 0 || !t.HasPlaceToSellPlayer() {
		return false
	}
	sort.SliceStable(sellable, func(i, j int) bool {
		return sellable[i].CurrentValue() < sellable[j].CurrentValue()
	})

	debt := -t.Money
	var order []*Player
	for _, p := range sellable {
		if p.CurrentValue() >= debt {
			order = append(order, p)
		}
	}
	for i := len(sellable) - 1; i >= 0; i-- {
		if sellable[i].CurrentValue() < debt {
			order = append(order, sellable[i])
		}
	}

	for _, p := range order {
		if err := t.SellPlayer(p); err == nil {
			t.addNews(News{Category: NewsForcedSale, Subject: p.Name})
			t.env.Log.Info("forced sale", "team", t.Name, "player", p.Name, "money", t.Money)
			return true
		}
	}
	return false
}

func (t *Team) contractDemand() {
	cfg := t.env.Config.Player
	if !rng.Chance(t.env.Rand, cfg.WeeklyContractDemandProbability) {
		return
	}
	var candidates []*Player
	for _, p := range t.Players {
		if p.Contract <= 0 && !p.Injured() && !p.WantsNewContract {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return
	}
	p := rng.Pick(t.env.Rand, candidates)
	p.SetRenewWantedSalary(true)
	p.WantsNewContract = true
	p.Status = Reserve
	t.addNews(News{Category: NewsContractDemand, Subject: p.Name})
}

// ObjectivePosition is the lowest table position the board accepts this
// season, derived from the points-per-week target.
func (t *Team) ObjectivePosition() int {
	goals := t.env.Config.TeamGoals
	positions := goals.ObjectivePositions
	if len(positions) == 0 {
		return 1
	}
	step := (goals.MaxPointsPerWeek - goals.MinPointsPerWeek) / float64(len(positions))
	for i, pos := range positions {
		if t.SeasonPointsPerWeek <= goals.MinPointsPerWeek+float64(i+1)*step {
			return pos
		}
	}
	return 1
}

// SEASON

// StartOfSeason clears the table stats and retired players. AI teams pick
// a new formation; human teams promote juniors and reset player stats.
func (t *Team) StartOfSeason() {
	t.News = nil
	t.Stats = LeagueStats{}
	t.removeRetired()

	if !t.Human {
		t.Tactic = t.randomTactic()
		return
	}
	for _, p := range t.Players {
		p.startOfSeason()
	}

	r := t.env.Rand
	avg := t.env.Config.Team.AvgYouthPlayersPromoted
	amount := rng.IntBetween(r, avg-1, avg+1)
	places := t.env.Config.Team.MaxPlayers - len(t.Players)
	for range min(amount, places) {
		t.promoteJunior()
	}

	t.SetTransferList()
	t.reassignTactic()
}

func (t *Team) removeRetired() {
	t.Players = slices.DeleteFunc(t.Players, func(p *Player) bool {
		if !p.Retired {
			return false
		}
		p.team = nil
		t.addNews(News{Category: NewsRetired, Subject: p.Name})
		return true
	})
}

func (t *Team) promoteJunior() {
	cfg := t.env.Config.Player
	r := t.env.Rand
	avg := t.AverageSkill()
	hi := avg - math.Trunc(avg/5)
	lo := hi - cfg.YouthSkillDrop
	skill := math.Round(rng.Clamp(rng.Uniform(r, lo, hi), cfg.MinSkill, cfg.MaxYouthSkill))

	p := newPlayer(t.env, skill, t.Country, AnyPosition, rng.IntBetween(r, 18, 19), true)
	p.team = t
	p.Contract = t.env.Config.Competition.TotalGames()
	t.Players = append(t.Players, p)
	t.addNews(News{Category: NewsJuniors, Subject: p.Name})
}

func (t *Team) resetFinances() {
	t.WeeklyFinances = Ledger{}
	t.YearlyFinances = Ledger{}
}

// EndOfSeason ages the squad and sets next season's sponsorship and prize
// money from the final table position.
func (t *Team) EndOfSeason() {
	t.resetFinances()
	for _, p := range t.Players {
		p.endOfSeason()
	}
	if t.division == nil {
		return
	}
	pos := t.division.TeamPosition(t)
	t.WeeklySponsorship = t.division.SponsorshipPerEndOfSeasonPosition(pos)
	t.changeFinances(Sponsors, t.WeeklySponsorship)
	t.changeFinances(PrizeMoney, t.division.MoneyPerEndOfSeasonPosition(pos))
}

// Zone reports whether the team sits in the promotion or relegation places.
func (t *Team) Zone() Zone {
	pos := t.division.TeamPosition(t)
	n := t.env.Config.Competition.PromotedAndDemoted
	switch {
	case pos <= n:
		return ZonePromotion
	case pos > len(t.division.Teams)-n:
		return ZoneRelegation
	}
	return ZoneMiddle
}

// UpdateStatsPostMatch records a result.
func (t *Team) UpdateStatsPostMatch(goalsFor, goalsAgainst int) {
	switch {
	case goalsFor > goalsAgainst:
		t.Stats.Wins++
	case goalsFor == goalsAgainst:
		t.Stats.Draws++
	default:
		t.Stats.Losses++
	}
	t.Stats.GoalsFor += goalsFor
	t.Stats.GoalsAgainst += goalsAgainst

	if t.manager != nil {
		t.manager.UpdateStats()
	}
}

func (t *Team) Points() int         { return t.Stats.Points() }
func (t *Team) GoalDifference() int { return t.Stats.GoalDifference() }

// FanHappinessChangeWithResult moves fan happiness by how far points beat
// the weekly target.
func (t *Team) FanHappinessChangeWithResult(points int) {
	goals := t.env.Config.TeamGoals
	change := goals.HappinessMultiplier * (float64(points) - t.SeasonPointsPerWeek)
	t.FanHappiness = rng.Clamp(t.FanHappiness+change, goals.MinFanHappiness, goals.MaxFanHappiness)
	t.addNews(News{Category: NewsFans, Value: change})
}

// PLAYER ORDERING

func (t *Team) OrderPlayersBySkill() {
	sort.SliceStable(t.Players, func(i, j int) bool {
		a, b := t.Players[i], t.Players[j]
		if a.Injury != b.Injury {
			return a.Injury < b.Injury
		}
		return a.Skill > b.Skill
	})
}

func (t *Team) OrderPlayersByPosition() {
	sort.SliceStable(t.Players, func(i, j int) bool {
		a, b := t.Players[i], t.Players[j]
		if a.Injury != b.Injury {
			return a.Injury < b.Injury
		}
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		if a.Skill != b.Skill {
			return a.Skill > b.Skill
		}
		return a.Age < b.Age
	})
}

func (t *Team) OrderPlayersByPlayingStatus() {
	sort.SliceStable(t.Players, func(i, j int) bool {
		a, b := t.Players[i], t.Players[j]
		if a.Injury != b.Injury {
			return a.Injury < b.Injury
		}
		if a.Status != b.Status {
			return a.Status < b.Status
		}
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		return a.Skill > b.Skill
	})
}

// TACTICS

// AvailablePerPosition counts players fit to play in each position.
func (t *Team) AvailablePerPosition() [4]int {
	var total [4]int
	for _, p := range t.Players {
		if p.Available() {
			total[p.Position]++
		}
	}
	return total
}

// AllowedTactic reports whether the squad can field tac.
func (t *Team) AllowedTactic(tac Tactic) bool {
	avail := t.AvailablePerPosition()
	need := [4]int{1, tac[0], tac[1], tac[2]}
	for pos := range need {
		if need[pos] > avail[pos] {
			return false
		}
	}
	return true
}

// AllowedTactics lists the catalogue formations the squad can field.
func (t *Team) AllowedTactics() []Tactic {
	var out []Tactic
	for _, tac := range t.env.Config.Team.AllTactics() {
		if t.AllowedTactic(Tactic(tac)) {
			out = append(out, Tactic(tac))
		}
	}
	return out
}

// SetPlayingTactic picks the starting eleven and bench. With a formation
// the best available players per position start; with nil the ten best
// outfield players start regardless of position. The best goalkeeper
// starts and the second best sits on the bench. An infeasible formation
// returns ErrTacticNotAllowed and changes nothing.
func (t *Team) SetPlayingTactic(tactic *Tactic) error {
	if tactic != nil && !t.AllowedTactic(*tactic) {
		return fmt.Errorf("%w: %s", ErrTacticNotAllowed, tactic)
	}

	t.OrderPlayersByPosition()
	perPos := t.playersPerPosition()

	var starting, bench []*Player
	if len(perPos[Goalkeeper]) > 0 {
		starting = append(starting, perPos[Goalkeeper][0])
	}
	if len(perPos[Goalkeeper]) > 1 {
		bench = append(bench, perPos[Goalkeeper][1])
	}

	if tactic != nil {
		for pos := Defender; pos <= Attacker; pos++ {
			starting = append(starting, perPos[pos][:tactic[pos-1]]...)
		}
	} else {
		t.OrderPlayersBySkill()
		var outfield []*Player
		for _, p := range t.Players {
			if p.Position != Goalkeeper && p.Available() {
				outfield = append(outfield, p)
			}
		}
		starting = append(starting, outfield[:min(10, len(outfield))]...)
	}

	benchSize := t.env.Config.Team.BenchPlayers
	t.OrderPlayersBySkill()
	for _, p := range t.Players {
		if slices.Contains(starting, p) {
			p.Status = Starting
			continue
		}
		p.Status = Reserve
		if p.Available() && len(bench) < benchSize && !slices.Contains(bench, p) {
			bench = append(bench, p)
		}
	}
	for _, p := range bench {
		p.Status = Bench
	}
	return nil
}

// ChooseFormation sets the formation a human manager wants and applies it.
// Nil returns to picking the best eleven.
func (t *Team) ChooseFormation(tactic *Tactic) error {
	if err := t.SetPlayingTactic(tactic); err != nil {
		return err
	}
	t.Formation = tactic
	return nil
}

// reassignTactic re-picks the lineup after squad changes, keeping the
// chosen formation while the squad can still field it.
func (t *Team) reassignTactic() {
	if len(t.Players) == 0 {
		return
	}
	if t.Formation != nil && t.AllowedTactic(*t.Formation) {
		_ = t.SetPlayingTactic(t.Formation)
		return
	}
	_ = t.SetPlayingTactic(nil)
}
