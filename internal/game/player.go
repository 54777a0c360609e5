package game

import (
	"math"

	"github.com/google/uuid"

	"github.com/derekprior/sfm/internal/rng"
)

type Position int

const (
	Goalkeeper Position = iota
	Defender
	Midfielder
	Attacker
)

// AnyPosition asks newPlayer to draw a random position.
const AnyPosition Position = -1

func (p Position) String() string {
	switch p {
	case Goalkeeper:
		return "GK"
	case Defender:
		return "DF"
	case Midfielder:
		return "MD"
	case Attacker:
		return "AT"
	}
	return "??"
}

type PlayingStatus int

const (
	Starting PlayingStatus = iota
	Bench
	Reserve
)

func (s PlayingStatus) String() string {
	switch s {
	case Starting:
		return "starting"
	case Bench:
		return "bench"
	}
	return "reserve"
}

// PlayerSeasonStats count league appearances and goals in the current season.
type PlayerSeasonStats struct {
	Games int `json:"games"`
	Goals int `json:"goals"`
}

type Player struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Country  string        `json:"country"`
	Age      int           `json:"age"`
	Position Position      `json:"position"`
	Skill    float64       `json:"skill"`
	Status   PlayingStatus `json:"status"`

	// Training accumulates weekly deltas; crossing 1 or 0 converts into a
	// skill point.
	Training            float64 `json:"training"`
	WeeklyTraining      float64 `json:"weekly_training"`
	SkillChangeLastWeek int     `json:"skill_change_last_week"`

	// Injury is the number of weeks left out.
	Injury int `json:"injury"`

	// Contract is the number of weeks left on the contract.
	Contract         int   `json:"contract"`
	WantsNewContract bool  `json:"wants_new_contract"`
	Salary           int64 `json:"salary"`
	WantedSalary     int64 `json:"wanted_salary"`

	MatchMinutes int               `json:"match_minutes"`
	SubMinutes   int               `json:"sub_minutes"`
	Homegrown    bool              `json:"homegrown"`
	Retired      bool              `json:"retired"`
	SeasonStats  PlayerSeasonStats `json:"season_stats"`

	env  *Env
	team *Team
}

// newPlayer creates a player. AnyPosition, an age of 0 and an empty country
// are drawn at random. Homegrown players get a skill bonus.
func newPlayer(env *Env, skill float64, country string, pos Position, age int, homegrown bool) *Player {
	cfg := env.Config.Player
	r := env.Rand

	if pos == AnyPosition {
		if rng.Chance(r, cfg.GoalkeeperProbability) {
			pos = Goalkeeper
		} else {
			pos = Position(rng.IntBetween(r, int(Defender), int(Attacker)))
		}
	}
	if age == 0 {
		age = int(rng.Clamp(rng.Gauss(r, cfg.AvgAge, cfg.AgeStdDev), float64(cfg.MinAge), float64(cfg.MaxAge)))
	}
	if homegrown {
		skill += skill * cfg.HomegrownBonus
	}
	name, country := env.Names.RandomName(r, country)

	p := &Player{
		ID:        uuid.NewString(),
		Name:      name,
		Country:   country,
		Age:       age,
		Position:  pos,
		Skill:     rng.Clamp(skill, cfg.MinSkill, cfg.MaxSkill),
		Status:    Reserve,
		Training:  cfg.StartingTraining,
		Homegrown: homegrown,
		env:       env,
	}
	p.Salary = p.calculateSalary()
	return p
}

// Team returns the club the player belongs to, or nil for a listed player.
func (p *Player) Team() *Team { return p.team }

func (p *Player) Injured() bool { return p.Injury > 0 }

// Available reports whether the player can be picked for a match.
func (p *Player) Available() bool {
	return !p.Injured() && !p.WantsNewContract
}

// Sellable reports whether the player can leave: healthy and out of contract.
func (p *Player) Sellable() bool {
	return !p.Injured() && p.Contract <= 0
}

func (p *Player) news(cat NewsCategory) {
	if p.team != nil {
		p.team.addNews(News{Category: cat, Subject: p.Name})
	}
}

// SetInjury takes the player out for a number of weeks drawn from an
// exponential distribution; older players are out longer. The injury also
// costs training.
func (p *Player) SetInjury() {
	cfg := p.env.Config.Player
	age01 := rng.Normalize(float64(p.Age), float64(cfg.MinAge), float64(cfg.MaxAge))
	rate := 1 - age01*cfg.InjuryAgeFactor

	p.Status = Reserve
	p.Injury = int(math.Round(rng.Exponential(p.env.Rand, rate))) + 1
	p.ChangeTraining(-float64(p.Injury) * cfg.InjuryTrainingEffect)
}

func (p *Player) reduceInjury() {
	p.Injury--
	if p.Injury < 0 {
		p.Injury = 0
	}
}

// ChangeTraining adds delta to the training pool. A pool above 1 or below 0
// converts into one skill point up or down; at the skill bounds the pool is
// clipped instead. It returns the skill change and the raw delta.
func (p *Player) ChangeTraining(delta float64) (int, float64) {
	p.Training += delta
	p.WeeklyTraining = delta
	p.SkillChangeLastWeek = 0

	if p.Training > 1 {
		if p.increaseSkill() {
			p.SkillChangeLastWeek = 1
			return 1, delta
		}
		return 0, delta
	}
	if p.Training < 0 {
		if p.decreaseSkill() {
			p.SkillChangeLastWeek = -1
			return -1, delta
		}
		return 0, delta
	}

	if cat := trainingNews(delta); cat != "" {
		p.news(cat)
	}
	return 0, delta
}

func (p *Player) increaseSkill() bool {
	maxSkill := p.env.Config.Player.MaxSkill
	if p.Skill+1 > maxSkill {
		p.Skill = maxSkill
		p.Training = 1
		return false
	}
	p.Skill++
	p.Training--
	p.news(NewsSkillUp)
	return true
}

func (p *Player) decreaseSkill() bool {
	minSkill := p.env.Config.Player.MinSkill
	if p.Skill-1 < minSkill {
		p.Skill = minSkill
		p.Training = 0
		return false
	}
	p.Skill--
	p.Training++
	p.news(NewsSkillDown)
	return true
}

// SetWeeklyTraining applies this week's training. Young players improve,
// players past the decrease age decline, and the prime years stay flat.
// Players who did not play improve less.
func (p *Player) SetWeeklyTraining() (int, float64) {
	cfg := p.env.Config
	tr := cfg.Training
	weekly := cfg.MaxWeeklyTraining()
	randomness := rng.Uniform(p.env.Rand, tr.Randomness[0], tr.Randomness[1])

	full := float64(tr.FullTrainingMinutes)
	playing := tr.ZeroMinutesFactor + (1-tr.ZeroMinutesFactor)*rng.Normalize(math.Min(float64(p.MatchMinutes), full), 0, full)
	playing = math.Min(playing, 1)

	var training float64
	switch {
	case p.Injured():
	case p.Age < tr.StopAge:
		forAge := 1 - rng.Normalize(float64(p.Age), float64(cfg.Player.MinAge), float64(tr.StopAge))
		training = weekly * forAge * playing * randomness
	case p.Age > tr.DecreaseAge:
		forAge := rng.Normalize(float64(p.Age), float64(tr.DecreaseAge), float64(cfg.Player.MaxAge))
		training = -weekly * forAge * randomness
	}
	return p.ChangeTraining(training)
}

// SalaryForSkill is the weekly salary the player's skill commands.
func (p *Player) SalaryForSkill() int64 {
	cfg := p.env.Config.Player
	skill01 := rng.Normalize(p.Skill, cfg.MinSkill, cfg.MaxSkill)
	return int64(math.Pow(2, skill01*cfg.SalarySkillExponent) * float64(cfg.MinSalary))
}

func (p *Player) calculateSalary() int64 {
	v := p.env.Config.Player.SalaryVariation
	return roundMoney(float64(p.SalaryForSkill()) * rng.Uniform(p.env.Rand, v[0], v[1]))
}

// SetRenewWantedSalary fixes the salary the player will accept for a new
// contract. A player who asked for the renewal wants a larger raise. An
// already set demand is kept.
func (p *Player) SetRenewWantedSalary(asking bool) {
	if p.WantedSalary != 0 {
		return
	}
	cfg := p.env.Config.Player
	base := p.Salary
	if s := p.SalaryForSkill(); s > base {
		base = s
	}
	raise := cfg.SalaryIncreaseOffered
	if asking {
		raise = cfg.SalaryIncreaseAsking
	}
	p.WantedSalary = roundMoney(float64(base) * rng.Uniform(p.env.Rand, raise[0], raise[1]))
}

func (p *Player) renewContract() {
	p.SetRenewWantedSalary(false)
	p.Salary = p.WantedSalary
	p.WantedSalary = 0
	p.Contract = p.env.Config.Competition.TotalGames()
	p.WantsNewContract = false
}

// CheckRetirement decides whether the player retires this summer: always
// at the maximum age, by chance past the retirement age.
func (p *Player) CheckRetirement() bool {
	cfg := p.env.Config.Player
	switch {
	case p.Age >= cfg.MaxAge:
		p.Retired = true
	case p.Age >= cfg.RetirementAge && rng.Chance(p.env.Rand, cfg.RetirementProbability):
		p.Retired = true
	}
	return p.Retired
}

func (p *Player) endOfSeason() {
	p.Age++
	p.CheckRetirement()
}

func (p *Player) startOfSeason() {
	p.SeasonStats = PlayerSeasonStats{}
}

// CurrentValue is the transfer value: a blend of current skill and growth
// potential, raised to a power so that good players are worth far more.
// Injured players are worth nothing.
func (p *Player) CurrentValue() int64 {
	if p.Injured() {
		return 0
	}
	cfg := p.env.Config
	minAge, maxAge := float64(cfg.Player.MinAge), float64(cfg.Player.MaxAge)
	age01 := rng.Normalize(float64(p.Age), minAge, maxAge)
	skill01 := rng.Normalize(p.Skill, 0, cfg.Player.MaxSkill)

	stop01 := rng.Normalize(float64(cfg.Player.RetirementAge), minAge, maxAge)
	potential01 := cfg.Value.MaxSkillIncrease * (stop01 - age01) / stop01 * 2

	base := math.Max(skill01*cfg.Value.CurrentSkillInfluence+potential01*cfg.Value.PotentialSkillInfluence, 0)
	return roundMoney(math.Pow(base, cfg.Value.Exponent) * cfg.Value.Scale)
}

// MatchSkill is the skill left after fatigue from minutes already played.
func (p *Player) MatchSkill() float64 {
	if p.Injured() {
		return 0
	}
	cfg := p.env.Config.Player
	fatigue := 1.0
	if p.team != nil && !p.team.Human {
		fatigue += cfg.AIFatigueFactor
	}
	drop := float64(p.MatchMinutes) * math.Max(cfg.AvgAge, float64(p.Age)) * cfg.SkillDropPerAgePerMinute * fatigue
	return math.Max(p.Skill-drop, 0)
}
