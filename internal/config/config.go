package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Date is a wrapper around time.Time for YAML date parsing.
type Date struct {
	Time time.Time
}

func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	t, err := time.Parse("2006-01-02", value.Value)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", value.Value, err)
	}
	d.Time = t
	return nil
}

func (d Date) MarshalYAML() (any, error) {
	return d.Time.Format("2006-01-02"), nil
}

type BlackoutDate struct {
	Date   Date   `yaml:"date"`
	Reason string `yaml:"reason"`
}

// Calendar places schedule weeks on real dates. Dates are given for the
// first season and shifted by one year per season.
type Calendar struct {
	FirstMatchday Date           `yaml:"first_matchday"`
	BlackoutDates []BlackoutDate `yaml:"blackout_dates"`
}

type GameSettings struct {
	StartingYear int `yaml:"starting_year"`
}

type Competition struct {
	Divisions          int `yaml:"divisions"`
	TeamsPerDivision   int `yaml:"teams_per_division"`
	PromotedAndDemoted int `yaml:"promoted_and_demoted"`
	ExtraTeams         int `yaml:"extra_teams"`
}

// TotalGames is the number of schedule weeks in a season. Odd team counts
// get a bye slot, so they play one extra round.
func (c Competition) TotalGames() int {
	n := c.TeamsPerDivision
	if n%2 == 1 {
		n++
	}
	return 2 * (n - 1)
}

type Money struct {
	DivisionInfluenceOnResultPrize float64   `yaml:"division_influence_on_result_prize"`
	DivisionInfluenceOnSponsorship float64   `yaml:"division_influence_on_sponsorship"`
	DivisionInfluenceOnSeasonPrize float64   `yaml:"division_influence_on_season_prize"`
	PositionInfluenceOnSponsorship float64   `yaml:"position_influence_on_sponsorship"`
	PositionInfluenceOnSeasonPrize float64   `yaml:"position_influence_on_season_prize"`
	MinPerWin                      int64     `yaml:"min_per_win"`
	MinPerDraw                     int64     `yaml:"min_per_draw"`
	MinSponsors                    int64     `yaml:"min_sponsors"`
	MinEndOfSeason                 int64     `yaml:"min_end_of_season"`
	Top3Multipliers                []float64 `yaml:"top_3_multipliers"`
	Bottom3Multipliers             []float64 `yaml:"bottom_3_multipliers"`
}

type ManagerPoints struct {
	PointsPerTop3Position int `yaml:"points_per_top_3_position"`
	PointsPerChampionship int `yaml:"points_per_championship"`
}

type Transfers struct {
	AveragePlayersPerTurn   int         `yaml:"average_players_per_turn"`
	PlayersPerTurnVariation int         `yaml:"players_per_turn_variation"`
	SkillVariation          float64     `yaml:"skill_variation"`
	MaxSkillWeights         map[int]int `yaml:"max_skill_weights"`
	SameCountryBase         float64     `yaml:"same_country_base"`
	SameCountryPerLevel     float64     `yaml:"same_country_per_level"`
}

// TacticalPenalties are multipliers applied to a line's tactical skill
// depending on the formation shape.
type TacticalPenalties struct {
	DFAtMost2       float64 `yaml:"df_at_most_2"`
	DFIs3           float64 `yaml:"df_is_3"`
	DFIs5           float64 `yaml:"df_is_5"`
	MDAtMost2       float64 `yaml:"md_at_most_2"`
	ATIs4           float64 `yaml:"at_is_4"`
	ATIs1           float64 `yaml:"at_is_1"`
	ATIs2           float64 `yaml:"at_is_2"`
	ATIs0           float64 `yaml:"at_is_0"`
	MDWhenDFAtMost2 float64 `yaml:"md_when_df_at_most_2"`
	WhenMDAtMost1   float64 `yaml:"when_md_at_most_1"`
	MDWhenATIs0     float64 `yaml:"md_when_at_is_0"`
	NoGoalkeeper    float64 `yaml:"no_goalkeeper"`
}

type Team struct {
	MinSkill                   float64           `yaml:"min_skill"`
	MinDivisionSkill           float64           `yaml:"min_division_skill"`
	MaxSkill                   float64           `yaml:"max_skill"`
	BaseTactics                [][3]int          `yaml:"base_tactics"`
	DefensiveTactics           [][3]int          `yaml:"defensive_tactics"`
	AttackingTactics           [][3]int          `yaml:"attacking_tactics"`
	Penalties                  TacticalPenalties `yaml:"tactical_penalties"`
	GoalkeeperBonus            float64           `yaml:"goalkeeper_bonus"`
	SkillBalanceExponent       float64           `yaml:"skill_balance_exponent"`
	MinPlayers                 int               `yaml:"min_players"`
	MaxPlayers                 int               `yaml:"max_players"`
	BenchPlayers               int               `yaml:"bench_players"`
	AvgYouthPlayersPromoted    int               `yaml:"avg_youth_players_promoted"`
	StartingPlayersPerPosition [4]int            `yaml:"starting_players_per_position"`
	HumanSkillBonus            float64           `yaml:"human_skill_bonus"`
	PoolSkillBonus             float64           `yaml:"pool_skill_bonus"`
}

// AllTactics returns the attacking, base and defensive formations in that order.
func (t Team) AllTactics() [][3]int {
	var all [][3]int
	all = append(all, t.AttackingTactics...)
	all = append(all, t.BaseTactics...)
	all = append(all, t.DefensiveTactics...)
	return all
}

type TeamGoals struct {
	MinPointsPerWeek    float64 `yaml:"min_points_per_week"`
	MaxPointsPerWeek    float64 `yaml:"max_points_per_week"`
	HappinessMultiplier float64 `yaml:"happiness_multiplier"`
	MinFanHappiness     float64 `yaml:"min_fan_happiness"`
	MaxFanHappiness     float64 `yaml:"max_fan_happiness"`
	FiringThreshold     float64 `yaml:"firing_threshold"`
	ObjectivePositions  []int   `yaml:"objective_positions"`
}

type Player struct {
	MinSkill                        float64    `yaml:"min_skill"`
	MaxSkill                        float64    `yaml:"max_skill"`
	AvgAge                          float64    `yaml:"avg_age"`
	AgeStdDev                       float64    `yaml:"age_std_dev"`
	MinAge                          int        `yaml:"min_age"`
	MaxAge                          int        `yaml:"max_age"`
	RetirementAge                   int        `yaml:"retirement_age"`
	RetirementProbability           float64    `yaml:"retirement_probability"`
	GoalkeeperProbability           float64    `yaml:"goalkeeper_probability"`
	StartingTraining                float64    `yaml:"starting_training"`
	SalarySkillExponent             float64    `yaml:"salary_skill_exponent"`
	MinSalary                       int64      `yaml:"min_salary"`
	SalaryVariation                 [2]float64 `yaml:"salary_variation"`
	SalaryIncreaseAsking            [2]float64 `yaml:"salary_increase_asking"`
	SalaryIncreaseOffered           [2]float64 `yaml:"salary_increase_offered"`
	WeeklyContractDemandProbability float64    `yaml:"weekly_contract_demand_probability"`
	InjuryTrainingEffect            float64    `yaml:"injury_training_effect"`
	InjuryAgeFactor                 float64    `yaml:"injury_age_factor"`
	InjuryWeightGoalkeeper          float64    `yaml:"injury_weight_goalkeeper"`
	InjuryWeightOutfield            float64    `yaml:"injury_weight_outfield"`
	YouthSkillDrop                  float64    `yaml:"youth_skill_drop"`
	MaxYouthSkill                   float64    `yaml:"max_youth_skill"`
	HomegrownBonus                  float64    `yaml:"homegrown_bonus"`
	SkillDropPerAgePerMinute        float64    `yaml:"skill_drop_per_age_per_minute"`
	SkillDropPerMinuteAI            float64    `yaml:"skill_drop_per_minute_ai"`
	AIFatigueFactor                 float64    `yaml:"ai_fatigue_factor"`
}

type Training struct {
	MaxShare            float64    `yaml:"max_share"`
	ZeroMinutesFactor   float64    `yaml:"zero_minutes_factor"`
	FullTrainingMinutes int        `yaml:"full_training_minutes"`
	StopAge             int        `yaml:"stop_age"`
	DecreaseAge         int        `yaml:"decrease_age"`
	Randomness          [2]float64 `yaml:"randomness"`
}

type Value struct {
	CurrentSkillInfluence   float64 `yaml:"current_skill_influence"`
	PotentialSkillInfluence float64 `yaml:"potential_skill_influence"`
	Exponent                float64 `yaml:"exponent"`
	MaxSkillIncrease        float64 `yaml:"max_skill_increase"`
	Scale                   float64 `yaml:"scale"`
}

type Match struct {
	Minutes                  int        `yaml:"minutes"`
	GoalWeightPerPosition    [4]float64 `yaml:"goal_weight_per_position"`
	MaxGoalProbPerPossession float64    `yaml:"max_goal_prob_per_possession"`
	InjuryProbPerMinute      float64    `yaml:"injury_prob_per_minute"`
	MinimumPlayers           int        `yaml:"minimum_players"`
	ForfeitGoals             int        `yaml:"forfeit_goals"`
	MaxPossession            float64    `yaml:"max_possession"`
	MinSkillBalance          float64    `yaml:"min_skill_balance"`
	HomeAdvantage            float64    `yaml:"home_advantage"`
	MaxSubstitutions         int        `yaml:"max_substitutions"`
	AIScorerWeight           float64    `yaml:"ai_scorer_weight"`
	PossessionWindow         int        `yaml:"possession_window"`
	PossessionDisplayMin     int        `yaml:"possession_display_min"`
	PossessionDisplayMax     int        `yaml:"possession_display_max"`
}

type Config struct {
	Game        GameSettings  `yaml:"game"`
	Competition Competition   `yaml:"competition"`
	Money       Money         `yaml:"money"`
	Manager     ManagerPoints `yaml:"manager"`
	Transfers   Transfers     `yaml:"transfers"`
	Team        Team          `yaml:"team"`
	TeamGoals   TeamGoals     `yaml:"team_goals"`
	Player      Player        `yaml:"player"`
	Training    Training      `yaml:"training"`
	Value       Value         `yaml:"value"`
	Match       Match         `yaml:"match"`
	Calendar    Calendar      `yaml:"calendar"`
}

// MaxWeeklyTraining is the largest training delta a player can receive in
// one week: a share of the skill range spread over the seasons it takes an
// average player to reach peak age.
func (c *Config) MaxWeeklyTraining() float64 {
	years := c.Player.AvgAge - float64(c.Player.MinAge)
	return c.Player.MaxSkill * c.Training.MaxShare / (float64(c.Competition.TotalGames()) * years)
}

// TotalTeams returns the number of teams in playable divisions.
func (c *Config) TotalTeams() int {
	return c.Competition.Divisions * c.Competition.TeamsPerDivision
}

// LoadFromBytes parses YAML bytes on top of the defaults and validates the result.
// Maps given in data replace the default maps rather than merging into them.
func LoadFromBytes(data []byte) (*Config, error) {
	var maps struct {
		Transfers struct {
			MaxSkillWeights map[int]int `yaml:"max_skill_weights"`
		} `yaml:"transfers"`
	}
	if err := yaml.Unmarshal(data, &maps); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg := Default()
	if maps.Transfers.MaxSkillWeights != nil {
		cfg.Transfers.MaxSkillWeights = nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile reads and parses a YAML config file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromBytes(data)
}

// Default returns the built-in tuning.
func Default() *Config {
	var cfg Config
	if err := yaml.Unmarshal([]byte(DefaultYAML), &cfg); err != nil {
		panic(fmt.Sprintf("default config: %v", err))
	}
	return &cfg
}

func (c *Config) validate() error {
	comp := c.Competition
	if comp.Divisions < 1 {
		return fmt.Errorf("at least one division is required")
	}
	if comp.TeamsPerDivision < 2 {
		return fmt.Errorf("teams_per_division must be at least 2, got %d", comp.TeamsPerDivision)
	}
	if comp.PromotedAndDemoted < 0 || comp.PromotedAndDemoted*2 >= comp.TeamsPerDivision {
		return fmt.Errorf("promoted_and_demoted %d does not fit in %d teams", comp.PromotedAndDemoted, comp.TeamsPerDivision)
	}
	if comp.ExtraTeams < comp.PromotedAndDemoted {
		return fmt.Errorf("extra_teams %d must be at least promoted_and_demoted %d", comp.ExtraTeams, comp.PromotedAndDemoted)
	}

	if c.Player.MinSkill >= c.Player.MaxSkill {
		return fmt.Errorf("player min_skill %.1f must be below max_skill %.1f", c.Player.MinSkill, c.Player.MaxSkill)
	}
	if c.Player.MinAge >= c.Player.RetirementAge || c.Player.RetirementAge > c.Player.MaxAge {
		return fmt.Errorf("player ages must satisfy min_age < retirement_age <= max_age")
	}
	if c.Training.StopAge > c.Training.DecreaseAge {
		return fmt.Errorf("training stop_age %d must not exceed decrease_age %d", c.Training.StopAge, c.Training.DecreaseAge)
	}

	if c.Team.MinPlayers < 11 || c.Team.MaxPlayers < c.Team.MinPlayers {
		return fmt.Errorf("team squad size must satisfy 11 <= min_players <= max_players")
	}
	for _, tac := range c.Team.AllTactics() {
		if tac[0]+tac[1]+tac[2] != 10 {
			return fmt.Errorf("tactic %d-%d-%d does not field 10 outfield players", tac[0], tac[1], tac[2])
		}
	}

	probs := map[string]float64{
		"match.injury_prob_per_minute":              c.Match.InjuryProbPerMinute,
		"match.max_possession":                      c.Match.MaxPossession,
		"match.max_goal_prob_per_possession":        c.Match.MaxGoalProbPerPossession,
		"player.retirement_probability":             c.Player.RetirementProbability,
		"player.weekly_contract_demand_probability": c.Player.WeeklyContractDemandProbability,
		"player.goalkeeper_probability":             c.Player.GoalkeeperProbability,
	}
	for name, p := range probs {
		if p < 0 || p > 1 {
			return fmt.Errorf("%s must be between 0 and 1, got %v", name, p)
		}
	}
	if c.Match.MaxPossession < 0.5 {
		return fmt.Errorf("match.max_possession must be at least 0.5, got %v", c.Match.MaxPossession)
	}

	if len(c.Money.Top3Multipliers) != 3 || len(c.Money.Bottom3Multipliers) != 3 {
		return fmt.Errorf("money top/bottom multipliers need exactly 3 entries each")
	}

	return nil
}
