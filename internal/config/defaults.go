package config

// DefaultYAML is the built-in tuning. `sfm init` writes it out as a
// starting point; any key left out of a user file keeps this value.
const DefaultYAML = `# SFM Career Configuration
# ========================
# Every number the simulation uses lives here. Remove a key to fall back
# to the built-in default.

game:
  starting_year: 2018

# League pyramid. The bottom "extra teams" pool never plays fixtures and
# swaps promoted_and_demoted teams with the lowest playable division.
competition:
  divisions: 4
  teams_per_division: 16
  promoted_and_demoted: 3
  extra_teams: 12

# Prize money and sponsorship. Lower divisions earn an exponentially
# smaller share; higher table positions get a quadratic boost.
money:
  division_influence_on_result_prize: 2.6
  division_influence_on_sponsorship: 2.6
  division_influence_on_season_prize: 2.375
  position_influence_on_sponsorship: 0.0925
  position_influence_on_season_prize: 0.0925
  min_per_win: 39000
  min_per_draw: 13000
  min_sponsors: 75000
  min_end_of_season: 600000
  top_3_multipliers: [1.1, 1.075, 1.05]
  bottom_3_multipliers: [0.9, 0.85, 0.8]

manager:
  points_per_top_3_position: 20
  points_per_championship: 20

# Weekly transfer list generation.
transfers:
  average_players_per_turn: 10
  players_per_turn_variation: 2
  skill_variation: 3
  max_skill_weights: {16: 5, 17: 4, 18: 3, 19: 2, 20: 1}
  same_country_base: 0.35
  same_country_per_level: 0.2

team:
  min_skill: 1
  min_division_skill: 4
  max_skill: 20
  base_tactics: [[3, 5, 2], [4, 3, 3], [4, 4, 2], [4, 5, 1]]
  defensive_tactics: [[5, 3, 2], [5, 4, 1]]
  attacking_tactics: [[3, 3, 4], [3, 4, 3], [4, 2, 4]]
  tactical_penalties:
    df_at_most_2: 0.2
    df_is_3: 0.6
    df_is_5: 1.1
    md_at_most_2: 0.6
    at_is_4: 1.1
    at_is_1: 0.905
    at_is_2: 0.95
    at_is_0: 0
    md_when_df_at_most_2: 0.75
    when_md_at_most_1: 0.25
    md_when_at_is_0: 0.5
    no_goalkeeper: 0.2
  goalkeeper_bonus: 1.2
  skill_balance_exponent: 0.625
  min_players: 11
  max_players: 23
  bench_players: 7
  avg_youth_players_promoted: 2
  starting_players_per_position: [2, 6, 6, 4]
  human_skill_bonus: 0.8
  pool_skill_bonus: 1

# Fan expectations. Each team gets a points-per-week target at the start
# of the season; results above or below it move fan happiness.
team_goals:
  min_points_per_week: 0.85
  max_points_per_week: 1.85
  happiness_multiplier: 2
  min_fan_happiness: 0
  max_fan_happiness: 100
  firing_threshold: 10
  objective_positions: [13, 11, 9, 6, 3, 1]

player:
  min_skill: 1
  max_skill: 20
  avg_age: 26.5
  age_std_dev: 3.8
  min_age: 18
  max_age: 38
  retirement_age: 32
  retirement_probability: 0.5
  goalkeeper_probability: 0.09
  starting_training: 0.5
  salary_skill_exponent: 7
  min_salary: 3000
  salary_variation: [0.85, 1.15]
  salary_increase_asking: [1.175, 1.25]
  salary_increase_offered: [1, 1.05]
  weekly_contract_demand_probability: 0.5
  injury_training_effect: 0.1
  injury_age_factor: 0.7
  injury_weight_goalkeeper: 0.05
  injury_weight_outfield: 0.2
  youth_skill_drop: 3
  max_youth_skill: 16
  homegrown_bonus: 0.05
  skill_drop_per_age_per_minute: 0.0008
  skill_drop_per_minute_ai: 0.0295
  ai_fatigue_factor: 0.025

training:
  max_share: 0.55
  zero_minutes_factor: 0.4
  full_training_minutes: 45
  stop_age: 25
  decrease_age: 29
  randomness: [0.6, 1.5]

# Market value: (current * skill + potential * growth) ^ exponent * scale.
value:
  current_skill_influence: 1.4
  potential_skill_influence: 0.6
  exponent: 5
  max_skill_increase: 0.45
  scale: 1000000

match:
  minutes: 90
  goal_weight_per_position: [0, 0.03, 0.09, 0.88]
  max_goal_prob_per_possession: 0.108
  injury_prob_per_minute: 0.005
  minimum_players: 7
  forfeit_goals: 3
  max_possession: 0.65
  min_skill_balance: 0.0425
  home_advantage: 1.05
  max_substitutions: 3
  ai_scorer_weight: 0.25
  possession_window: 5
  possession_display_min: 20
  possession_display_max: 80

# Matchdays fall one week apart starting on first_matchday. Blackout
# dates push the matchday to the following day.
calendar:
  first_matchday: "2018-08-11"
  blackout_dates:
    - date: "2018-12-25"
      reason: "Christmas Day"
`
