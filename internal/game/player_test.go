package game

import "testing"

func TestCurrentValue(t *testing.T) {
	env := testEnv(10)

	t.Run("non-negative and monotone in skill", func(t *testing.T) {
		for _, age := range []int{18, 22, 27, 31, 35, 38} {
			var prev int64 = -1
			for skill := 1.0; skill <= 20; skill++ {
				p := newPlayer(env, skill, "ENG", Midfielder, age, false)
				v := p.CurrentValue()
				if v < 0 {
					t.Errorf("age %d skill %v: value %d is negative", age, skill, v)
				}
				if v < prev {
					t.Errorf("age %d: value dropped from %d to %d at skill %v", age, prev, v, skill)
				}
				prev = v
			}
		}
	})

	t.Run("zero only when injured", func(t *testing.T) {
		p := newPlayer(env, 1, "ENG", Defender, 38, false)
		if p.CurrentValue() == 0 {
			t.Error("healthy player is worth 0")
		}
		p.Injury = 1
		if v := p.CurrentValue(); v != 0 {
			t.Errorf("injured value = %d, want 0", v)
		}
	})

	t.Run("young players are worth more", func(t *testing.T) {
		young := newPlayer(env, 12, "ENG", Attacker, 19, false)
		old := newPlayer(env, 12, "ENG", Attacker, 33, false)
		if young.CurrentValue() <= old.CurrentValue() {
			t.Errorf("young %d <= old %d", young.CurrentValue(), old.CurrentValue())
		}
	})
}

func TestCheckRetirement(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		env := testEnv(seed)
		p := newPlayer(env, 10, "ENG", Defender, 38, false)
		if !p.CheckRetirement() {
			t.Fatalf("seed %d: player aged 38 did not retire", seed)
		}
		young := newPlayer(env, 10, "ENG", Defender, 24, false)
		if young.CheckRetirement() {
			t.Fatalf("seed %d: player aged 24 retired", seed)
		}
	}
}

func TestNewPlayer(t *testing.T) {
	env := testEnv(11)
	cfg := env.Config.Player

	for range 200 {
		p := newPlayer(env, 25, "", AnyPosition, 0, false)
		if p.Skill != cfg.MaxSkill {
			t.Fatalf("skill = %v, want clamp to %v", p.Skill, cfg.MaxSkill)
		}
		if p.Age < cfg.MinAge || p.Age > cfg.MaxAge {
			t.Fatalf("age %d outside [%d, %d]", p.Age, cfg.MinAge, cfg.MaxAge)
		}
		if p.Position < Goalkeeper || p.Position > Attacker {
			t.Fatalf("position %d out of range", p.Position)
		}
		if p.ID == "" || p.Name == "" || p.Country == "" {
			t.Fatalf("missing identity: %+v", p)
		}
		if p.Salary <= 0 {
			t.Fatalf("salary = %d", p.Salary)
		}
	}

	home := newPlayer(env, 10, "ENG", Defender, 18, true)
	if home.Skill <= 10 {
		t.Errorf("homegrown skill = %v, want bonus over 10", home.Skill)
	}
}

func TestChangeTraining(t *testing.T) {
	env := testEnv(12)

	t.Run("crossing one raises skill", func(t *testing.T) {
		p := newPlayer(env, 10, "ENG", Defender, 20, false)
		p.Training = 0.9
		change, _ := p.ChangeTraining(0.2)
		if change != 1 || p.Skill != 11 {
			t.Errorf("change = %d skill = %v, want 1 and 11", change, p.Skill)
		}
		if p.Training < 0 || p.Training > 1 {
			t.Errorf("training = %v, want within [0, 1]", p.Training)
		}
	})

	t.Run("crossing zero lowers skill", func(t *testing.T) {
		p := newPlayer(env, 10, "ENG", Defender, 34, false)
		p.Training = 0.05
		change, _ := p.ChangeTraining(-0.1)
		if change != -1 || p.Skill != 9 {
			t.Errorf("change = %d skill = %v, want -1 and 9", change, p.Skill)
		}
	})

	t.Run("clipped at max skill", func(t *testing.T) {
		p := newPlayer(env, 20, "ENG", Defender, 20, false)
		p.Training = 0.99
		change, _ := p.ChangeTraining(0.5)
		if change != 0 || p.Skill != 20 || p.Training != 1 {
			t.Errorf("change = %d skill = %v training = %v", change, p.Skill, p.Training)
		}
	})
}

func TestSetInjury(t *testing.T) {
	env := testEnv(13)
	p := newPlayer(env, 10, "ENG", Defender, 30, false)
	p.Status = Starting
	p.SetInjury()
	if p.Injury < 1 {
		t.Errorf("injury = %d, want at least 1", p.Injury)
	}
	if p.Status != Reserve {
		t.Errorf("status = %v, want reserve", p.Status)
	}
	if p.Available() {
		t.Error("injured player available")
	}
	weeks := p.Injury
	p.reduceInjury()
	if p.Injury != weeks-1 {
		t.Errorf("injury = %d after a week, want %d", p.Injury, weeks-1)
	}
}

func TestMatchSkill(t *testing.T) {
	env := testEnv(14)
	p := newPlayer(env, 15, "ENG", Attacker, 30, false)
	fresh := p.MatchSkill()
	p.MatchMinutes = 90
	if tired := p.MatchSkill(); tired >= fresh {
		t.Errorf("skill after 90 minutes %v, want below %v", tired, fresh)
	}
}
