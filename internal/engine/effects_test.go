package engine

import (
	"testing"

	"github.com/ericogr/chimera-battle/internal/game"
)

func TestAdvanceEffects_StatsHealthAndExpiry(t *testing.T) {
	c := creature("c", 10, 0, 5, 0, 20)
	c.CurrentHealth = 19
	c.IsDefending = true
	c.DefenseBoost = 20
	c.ActiveEffects = []game.Effect{
		{Name: "Rage", Type: game.EffectBuff, Duration: 2, StatModifications: map[string]int{game.StatPhysicalAttack: 2}},
		{Name: "Regen", Type: game.EffectHealthOverTime, Duration: 1, HealthOverTime: 5},
	}

	out, logs := AdvanceEffects(c, 2, nil)

	if out.IsDefending || out.DefenseBoost != 0 {
		t.Fatalf("defend stance should be cleared, got %v/%d", out.IsDefending, out.DefenseBoost)
	}
	if out.Stats.PhysicalAttack != 12 {
		t.Fatalf("expected physical attack 12, got %d", out.Stats.PhysicalAttack)
	}
	if out.CurrentHealth != 20 {
		t.Fatalf("healing should clamp to max health, got %d", out.CurrentHealth)
	}
	if len(out.ActiveEffects) != 1 || out.ActiveEffects[0].Duration != 1 {
		t.Fatalf("expected one effect with 1 turn left, got %+v", out.ActiveEffects)
	}
	expired := false
	for _, l := range logs {
		if l == "Regen on c has expired" {
			expired = true
		}
	}
	if !expired {
		t.Fatalf("missing expiry log in %v", logs)
	}
	// input untouched
	if len(c.ActiveEffects) != 2 || c.ActiveEffects[0].Duration != 2 {
		t.Fatalf("input creature was modified: %+v", c.ActiveEffects)
	}
}

func TestAdvanceEffects_DamageOverTimeClampsAtZero(t *testing.T) {
	c := creature("c", 1, 0, 0, 0, 10)
	c.CurrentHealth = 2
	c.ActiveEffects = []game.Effect{{Name: "Burn", Type: game.EffectHealthOverTime, Duration: 3, HealthOverTime: -5}}
	out, _ := AdvanceEffects(c, 1, nil)
	if out.CurrentHealth != 0 || out.Alive() {
		t.Fatalf("expected a dead creature at 0 health, got %d", out.CurrentHealth)
	}
}

func TestAdvanceEffects_ChargeConvertsToAttackBonus(t *testing.T) {
	c := creature("c", 1, 0, 0, 0, 10)
	c.ActiveEffects = []game.Effect{{Name: "Focus", Type: game.EffectCharge, StartTurn: 1, Duration: 3, Charge: &game.ChargeEffect{MaxTurns: 3, FinalBurst: 7}}}

	for turn := 2; turn <= 3; turn++ {
		c, _ = AdvanceEffects(c, turn, nil)
		if len(c.ActiveEffects) != 1 || c.NextAttackBonus != 0 {
			t.Fatalf("turn %d: charge released early", turn)
		}
	}
	c, logs := AdvanceEffects(c, 4, nil)
	if len(c.ActiveEffects) != 0 {
		t.Fatalf("charge should be removed, got %+v", c.ActiveEffects)
	}
	if c.NextAttackBonus != 7 {
		t.Fatalf("expected attack bonus 7, got %d", c.NextAttackBonus)
	}
	if len(logs) != 1 {
		t.Fatalf("expected one log line, got %v", logs)
	}
}

type doubleHeal struct{}

func (doubleHeal) ProcessTimedEffect(e game.Effect, _, _ int) game.Effect {
	e.HealthOverTime *= 2
	return e
}

func TestAdvanceEffects_TimedProviderConsulted(t *testing.T) {
	c := creature("c", 1, 0, 0, 0, 20)
	c.CurrentHealth = 10
	c.ActiveEffects = []game.Effect{{Name: "Bloom", Type: game.EffectEscalating, Duration: 2, HealthOverTime: 2}}
	out, _ := AdvanceEffects(c, 1, doubleHeal{})
	if out.CurrentHealth != 14 || out.ActiveEffects[0].HealthOverTime != 4 {
		t.Fatalf("timed provider not applied: health %d, hot %d", out.CurrentHealth, out.ActiveEffects[0].HealthOverTime)
	}
}
