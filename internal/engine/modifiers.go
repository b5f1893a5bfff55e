package engine

import (
	"math"

	"github.com/ericogr/chimera-battle/internal/game"
)

// DamageType is the channel an attack or spell hits through.
type DamageType string

const (
	DamagePhysical DamageType = "physical"
	DamageMagical  DamageType = "magical"
)

// AttackTypeOf compares the effective attack stats; ties favor physical.
func AttackTypeOf(c game.Creature) DamageType {
	if c.BattleStats.MagicalAttack > c.BattleStats.PhysicalAttack {
		return DamageMagical
	}
	return DamagePhysical
}

// --- Modifier helpers --------------------------------------------------
func offenseFor(c game.Creature, t DamageType) int {
	if t == DamageMagical {
		return c.BattleStats.MagicalAttack
	}
	return c.BattleStats.PhysicalAttack
}

// defenseWithStance returns the matching defense stat, multiplied by the
// defend stance (plus any difficulty boost) when the creature is defending.
func defenseWithStance(c game.Creature, t DamageType, b game.Balance) int {
	d := c.BattleStats.PhysicalDefense
	if t == DamageMagical {
		d = c.BattleStats.MagicalDefense
	}
	if c.IsDefending {
		mult := b.DefendMultiplier + float64(c.DefenseBoost)/100.0
		d = int(math.Floor(float64(d) * mult))
	}
	if d < 0 {
		d = 0
	}
	return d
}

// baseDamage is offense minus defense. A defending target can take zero
// damage; anything else takes at least 1.
func baseDamage(off, def int, defending bool) int {
	raw := off - def
	floor := 1
	if defending {
		floor = 0
	}
	if raw < floor {
		raw = floor
	}
	return raw
}

// ComboMultiplier is 1 + min(level*step, cap).
func ComboMultiplier(level int, b game.Balance) float64 {
	if level <= 0 {
		return 1
	}
	return 1 + math.Min(float64(level)*b.ComboStep, b.ComboCap)
}

func applyCombo(dmg, level int, b game.Balance) int {
	return int(math.Floor(float64(dmg)*ComboMultiplier(level, b) + 1e-9))
}

// scalePower applies the difficulty item power percentage. Zero means
// unscaled.
func scalePower(power, percent int) int {
	if percent <= 0 || percent == 100 {
		return power
	}
	return int(math.Round(float64(power) * float64(percent) / 100.0))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
