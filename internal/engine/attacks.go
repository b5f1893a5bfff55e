package engine

import (
	"math"
	"strconv"

	"github.com/ericogr/chimera-battle/internal/game"
)

// AttackResult is the single result shape of an attack. Damage is the
// health actually removed from the defender's pool before clamping.
type AttackResult struct {
	Attacker   game.Creature `json:"attacker"`
	Defender   game.Creature `json:"defender"`
	Damage     int           `json:"damage"`
	IsCritical bool          `json:"isCritical"`
	IsBlocked  bool          `json:"isBlocked"`
	DamageType DamageType    `json:"damageType"`
	Log        string        `json:"log"`
}

// ResolveAttack computes one attack. It never rejects: energy and
// reference checks belong to the caller. Inputs are not modified.
//
// Damage: offense minus (stance-adjusted) defense, scaled by the combo
// multiplier, possibly critical, plus any stored charge bonus which is
// consumed.
func ResolveAttack(attacker, defender game.Creature, comboLevel int, env Env) AttackResult {
	a := attacker.Clone()
	d := defender.Clone()
	t := AttackTypeOf(a)
	off := offenseFor(a, t)
	def := defenseWithStance(d, t, env.Balance)
	raw := baseDamage(off, def, d.IsDefending)
	dmg := applyCombo(raw, comboLevel, env.Balance)

	crit := false
	r := env.roll()
	if dmg > 0 && r < env.Balance.CritChance {
		dmg = int(math.Floor(float64(dmg) * env.Balance.CritMultiplier))
		crit = true
	}
	bonus := a.NextAttackBonus
	if bonus > 0 {
		dmg += bonus
		a.NextAttackBonus = 0
	}

	d.CurrentHealth -= dmg
	d.ClampHealth()
	blocked := dmg == 0 && d.IsDefending

	var s summary
	s.add(DisplayName(a) + " attacks " + DisplayName(d) + " (" + string(t) + "): attack " + strconv.Itoa(off) + ", defense " + strconv.Itoa(def) + "; base damage " + strconv.Itoa(raw))
	s.addIf(comboLevel > 0 && raw > 0, "combo x"+strconv.FormatFloat(ComboMultiplier(comboLevel, env.Balance), 'f', 2, 64))
	s.addIf(crit, "critical hit")
	s.addIf(bonus > 0, "+"+strconv.Itoa(bonus)+" charge bonus")
	if blocked {
		s.add("blocked")
	} else {
		s.add("final damage " + strconv.Itoa(dmg))
	}

	return AttackResult{
		Attacker:   a,
		Defender:   d,
		Damage:     dmg,
		IsCritical: crit,
		IsBlocked:  blocked,
		DamageType: t,
		Log:        s.join("; "),
	}
}

// ExpectedAttackDamage is the damage ResolveAttack would deal without a
// critical hit. It does not consume anything.
func ExpectedAttackDamage(attacker, defender game.Creature, comboLevel int, b game.Balance) int {
	t := AttackTypeOf(attacker)
	raw := baseDamage(offenseFor(attacker, t), defenseWithStance(defender, t, b), defender.IsDefending)
	return applyCombo(raw, comboLevel, b) + attacker.NextAttackBonus
}

// ResolveDefend puts the creature in defensive stance until the start of
// its owner's next turn. The difficulty context adds a percentage to the
// stance multiplier.
func ResolveDefend(c game.Creature, env Env) game.Creature {
	out := c.Clone()
	out.IsDefending = true
	out.DefenseBoost = env.Difficulty.DefendBonusPercent
	return out
}
