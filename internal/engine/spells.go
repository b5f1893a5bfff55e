package engine

import (
	"math"
	"strconv"

	"github.com/ericogr/chimera-battle/internal/game"
)

// SpellResult is the single result shape of a spell cast. When the caster
// targets itself Caster and Target hold the same final creature.
type SpellResult struct {
	Caster     game.Creature `json:"caster"`
	Target     game.Creature `json:"target"`
	Damage     int           `json:"damage,omitempty"`
	Healing    int           `json:"healing,omitempty"`
	IsCritical bool          `json:"isCritical,omitempty"`
	IsBlocked  bool          `json:"isBlocked,omitempty"`
	SelfCast   bool          `json:"selfCast,omitempty"`
	Log        string        `json:"log"`
}

// ResolveSpell applies a spell from caster to a different target creature.
// Offensive spells hit the magical channel and honor the defend stance like
// attacks; healing is clamped to max health.
func ResolveSpell(caster, target game.Creature, spell game.Spell, env Env) SpellResult {
	return resolveSpell(caster, target, false, spell, env)
}

// ResolveSelfCast applies a spell the caster aims at itself.
func ResolveSelfCast(caster game.Creature, spell game.Spell, env Env) SpellResult {
	return resolveSpell(caster, caster, true, spell, env)
}

func resolveSpell(caster, target game.Creature, self bool, spell game.Spell, env Env) SpellResult {
	c := caster.Clone()
	t := target.Clone()
	tp := &t
	if self {
		tp = &c
	}
	power := scalePower(spell.Power, env.Difficulty.ItemPowerPercent)
	res := SpellResult{SelfCast: self}
	var s summary
	s.add(DisplayName(c) + " casts " + spell.Name + " on " + DisplayName(*tp))

	switch spell.Kind {
	case game.SpellDamage, game.SpellDrain:
		off := c.BattleStats.MagicalAttack + power
		def := defenseWithStance(*tp, DamageMagical, env.Balance)
		dmg := baseDamage(off, def, tp.IsDefending)
		r := env.roll()
		if dmg > 0 && r < env.Balance.CritChance {
			dmg = int(math.Floor(float64(dmg) * env.Balance.CritMultiplier))
			res.IsCritical = true
		}
		tp.CurrentHealth -= dmg
		tp.ClampHealth()
		res.Damage = dmg
		res.IsBlocked = dmg == 0 && tp.IsDefending
		s.add("magic " + strconv.Itoa(off) + " vs resistance " + strconv.Itoa(def))
		s.addIf(res.IsCritical, "critical hit")
		s.add(strconv.Itoa(dmg) + " damage")
		if spell.Kind == game.SpellDrain && dmg > 0 {
			before := c.CurrentHealth
			c.CurrentHealth += dmg / 2
			c.ClampHealth()
			res.Healing = c.CurrentHealth - before
			s.add("drains " + strconv.Itoa(res.Healing) + " health")
		}

	case game.SpellHeal:
		amount := power + c.BattleStats.MagicalAttack/4
		healed := minInt(amount, tp.MaxHealth()-tp.CurrentHealth)
		if healed < 0 {
			healed = 0
		}
		tp.CurrentHealth += healed
		res.Healing = healed
		s.add("restores " + strconv.Itoa(healed) + " health")

	case game.SpellBuff, game.SpellDebuff:
		e := spellEffect(spell, power, env)
		tp.ActiveEffects = append(tp.ActiveEffects, e)
		s.add(e.Name + " for " + strconv.Itoa(e.Duration) + " turns")

	case game.SpellCharge:
		e := chargeEffect(spell.ID, spell.Name, power, spell.Effect, env)
		tp.ActiveEffects = append(tp.ActiveEffects, e)
		s.add("charging for " + strconv.Itoa(e.Charge.MaxTurns) + " turns")
	}

	res.Caster = c
	res.Target = *tp
	res.Log = s.join("; ")
	return res
}

// ExpectedSpellDamage is the damage an offensive spell would deal without a
// critical hit.
func ExpectedSpellDamage(caster, target game.Creature, spell game.Spell, env Env) int {
	if !spell.Kind.Offensive() {
		return 0
	}
	off := caster.BattleStats.MagicalAttack + scalePower(spell.Power, env.Difficulty.ItemPowerPercent)
	return baseDamage(off, defenseWithStance(target, DamageMagical, env.Balance), target.IsDefending)
}

func spellEffect(spell game.Spell, power int, env Env) game.Effect {
	if spell.Effect != nil {
		return attachable(*spell.Effect, spell.ID, env)
	}
	if spell.Kind == game.SpellDebuff {
		return attachable(game.Effect{
			Name: spell.Name,
			Type: game.EffectDebuff,
			StatModifications: map[string]int{
				game.StatPhysicalDefense: -power,
				game.StatMagicalDefense:  -power,
			},
		}, spell.ID, env)
	}
	return attachable(game.Effect{
		Name: spell.Name,
		Type: game.EffectBuff,
		StatModifications: map[string]int{
			game.StatPhysicalAttack: power,
			game.StatMagicalAttack:  power,
		},
	}, spell.ID, env)
}
