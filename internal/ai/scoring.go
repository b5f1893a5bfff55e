package ai

import (
	"github.com/ericogr/chimera-battle/internal/engine"
	"github.com/ericogr/chimera-battle/internal/game"
)

// candidates lists every action legal on the simulated view with its
// score. Order is stable (hand, field, tools, spells in slice order) so
// ties resolve the same way every time.
func (s *sim) candidates(w Weights) []Action {
	var out []Action
	out = append(out, s.deployCandidates(w)...)
	out = append(out, s.attackCandidates(w)...)
	out = append(out, s.defendCandidates(w)...)
	out = append(out, s.toolCandidates(w)...)
	out = append(out, s.spellCandidates(w)...)
	return out
}

func (s *sim) penalty(w Weights, cost int) float64 {
	return w.Efficiency * float64(cost) / 2
}

func (s *sim) deployCandidates(w Weights) []Action {
	if len(s.v.Field) >= s.v.Balance.MaxFieldSize {
		return nil
	}
	var out []Action
	for _, c := range s.v.Hand {
		if s.deployed[c.ID] {
			continue
		}
		power := c.Stats.PhysicalAttack + c.Stats.MagicalAttack + c.Stats.PhysicalDefense + c.Stats.MagicalDefense + c.Stats.MaxHealth/5
		value := 3 + float64(power)/10
		if len(s.v.Field) == 0 {
			// an empty field loses the battle once the deck runs dry
			value += 4
		}
		cost := c.Stats.EnergyCost
		out = append(out, Action{
			Kind:       ActionDeploy,
			CreatureID: c.ID,
			Cost:       cost,
			Score:      w.Deploy*value - s.penalty(w, cost),
		})
	}
	return out
}

func (s *sim) attackCandidates(w Weights) []Action {
	cost := s.v.Balance.AttackCost
	var out []Action
	for _, a := range s.v.Field {
		if s.attacked[a.ID] {
			continue
		}
		for _, d := range s.v.OpponentField {
			dmg := engine.ExpectedAttackDamage(a, d, s.v.ConsecutiveActions, s.v.Balance)
			out = append(out, Action{
				Kind:       ActionAttack,
				CreatureID: a.ID,
				TargetID:   d.ID,
				Cost:       cost,
				Score:      s.damageValue(w, d, dmg) - s.penalty(w, cost),
			})
		}
	}
	return out
}

// damageValue values dealt damage, capped at the target's health, with a
// kill bonus that grows with what the target cost to deploy.
func (s *sim) damageValue(w Weights, target game.Creature, dmg int) float64 {
	if dmg <= 0 {
		return 0
	}
	dealt := dmg
	if dealt > target.CurrentHealth {
		dealt = target.CurrentHealth
	}
	v := w.Damage * float64(dealt) / 2
	if dmg >= target.CurrentHealth {
		v += w.Kill * (4 + float64(target.Stats.EnergyCost)/2)
	}
	return v
}

// threat is the largest hit any opposing creature could land on c.
func (s *sim) threat(c game.Creature) int {
	worst := 0
	for _, o := range s.v.OpponentField {
		if d := engine.ExpectedAttackDamage(o, c, 0, s.v.Balance); d > worst {
			worst = d
		}
	}
	return worst
}

func (s *sim) defendCandidates(w Weights) []Action {
	cost := s.v.Balance.DefendCost
	var out []Action
	for _, c := range s.v.Field {
		if c.IsDefending {
			continue
		}
		t := s.threat(c)
		if t == 0 {
			continue
		}
		guarded := c
		guarded.IsDefending = true
		guarded.DefenseBoost = s.v.Settings.DefendBonusPercent
		saved := t - s.threat(guarded)
		value := float64(saved) / 2
		if t >= c.CurrentHealth {
			value += 2
		}
		out = append(out, Action{
			Kind:       ActionDefend,
			CreatureID: c.ID,
			Cost:       cost,
			Score:      w.Defend*value - s.penalty(w, cost),
		})
	}
	return out
}

func (s *sim) toolCandidates(w Weights) []Action {
	if len(s.v.Field) == 0 {
		return nil
	}
	cost := s.v.Balance.ToolCost
	var out []Action
	for _, t := range s.v.Tools {
		targets, side := s.v.Field, s.v.Side
		if t.Hostile() {
			targets, side = s.v.OpponentField, s.v.Side.Opponent()
		}
		for _, c := range targets {
			o, ok := engine.ResolveTool(c, t, s.env)
			if !ok {
				continue
			}
			var value float64
			switch t.Kind {
			case game.ToolHeal:
				value = w.Heal * float64(o.Amount) / 2
				if s.threat(c) >= c.CurrentHealth {
					value += w.Heal * 2
				}
			case game.ToolCleanse:
				value = w.Heal * 2 * float64(o.Amount)
			case game.ToolBoost:
				value = w.Buff * float64(o.Amount)
			case game.ToolCharge:
				value = w.Buff * float64(o.Amount) / 3
			case game.ToolEffect:
				value = w.Buff * effectWeight(*t.Effect)
			}
			out = append(out, Action{
				Kind:       ActionUseTool,
				ToolID:     t.ID,
				TargetID:   c.ID,
				TargetSide: side,
				Cost:       cost,
				Score:      value - s.penalty(w, cost),
			})
		}
	}
	return out
}

func (s *sim) spellCandidates(w Weights) []Action {
	var out []Action
	for _, sp := range s.v.Spells {
		cost := s.v.Balance.SpellCostOf(sp)
		for ci, caster := range s.v.Field {
			targets, side := s.v.Field, s.v.Side
			if sp.Kind.Hostile() {
				targets, side = s.v.OpponentField, s.v.Side.Opponent()
			}
			for ti, t := range targets {
				self := side == s.v.Side && ti == ci
				value := s.spellValue(w, caster, t, self, sp)
				if value <= 0 {
					continue
				}
				out = append(out, Action{
					Kind:       ActionUseSpell,
					CreatureID: caster.ID,
					TargetID:   t.ID,
					TargetSide: side,
					SpellID:    sp.ID,
					Cost:       cost,
					Score:      value - s.penalty(w, cost),
				})
			}
		}
	}
	return out
}

func (s *sim) spellValue(w Weights, caster, target game.Creature, self bool, sp game.Spell) float64 {
	cast := func() engine.SpellResult {
		if self {
			return engine.ResolveSelfCast(caster, sp, s.env)
		}
		return engine.ResolveSpell(caster, target, sp, s.env)
	}
	switch sp.Kind {
	case game.SpellDamage, game.SpellDrain:
		dmg := engine.ExpectedSpellDamage(caster, target, sp, s.env)
		v := s.damageValue(w, target, dmg)
		if sp.Kind == game.SpellDrain && dmg > 0 {
			missing := caster.MaxHealth() - caster.CurrentHealth
			if missing > dmg/2 {
				missing = dmg / 2
			}
			v += w.Heal * float64(missing) / 2
		}
		return v
	case game.SpellHeal:
		r := cast()
		return w.Heal * float64(r.Healing) / 2
	case game.SpellBuff, game.SpellDebuff, game.SpellCharge:
		r := cast()
		if len(r.Target.ActiveEffects) == 0 {
			return 0
		}
		return w.Buff * effectWeight(r.Target.ActiveEffects[len(r.Target.ActiveEffects)-1])
	}
	return 0
}

// effectWeight is a rough size of an effect over its lifetime.
func effectWeight(e game.Effect) float64 {
	sum := 0
	for _, v := range e.StatModifications {
		if v < 0 {
			v = -v
		}
		sum += v
	}
	hot := e.HealthOverTime
	if hot < 0 {
		hot = -hot
	}
	d := e.Duration
	if d <= 0 {
		d = 1
	}
	total := float64(sum+hot) * float64(d) / 2
	if e.Charge != nil {
		total += float64(e.Charge.FinalBurst) / 3
	}
	return total
}
