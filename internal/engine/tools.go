package engine

import (
	"strconv"

	"github.com/ericogr/chimera-battle/internal/game"
)

// ToolOutcome describes an applied tool.
type ToolOutcome struct {
	Creature game.Creature `json:"creature"`
	Amount   int           `json:"amount"`
	Summary  string        `json:"summary"`
}

// ResolveTool applies a tool to its target. The boolean is false when the
// tool cannot affect the target (full-health heal, cleanse without harmful
// effects, unknown stat); the caller must then treat the use as a no-op.
func ResolveTool(target game.Creature, tool game.Tool, env Env) (ToolOutcome, bool) {
	c := target.Clone()
	power := scalePower(tool.Power, env.Difficulty.ItemPowerPercent)
	name := DisplayName(c)

	switch tool.Kind {
	case game.ToolHeal:
		missing := c.MaxHealth() - c.CurrentHealth
		if missing <= 0 || power <= 0 {
			return ToolOutcome{}, false
		}
		healed := minInt(power, missing)
		c.CurrentHealth += healed
		return ToolOutcome{Creature: c, Amount: healed, Summary: tool.Name + " restores " + strconv.Itoa(healed) + " health to " + name}, true

	case game.ToolBoost:
		if power == 0 || !c.Stats.Add(tool.Stat, power) {
			return ToolOutcome{}, false
		}
		c.BattleStats.Add(tool.Stat, power)
		c.ClampHealth()
		verb := " raises "
		if power < 0 {
			verb = " lowers "
		}
		return ToolOutcome{Creature: c, Amount: power, Summary: tool.Name + verb + name + "'s " + tool.Stat + " by " + strconv.Itoa(absInt(power))}, true

	case game.ToolEffect:
		if tool.Effect == nil {
			return ToolOutcome{}, false
		}
		e := attachable(*tool.Effect, tool.ID, env)
		c.ActiveEffects = append(c.ActiveEffects, e)
		return ToolOutcome{Creature: c, Summary: tool.Name + " applies " + e.Name + " to " + name + " for " + strconv.Itoa(e.Duration) + " turns"}, true

	case game.ToolCleanse:
		kept := make([]game.Effect, 0, len(c.ActiveEffects))
		removed := 0
		for _, e := range c.ActiveEffects {
			if e.IsHarmful() {
				removed++
				continue
			}
			kept = append(kept, e)
		}
		if removed == 0 {
			return ToolOutcome{}, false
		}
		c.ActiveEffects = kept
		return ToolOutcome{Creature: c, Amount: removed, Summary: tool.Name + " cleanses " + strconv.Itoa(removed) + " effect(s) from " + name}, true

	case game.ToolCharge:
		if power <= 0 {
			return ToolOutcome{}, false
		}
		e := chargeEffect(tool.ID, tool.Name, power, tool.Effect, env)
		c.ActiveEffects = append(c.ActiveEffects, e)
		return ToolOutcome{Creature: c, Amount: power, Summary: name + " begins charging " + tool.Name + " (" + strconv.Itoa(e.Charge.MaxTurns) + " turns)"}, true
	}
	return ToolOutcome{}, false
}

// attachable stamps an effect template for attachment at the current turn.
func attachable(tpl game.Effect, id string, env Env) game.Effect {
	e := tpl.Clone()
	if e.ID == "" {
		e.ID = id
	}
	if e.Name == "" {
		e.Name = id
	}
	e.StartTurn = env.Turn
	if e.Duration <= 0 {
		e.Duration = env.Balance.EffectDefaultTurns
	}
	if e.Type == game.EffectCharge && e.Charge == nil {
		e.Charge = &game.ChargeEffect{MaxTurns: env.Balance.ChargeDefaultTurns}
	}
	return e
}

func chargeEffect(id, name string, burst int, tpl *game.Effect, env Env) game.Effect {
	turns := env.Balance.ChargeDefaultTurns
	if tpl != nil && tpl.Charge != nil && tpl.Charge.MaxTurns > 0 {
		turns = tpl.Charge.MaxTurns
	}
	if turns <= 0 {
		turns = 1
	}
	return game.Effect{
		ID:        id,
		Name:      name,
		Type:      game.EffectCharge,
		Duration:  turns,
		StartTurn: env.Turn,
		Charge:    &game.ChargeEffect{MaxTurns: turns, FinalBurst: burst},
	}
}
