package engine

import (
	"sort"
	"strconv"

	"github.com/ericogr/chimera-battle/internal/game"
)

// TimedEffects handles effect kinds beyond the base stat and
// health-over-time model. It is consulted before each effect is processed.
type TimedEffects interface {
	ProcessTimedEffect(e game.Effect, currentTurn, startTurn int) game.Effect
}

// AdvanceEffects runs one processing pass over the creature's effects. It
// must run exactly once per creature at its owner's turn start.
//
// The defend stance is dropped first. Each effect then applies its stat
// modifications and health over time, and has its duration decremented;
// expired effects are removed. Charge effects are not decremented: once
// turn-startTurn reaches MaxTurns the burst is stored in NextAttackBonus and
// the effect is removed.
func AdvanceEffects(c game.Creature, turn int, timed TimedEffects) (game.Creature, []string) {
	out := c.Clone()
	out.IsDefending = false
	out.DefenseBoost = 0
	var logs []string
	name := DisplayName(out)

	kept := make([]game.Effect, 0, len(out.ActiveEffects))
	for _, e := range out.ActiveEffects {
		if timed != nil {
			e = timed.ProcessTimedEffect(e, turn, e.StartTurn)
		}
		if e.Type == game.EffectCharge && e.Charge != nil {
			if turn-e.StartTurn >= e.Charge.MaxTurns {
				out.NextAttackBonus += e.Charge.FinalBurst
				logs = append(logs, name+"'s "+e.Name+" is fully charged: next attack +"+strconv.Itoa(e.Charge.FinalBurst))
				continue
			}
			kept = append(kept, e)
			continue
		}
		applyStatModifications(&out, e.StatModifications)
		if e.HealthOverTime != 0 {
			out.CurrentHealth += e.HealthOverTime
			out.ClampHealth()
			if e.HealthOverTime > 0 {
				logs = append(logs, name+" recovers "+strconv.Itoa(e.HealthOverTime)+" from "+e.Name)
			} else {
				logs = append(logs, name+" suffers "+strconv.Itoa(-e.HealthOverTime)+" from "+e.Name)
			}
		}
		e.Duration--
		if e.Duration <= 0 {
			logs = append(logs, e.Name+" on "+name+" has expired")
			continue
		}
		kept = append(kept, e)
	}
	out.ActiveEffects = kept
	return out, logs
}

func applyStatModifications(c *game.Creature, mods map[string]int) {
	if len(mods) == 0 {
		return
	}
	stats := make([]string, 0, len(mods))
	for k := range mods {
		stats = append(stats, k)
	}
	sort.Strings(stats)
	for _, stat := range stats {
		c.Stats.Add(stat, mods[stat])
	}
	c.ClampHealth()
}
