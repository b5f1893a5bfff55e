package roster

import "github.com/ericogr/chimera-battle/internal/game"

// TimedEffects implements the timed-effect provider for the kinds outside
// the base model. Escalating effects grow their health over time by one
// point per elapsed turn; fading effects shrink each stat modification one
// point toward zero. All other kinds pass through unchanged.
type TimedEffects struct{}

func (TimedEffects) ProcessTimedEffect(e game.Effect, currentTurn, startTurn int) game.Effect {
	if currentTurn <= startTurn {
		return e
	}
	out := e.Clone()
	switch e.Type {
	case game.EffectEscalating:
		switch {
		case out.HealthOverTime > 0:
			out.HealthOverTime++
		case out.HealthOverTime < 0:
			out.HealthOverTime--
		}
	case game.EffectFading:
		for k, v := range out.StatModifications {
			switch {
			case v > 0:
				out.StatModifications[k] = v - 1
			case v < 0:
				out.StatModifications[k] = v + 1
			}
		}
	}
	return out
}
