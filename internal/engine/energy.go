package engine

import (
	"math"

	"github.com/ericogr/chimera-battle/internal/game"
)

// ComputeRegen is the base regeneration plus one point per
// EnergyContributionDivisor of summed field energy, plus the difficulty
// bonus (AI side only; the human side passes 0).
func ComputeRegen(field []game.Creature, difficultyRegenBonus int, b game.Balance) int {
	sum := 0
	for _, c := range field {
		sum += c.Energy
	}
	div := b.EnergyContributionDivisor
	if div <= 0 {
		div = 10
	}
	regen := b.BaseRegen + sum/div + difficultyRegenBonus
	if regen < 0 {
		regen = 0
	}
	return regen
}

// EnemyRegenBonus converts the difficulty regen setting into the bonus added
// on top of ComputeRegen for the AI side.
func EnemyRegenBonus(settings game.DifficultySettings, b game.Balance) int {
	bonus := settings.EnemyEnergyRegen - b.EnemyRegenOffset
	if bonus < 0 {
		return 0
	}
	return bonus
}

// ComputeMomentumBonus converts accumulated momentum into bonus regen: one
// MomentumBonus per full threshold. The caller resets momentum to 0 after
// the payout; any remainder is forfeited. nextThreshold is the momentum
// still needed for the next payout from the current counter.
func ComputeMomentumBonus(momentum int, b game.Balance) (bonusRegen, nextThreshold int) {
	th := b.MomentumThreshold
	if th <= 0 {
		return 0, 0
	}
	if momentum < 0 {
		momentum = 0
	}
	bonusRegen = (momentum / th) * b.MomentumBonus
	if momentum < th {
		return bonusRegen, th - momentum
	}
	return bonusRegen, th
}

// ApplyDecay removes floor(energy*rate) when energy is above the hoarding
// threshold. The result is never negative.
func ApplyDecay(energy int, b game.Balance) int {
	if energy <= b.HoardingThreshold {
		return energy
	}
	out := energy - int(math.Floor(float64(energy)*b.DecayRate))
	if out < 0 {
		return 0
	}
	return out
}

// ClampEnergy keeps a value within [0, limit].
func ClampEnergy(energy, limit int) int {
	if energy < 0 {
		return 0
	}
	if energy > limit {
		return limit
	}
	return energy
}

// ApplyComboBonus adds the end-of-turn combo bonus to the offensive working
// stats of every field creature.
func ApplyComboBonus(field []game.Creature, b game.Balance) []game.Creature {
	out := game.CloneCreatures(field)
	for i := range out {
		for _, stat := range game.OffensiveStats {
			out[i].Stats.Add(stat, b.ComboBonusAttack)
		}
	}
	return out
}
