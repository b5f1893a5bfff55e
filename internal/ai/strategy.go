package ai

import "github.com/ericogr/chimera-battle/internal/game"

// Strategy is a named stance. It only changes scoring weights, never what
// is legal.
type Strategy string

const (
	MaximumAggression  Strategy = "maximum-aggression"
	DefensiveSetup     Strategy = "defensive-setup"
	ComboSetup         Strategy = "combo-setup"
	ResourceEfficiency Strategy = "resource-efficiency"
)

// Weights scale each kind of expected value. Efficiency is a penalty per
// energy point spent.
type Weights struct {
	Damage     float64 `json:"damage"`
	Kill       float64 `json:"kill"`
	Deploy     float64 `json:"deploy"`
	Defend     float64 `json:"defend"`
	Heal       float64 `json:"heal"`
	Buff       float64 `json:"buff"`
	Efficiency float64 `json:"efficiency"`
}

// StrategyWeights maps each strategy to its weights.
type StrategyWeights map[Strategy]Weights

// DefaultWeights is the stock tuning.
func DefaultWeights() StrategyWeights {
	return StrategyWeights{
		MaximumAggression:  {Damage: 1.5, Kill: 1.2, Deploy: 0.6, Defend: 0.3, Heal: 0.5, Buff: 0.6, Efficiency: 0.2},
		DefensiveSetup:     {Damage: 0.8, Kill: 0.8, Deploy: 1.0, Defend: 1.4, Heal: 1.5, Buff: 0.8, Efficiency: 0.2},
		ComboSetup:         {Damage: 1.0, Kill: 1.0, Deploy: 1.3, Defend: 0.6, Heal: 0.8, Buff: 1.2, Efficiency: 0.1},
		ResourceEfficiency: {Damage: 1.0, Kill: 1.0, Deploy: 0.8, Defend: 0.5, Heal: 0.8, Buff: 0.6, Efficiency: 0.6},
	}
}

// ChooseStrategy picks a stance from relative field health, hand size,
// energy reserves and what the opponent still holds back.
func ChooseStrategy(v View) Strategy {
	cheapest := cheapestAction(v)
	if cheapest < 0 || v.Energy < cheapest {
		return ResourceEfficiency
	}
	own := healthSum(v.Field)
	opp := healthSum(v.OpponentField)
	if len(v.OpponentField) > 0 && len(v.Field) > 0 && own*2 < opp {
		return DefensiveSetup
	}
	// the opponent cannot reinforce: clearing its field ends the battle
	if v.OpponentReserve == 0 && len(v.OpponentField) > 0 && len(v.Field) > 0 {
		return MaximumAggression
	}
	if len(v.Hand) > 0 && len(v.Field) < (v.Balance.MaxFieldSize+1)/2 && v.Energy >= 2*cheapestDeploy(v) {
		return ComboSetup
	}
	if len(v.OpponentField) == 0 || own >= opp || v.Settings.Aggression >= 1.2 {
		return MaximumAggression
	}
	if v.Energy > v.Balance.HoardingThreshold {
		return ComboSetup
	}
	return ResourceEfficiency
}

func healthSum(field []game.Creature) int {
	sum := 0
	for _, c := range field {
		sum += c.CurrentHealth
	}
	return sum
}

func cheapestDeploy(v View) int {
	best := -1
	for _, c := range v.Hand {
		if best < 0 || c.Stats.EnergyCost < best {
			best = c.Stats.EnergyCost
		}
	}
	return best
}

// cheapestAction is the lowest energy any currently possible action needs,
// or -1 when nothing is possible at all.
func cheapestAction(v View) int {
	best := cheapestDeploy(v)
	consider := func(cost int) {
		if best < 0 || cost < best {
			best = cost
		}
	}
	if len(v.Field) > 0 {
		if len(v.OpponentField) > 0 {
			consider(v.Balance.AttackCost)
		}
		consider(v.Balance.DefendCost)
		for _, s := range v.Spells {
			consider(v.Balance.SpellCostOf(s))
		}
		if len(v.Tools) > 0 {
			consider(v.Balance.ToolCost)
		}
	}
	return best
}
