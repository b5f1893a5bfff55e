package config

import (
	"github.com/ericogr/chimera-battle/internal/ai"
	"github.com/ericogr/chimera-battle/internal/battle"
	"github.com/ericogr/chimera-battle/internal/roster"
)

// NewMachine builds the battle rules with the default providers over the
// loaded catalogs.
func (c *LoadedConfig) NewMachine() *battle.Machine {
	deriver := roster.NewDeriver(c.Balance)
	return battle.NewMachine(c.Balance, battle.Providers{
		Stats:      deriver,
		Difficulty: c.Difficulties,
		Roster: roster.Generator{
			Species: c.Species,
			Tools:   c.Tools,
			Spells:  c.Spells,
			Deriver: deriver,
			Table:   c.Difficulties,
		},
		Timed: roster.TimedEffects{},
	})
}

// NewPlanner builds the AI planner with the configured weights.
func (c *LoadedConfig) NewPlanner() *ai.Planner {
	return ai.NewPlanner(c.Weights)
}
