package sim

import (
	"github.com/ericogr/chimera-battle/internal/battle"
	"github.com/ericogr/chimera-battle/internal/config"
	"github.com/ericogr/chimera-battle/internal/game"
)

// DefaultTeam builds a player team of size creatures cycling through the
// configured species, with forms 0..2, plus the full item catalogs.
func DefaultTeam(cfg *config.LoadedConfig, size int) battle.TeamSelection {
	if size <= 0 {
		size = 1
	}
	raw := make([]game.RawCreature, 0, size)
	for i := 0; i < size && len(cfg.Species) > 0; i++ {
		sp := cfg.Species[i%len(cfg.Species)]
		raw = append(raw, game.RawCreature{
			SpeciesName: sp.Name,
			Form:        i % 3,
			Rarity:      sp.Rarity,
			Strength:    sp.Strength,
			Magic:       sp.Magic,
			Agility:     sp.Agility,
			Stamina:     sp.Stamina,
			Energy:      sp.Energy,
		})
	}
	return battle.TeamSelection{Creatures: raw, Tools: cfg.Tools, Spells: cfg.Spells}
}
