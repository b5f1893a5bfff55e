package roster

import (
	"math"

	"github.com/ericogr/chimera-battle/internal/game"
)

var rarityMultiplier = map[game.Rarity]float64{
	game.RarityCommon:    1.0,
	game.RarityUncommon:  1.1,
	game.RarityRare:      1.2,
	game.RarityEpic:      1.35,
	game.RarityLegendary: 1.5,
}

// Deriver turns raw roster entries into battle stats.
type Deriver struct {
	Balance game.Balance
}

// NewDeriver returns a Deriver using the given rules for the deploy cost.
func NewDeriver(b game.Balance) Deriver { return Deriver{Balance: b} }

// DeriveStats computes battle stats from raw attributes, form and rarity.
// The energy cost is BaseDeployCost+form unless the entry overrides it.
func (d Deriver) DeriveStats(raw game.RawCreature) game.BattleStats {
	mult, ok := rarityMultiplier[raw.Rarity]
	if !ok {
		mult = 1.0
	}
	form := raw.Form
	if form < 0 {
		form = 0
	}
	scale := func(v int) int { return int(math.Round(float64(v) * mult)) }

	s := game.BattleStats{
		PhysicalAttack:  scale(raw.Strength + form*2),
		MagicalAttack:   scale(raw.Magic + form*2),
		PhysicalDefense: scale(raw.Stamina/2 + form),
		MagicalDefense:  scale((raw.Magic+raw.Stamina)/4 + form),
		Initiative:      raw.Agility + form,
		MaxHealth:       scale(20 + raw.Stamina*2 + form*5),
		EnergyCost:      d.Balance.DeployCost(form),
	}
	if raw.EnergyCostOverride != nil && *raw.EnergyCostOverride >= 0 {
		s.EnergyCost = *raw.EnergyCostOverride
	}
	if s.MaxHealth < 1 {
		s.MaxHealth = 1
	}
	return s
}

// NewCreature builds a full-health creature from a raw entry.
func (d Deriver) NewCreature(raw game.RawCreature) game.Creature {
	stats := d.DeriveStats(raw)
	return game.Creature{
		ID:            raw.ID,
		SpeciesName:   raw.SpeciesName,
		Form:          raw.Form,
		Rarity:        raw.Rarity,
		Energy:        raw.Energy,
		Stats:         stats,
		BattleStats:   stats,
		CurrentHealth: stats.MaxHealth,
	}
}
