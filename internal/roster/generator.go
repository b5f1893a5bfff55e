package roster

import (
	"errors"
	"math/rand/v2"
	"strconv"

	"github.com/ericogr/chimera-battle/internal/game"
)

var ErrEmptyCatalog = errors.New("species catalog is empty")

// Generator builds enemy rosters and items from the configured catalogs.
// Output depends only on the seed and the inputs.
type Generator struct {
	Species []game.Species
	Tools   []game.Tool
	Spells  []game.Spell
	Deriver Deriver
	Table   DifficultyTable
}

func (g Generator) rng(seed int64, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), stream))
}

// GenerateEnemyCreatures draws count creatures. Forms follow the average
// opponent form plus the difficulty bonus, capped to [0, 3].
func (g Generator) GenerateEnemyCreatures(seed int64, d game.Difficulty, count int, opponent []game.Creature) ([]game.Creature, error) {
	if len(g.Species) == 0 {
		return nil, ErrEmptyCatalog
	}
	settings, err := g.Table.Settings(d)
	if err != nil {
		return nil, err
	}
	avg := 0
	if len(opponent) > 0 {
		sum := 0
		for _, c := range opponent {
			sum += c.Form
		}
		avg = sum / len(opponent)
	}
	form := avg + settings.EnemyFormBonus
	if form < 0 {
		form = 0
	}
	if form > 3 {
		form = 3
	}

	r := g.rng(seed, 1)
	out := make([]game.Creature, 0, count)
	for i := 0; i < count; i++ {
		sp := g.Species[r.IntN(len(g.Species))]
		f := form
		// occasional variance keeps rosters from being uniform
		if r.Float64() < 0.25 && f > 0 {
			f--
		}
		raw := game.RawCreature{
			ID:          game.EnemyIDPrefix + strconv.Itoa(i+1),
			SpeciesName: sp.Name,
			Form:        f,
			Rarity:      sp.Rarity,
			Strength:    sp.Strength,
			Magic:       sp.Magic,
			Agility:     sp.Agility,
			Stamina:     sp.Stamina,
			Energy:      sp.Energy,
		}
		out = append(out, g.Deriver.NewCreature(raw))
	}
	return out, nil
}

// GenerateEnemyItems draws ItemCount tools and ItemCount spells. Item ids
// are prefixed so they never collide with the player's inventory.
func (g Generator) GenerateEnemyItems(seed int64, d game.Difficulty) ([]game.Tool, []game.Spell, error) {
	settings, err := g.Table.Settings(d)
	if err != nil {
		return nil, nil, err
	}
	r := g.rng(seed, 2)
	var tools []game.Tool
	var spells []game.Spell
	for i := 0; i < settings.ItemCount; i++ {
		if len(g.Tools) > 0 {
			t := g.Tools[r.IntN(len(g.Tools))].Clone()
			t.ID = "enemy-tool-" + strconv.Itoa(i+1)
			tools = append(tools, t)
		}
		if len(g.Spells) > 0 {
			s := g.Spells[r.IntN(len(g.Spells))].Clone()
			s.ID = "enemy-spell-" + strconv.Itoa(i+1)
			spells = append(spells, s)
		}
	}
	return tools, spells, nil
}

// DefaultSpecies is the stock species catalog.
func DefaultSpecies() []game.Species {
	return []game.Species{
		{Name: "Wolf", Rarity: game.RarityCommon, Strength: 9, Magic: 2, Agility: 8, Stamina: 6, Energy: 4},
		{Name: "Raven", Rarity: game.RarityCommon, Strength: 3, Magic: 9, Agility: 9, Stamina: 4, Energy: 6},
		{Name: "Tortoise", Rarity: game.RarityUncommon, Strength: 4, Magic: 3, Agility: 2, Stamina: 14, Energy: 3},
		{Name: "Lion", Rarity: game.RarityRare, Strength: 12, Magic: 3, Agility: 7, Stamina: 8, Energy: 5},
		{Name: "Owl", Rarity: game.RarityUncommon, Strength: 2, Magic: 11, Agility: 6, Stamina: 5, Energy: 7},
		{Name: "Phoenix", Rarity: game.RarityLegendary, Strength: 8, Magic: 12, Agility: 9, Stamina: 8, Energy: 9},
	}
}

// DefaultTools is the stock tool catalog.
func DefaultTools() []game.Tool {
	return []game.Tool{
		{ID: "potion", Name: "Healing Potion", Kind: game.ToolHeal, Power: 12},
		{ID: "whetstone", Name: "Whetstone", Kind: game.ToolBoost, Stat: game.StatPhysicalAttack, Power: 3},
		{ID: "salts", Name: "Smelling Salts", Kind: game.ToolCleanse},
		{ID: "focus", Name: "Focus Crystal", Kind: game.ToolCharge, Power: 8},
		{ID: "tonic", Name: "Regen Tonic", Kind: game.ToolEffect, Effect: &game.Effect{Name: "Regeneration", Type: game.EffectHealthOverTime, Duration: 3, HealthOverTime: 3}},
	}
}

// DefaultSpells is the stock spell catalog.
func DefaultSpells() []game.Spell {
	return []game.Spell{
		{ID: "bolt", Name: "Arcane Bolt", Kind: game.SpellDamage, Power: 6},
		{ID: "mend", Name: "Mend", Kind: game.SpellHeal, Power: 10},
		{ID: "leech", Name: "Leech", Kind: game.SpellDrain, Power: 4},
		{ID: "rally", Name: "Rally", Kind: game.SpellBuff, Power: 2},
		{ID: "hex", Name: "Hex", Kind: game.SpellDebuff, Power: 2},
		{ID: "storm", Name: "Gathering Storm", Kind: game.SpellCharge, Power: 10},
	}
}
