package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericogr/chimera-battle/internal/game"
)

func TestDeriveStats_DeployCost(t *testing.T) {
	d := NewDeriver(game.DefaultBalance())
	s := d.DeriveStats(game.RawCreature{Form: 2, Strength: 5, Stamina: 4})
	assert.Equal(t, 7, s.EnergyCost)

	override := 3
	s = d.DeriveStats(game.RawCreature{Form: 2, EnergyCostOverride: &override})
	assert.Equal(t, 3, s.EnergyCost)
}

func TestDeriveStats_RarityScalesCombatStats(t *testing.T) {
	d := NewDeriver(game.DefaultBalance())
	common := d.DeriveStats(game.RawCreature{Strength: 10, Stamina: 10, Rarity: game.RarityCommon})
	legend := d.DeriveStats(game.RawCreature{Strength: 10, Stamina: 10, Rarity: game.RarityLegendary})
	assert.Greater(t, legend.PhysicalAttack, common.PhysicalAttack)
	assert.Greater(t, legend.MaxHealth, common.MaxHealth)
	assert.Equal(t, common.EnergyCost, legend.EnergyCost)
}

func TestDifficultyTable(t *testing.T) {
	tbl := DefaultDifficulties()
	s, err := tbl.Settings(game.DifficultyHard)
	require.NoError(t, err)
	assert.Equal(t, 6, s.EnemyDeckSize)
	_, err = tbl.Settings("nightmare")
	assert.ErrorIs(t, err, ErrUnknownDifficulty)
}

func newGenerator() Generator {
	return Generator{
		Species: DefaultSpecies(),
		Tools:   DefaultTools(),
		Spells:  DefaultSpells(),
		Deriver: NewDeriver(game.DefaultBalance()),
		Table:   DefaultDifficulties(),
	}
}

func TestGenerateEnemyCreatures_Deterministic(t *testing.T) {
	g := newGenerator()
	a, err := g.GenerateEnemyCreatures(7, game.DifficultyNormal, 5, nil)
	require.NoError(t, err)
	b, err := g.GenerateEnemyCreatures(7, game.DifficultyNormal, 5, nil)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	require.Len(t, a, 5)
	seen := map[string]bool{}
	for _, c := range a {
		assert.False(t, seen[c.ID], "duplicate id %s", c.ID)
		seen[c.ID] = true
		assert.Equal(t, c.Stats.MaxHealth, c.CurrentHealth)
	}
}

func TestGenerateEnemyItems(t *testing.T) {
	g := newGenerator()
	tools, spells, err := g.GenerateEnemyItems(3, game.DifficultyHard)
	require.NoError(t, err)
	assert.Len(t, tools, 3)
	assert.Len(t, spells, 3)
	assert.Equal(t, "enemy-tool-1", tools[0].ID)

	_, err = Generator{Table: DefaultDifficulties()}.GenerateEnemyCreatures(1, game.DifficultyEasy, 2, nil)
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestTimedEffects(t *testing.T) {
	var p TimedEffects
	esc := p.ProcessTimedEffect(game.Effect{Type: game.EffectEscalating, HealthOverTime: -2}, 3, 1)
	assert.Equal(t, -3, esc.HealthOverTime)

	fade := p.ProcessTimedEffect(game.Effect{Type: game.EffectFading, StatModifications: map[string]int{game.StatPhysicalAttack: 3}}, 2, 1)
	assert.Equal(t, 2, fade.StatModifications[game.StatPhysicalAttack])

	same := game.Effect{Type: game.EffectBuff, StatModifications: map[string]int{game.StatPhysicalAttack: 3}}
	assert.Equal(t, same, p.ProcessTimedEffect(same, 5, 1))
}
