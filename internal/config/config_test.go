package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericogr/chimera-battle/internal/ai"
	"github.com/ericogr/chimera-battle/internal/game"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestParsePartialOverrides(t *testing.T) {
	cfg, err := Parse([]byte(`{
		"balance": {"max_energy": 30, "crit_chance": 0},
		"synergies": {"full_field": 0.2},
		"difficulties": {"easy": {"initial_hand_size": 1, "enemy_deck_size": 2, "max_actions_per_turn": 1}},
		"ai": {"maximum-aggression": {"damage": 2}},
		"server": {"address": ":9000"}
	}`))
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Balance.MaxEnergy)
	assert.Zero(t, cfg.Balance.CritChance)
	assert.Equal(t, game.DefaultBalance().AttackCost, cfg.Balance.AttackCost)
	assert.Equal(t, 0.2, cfg.Balance.Synergy.FullField)
	assert.Equal(t, game.DefaultBalance().Synergy.StatPair, cfg.Balance.Synergy.StatPair)
	assert.Equal(t, 2, cfg.Difficulties[game.DifficultyEasy].EnemyDeckSize)
	assert.Equal(t, 2.0, cfg.Weights[ai.MaximumAggression].Damage)
	assert.Equal(t, ":9000", cfg.ServerAddress)
	assert.NotEmpty(t, cfg.Species)
}

func TestParseRejections(t *testing.T) {
	cases := map[string]string{
		"bad json":           `{`,
		"unknown difficulty": `{"difficulties": {"nightmare": {"enemy_deck_size": 1, "max_actions_per_turn": 1}}}`,
		"unknown strategy":   `{"ai": {"berserk": {}}}`,
		"zero energy":        `{"balance": {"max_energy": 0}}`,
		"duplicate species":  `{"species": [{"name": "Wolf"}, {"name": " wolf "}]}`,
		"bad rarity":         `{"species": [{"name": "Wolf", "rarity": "mythic"}]}`,
		"duplicate item":     `{"tools": [{"id": "x", "kind": "heal"}], "spells": [{"id": "x", "kind": "heal"}]}`,
		"effect tool":        `{"tools": [{"id": "x", "kind": "effect"}]}`,
		"boost stat":         `{"tools": [{"id": "x", "kind": "boost", "stat": "luck"}]}`,
		"zero boost":         `{"tools": [{"id": "x", "kind": "boost", "stat": "physicalAttack", "power": 0}]}`,
		"spell kind":         `{"spells": [{"id": "x", "kind": "summon"}]}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestParseAcceptsCurseBoost(t *testing.T) {
	cfg, err := Parse([]byte(`{"tools": [{"id": "curse", "name": "Curse", "kind": "boost", "stat": "maxHealth", "power": -20}]}`))
	require.NoError(t, err)
	var found bool
	for _, tool := range cfg.Tools {
		if tool.ID == "curse" {
			found = true
			assert.Equal(t, -20, tool.Power)
		}
	}
	assert.True(t, found)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chimera_config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"server": {"address": ":7000"}}`), 0o600))
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.ServerAddress)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("CHIMERA_DB", "/tmp/x.db")
	t.Setenv("AI_TURN_TIMEOUT", "750ms")
	t.Setenv("SNAPSHOT_TTL", "")
	e, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.db", e.DatabasePath)
	assert.Equal(t, 750*time.Millisecond, e.AITurnBudget)
	assert.Equal(t, defaultSnapshotTTL, e.SnapshotLife)
	assert.Equal(t, "info", e.LogLevel)

	t.Setenv("AI_TURN_TIMEOUT", "soon")
	_, err = LoadEnv()
	assert.Error(t, err)
}
