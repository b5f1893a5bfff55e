package config

import (
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"

	"github.com/ericogr/chimera-battle/internal/ai"
	"github.com/ericogr/chimera-battle/internal/game"
	"github.com/ericogr/chimera-battle/internal/keys"
	"github.com/ericogr/chimera-battle/internal/roster"
)

const defaultAddress = ":8080"

type rawConfig struct {
	Balance      json.RawMessage                             `json:"balance"`
	Synergies    json.RawMessage                             `json:"synergies"`
	Difficulties map[game.Difficulty]game.DifficultySettings `json:"difficulties"`
	Species      []game.Species                              `json:"species"`
	Tools        []game.Tool                                 `json:"tools"`
	Spells       []game.Spell                                `json:"spells"`
	AI           map[ai.Strategy]ai.Weights                  `json:"ai"`
	Server       *struct {
		Address string `json:"address"`
	} `json:"server"`
}

// LoadedConfig is the game catalog plus rules. Sections missing from the
// file keep their stock values.
type LoadedConfig struct {
	Balance       game.Balance
	Difficulties  roster.DifficultyTable
	Species       []game.Species
	Tools         []game.Tool
	Spells        []game.Spell
	Weights       ai.StrategyWeights
	ServerAddress string
}

// Default returns the stock configuration used when no file is given.
func Default() *LoadedConfig {
	return &LoadedConfig{
		Balance:       game.DefaultBalance(),
		Difficulties:  roster.DefaultDifficulties(),
		Species:       roster.DefaultSpecies(),
		Tools:         roster.DefaultTools(),
		Spells:        roster.DefaultSpells(),
		Weights:       ai.DefaultWeights(),
		ServerAddress: defaultAddress,
	}
}

// LoadConfig reads the configuration file at path.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to read config file %s", path)
	}
	cfg, err := Parse(b)
	if err != nil {
		return nil, eris.Wrapf(err, "config file %s", path)
	}
	return cfg, nil
}

// Parse decodes and validates a configuration document.
func Parse(b []byte) (*LoadedConfig, error) {
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, eris.Wrap(err, "failed to parse config")
	}
	out := Default()

	// Partial sections decode over the defaults so absent keys keep
	// their stock values.
	if len(rc.Balance) > 0 {
		if err := json.Unmarshal(rc.Balance, &out.Balance); err != nil {
			return nil, eris.Wrap(err, "balance")
		}
	}
	if len(rc.Synergies) > 0 {
		if err := json.Unmarshal(rc.Synergies, &out.Balance.Synergy); err != nil {
			return nil, eris.Wrap(err, "synergies")
		}
	}
	for d, s := range rc.Difficulties {
		if _, known := out.Difficulties[d]; !known {
			return nil, eris.Errorf("unknown difficulty '%s'", d)
		}
		out.Difficulties[d] = s
	}
	if len(rc.Species) > 0 {
		out.Species = rc.Species
	}
	if len(rc.Tools) > 0 {
		out.Tools = rc.Tools
	}
	if len(rc.Spells) > 0 {
		out.Spells = rc.Spells
	}
	for st, w := range rc.AI {
		if _, known := out.Weights[st]; !known {
			return nil, eris.Errorf("unknown ai strategy '%s'", st)
		}
		out.Weights[st] = w
	}
	if rc.Server != nil && rc.Server.Address != "" {
		out.ServerAddress = rc.Server.Address
	}

	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// Validate checks cross-entry rules: unique names and ids, known kinds and
// sane balance bounds.
func (c *LoadedConfig) Validate() error {
	b := c.Balance
	if b.MaxEnergy <= 0 {
		return eris.New("balance.max_energy must be positive")
	}
	if b.MaxFieldSize <= 0 {
		return eris.New("balance.max_field_size must be positive")
	}
	if b.PlayerHandLimit < b.PlayerInitialHand {
		return eris.New("balance.player_hand_limit is below player_initial_hand")
	}
	if b.CritChance < 0 || b.CritChance > 1 {
		return eris.New("balance.crit_chance must be within [0, 1]")
	}
	if b.DecayRate < 0 || b.DecayRate > 1 {
		return eris.New("balance.decay_rate must be within [0, 1]")
	}
	if b.ComboStep < 0 || b.ComboCap < 0 {
		return eris.New("balance combo values must not be negative")
	}

	if len(c.Species) == 0 {
		return eris.New("species list is empty")
	}
	names := make(map[string]struct{}, len(c.Species))
	for _, s := range c.Species {
		k := keys.SpeciesKey(s.Name)
		if k == "" {
			return eris.New("species entry missing 'name'")
		}
		if _, exists := names[k]; exists {
			return eris.Errorf("duplicate species name '%s'", s.Name)
		}
		names[k] = struct{}{}
		if !s.Rarity.Valid() {
			return eris.Errorf("species '%s' has unknown rarity '%s'", s.Name, s.Rarity)
		}
	}

	ids := make(map[string]struct{}, len(c.Tools)+len(c.Spells))
	claim := func(id string) error {
		id = strings.TrimSpace(id)
		if id == "" {
			return eris.New("item entry missing 'id'")
		}
		if _, exists := ids[id]; exists {
			return eris.Errorf("duplicate item id '%s'", id)
		}
		ids[id] = struct{}{}
		return nil
	}
	for _, t := range c.Tools {
		if err := claim(t.ID); err != nil {
			return err
		}
		switch t.Kind {
		case game.ToolHeal, game.ToolBoost, game.ToolCleanse, game.ToolCharge:
		case game.ToolEffect:
			if t.Effect == nil {
				return eris.Errorf("tool '%s' needs an effect template", t.ID)
			}
		default:
			return eris.Errorf("tool '%s' has unknown kind '%s'", t.ID, t.Kind)
		}
		if t.Kind == game.ToolBoost {
			var stats game.BattleStats
			if !stats.Set(t.Stat, 0) {
				return eris.Errorf("tool '%s' boosts unknown stat '%s'", t.ID, t.Stat)
			}
			// negative power is a curse and allowed; zero does nothing
			if t.Power == 0 {
				return eris.Errorf("tool '%s' has zero boost power", t.ID)
			}
		}
	}
	for _, s := range c.Spells {
		if err := claim(s.ID); err != nil {
			return err
		}
		switch s.Kind {
		case game.SpellDamage, game.SpellHeal, game.SpellDrain, game.SpellBuff, game.SpellDebuff, game.SpellCharge:
		default:
			return eris.Errorf("spell '%s' has unknown kind '%s'", s.ID, s.Kind)
		}
	}

	for _, d := range []game.Difficulty{game.DifficultyEasy, game.DifficultyNormal, game.DifficultyHard, game.DifficultyExpert} {
		s, ok := c.Difficulties[d]
		if !ok {
			return eris.Errorf("difficulty '%s' is not configured", d)
		}
		if s.EnemyDeckSize <= 0 || s.MaxActionsPerTurn <= 0 {
			return eris.Errorf("difficulty '%s' needs a positive enemy_deck_size and max_actions_per_turn", d)
		}
	}
	return nil
}
