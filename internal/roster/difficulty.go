package roster

import (
	"errors"

	"github.com/ericogr/chimera-battle/internal/game"
)

var ErrUnknownDifficulty = errors.New("unknown difficulty")

// DifficultyTable serves per-difficulty settings.
type DifficultyTable map[game.Difficulty]game.DifficultySettings

// DefaultDifficulties is the stock table used when the config file has no
// difficulties section.
func DefaultDifficulties() DifficultyTable {
	return DifficultyTable{
		game.DifficultyEasy: {
			InitialHandSize: 2, EnemyDeckSize: 4, StartingEnergy: 8, PlayerStartingEnergy: 12,
			EnemyEnergyRegen: 2, DefendBonusPercent: 0, ItemPowerPercent: 90,
			MaxActionsPerTurn: 2, Aggression: 0.8, EnemyFormBonus: -1, ItemCount: 1,
		},
		game.DifficultyNormal: {
			InitialHandSize: 3, EnemyDeckSize: 5, StartingEnergy: 10, PlayerStartingEnergy: 10,
			EnemyEnergyRegen: 3, DefendBonusPercent: 10, ItemPowerPercent: 100,
			MaxActionsPerTurn: 3, Aggression: 1.0, EnemyFormBonus: 0, ItemCount: 2,
		},
		game.DifficultyHard: {
			InitialHandSize: 3, EnemyDeckSize: 6, StartingEnergy: 12, PlayerStartingEnergy: 10,
			EnemyEnergyRegen: 4, DefendBonusPercent: 20, ItemPowerPercent: 110,
			MaxActionsPerTurn: 4, Aggression: 1.2, EnemyFormBonus: 1, ItemCount: 3,
		},
		game.DifficultyExpert: {
			InitialHandSize: 4, EnemyDeckSize: 7, StartingEnergy: 15, PlayerStartingEnergy: 10,
			EnemyEnergyRegen: 5, DefendBonusPercent: 30, ItemPowerPercent: 125,
			MaxActionsPerTurn: 5, Aggression: 1.4, EnemyFormBonus: 2, ItemCount: 4,
		},
	}
}

// Settings returns the settings for a difficulty.
func (t DifficultyTable) Settings(d game.Difficulty) (game.DifficultySettings, error) {
	s, ok := t[d]
	if !ok {
		return game.DifficultySettings{}, ErrUnknownDifficulty
	}
	return s, nil
}
