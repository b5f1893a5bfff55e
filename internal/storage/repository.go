package storage

import (
	"errors"
	"time"

	"github.com/ericogr/chimera-battle/internal/game"
)

// ErrBattleNotFound is returned when no battle matches the requested key.
var ErrBattleNotFound = errors.New("battle not found")

type Repository interface {
	CreateBattle(b *game.BattleRecord) error
	// GetBattleByKey returns ErrBattleNotFound for unknown keys.
	GetBattleByKey(key string) (*game.BattleRecord, error)
	UpdateBattle(b *game.BattleRecord) error
	// FindTimedOutBattles returns battles in the battle phase whose enemy
	// turn started but whose AI deadline is at or before now.
	FindTimedOutBattles(now time.Time) ([]game.BattleRecord, error)
	// UpdateStatsOnBattleEnd counts a finished battle once for its player.
	UpdateStatsOnBattleEnd(b *game.BattleRecord) error
	GetStatsByPlayer(name string) (*game.PlayerProfile, error)
	// Leaderboard
	GetTopPlayers(limit int) ([]game.PlayerProfile, error)
}
