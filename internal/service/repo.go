package service

import (
	"errors"
	"time"

	"github.com/ericogr/chimera-battle/internal/game"
)

// BattleRepo is the minimal repository interface the battle service needs.
// Using a small interface simplifies testing.
type BattleRepo interface {
	CreateBattle(b *game.BattleRecord) error
	GetBattleByKey(key string) (*game.BattleRecord, error)
	UpdateBattle(b *game.BattleRecord) error
	UpdateStatsOnBattleEnd(b *game.BattleRecord) error
}

// TimedOutFinder lists battles whose enemy turn outlived its deadline.
type TimedOutFinder interface {
	FindTimedOutBattles(now time.Time) ([]game.BattleRecord, error)
}

var (
	ErrBattleNotFound     = errors.New("battle not found")
	ErrPlayerNameRequired = errors.New("player name is required")
	ErrPlayerNameTooLong  = errors.New("player name exceeds 32 characters")
	ErrCorruptSnapshot    = errors.New("battle snapshot is unreadable")
)

const maxPlayerNameLen = 32
