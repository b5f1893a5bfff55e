package storage

import (
	"errors"
	"time"

	"github.com/rotisserie/eris"
	"gorm.io/gorm"

	"github.com/ericogr/chimera-battle/internal/game"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateBattle(b *game.BattleRecord) error {
	return eris.Wrapf(r.db.Create(b).Error, "create battle %s", b.BattleKey)
}

func (r *sqliteRepository) GetBattleByKey(key string) (*game.BattleRecord, error) {
	var b game.BattleRecord
	if err := r.db.Where("battle_key = ?", key).First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBattleNotFound
		}
		return nil, eris.Wrapf(err, "load battle %s", key)
	}
	return &b, nil
}

func (r *sqliteRepository) UpdateBattle(b *game.BattleRecord) error {
	return eris.Wrapf(r.db.Save(b).Error, "save battle %s", b.BattleKey)
}

func (r *sqliteRepository) FindTimedOutBattles(now time.Time) ([]game.BattleRecord, error) {
	var out []game.BattleRecord
	// Deadlines are written in UTC; sqlite compares them as text.
	err := r.db.
		Where("phase = ? AND active_player = ?", game.PhaseBattle, game.SideEnemy).
		Where("ai_deadline > ? AND ai_deadline <= ?", time.Time{}, now.UTC()).
		Order("ai_deadline ASC").
		Find(&out).Error
	if err != nil {
		return nil, eris.Wrap(err, "find timed out battles")
	}
	return out, nil
}

func (r *sqliteRepository) UpdateStatsOnBattleEnd(b *game.BattleRecord) error {
	if b.StatsCounted || !b.Phase.Terminal() || b.PlayerName == "" {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		var ps game.PlayerProfile
		if err := tx.Where("player_name = ?", b.PlayerName).First(&ps).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ps = game.PlayerProfile{PlayerName: b.PlayerName}
			} else {
				return eris.Wrapf(err, "load profile %s", b.PlayerName)
			}
		}
		ps.GamesPlayed++
		if b.Phase == game.PhaseVictory {
			ps.Wins++
		} else {
			ps.Losses++
		}
		if err := tx.Save(&ps).Error; err != nil {
			return eris.Wrapf(err, "save profile %s", b.PlayerName)
		}
		b.StatsCounted = true
		return eris.Wrap(tx.Model(&game.BattleRecord{}).Where("id = ?", b.ID).Update("stats_counted", true).Error, "mark battle counted")
	})
}

func (r *sqliteRepository) GetStatsByPlayer(name string) (*game.PlayerProfile, error) {
	var ps game.PlayerProfile
	if err := r.db.Where("player_name = ?", name).First(&ps).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &game.PlayerProfile{PlayerName: name}, nil
		}
		return nil, eris.Wrapf(err, "load profile %s", name)
	}
	return &ps, nil
}

// GetTopPlayers returns top N players ordered by Wins desc, then GamesPlayed desc
func (r *sqliteRepository) GetTopPlayers(limit int) ([]game.PlayerProfile, error) {
	if limit <= 0 {
		limit = 10
	}
	var players []game.PlayerProfile
	if err := r.db.Model(&game.PlayerProfile{}).
		Order("wins DESC").
		Order("games_played DESC").
		Limit(limit).
		Find(&players).Error; err != nil {
		return nil, eris.Wrap(err, "top players")
	}
	return players, nil
}
