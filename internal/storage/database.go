package storage

import (
	"github.com/rotisserie/eris"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ericogr/chimera-battle/internal/game"
)

func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, eris.Wrapf(err, "open database %q", dataSourceName)
	}

	// Schema is kept current via AutoMigrate; removing the DB file is the
	// reset path.
	if err := db.AutoMigrate(&game.BattleRecord{}, &game.PlayerProfile{}); err != nil {
		return nil, eris.Wrap(err, "migrate schema")
	}

	// The timeout scanner filters on these three columns on every tick.
	if execErr := db.Exec("CREATE INDEX IF NOT EXISTS idx_battles_stalled ON battles(phase, active_player, ai_deadline);").Error; execErr != nil {
		return nil, eris.Wrap(execErr, "create stalled battle index")
	}
	return db, nil
}
