package game

import (
	"time"

	"gorm.io/gorm"
)

// BattleRecord is the persisted row for one battle. The full BattleState
// lives in Snapshot; the other columns are denormalized for queries.
type BattleRecord struct {
	gorm.Model
	BattleKey    string     `json:"battle_key" gorm:"uniqueIndex;size:36"`
	PlayerName   string     `json:"player_name" gorm:"index"`
	TeamKey      string     `json:"team_key"`
	Difficulty   Difficulty `json:"difficulty"`
	Phase        Phase      `json:"phase"`
	ActivePlayer Side       `json:"active_player"`
	Turn         int        `json:"turn"`
	Snapshot     []byte     `json:"-" gorm:"type:blob"`
	// AIDeadline is set while the enemy turn runs; a stale deadline means
	// the turn never completed and the scanner must force it.
	AIDeadline   time.Time `json:"-" gorm:"index"`
	StatsCounted bool      `json:"-"`
}

// Store battles in a descriptive table name.
func (BattleRecord) TableName() string { return "battles" }

// PlayerProfile aggregates results per player name.
type PlayerProfile struct {
	gorm.Model
	PlayerName  string `json:"player_name" gorm:"uniqueIndex"`
	GamesPlayed int    `json:"games_played"`
	Wins        int    `json:"wins"`
	Losses      int    `json:"losses"`
}

func (PlayerProfile) TableName() string { return "player_profiles" }
