package api

import (
	"github.com/ericogr/chimera-battle/internal/game"
	"github.com/ericogr/chimera-battle/internal/service"
)

// Catalog is the static game data clients need to build a team.
type Catalog struct {
	Species      []game.Species                              `json:"species"`
	Tools        []game.Tool                                 `json:"tools"`
	Spells       []game.Spell                                `json:"spells"`
	Difficulties map[game.Difficulty]game.DifficultySettings `json:"difficulties"`
	Balance      game.Balance                                `json:"balance"`
}

// BattleHandler groups all battle-related HTTP handlers.
type BattleHandler struct {
	battles     *service.Battles
	leaderboard service.LeaderboardRepo
	catalog     Catalog
}

// NewBattleHandler creates a BattleHandler over the battle service, the
// leaderboard source and the configured catalog.
func NewBattleHandler(battles *service.Battles, leaderboard service.LeaderboardRepo, catalog Catalog) *BattleHandler {
	return &BattleHandler{battles: battles, leaderboard: leaderboard, catalog: catalog}
}
