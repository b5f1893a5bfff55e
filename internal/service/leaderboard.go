package service

import (
	"strconv"

	"github.com/ericogr/chimera-battle/internal/dedupe"
	"github.com/ericogr/chimera-battle/internal/game"
)

type LeaderboardRepo interface {
	GetTopPlayers(limit int) ([]game.PlayerProfile, error)
}

// TopPlayers returns the leaderboard. Concurrent calls with the same limit
// share one query.
func TopPlayers(repo LeaderboardRepo, limit int) ([]game.PlayerProfile, error) {
	v, err, _ := dedupe.Leaderboard.Do(strconv.Itoa(limit), func() (interface{}, error) {
		return repo.GetTopPlayers(limit)
	})
	if err != nil {
		return nil, err
	}
	shared := v.([]game.PlayerProfile)
	out := make([]game.PlayerProfile, len(shared))
	copy(out, shared)
	return out, nil
}
