package storage

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/ericogr/chimera-battle/internal/codec"
	"github.com/ericogr/chimera-battle/internal/constants"
	"github.com/ericogr/chimera-battle/internal/dedupe"
	"github.com/ericogr/chimera-battle/internal/game"
	"github.com/ericogr/chimera-battle/internal/logging"
)

const cacheOpTimeout = 2 * time.Second

// snapshotEntry is the cached form of a BattleRecord. BattleRecord hides
// the snapshot and deadline from JSON, so the cache keeps its own shape.
type snapshotEntry struct {
	ID           uint            `json:"id"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
	BattleKey    string          `json:"battleKey"`
	PlayerName   string          `json:"playerName"`
	TeamKey      string          `json:"teamKey"`
	Difficulty   game.Difficulty `json:"difficulty"`
	Phase        game.Phase      `json:"phase"`
	ActivePlayer game.Side       `json:"activePlayer"`
	Turn         int             `json:"turn"`
	Snapshot     []byte          `json:"snapshot"`
	AIDeadline   time.Time       `json:"aiDeadline"`
	StatsCounted bool            `json:"statsCounted"`
}

func entryOf(b *game.BattleRecord) snapshotEntry {
	return snapshotEntry{
		ID: b.ID, CreatedAt: b.CreatedAt, UpdatedAt: b.UpdatedAt,
		BattleKey: b.BattleKey, PlayerName: b.PlayerName, TeamKey: b.TeamKey,
		Difficulty: b.Difficulty, Phase: b.Phase, ActivePlayer: b.ActivePlayer, Turn: b.Turn,
		Snapshot: b.Snapshot, AIDeadline: b.AIDeadline, StatsCounted: b.StatsCounted,
	}
}

func (e snapshotEntry) record() *game.BattleRecord {
	b := &game.BattleRecord{
		BattleKey: e.BattleKey, PlayerName: e.PlayerName, TeamKey: e.TeamKey,
		Difficulty: e.Difficulty, Phase: e.Phase, ActivePlayer: e.ActivePlayer, Turn: e.Turn,
		Snapshot: e.Snapshot, AIDeadline: e.AIDeadline, StatsCounted: e.StatsCounted,
	}
	b.ID = e.ID
	b.CreatedAt = e.CreatedAt
	b.UpdatedAt = e.UpdatedAt
	return b
}

// cachedRepository puts a redis snapshot cache in front of another
// Repository. Writes go to the database first and then to redis; a redis
// failure only costs a cache miss.
type cachedRepository struct {
	Repository
	rdb *redis.Client
	ttl time.Duration
	log zerolog.Logger
}

// NewCachedRepository wraps repo with a write-through redis cache. Entries
// expire after ttl; zero keeps them until overwritten.
func NewCachedRepository(repo Repository, rdb *redis.Client, ttl time.Duration) Repository {
	return &cachedRepository{
		Repository: repo,
		rdb:        rdb,
		ttl:        ttl,
		log:        logging.Logger().With().Str(constants.LogFieldSource, "snapshot-cache").Logger(),
	}
}

func snapshotKey(battleKey string) string {
	return constants.SnapshotKeyPrefix + battleKey
}

func (r *cachedRepository) CreateBattle(b *game.BattleRecord) error {
	if err := r.Repository.CreateBattle(b); err != nil {
		return err
	}
	r.store(b)
	return nil
}

func (r *cachedRepository) UpdateBattle(b *game.BattleRecord) error {
	if err := r.Repository.UpdateBattle(b); err != nil {
		r.evict(b.BattleKey)
		return err
	}
	r.store(b)
	return nil
}

func (r *cachedRepository) UpdateStatsOnBattleEnd(b *game.BattleRecord) error {
	if err := r.Repository.UpdateStatsOnBattleEnd(b); err != nil {
		return err
	}
	r.store(b)
	return nil
}

func (r *cachedRepository) GetBattleByKey(key string) (*game.BattleRecord, error) {
	if b, ok := r.lookup(key); ok {
		return b, nil
	}
	v, err, _ := dedupe.BattleLoads.Do(key, func() (interface{}, error) {
		b, err := r.Repository.GetBattleByKey(key)
		if err != nil {
			return nil, err
		}
		r.store(b)
		return entryOf(b), nil
	})
	if err != nil {
		return nil, err
	}
	// Every caller gets its own record; the shared entry is never handed out.
	return v.(snapshotEntry).record(), nil
}

func (r *cachedRepository) lookup(key string) (*game.BattleRecord, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), cacheOpTimeout)
	defer cancel()
	raw, err := r.rdb.Get(ctx, snapshotKey(key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.Warn().Err(err).Str(constants.LogFieldKey, key).Msg("snapshot cache read failed")
		}
		return nil, false
	}
	var e snapshotEntry
	if err := codec.Unmarshal(raw, &e); err != nil {
		r.log.Warn().Err(err).Str(constants.LogFieldKey, key).Msg("dropping unreadable snapshot")
		r.evict(key)
		return nil, false
	}
	return e.record(), true
}

func (r *cachedRepository) store(b *game.BattleRecord) {
	raw, err := codec.Marshal(entryOf(b))
	if err != nil {
		logging.Error("failed to encode snapshot", err, logging.Fields{constants.LogFieldKey: b.BattleKey})
		r.evict(b.BattleKey)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), cacheOpTimeout)
	defer cancel()
	if err := r.rdb.Set(ctx, snapshotKey(b.BattleKey), raw, r.ttl).Err(); err != nil {
		r.log.Warn().Err(eris.Wrap(err, "redis set")).Str(constants.LogFieldKey, b.BattleKey).Msg("snapshot cache write failed")
		r.evict(b.BattleKey)
	}
}

func (r *cachedRepository) evict(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), cacheOpTimeout)
	defer cancel()
	if err := r.rdb.Del(ctx, snapshotKey(key)).Err(); err != nil {
		r.log.Debug().Err(err).Str(constants.LogFieldKey, key).Msg("snapshot cache evict failed")
	}
}
