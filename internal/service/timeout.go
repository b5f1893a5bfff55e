package service

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ericogr/chimera-battle/internal/constants"
	"github.com/ericogr/chimera-battle/internal/game"
	"github.com/ericogr/chimera-battle/internal/logging"
)

// HandleTimedOutBattle force-ends an enemy turn whose deadline passed.
// Behavior:
// - battle no longer waiting on the enemy -> clear a stale deadline
// - deadline still in the future -> nothing
// - otherwise -> end the enemy turn and hand back to the player
func (b *Battles) HandleTimedOutBattle(key string) error {
	unlock := b.locks.lock(key)
	defer unlock()

	rec, state, err := b.load(key)
	if err != nil {
		return err
	}
	if rec.AIDeadline.IsZero() {
		return nil
	}
	if state.Phase != game.PhaseBattle || state.ActivePlayer != game.SideEnemy {
		rec.AIDeadline = time.Time{}
		return b.persist(rec, state)
	}
	if rec.AIDeadline.After(b.Now()) {
		return nil
	}

	r := b.orch.ForceEndTurn(state)
	if r.Rejected() {
		return nil
	}
	rec.AIDeadline = time.Time{}
	if err := b.persist(rec, r.State); err != nil {
		return err
	}
	logging.Warn("forced a stalled enemy turn", logging.Fields{
		constants.LogFieldBattleID: key,
		constants.LogFieldTurn:     state.Turn,
	})
	b.finish(rec)
	b.hub.Publish(updateOf(r))
	return nil
}

// HandleTimedOutBattles resolves every stalled battle the finder reports,
// at most limit at a time. A failing battle is logged and skipped; the
// returned count covers the battles handled without error.
func (b *Battles) HandleTimedOutBattles(ctx context.Context, finder TimedOutFinder, limit int) (int, error) {
	recs, err := finder.FindTimedOutBattles(b.Now())
	if err != nil {
		return 0, err
	}
	if limit <= 0 {
		limit = 4
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	var handled atomic.Int64
	for _, rec := range recs {
		key := rec.BattleKey
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := b.HandleTimedOutBattle(key); err != nil {
				logging.Error("failed to resolve timed out battle", err, logging.Fields{constants.LogFieldBattleID: key})
				return nil
			}
			handled.Add(1)
			return nil
		})
	}
	err = g.Wait()
	return int(handled.Load()), err
}
