package service

import (
	"context"
	"encoding/binary"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ericogr/chimera-battle/internal/battle"
	"github.com/ericogr/chimera-battle/internal/codec"
	"github.com/ericogr/chimera-battle/internal/constants"
	"github.com/ericogr/chimera-battle/internal/game"
	"github.com/ericogr/chimera-battle/internal/keys"
	"github.com/ericogr/chimera-battle/internal/logging"
	"github.com/ericogr/chimera-battle/internal/storage"
)

// minAIWindow is the shortest AI deadline written to storage; it leaves
// the in-process turn room to finish before the scanner steps in.
const minAIWindow = 30 * time.Second

// Battles runs player intents against persisted battles. One intent per
// battle is in flight at a time.
type Battles struct {
	repo  BattleRepo
	orch  *battle.Orchestrator
	hub   *Hub
	locks *keyedLocks
	// Now is the clock; tests replace it.
	Now func() time.Time
}

func NewBattles(repo BattleRepo, orch *battle.Orchestrator, hub *Hub) *Battles {
	if hub == nil {
		hub = NewHub()
	}
	return &Battles{repo: repo, orch: orch, hub: hub, locks: newKeyedLocks(), Now: time.Now}
}

// Hub exposes the update hub for stream handlers.
func (b *Battles) Hub() *Hub { return b.hub }

// Machine exposes the battle rules, mostly for read-only catalog routes.
func (b *Battles) Machine() *battle.Machine { return b.orch.Machine }

// CreateBattle stores a new battle in the setup phase. When seed is nil it
// is derived from the generated battle id.
func (b *Battles) CreateBattle(playerName string, seed *int64) (game.BattleState, error) {
	name := strings.TrimSpace(playerName)
	if name == "" {
		return game.BattleState{}, ErrPlayerNameRequired
	}
	if len(name) > maxPlayerNameLen {
		return game.BattleState{}, ErrPlayerNameTooLong
	}
	id := uuid.New()
	s := int64(binary.BigEndian.Uint64(id[:8]))
	if seed != nil {
		s = *seed
	}
	state := b.orch.Machine.NewBattle(id.String(), s)
	snap, err := codec.EncodeState(state)
	if err != nil {
		return game.BattleState{}, err
	}
	rec := &game.BattleRecord{BattleKey: id.String(), PlayerName: name}
	fill(rec, state, snap)
	if err := b.repo.CreateBattle(rec); err != nil {
		return game.BattleState{}, err
	}
	logging.Info("battle created", logging.Fields{
		constants.LogFieldBattleID: rec.BattleKey,
		constants.LogFieldPlayer:   name,
	})
	return state, nil
}

// GetBattle returns the current state of a battle.
func (b *Battles) GetBattle(key string) (game.BattleState, error) {
	_, state, err := b.load(key)
	return state, err
}

// StartBattle picks the difficulty and moves to team selection.
func (b *Battles) StartBattle(ctx context.Context, key string, d game.Difficulty) (battle.Result, error) {
	return b.SubmitIntent(ctx, key, battle.StartBattle(d))
}

// BackToSetup returns from team selection to setup.
func (b *Battles) BackToSetup(ctx context.Context, key string) (battle.Result, error) {
	return b.SubmitIntent(ctx, key, battle.BackToSetup())
}

// ConfirmTeam locks in the player's team and starts the fight.
func (b *Battles) ConfirmTeam(ctx context.Context, key string, team battle.TeamSelection) (battle.Result, error) {
	return b.SubmitIntent(ctx, key, battle.ConfirmTeam(team))
}

// SubmitIntent applies one player intent. A rejected intent is returned as
// a Result with Err set and nothing is stored. When the intent hands the
// turn to the enemy, the enemy turn runs before returning, bounded by the
// orchestrator budget and ctx.
func (b *Battles) SubmitIntent(ctx context.Context, key string, in battle.Intent) (battle.Result, error) {
	unlock := b.locks.lock(key)
	defer unlock()

	rec, state, err := b.load(key)
	if err != nil {
		return battle.Result{}, err
	}
	r := b.orch.Machine.Dispatch(state, game.SidePlayer, in)
	if r.Rejected() {
		logging.Debug("intent rejected", logging.Fields{
			constants.LogFieldBattleID: key,
			constants.LogFieldIntent:   string(in.Kind),
			"error":                    r.Err.Error(),
		})
		return r, nil
	}

	if r.State.Phase == game.PhaseBattle && r.State.ActivePlayer == game.SideEnemy {
		// Persist the handoff first so a crash mid-turn leaves a deadline
		// for the scanner to find.
		rec.AIDeadline = b.Now().Add(b.aiWindow()).UTC()
		if err := b.persist(rec, r.State); err != nil {
			return battle.Result{}, err
		}
		start := b.Now()
		er := b.orch.RunEnemyTurn(ctx, r.State)
		if er.Rejected() {
			// The deadline stays so the scanner forces the turn later.
			logging.Error("enemy turn did not run", er.Err, logging.Fields{constants.LogFieldBattleID: key})
		} else {
			r.Merge(er)
			rec.AIDeadline = time.Time{}
		}
		logging.Debug("enemy turn finished", logging.Fields{
			constants.LogFieldBattleID: key,
			constants.LogFieldDuration: b.Now().Sub(start).String(),
			"strategy":                 r.State.AIStrategy,
		})
	}

	if err := b.persist(rec, r.State); err != nil {
		return battle.Result{}, err
	}
	b.finish(rec)
	b.hub.Publish(updateOf(r))
	return r, nil
}

func (b *Battles) aiWindow() time.Duration {
	if w := 2 * b.orch.Budget; w > minAIWindow {
		return w
	}
	return minAIWindow
}

func (b *Battles) load(key string) (*game.BattleRecord, game.BattleState, error) {
	rec, err := b.repo.GetBattleByKey(key)
	if err != nil {
		if errors.Is(err, storage.ErrBattleNotFound) {
			return nil, game.BattleState{}, ErrBattleNotFound
		}
		return nil, game.BattleState{}, err
	}
	if rec == nil {
		return nil, game.BattleState{}, ErrBattleNotFound
	}
	state, err := codec.DecodeState(rec.Snapshot)
	if err != nil {
		logging.Error("failed to decode battle snapshot", err, logging.Fields{constants.LogFieldBattleID: key})
		return nil, game.BattleState{}, ErrCorruptSnapshot
	}
	return rec, state, nil
}

func (b *Battles) persist(rec *game.BattleRecord, state game.BattleState) error {
	snap, err := codec.EncodeState(state)
	if err != nil {
		return err
	}
	fill(rec, state, snap)
	return b.repo.UpdateBattle(rec)
}

// fill copies the denormalized columns from the state onto the record.
func fill(rec *game.BattleRecord, state game.BattleState, snap []byte) {
	rec.Snapshot = snap
	rec.Phase = state.Phase
	rec.ActivePlayer = state.ActivePlayer
	rec.Turn = state.Turn
	rec.Difficulty = state.Difficulty
	if rec.TeamKey == "" && state.Phase == game.PhaseBattle {
		rec.TeamKey = teamKey(state.Player)
	}
}

func teamKey(s game.SideState) string {
	var names []string
	for _, group := range [][]game.Creature{s.Deck, s.Hand, s.Field} {
		for _, c := range group {
			names = append(names, c.SpeciesName)
		}
	}
	return keys.TeamKey(names)
}

// finish records the result once the battle reaches a terminal phase.
// Stat failures are logged; the battle itself is already stored.
func (b *Battles) finish(rec *game.BattleRecord) {
	if !rec.Phase.Terminal() || rec.StatsCounted {
		return
	}
	if err := b.repo.UpdateStatsOnBattleEnd(rec); err != nil {
		logging.Error("failed to update player stats", err, logging.Fields{
			constants.LogFieldBattleID: rec.BattleKey,
			constants.LogFieldPlayer:   rec.PlayerName,
		})
		return
	}
	logging.Info("battle finished", logging.Fields{
		constants.LogFieldBattleID: rec.BattleKey,
		constants.LogFieldPlayer:   rec.PlayerName,
		constants.LogFieldPhase:    string(rec.Phase),
		constants.LogFieldTurn:     rec.Turn,
	})
}
