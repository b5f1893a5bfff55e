package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ericogr/chimera-battle/internal/ai"
	"github.com/ericogr/chimera-battle/internal/battle"
	"github.com/ericogr/chimera-battle/internal/codec"
	"github.com/ericogr/chimera-battle/internal/game"
	"github.com/ericogr/chimera-battle/internal/roster"
	"github.com/ericogr/chimera-battle/internal/storage"
)

type mockRepo struct {
	mu       sync.Mutex
	battles  map[string]game.BattleRecord
	updates  int
	statsFor []string
}

func newMockRepo() *mockRepo {
	return &mockRepo{battles: map[string]game.BattleRecord{}}
}

func (m *mockRepo) CreateBattle(b *game.BattleRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.battles[b.BattleKey] = *b
	return nil
}

func (m *mockRepo) GetBattleByKey(key string) (*game.BattleRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.battles[key]
	if !ok {
		return nil, storage.ErrBattleNotFound
	}
	return &b, nil
}

func (m *mockRepo) UpdateBattle(b *game.BattleRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates++
	m.battles[b.BattleKey] = *b
	return nil
}

func (m *mockRepo) UpdateStatsOnBattleEnd(b *game.BattleRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statsFor = append(m.statsFor, b.BattleKey)
	b.StatsCounted = true
	m.battles[b.BattleKey] = *b
	return nil
}

func (m *mockRepo) FindTimedOutBattles(now time.Time) ([]game.BattleRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []game.BattleRecord
	for _, b := range m.battles {
		if !b.AIDeadline.IsZero() && !b.AIDeadline.After(now) {
			out = append(out, b)
		}
	}
	return out, nil
}

// put stores a hand-built state as if it had been persisted by the service.
func (m *mockRepo) put(t *testing.T, s game.BattleState, deadline time.Time) {
	t.Helper()
	snap, err := codec.EncodeState(s)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	rec := &game.BattleRecord{BattleKey: s.BattleID, PlayerName: "ana", AIDeadline: deadline}
	fill(rec, s, snap)
	m.battles[s.BattleID] = *rec
}

func newTestBattles(repo BattleRepo) *Battles {
	bal := game.DefaultBalance()
	m := battle.NewMachine(bal, battle.Providers{
		Stats:      roster.NewDeriver(bal),
		Difficulty: roster.DefaultDifficulties(),
		Roster: roster.Generator{
			Species: roster.DefaultSpecies(),
			Tools:   roster.DefaultTools(),
			Spells:  roster.DefaultSpells(),
			Deriver: roster.NewDeriver(bal),
			Table:   roster.DefaultDifficulties(),
		},
		Timed: roster.TimedEffects{},
	})
	return NewBattles(repo, battle.NewOrchestrator(m, ai.NewPlanner(nil), 0), NewHub())
}

func mk(id string, phys, pdef, hp int) game.Creature {
	s := game.BattleStats{PhysicalAttack: phys, PhysicalDefense: pdef, MaxHealth: hp, EnergyCost: 5}
	return game.Creature{ID: id, SpeciesName: id, Stats: s, BattleStats: s, CurrentHealth: hp}
}

func fighting(active game.Side, player, enemy game.SideState) game.BattleState {
	player.HandLimit, enemy.HandLimit = 5, 4
	return game.BattleState{
		BattleID: "b1", Seed: 1, Turn: 1, ActivePlayer: active, Phase: game.PhaseBattle,
		Difficulty: game.DifficultyNormal, Player: player, Enemy: enemy, BattleLog: []game.LogEntry{},
	}
}

func team() battle.TeamSelection {
	var raw []game.RawCreature
	for i, sp := range roster.DefaultSpecies()[:3] {
		raw = append(raw, game.RawCreature{
			SpeciesName: sp.Name, Form: i % 2, Rarity: sp.Rarity,
			Strength: sp.Strength, Magic: sp.Magic, Agility: sp.Agility, Stamina: sp.Stamina, Energy: sp.Energy,
		})
	}
	return battle.TeamSelection{Creatures: raw, Tools: roster.DefaultTools()[:2], Spells: roster.DefaultSpells()[:2]}
}

func TestCreateBattle_ValidatesName(t *testing.T) {
	svc := newTestBattles(newMockRepo())
	if _, err := svc.CreateBattle("   ", nil); err != ErrPlayerNameRequired {
		t.Fatalf("expected ErrPlayerNameRequired, got %v", err)
	}
	if _, err := svc.CreateBattle(strings.Repeat("x", 33), nil); err != ErrPlayerNameTooLong {
		t.Fatalf("expected ErrPlayerNameTooLong, got %v", err)
	}
	seed := int64(99)
	s, err := svc.CreateBattle(" ana ", &seed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Seed != 99 || s.Phase != game.PhaseSetup {
		t.Fatalf("unexpected new battle: seed %d phase %s", s.Seed, s.Phase)
	}
	if _, err := svc.GetBattle(s.BattleID); err != nil {
		t.Fatalf("battle not stored: %v", err)
	}
	if _, err := svc.GetBattle("nope"); err != ErrBattleNotFound {
		t.Fatalf("expected ErrBattleNotFound, got %v", err)
	}
}

func TestSubmitIntent_FullFlowRunsEnemyTurn(t *testing.T) {
	repo := newMockRepo()
	svc := newTestBattles(repo)
	ctx := context.Background()
	seed := int64(5)
	s, err := svc.CreateBattle("ana", &seed)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	updates, cancel := svc.Hub().Subscribe(s.BattleID)
	defer cancel()

	if r, err := svc.StartBattle(ctx, s.BattleID, game.DifficultyNormal); err != nil || r.Rejected() {
		t.Fatalf("start: %v %v", err, r.Err)
	}
	r, err := svc.ConfirmTeam(ctx, s.BattleID, team())
	if err != nil || r.Rejected() {
		t.Fatalf("confirm: %v %v", err, r.Err)
	}
	if repo.battles[s.BattleID].TeamKey == "" {
		t.Fatalf("expected the team key to be stored once the fight starts")
	}

	r, err = svc.SubmitIntent(ctx, s.BattleID, battle.EndTurn())
	if err != nil || r.Rejected() {
		t.Fatalf("end turn: %v %v", err, r.Err)
	}
	if r.State.Phase == game.PhaseBattle {
		if r.State.ActivePlayer != game.SidePlayer || r.State.Turn != 2 {
			t.Fatalf("expected the enemy to hand back on turn 2, got %s on turn %d", r.State.ActivePlayer, r.State.Turn)
		}
	}
	stored := repo.battles[s.BattleID]
	if !stored.AIDeadline.IsZero() {
		t.Fatalf("deadline should be cleared after the enemy turn")
	}
	if stored.Turn != r.State.Turn || stored.ActivePlayer != r.State.ActivePlayer {
		t.Fatalf("record columns out of sync with the snapshot")
	}

	got := 0
	for len(updates) > 0 {
		<-updates
		got++
	}
	if got != 3 {
		t.Fatalf("expected 3 published updates, got %d", got)
	}
}

func TestSubmitIntent_RejectedIsNotStored(t *testing.T) {
	repo := newMockRepo()
	svc := newTestBattles(repo)
	s, _ := svc.CreateBattle("ana", nil)
	before := repo.updates

	r, err := svc.SubmitIntent(context.Background(), s.BattleID, battle.Deploy("ghost"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Err != battle.ErrWrongPhase {
		t.Fatalf("expected ErrWrongPhase, got %v", r.Err)
	}
	if repo.updates != before {
		t.Fatalf("rejected intent must not be persisted")
	}
	if len(r.Log) != 1 {
		t.Fatalf("expected a single rejection line, got %d", len(r.Log))
	}
}

func TestSubmitIntent_VictoryCountsStatsOnce(t *testing.T) {
	repo := newMockRepo()
	svc := newTestBattles(repo)
	repo.put(t, fighting(game.SidePlayer,
		game.SideState{Energy: 5, Field: []game.Creature{mk("p1", 10, 2, 30)}},
		game.SideState{Field: []game.Creature{mk("e1", 1, 0, 3)}},
	), time.Time{})

	r, err := svc.SubmitIntent(context.Background(), "b1", battle.Attack("p1", "e1"))
	if err != nil || r.Rejected() {
		t.Fatalf("attack: %v %v", err, r.Err)
	}
	if r.State.Phase != game.PhaseVictory {
		t.Fatalf("expected victory, got %s", r.State.Phase)
	}
	if len(repo.statsFor) != 1 || !repo.battles["b1"].StatsCounted {
		t.Fatalf("expected stats counted once, got %v", repo.statsFor)
	}

	r, _ = svc.SubmitIntent(context.Background(), "b1", battle.EndTurn())
	if r.Err != battle.ErrBattleOver {
		t.Fatalf("expected ErrBattleOver, got %v", r.Err)
	}
	if len(repo.statsFor) != 1 {
		t.Fatalf("stats counted twice")
	}
}
