package battle

import (
	"context"
	"reflect"
	"testing"

	"pgregory.net/rapid"

	"github.com/ericogr/chimera-battle/internal/ai"
	"github.com/ericogr/chimera-battle/internal/engine"
	"github.com/ericogr/chimera-battle/internal/game"
	"github.com/ericogr/chimera-battle/internal/roster"
)

func pickID(t *rapid.T, list []game.Creature, label string) string {
	if len(list) == 0 || rapid.IntRange(0, 9).Draw(t, label+"-bogus") == 0 {
		return "ghost"
	}
	return list[rapid.IntRange(0, len(list)-1).Draw(t, label)].ID
}

func drawIntent(t *rapid.T, s game.BattleState, side game.Side) Intent {
	own, opp := s.SideOf(side), s.SideOf(side.Opponent())
	both := append(game.CloneCreatures(own.Field), opp.Field...)
	switch rapid.IntRange(0, 5).Draw(t, "kind") {
	case 0:
		return Deploy(pickID(t, own.Hand, "hand"))
	case 1:
		return Attack(pickID(t, own.Field, "attacker"), pickID(t, opp.Field, "defender"))
	case 2:
		return Defend(pickID(t, own.Field, "defender"))
	case 3:
		tool := "ghost"
		if len(own.Tools) > 0 {
			tool = own.Tools[rapid.IntRange(0, len(own.Tools)-1).Draw(t, "tool")].ID
		}
		return UseTool(tool, pickID(t, both, "tool-target"))
	case 4:
		spell := "ghost"
		if len(own.Spells) > 0 {
			spell = own.Spells[rapid.IntRange(0, len(own.Spells)-1).Draw(t, "spell")].ID
		}
		return UseSpell(spell, pickID(t, own.Field, "caster"), pickID(t, both, "spell-target"))
	}
	return EndTurn()
}

func checkInvariants(t *rapid.T, m *Machine, s game.BattleState) {
	bal := m.Balance()
	for _, side := range []game.Side{game.SidePlayer, game.SideEnemy} {
		st := s.SideOf(side)
		if st.Energy < 0 || st.Energy > bal.MaxEnergy {
			t.Fatalf("%s energy %d out of bounds", side, st.Energy)
		}
		seen := map[string]bool{}
		for _, group := range [][]game.Creature{st.Deck, st.Hand, st.Field} {
			for _, c := range group {
				if c.CurrentHealth <= 0 || c.CurrentHealth > c.MaxHealth() {
					t.Fatalf("%s creature %s has health %d/%d", side, c.ID, c.CurrentHealth, c.MaxHealth())
				}
				if seen[c.ID] {
					t.Fatalf("%s creature %s appears twice", side, c.ID)
				}
				seen[c.ID] = true
			}
		}
		if len(st.Field) > bal.MaxFieldSize {
			t.Fatalf("%s field has %d creatures", side, len(st.Field))
		}
		want := engine.ComputeSynergies(st.Field, bal)
		if len(want) != len(st.ActiveSynergies) {
			t.Fatalf("%s synergies are stale: want %v, have %v", side, want, st.ActiveSynergies)
		}
		for i := range want {
			if want[i].Type != st.ActiveSynergies[i].Type || want[i].Name != st.ActiveSynergies[i].Name {
				t.Fatalf("%s synergies are stale: want %v, have %v", side, want, st.ActiveSynergies)
			}
		}
	}
	switch s.Phase {
	case game.PhaseVictory:
		if !s.Enemy.Depleted() {
			t.Fatalf("victory with enemy resources left")
		}
	case game.PhaseDefeat:
		if !s.Player.Depleted() {
			t.Fatalf("defeat with player resources left")
		}
	}
	for i, e := range s.BattleLog {
		if e.Seq != i+1 {
			t.Fatalf("battle log sequence broken at %d", i)
		}
	}
}

func TestMachine_Properties(t *testing.T) {
	m := testMachine()
	orch := NewOrchestrator(m, ai.NewPlanner(nil), 0)
	difficulties := []game.Difficulty{game.DifficultyEasy, game.DifficultyNormal, game.DifficultyHard, game.DifficultyExpert}

	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Int64().Draw(t, "seed")
		d := rapid.SampledFrom(difficulties).Draw(t, "difficulty")
		s := m.NewBattle("prop", seed)
		s = m.Dispatch(s, game.SidePlayer, StartBattle(d)).State
		r := m.Dispatch(s, game.SidePlayer, ConfirmTeam(TeamSelection{
			Creatures: rawTeam(rapid.IntRange(1, 6).Draw(t, "team")),
			Tools:     roster.DefaultTools(),
			Spells:    roster.DefaultSpells(),
		}))
		if r.Err != nil {
			t.Fatalf("confirm team: %v", r.Err)
		}
		s = r.State
		checkInvariants(t, m, s)

		steps := rapid.IntRange(1, 60).Draw(t, "steps")
		for i := 0; i < steps && !s.Phase.Terminal(); i++ {
			if s.ActivePlayer == game.SideEnemy {
				r = orch.RunEnemyTurn(context.Background(), s)
				s = r.State
				checkInvariants(t, m, s)
				continue
			}
			in := drawIntent(t, s, game.SidePlayer)
			r = m.Dispatch(s, game.SidePlayer, in)
			if r.Rejected() {
				if len(r.Log) != 1 {
					t.Fatalf("rejection produced %d log lines", len(r.Log))
				}
				if !reflect.DeepEqual(r.State, s) {
					t.Fatalf("rejected %s mutated the state", in.Kind)
				}
				again := m.Dispatch(r.State, game.SidePlayer, in)
				if !again.Rejected() || !reflect.DeepEqual(again.State, s) {
					t.Fatalf("repeating rejected %s changed the outcome", in.Kind)
				}
			}
			s = r.State
			checkInvariants(t, m, s)
		}
	})
}

func TestOrchestrator_RunEnemyTurnHandsBack(t *testing.T) {
	m := testMachine()
	s := inBattle(
		game.SideState{Energy: 5, Field: []game.Creature{mk("p1", 0, 4, 2, 40)}},
		game.SideState{Energy: 10, Hand: []game.Creature{mk("e2", 0, 6, 2, 30)}, Field: []game.Creature{mk("e1", 0, 8, 2, 30)}},
	)
	s.ActivePlayer = game.SideEnemy
	orch := NewOrchestrator(m, ai.NewPlanner(nil), 0)
	r := orch.RunEnemyTurn(context.Background(), s)
	if r.Err != nil {
		t.Fatalf("unexpected error: %v", r.Err)
	}
	if r.State.ActivePlayer != game.SidePlayer {
		t.Fatalf("expected the player to act next, got %s", r.State.ActivePlayer)
	}
	if r.State.Turn != 2 {
		t.Fatalf("expected turn 2, got %d", r.State.Turn)
	}
	if r.State.AIStrategy == "" {
		t.Fatalf("expected the chosen strategy to be recorded")
	}
	if len(r.Events) < 2 {
		t.Fatalf("expected the enemy to act before ending its turn, got %v", r.Events)
	}
}

func TestOrchestrator_ExpiredBudgetForcesEndTurn(t *testing.T) {
	m := testMachine()
	s := inBattle(
		game.SideState{Energy: 5, Field: []game.Creature{mk("p1", 0, 4, 2, 40)}},
		game.SideState{Energy: 10, Field: []game.Creature{mk("e1", 0, 8, 2, 30)}},
	)
	s.ActivePlayer = game.SideEnemy
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := NewOrchestrator(m, ai.NewPlanner(nil), 0).RunEnemyTurn(ctx, s)
	if r.State.ActivePlayer != game.SidePlayer {
		t.Fatalf("expected forced handoff")
	}
	ev, ok := hasEvent(r.Events, EventTurnChanged)
	if !ok || !ev.Forced {
		t.Fatalf("expected a forced turn-changed event, got %v", r.Events)
	}
	if r.State.Enemy.Field[0].CurrentHealth != 30 || r.State.Player.Field[0].CurrentHealth != 40 {
		t.Fatalf("no action should have run")
	}
}

func TestOrchestrator_RejectsWhenPlayerActive(t *testing.T) {
	m := testMachine()
	s := inBattle(game.SideState{Field: []game.Creature{mk("p1", 0, 4, 2, 40)}}, game.SideState{Field: []game.Creature{mk("e1", 0, 4, 2, 40)}})
	r := NewOrchestrator(m, ai.NewPlanner(nil), 0).ForceEndTurn(s)
	if r.Err != ErrNotYourTurn {
		t.Fatalf("expected ErrNotYourTurn, got %v", r.Err)
	}
}
