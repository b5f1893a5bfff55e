// Package sim plays whole battles headlessly: a planner-driven player
// against the orchestrated enemy, through the same machine the server uses.
package sim

import (
	"context"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/ericogr/chimera-battle/internal/ai"
	"github.com/ericogr/chimera-battle/internal/battle"
	"github.com/ericogr/chimera-battle/internal/game"
)

// PhaseStalemate marks a battle cut off by MaxTurns. It is never a machine
// phase.
const PhaseStalemate game.Phase = "stalemate"

type Options struct {
	Seed       int64
	Difficulty game.Difficulty
	Team       battle.TeamSelection
	// MaxTurns stops battles that never finish; zero means 200.
	MaxTurns int
	// PlayerActions caps planned player actions per turn; zero means 3.
	PlayerActions int
}

// Report summarizes one battle.
type Report struct {
	BattleID string           `json:"battleId"`
	Seed     int64            `json:"seed"`
	Result   game.Phase       `json:"result"`
	Turns    int              `json:"turns"`
	Log      []game.LogEntry  `json:"log"`
	Final    game.BattleState `json:"-"`
}

// Runner plays battles with a fixed machine and enemy orchestrator.
type Runner struct {
	Orchestrator *battle.Orchestrator
	// Player plans the human side's turns.
	Player *ai.Planner
}

// Run plays one battle to its end or to MaxTurns.
func (r Runner) Run(ctx context.Context, opt Options) (Report, error) {
	m := r.Orchestrator.Machine
	maxTurns := opt.MaxTurns
	if maxTurns <= 0 {
		maxTurns = 200
	}
	id := "sim-" + strconv.FormatInt(opt.Seed, 10)
	s := m.NewBattle(id, opt.Seed)
	for _, in := range []battle.Intent{battle.StartBattle(opt.Difficulty), battle.ConfirmTeam(opt.Team)} {
		res := m.Dispatch(s, game.SidePlayer, in)
		if res.Rejected() {
			return Report{}, eris.Wrapf(res.Err, "%s", in.Kind)
		}
		s = res.State
	}

	settings := game.NeutralDifficulty()
	settings.MaxActionsPerTurn = opt.PlayerActions
	if settings.MaxActionsPerTurn <= 0 {
		settings.MaxActionsPerTurn = 3
	}

	for !s.Phase.Terminal() && s.Turn <= maxTurns {
		if err := ctx.Err(); err != nil {
			return Report{}, err
		}
		var res battle.Result
		if s.ActivePlayer == game.SideEnemy {
			res = r.Orchestrator.RunEnemyTurn(ctx, s)
		} else {
			res = r.playerTurn(ctx, s, settings)
		}
		if res.Rejected() {
			return Report{}, eris.Wrapf(res.Err, "turn %d stalled for %s", s.Turn, s.ActivePlayer)
		}
		s = res.State
	}

	rep := Report{BattleID: s.BattleID, Seed: opt.Seed, Result: s.Phase, Turns: s.Turn, Log: s.BattleLog, Final: s}
	if !s.Phase.Terminal() {
		rep.Result = PhaseStalemate
	}
	return rep, nil
}

func (r Runner) playerTurn(ctx context.Context, s game.BattleState, settings game.DifficultySettings) battle.Result {
	m := r.Orchestrator.Machine
	plan := r.Player.PlanAction(ctx, ai.ViewOf(s, game.SidePlayer, m.Balance(), settings))
	for _, a := range plan.Actions {
		res := m.Dispatch(s, game.SidePlayer, battle.IntentFor(a))
		if res.Rejected() {
			continue
		}
		s = res.State
		if s.Phase.Terminal() {
			return res
		}
	}
	return m.Dispatch(s, game.SidePlayer, battle.EndTurn())
}

// Summary tallies results over many battles.
type Summary struct {
	Battles    int `json:"battles"`
	Victories  int `json:"victories"`
	Defeats    int `json:"defeats"`
	Stalemates int `json:"stalemates"`
	TotalTurns int `json:"totalTurns"`
}

func (s *Summary) Add(r Report) {
	s.Battles++
	s.TotalTurns += r.Turns
	switch r.Result {
	case game.PhaseVictory:
		s.Victories++
	case game.PhaseDefeat:
		s.Defeats++
	default:
		s.Stalemates++
	}
}
