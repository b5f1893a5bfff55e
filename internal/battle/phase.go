package battle

import (
	"context"

	"github.com/looplab/fsm"

	"github.com/ericogr/chimera-battle/internal/game"
)

// Phase transition events.
const (
	evStart   = "start"
	evBack    = "back"
	evConfirm = "confirm"
	evWin     = "win"
	evLose    = "lose"
)

var phaseEvents = fsm.Events{
	{Name: evStart, Src: []string{string(game.PhaseSetup)}, Dst: string(game.PhaseTeamSelect)},
	{Name: evBack, Src: []string{string(game.PhaseTeamSelect)}, Dst: string(game.PhaseSetup)},
	{Name: evConfirm, Src: []string{string(game.PhaseTeamSelect)}, Dst: string(game.PhaseBattle)},
	{Name: evWin, Src: []string{string(game.PhaseBattle)}, Dst: string(game.PhaseVictory)},
	{Name: evLose, Src: []string{string(game.PhaseBattle)}, Dst: string(game.PhaseDefeat)},
}

// nextPhase runs one lifecycle event from the given phase. The state
// stores the phase as a plain value, so a machine is built per transition.
func nextPhase(current game.Phase, event string) (game.Phase, error) {
	f := fsm.NewFSM(string(current), phaseEvents, fsm.Callbacks{})
	if !f.Can(event) {
		return current, ErrWrongPhase
	}
	if err := f.Event(context.Background(), event); err != nil {
		return current, ErrWrongPhase
	}
	return game.Phase(f.Current()), nil
}

// canTransition reports whether event is allowed from current.
func canTransition(current game.Phase, event string) bool {
	return fsm.NewFSM(string(current), phaseEvents, fsm.Callbacks{}).Can(event)
}
