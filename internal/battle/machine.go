package battle

import (
	"errors"

	"github.com/ericogr/chimera-battle/internal/engine"
	"github.com/ericogr/chimera-battle/internal/game"
)

var (
	ErrInsufficientEnergy = errors.New("insufficient energy")
	ErrInvalidReference   = errors.New("invalid reference")
	ErrDuplicateDeploy    = errors.New("creature is already on the field")
	ErrFieldFull          = errors.New("field is full")
	ErrNotYourTurn        = errors.New("not your turn")
	ErrBattleOver         = errors.New("battle is over")
	ErrWrongPhase         = errors.New("intent not allowed in this phase")
	ErrUnknownIntent      = errors.New("unknown intent")
	ErrNoEffect           = errors.New("tool has no effect on target")
	ErrInvalidTeam        = errors.New("invalid team")
)

// StatDeriver computes battle stats for a raw roster entry.
type StatDeriver interface {
	DeriveStats(raw game.RawCreature) game.BattleStats
}

// DifficultyProvider serves per-difficulty settings.
type DifficultyProvider interface {
	Settings(d game.Difficulty) (game.DifficultySettings, error)
}

// RosterGenerator builds the enemy deck and inventory. Output must depend
// only on its arguments.
type RosterGenerator interface {
	GenerateEnemyCreatures(seed int64, d game.Difficulty, count int, opponent []game.Creature) ([]game.Creature, error)
	GenerateEnemyItems(seed int64, d game.Difficulty) ([]game.Tool, []game.Spell, error)
}

// Providers groups the collaborators the machine consumes.
type Providers struct {
	Stats      StatDeriver
	Difficulty DifficultyProvider
	Roster     RosterGenerator
	Timed      engine.TimedEffects
}

// Machine applies intents to battle states. It holds only configuration;
// every call takes a state and returns a new one.
type Machine struct {
	balance game.Balance
	p       Providers
}

func NewMachine(bal game.Balance, p Providers) *Machine {
	return &Machine{balance: bal, p: p}
}

func (m *Machine) Balance() game.Balance { return m.balance }

// Settings returns the difficulty settings of a battle.
func (m *Machine) Settings(d game.Difficulty) (game.DifficultySettings, error) {
	return m.p.Difficulty.Settings(d)
}

// Result is the outcome of one intent. A rejected intent carries the input
// state unchanged, Err set, and exactly one log line that is not part of
// the battle log.
type Result struct {
	State  game.BattleState `json:"state"`
	Log    []game.LogEntry  `json:"log"`
	Events []Event          `json:"events"`
	Err    error            `json:"-"`
}

// Rejected reports whether the intent was refused.
func (r Result) Rejected() bool { return r.Err != nil }

// NewBattle returns a fresh battle in the setup phase.
func (m *Machine) NewBattle(id string, seed int64) game.BattleState {
	return game.BattleState{
		BattleID:     id,
		Seed:         seed,
		Turn:         1,
		ActivePlayer: game.SidePlayer,
		Phase:        game.PhaseSetup,
		BattleLog:    []game.LogEntry{},
	}
}

// Dispatch applies one intent from side to state. The input is never
// modified.
func (m *Machine) Dispatch(state game.BattleState, side game.Side, in Intent) Result {
	if in.lifecycle() {
		return m.dispatchLifecycle(state, side, in)
	}
	switch {
	case state.Phase.Terminal():
		return reject(state, side, ErrBattleOver, "the battle is over")
	case state.Phase != game.PhaseBattle:
		return reject(state, side, ErrWrongPhase, string(in.Kind)+" is not allowed during "+string(state.Phase))
	case state.ActivePlayer != side:
		return reject(state, side, ErrNotYourTurn, "it is not "+string(side)+"'s turn")
	}

	t, err := m.begin(state, side)
	if err != nil {
		return reject(state, side, err, err.Error())
	}
	switch in.Kind {
	case IntentDeploy:
		err = t.deploy(in.CreatureID)
	case IntentAttack:
		err = t.attack(in.AttackerID, in.DefenderID)
	case IntentDefend:
		err = t.defend(in.CreatureID)
	case IntentUseTool:
		err = t.useTool(in.ToolID, in.TargetID, in.TargetSide)
	case IntentUseSpell:
		err = t.useSpell(in.SpellID, in.CasterID, in.TargetID, in.TargetSide)
	case IntentEndTurn:
		t.endTurn()
	default:
		err = ErrUnknownIntent
	}
	if err != nil {
		return reject(state, side, err, rejectionText(in, err))
	}
	return t.result()
}

func (m *Machine) dispatchLifecycle(state game.BattleState, side game.Side, in Intent) Result {
	if side != game.SidePlayer {
		return reject(state, side, ErrNotYourTurn, "only the player drives the battle lifecycle")
	}
	if state.Phase.Terminal() {
		return reject(state, side, ErrBattleOver, "the battle is over")
	}
	switch in.Kind {
	case IntentStartBattle:
		return m.startBattle(state, in.Difficulty)
	case IntentBackToSetup:
		phase, err := nextPhase(state.Phase, evBack)
		if err != nil {
			return reject(state, side, err, "cannot go back to setup from "+string(state.Phase))
		}
		t := &txn{m: m, st: state.Clone(), side: side}
		t.st.Phase = phase
		t.logf("Back to setup")
		return t.result()
	case IntentConfirmTeam:
		return m.confirmTeam(state, in.Team)
	}
	return reject(state, side, ErrUnknownIntent, "unknown intent "+string(in.Kind))
}

func (m *Machine) startBattle(state game.BattleState, d game.Difficulty) Result {
	side := game.SidePlayer
	if !canTransition(state.Phase, evStart) {
		return reject(state, side, ErrWrongPhase, "cannot start a battle from "+string(state.Phase))
	}
	if _, err := m.p.Difficulty.Settings(d); err != nil {
		return reject(state, side, err, "unknown difficulty "+string(d))
	}
	t := &txn{m: m, st: state.Clone(), side: side}
	t.st.Phase, _ = nextPhase(state.Phase, evStart)
	t.st.Difficulty = d
	t.logf("Difficulty " + string(d) + " selected; choose your team")
	return t.result()
}

// begin opens a transaction on a copy of state.
func (m *Machine) begin(state game.BattleState, side game.Side) (*txn, error) {
	settings, err := m.p.Difficulty.Settings(state.Difficulty)
	if err != nil {
		return nil, err
	}
	return &txn{m: m, st: state.Clone(), side: side, settings: settings}, nil
}

func reject(state game.BattleState, side game.Side, err error, msg string) Result {
	return Result{
		State: state,
		Log: []game.LogEntry{{
			Seq:     state.NextSeq(),
			Turn:    state.Turn,
			Side:    side,
			Message: "Rejected: " + msg,
		}},
		Err: err,
	}
}

func rejectionText(in Intent, err error) string {
	return string(in.Kind) + ": " + err.Error()
}
