package battle

import (
	"context"
	"time"

	"github.com/ericogr/chimera-battle/internal/ai"
	"github.com/ericogr/chimera-battle/internal/constants"
	"github.com/ericogr/chimera-battle/internal/game"
	"github.com/ericogr/chimera-battle/internal/logging"
)

// Orchestrator drives the AI side's turn through the machine.
type Orchestrator struct {
	Machine *Machine
	Planner *ai.Planner
	// Budget bounds planning plus execution; zero means no bound.
	Budget time.Duration
}

func NewOrchestrator(m *Machine, p *ai.Planner, budget time.Duration) *Orchestrator {
	return &Orchestrator{Machine: m, Planner: p, Budget: budget}
}

// RunEnemyTurn plans and executes the enemy turn and hands back to the
// player. Actions run in plan order against the freshest state; an action
// that is no longer affordable or legal is skipped, never fatal. When the
// budget runs out the turn is ended as if the enemy had passed.
func (o *Orchestrator) RunEnemyTurn(ctx context.Context, state game.BattleState) Result {
	if state.Phase != game.PhaseBattle || state.ActivePlayer != game.SideEnemy {
		return reject(state, game.SideEnemy, ErrNotYourTurn, "the enemy cannot act now")
	}
	if o.Budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.Budget)
		defer cancel()
	}
	settings, err := o.Machine.Settings(state.Difficulty)
	if err != nil {
		return reject(state, game.SideEnemy, err, err.Error())
	}

	acc := Result{State: state}
	view := ai.ViewOf(state, game.SideEnemy, o.Machine.Balance(), settings)
	plan := o.Planner.PlanAction(ctx, view)
	acc.State.AIStrategy = string(plan.Strategy)

	for _, a := range plan.Actions {
		if ctx.Err() != nil {
			break
		}
		if a.Cost > acc.State.Enemy.Energy {
			logging.Debug("skipping unaffordable planned action", logging.Fields{
				constants.LogFieldBattleID: state.BattleID,
				constants.LogFieldIntent:   string(a.Kind),
				constants.LogFieldCost:     a.Cost,
			})
			continue
		}
		r := o.Machine.Dispatch(acc.State, game.SideEnemy, IntentFor(a))
		if r.Rejected() {
			logging.Debug("skipping rejected planned action", logging.Fields{
				constants.LogFieldBattleID: state.BattleID,
				constants.LogFieldIntent:   string(a.Kind),
				"error":                    r.Err.Error(),
			})
			continue
		}
		acc.Merge(r)
		if acc.State.Phase.Terminal() {
			return acc
		}
	}

	forced := ctx.Err() != nil
	if forced {
		logging.Warn("enemy turn exceeded its budget; ending turn", logging.Fields{
			constants.LogFieldBattleID: state.BattleID,
			constants.LogFieldTurn:     state.Turn,
		})
	}
	return o.endTurn(acc, forced)
}

// ForceEndTurn ends a stalled enemy turn without planning.
func (o *Orchestrator) ForceEndTurn(state game.BattleState) Result {
	if state.Phase != game.PhaseBattle || state.ActivePlayer != game.SideEnemy {
		return reject(state, game.SideEnemy, ErrNotYourTurn, "the enemy is not acting")
	}
	return o.endTurn(Result{State: state}, true)
}

func (o *Orchestrator) endTurn(acc Result, forced bool) Result {
	r := o.Machine.Dispatch(acc.State, game.SideEnemy, EndTurn())
	if r.Rejected() {
		return acc
	}
	if forced {
		for i := range r.Events {
			if r.Events[i].Type == EventTurnChanged {
				r.Events[i].Forced = true
			}
		}
	}
	acc.Merge(r)
	return acc
}

// Merge appends next onto r: the state is replaced, log and events are
// concatenated.
func (r *Result) Merge(next Result) {
	r.State = next.State
	r.Log = append(r.Log, next.Log...)
	r.Events = append(r.Events, next.Events...)
}

// IntentFor translates a planned action into the matching intent.
func IntentFor(a ai.Action) Intent {
	switch a.Kind {
	case ai.ActionDeploy:
		return Deploy(a.CreatureID)
	case ai.ActionAttack:
		return Attack(a.CreatureID, a.TargetID)
	case ai.ActionDefend:
		return Defend(a.CreatureID)
	case ai.ActionUseTool:
		return UseTool(a.ToolID, a.TargetID).On(a.TargetSide)
	case ai.ActionUseSpell:
		return UseSpell(a.SpellID, a.CreatureID, a.TargetID).On(a.TargetSide)
	}
	return Intent{Kind: IntentKind(a.Kind)}
}
