package ai

import (
	"context"

	"github.com/ericogr/chimera-battle/internal/engine"
	"github.com/ericogr/chimera-battle/internal/game"
)

// ActionKind discriminates planned actions.
type ActionKind string

const (
	ActionDeploy   ActionKind = "deploy"
	ActionAttack   ActionKind = "attack"
	ActionDefend   ActionKind = "defend"
	ActionUseTool  ActionKind = "useTool"
	ActionUseSpell ActionKind = "useSpell"
)

// Action is one planned step. CreatureID is the deployed creature, the
// attacker, the defender or the caster depending on Kind.
type Action struct {
	Kind       ActionKind `json:"kind"`
	CreatureID string     `json:"creatureId,omitempty"`
	TargetID   string     `json:"targetId,omitempty"`
	TargetSide game.Side  `json:"targetSide,omitempty"`
	ToolID     string     `json:"toolId,omitempty"`
	SpellID    string     `json:"spellId,omitempty"`
	Cost       int        `json:"cost"`
	Score      float64    `json:"score"`
}

// Plan is an ordered action sequence whose summed cost fits the energy the
// plan was made with. An empty plan means end the turn.
type Plan struct {
	Strategy Strategy `json:"strategy"`
	Actions  []Action `json:"actions"`
}

// EndTurn reports whether the planner found nothing worth doing.
func (p Plan) EndTurn() bool { return len(p.Actions) == 0 }

// TotalCost sums the planned energy costs.
func (p Plan) TotalCost() int {
	sum := 0
	for _, a := range p.Actions {
		sum += a.Cost
	}
	return sum
}

// minScore filters out actions that are legal but not worth their cost.
const minScore = 0.5

// Planner scores candidate actions by expected value.
type Planner struct {
	weights StrategyWeights
}

// NewPlanner returns a planner with the given weights; missing strategies
// fall back to the stock tuning.
func NewPlanner(w StrategyWeights) *Planner {
	merged := DefaultWeights()
	for k, v := range w {
		merged[k] = v
	}
	return &Planner{weights: merged}
}

// PlanAction greedily builds a sequence: pick the best affordable
// candidate, simulate it on the private view, repeat. It stops at
// MaxActionsPerTurn, when nothing scores above minScore, or when ctx is
// done. Every step is simulated so later picks see earlier effects.
func (p *Planner) PlanAction(ctx context.Context, v View) Plan {
	strategy := ChooseStrategy(v)
	w := p.weights[strategy]
	aggr := v.Settings.Aggression
	if aggr <= 0 {
		aggr = 1
	}
	w.Damage *= aggr
	w.Kill *= aggr

	limit := v.Settings.MaxActionsPerTurn
	if limit <= 0 {
		limit = 1
	}
	s := newSim(v)
	plan := Plan{Strategy: strategy}
	for len(plan.Actions) < limit {
		if ctx.Err() != nil {
			break
		}
		best, ok := s.best(w)
		if !ok {
			break
		}
		s.apply(best)
		plan.Actions = append(plan.Actions, best)
	}
	return plan
}

// sim is the planner's scratch state.
type sim struct {
	v        View
	env      engine.Env
	attacked map[string]bool
	deployed map[string]bool
}

func newSim(v View) *sim {
	return &sim{
		v:        v.clone(),
		env:      engine.Env{Turn: v.Turn, Balance: v.Balance, Difficulty: v.Settings, Roll: engine.NoCrit},
		attacked: map[string]bool{},
		deployed: map[string]bool{},
	}
}

func (s *sim) best(w Weights) (Action, bool) {
	var best Action
	found := false
	for _, a := range s.candidates(w) {
		if a.Cost > s.v.Energy || a.Score < minScore {
			continue
		}
		if !found || a.Score > best.Score {
			best = a
			found = true
		}
	}
	return best, found
}

func (s *sim) spend(cost int) {
	s.v.Energy -= cost
	s.v.ConsecutiveActions++
}

func (s *sim) apply(a Action) {
	s.spend(a.Cost)
	bal := s.v.Balance
	switch a.Kind {
	case ActionDeploy:
		i := game.IndexOf(s.v.Hand, a.CreatureID)
		c := s.v.Hand[i]
		s.v.Hand = append(s.v.Hand[:i:i], s.v.Hand[i+1:]...)
		s.v.Field, _ = engine.RefreshField(append(s.v.Field, c), bal)
		s.deployed[a.CreatureID] = true

	case ActionAttack:
		ai := game.IndexOf(s.v.Field, a.CreatureID)
		ti := game.IndexOf(s.v.OpponentField, a.TargetID)
		r := engine.ResolveAttack(s.v.Field[ai], s.v.OpponentField[ti], s.v.ConsecutiveActions-1, s.env)
		s.v.Field[ai] = r.Attacker
		s.v.OpponentField[ti] = r.Defender
		s.settle()
		s.attacked[a.CreatureID] = true

	case ActionDefend:
		i := game.IndexOf(s.v.Field, a.CreatureID)
		s.v.Field[i] = engine.ResolveDefend(s.v.Field[i], s.env)

	case ActionUseTool:
		ti := toolIndex(s.v.Tools, a.ToolID)
		tool := s.v.Tools[ti]
		s.v.Tools = append(s.v.Tools[:ti:ti], s.v.Tools[ti+1:]...)
		list := s.fieldOf(a.TargetSide)
		i := game.IndexOf(*list, a.TargetID)
		if out, ok := engine.ResolveTool((*list)[i], tool, s.env); ok {
			(*list)[i] = out.Creature
		}
		s.settle()

	case ActionUseSpell:
		si := spellIndex(s.v.Spells, a.SpellID)
		spell := s.v.Spells[si]
		s.v.Spells = append(s.v.Spells[:si:si], s.v.Spells[si+1:]...)
		ci := game.IndexOf(s.v.Field, a.CreatureID)
		list := s.fieldOf(a.TargetSide)
		ti := game.IndexOf(*list, a.TargetID)
		var r engine.SpellResult
		if list == &s.v.Field && ti == ci {
			r = engine.ResolveSelfCast(s.v.Field[ci], spell, s.env)
		} else {
			r = engine.ResolveSpell(s.v.Field[ci], (*list)[ti], spell, s.env)
		}
		(*list)[ti] = r.Target
		s.v.Field[ci] = r.Caster
		s.settle()
	}
}

// fieldOf returns the simulated field of side.
func (s *sim) fieldOf(side game.Side) *[]game.Creature {
	if side == s.v.Side {
		return &s.v.Field
	}
	return &s.v.OpponentField
}

// settle removes defeated creatures and refreshes both fields' synergies.
func (s *sim) settle() {
	bal := s.v.Balance
	own, _ := engine.RemoveDefeated(s.v.Field)
	opp, _ := engine.RemoveDefeated(s.v.OpponentField)
	s.v.Field, _ = engine.RefreshField(own, bal)
	s.v.OpponentField, _ = engine.RefreshField(opp, bal)
}

func toolIndex(tools []game.Tool, id string) int {
	for i := range tools {
		if tools[i].ID == id {
			return i
		}
	}
	return -1
}

func spellIndex(spells []game.Spell, id string) int {
	for i := range spells {
		if spells[i].ID == id {
			return i
		}
	}
	return -1
}
