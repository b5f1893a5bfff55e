package ai

import "github.com/ericogr/chimera-battle/internal/game"

// View is the planner's private copy of what one side can see. The planner
// mutates it while simulating; it never touches the battle state.
type View struct {
	Side               game.Side
	Turn               int
	Balance            game.Balance
	Settings           game.DifficultySettings
	Energy             int
	ConsecutiveActions int
	Hand               []game.Creature
	Field              []game.Creature
	OpponentField      []game.Creature
	OpponentReserve    int
	Tools              []game.Tool
	Spells             []game.Spell
}

// ViewOf copies the planner inputs for side out of a battle state.
func ViewOf(s game.BattleState, side game.Side, bal game.Balance, settings game.DifficultySettings) View {
	own := s.SideOf(side)
	opp := s.SideOf(side.Opponent())
	v := View{
		Side:               side,
		Turn:               s.Turn,
		Balance:            bal,
		Settings:           settings,
		Energy:             own.Energy,
		ConsecutiveActions: own.ConsecutiveActions,
		Hand:               game.CloneCreatures(own.Hand),
		Field:              game.CloneCreatures(own.Field),
		OpponentField:      game.CloneCreatures(opp.Field),
		OpponentReserve:    len(opp.Hand) + len(opp.Deck),
	}
	for _, t := range own.Tools {
		v.Tools = append(v.Tools, t.Clone())
	}
	for _, sp := range own.Spells {
		v.Spells = append(v.Spells, sp.Clone())
	}
	return v
}

func (v View) clone() View {
	out := v
	out.Hand = game.CloneCreatures(v.Hand)
	out.Field = game.CloneCreatures(v.Field)
	out.OpponentField = game.CloneCreatures(v.OpponentField)
	out.Tools = append([]game.Tool(nil), v.Tools...)
	out.Spells = append([]game.Spell(nil), v.Spells...)
	return out
}
