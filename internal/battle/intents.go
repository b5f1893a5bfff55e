package battle

import "github.com/ericogr/chimera-battle/internal/game"

// IntentKind discriminates intents.
type IntentKind string

const (
	IntentStartBattle IntentKind = "startBattle"
	IntentBackToSetup IntentKind = "backToSetup"
	IntentConfirmTeam IntentKind = "confirmTeam"
	IntentDeploy      IntentKind = "deploy"
	IntentAttack      IntentKind = "attack"
	IntentDefend      IntentKind = "defend"
	IntentUseTool     IntentKind = "useTool"
	IntentUseSpell    IntentKind = "useSpell"
	IntentEndTurn     IntentKind = "endTurn"
)

// TeamSelection is the roster and inventory the human side brings into a
// battle.
type TeamSelection struct {
	Creatures []game.RawCreature `json:"creatures"`
	Tools     []game.Tool        `json:"tools"`
	Spells    []game.Spell       `json:"spells"`
}

// Intent is a request to change the battle. Only the fields relevant to
// Kind are read.
type Intent struct {
	Kind       IntentKind      `json:"kind"`
	CreatureID string          `json:"creatureId,omitempty"`
	AttackerID string          `json:"attackerId,omitempty"`
	DefenderID string          `json:"defenderId,omitempty"`
	TargetID   string          `json:"targetId,omitempty"`
	CasterID   string          `json:"casterId,omitempty"`
	ToolID     string          `json:"toolId,omitempty"`
	SpellID    string          `json:"spellId,omitempty"`
	// TargetSide picks the field TargetID lives on for tools and spells.
	// Empty means the opponent for hostile items and the actor otherwise.
	TargetSide game.Side       `json:"targetSide,omitempty"`
	Difficulty game.Difficulty `json:"difficulty,omitempty"`
	Team       *TeamSelection  `json:"team,omitempty"`
}

func StartBattle(d game.Difficulty) Intent {
	return Intent{Kind: IntentStartBattle, Difficulty: d}
}

func BackToSetup() Intent { return Intent{Kind: IntentBackToSetup} }

func ConfirmTeam(team TeamSelection) Intent {
	return Intent{Kind: IntentConfirmTeam, Team: &team}
}

func Deploy(creatureID string) Intent {
	return Intent{Kind: IntentDeploy, CreatureID: creatureID}
}

func Attack(attackerID, defenderID string) Intent {
	return Intent{Kind: IntentAttack, AttackerID: attackerID, DefenderID: defenderID}
}

func Defend(creatureID string) Intent {
	return Intent{Kind: IntentDefend, CreatureID: creatureID}
}

func UseTool(toolID, targetID string) Intent {
	return Intent{Kind: IntentUseTool, ToolID: toolID, TargetID: targetID}
}

func UseSpell(spellID, casterID, targetID string) Intent {
	return Intent{Kind: IntentUseSpell, SpellID: spellID, CasterID: casterID, TargetID: targetID}
}

func EndTurn() Intent { return Intent{Kind: IntentEndTurn} }

// On returns the intent aimed at side's field.
func (i Intent) On(side game.Side) Intent {
	i.TargetSide = side
	return i
}

// lifecycle reports whether the intent drives the phase cycle rather than
// an in-battle action.
func (i Intent) lifecycle() bool {
	switch i.Kind {
	case IntentStartBattle, IntentBackToSetup, IntentConfirmTeam:
		return true
	}
	return false
}
