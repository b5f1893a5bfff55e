package battle

import "github.com/ericogr/chimera-battle/internal/game"

// EventType names a presentation event. Events describe what happened for
// renderers; the machine never reads them back.
type EventType string

const (
	EventAttackResolved    EventType = "attack-resolved"
	EventCreatureDeployed  EventType = "creature-deployed"
	EventCreatureDefeated  EventType = "creature-defeated"
	EventSpellCast         EventType = "spell-cast"
	EventToolUsed          EventType = "tool-used"
	EventDefendTaken       EventType = "defend-taken"
	EventSynergyActivated  EventType = "synergy-activated"
	EventEnergyRegenerated EventType = "energy-regenerated"
	EventTurnChanged       EventType = "turn-changed"
	EventBattleEnded       EventType = "battle-ended"
)

// Event carries identifiers and numeric deltas only, never references into
// the battle state.
type Event struct {
	Type       EventType        `json:"type"`
	Turn       int              `json:"turn"`
	Side       game.Side        `json:"side,omitempty"`
	CreatureID string           `json:"creatureId,omitempty"`
	TargetID   string           `json:"targetId,omitempty"`
	TargetSide game.Side        `json:"targetSide,omitempty"`
	ItemID     string           `json:"itemId,omitempty"`
	Damage     int              `json:"damage,omitempty"`
	Healing    int              `json:"healing,omitempty"`
	Amount     int              `json:"amount,omitempty"`
	IsCritical bool             `json:"isCritical,omitempty"`
	IsBlocked  bool             `json:"isBlocked,omitempty"`
	Synergy    game.SynergyType `json:"synergy,omitempty"`
	Bonus      float64          `json:"bonus,omitempty"`
	Result     game.Phase       `json:"result,omitempty"`
	Forced     bool             `json:"forced,omitempty"`
}
