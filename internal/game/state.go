package game

// Side identifies one of the two parties in a battle.
type Side string

const (
	SidePlayer Side = "player"
	SideEnemy  Side = "enemy"
)

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == SidePlayer {
		return SideEnemy
	}
	return SidePlayer
}

// Valid reports whether s names one of the two sides.
func (s Side) Valid() bool { return s == SidePlayer || s == SideEnemy }

// EnemyIDPrefix starts every generated enemy creature id. Player creature
// ids may not use it, so an id never names creatures on both sides.
const EnemyIDPrefix = "enemy-"

// Phase is the battle lifecycle phase.
type Phase string

const (
	PhaseSetup      Phase = "setup"
	PhaseTeamSelect Phase = "teamSelect"
	PhaseBattle     Phase = "battle"
	PhaseVictory    Phase = "victory"
	PhaseDefeat     Phase = "defeat"
)

// Terminal reports whether no further intents are accepted.
func (p Phase) Terminal() bool { return p == PhaseVictory || p == PhaseDefeat }

// SynergyType names a synergy rule.
type SynergyType string

const (
	SynergySpeciesMatch      SynergyType = "species-match"
	SynergyStatPair          SynergyType = "stat-pair"
	SynergyLegendaryPresence SynergyType = "legendary-presence"
	SynergyBalancedTeam      SynergyType = "balanced-team"
	SynergyFullField         SynergyType = "full-field"
	SynergyFormProtection    SynergyType = "form-protection"
)

// Synergy is a derived field-wide bonus. It is recomputed from the field
// after every membership change and never edited in place.
type Synergy struct {
	Type         SynergyType `json:"type"`
	Name         string      `json:"name"`
	Bonus        float64     `json:"bonus"`
	Stats        []string    `json:"stats"`
	Participants []string    `json:"participants"`
}

// Clone returns a deep copy of the synergy.
func (s Synergy) Clone() Synergy {
	s.Stats = append([]string(nil), s.Stats...)
	s.Participants = append([]string(nil), s.Participants...)
	return s
}

// LogEntry is one line of the append-only battle log.
type LogEntry struct {
	Seq     int    `json:"seq"`
	Turn    int    `json:"turn"`
	Side    Side   `json:"side,omitempty"`
	Message string `json:"message"`
}

// SideState is everything one party owns.
type SideState struct {
	Energy             int        `json:"energy"`
	Deck               []Creature `json:"deck"`
	Hand               []Creature `json:"hand"`
	Field              []Creature `json:"field"`
	Tools              []Tool     `json:"tools"`
	Spells             []Spell    `json:"spells"`
	HandLimit          int        `json:"handLimit"`
	ConsecutiveActions int        `json:"consecutiveActions"`
	EnergyMomentum     int        `json:"energyMomentum"`
	ActiveSynergies    []Synergy  `json:"activeSynergies"`
	LastRegen          int        `json:"lastRegen"`
}

// Depleted reports whether the side has no creatures left anywhere.
func (s SideState) Depleted() bool {
	return len(s.Field) == 0 && len(s.Hand) == 0 && len(s.Deck) == 0
}

// ToolIndex returns the position of the tool with the given id, or -1.
func (s SideState) ToolIndex(id string) int {
	for i := range s.Tools {
		if s.Tools[i].ID == id {
			return i
		}
	}
	return -1
}

// SpellIndex returns the position of the spell with the given id, or -1.
func (s SideState) SpellIndex(id string) int {
	for i := range s.Spells {
		if s.Spells[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the side.
func (s SideState) Clone() SideState {
	out := s
	out.Deck = CloneCreatures(s.Deck)
	out.Hand = CloneCreatures(s.Hand)
	out.Field = CloneCreatures(s.Field)
	if s.Tools != nil {
		out.Tools = make([]Tool, len(s.Tools))
		for i := range s.Tools {
			out.Tools[i] = s.Tools[i].Clone()
		}
	}
	if s.Spells != nil {
		out.Spells = make([]Spell, len(s.Spells))
		for i := range s.Spells {
			out.Spells[i] = s.Spells[i].Clone()
		}
	}
	if s.ActiveSynergies != nil {
		out.ActiveSynergies = make([]Synergy, len(s.ActiveSynergies))
		for i := range s.ActiveSynergies {
			out.ActiveSynergies[i] = s.ActiveSynergies[i].Clone()
		}
	}
	return out
}

// BattleState is the single root aggregate of a battle. It is owned by the
// battle machine; everything else receives copies.
type BattleState struct {
	BattleID     string     `json:"battleId"`
	Seed         int64      `json:"seed"`
	Rolls        uint64     `json:"rolls"`
	Turn         int        `json:"turn"`
	ActivePlayer Side       `json:"activePlayer"`
	Phase        Phase      `json:"gamePhase"`
	Difficulty   Difficulty `json:"difficulty"`
	Player       SideState  `json:"player"`
	Enemy        SideState  `json:"enemy"`
	BattleLog    []LogEntry `json:"battleLog"`
	AIStrategy   string     `json:"aiStrategy,omitempty"`
}

// SideOf returns a pointer to the requested side.
func (s *BattleState) SideOf(side Side) *SideState {
	if side == SideEnemy {
		return &s.Enemy
	}
	return &s.Player
}

// Clone returns a deep copy of the state. Updates made to the copy never
// reach the original.
func (s BattleState) Clone() BattleState {
	out := s
	out.Player = s.Player.Clone()
	out.Enemy = s.Enemy.Clone()
	if s.BattleLog != nil {
		out.BattleLog = append([]LogEntry(nil), s.BattleLog...)
	}
	return out
}

// NextSeq is the sequence number the next log entry receives.
func (s BattleState) NextSeq() int { return len(s.BattleLog) + 1 }
