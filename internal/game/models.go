package game

// Stat names used by effect stat modifications, tool boosts and synergies.
const (
	StatPhysicalAttack  = "physicalAttack"
	StatMagicalAttack   = "magicalAttack"
	StatPhysicalDefense = "physicalDefense"
	StatMagicalDefense  = "magicalDefense"
	StatInitiative      = "initiative"
	StatMaxHealth       = "maxHealth"
	StatEnergyCost      = "energyCost"
)

// OffensiveStats and DefensiveStats group the stats that synergies and
// combo bonuses scale.
var (
	OffensiveStats = []string{StatPhysicalAttack, StatMagicalAttack}
	DefensiveStats = []string{StatPhysicalDefense, StatMagicalDefense}
	CombatStats    = []string{StatPhysicalAttack, StatMagicalAttack, StatPhysicalDefense, StatMagicalDefense, StatInitiative}
)

// BattleStats holds the derived combat statistics of a creature. All values
// are non-negative.
type BattleStats struct {
	PhysicalAttack  int `json:"physicalAttack"`
	MagicalAttack   int `json:"magicalAttack"`
	PhysicalDefense int `json:"physicalDefense"`
	MagicalDefense  int `json:"magicalDefense"`
	Initiative      int `json:"initiative"`
	MaxHealth       int `json:"maxHealth"`
	EnergyCost      int `json:"energyCost"`
}

// Get returns the value of the named stat, or 0 for unknown names.
func (s BattleStats) Get(stat string) int {
	switch stat {
	case StatPhysicalAttack:
		return s.PhysicalAttack
	case StatMagicalAttack:
		return s.MagicalAttack
	case StatPhysicalDefense:
		return s.PhysicalDefense
	case StatMagicalDefense:
		return s.MagicalDefense
	case StatInitiative:
		return s.Initiative
	case StatMaxHealth:
		return s.MaxHealth
	case StatEnergyCost:
		return s.EnergyCost
	}
	return 0
}

// Set assigns the named stat. Negative values are stored as 0 and max
// health never drops below 1. It reports whether the stat name is known.
func (s *BattleStats) Set(stat string, v int) bool {
	if v < 0 {
		v = 0
	}
	switch stat {
	case StatPhysicalAttack:
		s.PhysicalAttack = v
	case StatMagicalAttack:
		s.MagicalAttack = v
	case StatPhysicalDefense:
		s.PhysicalDefense = v
	case StatMagicalDefense:
		s.MagicalDefense = v
	case StatInitiative:
		s.Initiative = v
	case StatMaxHealth:
		if v < 1 {
			v = 1
		}
		s.MaxHealth = v
	case StatEnergyCost:
		s.EnergyCost = v
	default:
		return false
	}
	return true
}

// Add applies a signed delta to the named stat with the same clamping as Set.
func (s *BattleStats) Add(stat string, delta int) bool {
	return s.Set(stat, s.Get(stat)+delta)
}

// Creature is one instance living in a deck, hand or field.
//
// Stats are the working stats: derived at team confirmation and mutated by
// effects, tools and combo bonuses. BattleStats are the effective stats the
// resolvers read; for field creatures they are Stats scaled by the active
// synergies, everywhere else they equal Stats.
type Creature struct {
	ID          string `json:"id"`
	SpeciesName string `json:"speciesName"`
	Form        int    `json:"form"`
	Rarity      Rarity `json:"rarity"`
	// Energy is the creature's contribution to its side's regeneration.
	Energy int `json:"energy"`

	Stats         BattleStats `json:"stats"`
	BattleStats   BattleStats `json:"battleStats"`
	CurrentHealth int         `json:"currentHealth"`

	ActiveEffects   []Effect `json:"activeEffects"`
	IsDefending     bool     `json:"isDefending"`
	DefenseBoost    int      `json:"defenseBoost"`
	NextAttackBonus int      `json:"nextAttackBonus"`
}

// Alive reports whether the creature still has positive health.
func (c Creature) Alive() bool { return c.CurrentHealth > 0 }

// MaxHealth is the health ceiling; synergies never scale it.
func (c Creature) MaxHealth() int { return c.Stats.MaxHealth }

// ClampHealth keeps CurrentHealth within [0, MaxHealth].
func (c *Creature) ClampHealth() {
	if c.CurrentHealth > c.Stats.MaxHealth {
		c.CurrentHealth = c.Stats.MaxHealth
	}
	if c.CurrentHealth < 0 {
		c.CurrentHealth = 0
	}
}

// ResetEffective drops any synergy scaling so BattleStats mirror Stats.
func (c *Creature) ResetEffective() { c.BattleStats = c.Stats }

// Clone returns a deep copy; the effect list is never shared.
func (c Creature) Clone() Creature {
	out := c
	if c.ActiveEffects != nil {
		out.ActiveEffects = make([]Effect, len(c.ActiveEffects))
		for i := range c.ActiveEffects {
			out.ActiveEffects[i] = c.ActiveEffects[i].Clone()
		}
	}
	return out
}

// CloneCreatures deep-copies a creature slice, preserving nil.
func CloneCreatures(in []Creature) []Creature {
	if in == nil {
		return nil
	}
	out := make([]Creature, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}

// IndexOf returns the position of the creature with the given id, or -1.
func IndexOf(list []Creature, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

// RawCreature is the roster entry a player brings into team selection,
// before stat derivation.
type RawCreature struct {
	ID          string `json:"id"`
	SpeciesName string `json:"speciesName"`
	Form        int    `json:"form"`
	Rarity      Rarity `json:"rarity"`
	Strength    int    `json:"strength"`
	Magic       int    `json:"magic"`
	Agility     int    `json:"agility"`
	Stamina     int    `json:"stamina"`
	Energy      int    `json:"energy"`
	// EnergyCostOverride replaces the 5+form deploy cost when set.
	EnergyCostOverride *int `json:"energyCostOverride,omitempty"`
}
