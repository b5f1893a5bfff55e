package game

// Rarity tiers. Legendary members trigger the legendary-presence synergy.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Valid reports whether r is one of the known tiers. The empty rarity is
// treated as common.
func (r Rarity) Valid() bool {
	switch r {
	case "", RarityCommon, RarityUncommon, RarityRare, RarityEpic, RarityLegendary:
		return true
	}
	return false
}

// Species is a roster template the enemy generator draws from.
type Species struct {
	Name     string `json:"name"`
	Rarity   Rarity `json:"rarity"`
	Strength int    `json:"strength"`
	Magic    int    `json:"magic"`
	Agility  int    `json:"agility"`
	Stamina  int    `json:"stamina"`
	Energy   int    `json:"energy"`
}

// Difficulty selects the enemy roster, starting resources and AI behavior.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
	DifficultyExpert Difficulty = "expert"
)

// DifficultySettings is the per-difficulty table consumed by the battle
// machine and the planner.
type DifficultySettings struct {
	InitialHandSize      int     `json:"initial_hand_size"`
	EnemyDeckSize        int     `json:"enemy_deck_size"`
	StartingEnergy       int     `json:"starting_energy"`
	PlayerStartingEnergy int     `json:"player_starting_energy"`
	EnemyEnergyRegen     int     `json:"enemy_energy_regen"`
	DefendBonusPercent   int     `json:"defend_bonus_percent"`
	ItemPowerPercent     int     `json:"item_power_percent"`
	MaxActionsPerTurn    int     `json:"max_actions_per_turn"`
	Aggression           float64 `json:"aggression"`
	EnemyFormBonus       int     `json:"enemy_form_bonus"`
	ItemCount            int     `json:"item_count"`
}

// NeutralDifficulty is the context used when the human side acts: no
// defensive boost and unscaled item power.
func NeutralDifficulty() DifficultySettings {
	return DifficultySettings{ItemPowerPercent: 100, MaxActionsPerTurn: 1, Aggression: 1}
}
