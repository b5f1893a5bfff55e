package game

// Balance collects the tunable constants of the battle rules. Every value
// can be overridden from the game config file.
type Balance struct {
	AttackCost int `json:"attack_cost"`
	DefendCost int `json:"defend_cost"`
	SpellCost  int `json:"spell_cost"`
	ToolCost   int `json:"tool_cost"`
	// BaseDeployCost is added to the creature form to get its deploy cost.
	BaseDeployCost int `json:"base_deploy_cost"`

	MaxEnergy                 int     `json:"max_energy"`
	BaseRegen                 int     `json:"base_regen"`
	EnergyContributionDivisor int     `json:"energy_contribution_divisor"`
	EnemyRegenOffset          int     `json:"enemy_regen_offset"`
	DecayRate                 float64 `json:"decay_rate"`
	HoardingThreshold         int     `json:"hoarding_threshold"`
	MomentumThreshold         int     `json:"momentum_threshold"`
	MomentumBonus             int     `json:"momentum_bonus"`

	ComboStep           float64 `json:"combo_step"`
	ComboCap            float64 `json:"combo_cap"`
	ComboBonusThreshold int     `json:"combo_bonus_threshold"`
	ComboBonusAttack    int     `json:"combo_bonus_attack"`

	CritChance       float64 `json:"crit_chance"`
	CritMultiplier   float64 `json:"crit_multiplier"`
	DefendMultiplier float64 `json:"defend_multiplier"`

	MaxFieldSize      int `json:"max_field_size"`
	PlayerInitialHand int `json:"player_initial_hand"`
	PlayerHandLimit   int `json:"player_hand_limit"`

	ChargeDefaultTurns int `json:"charge_default_turns"`
	EffectDefaultTurns int `json:"effect_default_turns"`

	Synergy SynergyBonuses `json:"synergy"`
}

// SynergyBonuses are the fractional bonuses each synergy rule grants.
type SynergyBonuses struct {
	SpeciesMatch      float64 `json:"species_match"`
	SpeciesMatchMin   int     `json:"species_match_min"`
	StatPair          float64 `json:"stat_pair"`
	LegendaryPresence float64 `json:"legendary_presence"`
	BalancedTeam      float64 `json:"balanced_team"`
	BalancedTeamMin   int     `json:"balanced_team_min"`
	FullField         float64 `json:"full_field"`
	FormProtection    float64 `json:"form_protection"`
}

// DefaultBalance returns the stock rules.
func DefaultBalance() Balance {
	return Balance{
		AttackCost:                2,
		DefendCost:                1,
		SpellCost:                 4,
		ToolCost:                  0,
		BaseDeployCost:            5,
		MaxEnergy:                 25,
		BaseRegen:                 3,
		EnergyContributionDivisor: 10,
		EnemyRegenOffset:          2,
		DecayRate:                 0.1,
		HoardingThreshold:         10,
		MomentumThreshold:         10,
		MomentumBonus:             1,
		ComboStep:                 0.05,
		ComboCap:                  0.5,
		ComboBonusThreshold:       3,
		ComboBonusAttack:          2,
		CritChance:                0.1,
		CritMultiplier:            1.5,
		DefendMultiplier:          1.5,
		MaxFieldSize:              4,
		PlayerInitialHand:         3,
		PlayerHandLimit:           5,
		ChargeDefaultTurns:        3,
		EffectDefaultTurns:        2,
		Synergy: SynergyBonuses{
			SpeciesMatch:      0.1,
			SpeciesMatchMin:   2,
			StatPair:          0.08,
			LegendaryPresence: 0.15,
			BalancedTeam:      0.05,
			BalancedTeamMin:   3,
			FullField:         0.05,
			FormProtection:    0.1,
		},
	}
}

// DeployCost is the energy needed to field a creature with the given form.
func (b Balance) DeployCost(form int) int {
	if form < 0 {
		form = 0
	}
	return b.BaseDeployCost + form
}

// SpellCostOf returns the energy a spell costs.
func (b Balance) SpellCostOf(s Spell) int {
	if s.EnergyCost > 0 {
		return s.EnergyCost
	}
	return b.SpellCost
}
