package game

// EffectType tags how the effect processor treats an effect.
type EffectType string

const (
	EffectBuff           EffectType = "Buff"
	EffectDebuff         EffectType = "Debuff"
	EffectHealthOverTime EffectType = "HealthOverTime"
	EffectCharge         EffectType = "Charge"
	// Escalating and Fading are handed to the timed-effect provider before
	// the base stat/health processing runs.
	EffectEscalating EffectType = "Escalating"
	EffectFading     EffectType = "Fading"
)

// ChargeEffect turns into a one-shot attack bonus after MaxTurns.
type ChargeEffect struct {
	MaxTurns   int `json:"maxTurns"`
	FinalBurst int `json:"finalBurst"`
}

// Effect is a timed status attached to exactly one creature.
type Effect struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	Type              EffectType     `json:"effectType"`
	Duration          int            `json:"duration"`
	StartTurn         int            `json:"startTurn"`
	StatModifications map[string]int `json:"statModifications,omitempty"`
	HealthOverTime    int            `json:"healthOverTime,omitempty"`
	Charge            *ChargeEffect  `json:"chargeEffect,omitempty"`
}

// IsHarmful reports whether a cleanse should remove the effect.
func (e Effect) IsHarmful() bool {
	if e.Type == EffectDebuff || e.HealthOverTime < 0 {
		return true
	}
	for _, d := range e.StatModifications {
		if d < 0 {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the effect.
func (e Effect) Clone() Effect {
	out := e
	if e.StatModifications != nil {
		out.StatModifications = make(map[string]int, len(e.StatModifications))
		for k, v := range e.StatModifications {
			out.StatModifications[k] = v
		}
	}
	if e.Charge != nil {
		c := *e.Charge
		out.Charge = &c
	}
	return out
}
