package game

// ToolKind selects the behavior of a tool.
type ToolKind string

const (
	ToolHeal    ToolKind = "heal"
	ToolBoost   ToolKind = "boost"
	ToolEffect  ToolKind = "effect"
	ToolCleanse ToolKind = "cleanse"
	ToolCharge  ToolKind = "charge"
)

// Tool is a single-use item. Tools cost the balance tool cost to use.
type Tool struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Kind  ToolKind `json:"kind"`
	Power int      `json:"power"`
	// Stat is the boosted stat for boost tools.
	Stat string `json:"stat,omitempty"`
	// Effect is the template attached by effect tools.
	Effect *Effect `json:"effect,omitempty"`
}

// Hostile reports whether the tool targets the opposing field by default.
func (t Tool) Hostile() bool {
	return t.Kind == ToolEffect && t.Effect != nil && t.Effect.IsHarmful()
}

// SpellKind selects the behavior of a spell.
type SpellKind string

const (
	SpellDamage SpellKind = "damage"
	SpellHeal   SpellKind = "heal"
	SpellDrain  SpellKind = "drain"
	SpellBuff   SpellKind = "buff"
	SpellDebuff SpellKind = "debuff"
	SpellCharge SpellKind = "charge"
)

// Offensive reports whether the spell follows attack damage rules.
func (k SpellKind) Offensive() bool { return k == SpellDamage || k == SpellDrain }

// Hostile reports whether the spell targets the opposing field by default.
func (k SpellKind) Hostile() bool { return k.Offensive() || k == SpellDebuff }

// Spell is a single-use item cast by a field creature.
type Spell struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Kind   SpellKind `json:"kind"`
	Power  int       `json:"power"`
	Effect *Effect   `json:"effect,omitempty"`
	// EnergyCost overrides the balance spell cost when positive.
	EnergyCost int `json:"energyCost,omitempty"`
}

func cloneEffectPtr(e *Effect) *Effect {
	if e == nil {
		return nil
	}
	c := e.Clone()
	return &c
}

// Clone returns a deep copy of the tool.
func (t Tool) Clone() Tool {
	t.Effect = cloneEffectPtr(t.Effect)
	return t
}

// Clone returns a deep copy of the spell.
func (s Spell) Clone() Spell {
	s.Effect = cloneEffectPtr(s.Effect)
	return s
}
