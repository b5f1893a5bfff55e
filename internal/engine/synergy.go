package engine

import (
	"math"
	"sort"
	"strconv"

	"github.com/ericogr/chimera-battle/internal/game"
	"github.com/ericogr/chimera-battle/internal/keys"
)

// ComputeSynergies evaluates every synergy rule over a field. Rules read
// the working stats, never the synergy-scaled ones, so the result depends
// on field membership and base values only. Output order is stable.
func ComputeSynergies(field []game.Creature, bal game.Balance) []game.Synergy {
	if len(field) == 0 {
		return nil
	}
	b := bal.Synergy
	var out []game.Synergy
	out = append(out, speciesSynergies(field, b)...)
	if s, ok := statPairSynergy(field, b); ok {
		out = append(out, s)
	}
	if s, ok := legendarySynergy(field, b); ok {
		out = append(out, s)
	}
	if s, ok := balancedTeamSynergy(field, b); ok {
		out = append(out, s)
	}
	if s, ok := fullFieldSynergy(field, bal.MaxFieldSize, b); ok {
		out = append(out, s)
	}
	if s, ok := formProtectionSynergy(field, b); ok {
		out = append(out, s)
	}
	return out
}

// ApplySynergies returns a copy of the field whose effective stats are the
// working stats scaled by the sum of the bonuses that include each
// creature. Bonuses stack additively; max health and energy cost are never
// scaled.
func ApplySynergies(field []game.Creature, synergies []game.Synergy) []game.Creature {
	out := game.CloneCreatures(field)
	for i := range out {
		c := &out[i]
		pct := map[string]float64{}
		for _, s := range synergies {
			if !contains(s.Participants, c.ID) {
				continue
			}
			for _, stat := range s.Stats {
				pct[stat] += s.Bonus
			}
		}
		c.ResetEffective()
		for _, stat := range game.CombatStats {
			p := pct[stat]
			if p == 0 {
				continue
			}
			base := c.Stats.Get(stat)
			c.BattleStats.Set(stat, base+int(math.Floor(float64(base)*p)))
		}
	}
	return out
}

// RefreshField recomputes the synergies of a field and returns the field
// with its effective stats rebuilt from them.
func RefreshField(field []game.Creature, bal game.Balance) ([]game.Creature, []game.Synergy) {
	syn := ComputeSynergies(field, bal)
	return ApplySynergies(field, syn), syn
}

func speciesSynergies(field []game.Creature, b game.SynergyBonuses) []game.Synergy {
	need := b.SpeciesMatchMin
	if need < 2 {
		need = 2
	}
	groups := map[string][]string{}
	names := map[string]string{}
	for _, c := range field {
		k := keys.SpeciesKey(c.SpeciesName)
		if k == "" {
			continue
		}
		groups[k] = append(groups[k], c.ID)
		if _, ok := names[k]; !ok {
			names[k] = c.SpeciesName
		}
	}
	ks := make([]string, 0, len(groups))
	for k, members := range groups {
		if len(members) >= need {
			ks = append(ks, k)
		}
	}
	sort.Strings(ks)
	out := make([]game.Synergy, 0, len(ks))
	for _, k := range ks {
		members := groups[k]
		out = append(out, game.Synergy{
			Type:         game.SynergySpeciesMatch,
			Name:         names[k] + " Pack x" + strconv.Itoa(len(members)),
			Bonus:        b.SpeciesMatch * float64(len(members)-1),
			Stats:        append([]string(nil), game.CombatStats...),
			Participants: members,
		})
	}
	return out
}

// statPairSynergy triggers when the field holds both a physical and a
// magical attacker; all such attackers share the offensive bonus.
func statPairSynergy(field []game.Creature, b game.SynergyBonuses) (game.Synergy, bool) {
	var phys, mag []string
	for _, c := range field {
		switch {
		case c.Stats.PhysicalAttack > c.Stats.MagicalAttack:
			phys = append(phys, c.ID)
		case c.Stats.MagicalAttack > c.Stats.PhysicalAttack:
			mag = append(mag, c.ID)
		}
	}
	if len(phys) == 0 || len(mag) == 0 || b.StatPair <= 0 {
		return game.Synergy{}, false
	}
	return game.Synergy{
		Type:         game.SynergyStatPair,
		Name:         "Might and Magic",
		Bonus:        b.StatPair,
		Stats:        append([]string(nil), game.OffensiveStats...),
		Participants: inFieldOrder(field, append(phys, mag...)),
	}, true
}

func legendarySynergy(field []game.Creature, b game.SynergyBonuses) (game.Synergy, bool) {
	if b.LegendaryPresence <= 0 {
		return game.Synergy{}, false
	}
	for _, c := range field {
		if c.Rarity == game.RarityLegendary {
			return game.Synergy{
				Type:         game.SynergyLegendaryPresence,
				Name:         "Legendary Presence",
				Bonus:        b.LegendaryPresence,
				Stats:        append([]string(nil), game.CombatStats...),
				Participants: ids(field),
			}, true
		}
	}
	return game.Synergy{}, false
}

// balancedTeamSynergy needs enough members covering a physical attacker, a
// magical attacker and a defender (defense above attack).
func balancedTeamSynergy(field []game.Creature, b game.SynergyBonuses) (game.Synergy, bool) {
	need := b.BalancedTeamMin
	if need < 3 {
		need = 3
	}
	if len(field) < need || b.BalancedTeam <= 0 {
		return game.Synergy{}, false
	}
	var phys, mag, tank bool
	for _, c := range field {
		s := c.Stats
		if s.PhysicalDefense+s.MagicalDefense > s.PhysicalAttack+s.MagicalAttack {
			tank = true
			continue
		}
		if s.MagicalAttack > s.PhysicalAttack {
			mag = true
		} else {
			phys = true
		}
	}
	if !phys || !mag || !tank {
		return game.Synergy{}, false
	}
	return game.Synergy{
		Type:         game.SynergyBalancedTeam,
		Name:         "Balanced Team",
		Bonus:        b.BalancedTeam,
		Stats:        append([]string(nil), game.CombatStats...),
		Participants: ids(field),
	}, true
}

func fullFieldSynergy(field []game.Creature, maxField int, b game.SynergyBonuses) (game.Synergy, bool) {
	if maxField <= 0 || len(field) < maxField || b.FullField <= 0 {
		return game.Synergy{}, false
	}
	return game.Synergy{
		Type:         game.SynergyFullField,
		Name:         "Full Field",
		Bonus:        b.FullField,
		Stats:        append([]string(nil), game.CombatStats...),
		Participants: ids(field),
	}, true
}

// formProtectionSynergy grants defense when every member has a distinct form.
func formProtectionSynergy(field []game.Creature, b game.SynergyBonuses) (game.Synergy, bool) {
	if len(field) < 2 || b.FormProtection <= 0 {
		return game.Synergy{}, false
	}
	seen := map[int]bool{}
	for _, c := range field {
		if seen[c.Form] {
			return game.Synergy{}, false
		}
		seen[c.Form] = true
	}
	return game.Synergy{
		Type:         game.SynergyFormProtection,
		Name:         "Form Protection",
		Bonus:        b.FormProtection,
		Stats:        append([]string(nil), game.DefensiveStats...),
		Participants: ids(field),
	}, true
}

func ids(field []game.Creature) []string {
	out := make([]string, len(field))
	for i := range field {
		out[i] = field[i].ID
	}
	return out
}

func inFieldOrder(field []game.Creature, members []string) []string {
	out := make([]string, 0, len(members))
	for _, c := range field {
		if contains(members, c.ID) {
			out = append(out, c.ID)
		}
	}
	return out
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
