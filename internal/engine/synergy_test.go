package engine

import (
	"reflect"
	"testing"

	"pgregory.net/rapid"

	"github.com/ericogr/chimera-battle/internal/game"
)

func typesOf(syn []game.Synergy) []game.SynergyType {
	out := make([]game.SynergyType, 0, len(syn))
	for _, s := range syn {
		out = append(out, s.Type)
	}
	return out
}

func hasType(syn []game.Synergy, typ game.SynergyType) bool {
	for _, s := range syn {
		if s.Type == typ {
			return true
		}
	}
	return false
}

func TestComputeSynergies_EmptyField(t *testing.T) {
	if syn := ComputeSynergies(nil, game.DefaultBalance()); len(syn) != 0 {
		t.Fatalf("expected no synergies, got %v", syn)
	}
}

func TestComputeSynergies_SpeciesAndStatPair(t *testing.T) {
	bal := game.DefaultBalance()
	a := creature("a", 10, 0, 2, 2, 20)
	a.SpeciesName = "Wolf"
	b := creature("b", 0, 10, 2, 2, 20)
	b.SpeciesName = " wolf "
	b.Form = 1

	syn := ComputeSynergies([]game.Creature{a, b}, bal)
	want := []game.SynergyType{game.SynergySpeciesMatch, game.SynergyStatPair, game.SynergyFormProtection}
	if got := typesOf(syn); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if !reflect.DeepEqual(syn[0].Participants, []string{"a", "b"}) {
		t.Fatalf("unexpected participants %v", syn[0].Participants)
	}
	if d := syn[0].Bonus - 0.1; d > 1e-9 || d < -1e-9 {
		t.Fatalf("expected bonus 0.1, got %v", syn[0].Bonus)
	}
}

func TestComputeSynergies_LegendaryAndFullField(t *testing.T) {
	bal := game.DefaultBalance()
	field := make([]game.Creature, 0, bal.MaxFieldSize)
	for i := 0; i < bal.MaxFieldSize; i++ {
		c := creature(string(rune('a'+i)), 5, 0, 1, 1, 10)
		c.SpeciesName = string(rune('A' + i))
		field = append(field, c)
	}
	field[0].Rarity = game.RarityLegendary
	syn := ComputeSynergies(field, bal)
	if !hasType(syn, game.SynergyLegendaryPresence) || !hasType(syn, game.SynergyFullField) {
		t.Fatalf("expected legendary and full-field synergies, got %v", typesOf(syn))
	}
	if hasType(syn, game.SynergyFormProtection) {
		t.Fatalf("identical forms must not grant form protection")
	}
}

func TestApplySynergies_AdditiveNotCompounding(t *testing.T) {
	c := creature("a", 100, 0, 50, 0, 40)
	syn := []game.Synergy{
		{Type: game.SynergyLegendaryPresence, Bonus: 0.1, Stats: game.CombatStats, Participants: []string{"a"}},
		{Type: game.SynergyStatPair, Bonus: 0.2, Stats: game.OffensiveStats, Participants: []string{"a"}},
		{Type: game.SynergyFullField, Bonus: 0.5, Stats: game.CombatStats, Participants: []string{"other"}},
	}
	out := ApplySynergies([]game.Creature{c}, syn)
	if len(out) != 1 {
		t.Fatalf("expected one creature, got %d", len(out))
	}
	bs := out[0].BattleStats
	if bs.PhysicalAttack != 130 || bs.PhysicalDefense != 55 || bs.MaxHealth != 40 {
		t.Fatalf("unexpected effective stats %+v", bs)
	}
	if out[0].Stats.PhysicalAttack != 100 {
		t.Fatalf("working stats must not be scaled")
	}

	// applying twice must not compound
	if again := ApplySynergies(out, syn); !reflect.DeepEqual(out, again) {
		t.Fatalf("synergies compounded on reapplication")
	}
}

func TestRefreshField_PropertyNoStaleness(t *testing.T) {
	bal := game.DefaultBalance()
	species := []string{"Wolf", "Raven", "Lion"}
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, bal.MaxFieldSize).Draw(t, "n")
		field := make([]game.Creature, 0, n)
		for i := 0; i < n; i++ {
			c := creature(string(rune('a'+i)), rapid.IntRange(0, 30).Draw(t, "phys"), rapid.IntRange(0, 30).Draw(t, "mag"),
				rapid.IntRange(0, 30).Draw(t, "pdef"), rapid.IntRange(0, 30).Draw(t, "mdef"), rapid.IntRange(1, 50).Draw(t, "hp"))
			c.SpeciesName = rapid.SampledFrom(species).Draw(t, "species")
			c.Form = rapid.IntRange(0, 3).Draw(t, "form")
			field = append(field, c)
		}
		refreshed, syn := RefreshField(field, bal)
		if len(syn) != len(ComputeSynergies(refreshed, bal)) {
			t.Fatalf("synergies changed after refresh")
		}
		for i := range refreshed {
			for _, stat := range game.CombatStats {
				if refreshed[i].BattleStats.Get(stat) < refreshed[i].Stats.Get(stat) {
					t.Fatalf("effective %s below working value", stat)
				}
			}
			if refreshed[i].BattleStats.MaxHealth != refreshed[i].Stats.MaxHealth {
				t.Fatalf("max health must not be scaled")
			}
		}
	})
}
