package engine

import (
	"strconv"

	"github.com/ericogr/chimera-battle/internal/game"
)

// DisplayName is the name used for a creature in log lines.
func DisplayName(c game.Creature) string {
	name := c.SpeciesName
	if name == "" {
		name = "Creature"
	}
	if c.Form > 0 {
		name += " (form " + strconv.Itoa(c.Form) + ")"
	}
	return name
}

// RemoveDefeated splits a field into survivors and the ids of creatures
// whose health reached zero. Order of survivors is preserved.
func RemoveDefeated(field []game.Creature) ([]game.Creature, []game.Creature) {
	alive := make([]game.Creature, 0, len(field))
	var fallen []game.Creature
	for _, c := range field {
		if c.Alive() {
			alive = append(alive, c)
			continue
		}
		fallen = append(fallen, c)
	}
	return alive, fallen
}
