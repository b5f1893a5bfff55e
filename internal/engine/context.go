package engine

import (
	"math/rand/v2"
	"strings"

	"github.com/ericogr/chimera-battle/internal/game"
)

// Roller supplies uniform values in [0,1).
type Roller interface {
	Float64() float64
}

type fixedRoller float64

func (f fixedRoller) Float64() float64 { return float64(f) }

// NoCrit is a roller that never triggers a critical hit. Estimates and
// planner simulations use it.
var NoCrit Roller = fixedRoller(1)

// SeededRoller draws from a PCG stream keyed by the battle seed. Cursor is
// advanced on every draw so a persisted (seed, cursor) pair replays the
// same sequence.
type SeededRoller struct {
	Seed   int64
	Cursor *uint64
}

func (r SeededRoller) Float64() float64 {
	src := rand.New(rand.NewPCG(uint64(r.Seed), *r.Cursor))
	*r.Cursor++
	return src.Float64()
}

// Env is what a resolver needs besides the creatures themselves.
type Env struct {
	Turn       int
	Balance    game.Balance
	Difficulty game.DifficultySettings
	Roll       Roller
}

func (e Env) roll() float64 {
	if e.Roll == nil {
		return 1
	}
	return e.Roll.Float64()
}

// --- Summary helper ----------------------------------------------------
type summary struct {
	parts []string
}

func (s *summary) add(msg string) { s.parts = append(s.parts, msg) }

func (s *summary) addIf(cond bool, msg string) {
	if cond {
		s.add(msg)
	}
}

func (s *summary) join(sep string) string { return strings.Join(s.parts, sep) }
