package snake_test

import (
	"testing"

	"github.com/plus3/serpent/snake"
)

// scriptRand feeds fruit placement a fixed sequence of rolls, a column
// offset then a row offset per attempt, both measured from the negative
// half-extent. An exhausted script rolls 0.
type scriptRand []int

func (r *scriptRand) Intn(n int) int {
	if len(*r) == 0 {
		return 0
	}
	v := (*r)[0] % n
	*r = (*r)[1:]
	return v
}

// constRand always rolls the same value, clamped to the requested range.
type constRand struct {
	v int
}

func (r constRand) Intn(n int) int {
	if r.v >= n {
		return n - 1
	}
	return r.v
}

// newScriptedSim builds a simulation on a square field with cell size 1
// and fruit positions scripted as (column, row) roll pairs.
func newScriptedSim(t *testing.T, half int, rolls ...int) *snake.Simulation {
	t.Helper()

	script := scriptRand(rolls)
	cfg := snake.Config{
		HalfWidth:  half,
		HalfHeight: half,
		CellSize:   1,
		TickRate:   5,
		Rand:       &script,
	}
	sim, err := snake.New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return sim
}
