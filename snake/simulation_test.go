package snake_test

import (
	"fmt"
	"testing"

	"github.com/plus3/serpent/snake"
	"github.com/stretchr/testify/assert"
)

func TestNewValidatesConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*snake.Config)
	}{
		{"zero half width", func(c *snake.Config) { c.HalfWidth = 0 }},
		{"negative half height", func(c *snake.Config) { c.HalfHeight = -3 }},
		{"zero cell size", func(c *snake.Config) { c.CellSize = 0 }},
		{"zero tick rate", func(c *snake.Config) { c.TickRate = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := snake.DefaultConfig()
			tt.mutate(&cfg)

			sim, err := snake.New(cfg)
			assert.Nil(t, sim)
			assert.ErrorIs(t, err, snake.ErrInvalidConfig)
		})
	}
}

func TestNewInitialState(t *testing.T) {
	cfg := snake.DefaultConfig()
	cfg.Seed = 1

	sim, err := snake.New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	assert.Equal(t, snake.Point{}, sim.HeadPosition())
	assert.Equal(t, snake.NoDirection, sim.Direction())
	assert.Empty(t, sim.Body())
	assert.Equal(t, snake.StateRunning, sim.State())
	assert.False(t, sim.GameOver())
	assert.Equal(t, snake.CauseNone, sim.Cause())
	assert.Equal(t, 0, sim.Score())
	assert.Equal(t, uint64(0), sim.Ticks())

	// The fruit starts on a free in-bounds cell, never under the head.
	assert.NotEqual(t, sim.HeadPosition(), sim.FruitPosition())
	assertInBounds(t, cfg, sim.FruitPosition())
}

func TestTickWithoutDirection(t *testing.T) {
	sim := newScriptedSim(t, 2, 3, 3) // fruit at (1, 1)

	sim.Tick()

	assert.Equal(t, snake.Point{}, sim.HeadPosition())
	assert.False(t, sim.GameOver())
	assert.Empty(t, sim.Body())
	assert.Equal(t, uint64(1), sim.Ticks())
}

func TestMovementAndWallDeath(t *testing.T) {
	sim := newScriptedSim(t, 2, 3, 3) // fruit at (1, 1), off the walked row

	sim.Tick() // no input yet, head stays at the origin

	sim.SetDirection(snake.Right)
	sim.Tick()
	sim.Tick()

	// The boundary cell itself is inside the field.
	assert.Equal(t, snake.Point{X: 2, Y: 0}, sim.HeadPosition())
	assert.False(t, sim.GameOver())

	sim.Tick()

	assert.True(t, sim.GameOver())
	assert.Equal(t, snake.StateGameOver, sim.State())
	assert.Equal(t, snake.CauseWallCollision, sim.Cause())
	assert.Equal(t, snake.Point{X: 3, Y: 0}, sim.HeadPosition())
	assert.Equal(t, uint64(4), sim.Ticks())
}

func TestFruitPickupGrowsBody(t *testing.T) {
	sim := newScriptedSim(t, 2,
		3, 2, // fruit at (1, 0)
		0, 0, // relocation to (-2, -2)
	)

	sim.SetDirection(snake.Right)
	sim.Tick()

	assert.Equal(t, snake.Point{X: 1, Y: 0}, sim.HeadPosition())
	assert.Equal(t, 1, sim.Score())
	assert.Equal(t, []snake.Point{{X: 0, Y: 0}}, sim.Body())
	assert.Equal(t, snake.Point{X: -2, Y: -2}, sim.FruitPosition())
	assert.False(t, sim.GameOver())
}

func TestGrowthExtrapolatesAlongCurrentDirection(t *testing.T) {
	sim := newScriptedSim(t, 3,
		4, 3, // fruit at (1, 0)
		4, 4, // relocation to (1, 1)
		3, 5, // relocation to (0, 2)
	)

	sim.SetDirection(snake.Right)
	sim.Tick()
	assert.Equal(t, []snake.Point{{X: 0, Y: 0}}, sim.Body())

	// Turn upward onto the fruit. The new segment extrapolates one cell
	// behind the tail along the direction of travel, not back onto the
	// cell the tail came from.
	sim.SetDirection(snake.Up)
	sim.Tick()

	assert.Equal(t, snake.Point{X: 1, Y: 1}, sim.HeadPosition())
	assert.Equal(t, []snake.Point{{X: 1, Y: 0}, {X: 1, Y: -1}}, sim.Body())
	assert.Equal(t, 2, sim.Score())
	assert.False(t, sim.GameOver())
}

func TestReversalWithSingleSegmentSurvives(t *testing.T) {
	sim := newScriptedSim(t, 3,
		4, 3, // fruit at (1, 0)
		0, 0, // relocation to (-3, -3)
	)

	sim.SetDirection(snake.Right)
	sim.Tick() // pickup, body grows to one segment

	// Head and its only segment swap cells; positions are compared
	// after the shift, so this is not a collision.
	sim.SetDirection(snake.Left)
	sim.Tick()

	assert.False(t, sim.GameOver())
	assert.Equal(t, snake.Point{X: 0, Y: 0}, sim.HeadPosition())
	assert.Equal(t, []snake.Point{{X: 1, Y: 0}}, sim.Body())
}

func TestReversalSelfCollision(t *testing.T) {
	sim := newScriptedSim(t, 3,
		4, 3, // fruit at (1, 0)
		5, 3, // relocation to (2, 0)
		3, 5, // relocation to (0, 2)
	)

	sim.SetDirection(snake.Right)
	sim.Tick() // pickup at (1, 0)
	sim.Tick() // pickup at (2, 0)

	assert.Equal(t, 2, sim.Score())
	assert.Equal(t, []snake.Point{{X: 1, Y: 0}, {X: 0, Y: 0}}, sim.Body())

	// Reversing with two segments drives the head onto the cell the
	// second segment shifts into.
	sim.SetDirection(snake.Left)
	sim.Tick()

	assert.True(t, sim.GameOver())
	assert.Equal(t, snake.CauseSelfCollision, sim.Cause())
	assert.Equal(t, snake.Point{X: 1, Y: 0}, sim.HeadPosition())
	assert.Equal(t, []snake.Point{{X: 2, Y: 0}, {X: 1, Y: 0}}, sim.Body())
	assert.Equal(t, uint64(3), sim.Ticks())
}

func TestTickAfterGameOverIsNoOp(t *testing.T) {
	sim := newScriptedSim(t, 1, 0, 0) // fruit at (-1, -1)

	sim.SetDirection(snake.Right)
	sim.Tick()
	sim.Tick()
	if !sim.GameOver() {
		t.Fatalf("expected wall death, head at %v", sim.HeadPosition())
	}

	before := sim.Snapshot()

	sim.SetDirection(snake.Up)
	sim.Tick()
	sim.Tick()

	assert.Equal(t, before, sim.Snapshot())
	assert.Equal(t, uint64(2), sim.Ticks())
}

func TestLastDirectionWins(t *testing.T) {
	sim := newScriptedSim(t, 3, 0, 6) // fruit at (-3, 3)

	sim.SetDirection(snake.Up)
	sim.SetDirection(snake.Right)
	sim.Tick()

	assert.Equal(t, snake.Point{X: 1, Y: 0}, sim.HeadPosition())
	assert.Equal(t, snake.Right, sim.Direction())

	// With no new input the consumed direction keeps applying.
	sim.Tick()
	assert.Equal(t, snake.Point{X: 2, Y: 0}, sim.HeadPosition())
}

func TestSetDirectionIgnoresNoDirection(t *testing.T) {
	sim := newScriptedSim(t, 3, 0, 6) // fruit at (-3, 3)

	sim.SetDirection(snake.Right)
	sim.SetDirection(snake.NoDirection)
	sim.Tick()

	assert.Equal(t, snake.Right, sim.Direction())
	assert.Equal(t, snake.Point{X: 1, Y: 0}, sim.HeadPosition())
}

func TestFruitResamplesOccupiedCells(t *testing.T) {
	// First roll pair lands on the head's cell and must be rejected.
	sim := newScriptedSim(t, 2,
		2, 2, // (0, 0), occupied by the head
		3, 2, // (1, 0), free
	)

	assert.Equal(t, snake.Point{X: 1, Y: 0}, sim.FruitPosition())
}

func TestFruitRelocationAvoidsGrownSegment(t *testing.T) {
	// On a pickup tick the new tail segment appears on the cell the head
	// just vacated. The relocation roll targets exactly that cell and
	// must be rejected.
	sim := newScriptedSim(t, 2,
		3, 2, // fruit at (1, 0)
		2, 2, // relocation roll hits (0, 0), the grown segment's cell
		4, 2, // next roll, (2, 0), is free
	)

	sim.SetDirection(snake.Right)
	sim.Tick()

	assert.Equal(t, 1, sim.Score())
	assert.Equal(t, []snake.Point{{X: 0, Y: 0}}, sim.Body())
	assert.Equal(t, snake.Point{X: 2, Y: 0}, sim.FruitPosition())
	assert.False(t, sim.GameOver())
}

func TestFruitPlacementFallbackScan(t *testing.T) {
	// A source stuck on the head's cell exhausts the sampling attempts;
	// placement then picks uniformly from an exact scan of free cells.
	cfg := snake.Config{
		HalfWidth:  1,
		HalfHeight: 1,
		CellSize:   1,
		TickRate:   5,
		Rand:       constRand{v: 1},
	}
	sim, err := snake.New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	assert.Equal(t, snake.Point{X: 0, Y: -1}, sim.FruitPosition())
}

func TestBodyReturnsCopy(t *testing.T) {
	sim := newScriptedSim(t, 2,
		3, 2, // fruit at (1, 0)
		0, 0, // relocation to (-2, -2)
	)
	sim.SetDirection(snake.Right)
	sim.Tick()

	body := sim.Body()
	body[0] = snake.Point{X: 99, Y: 99}

	assert.Equal(t, []snake.Point{{X: 0, Y: 0}}, sim.Body())
}

func TestAppendBodyReusesBuffer(t *testing.T) {
	sim := newScriptedSim(t, 2,
		3, 2, // fruit at (1, 0)
		0, 0, // relocation to (-2, -2)
	)
	sim.SetDirection(snake.Right)
	sim.Tick()

	buf := make([]snake.Point, 0, 8)
	got := sim.AppendBody(buf)

	assert.Equal(t, sim.Body(), got)
	assert.Equal(t, 8, cap(got))
}

// TestInvariantsUnderGreedyWalk drives full games with a fruit-chasing
// walker and checks the structural invariants on every tick: segments
// trail their predecessors, the head stays in bounds while alive, the
// body grows by exactly one segment per pickup, a consumed fruit always
// relocates, and the fruit never rests on the snake.
func TestInvariantsUnderGreedyWalk(t *testing.T) {
	for _, seed := range []int64{1, 7, 42} {
		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			cfg := snake.DefaultConfig()
			cfg.Seed = seed

			sim, err := snake.New(cfg)
			if err != nil {
				t.Fatalf("New: %v", err)
			}

			for i := 0; i < 2000 && !sim.GameOver(); i++ {
				prevHead := sim.HeadPosition()
				prevFruit := sim.FruitPosition()
				prevBody := sim.Body()

				sim.SetDirection(chase(prevHead, prevFruit))
				sim.Tick()

				body := sim.Body()
				pickedUp := sim.HeadPosition() == prevFruit && !sim.GameOver()

				wantLen := len(prevBody)
				if pickedUp {
					wantLen++
				}
				if len(body) != wantLen {
					t.Fatalf("tick %d: body length %d, want %d", i, len(body), wantLen)
				}

				for k := 0; k < len(prevBody); k++ {
					want := prevHead
					if k > 0 {
						want = prevBody[k-1]
					}
					if body[k] != want {
						t.Fatalf("tick %d: segment %d at %v, want %v", i, k, body[k], want)
					}
				}

				if pickedUp {
					assert.NotEqual(t, prevFruit, sim.FruitPosition())
				}
				if !sim.GameOver() {
					assertInBounds(t, cfg, sim.HeadPosition())
					assertInBounds(t, cfg, sim.FruitPosition())
					assertFruitOffSnake(t, sim)
				}
			}

			if sim.GameOver() {
				assert.NotEqual(t, snake.CauseNone, sim.Cause())
			}
		})
	}
}

func TestDeterministicReplay(t *testing.T) {
	cfg := snake.DefaultConfig()
	cfg.Seed = 99

	a, err := snake.New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b, err := snake.New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for i := 0; i < 600; i++ {
		d := snake.Directions[(i/7)%len(snake.Directions)]
		a.SetDirection(d)
		b.SetDirection(d)
		a.Tick()
		b.Tick()

		if !assert.Equal(t, a.Snapshot(), b.Snapshot()) {
			t.Fatalf("streams diverged at tick %d", i)
		}
	}
}

// chase steers the head toward the fruit, horizontal axis first.
func chase(head, fruit snake.Point) snake.Direction {
	switch {
	case fruit.X > head.X:
		return snake.Right
	case fruit.X < head.X:
		return snake.Left
	case fruit.Y > head.Y:
		return snake.Up
	case fruit.Y < head.Y:
		return snake.Down
	}
	return snake.NoDirection
}

func assertInBounds(t *testing.T, cfg snake.Config, p snake.Point) {
	t.Helper()
	min, max := cfg.WorldBounds()
	if p.X < min.X || p.X > max.X || p.Y < min.Y || p.Y > max.Y {
		t.Fatalf("position %v outside bounds [%v, %v]", p, min, max)
	}
}

func assertFruitOffSnake(t *testing.T, sim *snake.Simulation) {
	t.Helper()
	fruit := sim.FruitPosition()
	if fruit == sim.HeadPosition() {
		t.Fatalf("fruit %v on the head", fruit)
	}
	for k, seg := range sim.Body() {
		if fruit == seg {
			t.Fatalf("fruit %v on body segment %d at %v", fruit, k, seg)
		}
	}
}
