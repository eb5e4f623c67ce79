package snake

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/rand"
)

// Rand is the source of randomness used for fruit placement. Any
// implementation with Intn semantics works; production code uses a
// seeded rand.Rand, tests may inject a scripted source.
type Rand interface {
	// Intn returns a uniform value in [0, n). Panics if n <= 0.
	Intn(n int) int
}

// ErrInvalidConfig wraps all configuration validation failures.
var ErrInvalidConfig = errors.New("invalid simulation config")

// Config describes the fixed parameters of a simulation. The playing
// field spans [-HalfWidth, +HalfWidth] x [-HalfHeight, +HalfHeight] in
// cells, with every position expressed in world units of CellSize per
// cell.
type Config struct {
	// HalfWidth and HalfHeight are the grid half-extents in cells.
	HalfWidth  int
	HalfHeight int

	// CellSize is the width of one cell in world units. Every legal
	// coordinate is a multiple of CellSize.
	CellSize int

	// TickRate is the intended simulation frequency in ticks per
	// second. The core never schedules itself; this is a hint for
	// drivers, exposed through TickInterval.
	TickRate int

	// Seed seeds the fruit placement RNG. Zero means derive a seed
	// from the wall clock at construction time.
	Seed int64

	// Rand overrides Seed with an explicit randomness source.
	Rand Rand
}

// DefaultConfig returns the reference parameters: a 21x21-cell field
// (half-extents of 10), 50 world units per cell, 5 ticks per second.
func DefaultConfig() Config {
	return Config{
		HalfWidth:  10,
		HalfHeight: 10,
		CellSize:   50,
		TickRate:   5,
	}
}

// Validate checks that the configuration describes a usable field.
func (c Config) Validate() error {
	if c.HalfWidth <= 0 {
		return fmt.Errorf("%w: half width must be positive, got %d", ErrInvalidConfig, c.HalfWidth)
	}
	if c.HalfHeight <= 0 {
		return fmt.Errorf("%w: half height must be positive, got %d", ErrInvalidConfig, c.HalfHeight)
	}
	if c.CellSize <= 0 {
		return fmt.Errorf("%w: cell size must be positive, got %d", ErrInvalidConfig, c.CellSize)
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("%w: tick rate must be positive, got %d", ErrInvalidConfig, c.TickRate)
	}
	return nil
}

// TickInterval converts TickRate to the duration between ticks.
func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// WorldBounds returns the inclusive world-unit extents of the field.
func (c Config) WorldBounds() (min, max Point) {
	min = Point{X: -c.HalfWidth * c.CellSize, Y: -c.HalfHeight * c.CellSize}
	max = Point{X: c.HalfWidth * c.CellSize, Y: c.HalfHeight * c.CellSize}
	return min, max
}

// CellCount returns the number of cells along each axis.
func (c Config) CellCount() (w, h int) {
	return 2*c.HalfWidth + 1, 2*c.HalfHeight + 1
}

func (c Config) newRand() Rand {
	if c.Rand != nil {
		return c.Rand
	}
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(uint64(seed)))
}
