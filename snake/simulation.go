package snake

import (
	"sync/atomic"

	"github.com/kamstrup/intmap"
)

// fruitPlacementAttempts bounds rejection sampling before the exact
// free-cell scan takes over.
const fruitPlacementAttempts = 64

// Simulation is the deterministic game core: grid geometry, snake body,
// movement and growth rules, collision detection, and fruit placement.
// It performs no I/O and never schedules itself; a driver calls Tick at
// whatever cadence it wants.
//
// Exactly one goroutine may call Tick and the read accessors.
// SetDirection is safe from any goroutine.
type Simulation struct {
	cfg Config
	rng Rand

	head  Point
	dir   Direction
	body  []Point
	fruit Point

	// pending holds the last direction submitted since the previous
	// tick, as an atomic word so input handlers never contend with
	// the tick goroutine.
	pending atomic.Int32

	ticks uint64
	state State
	cause DeathCause

	// occupied counts snake occupants per cell, keyed by packed cell
	// coordinates. Fruit placement rejects occupied cells in O(1).
	occupied *intmap.Map[uint64, int32]
}

// New builds a simulation from cfg. The head starts at the origin with
// no body and no direction; the fruit is placed immediately on a free
// cell.
func New(cfg Config) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Simulation{
		cfg:      cfg,
		rng:      cfg.newRand(),
		occupied: intmap.New[uint64, int32](256),
	}
	s.occupy(s.head)
	s.fruit = s.nextFruitPosition()
	return s, nil
}

// SetDirection records a directional input. Only the most recent call
// before a tick is honored; that tick consumes it. Safe to call from
// any goroutine at any frequency. NoDirection is ignored, and inputs
// submitted after game over are never consumed.
func (s *Simulation) SetDirection(d Direction) {
	if d == NoDirection {
		return
	}
	s.pending.Store(int32(d))
}

// Tick advances the simulation one step: consume the buffered input,
// move the head one cell, shift the body, detect collisions, and
// handle fruit pickup. Once the game is over Tick is a no-op.
func (s *Simulation) Tick() {
	if s.state == StateGameOver {
		return
	}

	if d := Direction(s.pending.Swap(0)); d != NoDirection {
		s.dir = d
	}

	step := s.dir.Delta().Scale(s.cfg.CellSize)
	prev := s.head
	s.head = s.head.Add(step)
	s.vacate(prev)
	s.occupy(s.head)

	// Follow the leader: each segment takes the position its
	// predecessor held before this tick. A segment landing on the new
	// head position is a self collision; the cell the tail vacates
	// this tick does not count as occupied.
	hitSelf := false
	for i := range s.body {
		s.vacate(s.body[i])
		s.body[i], prev = prev, s.body[i]
		s.occupy(s.body[i])
		if s.body[i] == s.head {
			hitSelf = true
		}
	}

	switch {
	case hitSelf:
		s.state = StateGameOver
		s.cause = CauseSelfCollision
	case !s.inBounds(s.head):
		s.state = StateGameOver
		s.cause = CauseWallCollision
	case s.head == s.fruit:
		// Grow before relocating so placement sees the new segment.
		s.grow(step)
		s.fruit = s.nextFruitPosition()
	}

	s.ticks++
}

// HeadPosition returns the head's world position.
func (s *Simulation) HeadPosition() Point { return s.head }

// Direction returns the direction consumed by the most recent tick.
func (s *Simulation) Direction() Direction { return s.dir }

// FruitPosition returns the fruit's world position.
func (s *Simulation) FruitPosition() Point { return s.fruit }

// Body returns a copy of the body segment positions, ordered from the
// segment behind the head to the tail.
func (s *Simulation) Body() []Point {
	if len(s.body) == 0 {
		return nil
	}
	out := make([]Point, len(s.body))
	copy(out, s.body)
	return out
}

// AppendBody appends the body segment positions to dst and returns the
// result. Render loops reuse dst to avoid per-frame allocations.
func (s *Simulation) AppendBody(dst []Point) []Point {
	return append(dst, s.body...)
}

// Score returns the number of fruits eaten, which equals the body
// segment count.
func (s *Simulation) Score() int { return len(s.body) }

// Ticks returns how many ticks the simulation has processed.
func (s *Simulation) Ticks() uint64 { return s.ticks }

// State returns the lifecycle state.
func (s *Simulation) State() State { return s.state }

// GameOver reports whether the simulation reached its terminal state.
func (s *Simulation) GameOver() bool { return s.state == StateGameOver }

// Cause returns what ended the run, or CauseNone while running.
func (s *Simulation) Cause() DeathCause { return s.cause }

// Config returns the configuration the simulation was built with.
func (s *Simulation) Config() Config { return s.cfg }

func (s *Simulation) inBounds(p Point) bool {
	return intAbs(p.X) <= s.cfg.HalfWidth*s.cfg.CellSize &&
		intAbs(p.Y) <= s.cfg.HalfHeight*s.cfg.CellSize
}

// grow appends one segment one cell behind the tail, extrapolated along
// the current movement direction. The new segment may land on another
// segment or outside the field; it untangles as the body follows the
// head on subsequent ticks.
func (s *Simulation) grow(step Point) {
	tail := s.head
	if len(s.body) > 0 {
		tail = s.body[len(s.body)-1]
	}
	seg := tail.Sub(step)
	s.body = append(s.body, seg)
	s.occupy(seg)
}

// nextFruitPosition picks a uniformly random cell not occupied by the
// head or a body segment. It samples the field a bounded number of
// times, then falls back to an exact scan of the free cells. With no
// free cell left the fruit stays where it is.
func (s *Simulation) nextFruitPosition() Point {
	w, h := s.cfg.CellCount()
	for i := 0; i < fruitPlacementAttempts; i++ {
		p := Point{
			X: (s.rng.Intn(w) - s.cfg.HalfWidth) * s.cfg.CellSize,
			Y: (s.rng.Intn(h) - s.cfg.HalfHeight) * s.cfg.CellSize,
		}
		if !s.isOccupied(p) {
			return p
		}
	}

	free := make([]Point, 0, w*h)
	for cy := -s.cfg.HalfHeight; cy <= s.cfg.HalfHeight; cy++ {
		for cx := -s.cfg.HalfWidth; cx <= s.cfg.HalfWidth; cx++ {
			p := Point{X: cx * s.cfg.CellSize, Y: cy * s.cfg.CellSize}
			if !s.isOccupied(p) {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		return s.fruit
	}
	return free[s.rng.Intn(len(free))]
}

// cellKey packs a cell coordinate pair into a single map key, the
// column in the upper 32 bits and the row in the lower 32.
func (s *Simulation) cellKey(p Point) uint64 {
	cx := uint32(int32(p.X / s.cfg.CellSize))
	cy := uint32(int32(p.Y / s.cfg.CellSize))
	return uint64(cx)<<32 | uint64(cy)
}

func (s *Simulation) occupy(p Point) {
	k := s.cellKey(p)
	n, _ := s.occupied.Get(k)
	s.occupied.Put(k, n+1)
}

func (s *Simulation) vacate(p Point) {
	k := s.cellKey(p)
	n, _ := s.occupied.Get(k)
	if n <= 1 {
		s.occupied.Del(k)
		return
	}
	s.occupied.Put(k, n-1)
}

func (s *Simulation) isOccupied(p Point) bool {
	_, ok := s.occupied.Get(s.cellKey(p))
	return ok
}
