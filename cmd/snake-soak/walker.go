package main

import (
	"math/rand"
	"time"

	"github.com/plus3/serpent/records"
	"github.com/plus3/serpent/snake"
)

const policyName = "safe-random"

// gameResult captures one finished game.
type gameResult struct {
	Seed     int64
	Config   snake.Config
	Ticks    uint64
	Score    int
	Cause    snake.DeathCause
	GameOver bool
	Started  time.Time
	Elapsed  time.Duration
}

func (g *gameResult) record() *records.Run {
	return &records.Run{
		Seed:       g.Seed,
		HalfWidth:  g.Config.HalfWidth,
		HalfHeight: g.Config.HalfHeight,
		CellSize:   g.Config.CellSize,
		TickRate:   g.Config.TickRate,
		Ticks:      g.Ticks,
		Score:      g.Score,
		Cause:      g.Cause.String(),
		Policy:     policyName,
		StartedAt:  g.Started,
		FinishedAt: g.Started.Add(g.Elapsed),
	}
}

// playGame runs one simulation under the safe-random walker until it dies
// or the tick limit cuts it off.
func playGame(seed int64, halfWidth, halfHeight, maxTicks int) (*gameResult, error) {
	cfg := snake.DefaultConfig()
	cfg.HalfWidth = halfWidth
	cfg.HalfHeight = halfHeight
	cfg.Seed = seed

	sim, err := snake.New(cfg)
	if err != nil {
		return nil, err
	}

	w := newWalker(seed)
	started := time.Now()

	for t := 0; t < maxTicks && !sim.GameOver(); t++ {
		if d := w.choose(sim); d != snake.NoDirection {
			sim.SetDirection(d)
		}
		sim.Tick()
	}

	return &gameResult{
		Seed:     seed,
		Config:   cfg,
		Ticks:    sim.Ticks(),
		Score:    sim.Score(),
		Cause:    sim.Cause(),
		GameOver: sim.GameOver(),
		Started:  started,
		Elapsed:  time.Since(started),
	}, nil
}

// walker is the safe-random policy: each tick it picks a uniformly random
// direction among those that step neither into a wall nor into a cell the
// snake occupies. Stepping onto the tail cell would actually survive, but
// the walker does not model the vacate and treats it as occupied.
type walker struct {
	rng      *rand.Rand
	occupied map[snake.Point]bool
	body     []snake.Point
	order    [4]snake.Direction
}

func newWalker(seed int64) *walker {
	return &walker{
		rng:      rand.New(rand.NewSource(seed)),
		occupied: make(map[snake.Point]bool),
		order:    [4]snake.Direction{snake.Up, snake.Down, snake.Left, snake.Right},
	}
}

// choose returns a safe direction for the next tick, or NoDirection when
// the walker is boxed in and holding course is all that is left.
func (w *walker) choose(sim *snake.Simulation) snake.Direction {
	cfg := sim.Config()
	head := sim.HeadPosition()

	for p := range w.occupied {
		delete(w.occupied, p)
	}
	w.body = sim.AppendBody(w.body[:0])
	for _, p := range w.body {
		w.occupied[p] = true
	}

	w.rng.Shuffle(len(w.order), func(i, j int) {
		w.order[i], w.order[j] = w.order[j], w.order[i]
	})

	min, max := cfg.WorldBounds()
	for _, d := range w.order {
		next := head.Add(d.Delta().Scale(cfg.CellSize))
		if next.X < min.X || next.X > max.X || next.Y < min.Y || next.Y > max.Y {
			continue
		}
		if w.occupied[next] {
			continue
		}
		return d
	}

	return snake.NoDirection
}
