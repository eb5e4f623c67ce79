package snake

import (
	"context"
	"time"
)

// TickStats provides execution statistics for a runner's ticks.
type TickStats struct {
	TickCount     int64
	MinDuration   time.Duration
	MaxDuration   time.Duration
	AvgDuration   time.Duration
	LastDuration  time.Duration
	TotalDuration time.Duration
}

// Runner drives a Simulation at a fixed cadence on behalf of a host.
// It owns the tick goroutine for the simulation it wraps.
type Runner struct {
	sim       *Simulation
	afterTick []func(*Simulation)

	tickCount     int64
	minDuration   time.Duration
	maxDuration   time.Duration
	lastDuration  time.Duration
	totalDuration time.Duration
}

// NewRunner creates a runner for the given simulation.
func NewRunner(sim *Simulation) *Runner {
	return &Runner{
		sim:         sim,
		minDuration: time.Duration(1<<63 - 1),
	}
}

// Simulation returns the simulation the runner drives.
func (r *Runner) Simulation() *Simulation {
	return r.sim
}

// AfterTick registers an observer invoked after every tick, on the tick
// goroutine. Hosts hang rendering, recording, and bot logic here.
func (r *Runner) AfterTick(fn func(*Simulation)) {
	r.afterTick = append(r.afterTick, fn)
}

// Step executes one tick and its observers, recording timing stats.
// Hosts with their own frame loop call Step directly instead of Run.
func (r *Runner) Step() {
	start := time.Now()
	r.sim.Tick()
	duration := time.Since(start)

	r.tickCount++
	r.lastDuration = duration
	r.totalDuration += duration

	if duration < r.minDuration {
		r.minDuration = duration
	}
	if duration > r.maxDuration {
		r.maxDuration = duration
	}

	for _, fn := range r.afterTick {
		fn(r.sim)
	}
}

// Run ticks the simulation at the given interval until the context is
// cancelled or the simulation reaches game over.
func (r *Runner) Run(ctx context.Context, interval time.Duration) {
	clock := NewTickerClock(interval)
	defer clock.Stop()
	r.RunClock(ctx, clock)
}

// RunClock ticks the simulation on every clock signal until the context
// is cancelled or the simulation reaches game over. The caller keeps
// ownership of the clock and stops it afterwards.
func (r *Runner) RunClock(ctx context.Context, clock Clock) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-clock.C():
			r.Step()
			if r.sim.GameOver() {
				return
			}
		}
	}
}

// Stats returns statistics about tick execution.
func (r *Runner) Stats() TickStats {
	avg := time.Duration(0)
	if r.tickCount > 0 {
		avg = r.totalDuration / time.Duration(r.tickCount)
	}
	return TickStats{
		TickCount:     r.tickCount,
		MinDuration:   r.minDuration,
		MaxDuration:   r.maxDuration,
		AvgDuration:   avg,
		LastDuration:  r.lastDuration,
		TotalDuration: r.totalDuration,
	}
}
