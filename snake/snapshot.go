package snake

// Snapshot is a value copy of the externally observable simulation
// state. Two simulations built with equal configurations and fed equal
// input scripts produce equal snapshot streams.
type Snapshot struct {
	Ticks     uint64
	State     State
	Cause     DeathCause
	Head      Point
	Direction Direction
	Fruit     Point
	Body      []Point
	Score     int
}

// Snapshot captures the current state.
func (s *Simulation) Snapshot() Snapshot {
	return Snapshot{
		Ticks:     s.ticks,
		State:     s.state,
		Cause:     s.cause,
		Head:      s.head,
		Direction: s.dir,
		Fruit:     s.fruit,
		Body:      s.Body(),
		Score:     s.Score(),
	}
}
