package snake

// State is the lifecycle state of a simulation. The transition
// Running -> GameOver is terminal; a finished simulation is discarded
// and a fresh one built for the next run.
type State uint8

const (
	StateRunning State = iota
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateGameOver:
		return "game over"
	}
	return "unknown"
}

// DeathCause records what ended a run.
type DeathCause uint8

const (
	CauseNone DeathCause = iota
	CauseWallCollision
	CauseSelfCollision
)

func (c DeathCause) String() string {
	switch c {
	case CauseWallCollision:
		return "wall collision"
	case CauseSelfCollision:
		return "self collision"
	}
	return "none"
}
