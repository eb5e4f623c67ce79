package snake

// Direction is a cardinal movement direction. The zero value, NoDirection,
// means no input has been received yet and the snake stays in place.
type Direction uint8

const (
	NoDirection Direction = iota
	Up
	Down
	Left
	Right
)

// Directions lists the four cardinal directions, for callers that
// enumerate moves (bots, input mappers, tests).
var Directions = [...]Direction{Up, Down, Left, Right}

// Delta returns the unit cell offset for the direction. Multiply by the
// configured cell size to get a world-unit step. NoDirection returns zero.
func (d Direction) Delta() Point {
	switch d {
	case Up:
		return Point{X: 0, Y: 1}
	case Down:
		return Point{X: 0, Y: -1}
	case Left:
		return Point{X: -1, Y: 0}
	case Right:
		return Point{X: 1, Y: 0}
	}
	return Point{}
}

// Opposite returns the reverse direction. NoDirection is its own opposite.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	}
	return NoDirection
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "none"
}
