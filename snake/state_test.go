package snake_test

import (
	"testing"

	"github.com/plus3/serpent/snake"
	"github.com/stretchr/testify/assert"
)

func TestStateString(t *testing.T) {
	assert.Equal(t, "running", snake.StateRunning.String())
	assert.Equal(t, "game over", snake.StateGameOver.String())
}

func TestDeathCauseString(t *testing.T) {
	assert.Equal(t, "none", snake.CauseNone.String())
	assert.Equal(t, "wall collision", snake.CauseWallCollision.String())
	assert.Equal(t, "self collision", snake.CauseSelfCollision.String())
}
