package grid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cory-johannsen/delve/internal/game/grid"
)

func TestPos_Adjacent(t *testing.T) {
	p := grid.Pos{X: 5, Y: 5}
	assert.True(t, p.Adjacent(grid.Pos{X: 6, Y: 6}))
	assert.True(t, p.Adjacent(grid.Pos{X: 5, Y: 4}))
	assert.False(t, p.Adjacent(p))
	assert.False(t, p.Adjacent(grid.Pos{X: 7, Y: 5}))
	assert.Equal(t, "(5,5)", p.String())
}
