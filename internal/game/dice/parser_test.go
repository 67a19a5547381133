package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/delve/internal/game/dice"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in                   string
		count, sides, modifr int
	}{
		{"d20", 1, 20, 0},
		{"2d6", 2, 6, 0},
		{"2d6+3", 2, 6, 3},
		{"4d8-2", 4, 8, -2},
		{"0d0", 0, 0, 0},
		{"1D4", 1, 4, 0},
	}
	for _, tc := range tests {
		e, err := dice.Parse(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.count, e.Count, tc.in)
		assert.Equal(t, tc.sides, e.Sides, tc.in)
		assert.Equal(t, tc.modifr, e.Modifier, tc.in)
		assert.Equal(t, tc.in, e.String())
	}
}

func TestParse_Errors(t *testing.T) {
	for _, in := range []string{"", "20", "xd6", "2dx", "2d6+x", "-1d6"} {
		_, err := dice.Parse(in)
		assert.Error(t, err, "expected error for %q", in)
	}
}

func TestExpression_StringWithoutRaw(t *testing.T) {
	assert.Equal(t, "3d4", dice.Expression{Count: 3, Sides: 4}.String())
	assert.Equal(t, "1d8+2", dice.Expression{Count: 1, Sides: 8, Modifier: 2}.String())
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { dice.MustParse("nope") })
	assert.NotPanics(t, func() { dice.MustParse("1d6") })
}
