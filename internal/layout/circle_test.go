package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingPositions(t *testing.T) {
	pts := DefaultRing.Positions(4)
	require.Len(t, pts, 4)

	assert.InDelta(t, 500, pts[0].X, 1e-9)
	assert.InDelta(t, 300, pts[0].Y, 1e-9)
	assert.InDelta(t, 400, pts[1].X, 1e-9)
	assert.InDelta(t, 400, pts[1].Y, 1e-9)
	assert.InDelta(t, 300, pts[2].X, 1e-9)
	assert.InDelta(t, 400, pts[3].X, 1e-9)
	assert.InDelta(t, 200, pts[3].Y, 1e-9)
}

func TestRingRotation(t *testing.T) {
	plain := DefaultRing.Positions(5)
	r := DefaultRing
	r.Rotation = 2
	rotated := r.Positions(5)

	for i := range rotated {
		want := plain[(i+2)%5]
		assert.InDelta(t, want.X, rotated[i].X, 1e-9)
		assert.InDelta(t, want.Y, rotated[i].Y, 1e-9)
	}
}

func TestRingEmpty(t *testing.T) {
	assert.Empty(t, DefaultRing.Positions(0))
}
