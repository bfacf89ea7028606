// Package layout places letters on the ring drawn around the board centre.
package layout

import (
	"math"

	"github.com/robalobadob/wordconnect/internal/puzzle"
)

// Ring describes the circle the letters sit on.
type Ring struct {
	CenterX float64
	CenterY float64
	Radius  float64
	// Rotation shifts every letter by this many slots clockwise.
	Rotation int
}

// DefaultRing matches an 800x600 board with a 100px ring.
var DefaultRing = Ring{CenterX: 400, CenterY: 300, Radius: 100}

// Positions returns n evenly spaced points; letter i sits at angle
// (i+Rotation)/n of a full turn, starting at three o'clock.
func (r Ring) Positions(n int) []puzzle.Point {
	out := make([]puzzle.Point, n)
	for i := range out {
		angle := float64(i+r.Rotation) / float64(n) * 2 * math.Pi
		out[i] = puzzle.Point{
			X: r.CenterX + math.Cos(angle)*r.Radius,
			Y: r.CenterY + math.Sin(angle)*r.Radius,
		}
	}
	return out
}
