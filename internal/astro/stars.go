package astro

import (
	"math/rand"
)

// Starfield defaults match the backdrop of the browser orrery.
const (
	DefaultStarCount  = 300
	DefaultStarExtent = 600.0
)

// Rand is the subset of *rand.Rand the generators need.
type Rand interface {
	Float64() float64
}

// Star is one backdrop point.
type Star struct {
	Pos Vec3    // Position in scene space
	Mag float64 // Pseudo magnitude (lower = brighter), derived from height
}

// Starfield holds a fixed set of backdrop stars.
type Starfield struct {
	Extent float64 // Side of the cube the stars were scattered in
	Stars  []Star
}

// NewStarfield scatters n stars uniformly in a cube of side extent centred on
// the origin. Stars higher above the plane (closer to the camera) get a lower
// magnitude so they render brighter. A nil rnd uses the global source.
func NewStarfield(n int, extent float64, rnd Rand) Starfield {
	if n < 0 {
		n = 0
	}
	if extent <= 0 {
		extent = DefaultStarExtent
	}
	if rnd == nil {
		rnd = globalRand{}
	}

	stars := make([]Star, n)
	for i := range stars {
		pos := Vec3{
			X: (rnd.Float64() - 0.5) * extent,
			Y: (rnd.Float64() - 0.5) * extent,
			Z: (rnd.Float64() - 0.5) * extent,
		}
		// Map height in [-extent/2, extent/2] to magnitude in [4.5, 0.5].
		h := pos.Y/extent + 0.5
		stars[i] = Star{Pos: pos, Mag: 4.5 - 4*h}
	}

	return Starfield{Extent: extent, Stars: stars}
}

// Normalized returns the star's X/Z position scaled into [-1, 1], suitable
// for drawing the backdrop independently of zoom and pan.
func (s Star) Normalized(extent float64) (float64, float64) {
	half := extent / 2
	if half <= 0 {
		return 0, 0
	}
	return s.Pos.X / half, s.Pos.Z / half
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
