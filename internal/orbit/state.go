package orbit

import (
	"math"
	"math/rand"
)

// Speed bounds enforced by the control surface.
const (
	MinSpeed  = 0.1
	MaxSpeed  = 10.0
	SpeedStep = 0.01
)

// Rand is the subset of *rand.Rand used to scatter starting angles.
type Rand interface {
	Float64() float64
}

// State is the mutable per-body orbit state.
type State struct {
	Angle           float64 // Accumulated orbital phase in radians, unwrapped
	SpeedMultiplier float64 // User-controlled speed
	Spin            float64 // Self-rotation for the renderer, radians
}

// NewStates builds one State per body with a random starting angle in
// [0, 2π) and the body's base speed. A nil rnd uses the global source.
func NewStates(bodies []Body, rnd Rand) []State {
	if rnd == nil {
		rnd = globalRand{}
	}
	states := make([]State, len(bodies))
	for i, b := range bodies {
		states[i] = State{
			Angle:           rnd.Float64() * 2 * math.Pi,
			SpeedMultiplier: b.BaseAngularSpeed,
		}
	}
	return states
}

// Clock is the simulation's run/pause switch.
type Clock struct {
	paused bool
}

// Paused reports whether motion is frozen.
func (c *Clock) Paused() bool {
	return c.paused
}

// Toggle flips the clock and returns the new paused state.
func (c *Clock) Toggle() bool {
	c.paused = !c.paused
	return c.paused
}

// SetPaused sets the clock state directly.
func (c *Clock) SetPaused(p bool) {
	c.paused = p
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
