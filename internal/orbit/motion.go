package orbit

import (
	"math"

	"github.com/litescript/ls-orrery/internal/astro"
)

// DefaultTimeStep is the per-frame time increment of the reference animation.
// It is a frame count, not wall time: speed follows the frame rate unless the
// caller feeds elapsed-time steps instead.
const DefaultTimeStep = 0.01

// SpinIncrement is the self-rotation applied to each body on every unpaused frame.
const SpinIncrement = 0.01

// Advance moves one body forward by one frame and returns its position.
//
// When paused nothing is mutated and the position of the current angle is
// returned. Otherwise the angle grows by dt*speed/orbitDistance. Speed is read
// through effectiveSpeed, so a negative or NaN multiplier freezes the body
// rather than running it backwards.
func Advance(body Body, state *State, dt float64, paused bool) astro.Vec3 {
	if !paused {
		if body.OrbitDistance > 0 {
			state.Angle += dt * effectiveSpeed(state.SpeedMultiplier) / body.OrbitDistance
		}
		state.Spin += SpinIncrement
	}
	return Position(body, state.Angle)
}

// Position returns the point on the body's circular orbit at the given angle.
func Position(body Body, angle float64) astro.Vec3 {
	return astro.Vec3{
		X: math.Cos(angle) * body.OrbitDistance,
		Y: OrbitPlaneHeight,
		Z: math.Sin(angle) * body.OrbitDistance,
	}
}

// SunPosition returns the fixed position of the sun.
func SunPosition() astro.Vec3 {
	return astro.Vec3{Y: OrbitPlaneHeight}
}

// effectiveSpeed clamps the multiplier to a non-negative finite value.
func effectiveSpeed(s float64) float64 {
	if math.IsNaN(s) || s < 0 {
		return 0
	}
	return s
}

// AngularVelocity returns radians per frame for the given speed at the
// default time step.
func AngularVelocity(body Body, speed float64) float64 {
	if body.OrbitDistance <= 0 {
		return 0
	}
	return DefaultTimeStep * effectiveSpeed(speed) / body.OrbitDistance
}

// FramesPerOrbit returns how many default-step frames one full orbit takes at
// the given speed, or +Inf when the body is frozen.
func FramesPerOrbit(body Body, speed float64) float64 {
	w := AngularVelocity(body, speed)
	if w == 0 {
		return math.Inf(1)
	}
	return 2 * math.Pi / w
}

// WrapAngle maps an unwrapped angle into [0, 2π).
func WrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
