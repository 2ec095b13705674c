package orbit

import (
	"errors"

	"github.com/litescript/ls-orrery/internal/astro"
)

// ErrUnknownBody is returned when a body index is out of range.
var ErrUnknownBody = errors.New("unknown body")

// Frame is one body's render data for a single tick.
type Frame struct {
	Index    int
	Name     string
	Position astro.Vec3
	Spin     float64
}

// System owns the bodies, their orbit state and the pause clock. It is not
// safe for concurrent use; callers serialise ticks and control changes.
type System struct {
	bodies []Body
	states []State
	clock  Clock
	frames int64
}

// NewSystem builds a system over the given bodies with randomised angles.
func NewSystem(bodies []Body, rnd Rand) *System {
	b := make([]Body, len(bodies))
	copy(b, bodies)
	return &System{
		bodies: b,
		states: NewStates(b, rnd),
	}
}

// Step advances every body by one frame, in table order, and returns the
// resulting frames. The frame counter advances even while paused.
func (s *System) Step(dt float64) []Frame {
	paused := s.clock.Paused()
	out := make([]Frame, len(s.bodies))
	for i := range s.bodies {
		pos := Advance(s.bodies[i], &s.states[i], dt, paused)
		out[i] = Frame{
			Index:    i,
			Name:     s.bodies[i].Name,
			Position: pos,
			Spin:     s.states[i].Spin,
		}
	}
	s.frames++
	return out
}

// Positions returns the current frames without advancing anything.
func (s *System) Positions() []Frame {
	out := make([]Frame, len(s.bodies))
	for i, b := range s.bodies {
		out[i] = Frame{
			Index:    i,
			Name:     b.Name,
			Position: Position(b, s.states[i].Angle),
			Spin:     s.states[i].Spin,
		}
	}
	return out
}

// Bodies returns a copy of the system's body table.
func (s *System) Bodies() []Body {
	out := make([]Body, len(s.bodies))
	copy(out, s.bodies)
	return out
}

// States returns a copy of every body's orbit state.
func (s *System) States() []State {
	out := make([]State, len(s.states))
	copy(out, s.states)
	return out
}

// Len returns the number of bodies.
func (s *System) Len() int {
	return len(s.bodies)
}

// Frames returns the number of ticks run so far.
func (s *System) Frames() int64 {
	return s.frames
}

// Speed returns the speed multiplier of body i, or 0 if out of range.
func (s *System) Speed(i int) float64 {
	if i < 0 || i >= len(s.states) {
		return 0
	}
	return s.states[i].SpeedMultiplier
}

// SetSpeed sets the speed multiplier of body i. Bounds are the caller's
// business; Advance tolerates anything.
func (s *System) SetSpeed(i int, v float64) error {
	if i < 0 || i >= len(s.states) {
		return ErrUnknownBody
	}
	s.states[i].SpeedMultiplier = v
	return nil
}

// ResetSpeeds restores every body to its base speed.
func (s *System) ResetSpeeds() {
	for i, b := range s.bodies {
		s.states[i].SpeedMultiplier = b.BaseAngularSpeed
	}
}

// Paused reports whether the clock is paused.
func (s *System) Paused() bool {
	return s.clock.Paused()
}

// TogglePause flips the clock and returns the new paused state.
func (s *System) TogglePause() bool {
	return s.clock.Toggle()
}

// SetPaused sets the clock state.
func (s *System) SetPaused(p bool) {
	s.clock.SetPaused(p)
}
