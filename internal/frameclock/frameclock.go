// Package frameclock turns render ticks into simulation time steps.
//
// The reference animation advances a fixed amount per frame, so its speed
// depends on the frame rate. ModeFixed keeps that behaviour. ModeElapsed
// measures wall time between ticks and scales the step so that a 60 Hz
// display sees the same motion as ModeFixed, whatever the actual rate.
package frameclock

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/litescript/ls-orrery/internal/orbit"
)

// Mode selects how the step is computed.
type Mode int

const (
	ModeFixed Mode = iota
	ModeElapsed
)

// ReferenceFrame is the frame duration at which both modes agree.
const ReferenceFrame = time.Second / 60

// MaxCatchUp caps an elapsed step, in reference frames, so a stalled
// terminal does not fling the planets forward.
const MaxCatchUp = 10

func (m Mode) String() string {
	switch m {
	case ModeFixed:
		return "fixed"
	case ModeElapsed:
		return "elapsed"
	default:
		return "unknown"
	}
}

// ParseMode parses "fixed" or "elapsed".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "fixed", "":
		return ModeFixed, nil
	case "elapsed":
		return ModeElapsed, nil
	default:
		return ModeFixed, fmt.Errorf("unknown timestep mode %q (want fixed or elapsed)", s)
	}
}

// Clock produces one time step per tick.
type Clock struct {
	mode  Mode
	clk   clockwork.Clock
	step  float64
	last  time.Time
	valid bool
}

// New creates a frame clock. A nil clk uses the real clock.
func New(mode Mode, clk clockwork.Clock) *Clock {
	if clk == nil {
		clk = clockwork.NewRealClock()
	}
	return &Clock{
		mode: mode,
		clk:  clk,
		step: orbit.DefaultTimeStep,
	}
}

// Mode returns the configured mode.
func (c *Clock) Mode() Mode {
	return c.mode
}

// Next returns the time step for the current tick.
//
// In elapsed mode the first tick after New or Reset has no previous
// timestamp and returns one fixed step.
func (c *Clock) Next() float64 {
	if c.mode == ModeFixed {
		return c.step
	}

	now := c.clk.Now()
	if !c.valid {
		c.last = now
		c.valid = true
		return c.step
	}

	elapsed := now.Sub(c.last)
	c.last = now
	if elapsed < 0 {
		elapsed = 0
	}

	frames := float64(elapsed) / float64(ReferenceFrame)
	if frames > MaxCatchUp {
		frames = MaxCatchUp
	}
	return frames * c.step
}

// Reset drops the previous timestamp so the next elapsed step does not
// include time spent paused.
func (c *Clock) Reset() {
	c.valid = false
}
