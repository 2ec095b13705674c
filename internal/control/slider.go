// Package control maps user input onto the orbit system: one speed slider per
// body and the pause toggle.
package control

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/litescript/ls-orrery/internal/orbit"
)

// ErrInvalidValue is returned when slider input cannot be parsed.
var ErrInvalidValue = errors.New("invalid slider value")

// Slider is a bounded numeric input snapped to a step, like an HTML range input.
type Slider struct {
	Min   float64
	Max   float64
	Step  float64
	Value float64
}

// NewSpeedSlider returns a slider over the speed range, set to v.
func NewSpeedSlider(v float64) Slider {
	s := Slider{Min: orbit.MinSpeed, Max: orbit.MaxSpeed, Step: orbit.SpeedStep}
	s.Set(v)
	return s
}

// Set clamps v to [Min, Max] and snaps it to the nearest step from Min.
// NaN leaves the value unchanged.
func (s *Slider) Set(v float64) {
	if math.IsNaN(v) {
		return
	}
	if v < s.Min {
		v = s.Min
	}
	if v > s.Max {
		v = s.Max
	}
	if s.Step > 0 {
		n := math.Round((v - s.Min) / s.Step)
		v = s.Min + n*s.Step
		// Drop representation noise so 0.1+90*0.01 reads as 1.
		v = math.Round(v*1e9) / 1e9
		v = math.Min(math.Max(v, s.Min), s.Max)
	}
	s.Value = v
}

// Increment moves the slider by n steps.
func (s *Slider) Increment(n int) {
	s.Set(s.Value + float64(n)*s.Step)
}

// SetString parses a decimal value and sets it.
func (s *Slider) SetString(str string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidValue, str)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %q", ErrInvalidValue, str)
	}
	s.Set(v)
	return nil
}

// Fraction returns the value's position in [0, 1] along the slider.
func (s Slider) Fraction() float64 {
	span := s.Max - s.Min
	if span <= 0 {
		return 0
	}
	return (s.Value - s.Min) / span
}

// String formats the value with two decimals.
func (s Slider) String() string {
	return strconv.FormatFloat(s.Value, 'f', 2, 64)
}
