package control

import (
	"strconv"

	"github.com/litescript/ls-orrery/internal/orbit"
)

// Speeder receives speed changes. *orbit.System and *state.Manager satisfy it.
type Speeder interface {
	SetSpeed(i int, v float64) error
}

// Panel is the set of speed sliders plus the pause button label.
//
// A slider that has never been touched displays the body's actual speed,
// which may sit below the slider minimum (the outer planets start slower
// than 0.1). The first adjustment starts from the clamped thumb position.
type Panel struct {
	names    []string
	sliders  []Slider
	initial  []float64
	touched  []bool
	selected int
}

// NewPanel builds one slider per body, seeded from the given speeds.
func NewPanel(bodies []orbit.Body, speeds []float64) Panel {
	p := Panel{
		names:   make([]string, len(bodies)),
		sliders: make([]Slider, len(bodies)),
		initial: make([]float64, len(bodies)),
		touched: make([]bool, len(bodies)),
	}
	for i, b := range bodies {
		p.names[i] = b.Name
		v := b.BaseAngularSpeed
		if i < len(speeds) {
			v = speeds[i]
		}
		p.initial[i] = v
		p.sliders[i] = NewSpeedSlider(v)
	}
	return p
}

// Len returns the number of sliders.
func (p Panel) Len() int {
	return len(p.sliders)
}

// Selected returns the index of the highlighted slider.
func (p Panel) Selected() int {
	return p.selected
}

// Name returns the label of slider i.
func (p Panel) Name(i int) string {
	if i < 0 || i >= len(p.names) {
		return ""
	}
	return p.names[i]
}

// Slider returns slider i.
func (p Panel) Slider(i int) Slider {
	if i < 0 || i >= len(p.sliders) {
		return Slider{}
	}
	return p.sliders[i]
}

// Select moves the highlight by delta, wrapping at both ends.
func (p *Panel) Select(delta int) {
	n := len(p.sliders)
	if n == 0 {
		return
	}
	p.selected = ((p.selected+delta)%n + n) % n
}

// SetSelected highlights slider i if it exists.
func (p *Panel) SetSelected(i int) {
	if i >= 0 && i < len(p.sliders) {
		p.selected = i
	}
}

// Adjust moves the selected slider by delta steps, or by ten times that when
// coarse, and returns the slider index, its value and whether the value moved.
//
// A step that does not move the shown value in the requested direction is
// dropped, like a range input already at its limit. Stepping an untouched
// outer planet down from below the minimum leaves it alone instead of
// snapping it up to 0.1.
func (p *Panel) Adjust(delta int, coarse bool) (int, float64, bool) {
	if len(p.sliders) == 0 || delta == 0 {
		return -1, 0, false
	}
	if coarse {
		delta *= 10
	}
	i := p.selected
	prev := p.sliders[i].Value
	if !p.touched[i] {
		prev = p.initial[i]
	}

	next := p.sliders[i]
	next.Increment(delta)
	if (delta > 0 && next.Value <= prev) || (delta < 0 && next.Value >= prev) {
		return i, prev, false
	}
	p.sliders[i] = next
	p.touched[i] = true
	return i, next.Value, true
}

// Apply pushes the selected slider's value to the target.
func (p Panel) Apply(target Speeder) error {
	if len(p.sliders) == 0 {
		return nil
	}
	return target.SetSpeed(p.selected, p.sliders[p.selected].Value)
}

// Reset reseeds every slider from speeds and marks it untouched. The
// selection is kept. A nil or short speeds slice keeps the initial values.
func (p *Panel) Reset(speeds []float64) {
	for i := range p.initial {
		if i < len(speeds) {
			p.initial[i] = speeds[i]
		}
		p.sliders[i] = NewSpeedSlider(p.initial[i])
		p.touched[i] = false
	}
}

// Display returns the text shown next to slider i.
func (p Panel) Display(i int) string {
	if i < 0 || i >= len(p.sliders) {
		return ""
	}
	if !p.touched[i] {
		return strconv.FormatFloat(p.initial[i], 'f', -1, 64)
	}
	return p.sliders[i].String()
}

// PauseLabel returns the pause button text for the given clock state.
func PauseLabel(paused bool) string {
	if paused {
		return "Resume"
	}
	return "Pause"
}
