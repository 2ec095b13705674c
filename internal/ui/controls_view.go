package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-orrery/internal/control"
	"github.com/litescript/ls-orrery/internal/orbit"
)

// controlsWidth is the fixed width of the side panel.
const controlsWidth = 38

const sliderBarWidth = 14

// ControlsModel renders the speed sliders and the pause button. Slider
// changes are pushed to target as soon as they happen, so they apply from
// the next frame on.
type ControlsModel struct {
	height int
	keys   control.KeyMap
	panel  control.Panel
	target control.Speeder
	colors []orbit.RGB
	paused bool
}

// NewControlsModel builds one slider row per body, seeded from speeds.
func NewControlsModel(bodies []orbit.Body, speeds []float64, target control.Speeder) ControlsModel {
	colors := make([]orbit.RGB, len(bodies))
	for i, b := range bodies {
		colors[i] = b.Color
	}
	return ControlsModel{
		keys:   control.DefaultKeyMap(),
		panel:  control.NewPanel(bodies, speeds),
		target: target,
		colors: colors,
	}
}

// Update handles slider keys.
func (m ControlsModel) Update(msg tea.Msg) (ControlsModel, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(km, m.keys.SelectUp):
		m.panel.Select(-1)
	case key.Matches(km, m.keys.SelectDown):
		m.panel.Select(1)
	case key.Matches(km, m.keys.Slower):
		return m.adjust(-1, false)
	case key.Matches(km, m.keys.Faster):
		return m.adjust(1, false)
	case key.Matches(km, m.keys.SlowerBig):
		return m.adjust(-1, true)
	case key.Matches(km, m.keys.FasterBig):
		return m.adjust(1, true)
	}
	return m, nil
}

func (m ControlsModel) adjust(delta int, coarse bool) (ControlsModel, tea.Cmd) {
	if _, _, moved := m.panel.Adjust(delta, coarse); !moved || m.target == nil {
		return m, nil
	}
	if err := m.panel.Apply(m.target); err != nil {
		return m, SendError(err)
	}
	return m, nil
}

// Reset reseeds every slider, keeping the selection.
func (m ControlsModel) Reset(speeds []float64) ControlsModel {
	m.panel.Reset(speeds)
	return m
}

// Selected returns the highlighted slider index.
func (m ControlsModel) Selected() int {
	return m.panel.Selected()
}

// Value returns the text shown for slider i.
func (m ControlsModel) Value(i int) string {
	return m.panel.Display(i)
}

// SetSize updates the panel height.
func (m ControlsModel) SetSize(height int) ControlsModel {
	m.height = height
	return m
}

// SetPaused updates the pause button label.
func (m ControlsModel) SetPaused(p bool) ControlsModel {
	m.paused = p
	return m
}

// View renders the panel.
func (m ControlsModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Speeds"))
	b.WriteString("\n\n")

	selStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	nameStyle := lipgloss.NewStyle().Width(8)

	for i := 0; i < m.panel.Len(); i++ {
		marker := "  "
		name := nameStyle.Render(m.panel.Name(i))
		if i == m.panel.Selected() {
			marker = accentStyle.Render("▸ ")
			name = selStyle.Inherit(nameStyle).Render(m.panel.Name(i))
		}

		dot := "•"
		if i < len(m.colors) {
			dot = lipgloss.NewStyle().Foreground(bodyColor(m.colors[i], false)).Render("•")
		}

		b.WriteString(marker)
		b.WriteString(dot + " ")
		b.WriteString(name)
		b.WriteString(renderSliderBar(m.panel.Slider(i).Fraction(), sliderBarWidth))
		b.WriteString(" ")
		b.WriteString(valueStyle.Render(m.panel.Display(i)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(renderButton(control.PauseLabel(m.paused), m.paused))

	style := lipgloss.NewStyle().
		Width(controlsWidth).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(mutedColor)
	if m.height > 2 {
		style = style.Height(m.height - 2)
	}
	return style.Render(b.String())
}

// renderSliderBar draws a slider track with the thumb position filled.
func renderSliderBar(frac float64, width int) string {
	filled := int(frac*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return "[" + accentStyle.Render(bar) + "]"
}

func renderButton(label string, active bool) string {
	style := lipgloss.NewStyle().
		Padding(0, 2).
		Foreground(lipgloss.Color("252")).
		Background(lipgloss.Color("237"))
	if active {
		style = style.Background(accentColor).Bold(true)
	}
	return style.Render(fmt.Sprintf("⏯ %s", label))
}
