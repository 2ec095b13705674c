package ui

import (
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orrery/internal/orbit"
)

var (
	accentColor = lipgloss.Color("#9D4EDD")
	mutedColor  = lipgloss.Color("60")

	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(mutedColor)
	accentStyle = lipgloss.NewStyle().Foreground(accentColor)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

var white = colorful.Color{R: 1, G: 1, B: 1}

// rgbColor converts a registry colour to a colorful.Color.
func rgbColor(c orbit.RGB) colorful.Color {
	r, g, b := c.Components()
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

func hexColor(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return white
	}
	return c
}

// bodyColor returns the terminal colour of a body; focused bodies are lifted
// toward white.
func bodyColor(c orbit.RGB, focused bool) lipgloss.Color {
	col := rgbColor(c)
	if focused {
		col = col.BlendLab(white, 0.35).Clamped()
	}
	return lipgloss.Color(col.Hex())
}

// starColor fades a star out of the background by magnitude. Magnitude 0.5
// is the brightest the starfield produces, 4.5 the dimmest.
func starColor(mag float64) lipgloss.Color {
	t := (4.5 - mag) / 4
	t = math.Max(0, math.Min(1, t))
	bg := rgbColor(orbit.BackgroundColor)
	return lipgloss.Color(bg.BlendLab(white, 0.15+0.45*t).Clamped().Hex())
}

// gradientStops are blue, purple, magenta and pink.
var gradientStops = []colorful.Color{
	hexColor("#3B82F6"),
	hexColor("#8B5CF6"),
	hexColor("#D946EF"),
	hexColor("#EC4899"),
}

// gradientColor returns a hex colour for a position in the title gradient:
// horizontal through the stops, fading darker toward the bottom row.
func gradientColor(col, row, width, height int) string {
	if width <= 1 {
		width = 2
	}
	if height <= 0 {
		height = 1
	}
	x := float64(col) / float64(width-1)
	y := float64(row) / float64(height)

	seg := x * float64(len(gradientStops)-1)
	i := int(seg)
	if i >= len(gradientStops)-1 {
		i = len(gradientStops) - 2
	}
	c := gradientStops[i].BlendLab(gradientStops[i+1], seg-float64(i))

	f := 1.0 - y*0.5
	c = colorful.Color{R: c.R * f, G: c.G * f, B: c.B * f}.Clamped()
	return c.Hex()
}
