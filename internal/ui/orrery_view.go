package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/control"
	"github.com/litescript/ls-orrery/internal/orbit"
	"github.com/litescript/ls-orrery/internal/state"
)

// LabelMode controls which bodies get a name label.
type LabelMode int

const (
	LabelNone    LabelMode = iota // No labels
	LabelFocused                  // Only the focused body
	LabelAll                      // Every body
)

func (l LabelMode) String() string {
	switch l {
	case LabelNone:
		return "off"
	case LabelFocused:
		return "focus"
	default:
		return "all"
	}
}

// ParseLabelMode maps config names to a LabelMode.
func ParseLabelMode(s string) LabelMode {
	switch s {
	case "none":
		return LabelNone
	case "focused":
		return LabelFocused
	default:
		return LabelAll
	}
}

// Discrete zoom levels for clean stepping
var zoomLevels = []float64{0.25, 0.5, 0.75, 1.0, 1.5, 2.0, 3.0, 5.0, 10.0}

const defaultZoomLevel = 3 // 1.0x

// Zoom spring tuning: critically damped, settles in well under a second.
const (
	zoomFrequency = 6.0
	zoomDamping   = 1.0
)

// panStep is the pan distance per key press, in display units at 1x.
const panStep = 0.1

// OrreryModel renders a top-down view of the toy solar system.
type OrreryModel struct {
	width  int
	height int
	keys   control.KeyMap

	bodies []orbit.Body
	frames []orbit.Frame
	speeds []float64
	stars  astro.Starfield
	maxR   float64

	// View state
	focusIdx   int // Index in bodies (-1 = Sun)
	zoomLevel  int // Index into zoomLevels
	zoom       float64
	zoomVel    float64
	spring     harmonica.Spring
	panX       float64 // Pan offset in display units
	panY       float64
	scaleMode  astro.ScaleMode
	labelMode  LabelMode
	userPanned bool // Disables follow-focus until c or a focus change
	showStars  bool
}

// NewOrreryModel creates the view. fps sets the zoom spring's time step.
func NewOrreryModel(bodies []orbit.Body, stars astro.Starfield, fps int) OrreryModel {
	if fps <= 0 {
		fps = 30
	}
	return OrreryModel{
		keys:      control.DefaultKeyMap(),
		bodies:    bodies,
		stars:     stars,
		maxR:      orbit.MaxOrbitDistance(bodies),
		focusIdx:  -1,
		zoomLevel: defaultZoomLevel,
		zoom:      zoomLevels[defaultZoomLevel],
		spring:    harmonica.NewSpring(harmonica.FPS(fps), zoomFrequency, zoomDamping),
		scaleMode: astro.ScaleLinear,
		labelMode: LabelAll,
		showStars: true,
	}
}

// WithScaleMode sets the radial scale mode.
func (m OrreryModel) WithScaleMode(mode astro.ScaleMode) OrreryModel {
	m.scaleMode = mode
	return m
}

// WithLabelMode sets the label mode.
func (m OrreryModel) WithLabelMode(mode LabelMode) OrreryModel {
	m.labelMode = mode
	return m
}

// targetZoom returns the zoom the spring is heading for.
func (m OrreryModel) targetZoom() float64 {
	if m.zoomLevel < 0 || m.zoomLevel >= len(zoomLevels) {
		return 1.0
	}
	return zoomLevels[m.zoomLevel]
}

// scale returns the current, possibly still animating, zoom.
func (m OrreryModel) scale() float64 {
	if m.zoom <= 0 {
		return m.targetZoom()
	}
	return m.zoom
}

func (m OrreryModel) projection() astro.ProjectionConfig {
	return astro.ProjectionConfig{
		Scale: m.scale(),
		Mode:  m.scaleMode,
		MaxR:  m.maxR,
	}
}

// SetSize updates the viewport size.
func (m OrreryModel) SetSize(width, height int) OrreryModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData takes the latest frame, steps the zoom spring and keeps the
// focused body centred unless the user has panned away.
func (m OrreryModel) UpdateData(snap state.Snapshot) OrreryModel {
	m.frames = snap.Frames
	m.speeds = snap.Speeds
	if len(snap.Bodies) > 0 {
		m.bodies = snap.Bodies
	}

	m.zoom, m.zoomVel = m.spring.Update(m.zoom, m.zoomVel, m.targetZoom())
	if !m.userPanned {
		m.centerOnFocused()
	}
	return m
}

// Update handles view keys.
func (m OrreryModel) Update(msg tea.Msg) (OrreryModel, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(km, m.keys.FocusPrev):
		m.focusPrev()
	case key.Matches(km, m.keys.FocusNext):
		m.focusNext()

	case key.Matches(km, m.keys.PanUp):
		m.pan(0, -panStep)
	case key.Matches(km, m.keys.PanDown):
		m.pan(0, panStep)
	case key.Matches(km, m.keys.PanLeft):
		m.pan(panStep, 0)
	case key.Matches(km, m.keys.PanRight):
		m.pan(-panStep, 0)
	case key.Matches(km, m.keys.Center):
		m.focusIdx = -1
		m.userPanned = false
		m.centerOnFocused()

	case key.Matches(km, m.keys.ZoomIn):
		if m.zoomLevel < len(zoomLevels)-1 {
			m.zoomLevel++
		}
	case key.Matches(km, m.keys.ZoomOut):
		if m.zoomLevel > 0 {
			m.zoomLevel--
		}
	case key.Matches(km, m.keys.ZoomReset):
		m.zoomLevel = defaultZoomLevel

	case key.Matches(km, m.keys.ScaleMode):
		m.scaleMode = (m.scaleMode + 1) % 3
		if !m.userPanned {
			m.centerOnFocused()
		}
	case key.Matches(km, m.keys.Labels):
		m.labelMode = (m.labelMode + 1) % 3
	case key.Matches(km, m.keys.Stars):
		m.showStars = !m.showStars
	}
	return m, nil
}

// pan shifts the scene origin. Positive dx moves it right, positive dy up.
func (m *OrreryModel) pan(dx, dy float64) {
	s := m.scale()
	m.panX += dx / s
	m.panY += dy / s
	m.userPanned = true
}

func (m *OrreryModel) focusNext() {
	if len(m.bodies) == 0 {
		return
	}
	m.focusIdx++
	if m.focusIdx >= len(m.bodies) {
		m.focusIdx = -1 // Wrap to Sun
	}
	m.userPanned = false
	m.centerOnFocused()
}

func (m *OrreryModel) focusPrev() {
	if len(m.bodies) == 0 {
		return
	}
	m.focusIdx--
	if m.focusIdx < -1 {
		m.focusIdx = len(m.bodies) - 1
	}
	m.userPanned = false
	m.centerOnFocused()
}

// centerOnFocused pans the view to center on the currently focused body.
func (m *OrreryModel) centerOnFocused() {
	f, ok := m.focusedFrame()
	if !ok {
		// Sun is at origin, just reset pan
		m.panX, m.panY = 0, 0
		return
	}
	proj := astro.ProjectTopDown(f.Position, m.projection())
	m.panX = -proj.X
	m.panY = -proj.Y
}

func (m OrreryModel) focusedFrame() (orbit.Frame, bool) {
	if m.focusIdx < 0 || m.focusIdx >= len(m.frames) {
		return orbit.Frame{}, false
	}
	return m.frames[m.focusIdx], true
}

// View renders the orrery view.
func (m OrreryModel) View() string {
	if m.width < 30 || m.height < 10 {
		return "Terminal too small for the orrery"
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.buildCanvas(), m.renderHUD())
}

// bodyPos tracks a body's screen position for label rendering.
type bodyPos struct {
	x, y      int
	name      string
	color     lipgloss.Color
	isFocused bool
}

// cell is one character of the canvas. A zero fg means "style by glyph".
type cell struct {
	ch rune
	fg lipgloss.Color
}

type canvas struct {
	w, h  int
	cells [][]cell
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h, cells: make([][]cell, h)}
	for y := range c.cells {
		c.cells[y] = make([]cell, w)
		for x := range c.cells[y] {
			c.cells[y][x].ch = ' '
		}
	}
	return c
}

func (c *canvas) inside(x, y int) bool {
	return x >= 0 && x < c.w && y >= 0 && y < c.h
}

func (c *canvas) empty(x, y int) bool {
	return c.inside(x, y) && c.cells[y][x].ch == ' '
}

func (c *canvas) set(x, y int, ch rune, fg lipgloss.Color) {
	if c.inside(x, y) {
		c.cells[y][x] = cell{ch: ch, fg: fg}
	}
}

// hudLines is the height reserved under the canvas.
const hudLines = 3

// buildCanvas renders the system to a string canvas.
func (m OrreryModel) buildCanvas() string {
	canvasH := m.height - hudLines
	if canvasH < 5 {
		canvasH = 5
	}
	cv := newCanvas(m.width, canvasH)

	screenCenterX := cv.w / 2
	screenCenterY := cv.h / 2

	// Outermost orbit at zoom 1 spans 90% of the shorter half-axis; rows are
	// roughly twice as tall as columns.
	displayScale := float64(min(screenCenterX, screenCenterY*2)) * 0.9
	cfg := m.projection()

	originX := screenCenterX + int(math.Round(m.panX*displayScale))
	originY := screenCenterY - int(math.Round(m.panY*displayScale*0.5))

	// Starfield sits behind everything and ignores zoom and pan.
	if m.showStars {
		m.drawStarfield(cv, screenCenterX, screenCenterY)
	}

	m.drawOrbitRings(cv, originX, originY, displayScale, cfg)

	var positions []bodyPos
	for i, f := range m.frames {
		if i >= len(m.bodies) {
			break
		}
		body := m.bodies[i]
		proj := astro.ProjectTopDown(f.Position, cfg)

		sx := originX + int(math.Round(proj.X*displayScale))
		sy := originY - int(math.Round(proj.Y*displayScale*0.5))
		if !cv.inside(sx, sy) {
			continue
		}

		focused := i == m.focusIdx
		col := bodyColor(body.Color, focused)
		cv.set(sx, sy, bodyGlyph(body, focused), col)

		positions = append(positions, bodyPos{
			x:         sx,
			y:         sy,
			name:      body.Name,
			color:     col,
			isFocused: focused,
		})
	}

	// Sun last so it is never hidden.
	if cv.inside(originX, originY) {
		sunCol := bodyColor(orbit.SunColor, m.focusIdx == -1)
		cv.set(originX, originY, '☉', sunCol)
		positions = append(positions, bodyPos{
			x:         originX,
			y:         originY,
			name:      orbit.SunName,
			color:     sunCol,
			isFocused: m.focusIdx == -1,
		})
	}

	m.renderLabels(cv, positions)

	return renderCanvas(cv)
}

// drawOrbitRings draws one dotted ring per body distance.
func (m OrreryModel) drawOrbitRings(cv *canvas, cx, cy int, displayScale float64, cfg astro.ProjectionConfig) {
	for _, b := range m.bodies {
		r := astro.ProjectRadius(b.OrbitDistance, cfg) * displayScale
		drawCircle(cv, cx, cy, r)
	}
}

func drawCircle(cv *canvas, cx, cy int, r float64) {
	if r < 1 {
		return
	}

	steps := int(2 * math.Pi * r)
	if steps < 8 {
		steps = 8
	}
	if steps > 720 {
		steps = 720
	}

	for i := 0; i < steps; i++ {
		theta := 2 * math.Pi * float64(i) / float64(steps)
		x := cx + int(math.Round(r*math.Cos(theta)))
		y := cy - int(math.Round(r*math.Sin(theta)*0.5)) // Aspect ratio correction
		if cv.empty(x, y) {
			cv.set(x, y, '·', "")
		}
	}
}

// drawStarfield spreads the starfield over the whole canvas.
func (m OrreryModel) drawStarfield(cv *canvas, cx, cy int) {
	for _, star := range m.stars.Stars {
		nx, nz := star.Normalized(m.stars.Extent)
		sx := cx + int(nx*float64(cx))
		sy := cy - int(nz*float64(cy))
		if !cv.empty(sx, sy) {
			continue
		}
		if glyph := starGlyph(star.Mag); glyph != ' ' {
			cv.set(sx, sy, glyph, starColor(star.Mag))
		}
	}
}

// starGlyph returns a subtle glyph based on star magnitude.
func starGlyph(mag float64) rune {
	switch {
	case mag <= 1.0:
		return '∗'
	case mag <= 2.5:
		return '·'
	case mag <= 3.5:
		return '˙'
	default:
		return ' ' // Very dim: skip to avoid clutter
	}
}

func bodyGlyph(b orbit.Body, focused bool) rune {
	if b.IsGiant() {
		if focused {
			return '◉'
		}
		return '○'
	}
	if focused {
		return '●'
	}
	return '•'
}

// renderLabels draws body labels on the canvas based on label mode.
func (m OrreryModel) renderLabels(cv *canvas, positions []bodyPos) {
	if m.labelMode == LabelNone {
		return
	}

	for _, pos := range positions {
		if m.labelMode == LabelFocused && !pos.isFocused {
			continue
		}

		labelX := pos.x + 2
		if pos.y < 0 || pos.y >= cv.h || labelX >= cv.w {
			continue
		}

		text := pos.name
		var fg lipgloss.Color
		if pos.isFocused {
			text = "◄ " + pos.name
			fg = pos.color
		}

		for i, r := range []rune(text) {
			x := labelX + i
			if x >= cv.w {
				break
			}
			// Labels may cover rings and stars but not bodies.
			c := cv.cells[pos.y][x]
			if c.ch == ' ' || c.ch == '·' || c.ch == '˙' || c.ch == '∗' {
				cv.set(x, pos.y, r, fg)
			}
		}
	}
}

func renderCanvas(cv *canvas) string {
	ringStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("249"))

	var b strings.Builder
	for _, row := range cv.cells {
		for _, c := range row {
			if c.ch == ' ' {
				b.WriteRune(' ')
				continue
			}

			var style lipgloss.Style
			switch {
			case c.fg != "":
				style = lipgloss.NewStyle().Foreground(c.fg)
				if c.ch == '☉' || c.ch == '◉' || c.ch == '●' {
					style = style.Bold(true)
				}
			case c.ch == '·':
				style = ringStyle
			default:
				style = labelStyle
			}
			b.WriteString(style.Render(string(c.ch)))
		}
		b.WriteRune('\n')
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m OrreryModel) renderHUD() string {
	var b strings.Builder

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	f, ok := m.focusedFrame()
	if ok && m.focusIdx < len(m.bodies) {
		body := m.bodies[m.focusIdx]
		speed := body.BaseAngularSpeed
		if m.focusIdx < len(m.speeds) {
			speed = m.speeds[m.focusIdx]
		}

		nameStyle := titleStyle.Foreground(bodyColor(body.Color, true))
		b.WriteString(nameStyle.Render("● " + body.Name))
		b.WriteString("  ")
		b.WriteString(labelStyle.Render("Angle: "))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%.1f°", orbit.WrapAngle(f.Position.PlanarAngle())*180/math.Pi)))
		b.WriteString("  ")
		b.WriteString(labelStyle.Render("Speed: "))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%.3g", speed)))
		b.WriteString("  ")
		b.WriteString(labelStyle.Render("Period: "))
		b.WriteString(valueStyle.Render(formatPeriod(orbit.FramesPerOrbit(body, speed))))
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Radius: "))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%.1f", f.Position.PlanarRadius())))
		b.WriteString("  ")
		b.WriteString(labelStyle.Render("Spin: "))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%.0f°", orbit.WrapAngle(f.Spin)*180/math.Pi)))
		b.WriteString("  ")
	} else {
		b.WriteString(titleStyle.Render("☉ " + orbit.SunName))
		b.WriteString("  ")
		b.WriteString(mutedStyle.Render("(center of the system)"))
		b.WriteString("\n")
	}

	b.WriteString(mutedStyle.Render("Mode:"))
	b.WriteString(valueStyle.Render(m.scaleMode.String()))
	b.WriteString("  ")
	b.WriteString(mutedStyle.Render("Zoom:"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%.2gx", m.targetZoom())))
	b.WriteString("  ")
	b.WriteString(mutedStyle.Render("Labels:"))
	b.WriteString(valueStyle.Render(m.labelMode.String()))
	b.WriteString("  ")
	b.WriteString(mutedStyle.Render("Stars:"))
	if m.showStars {
		b.WriteString(valueStyle.Render("on"))
	} else {
		b.WriteString(valueStyle.Render("off"))
	}

	return b.String()
}

// formatPeriod renders frames-per-orbit, or "frozen" for a stopped body.
func formatPeriod(frames float64) string {
	switch {
	case math.IsInf(frames, 1) || math.IsNaN(frames):
		return "frozen"
	case frames >= 1e6:
		return fmt.Sprintf("%.2gM frames", frames/1e6)
	case frames >= 1e3:
		return fmt.Sprintf("%.1fk frames", frames/1e3)
	default:
		return fmt.Sprintf("%.0f frames", frames)
	}
}

// FocusedBody returns the focused body, or false for the Sun.
func (m OrreryModel) FocusedBody() (orbit.Body, bool) {
	if m.focusIdx >= 0 && m.focusIdx < len(m.bodies) {
		return m.bodies[m.focusIdx], true
	}
	return orbit.Body{}, false
}

// ShowStars returns whether the starfield is visible.
func (m OrreryModel) ShowStars() bool {
	return m.showStars
}

// SetFocusByName focuses the named body; unknown names are ignored.
func (m *OrreryModel) SetFocusByName(name string) {
	for i, b := range m.bodies {
		if strings.EqualFold(b.Name, name) {
			m.focusIdx = i
			m.userPanned = false
			m.centerOnFocused()
			return
		}
	}
}
