// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/control"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/state"
	"github.com/litescript/ls-orrery/internal/version"
)

// Msg types for Bubble Tea
type (
	// FrameMsg drives one simulation tick and redraw.
	FrameMsg time.Time

	// ErrorMsg reports a failed control change.
	ErrorMsg struct {
		Error error
	}
)

// Options configures the root model.
type Options struct {
	FPS    int
	Stars  astro.Starfield
	Labels LabelMode
	Scale  astro.ScaleMode
	Logger *logging.Logger
}

// headerHeight is the number of lines renderHeader produces.
const headerHeight = 3

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	state *state.Manager
	log   *logging.Logger

	keys control.KeyMap
	help help.Model
	fps  int

	// UI state
	width     int
	height    int
	ready     bool
	showPanel bool
	lastErr   error
	animTick  int

	// Sub-models
	orrery   OrreryModel
	controls ControlsModel

	snapshot state.Snapshot
}

// New creates a new root UI model.
func New(mgr *state.Manager, opts Options) Model {
	fps := opts.FPS
	if fps <= 0 {
		fps = 30
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	logger = logger.With("component", "ui")

	snap := mgr.Snapshot()
	orrery := NewOrreryModel(snap.Bodies, opts.Stars, fps).
		WithScaleMode(opts.Scale).
		WithLabelMode(opts.Labels).
		UpdateData(snap)

	return Model{
		state:     mgr,
		log:       logger,
		keys:      control.DefaultKeyMap(),
		help:      help.New(),
		fps:       fps,
		showPanel: true,
		orrery:    orrery,
		controls:  NewControlsModel(snap.Bodies, snap.Speeds, mgr).SetPaused(snap.Paused),
		snapshot:  snap,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return frameCmd(m.fps)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m = m.resize()

		case key.Matches(msg, m.keys.Panel):
			m.showPanel = !m.showPanel
			m = m.resize()

		case key.Matches(msg, m.keys.Pause):
			paused := m.state.TogglePause()
			m.snapshot.Paused = paused
			m.controls = m.controls.SetPaused(paused)
			m.log.Info("paused=%t at frame %d", paused, m.snapshot.FrameCount)

		case key.Matches(msg, m.keys.Reset):
			m.state.ResetSpeeds()
			m.controls = m.controls.Reset(m.state.Speeds())
			m.log.Info("speeds reset at frame %d", m.snapshot.FrameCount)

		default:
			var cmd tea.Cmd
			before := m.controls.Value(m.controls.Selected())
			m.controls, cmd = m.controls.Update(msg)
			cmds = append(cmds, cmd)
			if after := m.controls.Value(m.controls.Selected()); after != before {
				m.lastErr = nil
				m.log.Debug("slider %d -> %s", m.controls.Selected(), after)
			}

			m.orrery, cmd = m.orrery.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m = m.resize()

	case FrameMsg:
		cmds = append(cmds, frameCmd(m.fps))
		m.state.Tick()
		m.snapshot = m.state.Snapshot()
		m.orrery = m.orrery.UpdateData(m.snapshot)
		m.controls = m.controls.SetPaused(m.snapshot.Paused)
		m.animTick++

	case ErrorMsg:
		m.lastErr = msg.Error
		m.log.Warn("control: %v", msg.Error)
	}

	return m, tea.Batch(cmds...)
}

// resize propagates the window size to sub-models.
func (m Model) resize() Model {
	m.help.Width = m.width

	contentHeight := m.height - headerHeight - m.footerHeight()
	orreryWidth := m.width
	if m.showPanel {
		// Border adds one column on each side.
		orreryWidth -= controlsWidth + 2
	}

	m.orrery = m.orrery.SetSize(orreryWidth, contentHeight)
	m.controls = m.controls.SetSize(contentHeight)
	return m
}

func (m Model) footerHeight() int {
	return 1 + lipgloss.Height(m.help.View(m.keys))
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	content := m.orrery.View()
	if m.showPanel {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, m.controls.View())
	}

	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	title := "◉ L S · O R R E R Y"

	var b strings.Builder
	b.WriteString("\n  ")
	runes := []rune(title)
	for col, r := range runes {
		color := gradientColor(col, 0, len(runes), 2)
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true).Render(string(r)))
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  Toy Solar System · v%s", version.Version)))
	return b.String()
}

func (m Model) renderFooter() string {
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))

	// Animated spinner frames
	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

	var status string
	if m.snapshot.Paused {
		status = accentStyle.Render("⏸") + mutedStyle.Render(" paused")
	} else {
		status = accentStyle.Render(spinnerFrames[m.animTick%len(spinnerFrames)]) + mutedStyle.Render(" running")
	}
	status += mutedStyle.Render(fmt.Sprintf("  frame #%d  dt=%.4g (%s)",
		m.snapshot.FrameCount, m.snapshot.LastStep, m.snapshot.Mode))

	if m.lastErr != nil {
		status += "  " + errorStyle.Render("ERROR: "+m.lastErr.Error())
	} else if events := m.state.RecentEvents(1); len(events) == 1 {
		ev := events[0]
		status += "  " + mutedStyle.Render(fmt.Sprintf("last: %s @#%d", ev, ev.Frame))
	}

	return "  " + status + "\n  " + m.help.View(m.keys)
}

// Snapshot returns the last snapshot the view rendered.
func (m Model) Snapshot() state.Snapshot {
	return m.snapshot
}

func frameCmd(fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// SendError creates a command that sends an error message.
func SendError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Error: err}
	}
}
