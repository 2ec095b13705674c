package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-orrery/internal/astro"
)

func newTestModel() Model {
	m := New(testManager(), Options{FPS: 30, Stars: testStars(), Labels: LabelAll, Scale: astro.ScaleLinear})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 45})
	return next.(Model)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return mm, cmd
}

func TestModelInitialView(t *testing.T) {
	m := New(testManager(), Options{})
	if m.View() != "Initializing..." {
		t.Errorf("view before size = %q", m.View())
	}
	if m.Init() == nil {
		t.Error("Init should schedule the first frame")
	}
}

func TestModelFrameTicks(t *testing.T) {
	m := newTestModel()

	m, cmd := update(t, m, FrameMsg(time.Now()))
	if cmd == nil {
		t.Error("frame should schedule the next frame")
	}
	m, _ = update(t, m, FrameMsg(time.Now()))

	if m.Snapshot().FrameCount != 2 {
		t.Errorf("FrameCount = %d, want 2", m.Snapshot().FrameCount)
	}
	if !strings.Contains(m.View(), "frame #2") {
		t.Error("footer should show the frame counter")
	}
}

func TestModelPauseToggle(t *testing.T) {
	m := newTestModel()

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if !m.state.Paused() {
		t.Fatal("space should pause")
	}
	if !strings.Contains(m.View(), "Resume") {
		t.Error("pause button should read Resume while paused")
	}
	if !strings.Contains(m.View(), "last: paused @#0") {
		t.Error("footer should show the pause event")
	}

	before := m.state.Snapshot().States
	for i := 0; i < 10; i++ {
		m, _ = update(t, m, FrameMsg(time.Now()))
	}
	after := m.state.Snapshot().States
	for i := range before {
		if before[i].Angle != after[i].Angle {
			t.Errorf("body %d moved while paused", i)
		}
	}

	m, _ = update(t, m, runeKey('p'))
	if m.state.Paused() {
		t.Error("p should resume")
	}
}

func TestModelSliderThenFrame(t *testing.T) {
	m := newTestModel()

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftRight})
	if got := m.state.Speeds()[0]; got != 4.25 {
		t.Errorf("Mercury speed = %v, want 4.25", got)
	}
	if !strings.Contains(m.View(), "last: Mercury speed 4.15 → 4.25") {
		t.Error("footer should show the speed change")
	}

	m, _ = update(t, m, runeKey('r'))
	if got := m.state.Speeds()[0]; got != 4.15 {
		t.Errorf("Mercury speed after reset = %v, want 4.15", got)
	}
	if m.controls.Value(0) != "4.15" {
		t.Errorf("slider after reset = %q", m.controls.Value(0))
	}
	if !strings.Contains(m.View(), "last: speeds reset") {
		t.Error("footer should show the reset event")
	}
}

func TestModelPanelToggle(t *testing.T) {
	m := newTestModel()
	withPanel := m.orrery.width

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.showPanel {
		t.Fatal("tab should hide the panel")
	}
	if m.orrery.width != 140 || withPanel >= 140 {
		t.Errorf("orrery width = %d (was %d), want full width without panel", m.orrery.width, withPanel)
	}
	if strings.Contains(m.View(), "Speeds") {
		t.Error("hidden panel should not render")
	}
}

func TestModelHelpToggle(t *testing.T) {
	m := newTestModel()
	short := m.footerHeight()

	m, _ = update(t, m, runeKey('?'))
	if !m.help.ShowAll {
		t.Fatal("? should expand help")
	}
	if m.footerHeight() <= short {
		t.Errorf("full help footer %d should be taller than %d", m.footerHeight(), short)
	}
}

func TestModelForwardsViewKeys(t *testing.T) {
	m := newTestModel()
	m, _ = update(t, m, runeKey('k'))
	if m.orrery.focusIdx != 0 {
		t.Errorf("focusIdx = %d, want 0", m.orrery.focusIdx)
	}
}

func TestModelErrorMsg(t *testing.T) {
	m := newTestModel()
	m, _ = update(t, m, ErrorMsg{Error: errors.New("boom")})
	if !strings.Contains(m.View(), "ERROR: boom") {
		t.Error("footer should show the error")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel()
	_, cmd := update(t, m, runeKey('q'))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestGradientColor(t *testing.T) {
	for _, c := range []string{
		gradientColor(0, 0, 10, 2),
		gradientColor(9, 0, 10, 2),
		gradientColor(5, 1, 10, 2),
		gradientColor(0, 0, 1, 0),
	} {
		if len(c) != 7 || c[0] != '#' {
			t.Errorf("gradientColor = %q, want #rrggbb", c)
		}
	}
}
