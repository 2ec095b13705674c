package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-orrery/internal/orbit"
)

func TestRenderSliderBar(t *testing.T) {
	tests := []struct {
		name       string
		frac       float64
		width      int
		wantFilled int
	}{
		{"empty", 0.0, 10, 0},
		{"full", 1.0, 10, 10},
		{"half", 0.5, 10, 5},
		{"quarter", 0.25, 8, 2},
		{"over 100%", 1.5, 10, 10}, // capped at width
		{"negative", -0.2, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := renderSliderBar(tt.frac, tt.width)

			if !strings.HasPrefix(bar, "[") || !strings.HasSuffix(bar, "]") {
				t.Errorf("bar should have brackets, got %q", bar)
			}
			if got := strings.Count(bar, "█"); got != tt.wantFilled {
				t.Errorf("filled count = %d, want %d", got, tt.wantFilled)
			}
			if got := strings.Count(bar, "█") + strings.Count(bar, "░"); got != tt.width {
				t.Errorf("bar width = %d, want %d", got, tt.width)
			}
		})
	}
}

func TestControlsModelAdjustAppliesToTarget(t *testing.T) {
	mgr := testManager()
	snap := mgr.Snapshot()
	m := NewControlsModel(snap.Bodies, snap.Speeds, mgr)

	// Move to Earth and speed it up by one fine step.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.Selected() != 2 {
		t.Fatalf("Selected = %d, want 2", m.Selected())
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if cmd != nil {
		t.Errorf("successful adjust should not return a command")
	}
	if got := mgr.Speeds()[2]; got != 1.01 {
		t.Errorf("Earth speed = %v, want 1.01", got)
	}
	if m.Value(2) != "1.01" {
		t.Errorf("Value(2) = %q, want 1.01", m.Value(2))
	}

	// Coarse step down.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftLeft})
	if got := mgr.Speeds()[2]; got != 0.91 {
		t.Errorf("Earth speed after coarse step = %v, want 0.91", got)
	}
}

func TestControlsModelSelectWraps(t *testing.T) {
	m := NewControlsModel(orbit.Bodies(), nil, nil)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if m.Selected() != orbit.BodyCount-1 {
		t.Errorf("up from first = %d, want last", m.Selected())
	}

	// Nil target: adjusting only moves the slider.
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if cmd != nil {
		t.Error("nil target should not produce a command")
	}
	if m.Value(orbit.BodyCount-1) != "0.11" {
		t.Errorf("Neptune after step up = %q, want 0.11", m.Value(orbit.BodyCount-1))
	}
}

func TestControlsModelSlowerBelowMinimumKeepsSpeed(t *testing.T) {
	mgr := testManager()
	snap := mgr.Snapshot()
	m := NewControlsModel(snap.Bodies, snap.Speeds, mgr)

	// Up from Mercury wraps to Neptune, which starts below the slider minimum.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	for _, k := range []tea.KeyType{tea.KeyLeft, tea.KeyShiftLeft} {
		m, _ = m.Update(tea.KeyMsg{Type: k})
		if got := mgr.Speeds()[7]; got != 0.006 {
			t.Fatalf("Neptune speed after %v = %v, want 0.006", k, got)
		}
	}
	if m.Value(7) != "0.006" {
		t.Errorf("Neptune display = %q, want 0.006", m.Value(7))
	}
	if n := len(mgr.RecentEvents(10)); n != 0 {
		t.Errorf("events = %d, want none for a dropped step", n)
	}
}

func TestControlsModelReset(t *testing.T) {
	m := NewControlsModel(orbit.Bodies(), nil, nil)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})

	m = m.Reset(nil)
	if m.Value(0) != "4.15" {
		t.Errorf("Mercury after reset = %q, want 4.15", m.Value(0))
	}
}

func TestControlsModelView(t *testing.T) {
	m := NewControlsModel(orbit.Bodies(), nil, nil).SetSize(20)

	view := m.View()
	for _, want := range []string{"Speeds", "Mercury", "Neptune", "0.006", "Pause", "▸"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	view = m.SetPaused(true).View()
	if !strings.Contains(view, "Resume") {
		t.Error("paused panel should offer Resume")
	}
}
