// Package state provides thread-safe ownership of the running orrery session.
package state

import (
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/litescript/ls-orrery/internal/frameclock"
	"github.com/litescript/ls-orrery/internal/orbit"
)

// EventType represents the type of control event.
type EventType string

const (
	EventPaused       EventType = "PAUSED"
	EventResumed      EventType = "RESUMED"
	EventSpeedChanged EventType = "SPEED_CHANGED"
	EventSpeedsReset  EventType = "SPEEDS_RESET"
)

// Event records a control change and the frame it landed on.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Frame     int64     `json:"frame"`
	Body      string    `json:"body,omitempty"`
	OldSpeed  float64   `json:"old_speed,omitempty"`
	NewSpeed  float64   `json:"new_speed,omitempty"`
}

// String describes the event for the status line and the export.
func (e Event) String() string {
	switch e.Type {
	case EventPaused:
		return "paused"
	case EventResumed:
		return "resumed"
	case EventSpeedsReset:
		return "speeds reset"
	case EventSpeedChanged:
		return fmt.Sprintf("%s speed %s → %s", e.Body, formatSpeed(e.OldSpeed), formatSpeed(e.NewSpeed))
	default:
		return string(e.Type)
	}
}

func formatSpeed(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Manager owns the orbit system, the frame clock and the event log.
// Ticks and control changes are serialised by mu.
type Manager struct {
	mu sync.RWMutex

	sys      *orbit.System
	frameClk *frameclock.Clock
	clk      clockwork.Clock

	frames   []orbit.Frame
	lastStep float64

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int
}

// Config holds configuration for the state manager.
type Config struct {
	MaxEvents int
	TimeStep  frameclock.Mode
	Seed      int64 // 0 seeds from the clock
	Paused    bool
	Speeds    map[string]float64 // initial speeds by body name
	Bodies    []orbit.Body       // nil means the built-in registry
	Clock     clockwork.Clock    // nil means the real clock
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxEvents: 50,
		TimeStep:  frameclock.ModeFixed,
	}
}

// NewManager creates a session with randomised starting angles.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clockwork.NewRealClock()
	}
	bodies := cfg.Bodies
	if bodies == nil {
		bodies = orbit.Bodies()
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = clk.Now().UnixNano()
	}
	sys := orbit.NewSystem(bodies, rand.New(rand.NewSource(seed)))
	for i, b := range sys.Bodies() {
		if v, ok := cfg.Speeds[b.Name]; ok {
			_ = sys.SetSpeed(i, v)
		}
	}
	sys.SetPaused(cfg.Paused)

	return &Manager{
		sys:       sys,
		frameClk:  frameclock.New(cfg.TimeStep, clk),
		clk:       clk,
		frames:    sys.Positions(),
		maxEvents: maxEvents,
		events:    make([]Event, 0, maxEvents),
	}
}

// Tick advances the simulation by one frame and returns the new frames.
func (m *Manager) Tick() []orbit.Frame {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastStep = m.frameClk.Next()
	m.frames = m.sys.Step(m.lastStep)

	out := make([]orbit.Frame, len(m.frames))
	copy(out, m.frames)
	return out
}

// SetSpeed changes body i's speed from the next tick on.
func (m *Manager) SetSpeed(i int, v float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	old := m.sys.Speed(i)
	if err := m.sys.SetSpeed(i, v); err != nil {
		return fmt.Errorf("set speed of body %d: %w", i, err)
	}
	if old == v {
		return nil
	}
	m.addEvent(Event{
		Type:     EventSpeedChanged,
		Body:     m.sys.Bodies()[i].Name,
		OldSpeed: old,
		NewSpeed: v,
	})
	return nil
}

// TogglePause flips the pause flag and returns the new state.
func (m *Manager) TogglePause() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.setPaused(!m.sys.Paused())
}

// SetPaused sets the pause flag. Setting the current state is a no-op.
func (m *Manager) SetPaused(p bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setPaused(p)
}

func (m *Manager) setPaused(p bool) bool {
	if m.sys.Paused() == p {
		return p
	}
	m.sys.SetPaused(p)
	if p {
		m.addEvent(Event{Type: EventPaused})
	} else {
		// Time spent paused must not turn into one big elapsed step.
		m.frameClk.Reset()
		m.addEvent(Event{Type: EventResumed})
	}
	return p
}

// ResetSpeeds restores every body's base speed.
func (m *Manager) ResetSpeeds() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sys.ResetSpeeds()
	m.addEvent(Event{Type: EventSpeedsReset})
}

// Paused reports whether motion is frozen.
func (m *Manager) Paused() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sys.Paused()
}

// Bodies returns the body table.
func (m *Manager) Bodies() []orbit.Body {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sys.Bodies()
}

// Speeds returns every body's current speed multiplier.
func (m *Manager) Speeds() []float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.speeds()
}

func (m *Manager) speeds() []float64 {
	out := make([]float64, m.sys.Len())
	for i := range out {
		out[i] = m.sys.Speed(i)
	}
	return out
}

// ExportFrame captures the current frame and the event log for output.
func (m *Manager) ExportFrame() *orbit.FrameExport {
	m.mu.RLock()
	defer m.mu.RUnlock()
	export := orbit.ExportFrame(m.sys, m.lastStep)
	export.Events = convertEvents(m.getEventsOrdered())
	return export
}

// convertEvents converts Event to orbit.EventExport (avoiding import cycle).
func convertEvents(events []Event) []orbit.EventExport {
	if len(events) == 0 {
		return nil
	}
	out := make([]orbit.EventExport, len(events))
	for i, e := range events {
		out[i] = orbit.EventExport{
			Type:      string(e.Type),
			Timestamp: e.Timestamp,
			Frame:     e.Frame,
			Body:      e.Body,
			OldSpeed:  e.OldSpeed,
			NewSpeed:  e.NewSpeed,
			Message:   e.String(),
		}
	}
	return out
}

// addEvent adds an event to the ring buffer. Caller holds mu.
func (m *Manager) addEvent(e Event) {
	e.Timestamp = m.clk.Now()
	e.Frame = m.sys.Frames()
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Frames     []orbit.Frame
	Bodies     []orbit.Body
	States     []orbit.State
	Speeds     []float64
	Paused     bool
	FrameCount int64
	LastStep   float64
	Mode       frameclock.Mode
	Events     []Event
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	frames := make([]orbit.Frame, len(m.frames))
	copy(frames, m.frames)

	return Snapshot{
		Frames:     frames,
		Bodies:     m.sys.Bodies(),
		States:     m.sys.States(),
		Speeds:     m.speeds(),
		Paused:     m.sys.Paused(),
		FrameCount: m.sys.Frames(),
		LastStep:   m.lastStep,
		Mode:       m.frameClk.Mode(),
		Events:     m.getEventsOrdered(),
	}
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		idx := (m.eventWriteAt + i) % m.maxEvents
		result[i] = m.events[idx]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if n <= 0 {
		return nil
	}
	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}
