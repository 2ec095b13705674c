package state

import (
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/litescript/ls-orrery/internal/frameclock"
	"github.com/litescript/ls-orrery/internal/orbit"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Seed = 7
	cfg.Clock = clockwork.NewFakeClock()
	return cfg
}

func TestNewManager(t *testing.T) {
	m := NewManager(testConfig())

	if m == nil {
		t.Fatal("NewManager returned nil")
	}
	if m.Paused() {
		t.Error("should start running")
	}

	snap := m.Snapshot()
	if len(snap.Frames) != orbit.BodyCount {
		t.Errorf("Frames = %d, want %d", len(snap.Frames), orbit.BodyCount)
	}
	if snap.FrameCount != 0 {
		t.Errorf("FrameCount = %d, want 0", snap.FrameCount)
	}
	for i, b := range snap.Bodies {
		if snap.Speeds[i] != b.BaseAngularSpeed {
			t.Errorf("%s speed = %v, want base %v", b.Name, snap.Speeds[i], b.BaseAngularSpeed)
		}
	}
}

func TestNewManager_SeedIsDeterministic(t *testing.T) {
	a := NewManager(testConfig()).Snapshot()
	b := NewManager(testConfig()).Snapshot()

	for i := range a.States {
		if a.States[i].Angle != b.States[i].Angle {
			t.Fatalf("body %d angle differs for the same seed: %v vs %v", i, a.States[i].Angle, b.States[i].Angle)
		}
	}
}

func TestNewManager_ConfigSpeedsAndPause(t *testing.T) {
	cfg := testConfig()
	cfg.Paused = true
	cfg.Speeds = map[string]float64{"Earth": 3}
	m := NewManager(cfg)

	if !m.Paused() {
		t.Error("Paused = false, want true")
	}
	if got := m.Speeds()[2]; got != 3 {
		t.Errorf("Earth speed = %v, want 3", got)
	}
	if len(m.RecentEvents(10)) != 0 {
		t.Error("initial config should not record events")
	}
}

func TestManager_Tick(t *testing.T) {
	m := NewManager(testConfig())
	before := m.Snapshot()

	frames := m.Tick()
	after := m.Snapshot()

	if after.FrameCount != 1 {
		t.Errorf("FrameCount = %d, want 1", after.FrameCount)
	}
	if after.LastStep != orbit.DefaultTimeStep {
		t.Errorf("LastStep = %v, want %v", after.LastStep, orbit.DefaultTimeStep)
	}
	if len(frames) != orbit.BodyCount {
		t.Fatalf("Tick returned %d frames", len(frames))
	}

	earth := after.Bodies[2]
	want := before.States[2].Angle + orbit.DefaultTimeStep*earth.BaseAngularSpeed/earth.OrbitDistance
	if math.Abs(after.States[2].Angle-want) > 1e-12 {
		t.Errorf("Earth angle = %v, want %v", after.States[2].Angle, want)
	}
	if frames[2].Position.Y != orbit.OrbitPlaneHeight {
		t.Errorf("Earth Y = %v, want %v", frames[2].Position.Y, orbit.OrbitPlaneHeight)
	}
}

func TestManager_PauseFreezesButCountsFrames(t *testing.T) {
	m := NewManager(testConfig())
	m.SetPaused(true)
	before := m.Snapshot()

	for i := 0; i < 100; i++ {
		m.Tick()
	}
	after := m.Snapshot()

	if after.FrameCount != 100 {
		t.Errorf("FrameCount = %d, want 100", after.FrameCount)
	}
	for i := range before.States {
		if after.States[i].Angle != before.States[i].Angle {
			t.Errorf("body %d moved while paused", i)
		}
	}
}

func TestManager_SetSpeed(t *testing.T) {
	m := NewManager(testConfig())

	if err := m.SetSpeed(0, 2.5); err != nil {
		t.Fatalf("SetSpeed: %v", err)
	}
	if m.Speeds()[0] != 2.5 {
		t.Errorf("speed = %v, want 2.5", m.Speeds()[0])
	}

	events := m.RecentEvents(5)
	if len(events) != 1 || events[0].Type != EventSpeedChanged {
		t.Fatalf("events = %+v", events)
	}
	if events[0].Body != "Mercury" || events[0].OldSpeed != 4.15 || events[0].NewSpeed != 2.5 {
		t.Errorf("event = %+v", events[0])
	}

	// Same value is not an event.
	if err := m.SetSpeed(0, 2.5); err != nil {
		t.Fatal(err)
	}
	if len(m.RecentEvents(5)) != 1 {
		t.Error("no-op SetSpeed should not log an event")
	}

	if err := m.SetSpeed(42, 1); !errors.Is(err, orbit.ErrUnknownBody) {
		t.Errorf("err = %v, want ErrUnknownBody", err)
	}
}

func TestManager_TogglePauseEvents(t *testing.T) {
	m := NewManager(testConfig())

	if !m.TogglePause() {
		t.Error("first toggle should pause")
	}
	if m.TogglePause() {
		t.Error("second toggle should resume")
	}
	m.SetPaused(false) // already running

	events := m.RecentEvents(10)
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Type != EventPaused || events[1].Type != EventResumed {
		t.Errorf("events = %v, %v", events[0].Type, events[1].Type)
	}
}

func TestManager_ResumeResetsElapsedClock(t *testing.T) {
	clk := clockwork.NewFakeClock()
	cfg := testConfig()
	cfg.Clock = clk
	cfg.TimeStep = frameclock.ModeElapsed
	m := NewManager(cfg)

	m.Tick()
	m.TogglePause()
	clk.Advance(time.Minute)
	m.TogglePause()

	m.Tick()
	if got := m.Snapshot().LastStep; got != orbit.DefaultTimeStep {
		t.Errorf("first step after resume = %v, want %v", got, orbit.DefaultTimeStep)
	}
}

func TestManager_ResetSpeeds(t *testing.T) {
	m := NewManager(testConfig())
	_ = m.SetSpeed(3, 9)
	m.ResetSpeeds()

	if m.Speeds()[3] != 0.53 {
		t.Errorf("Mars speed = %v, want base 0.53", m.Speeds()[3])
	}
	events := m.RecentEvents(1)
	if len(events) != 1 || events[0].Type != EventSpeedsReset {
		t.Errorf("last event = %+v", events)
	}
}

func TestManager_EventRingBuffer(t *testing.T) {
	cfg := testConfig()
	cfg.MaxEvents = 3
	m := NewManager(cfg)

	for i := 0; i < 5; i++ {
		m.TogglePause()
		m.Tick()
	}

	events := m.Snapshot().Events
	if len(events) != 3 {
		t.Fatalf("events = %d, want 3", len(events))
	}
	// Oldest retained event is toggle #3 (pause), on frame 2.
	want := []EventType{EventPaused, EventResumed, EventPaused}
	for i, e := range events {
		if e.Type != want[i] {
			t.Errorf("events[%d] = %v, want %v", i, e.Type, want[i])
		}
		if e.Frame != int64(i+2) {
			t.Errorf("events[%d].Frame = %d, want %d", i, e.Frame, i+2)
		}
	}

	if got := m.RecentEvents(2); len(got) != 2 || got[1].Frame != 4 {
		t.Errorf("RecentEvents(2) = %+v", got)
	}
	for _, n := range []int{0, -1, -10} {
		if got := m.RecentEvents(n); got != nil {
			t.Errorf("RecentEvents(%d) = %+v, want nil", n, got)
		}
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{Event{Type: EventPaused}, "paused"},
		{Event{Type: EventResumed}, "resumed"},
		{Event{Type: EventSpeedsReset}, "speeds reset"},
		{Event{Type: EventSpeedChanged, Body: "Mars", OldSpeed: 0.53, NewSpeed: 1.2}, "Mars speed 0.53 → 1.2"},
		{Event{Type: "WARP"}, "WARP"},
	}
	for _, tt := range tests {
		if got := tt.event.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestManager_Snapshot_IsCopy(t *testing.T) {
	m := NewManager(testConfig())
	m.Tick()

	snap := m.Snapshot()
	snap.Frames[0].Name = "Vulcan"
	snap.Speeds[0] = 99

	again := m.Snapshot()
	if again.Frames[0].Name != "Mercury" || again.Speeds[0] == 99 {
		t.Error("Snapshot modification affected manager state")
	}
}

func TestManager_ExportFrame(t *testing.T) {
	m := NewManager(testConfig())
	m.Tick()
	m.Tick()

	e := m.ExportFrame()
	if e.Frame != 2 || e.TimeStep != orbit.DefaultTimeStep {
		t.Errorf("export = frame %d dt %v", e.Frame, e.TimeStep)
	}
	if len(e.Bodies) != orbit.BodyCount {
		t.Errorf("bodies = %d", len(e.Bodies))
	}
	if e.Events != nil {
		t.Errorf("events = %+v, want none before any control change", e.Events)
	}

	if err := m.SetSpeed(3, 2); err != nil {
		t.Fatal(err)
	}
	m.TogglePause()

	e = m.ExportFrame()
	if len(e.Events) != 2 {
		t.Fatalf("events = %d, want 2", len(e.Events))
	}
	if e.Events[0].Type != string(EventSpeedChanged) || e.Events[0].Message != "Mars speed 0.53 → 2" {
		t.Errorf("events[0] = %+v", e.Events[0])
	}
	if e.Events[1].Message != "paused" || e.Events[1].Frame != 2 {
		t.Errorf("events[1] = %+v", e.Events[1])
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	m := NewManager(testConfig())

	var wg sync.WaitGroup
	iterations := 100

	// Ticker goroutine
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			m.Tick()
		}
	}()

	// Control goroutine
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			_ = m.SetSpeed(i%orbit.BodyCount, float64(i%10)+0.5)
			if i%10 == 0 {
				m.TogglePause()
			}
		}
	}()

	// Reader goroutines
	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				_ = m.Snapshot()
				_ = m.RecentEvents(5)
				_ = m.ExportFrame()
			}
		}()
	}

	wg.Wait()

	if got := m.Snapshot().FrameCount; got != int64(iterations) {
		t.Errorf("FrameCount = %d, want %d", got, iterations)
	}
}
