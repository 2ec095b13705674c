package orbit

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"time"
)

// FrameExport is the JSON-serializable state of the system at one frame.
type FrameExport struct {
	Frame    int64         `json:"frame"`
	Paused   bool          `json:"paused"`
	TimeStep float64       `json:"time_step"`
	Bodies   []BodyExport  `json:"bodies"`
	Events   []EventExport `json:"events,omitempty"`
}

// EventExport is a control change (pause, speed) recorded during the run.
type EventExport struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Frame     int64     `json:"frame"`
	Body      string    `json:"body,omitempty"`
	OldSpeed  float64   `json:"old_speed,omitempty"`
	NewSpeed  float64   `json:"new_speed,omitempty"`
	Message   string    `json:"message"`
}

// maxSummaryEvents caps the events listed under the summary table.
const maxSummaryEvents = 5

// BodyExport is a JSON-friendly body with derived fields.
type BodyExport struct {
	Name        string  `json:"name"`
	Color       string  `json:"color"`
	Angle       float64 `json:"angle_rad"`
	AngleDeg    float64 `json:"angle_deg"`
	Speed       float64 `json:"speed"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Z           float64 `json:"z"`
	OrbitRadius float64 `json:"orbit_radius"`
}

// ExportFrame captures the system's current positions without advancing it.
func ExportFrame(sys *System, dt float64) *FrameExport {
	if sys == nil {
		return &FrameExport{TimeStep: dt}
	}

	export := &FrameExport{
		Frame:    sys.Frames(),
		Paused:   sys.Paused(),
		TimeStep: dt,
	}

	states := sys.States()
	for i, b := range sys.Bodies() {
		pos := Position(b, states[i].Angle)
		export.Bodies = append(export.Bodies, BodyExport{
			Name:        b.Name,
			Color:       b.Color.Hex(),
			Angle:       states[i].Angle,
			AngleDeg:    WrapAngle(states[i].Angle) * 180 / math.Pi,
			Speed:       states[i].SpeedMultiplier,
			X:           pos.X,
			Y:           pos.Y,
			Z:           pos.Z,
			OrbitRadius: pos.PlanarRadius(),
		})
	}

	return export
}

// WriteJSON writes the export as indented JSON.
func (e *FrameExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

// WriteSummaryTable writes a fixed-width text table of body positions.
func WriteSummaryTable(w io.Writer, e *FrameExport) {
	state := "running"
	if e.Paused {
		state = "paused"
	}
	fmt.Fprintf(w, "Orrery @ frame %d (%s, dt=%g)\n", e.Frame, state, e.TimeStep)
	fmt.Fprintln(w, strings.Repeat("─", 72))

	if len(e.Bodies) == 0 {
		fmt.Fprintln(w, "No bodies")
		return
	}

	fmt.Fprintf(w, "%-8s %8s %8s %10s %10s %10s %8s\n",
		"Body", "Angle°", "Speed", "X", "Y", "Z", "Radius")
	fmt.Fprintln(w, strings.Repeat("─", 72))

	for _, b := range e.Bodies {
		fmt.Fprintf(w, "%-8s %8.2f %8.3f %10.4f %10.4f %10.4f %8.3f\n",
			b.Name, b.AngleDeg, b.Speed, b.X, b.Y, b.Z, b.OrbitRadius)
	}

	fmt.Fprintf(w, "\nTotal: %d bodies\n", len(e.Bodies))

	if len(e.Events) == 0 {
		return
	}
	events := e.Events
	if len(events) > maxSummaryEvents {
		events = events[len(events)-maxSummaryEvents:]
	}
	fmt.Fprintln(w, "\nRecent events:")
	for _, ev := range events {
		fmt.Fprintf(w, "  #%-8d %s\n", ev.Frame, ev.Message)
	}
}

// WriteNowLine writes a single status line with every body's longitude.
func WriteNowLine(w io.Writer, e *FrameExport) {
	parts := make([]string, 0, len(e.Bodies))
	for _, b := range e.Bodies {
		parts = append(parts, fmt.Sprintf("%s %.0f°", abbreviate(b.Name), b.AngleDeg))
	}
	prefix := "▶"
	if e.Paused {
		prefix = "⏸"
	}
	fmt.Fprintf(w, "%s #%d  %s\n", prefix, e.Frame, strings.Join(parts, " · "))
}

func abbreviate(name string) string {
	r := []rune(name)
	if len(r) <= 3 {
		return name
	}
	return string(r[:3])
}
