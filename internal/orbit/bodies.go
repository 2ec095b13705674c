// Package orbit holds the orrery's motion model: the fixed table of bodies,
// their per-body orbit state and the per-frame update that moves them.
package orbit

import (
	"fmt"
	"strings"
)

// RGB is a 24-bit color packed as 0xRRGGBB.
type RGB uint32

// Hex returns the color as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xffffff)
}

// Components returns the red, green and blue channels.
func (c RGB) Components() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Body is one orbiting body. Bodies are immutable once the registry is built.
type Body struct {
	Name             string
	Color            RGB
	Radius           float64 // Display radius
	OrbitDistance    float64 // Orbit radius in scene units
	BaseAngularSpeed float64 // Default speed multiplier
}

// Scene constants shared with the renderer.
const (
	// OrbitPlaneHeight is the Y coordinate of every orbit and of the sun.
	OrbitPlaneHeight = 10.0

	SunRadius             = 3.0
	SunColor          RGB = 0xffee88
	BackgroundColor   RGB = 0x111122
	SunName               = "Sun"
	giantRadiusCutoff     = 2.0
)

// registry is the canonical body table, innermost first.
var registry = [...]Body{
	{Name: "Mercury", Color: 0xb1b1b1, Radius: 0.38, OrbitDistance: 6, BaseAngularSpeed: 4.15},
	{Name: "Venus", Color: 0xeeddaa, Radius: 0.95, OrbitDistance: 8, BaseAngularSpeed: 1.62},
	{Name: "Earth", Color: 0x3399ff, Radius: 1.00, OrbitDistance: 10, BaseAngularSpeed: 1.00},
	{Name: "Mars", Color: 0xff5533, Radius: 0.53, OrbitDistance: 12, BaseAngularSpeed: 0.53},
	{Name: "Jupiter", Color: 0xffcc99, Radius: 11.2, OrbitDistance: 16, BaseAngularSpeed: 0.08},
	{Name: "Saturn", Color: 0xffe599, Radius: 9.45, OrbitDistance: 20, BaseAngularSpeed: 0.03},
	{Name: "Uranus", Color: 0x99ffff, Radius: 4.00, OrbitDistance: 24, BaseAngularSpeed: 0.012},
	{Name: "Neptune", Color: 0x3366ff, Radius: 3.88, OrbitDistance: 28, BaseAngularSpeed: 0.006},
}

// BodyCount is the number of orbiting bodies.
const BodyCount = len(registry)

// Bodies returns the body table in orbit order. The slice is a copy.
func Bodies() []Body {
	out := make([]Body, len(registry))
	copy(out, registry[:])
	return out
}

// Lookup finds a body by name, case-insensitively.
func Lookup(name string) (Body, int, bool) {
	for i, b := range registry {
		if strings.EqualFold(b.Name, name) {
			return b, i, true
		}
	}
	return Body{}, -1, false
}

// IsGiant reports whether the body renders with the large glyph.
func (b Body) IsGiant() bool {
	return b.Radius >= giantRadiusCutoff
}

// MaxOrbitDistance returns the largest orbit radius in the table.
func MaxOrbitDistance(bodies []Body) float64 {
	var d float64
	for _, b := range bodies {
		if b.OrbitDistance > d {
			d = b.OrbitDistance
		}
	}
	return d
}
