// Package astro provides the scene geometry shared by the simulation and the
// terminal renderer: vectors, the top-down projection and the starfield.
package astro

import (
	"math"
)

// Vec3 represents a point or direction in scene space.
//
// Scene space follows the renderer convention: Y is up, the orbital plane is
// parallel to X/Z, and the camera looks straight down the Y axis.
type Vec3 struct {
	X, Y, Z float64
}

// Norm returns the magnitude of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalized returns a unit vector in the same direction.
func (v Vec3) Normalized() Vec3 {
	n := v.Norm()
	if n == 0 {
		return Vec3{}
	}
	return Vec3{X: v.X / n, Y: v.Y / n, Z: v.Z / n}
}

// Scale returns the vector scaled by a factor.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Add returns the sum of two vectors.
func (v Vec3) Add(u Vec3) Vec3 {
	return Vec3{X: v.X + u.X, Y: v.Y + u.Y, Z: v.Z + u.Z}
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{X: v.X - u.X, Y: v.Y - u.Y, Z: v.Z - u.Z}
}

// PlanarRadius returns the distance from the Y axis (radius in the X/Z plane).
func (v Vec3) PlanarRadius() float64 {
	return math.Hypot(v.X, v.Z)
}

// PlanarAngle returns the angle in the X/Z plane in radians, in (-π, π].
func (v Vec3) PlanarAngle() float64 {
	return math.Atan2(v.Z, v.X)
}

// ProjectedPoint represents a 2D projected position with metadata.
type ProjectedPoint struct {
	X float64 // Screen X (display units, right positive)
	Y float64 // Screen Y (display units, down positive, follows +Z)
	R float64 // Original planar radius in scene units
	H float64 // Original height above the scene origin
}

// ScaleMode defines how radial distances are mapped to screen space.
type ScaleMode int

const (
	// ScaleLinear keeps scene distances proportional.
	ScaleLinear ScaleMode = iota

	// ScaleLogR uses logarithmic scaling: r_display = log10(r + 1) * k
	ScaleLogR

	// ScaleCompressed uses square-root scaling, a middle ground that keeps the
	// inner orbits apart without crushing the outer ones.
	ScaleCompressed
)

// String returns a short display name for the mode.
func (m ScaleMode) String() string {
	switch m {
	case ScaleLinear:
		return "Linear"
	case ScaleLogR:
		return "Log"
	case ScaleCompressed:
		return "Sqrt"
	default:
		return "Unknown"
	}
}

// ParseScaleMode parses a scale mode name as used in config files.
func ParseScaleMode(s string) (ScaleMode, bool) {
	switch s {
	case "linear", "":
		return ScaleLinear, true
	case "log", "logr":
		return ScaleLogR, true
	case "compressed", "sqrt":
		return ScaleCompressed, true
	default:
		return ScaleLinear, false
	}
}

// ProjectionConfig configures the top-down projection.
type ProjectionConfig struct {
	Scale float64   // Zoom factor
	Mode  ScaleMode // Radial scaling mode
	MaxR  float64   // Scene radius that should land at display radius 1.0
}

// DefaultProjectionConfig returns a configuration that fits the outermost
// orbit of the default system.
func DefaultProjectionConfig() ProjectionConfig {
	return ProjectionConfig{
		Scale: 1.0,
		Mode:  ScaleLinear,
		MaxR:  30,
	}
}

// ProjectTopDown projects a scene position onto the screen plane as seen from
// a camera above the system looking down. Radial distance is remapped by the
// scale mode so that MaxR projects to 1.0 before zoom; the planar angle is
// always preserved.
func ProjectTopDown(v Vec3, cfg ProjectionConfig) ProjectedPoint {
	r := v.PlanarRadius()
	rDisplay := scaleRadius(r, cfg)
	angle := v.PlanarAngle()

	return ProjectedPoint{
		X: rDisplay * math.Cos(angle) * cfg.Scale,
		Y: rDisplay * math.Sin(angle) * cfg.Scale,
		R: r,
		H: v.Y,
	}
}

// ProjectRadius returns the display radius of a circle of scene radius r,
// including zoom. Used for orbit rings.
func ProjectRadius(r float64, cfg ProjectionConfig) float64 {
	return scaleRadius(r, cfg) * cfg.Scale
}

// scaleRadius applies the configured scaling mode, normalised so MaxR maps to 1.
func scaleRadius(r float64, cfg ProjectionConfig) float64 {
	maxR := cfg.MaxR
	if maxR <= 0 {
		maxR = 1
	}
	if r < 0 {
		r = 0
	}

	switch cfg.Mode {
	case ScaleLogR:
		return math.Log10(r+1) / math.Log10(maxR+1)
	case ScaleCompressed:
		return math.Sqrt(r / maxR)
	default:
		return r / maxR
	}
}
