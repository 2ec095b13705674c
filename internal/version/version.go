// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Elapsed-time frame clock, YAML config, headless snapshot/watch modes
// 0.2.0 - Speed slider panel, zoom spring, scale modes, starfield
// 0.1.0 - Initial release: eight-planet orrery with pause
