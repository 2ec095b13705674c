// Command ls-orrery is a terminal orrery: eight planets circling a sun, with a
// speed slider per planet and a pause button.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/config"
	"github.com/litescript/ls-orrery/internal/control"
	"github.com/litescript/ls-orrery/internal/frameclock"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/orbit"
	"github.com/litescript/ls-orrery/internal/state"
	"github.com/litescript/ls-orrery/internal/ui"
	"github.com/litescript/ls-orrery/internal/version"
)

// options holds every command-line flag.
type options struct {
	configPath string
	fps        int
	timestep   string
	seed       int64
	stars      int
	scale      string
	labels     string
	paused     bool
	speeds     []string
	logLevel   string
	logFile    string

	// Headless
	frames       int
	summary      bool
	snapshotPath string
	now          bool
	watch        time.Duration
}

func (o options) headless() bool {
	return o.frames > 0 || o.summary || o.snapshotPath != "" || o.now || o.watch > 0
}

func main() {
	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:          "ls-orrery",
		Short:        "Animated toy solar system in the terminal",
		Version:      version.Version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "YAML config file")
	f.IntVar(&opts.fps, "fps", config.DefaultFPS, "Frames per second")
	f.StringVar(&opts.timestep, "timestep", "fixed", "Time step mode (fixed, elapsed)")
	f.Int64Var(&opts.seed, "seed", 0, "Random seed for starting angles and stars (0 = time)")
	f.IntVar(&opts.stars, "stars", astro.DefaultStarCount, "Number of background stars")
	f.StringVar(&opts.scale, "scale", "linear", "Radial scale (linear, log, compressed)")
	f.StringVar(&opts.labels, "labels", config.LabelsAll, "Body labels (none, focused, all)")
	f.BoolVar(&opts.paused, "paused", false, "Start paused")
	f.StringArrayVar(&opts.speeds, "speed", nil, "Initial speed as Name=value, snapped like the slider (repeatable)")
	f.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	f.StringVar(&opts.logFile, "log-file", filepath.Join(os.TempDir(), "ls-orrery.log"), "Log file while the TUI runs")

	f.IntVar(&opts.frames, "frames", 0, "Advance N frames without the TUI, then print")
	f.BoolVar(&opts.summary, "summary", false, "Print text summary instead of TUI")
	f.StringVar(&opts.snapshotPath, "snapshot-path", "", "Export JSON snapshot to file (use - for stdout)")
	f.BoolVar(&opts.now, "now", false, "Single-line status mode")
	f.DurationVar(&opts.watch, "watch", 0, "Repeat output at interval (e.g., 2s)")

	cmd.AddCommand(bodiesCmd())
	return cmd
}

// resolveConfig loads the config file and lays explicitly set flags over it.
func resolveConfig(cmd *cobra.Command, opts options) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return cfg, err
	}

	f := cmd.Flags()
	if f.Changed("fps") {
		cfg.FPS = opts.fps
	}
	if f.Changed("timestep") {
		mode, err := frameclock.ParseMode(opts.timestep)
		if err != nil {
			return cfg, fmt.Errorf("--timestep: %w", err)
		}
		cfg.TimeStep = mode
	}
	if f.Changed("seed") {
		cfg.Seed = opts.seed
	}
	if f.Changed("stars") {
		cfg.Stars = opts.stars
	}
	if f.Changed("scale") {
		mode, ok := astro.ParseScaleMode(opts.scale)
		if !ok {
			return cfg, fmt.Errorf("--scale: %w: unknown scale %q", config.ErrInvalid, opts.scale)
		}
		cfg.Scale = mode
	}
	if f.Changed("labels") {
		cfg.Labels = opts.labels
	}
	if f.Changed("paused") {
		cfg.StartPaused = opts.paused
	}
	for _, kv := range opts.speeds {
		name, v, err := parseSpeedFlag(kv)
		if err != nil {
			return cfg, fmt.Errorf("--speed: %w", err)
		}
		cfg.Speeds[name] = v
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// parseSpeedFlag reads "Name=value" and returns the canonical body name and
// the value as the body's slider would hold it.
func parseSpeedFlag(kv string) (string, float64, error) {
	name, val, ok := strings.Cut(kv, "=")
	if !ok {
		return "", 0, fmt.Errorf("%w: %q is not Name=value", config.ErrInvalid, kv)
	}
	body, _, found := orbit.Lookup(strings.TrimSpace(name))
	if !found {
		return "", 0, fmt.Errorf("%w: unknown body %q", config.ErrInvalid, name)
	}
	s := control.NewSpeedSlider(body.BaseAngularSpeed)
	if err := s.SetString(val); err != nil {
		return "", 0, fmt.Errorf("%s: %w", body.Name, err)
	}
	return body.Name, s.Value, nil
}

func run(cmd *cobra.Command, opts options) error {
	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}
	level := logging.ParseLevel(opts.logLevel)

	clk := clockwork.NewRealClock()
	stateCfg := state.DefaultConfig()
	stateCfg.TimeStep = cfg.TimeStep
	stateCfg.Seed = cfg.Seed
	stateCfg.Paused = cfg.StartPaused
	stateCfg.Speeds = cfg.Speeds
	stateCfg.Clock = clk
	stateMgr := state.NewManager(stateCfg)

	out := cmd.OutOrStdout()

	// Headless mode: no TUI. Also used when stdout is not a terminal.
	if !opts.headless() && !isTerminal(out) {
		opts.summary = true
	}
	if opts.headless() {
		logger := logging.New(level)
		logger.SetOutput(cmd.ErrOrStderr())
		return runHeadless(cmd.Context(), stateMgr, opts, cfg.FPS, out, clk, logger.With("component", "headless"))
	}

	// The TUI owns the terminal, so logs go to a file.
	logger, closeLog, err := logging.OpenFile(opts.logFile, level)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()
	logger.Info("ls-orrery %s starting: fps=%d timestep=%s seed=%d", version.Version, cfg.FPS, cfg.TimeStep, cfg.Seed)

	model := ui.New(stateMgr, ui.Options{
		FPS:    cfg.FPS,
		Stars:  newStarfield(cfg),
		Labels: ui.ParseLabelMode(cfg.Labels),
		Scale:  cfg.Scale,
		Logger: logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run TUI: %w", err)
	}
	logger.Info("exiting at frame %d", stateMgr.Snapshot().FrameCount)
	return nil
}

// newStarfield builds the background stars. A fixed seed gives a fixed sky.
func newStarfield(cfg config.Config) astro.Starfield {
	var rnd astro.Rand
	if cfg.Seed != 0 {
		rnd = newRand(cfg.Seed + 1)
	}
	return astro.NewStarfield(cfg.Stars, astro.DefaultStarExtent, rnd)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
