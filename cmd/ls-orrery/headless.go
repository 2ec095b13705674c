package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/orbit"
	"github.com/litescript/ls-orrery/internal/state"
)

func newRand(seed int64) astro.Rand {
	return rand.New(rand.NewSource(seed))
}

// framesPerOutput is how far the system advances before each headless print.
// In watch mode with no --frames it tracks wall time at the configured rate.
func framesPerOutput(opts options, fps int) int {
	if opts.frames > 0 || opts.watch <= 0 {
		return opts.frames
	}
	return int(math.Max(1, math.Round(opts.watch.Seconds()*float64(fps))))
}

// runHeadless handles all headless modes without starting the TUI.
func runHeadless(ctx context.Context, stateMgr *state.Manager, opts options, fps int, out io.Writer, clk clockwork.Clock, logger *logging.Logger) error {
	step := framesPerOutput(opts, fps)

	outputOnce := func() error {
		for i := 0; i < step; i++ {
			stateMgr.Tick()
		}
		export := stateMgr.ExportFrame()
		logger.Debug("headless output at frame %d", export.Frame)

		// Now mode
		if opts.now {
			orbit.WriteNowLine(out, export)
			return nil
		}

		// Export JSON if requested
		if opts.snapshotPath != "" {
			if err := writeSnapshot(export, opts.snapshotPath, out); err != nil {
				return err
			}
		}

		// The table is the default when nothing else was asked for.
		if opts.summary || opts.snapshotPath == "" {
			orbit.WriteSummaryTable(out, export)
		}
		return nil
	}

	// Single run
	if opts.watch <= 0 {
		return outputOnce()
	}

	// Watch mode: repeat at interval
	if err := outputOnce(); err != nil {
		logger.Error("headless output: %v", err)
	}

	ticker := clk.NewTicker(opts.watch)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.Chan():
			if !opts.now {
				fmt.Fprintln(out) // Blank line between outputs (except now mode)
			}
			if err := outputOnce(); err != nil {
				logger.Error("headless output: %v", err)
			}
		}
	}
}

// writeSnapshot writes the JSON export to path, or to out when path is "-".
func writeSnapshot(export *orbit.FrameExport, path string, out io.Writer) error {
	if path == "-" {
		if err := export.WriteJSON(out); err != nil {
			return fmt.Errorf("write JSON to stdout: %w", err)
		}
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}
	defer f.Close()
	if err := export.WriteJSON(f); err != nil {
		return fmt.Errorf("write JSON to file: %w", err)
	}
	return nil
}

func bodiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bodies",
		Short: "List the orbiting bodies and their default speeds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			writeBodies(cmd.OutOrStdout(), orbit.Bodies())
			return nil
		},
	}
}

func writeBodies(w io.Writer, bodies []orbit.Body) {
	fmt.Fprintf(w, "%-8s %-8s %7s %8s %7s %12s\n", "Body", "Color", "Radius", "Distance", "Speed", "Period")
	for _, b := range bodies {
		period := "frozen"
		if n := orbit.FramesPerOrbit(b, b.BaseAngularSpeed); !math.IsInf(n, 1) {
			period = fmt.Sprintf("%.0f fr", n)
		}
		fmt.Fprintf(w, "%-8s %-8s %7.2f %8.0f %7.3f %12s\n",
			b.Name, b.Color.Hex(), b.Radius, b.OrbitDistance, b.BaseAngularSpeed, period)
	}
}
