package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/idelchi/topfiles/internal/scan"
)

func logic(options scan.Options, verbose, debug bool) error {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	enableProgress := !debug && isatty.IsTerminal(os.Stderr.Fd())

	ctx := context.Background()

	// Simple progress callback that prints directly to stderr
	var progressHook func(scan.Stats)

	start := time.Now()

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(os.Stderr, "\033[?25l")
		defer fmt.Fprint(os.Stderr, "\033[?25h")

		progressHook = func(stats scan.Stats) {
			msg := fmt.Sprintf("[%s] Scanning… %d files processed (%d succeeded, %d failed)",
				time.Since(start).Round(time.Second), stats.Processed, stats.Succeeded, stats.Failed)
			fmt.Fprintf(os.Stderr, "\r\033[2K%s\r", msg)
		}
	}

	//nolint:forbidigo // Scan header to console
	fmt.Printf("Searching for the %d largest entries in %s:\n", options.NumEntries, options.Root)

	result, err := scan.Run(ctx, options, progressHook)

	// Clear the status line
	if enableProgress {
		fmt.Fprint(os.Stderr, "\r\033[2K\r")
	}

	if err != nil {
		return err
	}

	return PrintReport(result, verbose, os.Stdout)
}
