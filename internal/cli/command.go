// Package cli provides the command-line surface for topfiles: flag parsing
// and validation, progress rendering and report formatting around the scan
// engine.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/idelchi/topfiles/internal/scan"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// Execute runs the CLI with the provided arguments.
func (c CLI) Execute() error {
	var (
		options     scan.Options
		directory   string
		minSizeStr  string
		verbose     bool
		debug       bool
		showVersion bool
	)

	cmd := &cobra.Command{
		Use:   "topfiles [flags]",
		Short: "Find the largest files under a directory tree",
		Long: heredoc.Doc(`
			topfiles locates the N largest files nested anywhere under a
			directory tree.

			Directories listed in the exclusion file (one per line, '#' for
			comments) are pruned before the walker descends into them.
			Symbolic links are never followed. Unreadable files and
			directories are counted, reported and skipped; only
			configuration errors abort the run.
		`),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			if showVersion {
				//nolint:forbidigo // Version output to console
				fmt.Println(c.version)

				return nil
			}

			if options.NumEntries <= 0 {
				return errors.New("num-entries must be positive")
			}

			if options.BatchSize <= 0 {
				return errors.New("batch-size must be positive")
			}

			if options.Workers < 0 {
				return errors.New("workers cannot be negative")
			}

			if directory == "" {
				cwd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("determining current working directory: %w", err)
				}

				directory = cwd
			}

			options.Root = directory

			size, err := humanize.ParseBytes(minSizeStr)
			if err != nil {
				return fmt.Errorf("invalid min-size: %w", err)
			}

			options.MinSize = int64(size) //nolint:gosec // Size conversion from humanize is safe

			return logic(options, verbose, debug)
		},
	}

	flags := cmd.Flags()
	flags.SortFlags = false

	flags.IntVarP(&options.NumEntries, "num-entries", "n", scan.DefaultNumEntries,
		"Number of largest entries to output")
	flags.IntVarP(&options.BatchSize, "batch-size", "b", scan.DefaultBatchSize,
		"Number of files to size at one time")
	flags.StringVarP(&directory, "directory", "d", "",
		"Directory to scan. Defaults to the current working directory")
	flags.StringVarP(&options.ExcludedDirsFile, "excluded-dirs-file", "x", "",
		"Path to a file where each line specifies a directory to ignore")
	flags.StringVar(&minSizeStr, "min-size", "0B", "Minimum file size to rank (e.g., 1KB)")
	flags.IntVar(&options.Workers, "workers", 0, "Worker pool size (0 = detected hardware concurrency)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "List every failing path in the final report")
	flags.BoolVar(&debug, "debug", false, "Enable debug output")
	flags.BoolVar(&showVersion, "version", false, "Show version and exit")

	return cmd.Execute()
}
