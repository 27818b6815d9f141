package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/topfiles/internal/scan"
)

// PrintReport writes the scan summary and the ranked entries: the
// traversal-complete marker with its error count, the processed/succeeded/
// failed line, one "path: size" line per ranked entry in descending size
// order, and the completion time. With verbose set, every failing path is
// listed with its error description.
func PrintReport(result *scan.Result, verbose bool, writer io.Writer) error {
	stats := result.Stats

	fmt.Fprintf(writer, "Directory scan complete (%d errors)\n", stats.Failed)
	fmt.Fprintf(writer, "Processed %d files (%d succeeded, %d failed)\n",
		stats.Processed, stats.Succeeded, stats.Failed)

	if verbose && len(stats.Errors) > 0 {
		fmt.Fprintln(writer, "\nErrors:")

		for _, scanErr := range stats.Errors {
			fmt.Fprintf(writer, "  %s: %s\n", scanErr.Path, scanErr.Err)
		}
	}

	fmt.Fprintln(writer)

	for _, entry := range result.Entries {
		fmt.Fprintf(writer, "%s: %s\n", entry.Path, humanize.IBytes(uint64(entry.Size))) //nolint:gosec // Sizes are never negative
	}

	fmt.Fprintf(writer, "\nCompleted in %v\n", result.Elapsed.Round(time.Millisecond))

	return nil
}
