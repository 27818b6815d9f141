package scan

import "time"

// Defaults applied by Run when the corresponding option is zero.
const (
	// DefaultNumEntries is the default ranking size.
	DefaultNumEntries = 10
	// DefaultBatchSize is the default number of paths per batch.
	DefaultBatchSize = 1000
	// DefaultProgressInterval is the default progress callback cadence.
	DefaultProgressInterval = 500 * time.Millisecond
)

// Options configures a scan.
type Options struct {
	// Root is the directory to scan.
	Root string
	// NumEntries is the ranking size N (0 = DefaultNumEntries).
	NumEntries int
	// BatchSize is the number of paths handed to the pool at once
	// (0 = DefaultBatchSize).
	BatchSize int
	// Workers is the worker-pool size (0 = detected hardware concurrency).
	Workers int
	// MinSize keeps smaller files out of the ranking, in bytes. They still
	// count as processed.
	MinSize int64
	// ExcludedDirsFile points to a newline-delimited list of directories to
	// prune. Empty means no exclusions.
	ExcludedDirsFile string
	// ProgressInterval controls progress callback cadence
	// (0 = DefaultProgressInterval).
	ProgressInterval time.Duration
}

// Result is the outcome of a completed scan.
type Result struct {
	// Entries holds the N largest files, size descending, path ascending on
	// equal sizes.
	Entries []FileEntry `json:"entries"`
	// Stats is the final progress snapshot including error details.
	Stats Stats `json:"stats"`
	// Elapsed is the total scan duration.
	Elapsed time.Duration `json:"elapsed"`
	// Workers is the resolved worker-pool size.
	Workers int `json:"workers"`
	// MaxOpenFiles is the handle ceiling the scan ran under.
	MaxOpenFiles int64 `json:"max_open_files"`
}
