package scan

import (
	"sync"
	"sync/atomic"
)

// ScanError records one path that could not be processed.
type ScanError struct {
	// Path is the file or directory that failed.
	Path string `json:"path"`
	// Err is the error description.
	Err string `json:"error"`
}

// Stats is a snapshot of scan progress. Processed equals Succeeded plus
// Failed once the update for a given file has completed.
type Stats struct {
	// Processed is the number of files accounted for so far.
	Processed int64 `json:"processed"`
	// Succeeded is the number of files whose metadata was read.
	Succeeded int64 `json:"succeeded"`
	// Failed is the number of files and directories that errored.
	Failed int64 `json:"failed"`
	// Errors holds per-path detail for the verbose report. Only populated
	// by Final.
	Errors []ScanError `json:"errors,omitempty"`
}

// Tracker accounts progress and failures across all workers. Counters are
// atomic so the hot path never contends; the error list takes a short lock.
type Tracker struct {
	processed atomic.Int64
	succeeded atomic.Int64
	failed    atomic.Int64

	mu     sync.Mutex
	errors []ScanError
}

// Success accounts one file whose metadata was read.
func (t *Tracker) Success() {
	t.succeeded.Add(1)
	t.processed.Add(1)
}

// Failure accounts one file or directory that could not be processed,
// keeping the error detail for the verbose report.
func (t *Tracker) Failure(path string, err error) {
	t.failed.Add(1)
	t.processed.Add(1)

	t.mu.Lock()
	t.errors = append(t.errors, ScanError{Path: path, Err: err.Error()})
	t.mu.Unlock()
}

// Snapshot returns the current counters without error detail. The counters
// are read individually, which is accurate enough for a progress line.
func (t *Tracker) Snapshot() Stats {
	return Stats{
		Processed: t.processed.Load(),
		Succeeded: t.succeeded.Load(),
		Failed:    t.failed.Load(),
	}
}

// Final returns the counters together with a copy of the collected errors.
// Meant to be called once, after all workers have finished.
func (t *Tracker) Final() Stats {
	stats := t.Snapshot()

	t.mu.Lock()
	stats.Errors = make([]ScanError, len(t.errors))
	copy(stats.Errors, t.errors)
	t.mu.Unlock()

	return stats
}
