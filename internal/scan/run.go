package scan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"
)

// startProgressReporter invokes hook with a counter snapshot on each tick
// until ctx is done.
func startProgressReporter(ctx context.Context, tracker *Tracker, hook func(Stats), interval time.Duration) {
	if hook == nil {
		return
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				hook(tracker.Snapshot())
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Run scans opt.Root and returns the N largest regular files under it,
// together with final progress statistics.
//
// The walker streams candidate paths to the dispatcher, which batches them
// for the worker pool; workers stat each path under the open-handle
// semaphore and rank the sizes. The result set is deterministic for a given
// filesystem state regardless of batch size or worker count.
//
// Per-file and per-directory failures are accumulated on the tracker and
// never abort the scan. Only configuration problems return an error: a
// missing or non-directory root, or an unreadable exclusion file.
func Run(ctx context.Context, opt Options, progressHook func(Stats)) (*Result, error) {
	if opt.Root == "" {
		opt.Root = "."
	}

	if opt.NumEntries <= 0 {
		opt.NumEntries = DefaultNumEntries
	}

	if opt.BatchSize <= 0 {
		opt.BatchSize = DefaultBatchSize
	}

	if opt.Workers <= 0 {
		opt.Workers = runtime.NumCPU()
	}

	root, err := filepath.Abs(opt.Root)
	if err != nil {
		return nil, fmt.Errorf("resolving root %q: %w", opt.Root, err)
	}

	// Canonicalize the root so walked paths compare exactly against
	// exclusion entries, which are canonicalized the same way.
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}

	if info, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("accessing path %q: %w", root, err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("path %q is not a directory", root)
	}

	excludes := NewExclusionSet(nil)
	if opt.ExcludedDirsFile != "" {
		if excludes, err = LoadExclusions(opt.ExcludedDirsFile); err != nil {
			return nil, err
		}
	}

	maxOpen := detectFDLimit()

	log.Info().Int("workers", opt.Workers).Msg("preparing to scan")
	log.Info().Int64("ceiling", maxOpen).Msg("limiting open file handles")

	tracker := &Tracker{}
	aggregator := NewAggregator(opt.NumEntries)

	// Child context so the progress reporter stops with the scan.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	startProgressReporter(ctx, tracker, progressHook, opt.ProgressInterval)

	start := time.Now()

	paths := make(chan string, opt.BatchSize)
	batches := make(chan []string, opt.Workers)

	producer := &walker{
		root:     root,
		excludes: excludes,
		tracker:  tracker,
		workers:  opt.Workers,
	}
	go producer.walk(ctx, paths)

	go dispatch(paths, batches, opt.BatchSize)

	workers := &pool{
		workers: opt.Workers,
		topN:    opt.NumEntries,
		minSize: opt.MinSize,
		handles: semaphore.NewWeighted(maxOpen),
		tracker: tracker,
		agg:     aggregator,
	}
	workers.run(ctx, batches)

	return &Result{
		Entries:      aggregator.Drain(),
		Stats:        tracker.Final(),
		Elapsed:      time.Since(start),
		Workers:      opt.Workers,
		MaxOpenFiles: maxOpen,
	}, nil
}
