package scan

import (
	"context"
	"errors"
	"os"
	"sync"

	"golang.org/x/sync/semaphore"
)

// errNotRegular marks a candidate that changed type between discovery and
// stat, e.g. a file replaced by a directory or socket mid-scan.
var errNotRegular = errors.New("no longer a regular file")

// pool stats candidate paths with a fixed number of workers. A weighted
// semaphore shared across all workers keeps concurrently open handles under
// the observed descriptor ceiling; a worker blocks on acquire until a slot
// frees.
type pool struct {
	workers int
	topN    int
	minSize int64
	handles *semaphore.Weighted
	tracker *Tracker
	agg     *Aggregator
}

// run consumes batches until the channel is closed and every worker has
// merged its local ranking into the shared aggregator.
func (p *pool) run(ctx context.Context, batches <-chan []string) {
	var wg sync.WaitGroup

	wg.Add(p.workers)

	for i := 0; i < p.workers; i++ {
		go func() {
			defer wg.Done()

			// Worker-local ranking keeps the aggregator lock off the hot
			// path; merged once at shutdown.
			local := NewTopEntries(p.topN)

			for batch := range batches {
				p.process(ctx, batch, local)
			}

			p.agg.Merge(local)
		}()
	}

	wg.Wait()
}

// process stats every path in a batch. One failure never aborts the batch or
// the scan; the next path is tried regardless.
func (p *pool) process(ctx context.Context, batch []string, local *TopEntries) {
	for _, path := range batch {
		if err := p.handles.Acquire(ctx, 1); err != nil {
			p.tracker.Failure(path, err)

			continue
		}

		info, err := os.Lstat(path)
		p.handles.Release(1)

		switch {
		case err != nil:
			p.tracker.Failure(path, err)
		case !info.Mode().IsRegular():
			p.tracker.Failure(path, errNotRegular)
		default:
			p.tracker.Success()

			if info.Size() >= p.minSize {
				local.Insert(path, info.Size())
			}
		}
	}
}
