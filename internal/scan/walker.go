package scan

import (
	"context"
	"io/fs"

	"github.com/charlievieth/fastwalk"
	"github.com/rs/zerolog/log"
)

// walker produces candidate regular-file paths from the tree under root,
// pruning excluded subtrees before descending into them.
type walker struct {
	root     string
	excludes *ExclusionSet
	tracker  *Tracker
	workers  int
}

// walk traverses the tree and sends candidate paths to out, closing it when
// the tree is exhausted. Each enumeration failure is accounted as one
// failure on the tracker and never stops the walk.
func (w *walker) walk(ctx context.Context, out chan<- string) {
	defer close(out)

	conf := &fastwalk.Config{
		Follow:     false, // never follow symlinks; keeps traversal finite
		NumWorkers: w.workers,
	}

	err := fastwalk.Walk(conf, w.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			w.tracker.Failure(path, err)

			return nil
		}

		if entry.IsDir() {
			if w.excludes.Excluded(path) {
				log.Debug().Str("dir", path).Msg("pruning excluded directory")

				return fastwalk.SkipDir
			}

			return nil
		}

		// Symlinks, sockets and devices are neither files nor directories
		// for ranking purposes.
		if !entry.Type().IsRegular() {
			return nil
		}

		select {
		case out <- path:
		case <-ctx.Done():
			return fs.SkipAll
		}

		return nil
	})
	if err != nil {
		w.tracker.Failure(w.root, err)
	}
}
