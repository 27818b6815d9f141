package scan

// dispatch groups candidate paths into batches of at most size and submits
// them to batches, closing it when paths is exhausted. Batching amortizes
// hand-off overhead relative to per-file dispatch; the final partial batch
// is flushed on shutdown so no candidate is lost.
func dispatch(paths <-chan string, batches chan<- []string, size int) {
	defer close(batches)

	batch := make([]string, 0, size)

	for path := range paths {
		batch = append(batch, path)

		if len(batch) == size {
			batches <- batch
			batch = make([]string, 0, size)
		}
	}

	if len(batch) > 0 {
		batches <- batch
	}
}
