package scan

import (
	"container/heap"
	"sort"
	"sync"
)

// FileEntry is a single ranked file. Immutable once created.
type FileEntry struct {
	// Path is the absolute file path.
	Path string `json:"path"`
	// Size is the file size in bytes.
	Size int64 `json:"size"`
}

// entryHeap is a min-heap whose root is the eviction candidate: the smallest
// size, with equal sizes ordered so the lexicographically greatest path goes
// first. Evicting the greater path on ties keeps the smaller paths retained,
// which makes the final ranking stable across runs.
type entryHeap []FileEntry

func (h entryHeap) Len() int { return len(h) }

func (h entryHeap) Less(i, j int) bool {
	if h[i].Size != h[j].Size {
		return h[i].Size < h[j].Size
	}

	return h[i].Path > h[j].Path
}

func (h entryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x any) { *h = append(*h, x.(FileEntry)) }

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	entry := old[n-1]
	*h = old[:n-1]

	return entry
}

// TopEntries keeps the N largest entries offered to it, N fixed at
// construction. It is not safe for concurrent use; workers hold one each and
// merge into a shared Aggregator when they finish.
type TopEntries struct {
	entries entryHeap
	max     int
}

// NewTopEntries creates a ranking bounded to max entries.
func NewTopEntries(max int) *TopEntries {
	return &TopEntries{
		entries: make(entryHeap, 0, max+1),
		max:     max,
	}
}

// Insert offers an entry. It is admitted only if the ranking is not yet full
// or it beats the current minimum, in which case the minimum is evicted.
func (t *TopEntries) Insert(path string, size int64) {
	if t.max <= 0 {
		return
	}

	if t.entries.Len() < t.max {
		heap.Push(&t.entries, FileEntry{Path: path, Size: size})

		return
	}

	smallest := t.entries[0]
	if size > smallest.Size || (size == smallest.Size && path < smallest.Path) {
		t.entries[0] = FileEntry{Path: path, Size: size}
		heap.Fix(&t.entries, 0)
	}
}

// Len returns the number of retained entries.
func (t *TopEntries) Len() int { return t.entries.Len() }

// Merge folds every entry retained by other into t.
func (t *TopEntries) Merge(other *TopEntries) {
	for _, entry := range other.entries {
		t.Insert(entry.Path, entry.Size)
	}
}

// Drain empties the ranking, returning at most N entries sorted by size
// descending and by path ascending on ties.
func (t *TopEntries) Drain() []FileEntry {
	entries := make([]FileEntry, len(t.entries))
	copy(entries, t.entries)
	t.entries = t.entries[:0]

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Size != entries[j].Size {
			return entries[i].Size > entries[j].Size
		}

		return entries[i].Path < entries[j].Path
	})

	return entries
}

// Aggregator is the shared, thread-safe ranking the worker pool drains into.
// The lock is held only for heap operations, never across I/O.
type Aggregator struct {
	mu  sync.Mutex
	top *TopEntries
}

// NewAggregator creates an aggregator retaining the max largest entries.
func NewAggregator(max int) *Aggregator {
	return &Aggregator{top: NewTopEntries(max)}
}

// Add offers a single entry.
func (a *Aggregator) Add(path string, size int64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.top.Insert(path, size)
}

// Merge folds a worker-local ranking into the shared one.
func (a *Aggregator) Merge(local *TopEntries) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.top.Merge(local)
}

// Drain extracts the final ranking, size descending, path ascending on ties.
func (a *Aggregator) Drain() []FileEntry {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.top.Drain()
}
