package scan

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFile creates a file of exactly size bytes, creating parents as needed.
func writeFile(t *testing.T, path string, size int) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("x"), size), 0o644))
}

// canonical resolves a path the same way Run resolves the scan root.
func canonical(t *testing.T, path string) string {
	t.Helper()

	resolved, err := filepath.EvalSymlinks(path)
	require.NoError(t, err)

	return resolved
}

func TestRunFindsLargest(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "a"), 10)
	writeFile(t, filepath.Join(dir, "b"), 5)
	writeFile(t, filepath.Join(dir, "c"), 20)
	writeFile(t, filepath.Join(dir, "d"), 20)
	writeFile(t, filepath.Join(dir, "e"), 1)

	result, err := Run(context.Background(), Options{Root: dir, NumEntries: 3}, nil)
	require.NoError(t, err)

	root := canonical(t, dir)

	assert.Equal(t, []FileEntry{
		{Path: filepath.Join(root, "c"), Size: 20},
		{Path: filepath.Join(root, "d"), Size: 20},
		{Path: filepath.Join(root, "a"), Size: 10},
	}, result.Entries)

	assert.EqualValues(t, 5, result.Stats.Processed)
	assert.EqualValues(t, 5, result.Stats.Succeeded)
	assert.Zero(t, result.Stats.Failed)
}

func TestRunFewerFilesThanN(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "only"), 7)
	writeFile(t, filepath.Join(dir, "sub", "other"), 3)

	result, err := Run(context.Background(), Options{Root: dir, NumEntries: 10}, nil)
	require.NoError(t, err)

	require.Len(t, result.Entries, 2)
	assert.EqualValues(t, 7, result.Entries[0].Size)
	assert.EqualValues(t, 3, result.Entries[1].Size)
}

// buildTree lays out a fixed set of nested files with distinct sizes and
// returns the expected top-5 ranking.
func buildTree(t *testing.T, dir string) []FileEntry {
	t.Helper()

	sizes := map[string]int{
		"a.bin":              100,
		"b.bin":              900,
		"sub/c.bin":          50,
		"sub/d.bin":          700,
		"sub/deep/e.bin":     300,
		"sub/deep/f.bin":     800,
		"other/g.bin":        10,
		"other/h.bin":        600,
		"other/nested/i.bin": 400,
		"other/nested/j.bin": 200,
	}

	for name, size := range sizes {
		writeFile(t, filepath.Join(dir, filepath.FromSlash(name)), size)
	}

	root := canonical(t, dir)

	return []FileEntry{
		{Path: filepath.Join(root, "b.bin"), Size: 900},
		{Path: filepath.Join(root, "sub", "deep", "f.bin"), Size: 800},
		{Path: filepath.Join(root, "sub", "d.bin"), Size: 700},
		{Path: filepath.Join(root, "other", "h.bin"), Size: 600},
		{Path: filepath.Join(root, "other", "nested", "i.bin"), Size: 400},
	}
}

func TestRunBatchSizeInvariance(t *testing.T) {
	dir := t.TempDir()
	expected := buildTree(t, dir)

	for _, batchSize := range []int{1, 10, 1000} {
		result, err := Run(context.Background(), Options{
			Root:       dir,
			NumEntries: 5,
			BatchSize:  batchSize,
		}, nil)
		require.NoError(t, err)

		assert.Equal(t, expected, result.Entries, "batch size %d", batchSize)
		assert.EqualValues(t, 10, result.Stats.Processed, "batch size %d", batchSize)
	}
}

func TestRunWorkerCountInvariance(t *testing.T) {
	dir := t.TempDir()
	expected := buildTree(t, dir)

	for _, workers := range []int{1, 4, 64} {
		result, err := Run(context.Background(), Options{
			Root:       dir,
			NumEntries: 5,
			Workers:    workers,
		}, nil)
		require.NoError(t, err)

		assert.Equal(t, expected, result.Entries, "workers %d", workers)
		assert.Equal(t, result.Stats.Processed, result.Stats.Succeeded+result.Stats.Failed)
	}
}

func TestRunExcludedSubtree(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "keep.bin"), 10)
	writeFile(t, filepath.Join(dir, "skip", "huge.bin"), 100000)
	writeFile(t, filepath.Join(dir, "skip", "deep", "huger.bin"), 200000)

	exclusions := filepath.Join(dir, "excludes.txt")
	content := filepath.Join(dir, "skip") + "\n"
	require.NoError(t, os.WriteFile(exclusions, []byte(content), 0o644))

	result, err := Run(context.Background(), Options{
		Root:             dir,
		NumEntries:       10,
		ExcludedDirsFile: exclusions,
	}, nil)
	require.NoError(t, err)

	root := canonical(t, dir)

	// The excluded subtree contributes nothing: no entries, no counts. The
	// exclusion file itself is a regular file inside the root and always
	// longer than keep.bin.
	assert.Equal(t, []FileEntry{
		{Path: filepath.Join(root, "excludes.txt"), Size: int64(len(content))},
		{Path: filepath.Join(root, "keep.bin"), Size: 10},
	}, result.Entries)
	assert.EqualValues(t, 2, result.Stats.Processed)
}

func TestRunDoesNotFollowSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation requires elevated privileges on windows")
	}

	dir := t.TempDir()
	outside := t.TempDir()

	writeFile(t, filepath.Join(dir, "real.bin"), 5)
	writeFile(t, filepath.Join(outside, "huge.bin"), 100000)
	require.NoError(t, os.Symlink(outside, filepath.Join(dir, "link")))
	require.NoError(t, os.Symlink(filepath.Join(outside, "huge.bin"), filepath.Join(dir, "filelink")))

	result, err := Run(context.Background(), Options{Root: dir, NumEntries: 10}, nil)
	require.NoError(t, err)

	root := canonical(t, dir)

	// Neither the linked directory's contents nor the linked file itself
	// are ranked or counted.
	assert.Equal(t, []FileEntry{{Path: filepath.Join(root, "real.bin"), Size: 5}}, result.Entries)
	assert.EqualValues(t, 1, result.Stats.Processed)
}

func TestRunMinSizeFilter(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "small.bin"), 10)
	writeFile(t, filepath.Join(dir, "large.bin"), 500)

	result, err := Run(context.Background(), Options{Root: dir, NumEntries: 10, MinSize: 100}, nil)
	require.NoError(t, err)

	root := canonical(t, dir)

	// Small files still count as processed, they just never enter the
	// ranking.
	assert.Equal(t, []FileEntry{{Path: filepath.Join(root, "large.bin"), Size: 500}}, result.Entries)
	assert.EqualValues(t, 2, result.Stats.Processed)
	assert.EqualValues(t, 2, result.Stats.Succeeded)
}

func TestRunUnreadableSubtree(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced the same way on windows")
	}

	if os.Getuid() == 0 {
		t.Skip("running as root bypasses permission checks")
	}

	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "ok.bin"), 100)
	writeFile(t, filepath.Join(dir, "locked", "hidden.bin"), 200)

	locked := filepath.Join(dir, "locked")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	result, err := Run(context.Background(), Options{Root: dir, NumEntries: 10}, nil)
	require.NoError(t, err)

	root := canonical(t, dir)

	// The scan completes: the unreadable subtree counts as one failure and
	// the rest of the tree is still fully scanned.
	assert.Equal(t, []FileEntry{{Path: filepath.Join(root, "ok.bin"), Size: 100}}, result.Entries)
	assert.GreaterOrEqual(t, result.Stats.Failed, int64(1))
	assert.Equal(t, result.Stats.Processed, result.Stats.Succeeded+result.Stats.Failed)
	assert.NotEmpty(t, result.Stats.Errors)
}

func TestRunRootMissing(t *testing.T) {
	_, err := Run(context.Background(), Options{Root: filepath.Join(t.TempDir(), "nope")}, nil)

	require.Error(t, err)
}

func TestRunRootNotADirectory(t *testing.T) {
	dir := t.TempDir()

	file := filepath.Join(dir, "file.bin")
	writeFile(t, file, 1)

	_, err := Run(context.Background(), Options{Root: file}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a directory")
}

func TestRunUnreadableExclusionFileIsFatal(t *testing.T) {
	dir := t.TempDir()

	_, err := Run(context.Background(), Options{
		Root:             dir,
		ExcludedDirsFile: filepath.Join(dir, "missing.txt"),
	}, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunEmptyTree(t *testing.T) {
	result, err := Run(context.Background(), Options{Root: t.TempDir()}, nil)
	require.NoError(t, err)

	assert.Empty(t, result.Entries)
	assert.Zero(t, result.Stats.Processed)
}
