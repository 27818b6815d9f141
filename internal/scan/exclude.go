package scan

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// ExclusionSet holds canonicalized directory paths whose subtrees are pruned
// during traversal. It is built once before scanning and read-only
// afterwards, so lookups need no synchronization.
type ExclusionSet struct {
	dirs map[string]struct{}
}

// NewExclusionSet canonicalizes each directory and builds the set. Entries
// that do not exist or cannot be resolved are logged as warnings and
// dropped; they never abort the scan.
func NewExclusionSet(dirs []string) *ExclusionSet {
	set := &ExclusionSet{dirs: make(map[string]struct{}, len(dirs))}

	for _, dir := range dirs {
		canonical, err := canonicalize(dir)
		if err != nil {
			log.Warn().Str("dir", dir).Err(err).Msg("ignoring exclusion entry")

			continue
		}

		set.dirs[canonical] = struct{}{}
	}

	return set
}

// LoadExclusions builds an ExclusionSet from a newline-delimited file.
// Blank lines and lines starting with '#' are skipped. An unreadable file is
// a configuration error and aborts the run.
func LoadExclusions(path string) (*ExclusionSet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading exclusion file %q: %w", path, err)
	}
	defer file.Close()

	var dirs []string

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		dirs = append(dirs, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading exclusion file %q: %w", path, err)
	}

	return NewExclusionSet(dirs), nil
}

// Excluded reports whether dir itself is excluded. The walker checks every
// directory before descending into it, so the match is exact rather than
// prefix-based. Walked paths are already canonical because the scan root is
// resolved up front and symlinks are never followed.
func (e *ExclusionSet) Excluded(dir string) bool {
	_, ok := e.dirs[dir]

	return ok
}

// Len returns the number of active exclusion entries.
func (e *ExclusionSet) Len() int { return len(e.dirs) }

// canonicalize resolves a path to its absolute, symlink-free form so it
// compares exactly against paths produced by the walker.
func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return filepath.EvalSymlinks(abs)
}
