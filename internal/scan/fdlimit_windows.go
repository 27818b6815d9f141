//go:build windows

package scan

// detectFDLimit returns a fixed ceiling; Windows has no RLIMIT_NOFILE to
// observe and per-process handle limits are far above what the pool needs.
func detectFDLimit() int64 {
	return defaultOpenFiles
}
