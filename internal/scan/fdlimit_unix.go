//go:build unix

package scan

import "syscall"

// detectFDLimit derives the open-handle ceiling from the soft RLIMIT_NOFILE.
// Half the soft limit is used so the process keeps headroom for stdio, the
// walker's directory handles and whatever the runtime opens.
func detectFDLimit() int64 {
	var limits syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &limits); err != nil {
		return defaultOpenFiles
	}

	ceiling := int64(limits.Cur) / 2

	if ceiling < minOpenFiles {
		ceiling = minOpenFiles
	}

	if ceiling > maxOpenFiles {
		ceiling = maxOpenFiles
	}

	return ceiling
}
