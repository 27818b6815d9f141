package scan

// Bounds for the derived open-handle ceiling. The ceiling is enforced with a
// weighted semaphore acquired around every metadata syscall.
const (
	// defaultOpenFiles is used when the OS limit cannot be observed.
	defaultOpenFiles = 512
	// minOpenFiles is the floor so tiny rlimits still make progress.
	minOpenFiles = 64
	// maxOpenFiles caps the ceiling on systems with huge rlimits.
	maxOpenFiles = 4096
)
