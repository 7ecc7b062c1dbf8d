package md2typst

import "runtime"

// Worker sizing constants for batch conversion.
const (
	// MinWorkers ensures at least one worker is available.
	MinWorkers = 1

	// MaxWorkers caps concurrent conversions; each holds a whole document,
	// its decoded images and the archive in memory.
	MaxWorkers = 16
)

// ResolveWorkers determines how many documents to convert concurrently.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// Exported for use by servers and CLIs.
func ResolveWorkers(workers int) int {
	if workers > 0 {
		return min(workers, MaxWorkers)
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers.
	n := runtime.GOMAXPROCS(0)
	return max(MinWorkers, min(n, MaxWorkers))
}
