package mmapvec

import "sync/atomic"

// Process-wide counters for low-level mapping activity, aggregated across
// every vec and provider in the process.
var (
	statActiveSegments  atomic.Int64
	statSegmentsCreated atomic.Int64
	statMapFailed       atomic.Int64
	statUnmapFailed     atomic.Int64
	statResizeFailed    atomic.Int64
)

// Stats is a snapshot of process-wide mapping activity.
type Stats struct {
	// ActiveSegments is the number of currently mapped segments. On Linux
	// the mappings a process may hold are bounded by vm.max_map_count;
	// this counter tracks usage against that limit.
	ActiveSegments int64

	// SegmentsCreated counts successful provisioning operations since
	// process start.
	SegmentsCreated int64

	// MapFailed counts mapping syscall failures.
	MapFailed int64

	// UnmapFailed counts unmapping failures during release.
	UnmapFailed int64

	// ResizeFailed counts backing file resize failures.
	ResizeFailed int64
}

// CurrentStats returns a snapshot of the process-wide counters.
func CurrentStats() Stats {
	return Stats{
		ActiveSegments:  statActiveSegments.Load(),
		SegmentsCreated: statSegmentsCreated.Load(),
		MapFailed:       statMapFailed.Load(),
		UnmapFailed:     statUnmapFailed.Load(),
		ResizeFailed:    statResizeFailed.Load(),
	}
}
