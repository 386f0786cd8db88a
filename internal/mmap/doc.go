// Package mmap provides read-write memory-mapped regions for off-heap
// array storage.
//
// # Overview
//
// Memory mapping gives direct load/store access to file contents without
// copying data through kernel buffers. This is what lets a disk-backed
// array hold datasets larger than RAM: the OS pages elements in and out
// on demand.
//
// # Usage
//
//	m, err := mmap.MapFile(f.Fd(), size)
//	if err != nil { ... }
//	defer m.Close()
//
//	// Zero-copy read-write access to file contents
//	data := m.Bytes()
//
//	// Provide kernel hints for access patterns
//	mmap.Advise(data[off:end], mmap.AccessWillNeed)
//
// # Platform Support
//
// The package provides a unified API across platforms:
//
//   - Unix (Linux, macOS, BSD): Uses mmap(2) with madvise(2) for access hints
//   - Windows: Uses CreateFileMapping/MapViewOfFile (madvise is a no-op)
//
// # Thread Safety
//
// A Mapping is safe for concurrent access to disjoint ranges. The Close()
// method is idempotent and protected by atomic operations. However, callers
// must ensure no goroutines access Bytes() after Close() returns.
//
// # Anonymous Mappings
//
// MapAnon() creates read-write anonymous mappings for off-heap memory that
// has no backing file. Data in such regions lives only as long as the
// mapping itself.
package mmap
