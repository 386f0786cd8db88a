package mmapvec

import (
	"github.com/hupe1980/mmapvec/internal/mmap"
)

// AccessPattern hints how mapped elements are about to be accessed.
// Patterns are advisory: they never affect correctness and the platform
// may ignore them entirely. This is the least stable part of the API.
type AccessPattern int

const (
	// AccessDefault resets to the platform default policy.
	AccessDefault AccessPattern = iota
	// AccessSequential expects a linear walk; read-ahead is widened.
	AccessSequential
	// AccessRandom expects point lookups; read-ahead is curtailed.
	AccessRandom
	// AccessWillNeed asks for the range to be paged in soon.
	AccessWillNeed
	// AccessDontNeed declares the range cold.
	AccessDontNeed
)

func toMmapPattern(p AccessPattern) mmap.AccessPattern {
	switch p {
	case AccessSequential:
		return mmap.AccessSequential
	case AccessRandom:
		return mmap.AccessRandom
	case AccessWillNeed:
		return mmap.AccessWillNeed
	case AccessDontNeed:
		return mmap.AccessDontNeed
	default:
		return mmap.AccessDefault
	}
}

// Advise applies pattern to the whole active region. Calling it on a
// lazy, empty or closed vec is a no-op.
func (v *Vec[T]) Advise(pattern AccessPattern) {
	v.seg.Advise(pattern)
}

// Prefetch asks the kernel to page in the used range soon. Purely an
// optimization: correctness never depends on it.
func (v *Vec[T]) Prefetch() {
	v.seg.Prefetch(v.length)
}

// PrefetchAt asks the kernel to page in the page holding element i,
// useful just before a point lookup in a cold region. Out-of-range
// indexes are ignored.
func (v *Vec[T]) PrefetchAt(i int) {
	if i < 0 || i >= v.length {
		return
	}
	v.seg.PrefetchAt(i)
}
