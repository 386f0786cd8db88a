package mmapvec

import (
	"fmt"
	"os"
	"unsafe"

	"github.com/hupe1980/mmapvec/internal/mmap"
)

// Segment is a fixed-capacity typed array over exactly one mapped region.
// It cannot grow or shrink; Vec replaces whole segments instead.
//
// The typed view is zero-copy: element loads and stores go straight to
// mapped memory. A segment exclusively owns its backing region.
type Segment[T any] struct {
	backing Backing
	data    []T
}

// NewSegment wraps a provisioned backing region as a typed segment. The
// region must be a nonempty exact multiple of T's size. The segment takes
// ownership of b: closing the segment closes the backing.
func NewSegment[T any](b Backing) (*Segment[T], error) {
	size := sizeOf[T]()
	if size == 0 {
		return nil, fmt.Errorf("%w: %T", ErrZeroSizeType, *new(T))
	}

	buf := b.Bytes()
	if len(buf) == 0 || int64(len(buf))%size != 0 {
		return nil, fmt.Errorf("%w: %d bytes over %d-byte elements", ErrSizeMismatch, len(buf), size)
	}

	// Mapped regions are page-aligned, which satisfies any element
	// alignment.
	data := unsafe.Slice((*T)(unsafe.Pointer(&buf[0])), int64(len(buf))/size)

	return &Segment[T]{backing: b, data: data}, nil
}

// nullSegment is the zero-capacity segment a vec starts with: no backing,
// no mapped bytes.
func nullSegment[T any]() *Segment[T] {
	return &Segment[T]{}
}

// Capacity returns the number of elements the region can hold.
func (s *Segment[T]) Capacity() int {
	return len(s.data)
}

// DiskSize returns the size of the backing region in bytes (0 for the
// null segment).
func (s *Segment[T]) DiskSize() int64 {
	return int64(len(s.data)) * sizeOf[T]()
}

// Path returns the backing file path, or "" for anonymous and null
// segments.
func (s *Segment[T]) Path() string {
	if s.backing == nil {
		return ""
	}
	return s.backing.Path()
}

// Get returns the element at index i. Bounds are the caller's contract:
// i outside [0, Capacity()) panics.
func (s *Segment[T]) Get(i int) T {
	return s.data[i]
}

// Set stores v at index i. Same bounds contract as Get.
func (s *Segment[T]) Set(i int, v T) {
	s.data[i] = v
}

// Slice returns a view over elements [lo, hi). The view aliases mapped
// memory and dies with the segment.
func (s *Segment[T]) Slice(lo, hi int) []T {
	return s.data[lo:hi:hi]
}

// Advise hints the kernel about the expected access pattern for the whole
// region. Advisory only: failures are ignored.
func (s *Segment[T]) Advise(pattern AccessPattern) {
	if s.backing == nil {
		return
	}
	_ = s.backing.Advise(pattern)
}

// Prefetch asks the kernel to page in elements [0, n) soon.
func (s *Segment[T]) Prefetch(n int) {
	if s.backing == nil || n <= 0 {
		return
	}
	if n > len(s.data) {
		n = len(s.data)
	}
	end := int64(n) * sizeOf[T]()
	_ = mmap.Advise(s.backing.Bytes()[:end], mmap.AccessWillNeed)
}

// PrefetchAt asks the kernel to page in the page holding element i.
// Out-of-range indexes are ignored.
func (s *Segment[T]) PrefetchAt(i int) {
	if s.backing == nil || i < 0 || i >= len(s.data) {
		return
	}

	buf := s.backing.Bytes()
	page := os.Getpagesize()
	start := int(int64(i)*sizeOf[T]()) &^ (page - 1)
	end := start + page
	if end > len(buf) {
		end = len(buf)
	}
	_ = mmap.Advise(buf[start:end], mmap.AccessWillNeed)
}

// Close releases the mapping and the backing resource exactly once.
// Closing the null segment or closing twice is a no-op.
func (s *Segment[T]) Close() error {
	if s.backing == nil {
		return nil
	}
	b := s.backing
	s.backing = nil
	s.data = nil
	return b.Close()
}
