package mmapvec

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/hupe1980/mmapvec/internal/conv"
)

// Vec is a growable array backed by memory-mapped storage instead of the
// Go heap. Elements live in one contiguous mapped region; the OS pages
// them in and out on demand, so datasets larger than RAM stay usable.
//
// The zero value is not usable; construct with New or FromSlice. A Vec is
// not safe for concurrent use: like a plain slice, callers synchronize
// around it.
type Vec[T any] struct {
	seg      *Segment[T]
	length   int
	provider SegmentProvider
	factor   int
	minCap   int
	logger   *Logger
	metrics  MetricsCollector
	closed   bool
}

// New creates an empty vec for element type T. Nothing is provisioned
// until the first push unless WithInitialCapacity asks for it.
//
// T must be pointer-free with a fixed layout; New rejects anything else
// with ErrUnsupportedType (or ErrZeroSizeType for zero-size types).
func New[T any](optFns ...Option) (*Vec[T], error) {
	if err := checkElemType[T](); err != nil {
		return nil, err
	}

	o := applyOptions(optFns)
	if o.provider == nil {
		p, err := NewFileProvider()
		if err != nil {
			return nil, err
		}
		o.provider = p
	}

	minCap := o.minCapacity
	if minCap <= 0 {
		minCap = int(int64(os.Getpagesize()) / sizeOf[T]())
		if minCap < 1 {
			minCap = 1
		}
	}

	v := &Vec[T]{
		seg:      nullSegment[T](),
		provider: o.provider,
		factor:   o.growthFactor,
		minCap:   minCap,
		logger:   o.logger,
		metrics:  o.metricsCollector,
	}

	if o.initialCapacity > 0 {
		if err := v.growTo(o.initialCapacity); err != nil {
			return nil, err
		}
	}

	return v, nil
}

// FromSlice creates a vec provisioned at exactly len(values) capacity and
// copies values into it.
func FromSlice[T any](values []T, optFns ...Option) (*Vec[T], error) {
	optFns = append(append([]Option{}, optFns...), WithInitialCapacity(len(values)))

	v, err := New[T](optFns...)
	if err != nil {
		return nil, err
	}
	if len(values) > 0 {
		copy(v.seg.Slice(0, len(values)), values)
		v.length = len(values)
	}
	return v, nil
}

// Len returns the number of elements.
func (v *Vec[T]) Len() int {
	return v.length
}

// Cap returns the capacity of the active segment in elements.
func (v *Vec[T]) Cap() int {
	return v.seg.Capacity()
}

// IsEmpty reports whether the vec holds no elements.
func (v *Vec[T]) IsEmpty() bool {
	return v.length == 0
}

// DiskSize returns the bytes occupied by the active backing region.
func (v *Vec[T]) DiskSize() int64 {
	return v.seg.DiskSize()
}

// Path returns the path of the active backing file, or "" when the vec is
// lazy, anonymous, or closed.
func (v *Vec[T]) Path() string {
	return v.seg.Path()
}

// Push appends value, growing the backing segment first when it is full.
// Growth provisions a replacement segment, copies the used range, swaps
// it in, and releases the superseded one; if any provisioning step fails,
// the vec is left exactly as it was and the error identifies the stage.
func (v *Vec[T]) Push(value T) error {
	if v.closed {
		return ErrClosed
	}

	if v.length == v.seg.Capacity() {
		newCap := v.seg.Capacity() * v.factor
		if newCap < v.minCap {
			newCap = v.minCap
		}
		if err := v.growTo(newCap); err != nil {
			return err
		}
	}

	v.seg.Set(v.length, value)
	v.length++
	return nil
}

// PushWithinCapacity appends value only when spare capacity exists and
// reports whether it did. It never calls the provider, making it the
// building block for callers that must not trigger I/O.
func (v *Vec[T]) PushWithinCapacity(value T) bool {
	if v.closed || v.length == v.seg.Capacity() {
		return false
	}
	v.seg.Set(v.length, value)
	v.length++
	return true
}

// Pop removes and returns the last element. The second result is false
// when the vec is empty. The vacated slot's bytes stay in the region
// untouched.
func (v *Vec[T]) Pop() (T, bool) {
	if v.length == 0 {
		var zero T
		return zero, false
	}
	v.length--
	return v.seg.Get(v.length), true
}

// Get returns the element at index i. Indexes must satisfy
// 0 <= i < Len(); violations are programmer errors and panic, exactly as
// with a plain slice.
func (v *Vec[T]) Get(i int) T {
	v.boundsCheck(i)
	return v.seg.Get(i)
}

// Set stores value at index i. Same bounds contract as Get.
func (v *Vec[T]) Set(i int, value T) {
	v.boundsCheck(i)
	v.seg.Set(i, value)
}

func (v *Vec[T]) boundsCheck(i int) {
	if i < 0 || i >= v.length {
		panic(fmt.Sprintf("mmapvec: index out of range [%d] with length %d", i, v.length))
	}
}

// Slice returns the used range [0, Len()) as a regular slice aliasing
// mapped memory: no copy, full speed, but only valid until the next
// operation that replaces or releases the segment (growing Push, Grow,
// ShrinkToFit, Close).
func (v *Vec[T]) Slice() []T {
	if v.length == 0 {
		return nil
	}
	return v.seg.Slice(0, v.length)
}

// Grow ensures capacity for at least n more elements without changing
// Len. If spare capacity already suffices it does nothing; otherwise it
// provisions a segment of exactly Len()+n elements (never less than the
// configured minimum capacity). Failure leaves the vec unchanged.
func (v *Vec[T]) Grow(n int) error {
	if v.closed {
		return ErrClosed
	}
	if n < 0 {
		panic("mmapvec: negative growth")
	}

	need := v.length + n
	if need < 0 {
		return fmt.Errorf("%w: capacity %d+%d overflows", ErrMap, v.length, n)
	}
	if need <= v.seg.Capacity() {
		return nil
	}
	if need < v.minCap {
		need = v.minCap
	}
	return v.growTo(need)
}

// ShrinkToFit compacts the backing segment to exactly Len() elements with
// the same replace-and-copy machinery growth uses. Compacting an empty
// vec releases its segment entirely. Shrinking never happens implicitly:
// Pop, Truncate and Clear all retain capacity.
func (v *Vec[T]) ShrinkToFit() error {
	if v.closed {
		return ErrClosed
	}

	oldCap := v.seg.Capacity()
	if v.length == oldCap {
		return nil
	}

	start := time.Now()
	var err error
	if v.length == 0 {
		old := v.seg
		v.seg = nullSegment[T]()
		_ = v.releaseSegment(old)
	} else {
		err = v.replaceSegment(v.length)
	}

	v.metrics.RecordShrink(oldCap, v.length, time.Since(start), err)
	v.logger.LogShrink(oldCap, v.length, err)
	return err
}

// Truncate shortens the vec to at most n elements, keeping capacity and
// touching no bytes. Truncating to the current length or beyond is a
// no-op; negative n panics.
func (v *Vec[T]) Truncate(n int) {
	if n < 0 {
		panic("mmapvec: negative truncation")
	}
	if n >= v.length {
		return
	}
	v.length = n
}

// TruncateFront drops the first n elements, moving the remainder to the
// start of the segment. Dropping Len() or more clears the vec; negative n
// panics.
func (v *Vec[T]) TruncateFront(n int) {
	if n < 0 {
		panic("mmapvec: negative truncation")
	}
	if n == 0 || v.length == 0 {
		return
	}
	if n >= v.length {
		v.length = 0
		return
	}

	rest := v.length - n
	copy(v.seg.Slice(0, rest), v.seg.Slice(n, v.length))
	v.length = rest
}

// Clear removes all elements. Capacity is retained; ShrinkToFit releases
// it.
func (v *Vec[T]) Clear() {
	v.length = 0
}

// Clone copies the vec into a fresh one using the same provider and
// configuration. An empty vec clones to a lazy empty vec; otherwise the
// clone is provisioned at the source's capacity.
func (v *Vec[T]) Clone() (*Vec[T], error) {
	if v.closed {
		return nil, ErrClosed
	}

	out := &Vec[T]{
		seg:      nullSegment[T](),
		provider: v.provider,
		factor:   v.factor,
		minCap:   v.minCap,
		logger:   v.logger,
		metrics:  v.metrics,
	}
	if v.length == 0 {
		return out, nil
	}

	if err := out.growTo(v.seg.Capacity()); err != nil {
		return nil, err
	}
	copy(out.seg.Slice(0, v.length), v.seg.Slice(0, v.length))
	out.length = v.length
	return out, nil
}

// Equal reports whether a and b hold the same elements in the same order.
func Equal[T comparable](a, b *Vec[T]) bool {
	return slices.Equal(a.Slice(), b.Slice())
}

// Close releases the active segment: the region is unmapped and, for
// file-backed segments, the file deleted. The error reports cleanup
// status; the vec is finished either way. Close is idempotent, and every
// other mutating operation on a closed vec returns ErrClosed.
func (v *Vec[T]) Close() error {
	if v.closed {
		return nil
	}
	v.closed = true
	v.length = 0

	old := v.seg
	v.seg = nullSegment[T]()
	return v.releaseSegment(old)
}

// growTo replaces the active segment with one of newCap elements,
// preserving contents. Push growth, Grow and eager construction all land
// here.
func (v *Vec[T]) growTo(newCap int) error {
	oldCap := v.seg.Capacity()
	start := time.Now()
	err := v.replaceSegment(newCap)
	v.metrics.RecordGrow(oldCap, newCap, time.Since(start), err)
	v.logger.LogGrow(oldCap, newCap, v.length, err)
	return err
}

// replaceSegment is the replace-and-copy engine: provision a segment of
// newCap elements, copy the used range, swap, release the superseded
// segment. The vec is untouched unless provisioning fully succeeded;
// release failures after the swap are logged and swallowed.
func (v *Vec[T]) replaceSegment(newCap int) error {
	newSeg, err := v.createSegment(newCap)
	if err != nil {
		return err
	}

	copy(newSeg.Slice(0, v.length), v.seg.Slice(0, v.length))

	old := v.seg
	v.seg = newSeg
	_ = v.releaseSegment(old)
	return nil
}

// createSegment asks the provider for a typed segment of capacity
// elements.
func (v *Vec[T]) createSegment(capacity int) (*Segment[T], error) {
	size, err := conv.MulInt64(int64(capacity), sizeOf[T]())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMap, err)
	}

	start := time.Now()
	b, err := v.provider.CreateSegment(size)
	v.metrics.RecordSegmentCreate(size, time.Since(start), err)
	if err != nil {
		v.logger.LogSegmentCreate("", size, err)
		return nil, err
	}

	seg, err := NewSegment[T](b)
	if err != nil {
		// Contract violation by the provider; don't leak the region.
		path := b.Path()
		_ = b.Close()
		v.logger.LogSegmentCreate(path, size, err)
		return nil, err
	}

	v.logger.LogSegmentCreate(seg.Path(), size, nil)
	return seg, nil
}

// releaseSegment closes old, reporting the outcome to metrics and logs.
// The null segment is a silent no-op.
func (v *Vec[T]) releaseSegment(old *Segment[T]) error {
	if old.backing == nil {
		return nil
	}

	path := old.Path()
	start := time.Now()
	err := old.Close()
	v.metrics.RecordRelease(time.Since(start), err)
	v.logger.LogRelease(path, err)
	return err
}
