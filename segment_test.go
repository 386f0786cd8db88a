package mmapvec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnonBacking(t *testing.T, size int64) Backing {
	t.Helper()
	b, err := AnonProvider{}.CreateSegment(size)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestNewSegment(t *testing.T) {
	t.Run("wraps an exact multiple", func(t *testing.T) {
		b := newAnonBacking(t, 8*16)

		s, err := NewSegment[int64](b)
		require.NoError(t, err)

		assert.Equal(t, 16, s.Capacity())
		assert.Equal(t, int64(8*16), s.DiskSize())
		assert.Empty(t, s.Path())
	})

	t.Run("rejects size mismatch", func(t *testing.T) {
		b := newAnonBacking(t, 10)

		_, err := NewSegment[int64](b)
		assert.ErrorIs(t, err, ErrSizeMismatch)
	})

	t.Run("rejects empty regions", func(t *testing.T) {
		_, err := NewSegment[int64](emptyBacking{})
		assert.ErrorIs(t, err, ErrSizeMismatch)
	})

	t.Run("rejects zero-size element types", func(t *testing.T) {
		b := newAnonBacking(t, 8)

		_, err := NewSegment[struct{}](b)
		assert.ErrorIs(t, err, ErrZeroSizeType)
	})
}

func TestSegment_GetSetSlice(t *testing.T) {
	b := newAnonBacking(t, 8*8)
	s, err := NewSegment[int64](b)
	require.NoError(t, err)

	for i := 0; i < s.Capacity(); i++ {
		s.Set(i, int64(i)*10)
	}
	for i := 0; i < s.Capacity(); i++ {
		assert.Equal(t, int64(i)*10, s.Get(i))
	}

	view := s.Slice(2, 5)
	assert.Equal(t, []int64{20, 30, 40}, view)

	// Views alias the mapped region.
	view[0] = 99
	assert.Equal(t, int64(99), s.Get(2))

	// Views are capacity-capped: appending cannot clobber neighbors.
	assert.Equal(t, 3, cap(view))

	assert.Panics(t, func() { s.Get(s.Capacity()) })
	assert.Panics(t, func() { s.Set(-1, 0) })
}

func TestSegment_Close(t *testing.T) {
	b, err := AnonProvider{}.CreateSegment(8 * 4)
	require.NoError(t, err)

	s, err := NewSegment[int64](b)
	require.NoError(t, err)

	require.NoError(t, s.Close())
	assert.Equal(t, 0, s.Capacity())
	assert.Zero(t, s.DiskSize())

	// Idempotent: the backing is released exactly once.
	require.NoError(t, s.Close())
}

func TestNullSegment(t *testing.T) {
	s := nullSegment[int64]()

	assert.Equal(t, 0, s.Capacity())
	assert.Zero(t, s.DiskSize())
	assert.Empty(t, s.Path())
	assert.Empty(t, s.Slice(0, 0))

	// Advisories and release on the null segment are silent no-ops.
	s.Advise(AccessSequential)
	s.Prefetch(10)
	s.PrefetchAt(0)
	require.NoError(t, s.Close())
}

func TestSegment_StructElements(t *testing.T) {
	type point struct {
		X, Y float32
		Tag  uint32
		_    uint32 // explicit padding to a 16-byte stride
	}

	b := newAnonBacking(t, 16*4)
	s, err := NewSegment[point](b)
	require.NoError(t, err)

	assert.Equal(t, 4, s.Capacity())

	p := point{X: 1.5, Y: -2.5, Tag: 7}
	s.Set(3, p)
	assert.Equal(t, p, s.Get(3))
	assert.Zero(t, s.Get(0))
}

type emptyBacking struct{}

func (emptyBacking) Bytes() []byte              { return nil }
func (emptyBacking) Path() string               { return "" }
func (emptyBacking) Advise(AccessPattern) error { return nil }
func (emptyBacking) Close() error               { return nil }
