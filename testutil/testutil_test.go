package testutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/mmapvec"
)

func TestCountingProvider(t *testing.T) {
	cp := NewCountingProvider(mmapvec.AnonProvider{})

	b1, err := cp.CreateSegment(4096)
	require.NoError(t, err)
	b2, err := cp.CreateSegment(8192)
	require.NoError(t, err)

	assert.Equal(t, []int64{4096, 8192}, cp.CreateSizes())
	assert.Equal(t, 2, cp.Creations())
	assert.Equal(t, 2, cp.Live())
	assert.Equal(t, 0, cp.Releases())

	require.NoError(t, b1.Close())
	assert.Equal(t, 1, cp.Live())
	assert.Equal(t, 1, cp.Releases())

	// Double close counts once.
	require.NoError(t, b1.Close())
	assert.Equal(t, 1, cp.Releases())

	require.NoError(t, b2.Close())
	assert.Equal(t, 0, cp.Live())
	assert.Equal(t, 2, cp.Releases())
}

func TestCountingProvider_FailedCreateNotCounted(t *testing.T) {
	boom := errors.New("boom")
	cp := NewCountingProvider(NewFailingProvider(mmapvec.AnonProvider{}, 0, boom))

	_, err := cp.CreateSegment(4096)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, cp.Creations())
	assert.Equal(t, 0, cp.Live())
}

func TestFailingProvider(t *testing.T) {
	boom := errors.New("boom")

	t.Run("fails configured call only", func(t *testing.T) {
		fp := NewFailingProvider(mmapvec.AnonProvider{}, 2, boom)

		b, err := fp.CreateSegment(4096)
		require.NoError(t, err)
		defer b.Close()

		_, err = fp.CreateSegment(4096)
		assert.ErrorIs(t, err, boom)

		b, err = fp.CreateSegment(4096)
		require.NoError(t, err)
		defer b.Close()

		assert.Equal(t, 3, fp.Calls())
	})

	t.Run("fails every call", func(t *testing.T) {
		fp := NewFailingProvider(mmapvec.AnonProvider{}, 0, boom)

		_, err := fp.CreateSegment(4096)
		assert.ErrorIs(t, err, boom)
		_, err = fp.CreateSegment(4096)
		assert.ErrorIs(t, err, boom)
	})
}
