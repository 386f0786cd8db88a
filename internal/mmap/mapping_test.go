package mmap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapFile_ReadWriteClose(t *testing.T) {
	f, err := os.CreateTemp("", "mmap_test")
	require.NoError(t, err)
	defer os.Remove(f.Name())

	size := os.Getpagesize()
	require.NoError(t, f.Truncate(int64(size)))

	m, err := MapFile(f.Fd(), size)
	require.NoError(t, err)
	f.Close()

	assert.Equal(t, size, m.Size())
	require.Len(t, m.Bytes(), size)

	// Stores are visible through the same mapping.
	copy(m.Bytes(), "Hello, Mmap!")
	assert.Equal(t, "Hello, Mmap!", string(m.Bytes()[:12]))

	require.NoError(t, m.Close())

	// Close is idempotent and kills the byte view.
	assert.NoError(t, m.Close())
	assert.Nil(t, m.Bytes())
}

func TestMapFile_WritesReachFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backing.seg")
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
	require.NoError(t, err)

	size := os.Getpagesize()
	require.NoError(t, f.Truncate(int64(size)))

	m, err := MapFile(f.Fd(), size)
	require.NoError(t, err)
	// The mapping holds its own reference; the descriptor can go.
	require.NoError(t, f.Close())

	copy(m.Bytes(), "persisted")
	require.NoError(t, m.Close())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "persisted", string(got[:9]))
}

func TestMapFile_InvalidSize(t *testing.T) {
	_, err := MapFile(0, 0)
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = MapFile(0, -1)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestMapAnon(t *testing.T) {
	m, err := MapAnon(4096)
	require.NoError(t, err)
	defer m.Close()

	require.Len(t, m.Bytes(), 4096)

	// Anonymous memory starts zeroed and is writable.
	assert.Equal(t, make([]byte, 64), m.Bytes()[:64])
	m.Bytes()[0] = 42
	assert.EqualValues(t, 42, m.Bytes()[0])
}

func TestMapAnon_InvalidSize(t *testing.T) {
	_, err := MapAnon(0)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestAdvise(t *testing.T) {
	m, err := MapAnon(2 * os.Getpagesize())
	require.NoError(t, err)
	defer m.Close()

	data := m.Bytes()
	require.NoError(t, Advise(data, AccessSequential))
	require.NoError(t, Advise(data, AccessRandom))
	require.NoError(t, Advise(data, AccessWillNeed))
	require.NoError(t, Advise(data, AccessDefault))

	// Unaligned sub-ranges are advisory failures the kernel may reject;
	// Advise must swallow that.
	require.NoError(t, Advise(data[3:100], AccessWillNeed))

	// Empty range is a no-op.
	require.NoError(t, Advise(nil, AccessDontNeed))
}
