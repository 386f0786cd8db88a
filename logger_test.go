package mmapvec_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/mmapvec"
	"github.com/hupe1980/mmapvec/testutil"
)

func TestLogger_VecEvents(t *testing.T) {
	var buf bytes.Buffer
	logger := mmapvec.NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	v, err := mmapvec.New[int64](
		mmapvec.WithProvider(mmapvec.AnonProvider{}),
		mmapvec.WithMinCapacity(2),
		mmapvec.WithLogger(logger),
	)
	require.NoError(t, err)

	for i := int64(0); i < 3; i++ {
		require.NoError(t, v.Push(i))
	}
	require.NoError(t, v.ShrinkToFit())
	require.NoError(t, v.Close())

	out := buf.String()
	assert.Contains(t, out, "segment created")
	assert.Contains(t, out, "grow completed")
	assert.Contains(t, out, "shrink completed")
	assert.Contains(t, out, "segment released")
	assert.Contains(t, out, "old_capacity=2")
	assert.Contains(t, out, "new_capacity=4")
}

func TestLogger_GrowFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := mmapvec.NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	boom := errors.New("boom")
	fp := testutil.NewFailingProvider(mmapvec.AnonProvider{}, 2, boom)
	v, err := mmapvec.New[int64](
		mmapvec.WithProvider(fp),
		mmapvec.WithMinCapacity(2),
		mmapvec.WithLogger(logger),
	)
	require.NoError(t, err)
	defer v.Close()

	require.NoError(t, v.Push(1))
	require.NoError(t, v.Push(2))
	require.Error(t, v.Push(3))

	out := buf.String()
	assert.Contains(t, out, "segment create failed")
	assert.Contains(t, out, "grow failed")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "boom")
}

func TestNewLogger_DefaultHandler(t *testing.T) {
	logger := mmapvec.NewLogger(nil)
	require.NotNil(t, logger)
	require.NotNil(t, logger.Logger)
}

func TestNoopLogger(t *testing.T) {
	// Discards everything, even errors.
	logger := mmapvec.NoopLogger()
	logger.Error("nothing to see")
	logger.LogRelease("path", errors.New("boom"))
}

func TestTextAndJSONLoggers(t *testing.T) {
	// Both constructors produce usable loggers at the requested level.
	for _, logger := range []*mmapvec.Logger{
		mmapvec.NewTextLogger(slog.LevelWarn),
		mmapvec.NewJSONLogger(slog.LevelWarn),
	} {
		require.NotNil(t, logger)
		assert.False(t, logger.Enabled(t.Context(), slog.LevelInfo))
		assert.True(t, logger.Enabled(t.Context(), slog.LevelError))
	}
}

func TestLogger_FieldNames(t *testing.T) {
	var buf bytes.Buffer
	logger := mmapvec.NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	logger.LogSegmentCreate("/tmp/x.seg", 4096, nil)
	logger.LogGrow(2, 4, 2, nil)
	logger.LogShrink(8, 5, nil)
	logger.LogRelease("/tmp/x.seg", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "path=/tmp/x.seg")
	assert.Contains(t, lines[0], "size=4096")
	assert.Contains(t, lines[1], "length=2")
	assert.Contains(t, lines[2], "old_capacity=8")
	assert.Contains(t, lines[3], "segment released")
}
