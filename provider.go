package mmapvec

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/hupe1980/mmapvec/internal/conv"
	"github.com/hupe1980/mmapvec/internal/fs"
	"github.com/hupe1980/mmapvec/internal/mmap"
)

// SegmentProvider provisions backing regions for segments.
//
// Implementations decide where and how regions are allocated: FileProvider
// maps uniquely named files under a directory, AnonProvider hands out
// anonymous memory, QuotaProvider adds a byte budget on top of another
// provider. Tests substitute instrumented providers to observe or fail
// provisioning.
//
// Providers must tolerate calls from multiple vecs; a single vec issues at
// most one call at a time.
type SegmentProvider interface {
	// CreateSegment maps a new read-write region of exactly size bytes,
	// zero-filled and exclusively owned by the caller. size is always a
	// positive multiple of the requesting vec's element size.
	CreateSegment(size int64) (Backing, error)
}

// Backing is one provisioned region plus the identity needed to release
// it again. Implementations must make Close idempotent.
type Backing interface {
	// Bytes returns the full mapped region. The slice is valid until Close.
	Bytes() []byte

	// Path returns the backing file path, or "" for anonymous regions.
	Path() string

	// Advise hints the kernel about the expected access pattern for the
	// whole region. Best-effort; implementations may ignore it.
	Advise(pattern AccessPattern) error

	// Close unmaps the region and releases the backing resource.
	Close() error
}

// IDGenerator produces opaque unique identifiers for backing files.
// Uniqueness is the only collision protection between vecs (and between
// processes) sharing a directory.
type IDGenerator interface {
	NewID() (string, error)
}

// UUIDGenerator is the default IDGenerator. It produces random
// (version 4) UUIDs.
type UUIDGenerator struct{}

// NewID implements IDGenerator.
func (UUIDGenerator) NewID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

const (
	segmentSuffix  = ".seg"
	defaultDirName = "mmapvec"
)

// FileProvider is the default SegmentProvider. It provisions uniquely
// named, fully allocated files under a base directory and maps them
// read-write and shared.
type FileProvider struct {
	dir  string
	ids  IDGenerator
	fsys fs.FileSystem
}

type fileProviderOptions struct {
	baseDir     string
	useCacheDir bool
	ids         IDGenerator
}

// FileProviderOption configures a FileProvider.
type FileProviderOption func(*fileProviderOptions)

// WithBaseDir stores segment files under dir instead of the default
// location. The directory is created if missing.
func WithBaseDir(dir string) FileProviderOption {
	return func(o *fileProviderOptions) {
		o.baseDir = dir
	}
}

// WithCacheDir prefers the user cache directory over the system temp
// directory when no explicit base directory is given. Falls back to the
// temp directory when no cache directory can be resolved.
func WithCacheDir() FileProviderOption {
	return func(o *fileProviderOptions) {
		o.useCacheDir = true
	}
}

// WithIDGenerator replaces the default UUID generator for backing file
// names.
func WithIDGenerator(g IDGenerator) FileProviderOption {
	return func(o *fileProviderOptions) {
		if g != nil {
			o.ids = g
		}
	}
}

// NewFileProvider resolves the storage directory, creates it if needed,
// and returns a provider storing segments there. Without WithBaseDir the
// directory is "mmapvec" under the system temp directory (or under the
// user cache directory with WithCacheDir).
func NewFileProvider(optFns ...FileProviderOption) (*FileProvider, error) {
	o := fileProviderOptions{ids: UUIDGenerator{}}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}

	dir := o.baseDir
	if dir == "" {
		base := os.TempDir()
		if o.useCacheDir {
			if cache, err := os.UserCacheDir(); err == nil {
				base = cache
			}
		}
		dir = filepath.Join(base, defaultDirName)
	}

	p := &FileProvider{dir: dir, ids: o.ids, fsys: fs.Default}
	if err := p.fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDirectory, err)
	}
	return p, nil
}

// Dir returns the directory backing files are created under.
func (p *FileProvider) Dir() string {
	return p.dir
}

// CreateSegment implements SegmentProvider. Creation is staged (name,
// create exclusively, size, map) and every failure cleans up whatever the
// earlier stages produced, so a failed call leaves no file behind.
func (p *FileProvider) CreateSegment(size int64) (Backing, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: region size %d not positive", ErrMap, size)
	}
	length, err := conv.Int64ToInt(size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMap, err)
	}

	id, err := p.ids.NewID()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIDGeneration, err)
	}
	path := filepath.Join(p.dir, id+segmentSuffix)

	f, err := p.fsys.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreate, err)
	}

	if err := f.Truncate(size); err != nil {
		statResizeFailed.Add(1)
		f.Close()
		_ = p.fsys.Remove(path)
		return nil, fmt.Errorf("%w: %w", ErrResize, err)
	}

	m, err := mmap.MapFile(f.Fd(), length)
	if err != nil {
		statMapFailed.Add(1)
		f.Close()
		_ = p.fsys.Remove(path)
		return nil, fmt.Errorf("%w: %w", ErrMap, err)
	}

	// The mapping holds its own reference to the file; the descriptor is
	// done.
	f.Close()

	statActiveSegments.Add(1)
	statSegmentsCreated.Add(1)
	return &fileBacking{m: m, path: path, fsys: p.fsys}, nil
}

// fileBacking is a mapped file region owned by exactly one segment.
type fileBacking struct {
	m      *mmap.Mapping
	path   string
	fsys   fs.FileSystem
	closed atomic.Bool
}

// Bytes implements Backing.
func (b *fileBacking) Bytes() []byte {
	return b.m.Bytes()
}

// Path implements Backing.
func (b *fileBacking) Path() string {
	return b.path
}

// Advise implements Backing.
func (b *fileBacking) Advise(pattern AccessPattern) error {
	return mmap.Advise(b.m.Bytes(), toMmapPattern(pattern))
}

// Close implements Backing. It unmaps the region, then deletes the
// backing file. Idempotent.
func (b *fileBacking) Close() error {
	if b.closed.Swap(true) {
		return nil
	}

	err := b.m.Close()
	if err != nil {
		statUnmapFailed.Add(1)
	} else {
		statActiveSegments.Add(-1)
	}

	if rmErr := b.fsys.Remove(b.path); rmErr != nil && err == nil {
		err = rmErr
	}
	return err
}

// AnonProvider provisions anonymous mappings with no backing file. Data
// lives in memory only (still outside the Go heap), and releasing a
// region has nothing to delete.
//
// Useful for ephemeral datasets and for tests that should not touch the
// filesystem.
type AnonProvider struct{}

// CreateSegment implements SegmentProvider.
func (AnonProvider) CreateSegment(size int64) (Backing, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: region size %d not positive", ErrMap, size)
	}
	length, err := conv.Int64ToInt(size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMap, err)
	}

	m, err := mmap.MapAnon(length)
	if err != nil {
		statMapFailed.Add(1)
		return nil, fmt.Errorf("%w: %w", ErrMap, err)
	}

	statActiveSegments.Add(1)
	statSegmentsCreated.Add(1)
	return &anonBacking{m: m}, nil
}

type anonBacking struct {
	m      *mmap.Mapping
	closed atomic.Bool
}

// Bytes implements Backing.
func (b *anonBacking) Bytes() []byte {
	return b.m.Bytes()
}

// Path implements Backing.
func (b *anonBacking) Path() string {
	return ""
}

// Advise implements Backing.
func (b *anonBacking) Advise(pattern AccessPattern) error {
	return mmap.Advise(b.m.Bytes(), toMmapPattern(pattern))
}

// Close implements Backing. Idempotent.
func (b *anonBacking) Close() error {
	if b.closed.Swap(true) {
		return nil
	}
	if err := b.m.Close(); err != nil {
		statUnmapFailed.Add(1)
		return err
	}
	statActiveSegments.Add(-1)
	return nil
}
