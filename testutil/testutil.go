package testutil

import (
	"sync"

	"github.com/hupe1980/mmapvec"
)

// CountingProvider wraps a SegmentProvider and records every provisioning
// call and every release of a region it handed out. It is safe for
// concurrent use.
type CountingProvider struct {
	inner mmapvec.SegmentProvider

	mu       sync.Mutex
	sizes    []int64
	releases int
	live     int
}

// NewCountingProvider creates a CountingProvider delegating to inner.
func NewCountingProvider(inner mmapvec.SegmentProvider) *CountingProvider {
	return &CountingProvider{inner: inner}
}

// CreateSegment implements mmapvec.SegmentProvider. Only successful
// creations are recorded.
func (p *CountingProvider) CreateSegment(size int64) (mmapvec.Backing, error) {
	b, err := p.inner.CreateSegment(size)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.sizes = append(p.sizes, size)
	p.live++
	p.mu.Unlock()

	return &countingBacking{Backing: b, provider: p}, nil
}

// CreateSizes returns the byte size of every successfully provisioned
// region, in call order.
func (p *CountingProvider) CreateSizes() []int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]int64(nil), p.sizes...)
}

// Creations returns the number of successfully provisioned regions.
func (p *CountingProvider) Creations() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.sizes)
}

// Releases returns the number of regions released so far.
func (p *CountingProvider) Releases() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.releases
}

// Live returns the number of provisioned regions not yet released.
func (p *CountingProvider) Live() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.live
}

type countingBacking struct {
	mmapvec.Backing
	provider *CountingProvider
	once     sync.Once
}

func (b *countingBacking) Close() error {
	err := b.Backing.Close()
	b.once.Do(func() {
		b.provider.mu.Lock()
		b.provider.releases++
		b.provider.live--
		b.provider.mu.Unlock()
	})
	return err
}

// FailingProvider delegates to an inner provider except for one configured
// call, which fails instead. It is safe for concurrent use.
type FailingProvider struct {
	inner  mmapvec.SegmentProvider
	failAt int
	err    error

	mu    sync.Mutex
	calls int
}

// NewFailingProvider creates a provider whose failAt'th CreateSegment call
// (1-based) returns err. failAt 0 fails every call.
func NewFailingProvider(inner mmapvec.SegmentProvider, failAt int, err error) *FailingProvider {
	return &FailingProvider{inner: inner, failAt: failAt, err: err}
}

// CreateSegment implements mmapvec.SegmentProvider.
func (p *FailingProvider) CreateSegment(size int64) (mmapvec.Backing, error) {
	p.mu.Lock()
	p.calls++
	fail := p.failAt == 0 || p.calls == p.failAt
	p.mu.Unlock()

	if fail {
		return nil, p.err
	}
	return p.inner.CreateSegment(size)
}

// Calls returns the number of CreateSegment calls observed, including
// failed ones.
func (p *FailingProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}
