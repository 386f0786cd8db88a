package mmapvec

import (
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// QuotaProvider decorates another SegmentProvider with a byte budget over
// all live regions provisioned through it. CreateSegment fails fast with
// ErrQuotaExceeded instead of blocking; callers control retry policy.
//
// A single budget shared by several vecs caps their combined footprint,
// which is how multi-tenant setups keep one hot dataset from starving
// the rest.
type QuotaProvider struct {
	inner SegmentProvider
	sem   *semaphore.Weighted
	limit int64
	used  atomic.Int64
}

// NewQuotaProvider wraps inner with a live-byte budget of limit bytes.
// limit must be positive.
func NewQuotaProvider(inner SegmentProvider, limit int64) *QuotaProvider {
	if limit <= 0 {
		panic("mmapvec: quota limit must be positive")
	}
	return &QuotaProvider{
		inner: inner,
		sem:   semaphore.NewWeighted(limit),
		limit: limit,
	}
}

// Used returns the bytes currently held against the budget.
func (p *QuotaProvider) Used() int64 {
	return p.used.Load()
}

// Limit returns the configured budget in bytes.
func (p *QuotaProvider) Limit() int64 {
	return p.limit
}

// CreateSegment implements SegmentProvider. The budget is reserved before
// delegating and returned in full if the inner provider fails, so a failed
// call never leaks quota.
func (p *QuotaProvider) CreateSegment(size int64) (Backing, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: region size %d not positive", ErrMap, size)
	}
	if !p.sem.TryAcquire(size) {
		return nil, fmt.Errorf("%w: %d bytes requested, %d of %d in use",
			ErrQuotaExceeded, size, p.used.Load(), p.limit)
	}

	b, err := p.inner.CreateSegment(size)
	if err != nil {
		p.sem.Release(size)
		return nil, err
	}

	p.used.Add(size)
	return &quotaBacking{Backing: b, quota: p, size: size}, nil
}

// quotaBacking returns its reservation to the budget on Close.
type quotaBacking struct {
	Backing
	quota  *QuotaProvider
	size   int64
	closed atomic.Bool
}

// Close implements Backing. The budget is returned even when the inner
// close fails: the region is gone either way.
func (b *quotaBacking) Close() error {
	err := b.Backing.Close()
	if !b.closed.Swap(true) {
		b.quota.sem.Release(b.size)
		b.quota.used.Add(-b.size)
	}
	return err
}
