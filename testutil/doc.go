// Package testutil provides testing utilities for mmapvec.
//
// This package is intended for use in tests and benchmarks only.
// It provides instrumented segment providers that record or fail
// provisioning so tests can verify growth behavior, release timing,
// and failure atomicity.
//
// # Counting Provisioning
//
//	cp := testutil.NewCountingProvider(mmapvec.AnonProvider{})
//	v, _ := mmapvec.New[int64](mmapvec.WithProvider(cp))
//	// ... push until the vec grows ...
//	sizes := cp.CreateSizes() // byte size of every provisioned region
//	n := cp.Releases()        // superseded regions released so far
//
// # Failure Injection
//
//	fp := testutil.NewFailingProvider(mmapvec.AnonProvider{}, 2, errBoom)
//	// the second CreateSegment call returns errBoom, all others delegate
package testutil
