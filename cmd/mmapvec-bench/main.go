// Command mmapvec-bench times sequential and random access against a
// disk-backed vec, the way the OS page cache will actually see it.
//
// Usage:
//
//	mmapvec-bench [-n elements] [-dir path | -anon] [-rand-count n]
//	              [-parallel n] [-seed n] [-verify] [-v]
//
// Each pass reports wall time for writing and reading the whole vec
// sequentially, then for a fixed number of random writes and reads with
// prefetch hints issued ahead of each access. -verify folds every
// sequential read into an xxhash digest and checks it against the
// written data. -parallel benches that many independent vecs at once.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/mmapvec"
)

var (
	elements  = flag.Int("n", 1<<24, "elements per vec (8 bytes each)")
	dir       = flag.String("dir", "", "segment directory (default: system temp)")
	anon      = flag.Bool("anon", false, "use anonymous mappings instead of files")
	randCount = flag.Int("rand-count", 1<<15, "random accesses per pass")
	parallel  = flag.Int("parallel", 1, "independent vecs benched concurrently")
	seed      = flag.Int64("seed", 4711, "random index seed")
	verify    = flag.Bool("verify", false, "check sequential reads with an xxhash digest")
	verbose   = flag.Bool("v", false, "log segment operations")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if *elements <= 0 {
		return fmt.Errorf("element count %d not positive", *elements)
	}

	provider, err := newProvider()
	if err != nil {
		return err
	}

	if *parallel <= 1 {
		return benchOne(provider, "")
	}

	g := new(errgroup.Group)
	for w := 0; w < *parallel; w++ {
		label := fmt.Sprintf("[vec %d] ", w)
		g.Go(func() error {
			return benchOne(provider, label)
		})
	}
	return g.Wait()
}

func newProvider() (mmapvec.SegmentProvider, error) {
	if *anon {
		return mmapvec.AnonProvider{}, nil
	}
	if *dir != "" {
		return mmapvec.NewFileProvider(mmapvec.WithBaseDir(*dir))
	}
	return mmapvec.NewFileProvider()
}

func benchOne(provider mmapvec.SegmentProvider, label string) error {
	opts := []mmapvec.Option{
		mmapvec.WithProvider(provider),
		mmapvec.WithInitialCapacity(*elements),
	}
	if *verbose {
		opts = append(opts, mmapvec.WithLogLevel(slog.LevelDebug))
	}

	v, err := mmapvec.New[int64](opts...)
	if err != nil {
		return err
	}
	defer v.Close()

	fmt.Printf("%scapacity %d elements (%d MiB) at %s\n",
		label, v.Cap(), v.DiskSize()>>20, locationOf(v))

	v.Advise(mmapvec.AccessSequential)
	v.PrefetchAt(0)
	err = printTime(label+"write sequential", func() error {
		for i := 0; i < v.Cap(); i++ {
			if !v.PushWithinCapacity(int64(i)) {
				return fmt.Errorf("push refused at %d of %d", i, v.Cap())
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	v.PrefetchAt(0)
	err = printTime(label+"read  sequential", func() error {
		digest := xxhash.New()
		var buf [8]byte
		for i := 0; i < v.Len(); i++ {
			x := v.Get(i)
			if x != int64(i) {
				return fmt.Errorf("index %d: got %d", i, x)
			}
			if *verify {
				binary.LittleEndian.PutUint64(buf[:], uint64(x))
				_, _ = digest.Write(buf[:])
			}
		}
		if *verify {
			if got, want := digest.Sum64(), expectedDigest(v.Len()); got != want {
				return fmt.Errorf("digest mismatch: %x != %x", got, want)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(*seed))
	indexes := make([]int, *randCount)
	for i := range indexes {
		indexes[i] = rng.Intn(v.Len())
		v.PrefetchAt(indexes[i])
	}

	v.Advise(mmapvec.AccessRandom)
	err = printTime(fmt.Sprintf("%swrite rand (%d hits)", label, len(indexes)), func() error {
		for _, idx := range indexes {
			v.Set(idx, int64(idx))
		}
		return nil
	})
	if err != nil {
		return err
	}

	return printTime(fmt.Sprintf("%sread  rand (%d hits)", label, len(indexes)), func() error {
		for _, idx := range indexes {
			if got := v.Get(idx); got != int64(idx) {
				return fmt.Errorf("index %d: got %d", idx, got)
			}
		}
		return nil
	})
}

// expectedDigest is the xxhash of the sequence 0..n-1 as little-endian
// 64-bit values, the exact bytes the write pass stored.
func expectedDigest(n int) uint64 {
	digest := xxhash.New()
	var buf [8]byte
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint64(buf[:], uint64(i))
		_, _ = digest.Write(buf[:])
	}
	return digest.Sum64()
}

func locationOf(v *mmapvec.Vec[int64]) string {
	if path := v.Path(); path != "" {
		return path
	}
	return "anonymous memory"
}

func printTime(name string, f func() error) error {
	fmt.Printf("Testing %s: ", name)

	start := time.Now()
	if err := f(); err != nil {
		fmt.Println("FAILED")
		return err
	}

	fmt.Printf("DONE in %v\n", time.Since(start))
	return nil
}
