// Package mmapvec provides a growable, disk-backed array for Go.
//
// A Vec keeps its elements in one memory-mapped file instead of the Go
// heap: the OS pages data in and out on demand, so arrays larger than RAM
// stay usable. The garbage collector never scans the elements, and access
// is plain zero-copy loads and stores.
//
// # Quick Start
//
//	v, _ := mmapvec.New[int64]()
//	defer v.Close()
//
//	_ = v.Push(42)
//	x := v.Get(0)       // 42, read straight from the mapping
//	v.Set(0, x+1)
//
//	for i, x := range v.All() {
//	    fmt.Println(i, x)
//	}
//
// # Storage Model
//
// A vec owns at most one live Segment: a fixed-capacity typed view over a
// single mapped region. Segments never resize in place. When a push needs
// room, the vec asks its SegmentProvider for a larger region, copies the
// used range across, swaps the new segment in and deletes the old one.
// If any provisioning step fails, the original segment is untouched and
// the push reports which stage failed (ErrCreate, ErrResize, ErrMap, ...).
//
// Capacity grows geometrically (doubling by default, see
// WithGrowthFactor) and only ever shrinks on an explicit ShrinkToFit.
//
// # Providers
//
// The default FileProvider creates uniquely named files under the system
// temp directory; backing files are private to one vec and deleted on
// Close. AnonProvider keeps data in anonymous mappings with no file at
// all, and QuotaProvider bounds the total bytes of any other provider.
//
// # Element Types
//
// Elements must be fixed-layout and pointer-free: integers, floats,
// arrays and structs thereof. Pointers, slices, maps and strings are
// rejected at construction, since a pointer in mapped memory would dangle
// after a remap and is invisible to the garbage collector.
//
// # Concurrency
//
// A Vec has no internal locking. Treat it like a slice: concurrent
// readers are fine, any writer needs external synchronization.
//
// # Durability
//
// Backing files are working storage, not a persistence format: they are
// deleted on Close and their layout (raw elements in native byte order)
// is not portable across architectures. Use MarshalJSON/UnmarshalJSON for
// interchange.
package mmapvec
