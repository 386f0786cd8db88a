package mmapvec

import (
	"fmt"
	"reflect"
	"unsafe"
)

// sizeOf returns T's in-memory footprint including padding. Elements are
// stored in the mapped region at exactly this stride, so the footprint is
// also the on-disk stride.
func sizeOf[T any]() int64 {
	var zero T
	return int64(unsafe.Sizeof(zero))
}

// checkElemType verifies at construction time that T can live in mapped
// memory: nonzero size, fixed layout, no pointers anywhere in the value.
// A pointer stored in a mapped region would dangle once the region is
// replaced or the process restarts, and the garbage collector never scans
// mapped memory.
func checkElemType[T any]() error {
	t := reflect.TypeFor[T]()
	if t.Size() == 0 {
		return fmt.Errorf("%w: %s", ErrZeroSizeType, t)
	}
	if containsPointers(t) {
		return fmt.Errorf("%w: %s contains pointers", ErrUnsupportedType, t)
	}
	return nil
}

func containsPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr, reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		return containsPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if containsPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		// Chan, Func, Interface, Map, Pointer, Slice, String, UnsafePointer.
		return true
	}
}
