package mmapvec

import "iter"

// All returns an index/value iterator over the used range, for use with
// range-over-func:
//
//	for i, x := range v.All() {
//	    ...
//	}
//
// The sequence is lazy and restartable: each range starts from the
// beginning. Operations that replace the active segment (growing Push,
// Grow, ShrinkToFit, Close) invalidate an in-flight walk; start a new one
// after mutating.
func (v *Vec[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.length; i++ {
			if !yield(i, v.seg.Get(i)) {
				return
			}
		}
	}
}

// Values returns a value iterator over the used range, with the same
// laziness and restart semantics as All.
func (v *Vec[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < v.length; i++ {
			if !yield(v.seg.Get(i)) {
				return
			}
		}
	}
}
