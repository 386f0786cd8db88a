package mmapvec

import "errors"

// Provisioning errors identify which stage of segment creation failed.
// They wrap the underlying cause; match them with errors.Is.
var (
	// ErrDirectory is returned when the segment directory cannot be resolved or created.
	ErrDirectory = errors.New("segment directory unavailable")

	// ErrIDGeneration is returned when no unique segment id can be produced.
	ErrIDGeneration = errors.New("segment id generation failed")

	// ErrCreate is returned when the backing file cannot be created.
	ErrCreate = errors.New("segment file creation failed")

	// ErrResize is returned when the backing file cannot be sized.
	ErrResize = errors.New("segment file resize failed")

	// ErrMap is returned when the backing region cannot be memory-mapped.
	ErrMap = errors.New("segment mapping failed")
)

var (
	// ErrClosed is returned when operating on a closed vec.
	ErrClosed = errors.New("vec is closed")

	// ErrQuotaExceeded is returned when provisioning would exceed a provider quota.
	ErrQuotaExceeded = errors.New("segment quota exceeded")

	// ErrUnsupportedType is returned for element types that cannot live in
	// mapped memory (anything carrying pointers).
	ErrUnsupportedType = errors.New("unsupported element type")

	// ErrZeroSizeType is returned for zero-size element types.
	ErrZeroSizeType = errors.New("zero-size element type")

	// ErrSizeMismatch is returned when a backing region is not an exact
	// multiple of the element size.
	ErrSizeMismatch = errors.New("backing size mismatch")
)
