package mmapvec

import (
	"bytes"
	"fmt"

	gojson "github.com/goccy/go-json"
)

// MarshalJSON encodes the vec as a plain JSON array of its elements, so a
// vec serializes exactly like the slice it replaces.
func (v *Vec[T]) MarshalJSON() ([]byte, error) {
	if v.length == 0 {
		return []byte("[]"), nil
	}
	return gojson.Marshal(v.Slice())
}

// UnmarshalJSON replaces the vec's contents with the elements of a JSON
// array, pushing them in order and growing through the provider as
// needed. The vec must have been built with New or FromSlice first; a
// decode or provisioning error leaves a prefix of the array behind.
func (v *Vec[T]) UnmarshalJSON(data []byte) error {
	if v.closed {
		return ErrClosed
	}
	if v.provider == nil {
		return fmt.Errorf("vec not initialized; construct with New before unmarshaling")
	}

	dec := gojson.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(gojson.Delim); !ok || d != '[' {
		return fmt.Errorf("expected JSON array, got %v", tok)
	}

	v.Clear()
	for dec.More() {
		var elem T
		if err := dec.Decode(&elem); err != nil {
			return err
		}
		if err := v.Push(elem); err != nil {
			return err
		}
	}

	// Consume the closing bracket.
	_, err = dec.Token()
	return err
}
