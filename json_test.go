package mmapvec_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/mmapvec"
)

func TestVec_MarshalJSON(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		v := newAnonVec[uint32](t)

		data, err := json.Marshal(v)
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))
	})

	t.Run("sequence", func(t *testing.T) {
		v := newAnonVec[uint32](t)
		require.NoError(t, v.Push(42))
		require.NoError(t, v.Push(8))
		require.NoError(t, v.Push(52))

		data, err := json.Marshal(v)
		require.NoError(t, err)
		assert.Equal(t, "[42,8,52]", string(data))
	})

	t.Run("struct elements", func(t *testing.T) {
		v := newAnonVec[dataRow](t)
		require.NoError(t, v.Push(row1))

		data, err := json.Marshal(v)
		require.NoError(t, err)
		assert.JSONEq(t, `[{"ID":1,"Weight":0.5,"Flags":[1,0,0,0]}]`, string(data))
	})
}

func TestVec_UnmarshalJSON(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		src := newAnonVec[int64](t)
		for i := int64(0); i < 100; i++ {
			require.NoError(t, src.Push(i))
		}

		data, err := json.Marshal(src)
		require.NoError(t, err)

		dst := newAnonVec[int64](t)
		require.NoError(t, json.Unmarshal(data, dst))
		assert.True(t, mmapvec.Equal(src, dst))
	})

	t.Run("replaces existing contents", func(t *testing.T) {
		v := newAnonVec[int64](t)
		require.NoError(t, v.Push(999))

		require.NoError(t, json.Unmarshal([]byte("[1,2,3]"), v))
		assert.Equal(t, []int64{1, 2, 3}, v.Slice())
	})

	t.Run("empty array", func(t *testing.T) {
		v := newAnonVec[int64](t)
		require.NoError(t, v.Push(999))

		require.NoError(t, json.Unmarshal([]byte("[]"), v))
		assert.True(t, v.IsEmpty())
	})

	t.Run("not an array", func(t *testing.T) {
		v := newAnonVec[int64](t)
		assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), v))
		assert.Error(t, json.Unmarshal([]byte(`42`), v))
	})

	t.Run("element type mismatch", func(t *testing.T) {
		v := newAnonVec[int64](t)
		assert.Error(t, json.Unmarshal([]byte(`[1,"two",3]`), v))
	})

	t.Run("uninitialized vec", func(t *testing.T) {
		var v mmapvec.Vec[int64]
		assert.Error(t, json.Unmarshal([]byte("[1]"), &v))
	})

	t.Run("closed vec", func(t *testing.T) {
		v := newAnonVec[int64](t)
		require.NoError(t, v.Close())
		assert.ErrorIs(t, json.Unmarshal([]byte("[1]"), v), mmapvec.ErrClosed)
	})
}
