package blobstore

import (
	"context"
	"errors"
	"testing"

	"github.com/hupe1980/seqmin/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	t.Run("PutOpenRoundTrip", func(t *testing.T) {
		require.NoError(t, Put(ctx, store, "a", []byte("hello")))

		data, err := ReadAll(ctx, store, "a")
		require.NoError(t, err)
		assert.Equal(t, []byte("hello"), data)
	})

	t.Run("OpenIsolatedFromLaterPut", func(t *testing.T) {
		require.NoError(t, Put(ctx, store, "iso", []byte("old")))
		blob, err := store.Open(ctx, "iso")
		require.NoError(t, err)
		defer blob.Close()

		require.NoError(t, Put(ctx, store, "iso", []byte("new")))

		buf := make([]byte, 3)
		_, err = blob.ReadAt(buf, 0)
		require.NoError(t, err)
		assert.Equal(t, []byte("old"), buf)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := store.Open(ctx, "nope")
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("ListSorted", func(t *testing.T) {
		s := NewMemoryStore()
		require.NoError(t, Put(ctx, s, "b", nil))
		require.NoError(t, Put(ctx, s, "a", nil))
		require.NoError(t, Put(ctx, s, "c/d", nil))

		names, err := s.List(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c/d"}, names)
	})
}

func TestThrottle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, Put(ctx, store, "seq", []byte("ACGTACGT")))

	blob, err := store.Open(ctx, "seq")
	require.NoError(t, err)
	defer blob.Close()

	t.Run("NilControllerPassesThrough", func(t *testing.T) {
		assert.Equal(t, blob, Throttle(ctx, blob, nil))
	})

	t.Run("LimitedReads", func(t *testing.T) {
		ctrl := resource.NewController(resource.Config{IOLimitBytesPerSec: 1 << 20})
		tb := Throttle(ctx, blob, ctrl)
		assert.Equal(t, int64(8), tb.Size())

		buf := make([]byte, 8)
		n, err := tb.ReadAt(buf, 0)
		require.NoError(t, err)
		assert.Equal(t, 8, n)
		assert.Equal(t, []byte("ACGTACGT"), buf)
	})

	t.Run("CanceledContextFailsReads", func(t *testing.T) {
		canceled, cancel := context.WithCancel(context.Background())
		cancel()
		ctrl := resource.NewController(resource.Config{IOLimitBytesPerSec: 1})
		tb := Throttle(canceled, blob, ctrl)
		_, err := tb.ReadAt(make([]byte, 4), 0)
		assert.Error(t, err)
	})
}
