package partition

import (
	"bytes"
	"context"
	"testing"

	"github.com/hupe1980/seqmin/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildIndex(t *testing.T) *Index {
	t.Helper()
	idx := NewIndex(dnaConfig())
	idx.Add(0, 0)
	idx.Add(0, 17)
	idx.Add(0, 12345)
	idx.Add(91, 3)
	idx.Add(255, 1<<33) // offsets past 32 bits must survive
	return idx
}

func assertIndexEqual(t *testing.T, want, got *Index) {
	t.Helper()
	assert.True(t, want.Config().Equal(got.Config()))
	require.Equal(t, want.Keys(), got.Keys())
	for _, key := range want.Keys() {
		assert.Equal(t, want.Cardinality(key), got.Cardinality(key), "key %d", key)
		var w, g []uint64
		for off := range want.Offsets(key) {
			w = append(w, off)
		}
		for off := range got.Offsets(key) {
			g = append(g, off)
		}
		assert.Equal(t, w, g, "key %d", key)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	for _, codec := range []Codec{CodecNone, CodecZstd, CodecLZ4} {
		t.Run(codec.String(), func(t *testing.T) {
			idx := buildIndex(t)

			var buf bytes.Buffer
			require.NoError(t, Write(&buf, idx, codec))

			got, err := Read(bytes.NewReader(buf.Bytes()))
			require.NoError(t, err)
			assertIndexEqual(t, idx, got)
		})
	}
}

func TestSnapshotEmptyIndex(t *testing.T) {
	idx := NewIndex(dnaConfig())

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, idx, CodecZstd))

	got, err := Read(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())
	assert.True(t, idx.Config().Equal(got.Config()))
}

func TestSnapshotErrors(t *testing.T) {
	idx := buildIndex(t)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, idx, CodecZstd))
	data := buf.Bytes()

	t.Run("BadMagic", func(t *testing.T) {
		corrupt := append([]byte(nil), data...)
		corrupt[0] = 'X'
		_, err := Read(bytes.NewReader(corrupt))
		assert.ErrorIs(t, err, ErrBadMagic)
	})

	t.Run("UnsupportedVersion", func(t *testing.T) {
		corrupt := append([]byte(nil), data...)
		corrupt[4] = 99
		_, err := Read(bytes.NewReader(corrupt))
		var ev *ErrUnsupportedVersion
		require.ErrorAs(t, err, &ev)
		assert.Equal(t, uint16(99), ev.Version)
	})

	t.Run("UnknownCodec", func(t *testing.T) {
		corrupt := append([]byte(nil), data...)
		corrupt[6] = 200
		_, err := Read(bytes.NewReader(corrupt))
		var ec *ErrUnknownCodec
		assert.ErrorAs(t, err, &ec)
	})

	t.Run("CorruptPayload", func(t *testing.T) {
		corrupt := append([]byte(nil), data...)
		corrupt[len(corrupt)-1] ^= 0xFF
		_, err := Read(bytes.NewReader(corrupt))
		// Either the decompressor or the checksum rejects the damage.
		assert.Error(t, err)
	})

	t.Run("CorruptUncompressedPayload", func(t *testing.T) {
		var plain bytes.Buffer
		require.NoError(t, Write(&plain, idx, CodecNone))
		corrupt := plain.Bytes()
		corrupt[len(corrupt)-1] ^= 0xFF

		_, err := Read(bytes.NewReader(corrupt))
		var mismatch *ChecksumMismatchError
		assert.ErrorAs(t, err, &mismatch)
	})

	t.Run("Truncated", func(t *testing.T) {
		_, err := Read(bytes.NewReader(data[:10]))
		assert.Error(t, err)
	})
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	idx := buildIndex(t)

	require.NoError(t, Save(ctx, store, "snapshots/v1.smin", idx, CodecLZ4))

	got, err := Load(ctx, store, "snapshots/v1.smin")
	require.NoError(t, err)
	assertIndexEqual(t, idx, got)

	_, err = Load(ctx, store, "snapshots/missing")
	assert.Error(t, err)
}
