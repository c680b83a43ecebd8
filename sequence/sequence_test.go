package sequence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytesAndString(t *testing.T) {
	b := Bytes("ACGT")
	s := String("ACGT")

	assert.Equal(t, 4, b.Len())
	assert.Equal(t, 4, s.Len())
	for i := 0; i < 4; i++ {
		assert.Equal(t, b.At(i), s.At(i))
	}
}

func TestSub(t *testing.T) {
	seq := String("ACGTACGT")

	sub := Sub(seq, 2, 4)
	assert.Equal(t, 4, sub.Len())
	assert.Equal(t, []byte("GTAC"), Materialize(sub))

	t.Run("Nested", func(t *testing.T) {
		inner := Sub(sub, 1, 2)
		assert.Equal(t, []byte("TA"), Materialize(inner))
		// Nested views collapse to a single indirection.
		v, ok := inner.(view)
		require.True(t, ok)
		assert.Equal(t, 3, v.off)
	})

	t.Run("OutOfBounds", func(t *testing.T) {
		assert.Panics(t, func() { Sub(seq, 6, 4) })
		assert.Panics(t, func() { Sub(seq, -1, 2) })
	})
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genome.seq")
	require.NoError(t, os.WriteFile(path, []byte("ACGTACGTAC"), 0o644))

	f, err := OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, 10, f.Len())
	assert.Equal(t, byte('G'), f.At(2))
	assert.Equal(t, []byte("ACGTACGTAC"), f.Bytes())
}
