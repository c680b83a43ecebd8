package partition

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dnaConfig() Config {
	return Config{K: 10, L: 4, Alphabet: []byte("ACGT")}
}

func TestIndex(t *testing.T) {
	t.Run("AddAndQuery", func(t *testing.T) {
		idx := NewIndex(dnaConfig())
		idx.Add(7, 0)
		idx.Add(7, 3)
		idx.Add(7, 3) // duplicate offsets collapse
		idx.Add(42, 1)

		assert.True(t, idx.Contains(7))
		assert.False(t, idx.Contains(8))
		assert.Equal(t, uint64(2), idx.Cardinality(7))
		assert.Equal(t, uint64(0), idx.Cardinality(8))
		assert.Equal(t, 2, idx.Len())
		assert.Equal(t, uint64(3), idx.TotalWindows())
		assert.Equal(t, []uint64{7, 42}, idx.Keys())

		var offs []uint64
		for off := range idx.Offsets(7) {
			offs = append(offs, off)
		}
		assert.Equal(t, []uint64{0, 3}, offs)
	})

	t.Run("OffsetsEarlyBreak", func(t *testing.T) {
		idx := NewIndex(dnaConfig())
		for i := uint64(0); i < 100; i++ {
			idx.Add(1, i)
		}
		count := 0
		for range idx.Offsets(1) {
			count++
			if count == 10 {
				break
			}
		}
		assert.Equal(t, 10, count)
	})

	t.Run("Histogram", func(t *testing.T) {
		idx := NewIndex(dnaConfig())
		idx.Add(0, 0)
		idx.Add(0, 1)
		idx.Add(255, 2)

		assert.Equal(t, map[uint64]uint64{0: 2, 255: 1}, idx.Histogram())
	})

	t.Run("Merge", func(t *testing.T) {
		a := NewIndex(dnaConfig())
		a.Add(1, 0)
		a.Add(2, 5)

		b := NewIndex(dnaConfig())
		b.Add(2, 6)
		b.Add(3, 7)

		require.NoError(t, a.Merge(b))
		assert.Equal(t, []uint64{1, 2, 3}, a.Keys())
		assert.Equal(t, uint64(2), a.Cardinality(2))

		// b is unchanged.
		assert.Equal(t, uint64(1), b.Cardinality(2))
	})

	t.Run("MergeConfigMismatch", func(t *testing.T) {
		a := NewIndex(dnaConfig())
		b := NewIndex(Config{K: 8, L: 4, Alphabet: []byte("ACGT")})

		err := a.Merge(b)
		var mismatch *ErrConfigMismatch
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, 10, mismatch.Expected.K)
		assert.Equal(t, 8, mismatch.Actual.K)
	})

	t.Run("Clone", func(t *testing.T) {
		a := NewIndex(dnaConfig())
		a.Add(1, 0)

		c := a.Clone()
		c.Add(1, 1)
		assert.Equal(t, uint64(1), a.Cardinality(1))
		assert.Equal(t, uint64(2), c.Cardinality(1))
	})
}

func TestConfigEqual(t *testing.T) {
	assert.True(t, dnaConfig().Equal(dnaConfig()))

	other := dnaConfig()
	other.Alphabet = []byte("TGCA")
	assert.False(t, dnaConfig().Equal(other))

	cloned := dnaConfig()
	cloned.Alphabet = slices.Clone(dnaConfig().Alphabet)
	assert.True(t, dnaConfig().Equal(cloned))
}
