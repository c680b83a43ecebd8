package minimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinQueue(t *testing.T) {
	t.Run("EvictsLargerKeys", func(t *testing.T) {
		q := newMinQueue(4)
		q.push(cand{off: 0, key: 5})
		q.push(cand{off: 1, key: 3})
		assert.Equal(t, cand{off: 1, key: 3}, q.min())

		q.push(cand{off: 2, key: 7})
		assert.Equal(t, cand{off: 1, key: 3}, q.min())

		q.push(cand{off: 3, key: 1})
		assert.Equal(t, cand{off: 3, key: 1}, q.min())
		assert.Equal(t, 1, q.size)
	})

	t.Run("KeepsTiesLeftmost", func(t *testing.T) {
		q := newMinQueue(4)
		q.push(cand{off: 0, key: 2})
		q.push(cand{off: 1, key: 2})
		assert.Equal(t, 2, q.size)
		assert.Equal(t, cand{off: 0, key: 2}, q.min())

		// Expiring the leftmost exposes the later equal candidate.
		q.popExpired(1)
		assert.Equal(t, cand{off: 1, key: 2}, q.min())
	})

	t.Run("PopExpired", func(t *testing.T) {
		q := newMinQueue(4)
		q.push(cand{off: 0, key: 1})
		q.push(cand{off: 1, key: 2})
		q.push(cand{off: 2, key: 3})
		q.popExpired(2)
		assert.Equal(t, cand{off: 2, key: 3}, q.min())
		assert.Equal(t, 1, q.size)
	})

	t.Run("WrapsAround", func(t *testing.T) {
		q := newMinQueue(3)
		for off := 0; off < 10; off++ {
			q.push(cand{off: off, key: uint64(off % 3)})
			q.popExpired(off - 2)
			assert.LessOrEqual(t, q.size, 3)
		}
	})
}
