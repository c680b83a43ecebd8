package minimizer

// cand is a minimizer candidate: an l-mer offset and its encoded key.
type cand struct {
	off int
	key uint64
}

// minQueue is a monotonic deque over candidate l-mers. Keys are
// non-decreasing from front to back, so the front is always the minimum of
// the candidates currently in range. Push evicts strictly larger keys from
// the back; equal keys are kept so that the earliest offset stays at the
// front and leftmost tie-breaking falls out of the structure.
//
// Backed by a fixed ring buffer: a window holds at most k-l+1 candidates.
type minQueue struct {
	buf  []cand
	head int
	size int
}

func newMinQueue(capacity int) *minQueue {
	return &minQueue{buf: make([]cand, capacity)}
}

// push adds a candidate, evicting back entries with strictly greater keys.
// Candidates must be pushed in increasing offset order.
func (q *minQueue) push(c cand) {
	for q.size > 0 && q.back().key > c.key {
		q.size--
	}
	q.buf[(q.head+q.size)%len(q.buf)] = c
	q.size++
}

// popExpired drops front candidates with offsets below minOff.
func (q *minQueue) popExpired(minOff int) {
	for q.size > 0 && q.buf[q.head].off < minOff {
		q.head = (q.head + 1) % len(q.buf)
		q.size--
	}
}

// min returns the front candidate. Callers must ensure the queue is
// non-empty; during a scan it always is once the first window completes.
func (q *minQueue) min() cand {
	return q.buf[q.head]
}

func (q *minQueue) back() cand {
	return q.buf[(q.head+q.size-1)%len(q.buf)]
}
