// Package minimizer implements the core minimizer computation: for each
// k-length window of a sequence, the lexicographically smallest l-length
// substring under the alphabet's rank order, and its integer partition key.
//
// Partition keys are a base-|Σ| positional encoding of the minimizer, so the
// mapping between l-mers and keys is a bijection, not a hash. Two windows
// that share a common l-mer which is minimal in both receive the same key
// even though they differ elsewhere; this locality sensitivity is the point
// of the scheme. Key frequencies are intentionally non-uniform: l-mers built
// from low-ranked symbols win the minimum in far more windows than l-mers
// built from high-ranked ones.
package minimizer

import (
	"iter"
	"math"

	"github.com/hupe1980/seqmin/alphabet"
	"github.com/hupe1980/seqmin/sequence"
)

// Hit is the result of minimizing a single window during a scan.
type Hit struct {
	// WindowOffset is the window's start offset in the scanned sequence.
	WindowOffset int
	// MinimizerOffset is the absolute start offset of the minimizer, so the
	// offset within the window is MinimizerOffset - WindowOffset. It is -1
	// for windows that failed alphabet validation.
	MinimizerOffset int
	// Key is the partition key of the minimizer.
	Key uint64
}

// Engine computes minimizers and partition keys for a fixed configuration
// (alphabet, window length k, minimizer length l). All operations are pure:
// the engine holds no mutable state and is safe for concurrent use.
type Engine struct {
	alpha *alphabet.Alphabet
	k     int
	l     int

	sigma    uint64 // |Σ|
	keyCount uint64 // |Σ|^l, exclusive upper bound for partition keys
	highPow  uint64 // |Σ|^(l-1), weight of the leading symbol
}

// New creates an Engine. It fails when k < 1, l < 1, l > k, the alphabet is
// missing, or |Σ|^l does not fit in a uint64 partition key.
func New(alpha *alphabet.Alphabet, k, l int) (*Engine, error) {
	if alpha == nil {
		return nil, ErrNoAlphabet
	}
	if k < 1 {
		return nil, &ErrInvalidK{K: k}
	}
	if l < 1 || l > k {
		return nil, &ErrInvalidL{L: l, K: k}
	}

	sigma := uint64(alpha.Size())
	keyCount := uint64(1)
	highPow := uint64(1)
	for i := 0; i < l; i++ {
		if sigma > 1 && keyCount > math.MaxUint64/sigma {
			return nil, &ErrKeyOverflow{AlphabetSize: alpha.Size(), L: l}
		}
		if i == l-1 {
			highPow = keyCount
		}
		keyCount *= sigma
	}

	return &Engine{
		alpha:    alpha,
		k:        k,
		l:        l,
		sigma:    sigma,
		keyCount: keyCount,
		highPow:  highPow,
	}, nil
}

// K returns the configured window length.
func (e *Engine) K() int { return e.k }

// L returns the configured minimizer length.
func (e *Engine) L() int { return e.l }

// Alphabet returns the configured alphabet.
func (e *Engine) Alphabet() *alphabet.Alphabet { return e.alpha }

// KeyCount returns |Σ|^l, the number of distinct partition keys.
func (e *Engine) KeyCount() uint64 { return e.keyCount }

// MinimizerOf returns the offset and content of the minimal l-mer within
// window, which must be exactly k symbols. Candidates are compared in the
// lexicographic order induced by the alphabet ranks; content-identical
// minima resolve to the leftmost offset. The returned slice aliases window.
func (e *Engine) MinimizerOf(window []byte) (int, []byte, error) {
	if len(window) != e.k {
		return 0, nil, &ErrLengthMismatch{Expected: e.k, Actual: len(window)}
	}
	for i, sym := range window {
		if !e.alpha.Contains(sym) {
			return 0, nil, &ErrSymbolNotInAlphabet{Symbol: sym, Offset: i}
		}
	}

	// Roll the l-mer key across the window. Radix encoding preserves rank
	// order for fixed-length strings, so integer comparison of keys is the
	// lexicographic comparison. Strict less keeps the leftmost of ties.
	var key uint64
	bestOff, bestKey := 0, uint64(math.MaxUint64)
	for pos, sym := range window {
		r, _ := e.alpha.Rank(sym)
		key = key%e.highPow*e.sigma + r
		if off := pos - e.l + 1; off >= 0 && key < bestKey {
			bestOff, bestKey = off, key
		}
	}
	return bestOff, window[bestOff : bestOff+e.l], nil
}

// PartitionKey encodes an l-mer as an integer in [0, |Σ|^l) by folding
// left-to-right: acc = acc*|Σ| + rank(symbol). The encoding is a bijection
// over Σ^l; DecodeKey is its inverse.
func (e *Engine) PartitionKey(mer []byte) (uint64, error) {
	if len(mer) != e.l {
		return 0, &ErrLengthMismatch{Expected: e.l, Actual: len(mer)}
	}
	var key uint64
	for i, sym := range mer {
		r, ok := e.alpha.Rank(sym)
		if !ok {
			return 0, &ErrSymbolNotInAlphabet{Symbol: sym, Offset: i}
		}
		key = key*e.sigma + r
	}
	return key, nil
}

// DecodeKey returns the l-mer that PartitionKey maps to key. Symbols are
// returned in the alphabet's canonical form.
func (e *Engine) DecodeKey(key uint64) ([]byte, error) {
	if key >= e.keyCount {
		return nil, &ErrKeyRange{Key: key, Max: e.keyCount}
	}
	mer := make([]byte, e.l)
	for i := e.l - 1; i >= 0; i-- {
		mer[i] = e.alpha.Symbol(key % e.sigma)
		key /= e.sigma
	}
	return mer, nil
}

// Scan produces one Hit per window start offset 0..n-k, in increasing order.
//
// The scan is lazy and single-pass: breaking out of the loop early releases
// everything, and ranging again over the same result restarts from the
// beginning with identical output (there is no state shared between scans).
//
// A sequence shorter than k yields a single ErrSequenceTooShort. A window
// containing an out-of-alphabet symbol yields that window's offset paired
// with ErrSymbolNotInAlphabet; the scan then continues with subsequent
// windows, so callers choose between skipping bad windows and stopping.
//
// Work is O(n) total: each candidate l-mer enters and leaves the sliding
// window-minimum deque at most once, regardless of k.
func (e *Engine) Scan(seq sequence.Sequence) iter.Seq2[Hit, error] {
	return func(yield func(Hit, error) bool) {
		n := seq.Len()
		if n < e.k {
			yield(Hit{WindowOffset: -1, MinimizerOffset: -1},
				&ErrSequenceTooShort{Length: n, Window: e.k})
			return
		}

		dq := newMinQueue(e.k - e.l + 2)
		var key uint64
		lastBad := -1

		for pos := 0; pos < n; pos++ {
			winOff := pos - e.k + 1
			dq.popExpired(winOff)

			r, ok := e.alpha.Rank(seq.At(pos))
			if !ok {
				lastBad = pos
				key = 0
			} else {
				key = key%e.highPow*e.sigma + r
			}

			// The candidate ending at pos is usable only if none of its l
			// symbols were invalid.
			if candOff := pos - e.l + 1; candOff >= 0 && lastBad < candOff {
				dq.push(cand{off: candOff, key: key})
			}

			if winOff < 0 {
				continue
			}
			if lastBad >= winOff {
				err := &ErrSymbolNotInAlphabet{Symbol: seq.At(lastBad), Offset: lastBad}
				if !yield(Hit{WindowOffset: winOff, MinimizerOffset: -1}, err) {
					return
				}
				continue
			}
			m := dq.min()
			if !yield(Hit{WindowOffset: winOff, MinimizerOffset: m.off, Key: m.key}, nil) {
				return
			}
		}
	}
}
