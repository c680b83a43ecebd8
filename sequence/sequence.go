// Package sequence defines the read-only sequence abstraction the minimizer
// engine scans over.
//
// A Sequence is caller-owned and immutable from the engine's point of view:
// the engine only needs O(1) symbol lookup by index and a known total length,
// and it never takes ownership of the data. Windows and minimizer candidates
// are index ranges into a Sequence, never copies.
package sequence

// Sequence is an ordered, immutable run of symbols.
//
// Implementations must provide O(1) At and Len and must not mutate the
// underlying data while a scan is in progress. All engine operations treat a
// Sequence as read-only, so a single Sequence may back any number of
// concurrent scans without locking.
type Sequence interface {
	// At returns the symbol at index i, 0 <= i < Len().
	At(i int) byte
	// Len returns the number of symbols.
	Len() int
}

// Bytes adapts a byte slice to the Sequence interface without copying.
type Bytes []byte

// At returns the symbol at index i.
func (b Bytes) At(i int) byte { return b[i] }

// Len returns the number of symbols.
func (b Bytes) Len() int { return len(b) }

// String adapts a string to the Sequence interface without copying.
type String string

// At returns the symbol at index i.
func (s String) At(i int) byte { return s[i] }

// Len returns the number of symbols.
func (s String) Len() int { return len(s) }

// Sub returns a read-only view of seq covering [off, off+n).
// The view shares the underlying data; no symbols are copied.
// It panics if the range is out of bounds, mirroring slice semantics.
func Sub(seq Sequence, off, n int) Sequence {
	if off < 0 || n < 0 || off+n > seq.Len() {
		panic("sequence: Sub range out of bounds")
	}
	// Collapse nested views so deep Sub chains stay O(1) per At.
	if v, ok := seq.(view); ok {
		return view{s: v.s, off: v.off + off, n: n}
	}
	return view{s: seq, off: off, n: n}
}

type view struct {
	s   Sequence
	off int
	n   int
}

func (v view) At(i int) byte { return v.s.At(v.off + i) }
func (v view) Len() int      { return v.n }

// Materialize copies seq into a byte slice. Intended for small extracts
// (e.g. reporting a window around a hit), not whole genomes.
func Materialize(seq Sequence) []byte {
	out := make([]byte, seq.Len())
	for i := range out {
		out[i] = seq.At(i)
	}
	return out
}
