package seqmin

// WindowHasher computes a comparison hash over a whole k-length window.
//
// The engine never hashes windows itself: partition keys come from the
// minimizer bijection and are deliberately skewed toward substrings of
// low-ranked symbols. A WindowHasher is the counterpart for callers who
// want to benchmark that skew against a uniform hash-based partitioning
// of the same windows.
type WindowHasher interface {
	HashWindow(window []byte) uint64
}

// WindowHasherFunc adapts a plain function to the WindowHasher interface.
type WindowHasherFunc func(window []byte) uint64

// HashWindow implements WindowHasher.
func (f WindowHasherFunc) HashWindow(window []byte) uint64 { return f(window) }
