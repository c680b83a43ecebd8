// Package alphabet defines the finite symbol sets that sequences are drawn
// from, together with the total order (rank function) that minimizer
// comparison and partition-key encoding are built on.
//
// An Alphabet is immutable after construction. The rank of a symbol is its
// position in the symbol list passed to New, so the list order defines the
// lexicographic order used by the engine.
package alphabet

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty is returned when constructing an alphabet with no symbols.
	ErrEmpty = errors.New("alphabet: no symbols")
)

// ErrDuplicateSymbol indicates a symbol that appears more than once in the
// symbol list, which would make the rank mapping non-injective.
type ErrDuplicateSymbol struct {
	Symbol byte
}

func (e *ErrDuplicateSymbol) Error() string {
	return fmt.Sprintf("alphabet: duplicate symbol %q", e.Symbol)
}

// Alphabet is a finite symbol set with an injective rank mapping.
// The zero value is not usable; construct via New or one of the presets.
type Alphabet struct {
	symbols []byte
	rank    [256]uint8
	valid   [256]bool
	folded  [256]byte // identity unless case folding is enabled
}

// New creates an Alphabet whose rank order is the order of symbols.
// Symbols must be non-empty and free of duplicates.
func New(symbols []byte) (*Alphabet, error) {
	if len(symbols) == 0 {
		return nil, ErrEmpty
	}
	a := &Alphabet{symbols: append([]byte(nil), symbols...)}
	for i := range a.folded {
		a.folded[i] = byte(i)
	}
	for i, s := range symbols {
		if a.valid[s] {
			return nil, &ErrDuplicateSymbol{Symbol: s}
		}
		a.valid[s] = true
		a.rank[s] = uint8(i)
	}
	return a, nil
}

// MustNew is like New but panics on error. Intended for the package presets
// and for fixed alphabets in tests.
func MustNew(symbols []byte) *Alphabet {
	a, err := New(symbols)
	if err != nil {
		panic(err)
	}
	return a
}

// DNA returns the nucleotide alphabet {A, C, G, T} with A ranked smallest.
// Lowercase input symbols are folded to uppercase before lookup.
func DNA() *Alphabet {
	return MustNew([]byte("ACGT")).WithCaseFolding()
}

// RNA returns the nucleotide alphabet {A, C, G, U} with case folding.
func RNA() *Alphabet {
	return MustNew([]byte("ACGU")).WithCaseFolding()
}

// Protein returns the 20 standard amino acid one-letter codes in
// alphabetical order, with case folding.
func Protein() *Alphabet {
	return MustNew([]byte("ACDEFGHIKLMNPQRSTVWY")).WithCaseFolding()
}

// WithCaseFolding returns a copy of the alphabet that folds ASCII lowercase
// input to uppercase before rank lookup. Symbols listed at construction are
// unchanged; only lookups are affected.
func (a *Alphabet) WithCaseFolding() *Alphabet {
	c := *a
	c.symbols = append([]byte(nil), a.symbols...)
	for lo := byte('a'); lo <= 'z'; lo++ {
		up := lo - 'a' + 'A'
		if c.valid[up] && !c.valid[lo] {
			c.folded[lo] = up
			c.valid[lo] = true
			c.rank[lo] = c.rank[up]
		}
	}
	return &c
}

// Size returns |Σ|, the number of symbols.
func (a *Alphabet) Size() int {
	return len(a.symbols)
}

// Rank returns the rank of sym and whether sym belongs to the alphabet.
func (a *Alphabet) Rank(sym byte) (uint64, bool) {
	if !a.valid[sym] {
		return 0, false
	}
	return uint64(a.rank[sym]), true
}

// Contains reports whether sym belongs to the alphabet.
func (a *Alphabet) Contains(sym byte) bool {
	return a.valid[sym]
}

// Symbol returns the symbol with the given rank.
// It panics if rank is out of range; ranks produced by Rank are always valid.
func (a *Alphabet) Symbol(rank uint64) byte {
	return a.symbols[rank]
}

// Normalize returns the canonical form of sym under the alphabet's folding
// rules (e.g. lowercase folded to uppercase for DNA). Symbols outside the
// alphabet are returned unchanged.
func (a *Alphabet) Normalize(sym byte) byte {
	return a.folded[sym]
}

// Symbols returns the symbols in rank order. The returned slice is a copy.
func (a *Alphabet) Symbols() []byte {
	return append([]byte(nil), a.symbols...)
}

// Equal reports whether two alphabets have identical symbols in identical
// rank order. Case folding configuration is not part of the comparison since
// it does not affect key encoding.
func (a *Alphabet) Equal(other *Alphabet) bool {
	if a == other {
		return true
	}
	if other == nil || len(a.symbols) != len(other.symbols) {
		return false
	}
	for i := range a.symbols {
		if a.symbols[i] != other.symbols[i] {
			return false
		}
	}
	return true
}

// String returns the symbols in rank order, for diagnostics.
func (a *Alphabet) String() string {
	return string(a.symbols)
}
