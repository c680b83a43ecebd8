package minimizer

import (
	"errors"
	"fmt"
)

// ErrNoAlphabet is returned when constructing an engine without an alphabet.
var ErrNoAlphabet = errors.New("minimizer: alphabet is required")

// ErrInvalidK indicates a window length below 1.
type ErrInvalidK struct {
	K int
}

func (e *ErrInvalidK) Error() string {
	return fmt.Sprintf("invalid window length k=%d: must be >= 1", e.K)
}

// ErrInvalidL indicates a minimizer length outside [1, k].
type ErrInvalidL struct {
	L int
	K int
}

func (e *ErrInvalidL) Error() string {
	return fmt.Sprintf("invalid minimizer length l=%d: must be in [1, k=%d]", e.L, e.K)
}

// ErrKeyOverflow indicates that |Σ|^l does not fit in a uint64 partition key.
type ErrKeyOverflow struct {
	AlphabetSize int
	L            int
}

func (e *ErrKeyOverflow) Error() string {
	return fmt.Sprintf("partition key space %d^%d overflows uint64", e.AlphabetSize, e.L)
}

// ErrSymbolNotInAlphabet indicates an input symbol outside the configured
// alphabet. Offset is the position at which the symbol was encountered: the
// absolute sequence offset for Scan, the offset within the input for
// MinimizerOf and PartitionKey.
type ErrSymbolNotInAlphabet struct {
	Symbol byte
	Offset int
}

func (e *ErrSymbolNotInAlphabet) Error() string {
	return fmt.Sprintf("symbol %q at offset %d is not in the alphabet", e.Symbol, e.Offset)
}

// ErrLengthMismatch indicates an input of the wrong length: a window that is
// not exactly k symbols, or a minimizer string that is not exactly l symbols.
type ErrLengthMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrLengthMismatch) Error() string {
	return fmt.Sprintf("length mismatch: expected %d symbols, got %d", e.Expected, e.Actual)
}

// ErrSequenceTooShort indicates a sequence shorter than the window length,
// which yields no windows at all. Scan reports this as an error rather than
// an empty result so that misconfigured callers fail loudly.
type ErrSequenceTooShort struct {
	Length int
	Window int
}

func (e *ErrSequenceTooShort) Error() string {
	return fmt.Sprintf("sequence length %d is shorter than window length %d", e.Length, e.Window)
}

// ErrKeyRange indicates a partition key outside [0, |Σ|^l).
type ErrKeyRange struct {
	Key uint64
	Max uint64 // exclusive upper bound
}

func (e *ErrKeyRange) Error() string {
	return fmt.Sprintf("partition key %d out of range [0, %d)", e.Key, e.Max)
}
