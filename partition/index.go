// Package partition groups scan results by partition key.
//
// An Index maps each partition key to the set of window offsets whose
// minimizer encodes to that key, realizing the (k,l)-minimizer binning
// scheme: windows sharing a minimal l-mer land in the same bucket. Offset
// sets are Roaring bitmaps, which stay compact both for the dense buckets
// that low-ranked minimizers produce and for the sparse tail.
package partition

import (
	"bytes"
	"fmt"
	"iter"
	"slices"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// Config identifies the engine configuration an index was built with.
// Indexes built with different configurations must not be merged or
// queried interchangeably; the snapshot format persists the Config so a
// loaded index can be checked against the engine before use.
type Config struct {
	K        int
	L        int
	Alphabet []byte // symbols in rank order
}

// Equal reports whether two configurations are interchangeable.
func (c Config) Equal(other Config) bool {
	return c.K == other.K && c.L == other.L && bytes.Equal(c.Alphabet, other.Alphabet)
}

func (c Config) String() string {
	return fmt.Sprintf("k=%d l=%d alphabet=%q", c.K, c.L, c.Alphabet)
}

// ErrConfigMismatch indicates an operation across indexes (or an index and
// an engine) with different configurations.
type ErrConfigMismatch struct {
	Expected Config
	Actual   Config
}

func (e *ErrConfigMismatch) Error() string {
	return fmt.Sprintf("partition config mismatch: expected %s, got %s", e.Expected, e.Actual)
}

// Index is a partition key to window-offset-set mapping.
//
// Index is not safe for concurrent mutation. Build per-goroutine indexes and
// Merge them, which is what the engine's parallel binning does.
type Index struct {
	cfg   Config
	parts map[uint64]*roaring64.Bitmap
}

// NewIndex creates an empty index for the given configuration.
func NewIndex(cfg Config) *Index {
	return &Index{
		cfg:   cfg,
		parts: make(map[uint64]*roaring64.Bitmap),
	}
}

// Config returns the configuration the index was built with.
func (x *Index) Config() Config {
	return x.cfg
}

// Add records that the window at offset belongs to the given partition.
func (x *Index) Add(key, offset uint64) {
	bm, ok := x.parts[key]
	if !ok {
		bm = roaring64.New()
		x.parts[key] = bm
	}
	bm.Add(offset)
}

// Contains reports whether any window landed in the given partition.
func (x *Index) Contains(key uint64) bool {
	bm, ok := x.parts[key]
	return ok && !bm.IsEmpty()
}

// Offsets iterates the window offsets of a partition in increasing order.
// An unknown key yields nothing.
func (x *Index) Offsets(key uint64) iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		bm, ok := x.parts[key]
		if !ok {
			return
		}
		it := bm.Iterator()
		for it.HasNext() {
			if !yield(it.Next()) {
				return
			}
		}
	}
}

// Cardinality returns the number of windows in a partition.
func (x *Index) Cardinality(key uint64) uint64 {
	bm, ok := x.parts[key]
	if !ok {
		return 0
	}
	return bm.GetCardinality()
}

// Keys returns the occupied partition keys in increasing order.
func (x *Index) Keys() []uint64 {
	keys := make([]uint64, 0, len(x.parts))
	for key := range x.parts {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// Len returns the number of occupied partitions.
func (x *Index) Len() int {
	return len(x.parts)
}

// TotalWindows returns the number of window offsets across all partitions.
func (x *Index) TotalWindows() uint64 {
	var total uint64
	for _, bm := range x.parts {
		total += bm.GetCardinality()
	}
	return total
}

// Histogram returns partition sizes keyed by partition key. The skew toward
// keys of low-ranked minimizers is expected and not an indexing defect.
func (x *Index) Histogram() map[uint64]uint64 {
	h := make(map[uint64]uint64, len(x.parts))
	for key, bm := range x.parts {
		h[key] = bm.GetCardinality()
	}
	return h
}

// Merge folds other into x. Both indexes must share a configuration.
// other remains valid and unchanged.
func (x *Index) Merge(other *Index) error {
	if !x.cfg.Equal(other.cfg) {
		return &ErrConfigMismatch{Expected: x.cfg, Actual: other.cfg}
	}
	for key, bm := range other.parts {
		mine, ok := x.parts[key]
		if !ok {
			x.parts[key] = bm.Clone()
			continue
		}
		mine.Or(bm)
	}
	return nil
}

// Clone returns a deep copy of the index.
func (x *Index) Clone() *Index {
	c := NewIndex(x.cfg)
	for key, bm := range x.parts {
		c.parts[key] = bm.Clone()
	}
	return c
}
