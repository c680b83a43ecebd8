// Package seqmin provides an embeddable minimizer engine for partitioning
// biological sequences.
//
// For every k-length window of a sequence the engine selects the minimizer:
// the lexicographically smallest l-length substring under a configurable
// alphabet order. The minimizer is encoded as a base-|Σ| integer, which
// serves as the window's partition key. Nearby windows tend to share a
// minimizer, so keys are locality sensitive: similar regions land in the
// same partition.
//
// # Quick Start
//
//	engine, _ := seqmin.DNA().K(10).L(4).Build()
//
//	for hit, err := range engine.Scan(sequence.Bytes(seq)) {
//	    if err != nil {
//	        break
//	    }
//	    fmt.Println(hit.WindowOffset, hit.Key)
//	}
//
// Binning collects every window of a sequence into a partition index,
// optionally in parallel:
//
//	engine, _ := seqmin.DNA().K(10).L(4).Workers(8).Build()
//	idx, _ := engine.Bin(ctx, sequence.Bytes(seq))
//	for key, n := range idx.Histogram() {
//	    fmt.Println(key, n)
//	}
//
// # Custom Alphabets
//
// The rank order of the alphabet decides which substrings compare small.
// DNA, RNA and protein alphabets are built in; any byte alphabet works:
//
//	alpha, _ := alphabet.New([]byte("acgt"), alphabet.WithCaseFolding())
//	engine, _ := seqmin.Custom(alpha).K(12).L(6).Build()
//
// # Key Properties
//
//   - O(n) scan using a monotonic deque, independent of k and l
//   - Ties resolve to the leftmost candidate, so scans are deterministic
//   - Keys are a bijection between Σ^l and [0, |Σ|^l), not a hash: they
//     decode back to the minimizer and deliberately skew toward substrings
//     of low-ranked symbols
//   - Snapshots persist a partition index to any BlobStore backend
//     (local, memory, S3, MinIO) with optional zstd or LZ4 compression
package seqmin
