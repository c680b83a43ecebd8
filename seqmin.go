package seqmin

import (
	"context"
	"errors"
	"iter"
	"time"

	"github.com/hupe1980/seqmin/alphabet"
	"github.com/hupe1980/seqmin/blobstore"
	"github.com/hupe1980/seqmin/minimizer"
	"github.com/hupe1980/seqmin/partition"
	"github.com/hupe1980/seqmin/resource"
	"github.com/hupe1980/seqmin/sequence"

	"golang.org/x/sync/errgroup"
)

// Hit is one window's scan result. See minimizer.Hit.
type Hit = minimizer.Hit

// minChunkWindows is the smallest window range worth handing to its own
// worker. Below this the merge overhead dominates.
const minChunkWindows = 4096

// ctxCheckInterval is how many windows a worker processes between
// cancellation checks.
const ctxCheckInterval = 8192

// Engine selects minimizers and bins sequences into partitions. Build one
// with the fluent builder, e.g. seqmin.DNA().K(10).L(4).Build().
//
// An Engine is immutable and safe for concurrent use.
type Engine struct {
	core        *minimizer.Engine
	workers     int
	skipInvalid bool
	logger      *Logger
	metrics     MetricsCollector
	ctrl        *resource.Controller
}

// K returns the configured window length.
func (e *Engine) K() int { return e.core.K() }

// L returns the configured minimizer length.
func (e *Engine) L() int { return e.core.L() }

// Alphabet returns the configured alphabet.
func (e *Engine) Alphabet() *alphabet.Alphabet { return e.core.Alphabet() }

// KeyCount returns |Σ|^l, the number of distinct partition keys.
func (e *Engine) KeyCount() uint64 { return e.core.KeyCount() }

// Config returns the engine parameters as a partition config, used to tag
// indexes and snapshots.
func (e *Engine) Config() partition.Config {
	return partition.Config{
		K:        e.core.K(),
		L:        e.core.L(),
		Alphabet: e.core.Alphabet().Symbols(),
	}
}

// MinimizerOf returns the offset and content of the minimal l-length
// substring of window, which must be exactly K symbols. Ties resolve to the
// leftmost candidate.
func (e *Engine) MinimizerOf(window []byte) (int, []byte, error) {
	off, mer, err := e.core.MinimizerOf(window)
	return off, mer, translateError(err)
}

// PartitionKey encodes an l-length substring as its base-|Σ| integer key.
// The encoding is a bijection: DecodeKey inverts it.
func (e *Engine) PartitionKey(mer []byte) (uint64, error) {
	key, err := e.core.PartitionKey(mer)
	return key, translateError(err)
}

// DecodeKey returns the l-length substring a partition key encodes.
func (e *Engine) DecodeKey(key uint64) ([]byte, error) {
	mer, err := e.core.DecodeKey(key)
	return mer, translateError(err)
}

// Scan returns an iterator over every window of seq in offset order.
//
// When the engine was built with SkipInvalid, windows containing symbols
// outside the alphabet are dropped instead of yielded as errors.
func (e *Engine) Scan(seq sequence.Sequence) iter.Seq2[Hit, error] {
	return func(yield func(Hit, error) bool) {
		for hit, err := range e.core.Scan(seq) {
			if err != nil && e.skipInvalid && isSymbolError(err) {
				continue
			}
			if !yield(hit, translateError(err)) {
				return
			}
		}
	}
}

// ScanBytes is shorthand for Scan over an in-memory byte slice.
func (e *Engine) ScanBytes(data []byte) iter.Seq2[Hit, error] {
	return e.Scan(sequence.Bytes(data))
}

// Bin scans every window of seq and collects the window offsets into a
// partition index keyed by minimizer. With Workers(n) > 1 the sequence is
// split into overlapping ranges scanned concurrently; the result is
// identical to a sequential scan.
//
// Without SkipInvalid, the first window containing an out-of-alphabet
// symbol fails the whole operation.
func (e *Engine) Bin(ctx context.Context, seq sequence.Sequence) (*partition.Index, error) {
	start := time.Now()

	idx, windows, err := e.bin(ctx, seq)

	e.metrics.RecordBin(windows, time.Since(start), err)
	keys := 0
	if idx != nil {
		keys = idx.Len()
	}
	e.logger.LogBin(ctx, windows, keys, err)

	return idx, err
}

// BinBytes is shorthand for Bin over an in-memory byte slice.
func (e *Engine) BinBytes(ctx context.Context, data []byte) (*partition.Index, error) {
	return e.Bin(ctx, sequence.Bytes(data))
}

func (e *Engine) bin(ctx context.Context, seq sequence.Sequence) (*partition.Index, int, error) {
	n := seq.Len()
	if n < e.core.K() {
		return nil, 0, translateError(&minimizer.ErrSequenceTooShort{Length: n, Window: e.core.K()})
	}
	windows := n - e.core.K() + 1

	chunks := e.chunkRanges(windows)
	if len(chunks) == 1 {
		if err := e.ctrl.AcquireScan(ctx); err != nil {
			return nil, windows, err
		}
		defer e.ctrl.ReleaseScan()

		idx, err := e.binRange(ctx, seq, 0, windows)
		return idx, windows, err
	}

	parts := make([]*partition.Index, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	for i, c := range chunks {
		g.Go(func() error {
			if err := e.ctrl.AcquireScan(gctx); err != nil {
				return err
			}
			defer e.ctrl.ReleaseScan()

			p, err := e.binRange(gctx, seq, c.start, c.end)
			if err != nil {
				return err
			}
			parts[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, windows, err
	}

	out := partition.NewIndex(e.Config())
	for _, p := range parts {
		if err := out.Merge(p); err != nil {
			return nil, windows, err
		}
	}
	return out, windows, nil
}

type chunk struct {
	start, end int // window offsets, half-open
}

// chunkRanges splits the window offset space across the configured workers.
// Small inputs collapse to a single chunk.
func (e *Engine) chunkRanges(windows int) []chunk {
	workers := e.workers
	if limit := windows / minChunkWindows; workers > limit {
		workers = limit
	}
	if workers <= 1 {
		return []chunk{{start: 0, end: windows}}
	}

	chunks := make([]chunk, 0, workers)
	per := windows / workers
	for i := 0; i < workers; i++ {
		c := chunk{start: i * per, end: (i + 1) * per}
		if i == workers-1 {
			c.end = windows
		}
		chunks = append(chunks, c)
	}
	return chunks
}

// binRange scans the windows [start, end) of seq into a fresh index. The
// view handed to the core scanner overlaps the next range by k-1 symbols so
// every window stays intact.
func (e *Engine) binRange(ctx context.Context, seq sequence.Sequence, start, end int) (*partition.Index, error) {
	sub := sequence.Sub(seq, start, end-start+e.core.K()-1)
	idx := partition.NewIndex(e.Config())

	processed := 0
	for hit, err := range e.core.Scan(sub) {
		if err != nil {
			if e.skipInvalid && isSymbolError(err) {
				continue
			}
			return nil, translateError(err)
		}
		idx.Add(hit.Key, uint64(hit.WindowOffset+start))

		processed++
		if processed%ctxCheckInterval == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}
	}
	return idx, nil
}

func isSymbolError(err error) bool {
	var sna *minimizer.ErrSymbolNotInAlphabet
	return errors.As(err, &sna)
}

// SaveIndex writes idx as a compressed snapshot to the store. The index
// must carry this engine's configuration.
func (e *Engine) SaveIndex(ctx context.Context, store blobstore.BlobStore, name string, idx *partition.Index, codec partition.Codec) error {
	start := time.Now()

	err := e.saveIndex(ctx, store, name, idx, codec)

	e.metrics.RecordSnapshotSave(time.Since(start), err)
	e.logger.LogSnapshotSave(ctx, name, err)
	return err
}

func (e *Engine) saveIndex(ctx context.Context, store blobstore.BlobStore, name string, idx *partition.Index, codec partition.Codec) error {
	if cfg := idx.Config(); !cfg.Equal(e.Config()) {
		return &partition.ErrConfigMismatch{Expected: e.Config(), Actual: cfg}
	}
	return partition.Save(ctx, store, name, idx, codec)
}

// LoadIndex reads a snapshot from the store and verifies it was built with
// this engine's k, l and alphabet.
func (e *Engine) LoadIndex(ctx context.Context, store blobstore.BlobStore, name string) (*partition.Index, error) {
	start := time.Now()

	idx, err := e.loadIndex(ctx, store, name)

	e.metrics.RecordSnapshotLoad(time.Since(start), err)
	e.logger.LogSnapshotLoad(ctx, name, err)
	return idx, err
}

func (e *Engine) loadIndex(ctx context.Context, store blobstore.BlobStore, name string) (*partition.Index, error) {
	idx, err := partition.Load(ctx, store, name)
	if err != nil {
		return nil, translateError(err)
	}
	if cfg := idx.Config(); !cfg.Equal(e.Config()) {
		return nil, &partition.ErrConfigMismatch{Expected: e.Config(), Actual: cfg}
	}
	return idx, nil
}
