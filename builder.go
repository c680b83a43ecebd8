// Package seqmin provides a minimizer engine for partitioning sequences.
//
// This file implements the fluent builder API for creating and configuring
// engines. Builders are immutable - each method returns a new builder with
// the updated configuration.
package seqmin

import (
	"github.com/hupe1980/seqmin/alphabet"
	"github.com/hupe1980/seqmin/minimizer"
	"github.com/hupe1980/seqmin/resource"
)

// DNA creates a builder preconfigured with the DNA alphabet (A < C < G < T).
//
// The builder is immutable - each method returns a new builder with the
// updated configuration. This ensures thread-safety and prevents accidental
// state sharing.
//
// Example:
//
//	engine, err := seqmin.DNA().
//	    K(10).
//	    L(4).
//	    Workers(8).
//	    Build()
func DNA() Builder {
	return Builder{alpha: alphabet.DNA()}
}

// RNA creates a builder preconfigured with the RNA alphabet (A < C < G < U).
func RNA() Builder {
	return Builder{alpha: alphabet.RNA()}
}

// Protein creates a builder preconfigured with the 20 standard amino acids
// in alphabetical order.
func Protein() Builder {
	return Builder{alpha: alphabet.Protein()}
}

// Custom creates a builder for an arbitrary alphabet. The alphabet's symbol
// order defines which substrings compare small, and thereby the skew of the
// resulting partition keys.
func Custom(alpha *alphabet.Alphabet) Builder {
	return Builder{alpha: alpha}
}

// Builder is an immutable fluent builder for creating minimizer engines.
// Each method returns a new builder with the updated configuration.
type Builder struct {
	alpha       *alphabet.Alphabet
	k           int
	l           int
	workers     int
	skipInvalid bool
	logger      *Logger
	metrics     MetricsCollector
	ctrl        *resource.Controller
}

// K sets the window length. Every K-length window of a scanned sequence
// yields one partition key. Required.
func (b Builder) K(k int) Builder {
	b.k = k
	return b
}

// L sets the minimizer length, 1 <= L <= K. Shorter minimizers give fewer,
// larger partitions. Required.
func (b Builder) L(l int) Builder {
	b.l = l
	return b
}

// CaseFolding makes the engine treat upper- and lowercase input symbols as
// equal. Keys are computed over the folded alphabet.
func (b Builder) CaseFolding() Builder {
	if b.alpha != nil {
		b.alpha = b.alpha.WithCaseFolding()
	}
	return b
}

// Workers sets the number of concurrent scan workers used by Bin.
// Default: 1 (sequential). Results are identical regardless of the worker
// count; only throughput changes.
func (b Builder) Workers(n int) Builder {
	b.workers = n
	return b
}

// SkipInvalid makes Scan and Bin silently drop windows that contain a
// symbol outside the alphabet instead of reporting them. Common for DNA
// inputs with ambiguity codes such as N.
func (b Builder) SkipInvalid() Builder {
	b.skipInvalid = true
	return b
}

// Logger sets the structured logger for operation tracing.
func (b Builder) Logger(l *Logger) Builder {
	b.logger = l
	return b
}

// Metrics sets the metrics collector for monitoring.
func (b Builder) Metrics(mc MetricsCollector) Builder {
	b.metrics = mc
	return b
}

// Controller sets the resource controller bounding concurrent scans,
// memory and blob-read bandwidth.
func (b Builder) Controller(c *resource.Controller) Builder {
	b.ctrl = c
	return b
}

// Build creates the engine. It fails with ErrInvalidConfig when k or l are
// out of range, the alphabet is missing, or |Σ|^l does not fit a uint64
// partition key.
func (b Builder) Build() (*Engine, error) {
	core, err := minimizer.New(b.alpha, b.k, b.l)
	if err != nil {
		return nil, translateError(err)
	}

	workers := b.workers
	if workers < 1 {
		workers = 1
	}
	logger := b.logger
	if logger == nil {
		logger = NoopLogger()
	}
	metrics := b.metrics
	if metrics == nil {
		metrics = NoopMetricsCollector{}
	}

	return &Engine{
		core:        core,
		workers:     workers,
		skipInvalid: b.skipInvalid,
		logger:      logger.WithK(b.k).WithL(b.l),
		metrics:     metrics,
		ctrl:        b.ctrl,
	}, nil
}
