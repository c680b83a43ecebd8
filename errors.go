package seqmin

import (
	"errors"
	"fmt"

	"github.com/hupe1980/seqmin/alphabet"
	"github.com/hupe1980/seqmin/blobstore"
	"github.com/hupe1980/seqmin/minimizer"
)

var (
	// ErrInvalidConfig is returned when an engine cannot be built from the
	// requested parameters.
	ErrInvalidConfig = errors.New("invalid engine configuration")

	// ErrInvalidInput is returned when a window or sequence cannot be
	// processed with the engine's configuration.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound is returned when a named snapshot does not exist in the
	// backing store.
	ErrNotFound = errors.New("not found")
)

// translateError maps errors from the inner packages onto the package
// sentinels so callers can branch with errors.Is. The original error stays
// reachable via errors.Unwrap / errors.As.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Construction-time configuration problems.
	var (
		ik *minimizer.ErrInvalidK
		il *minimizer.ErrInvalidL
		ko *minimizer.ErrKeyOverflow
		ds *alphabet.ErrDuplicateSymbol
	)
	switch {
	case errors.As(err, &ik),
		errors.As(err, &il),
		errors.As(err, &ko),
		errors.As(err, &ds),
		errors.Is(err, minimizer.ErrNoAlphabet),
		errors.Is(err, alphabet.ErrEmpty):
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	// Per-call input problems.
	var (
		sna *minimizer.ErrSymbolNotInAlphabet
		lm  *minimizer.ErrLengthMismatch
		st  *minimizer.ErrSequenceTooShort
		kr  *minimizer.ErrKeyRange
	)
	switch {
	case errors.As(err, &sna),
		errors.As(err, &lm),
		errors.As(err, &st),
		errors.As(err, &kr):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if errors.Is(err, blobstore.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	return err
}
