package orchestrator

import (
	"errors"
	"fmt"
)

// Kind classifies orchestrator failures so callers (HTTP handlers, lambda
// entrypoints) can map them without string matching.
type Kind int

const (
	// KindSystem covers storage faults and anything else unclassified.
	KindSystem Kind = iota

	// KindValidation covers payment instructions that break a business rule.
	KindValidation

	// KindNotFound covers lookups for entities that do not exist.
	KindNotFound

	// KindInvalidState covers operations rejected by a state machine, a
	// concurrent writer, or a closed settlement window.
	KindInvalidState

	// KindEmptyBatch covers attempts to process a batch with no transactions.
	KindEmptyBatch

	// KindExternalSystem covers failures at the settlement gateway boundary.
	KindExternalSystem
)

// Error wraps an underlying failure with its classification. Op names the
// orchestrator operation that failed.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// E builds a classified error.
func E(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Ef builds a classified error from a format string.
func Ef(kind Kind, op string, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// KindOf extracts the classification from an error chain, defaulting to
// KindSystem for anything unclassified.
func KindOf(err error) Kind {
	var oerr *Error
	if errors.As(err, &oerr) {
		return oerr.Kind
	}
	return KindSystem
}
