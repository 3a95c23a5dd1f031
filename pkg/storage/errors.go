package storage

import "errors"

// ErrTransactionNotFound is returned when a transaction id or reference does not resolve.
var ErrTransactionNotFound = errors.New("transaction not found")

// ErrBatchNotFound is returned when a batch id or batch number does not resolve.
var ErrBatchNotFound = errors.New("batch not found")

// ErrStatusConflict is returned when a conditional write loses: the stored
// status (or batch version) no longer matches the expected prior value.
// The write is rejected, never silently overwritten.
var ErrStatusConflict = errors.New("stored status changed since it was read")

// ErrInvalidTransition is returned when the requested from/to pair is not an
// edge of the state machine. The write is refused before it reaches storage.
var ErrInvalidTransition = errors.New("state machine does not allow this transition")

// ErrTransactionNotCancellable is returned when a transaction is already in a terminal state.
var ErrTransactionNotCancellable = errors.New("transaction not in a cancellable state")

// ErrBatchNotOpen is returned when enrolling into a batch that has left CREATED.
var ErrBatchNotOpen = errors.New("batch is no longer accepting transactions")

// ErrTransactionNotEnrollable is returned when the transaction's status CAS
// fails during enrollment, e.g. it was already pulled into another batch.
var ErrTransactionNotEnrollable = errors.New("transaction not in an enrollable state")
