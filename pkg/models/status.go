package models

// transactionTransitions encodes the allowed forward edges of the transaction
// state machine. CANCELLED is additionally reachable from every non-terminal state.
var transactionTransitions = map[TransactionStatus][]TransactionStatus{
	INITIATED:          {VALIDATED, PROCESSING},
	VALIDATED:          {PROCESSING},
	PROCESSING:         {PENDING_SETTLEMENT},
	PENDING_SETTLEMENT: {COMPLETED, FAILED, RETURNED},
}

// IsTerminal reports whether no further transitions are allowed from s.
func (s TransactionStatus) IsTerminal() bool {
	switch s {
	case COMPLETED, FAILED, RETURNED, CANCELLED:
		return true
	}
	return false
}

// CanTransitionTo reports whether the transaction state machine permits
// moving from s to next.
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	if next == CANCELLED {
		return !s.IsTerminal()
	}
	for _, allowed := range transactionTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the batch has left the pipeline. SENT is the
// terminal success state; downstream reconciliation updates transactions only.
func (s BatchStatus) IsTerminal() bool {
	return s == BatchSent || s == BatchFailed
}

// CanTransitionTo reports whether the batch state machine permits moving
// from s to next.
func (s BatchStatus) CanTransitionTo(next BatchStatus) bool {
	switch s {
	case BatchCreated:
		return next == BatchProcessing
	case BatchProcessing:
		return next == BatchSent || next == BatchFailed
	}
	return false
}
