package bank

import (
	"errors"
	"fmt"
)

var ErrLedgerEntryNotFound = errors.New("bank ledger entry not found")

// LedgerInconsistencyError aborts a whole closure batch: materialization
// failed for at least one entry, so no entry in the batch changed status.
// The first failing entry is attached for diagnosis.
type LedgerInconsistencyError struct {
	TimeEntryID string
	Err         error
}

func (e *LedgerInconsistencyError) Error() string {
	return fmt.Sprintf("closure aborted: ledger materialization failed for entry %s: %v", e.TimeEntryID, e.Err)
}

func (e *LedgerInconsistencyError) Unwrap() error { return e.Err }
