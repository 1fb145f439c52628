package timesheet

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Timesheet domain errors
var (
	ErrEntryNotFound = errors.New("time entry not found")

	// Classification verdicts
	ErrInvalidGranularity   = errors.New("hours must be logged in 0.5h steps")
	ErrNormalQuotaExceeded  = errors.New("normal hours exceed the contracted daily limit")
	ErrNormalIncomplete     = errors.New("overtime cannot be logged before the normal-hour quota is filled")
	ErrDailyCeilingExceeded = errors.New("total hours for one day cannot exceed 24")

	// Workflow errors
	ErrDayLocked         = errors.New("day is locked: a sibling entry has already been submitted")
	ErrEntryImmutable    = errors.New("closed or billed entries cannot be modified")
	ErrWorkflowViolation = errors.New("status transition is not allowed from the current state")
	ErrNotEntryOwner     = errors.New("entry belongs to another person")
)

// QuotaExceededError carries the remaining normal-hour allowance so callers
// can tell the user how much may still be logged.
type QuotaExceededError struct {
	Remaining decimal.Decimal
	Limit     decimal.Decimal
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("normal hours exceed the contracted daily limit of %sh; remaining allowance: %sh",
		e.Limit.String(), e.Remaining.String())
}

func (e *QuotaExceededError) Unwrap() error { return ErrNormalQuotaExceeded }

// NormalIncompleteError carries the normal hours still missing before
// overtime of either destination may be logged.
type NormalIncompleteError struct {
	Missing decimal.Decimal
}

func (e *NormalIncompleteError) Error() string {
	return fmt.Sprintf("normal-hour quota still open: %sh pending before overtime may be logged", e.Missing.String())
}

func (e *NormalIncompleteError) Unwrap() error { return ErrNormalIncomplete }

// TransientError marks a data-store I/O failure. No partial state was
// committed, so the whole operation is safe to retry.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return "transient data store failure: " + e.Err.Error()
}

func (e *TransientError) Unwrap() error { return e.Err }
