package bank

import (
	"context"

	"github.com/shopspring/decimal"
)

// LedgerRepository owns the append-only compensatory-hour ledger. Rows are
// never updated; corrections happen by closing corrective time entries.
type LedgerRepository interface {
	// Create appends a ledger row
	Create(ctx context.Context, entry LedgerEntry) (LedgerEntry, error)

	// GetByTimeEntryID finds the row mirroring one time entry
	GetByTimeEntryID(ctx context.Context, timeEntryID string) (LedgerEntry, error)

	// ListByPerson lists a person's ledger rows, oldest first
	ListByPerson(ctx context.Context, personID string) ([]LedgerEntry, error)

	// SumByPerson computes the running balance as the signed sum of rows
	SumByPerson(ctx context.Context, personID string) (decimal.Decimal, error)
}
