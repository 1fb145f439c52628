package bank

import (
	"context"

	"github.com/chronoworks/timesheet-backend-go/internal/domain/timesheet"
)

// LedgerService materializes bank movements at closure and serves the
// derived balance.
type LedgerService interface {
	// Materialize mirrors the entry's banked delta into the ledger. Returns
	// (nil, nil) when the entry has no banked hours. Idempotent: a second
	// call for the same entry returns the existing row.
	Materialize(ctx context.Context, entry timesheet.TimeEntry) (*LedgerEntry, error)

	// Balance computes the acting person's running bank balance
	Balance(ctx context.Context) (BalanceResponse, error)

	// Statement lists the acting person's ledger rows with the balance
	Statement(ctx context.Context) (StatementResponse, error)
}

type BalanceResponse struct {
	PersonID string  `json:"person_id"`
	Balance  float64 `json:"balance"`
}

type StatementRow struct {
	ID          string  `json:"id"`
	TimeEntryID string  `json:"time_entry_id"`
	Type        string  `json:"type"`
	Hours       float64 `json:"hours"`
	WorkDate    string  `json:"work_date"`
}

type StatementResponse struct {
	PersonID string         `json:"person_id"`
	Balance  float64        `json:"balance"`
	Rows     []StatementRow `json:"rows"`
}
