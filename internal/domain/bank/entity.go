package bank

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType tags a ledger row: Credit for banked extra hours, Debit for
// absence covered by the bank.
type EntryType string

const (
	TypeCredit EntryType = "credit"
	TypeDebit  EntryType = "debit"
)

// LedgerEntry mirrors the banked-hour delta of one closed time entry.
// Immutable once created; exactly one ledger row may exist per time entry.
type LedgerEntry struct {
	ID          string
	TimeEntryID string
	PersonID    string
	Type        EntryType
	Hours       decimal.Decimal // magnitude, always positive
	WorkDate    time.Time
	CreatedAt   time.Time
}

// Signed returns the ledger row's contribution to the running balance.
func (e LedgerEntry) Signed() decimal.Decimal {
	if e.Type == TypeDebit {
		return e.Hours.Neg()
	}
	return e.Hours
}
