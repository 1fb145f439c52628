package person

import (
	"time"

	"github.com/shopspring/decimal"
)

// Person is externally provisioned and read-only to this service. The
// contracted daily hours come from the active contract; the bank balance is
// never stored here, it is derived from the ledger.
type Person struct {
	ID                   string
	Name                 string
	Email                string
	Position             *string
	ContractedDailyHours decimal.Decimal
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
