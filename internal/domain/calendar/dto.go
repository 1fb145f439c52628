package calendar

// PeriodStatus is the rollup of one period's entry statuses, shown on the
// timesheet calendar header.
type PeriodStatus string

const (
	PeriodOpen             PeriodStatus = "open"
	PeriodNew              PeriodStatus = "new"
	PeriodAwaitingApproval PeriodStatus = "awaiting_approval"
	PeriodApproved         PeriodStatus = "approved"
	PeriodClosed           PeriodStatus = "closed"
	PeriodBilled           PeriodStatus = "billed"
)

type PeriodResponse struct {
	ID                   string  `json:"id"`
	StartDate            string  `json:"start_date"`
	EndDate              string  `json:"end_date"`
	BusinessDays         int     `json:"business_days"`
	ContractedDailyHours float64 `json:"contracted_daily_hours"`
	ContractedHours      float64 `json:"contracted_hours"`
}

// DayCell is one cell of the period grid: the day plus the aggregated load
// and the per-day approval rollup of its entries.
type DayCell struct {
	DayID          string  `json:"day_id"`
	Date           string  `json:"date"`
	Type           string  `json:"type"`
	TotalHours     float64 `json:"total_hours"`
	ApprovalStatus string  `json:"approval_status"`
	EntryCount     int     `json:"entry_count"`
}

// RosterRow is one person+period line of the HR closing screen.
type RosterRow struct {
	PersonID        string       `json:"person_id"`
	PersonName      string       `json:"person_name"`
	PeriodID        string       `json:"period_id"`
	StartDate       string       `json:"start_date"`
	EndDate         string       `json:"end_date"`
	ContractedHours float64      `json:"contracted_hours"`
	LoggedHours     float64      `json:"logged_hours"`
	BankDelta       float64      `json:"bank_delta"`
	PendingCount    int          `json:"pending_count"`
	ApprovedCount   int          `json:"approved_count"`
	ClosedCount     int          `json:"closed_count"`
	BilledCount     int          `json:"billed_count"`
	Closable        bool         `json:"closable"`
	Status          PeriodStatus `json:"status"`
}

type PeriodSummaryResponse struct {
	Period          PeriodResponse `json:"period"`
	Days            []DayCell      `json:"days"`
	ContractedHours float64        `json:"contracted_hours"`
	LoggedHours     float64        `json:"logged_hours"`
	BankDelta       float64        `json:"bank_delta"`
	BankBalance     float64        `json:"bank_balance"`
	Status          PeriodStatus   `json:"status"`
}
