package timesheet

import "context"

// TimeEntryService is the owner-facing side of the engine: quota lookup,
// entry CRUD and day/period submission.
type TimeEntryService interface {
	// GetDailyQuota resolves the acting person's quota context for a date
	GetDailyQuota(ctx context.Context, date string) (DayQuotaResponse, error)

	// SubmitEntry validates, classifies and persists a new Draft entry
	SubmitEntry(ctx context.Context, req CreateEntryRequest) (EntryResponse, error)

	// UpdateEntry reclassifies and rewrites a Draft/Rejected entry
	UpdateEntry(ctx context.Context, req UpdateEntryRequest) (EntryResponse, error)

	// ListDayEntries returns the acting person's entries for a date plus
	// the projects allocated to them on that date
	ListDayEntries(ctx context.Context, date string) (DayEntriesResponse, error)

	// DeleteEntry removes a Draft/Rejected entry on an unlocked day
	DeleteEntry(ctx context.Context, id string) error

	// SubmitDay moves the acting person's pending entries of one day to Submitted
	SubmitDay(ctx context.Context, date string) (BatchResult, error)

	// SubmitPeriod moves the acting person's pending entries of a period to Submitted
	SubmitPeriod(ctx context.Context, periodID string) (BatchResult, error)
}

// ApprovalService is the manager/HR/finance side: the state machine over
// sets of entries.
type ApprovalService interface {
	// Approve moves matching Draft/Submitted/Rejected entries to Approved
	Approve(ctx context.Context, filter ApprovalFilter) (BatchResult, error)

	// Reject moves matching entries to Rejected, storing the reason
	Reject(ctx context.Context, req RejectRequest) (BatchResult, error)

	// ClosePeriod closes a person's Approved entries in a date range,
	// materializing bank ledger rows atomically with the status change
	ClosePeriod(ctx context.Context, req ClosePeriodRequest) (BatchResult, error)

	// BillPeriod moves a person's Closed entries in a date range to Billed
	BillPeriod(ctx context.Context, req ClosePeriodRequest) (BatchResult, error)
}
