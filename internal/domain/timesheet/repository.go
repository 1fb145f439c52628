package timesheet

import (
	"context"
	"time"
)

// TimeEntryRepository owns time-entry persistence. Aggregation queries skip
// rows whose hour buckets are all zero.
type TimeEntryRepository interface {
	// LockDay serializes concurrent writes for one person+day. Must be
	// called inside a transaction; the lock lasts until it ends.
	LockDay(ctx context.Context, personID, dayID string) error

	// Create inserts a new entry
	Create(ctx context.Context, entry TimeEntry) (TimeEntry, error)

	// GetByID retrieves an entry
	GetByID(ctx context.Context, id string) (TimeEntry, error)

	// Update rewrites an entry's buckets, justification and rejection reason
	Update(ctx context.Context, entry TimeEntry) error

	// Delete removes an entry permanently
	Delete(ctx context.Context, id string) error

	// ListByPersonAndDay lists a person's non-empty entries for one day
	ListByPersonAndDay(ctx context.Context, personID, dayID string) ([]TimeEntry, error)

	// ListByPersonAndPeriod lists a person's non-empty entries for one period
	ListByPersonAndPeriod(ctx context.Context, personID, periodID string) ([]TimeEntry, error)

	// ListForApproval lists non-empty entries for a project and date range,
	// optionally narrowed to one person
	ListForApproval(ctx context.Context, projectID string, personID string, from, to time.Time) ([]TimeEntry, error)

	// ListByStatuses lists a person's entries in any of the given statuses,
	// scoped to a day or a whole period (empty dayID means whole period)
	ListByStatuses(ctx context.Context, personID, periodID, dayID string, statuses []Status) ([]TimeEntry, error)

	// UpdateStatusBatch moves a set of entries to one status. A non-nil
	// reason is stored; a nil reason clears any previous one.
	UpdateStatusBatch(ctx context.Context, ids []string, status Status, reason *string) error

	// AggregateDay sums a person's non-rejected buckets for one day. A
	// non-empty excludeEntryID leaves that entry out, for re-validation of
	// updates.
	AggregateDay(ctx context.Context, personID, dayID string, excludeEntryID string) (DayAggregate, error)

	// AggregatePeriod sums a person's non-rejected buckets for one period
	AggregatePeriod(ctx context.Context, personID, periodID string) (PeriodAggregate, error)

	// HasLockedSibling reports whether any entry for person+day has moved
	// beyond Draft/Rejected
	HasLockedSibling(ctx context.Context, personID, dayID string) (bool, error)

	// CountByPeriodAndStatus counts non-empty entries per status for a period
	CountByPeriodAndStatus(ctx context.Context, periodID string) (map[Status]int, error)
}
