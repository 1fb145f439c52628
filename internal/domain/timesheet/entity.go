package timesheet

import (
	"time"

	"github.com/shopspring/decimal"
)

// HourBuckets are the five canonical hour buckets of a time entry.
// OvertimeBanked is signed: positive is a credit (extra hours banked instead
// of paid), negative is a debit (absence covered by the bank).
type HourBuckets struct {
	Normal         decimal.Decimal
	OvertimePaid   decimal.Decimal
	OvertimeBanked decimal.Decimal
	AbsencePaid    decimal.Decimal
	AbsenceUnpaid  decimal.Decimal
}

// Total is the hour load of the buckets: every bucket counted by magnitude.
func (b HourBuckets) Total() decimal.Decimal {
	return b.Normal.
		Add(b.OvertimePaid).
		Add(b.OvertimeBanked.Abs()).
		Add(b.AbsencePaid).
		Add(b.AbsenceUnpaid)
}

// IsZero reports whether every bucket is zero. Aggregations skip such rows.
func (b HourBuckets) IsZero() bool {
	return b.Normal.IsZero() &&
		b.OvertimePaid.IsZero() &&
		b.OvertimeBanked.IsZero() &&
		b.AbsencePaid.IsZero() &&
		b.AbsenceUnpaid.IsZero()
}

// TimeEntry is a record of hours a person logged against a project on one
// calendar day. Closed and Billed entries are immutable except for status.
type TimeEntry struct {
	ID              string
	PersonID        string
	PeriodID        string
	DayID           string
	ProjectID       string
	Buckets         HourBuckets
	Status          Status
	Justification   string
	RejectionReason *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// DTO / joins
	Date        time.Time
	ProjectName *string
	PersonName  *string
}

// Mutable reports whether the entry's fields may still be edited or the
// entry deleted. Only Draft and Rejected entries are open for change.
func (e TimeEntry) Mutable() bool {
	return e.Status == StatusDraft || e.Status == StatusRejected
}

// DayAggregate sums a person's non-rejected buckets for one day. Feeds the
// classifier's "day so far" view.
type DayAggregate struct {
	UsedNormal decimal.Decimal
	Total      decimal.Decimal
}

// PeriodAggregate sums a person's buckets over a whole period.
type PeriodAggregate struct {
	Normal         decimal.Decimal
	OvertimePaid   decimal.Decimal
	OvertimeBanked decimal.Decimal
	AbsencePaid    decimal.Decimal
	AbsenceUnpaid  decimal.Decimal
	EntryCount     int
}

// Logged is the sum of worked and excused hours, bank movements excluded.
// Matches what the period summary reports as "realized".
func (a PeriodAggregate) Logged() decimal.Decimal {
	return a.Normal.Add(a.OvertimePaid).Add(a.AbsencePaid).Add(a.AbsenceUnpaid)
}
