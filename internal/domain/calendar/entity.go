package calendar

import (
	"time"

	"github.com/shopspring/decimal"
)

// DayType classifies a calendar day. Only Business days accrue toward the
// contracted monthly quota.
type DayType string

const (
	DayBusiness   DayType = "business"
	DayWeekend    DayType = "weekend"
	DayHoliday    DayType = "holiday"
	DayVacation   DayType = "vacation"
	DayNonWorking DayType = "non_working"
)

// IsBusiness reports whether the day counts toward the contracted quota.
func (t DayType) IsBusiness() bool {
	return t == DayBusiness
}

// Period is one payroll cycle of a person's contract. Created by an external
// calendar-generation process; immutable once entries reference it.
type Period struct {
	ID                   string
	PersonID             string
	StartDate            time.Time
	EndDate              time.Time
	BusinessDays         int
	ContractedDailyHours decimal.Decimal
	CreatedAt            time.Time
}

// ContractedHours is the period quota: daily hours times business days.
func (p Period) ContractedHours() decimal.Decimal {
	return p.ContractedDailyHours.Mul(decimal.NewFromInt(int64(p.BusinessDays)))
}

// Day is one calendar date inside a Period.
type Day struct {
	ID       string
	PeriodID string
	Date     time.Time
	Type     DayType
}

// DayResolution is the quota context for one person+date: the enclosing
// period, the day record, and the contracted daily-hour limit.
type DayResolution struct {
	PeriodID             string
	DayID                string
	Date                 time.Time
	DayType              DayType
	ContractedDailyHours decimal.Decimal
}
