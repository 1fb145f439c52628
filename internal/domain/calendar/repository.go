package calendar

import (
	"context"
	"time"
)

// CalendarRepository reads the externally provisioned period calendar.
// Periods and days are immutable to this service.
type CalendarRepository interface {
	// ResolveDay finds the day and its enclosing period for a person+date
	ResolveDay(ctx context.Context, personID string, date time.Time) (DayResolution, error)

	// GetPeriod retrieves a period by id
	GetPeriod(ctx context.Context, periodID string) (Period, error)

	// GetPeriodForPerson retrieves a period and verifies ownership
	GetPeriodForPerson(ctx context.Context, periodID string, personID string) (Period, error)

	// ListPeriodsByPerson lists a person's periods, newest first
	ListPeriodsByPerson(ctx context.Context, personID string) ([]Period, error)

	// ListDays lists every day of a period in date order
	ListDays(ctx context.Context, periodID string) ([]Day, error)

	// CountBusinessDays counts the business days of a period
	CountBusinessDays(ctx context.Context, periodID string) (int, error)

	// FindPeriodInRange finds a person's period fully contained in [start, end]
	FindPeriodInRange(ctx context.Context, personID string, start, end time.Time) (Period, error)

	// ListPeriodsInRange lists every period contained in [start, end], any person
	ListPeriodsInRange(ctx context.Context, start, end time.Time) ([]Period, error)
}
