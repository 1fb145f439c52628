package calendar

import "context"

// CalendarService resolves quota context and renders period summaries.
type CalendarService interface {
	// ResolveDay resolves the acting person's period, day and contracted
	// daily-hour limit for a date. Missing calendar data is a hard stop.
	ResolveDay(ctx context.Context, date string) (DayResolution, error)

	// CountBusinessDays counts the business days of a period
	CountBusinessDays(ctx context.Context, periodID string) (int, error)

	// ListMyPeriods lists the acting person's periods, newest first
	ListMyPeriods(ctx context.Context) ([]PeriodResponse, error)

	// PeriodSummary renders the per-day grid and totals of one period
	PeriodSummary(ctx context.Context, periodID string) (PeriodSummaryResponse, error)

	// HRRoster lists every person's periods in a date range with their
	// approval rollup, for the HR closing screen
	HRRoster(ctx context.Context, from, to string) ([]RosterRow, error)
}
