package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/chronoworks/timesheet-backend-go/internal/domain/calendar"
	"github.com/chronoworks/timesheet-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type calendarRepository struct {
	db *database.DB
}

func NewCalendarRepository(db *database.DB) calendar.CalendarRepository {
	return &calendarRepository{db: db}
}

// ResolveDay implements calendar.CalendarRepository.
func (c *calendarRepository) ResolveDay(ctx context.Context, personID string, date time.Time) (calendar.DayResolution, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT p.id, d.id, d.date, d.type, p.contracted_daily_hours
		FROM period_days d
		JOIN periods p ON p.id = d.period_id
		WHERE p.person_id = $1
		  AND d.date = $2
		LIMIT 1
	`

	var res calendar.DayResolution
	err := q.QueryRow(ctx, query, personID, date).Scan(
		&res.PeriodID, &res.DayID, &res.Date, &res.DayType, &res.ContractedDailyHours,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return calendar.DayResolution{}, calendar.ErrDayNotFound
		}
		return calendar.DayResolution{}, fmt.Errorf("failed to resolve day: %w", err)
	}

	return res, nil
}

// GetPeriod implements calendar.CalendarRepository.
func (c *calendarRepository) GetPeriod(ctx context.Context, periodID string) (calendar.Period, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT id, person_id, start_date, end_date, business_days, contracted_daily_hours, created_at
		FROM periods
		WHERE id = $1
	`

	var p calendar.Period
	err := q.QueryRow(ctx, query, periodID).Scan(
		&p.ID, &p.PersonID, &p.StartDate, &p.EndDate,
		&p.BusinessDays, &p.ContractedDailyHours, &p.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return calendar.Period{}, calendar.ErrPeriodNotFound
		}
		return calendar.Period{}, fmt.Errorf("failed to get period: %w", err)
	}

	return p, nil
}

// GetPeriodForPerson implements calendar.CalendarRepository.
func (c *calendarRepository) GetPeriodForPerson(ctx context.Context, periodID string, personID string) (calendar.Period, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT id, person_id, start_date, end_date, business_days, contracted_daily_hours, created_at
		FROM periods
		WHERE id = $1
		  AND person_id = $2
	`

	var p calendar.Period
	err := q.QueryRow(ctx, query, periodID, personID).Scan(
		&p.ID, &p.PersonID, &p.StartDate, &p.EndDate,
		&p.BusinessDays, &p.ContractedDailyHours, &p.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return calendar.Period{}, calendar.ErrPeriodNotFound
		}
		return calendar.Period{}, fmt.Errorf("failed to get period: %w", err)
	}

	return p, nil
}

// ListPeriodsByPerson implements calendar.CalendarRepository.
func (c *calendarRepository) ListPeriodsByPerson(ctx context.Context, personID string) ([]calendar.Period, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT id, person_id, start_date, end_date, business_days, contracted_daily_hours, created_at
		FROM periods
		WHERE person_id = $1
		ORDER BY start_date DESC
	`

	rows, err := q.Query(ctx, query, personID)
	if err != nil {
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	defer rows.Close()

	return scanPeriods(rows)
}

// ListDays implements calendar.CalendarRepository.
func (c *calendarRepository) ListDays(ctx context.Context, periodID string) ([]calendar.Day, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT id, period_id, date, type
		FROM period_days
		WHERE period_id = $1
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to list days: %w", err)
	}
	defer rows.Close()

	var days []calendar.Day
	for rows.Next() {
		var d calendar.Day
		if err := rows.Scan(&d.ID, &d.PeriodID, &d.Date, &d.Type); err != nil {
			return nil, fmt.Errorf("failed to scan day: %w", err)
		}
		days = append(days, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate days: %w", err)
	}

	return days, nil
}

// CountBusinessDays implements calendar.CalendarRepository.
func (c *calendarRepository) CountBusinessDays(ctx context.Context, periodID string) (int, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT COUNT(*)
		FROM period_days
		WHERE period_id = $1
		  AND type = 'business'
	`

	var count int
	if err := q.QueryRow(ctx, query, periodID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count business days: %w", err)
	}

	return count, nil
}

// FindPeriodInRange implements calendar.CalendarRepository.
func (c *calendarRepository) FindPeriodInRange(ctx context.Context, personID string, start, end time.Time) (calendar.Period, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT id, person_id, start_date, end_date, business_days, contracted_daily_hours, created_at
		FROM periods
		WHERE person_id = $1
		  AND start_date >= $2
		  AND end_date <= $3
		ORDER BY start_date ASC
		LIMIT 1
	`

	var p calendar.Period
	err := q.QueryRow(ctx, query, personID, start, end).Scan(
		&p.ID, &p.PersonID, &p.StartDate, &p.EndDate,
		&p.BusinessDays, &p.ContractedDailyHours, &p.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return calendar.Period{}, calendar.ErrPeriodNotFound
		}
		return calendar.Period{}, fmt.Errorf("failed to find period in range: %w", err)
	}

	return p, nil
}

// ListPeriodsInRange implements calendar.CalendarRepository.
func (c *calendarRepository) ListPeriodsInRange(ctx context.Context, start, end time.Time) ([]calendar.Period, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT id, person_id, start_date, end_date, business_days, contracted_daily_hours, created_at
		FROM periods
		WHERE start_date >= $1
		  AND end_date <= $2
		ORDER BY person_id, start_date ASC
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list periods in range: %w", err)
	}
	defer rows.Close()

	return scanPeriods(rows)
}

func scanPeriods(rows pgx.Rows) ([]calendar.Period, error) {
	var periods []calendar.Period
	for rows.Next() {
		var p calendar.Period
		if err := rows.Scan(
			&p.ID, &p.PersonID, &p.StartDate, &p.EndDate,
			&p.BusinessDays, &p.ContractedDailyHours, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan period: %w", err)
		}
		periods = append(periods, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate periods: %w", err)
	}

	return periods, nil
}
