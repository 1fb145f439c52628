package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/chronoworks/timesheet-backend-go/internal/domain/timesheet"
	"github.com/chronoworks/timesheet-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type timeEntryRepository struct {
	db *database.DB
}

func NewTimeEntryRepository(db *database.DB) timesheet.TimeEntryRepository {
	return &timeEntryRepository{db: db}
}

// entryColumns is the canonical select list; every scan uses the same order.
const entryColumns = `
	e.id, e.person_id, e.period_id, e.day_id, e.project_id,
	e.normal_hours, e.overtime_paid, e.overtime_banked, e.absence_paid, e.absence_unpaid,
	e.status, e.justification, e.rejection_reason,
	e.created_at, e.updated_at,
	d.date,
	pr.name AS project_name,
	pe.name AS person_name
`

const entryJoins = `
	FROM time_entries e
	JOIN period_days d ON d.id = e.day_id
	LEFT JOIN projects pr ON pr.id = e.project_id
	LEFT JOIN people pe ON pe.id = e.person_id
`

// nonEmpty filters out rows whose hour buckets are all zero.
const nonEmpty = `(e.normal_hours + e.overtime_paid + ABS(e.overtime_banked) + e.absence_paid + e.absence_unpaid) > 0`

func scanEntry(row pgx.Row) (timesheet.TimeEntry, error) {
	var e timesheet.TimeEntry
	err := row.Scan(
		&e.ID, &e.PersonID, &e.PeriodID, &e.DayID, &e.ProjectID,
		&e.Buckets.Normal, &e.Buckets.OvertimePaid, &e.Buckets.OvertimeBanked,
		&e.Buckets.AbsencePaid, &e.Buckets.AbsenceUnpaid,
		&e.Status, &e.Justification, &e.RejectionReason,
		&e.CreatedAt, &e.UpdatedAt,
		&e.Date,
		&e.ProjectName,
		&e.PersonName,
	)
	return e, err
}

func scanEntries(rows pgx.Rows) ([]timesheet.TimeEntry, error) {
	var entries []timesheet.TimeEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate time entries: %w", err)
	}

	return entries, nil
}

// LockDay implements timesheet.TimeEntryRepository. Takes a
// transaction-scoped advisory lock for one person+day, serializing the
// aggregate-then-write critical section of concurrent submissions; released
// automatically at commit or rollback.
func (t *timeEntryRepository) LockDay(ctx context.Context, personID, dayID string) error {
	q := GetQuerier(ctx, t.db)

	if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1 || ':' || $2))`, personID, dayID); err != nil {
		return fmt.Errorf("failed to acquire person-day lock: %w", err)
	}

	return nil
}

// Create implements timesheet.TimeEntryRepository.
func (t *timeEntryRepository) Create(ctx context.Context, entry timesheet.TimeEntry) (timesheet.TimeEntry, error) {
	q := GetQuerier(ctx, t.db)

	query := `
		INSERT INTO time_entries (
			person_id, period_id, day_id, project_id,
			normal_hours, overtime_paid, overtime_banked, absence_paid, absence_unpaid,
			status, justification
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		entry.PersonID,
		entry.PeriodID,
		entry.DayID,
		entry.ProjectID,
		entry.Buckets.Normal,
		entry.Buckets.OvertimePaid,
		entry.Buckets.OvertimeBanked,
		entry.Buckets.AbsencePaid,
		entry.Buckets.AbsenceUnpaid,
		entry.Status,
		entry.Justification,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)

	if err != nil {
		return timesheet.TimeEntry{}, fmt.Errorf("failed to create time entry: %w", err)
	}

	return entry, nil
}

// GetByID implements timesheet.TimeEntryRepository.
func (t *timeEntryRepository) GetByID(ctx context.Context, id string) (timesheet.TimeEntry, error) {
	q := GetQuerier(ctx, t.db)

	query := `SELECT ` + entryColumns + entryJoins + `WHERE e.id = $1`

	entry, err := scanEntry(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return timesheet.TimeEntry{}, timesheet.ErrEntryNotFound
		}
		return timesheet.TimeEntry{}, fmt.Errorf("failed to get time entry: %w", err)
	}

	return entry, nil
}

// Update implements timesheet.TimeEntryRepository.
func (t *timeEntryRepository) Update(ctx context.Context, entry timesheet.TimeEntry) error {
	q := GetQuerier(ctx, t.db)

	query := `
		UPDATE time_entries
		SET project_id = $2,
			normal_hours = $3,
			overtime_paid = $4,
			overtime_banked = $5,
			absence_paid = $6,
			absence_unpaid = $7,
			status = $8,
			justification = $9,
			rejection_reason = $10,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		entry.ID,
		entry.ProjectID,
		entry.Buckets.Normal,
		entry.Buckets.OvertimePaid,
		entry.Buckets.OvertimeBanked,
		entry.Buckets.AbsencePaid,
		entry.Buckets.AbsenceUnpaid,
		entry.Status,
		entry.Justification,
		entry.RejectionReason,
	)
	if err != nil {
		return fmt.Errorf("failed to update time entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timesheet.ErrEntryNotFound
	}

	return nil
}

// Delete implements timesheet.TimeEntryRepository.
func (t *timeEntryRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, t.db)

	tag, err := q.Exec(ctx, `DELETE FROM time_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete time entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timesheet.ErrEntryNotFound
	}

	return nil
}

// ListByPersonAndDay implements timesheet.TimeEntryRepository.
func (t *timeEntryRepository) ListByPersonAndDay(ctx context.Context, personID, dayID string) ([]timesheet.TimeEntry, error) {
	q := GetQuerier(ctx, t.db)

	query := `SELECT ` + entryColumns + entryJoins + `
		WHERE e.person_id = $1
		  AND e.day_id = $2
		  AND ` + nonEmpty + `
		ORDER BY e.created_at ASC
	`

	rows, err := q.Query(ctx, query, personID, dayID)
	if err != nil {
		return nil, fmt.Errorf("failed to list day entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// ListByPersonAndPeriod implements timesheet.TimeEntryRepository.
func (t *timeEntryRepository) ListByPersonAndPeriod(ctx context.Context, personID, periodID string) ([]timesheet.TimeEntry, error) {
	q := GetQuerier(ctx, t.db)

	query := `SELECT ` + entryColumns + entryJoins + `
		WHERE e.person_id = $1
		  AND e.period_id = $2
		  AND ` + nonEmpty + `
		ORDER BY d.date ASC, e.created_at ASC
	`

	rows, err := q.Query(ctx, query, personID, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to list period entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// ListForApproval implements timesheet.TimeEntryRepository.
func (t *timeEntryRepository) ListForApproval(ctx context.Context, projectID string, personID string, from, to time.Time) ([]timesheet.TimeEntry, error) {
	q := GetQuerier(ctx, t.db)

	query := `SELECT ` + entryColumns + entryJoins + `
		WHERE e.project_id = $1
		  AND d.date >= $2
		  AND d.date <= $3
		  AND ` + nonEmpty

	args := []any{projectID, from, to}
	if personID != "" {
		query += ` AND e.person_id = $4`
		args = append(args, personID)
	}
	query += ` ORDER BY e.person_id, d.date ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries for approval: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// ListByStatuses implements timesheet.TimeEntryRepository.
func (t *timeEntryRepository) ListByStatuses(ctx context.Context, personID, periodID, dayID string, statuses []timesheet.Status) ([]timesheet.TimeEntry, error) {
	q := GetQuerier(ctx, t.db)

	query := `SELECT ` + entryColumns + entryJoins + `
		WHERE e.person_id = $1
		  AND e.period_id = $2
		  AND e.status = ANY($3)
		  AND ` + nonEmpty

	args := []any{personID, periodID, statusStrings(statuses)}
	if dayID != "" {
		query += ` AND e.day_id = $4`
		args = append(args, dayID)
	}
	query += ` ORDER BY d.date ASC, e.created_at ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries by status: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// UpdateStatusBatch implements timesheet.TimeEntryRepository.
func (t *timeEntryRepository) UpdateStatusBatch(ctx context.Context, ids []string, status timesheet.Status, reason *string) error {
	if len(ids) == 0 {
		return nil
	}

	q := GetQuerier(ctx, t.db)

	query := `
		UPDATE time_entries
		SET status = $2,
			rejection_reason = $3,
			updated_at = NOW()
		WHERE id = ANY($1)
	`

	if _, err := q.Exec(ctx, query, ids, status, reason); err != nil {
		return fmt.Errorf("failed to update entry statuses: %w", err)
	}

	return nil
}

// AggregateDay implements timesheet.TimeEntryRepository.
func (t *timeEntryRepository) AggregateDay(ctx context.Context, personID, dayID string, excludeEntryID string) (timesheet.DayAggregate, error) {
	q := GetQuerier(ctx, t.db)

	query := `
		SELECT
			COALESCE(SUM(e.normal_hours), 0),
			COALESCE(SUM(e.normal_hours + e.overtime_paid + ABS(e.overtime_banked) + e.absence_paid + e.absence_unpaid), 0)
		FROM time_entries e
		WHERE e.person_id = $1
		  AND e.day_id = $2
		  AND e.status != 'rejected'
	`

	args := []any{personID, dayID}
	if excludeEntryID != "" {
		query += ` AND e.id != $3`
		args = append(args, excludeEntryID)
	}

	var agg timesheet.DayAggregate
	if err := q.QueryRow(ctx, query, args...).Scan(&agg.UsedNormal, &agg.Total); err != nil {
		return timesheet.DayAggregate{}, fmt.Errorf("failed to aggregate day: %w", err)
	}

	return agg, nil
}

// AggregatePeriod implements timesheet.TimeEntryRepository.
func (t *timeEntryRepository) AggregatePeriod(ctx context.Context, personID, periodID string) (timesheet.PeriodAggregate, error) {
	q := GetQuerier(ctx, t.db)

	query := `
		SELECT
			COALESCE(SUM(e.normal_hours), 0),
			COALESCE(SUM(e.overtime_paid), 0),
			COALESCE(SUM(e.overtime_banked), 0),
			COALESCE(SUM(e.absence_paid), 0),
			COALESCE(SUM(e.absence_unpaid), 0),
			COUNT(*) FILTER (WHERE ` + nonEmpty + `)
		FROM time_entries e
		WHERE e.person_id = $1
		  AND e.period_id = $2
		  AND e.status != 'rejected'
	`

	var agg timesheet.PeriodAggregate
	err := q.QueryRow(ctx, query, personID, periodID).Scan(
		&agg.Normal, &agg.OvertimePaid, &agg.OvertimeBanked,
		&agg.AbsencePaid, &agg.AbsenceUnpaid, &agg.EntryCount,
	)
	if err != nil {
		return timesheet.PeriodAggregate{}, fmt.Errorf("failed to aggregate period: %w", err)
	}

	return agg, nil
}

// HasLockedSibling implements timesheet.TimeEntryRepository.
func (t *timeEntryRepository) HasLockedSibling(ctx context.Context, personID, dayID string) (bool, error) {
	q := GetQuerier(ctx, t.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM time_entries
			WHERE person_id = $1
			  AND day_id = $2
			  AND status NOT IN ('draft', 'rejected')
		)
	`

	var locked bool
	if err := q.QueryRow(ctx, query, personID, dayID).Scan(&locked); err != nil {
		return false, fmt.Errorf("failed to check day lock: %w", err)
	}

	return locked, nil
}

// CountByPeriodAndStatus implements timesheet.TimeEntryRepository.
func (t *timeEntryRepository) CountByPeriodAndStatus(ctx context.Context, periodID string) (map[timesheet.Status]int, error) {
	q := GetQuerier(ctx, t.db)

	query := `
		SELECT e.status, COUNT(*)
		FROM time_entries e
		WHERE e.period_id = $1
		  AND ` + nonEmpty + `
		GROUP BY e.status
	`

	rows, err := q.Query(ctx, query, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to count entries by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[timesheet.Status]int)
	for rows.Next() {
		var status timesheet.Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts[status] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate status counts: %w", err)
	}

	return counts, nil
}

func statusStrings(statuses []timesheet.Status) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return out
}
