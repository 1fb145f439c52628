package postgresql

import (
	"context"
	"fmt"

	"github.com/chronoworks/timesheet-backend-go/internal/domain/bank"
	"github.com/chronoworks/timesheet-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type ledgerRepository struct {
	db *database.DB
}

func NewLedgerRepository(db *database.DB) bank.LedgerRepository {
	return &ledgerRepository{db: db}
}

// Create implements bank.LedgerRepository.
func (l *ledgerRepository) Create(ctx context.Context, entry bank.LedgerEntry) (bank.LedgerEntry, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		INSERT INTO bank_ledger_entries (
			time_entry_id, person_id, type, hours, work_date
		) VALUES (
			$1, $2, $3, $4, $5
		) RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		entry.TimeEntryID,
		entry.PersonID,
		entry.Type,
		entry.Hours,
		entry.WorkDate,
	).Scan(&entry.ID, &entry.CreatedAt)

	if err != nil {
		return bank.LedgerEntry{}, fmt.Errorf("failed to create ledger entry: %w", err)
	}

	return entry, nil
}

// GetByTimeEntryID implements bank.LedgerRepository.
func (l *ledgerRepository) GetByTimeEntryID(ctx context.Context, timeEntryID string) (bank.LedgerEntry, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT id, time_entry_id, person_id, type, hours, work_date, created_at
		FROM bank_ledger_entries
		WHERE time_entry_id = $1
	`

	var entry bank.LedgerEntry
	err := q.QueryRow(ctx, query, timeEntryID).Scan(
		&entry.ID, &entry.TimeEntryID, &entry.PersonID,
		&entry.Type, &entry.Hours, &entry.WorkDate, &entry.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return bank.LedgerEntry{}, bank.ErrLedgerEntryNotFound
		}
		return bank.LedgerEntry{}, fmt.Errorf("failed to get ledger entry: %w", err)
	}

	return entry, nil
}

// ListByPerson implements bank.LedgerRepository.
func (l *ledgerRepository) ListByPerson(ctx context.Context, personID string) ([]bank.LedgerEntry, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT id, time_entry_id, person_id, type, hours, work_date, created_at
		FROM bank_ledger_entries
		WHERE person_id = $1
		ORDER BY work_date ASC, created_at ASC
	`

	rows, err := q.Query(ctx, query, personID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []bank.LedgerEntry
	for rows.Next() {
		var entry bank.LedgerEntry
		if err := rows.Scan(
			&entry.ID, &entry.TimeEntryID, &entry.PersonID,
			&entry.Type, &entry.Hours, &entry.WorkDate, &entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ledger entries: %w", err)
	}

	return entries, nil
}

// SumByPerson implements bank.LedgerRepository.
func (l *ledgerRepository) SumByPerson(ctx context.Context, personID string) (decimal.Decimal, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT COALESCE(SUM(CASE WHEN type = 'debit' THEN -hours ELSE hours END), 0)
		FROM bank_ledger_entries
		WHERE person_id = $1
	`

	var balance decimal.Decimal
	if err := q.QueryRow(ctx, query, personID).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum ledger: %w", err)
	}

	return balance, nil
}
