package bank

import (
	"context"
	"errors"
	"fmt"

	"github.com/chronoworks/timesheet-backend-go/internal/domain/auth"
	"github.com/chronoworks/timesheet-backend-go/internal/domain/bank"
	"github.com/chronoworks/timesheet-backend-go/internal/domain/timesheet"
)

type LedgerServiceImpl struct {
	bank.LedgerRepository
}

func NewLedgerService(ledgerRepo bank.LedgerRepository) bank.LedgerService {
	return &LedgerServiceImpl{LedgerRepository: ledgerRepo}
}

// Materialize implements bank.LedgerService.
func (s *LedgerServiceImpl) Materialize(ctx context.Context, entry timesheet.TimeEntry) (*bank.LedgerEntry, error) {
	banked := entry.Buckets.OvertimeBanked
	if banked.IsZero() {
		return nil, nil
	}

	// One ledger row per time entry. A retried closure finds the existing
	// row and reuses it instead of double-counting.
	existing, err := s.LedgerRepository.GetByTimeEntryID(ctx, entry.ID)
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, bank.ErrLedgerEntryNotFound) {
		return nil, fmt.Errorf("failed to look up ledger entry: %w", err)
	}

	entryType := bank.TypeCredit
	if banked.IsNegative() {
		entryType = bank.TypeDebit
	}

	created, err := s.LedgerRepository.Create(ctx, bank.LedgerEntry{
		TimeEntryID: entry.ID,
		PersonID:    entry.PersonID,
		Type:        entryType,
		Hours:       banked.Abs(),
		WorkDate:    entry.Date,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ledger entry: %w", err)
	}

	return &created, nil
}

// Balance implements bank.LedgerService.
func (s *LedgerServiceImpl) Balance(ctx context.Context) (bank.BalanceResponse, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return bank.BalanceResponse{}, err
	}

	balance, err := s.LedgerRepository.SumByPerson(ctx, actor.PersonID)
	if err != nil {
		return bank.BalanceResponse{}, fmt.Errorf("failed to compute bank balance: %w", err)
	}

	return bank.BalanceResponse{
		PersonID: actor.PersonID,
		Balance:  balance.InexactFloat64(),
	}, nil
}

// Statement implements bank.LedgerService.
func (s *LedgerServiceImpl) Statement(ctx context.Context) (bank.StatementResponse, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return bank.StatementResponse{}, err
	}

	entries, err := s.LedgerRepository.ListByPerson(ctx, actor.PersonID)
	if err != nil {
		return bank.StatementResponse{}, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	balance, err := s.LedgerRepository.SumByPerson(ctx, actor.PersonID)
	if err != nil {
		return bank.StatementResponse{}, fmt.Errorf("failed to compute bank balance: %w", err)
	}

	rows := make([]bank.StatementRow, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, bank.StatementRow{
			ID:          entry.ID,
			TimeEntryID: entry.TimeEntryID,
			Type:        string(entry.Type),
			Hours:       entry.Hours.InexactFloat64(),
			WorkDate:    entry.WorkDate.Format("2006-01-02"),
		})
	}

	return bank.StatementResponse{
		PersonID: actor.PersonID,
		Balance:  balance.InexactFloat64(),
		Rows:     rows,
	}, nil
}
