package timesheet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chronoworks/timesheet-backend-go/internal/domain/auth"
	"github.com/chronoworks/timesheet-backend-go/internal/domain/bank"
	"github.com/chronoworks/timesheet-backend-go/internal/domain/calendar"
	"github.com/chronoworks/timesheet-backend-go/internal/domain/project"
	"github.com/chronoworks/timesheet-backend-go/internal/domain/timesheet"
	"github.com/chronoworks/timesheet-backend-go/internal/domain/user"
	"github.com/chronoworks/timesheet-backend-go/internal/repository/postgresql"
)

type ApprovalServiceImpl struct {
	tx postgresql.Transactor
	timesheet.TimeEntryRepository
	calendar.CalendarRepository
	project.ProjectRepository
	ledgerService bank.LedgerService
}

func NewApprovalService(
	tx postgresql.Transactor,
	entryRepo timesheet.TimeEntryRepository,
	calendarRepo calendar.CalendarRepository,
	projectRepo project.ProjectRepository,
	ledgerService bank.LedgerService,
) timesheet.ApprovalService {
	return &ApprovalServiceImpl{
		tx:                  tx,
		TimeEntryRepository: entryRepo,
		CalendarRepository:  calendarRepo,
		ProjectRepository:   projectRepo,
		ledgerService:       ledgerService,
	}
}

// Approve implements timesheet.ApprovalService.
func (s *ApprovalServiceImpl) Approve(ctx context.Context, filter timesheet.ApprovalFilter) (timesheet.BatchResult, error) {
	if err := filter.Validate(); err != nil {
		return timesheet.BatchResult{}, err
	}

	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return timesheet.BatchResult{}, err
	}

	if err := s.checkProjectLead(ctx, actor, filter.ProjectID); err != nil {
		return timesheet.BatchResult{}, err
	}

	return s.decide(ctx, filter, timesheet.StatusApproved, nil)
}

// Reject implements timesheet.ApprovalService.
func (s *ApprovalServiceImpl) Reject(ctx context.Context, req timesheet.RejectRequest) (timesheet.BatchResult, error) {
	if err := req.Validate(); err != nil {
		return timesheet.BatchResult{}, err
	}

	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return timesheet.BatchResult{}, err
	}

	if err := s.checkProjectLead(ctx, actor, req.ProjectID); err != nil {
		return timesheet.BatchResult{}, err
	}

	return s.decide(ctx, req.ApprovalFilter, timesheet.StatusRejected, &req.Reason)
}

// decide applies one approval verdict to every matching entry whose current
// status allows the transition. Entries already past the decision are left
// untouched rather than failing the batch.
func (s *ApprovalServiceImpl) decide(ctx context.Context, filter timesheet.ApprovalFilter, target timesheet.Status, reason *string) (timesheet.BatchResult, error) {
	from, _ := time.Parse("2006-01-02", filter.From)
	to, _ := time.Parse("2006-01-02", filter.To)

	entries, err := s.TimeEntryRepository.ListForApproval(ctx, filter.ProjectID, filter.PersonID, from, to)
	if err != nil {
		return timesheet.BatchResult{}, fmt.Errorf("failed to list entries for approval: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if entry.Status.CanTransitionTo(target) {
			ids = append(ids, entry.ID)
		}
	}

	if len(ids) == 0 {
		return timesheet.BatchResult{NothingToDo: true}, nil
	}

	if err := s.TimeEntryRepository.UpdateStatusBatch(ctx, ids, target, reason); err != nil {
		return timesheet.BatchResult{}, &timesheet.TransientError{Err: err}
	}

	return timesheet.BatchResult{Updated: len(ids)}, nil
}

// ClosePeriod implements timesheet.ApprovalService.
//
// Closure is all-or-nothing: the status flips and the ledger rows of every
// banked entry land in one transaction, so a ledger failure leaves the whole
// batch Approved.
func (s *ApprovalServiceImpl) ClosePeriod(ctx context.Context, req timesheet.ClosePeriodRequest) (timesheet.BatchResult, error) {
	if err := req.Validate(); err != nil {
		return timesheet.BatchResult{}, err
	}

	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return timesheet.BatchResult{}, err
	}
	if !actor.Role.CanClose() {
		return timesheet.BatchResult{}, user.ErrHRAccessRequired
	}

	period, err := s.findPeriod(ctx, req)
	if err != nil {
		return timesheet.BatchResult{}, err
	}

	entries, err := s.TimeEntryRepository.ListByStatuses(ctx, req.PersonID, period.ID, "",
		[]timesheet.Status{timesheet.StatusApproved})
	if err != nil {
		return timesheet.BatchResult{}, fmt.Errorf("failed to list approved entries: %w", err)
	}

	if len(entries) == 0 {
		return timesheet.BatchResult{NothingToDo: true}, nil
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.ID)
	}

	err = s.tx.WithTx(ctx, func(txCtx context.Context) error {
		for _, entry := range entries {
			if _, err := s.ledgerService.Materialize(txCtx, entry); err != nil {
				return &bank.LedgerInconsistencyError{TimeEntryID: entry.ID, Err: err}
			}
		}

		if err := s.TimeEntryRepository.UpdateStatusBatch(txCtx, ids, timesheet.StatusClosed, nil); err != nil {
			return fmt.Errorf("failed to close entries: %w", err)
		}
		return nil
	})
	if err != nil {
		return timesheet.BatchResult{}, err
	}

	return timesheet.BatchResult{Updated: len(ids)}, nil
}

// BillPeriod implements timesheet.ApprovalService.
func (s *ApprovalServiceImpl) BillPeriod(ctx context.Context, req timesheet.ClosePeriodRequest) (timesheet.BatchResult, error) {
	if err := req.Validate(); err != nil {
		return timesheet.BatchResult{}, err
	}

	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return timesheet.BatchResult{}, err
	}
	if !actor.Role.CanBill() {
		return timesheet.BatchResult{}, user.ErrFinanceAccessRequired
	}

	period, err := s.findPeriod(ctx, req)
	if err != nil {
		return timesheet.BatchResult{}, err
	}

	entries, err := s.TimeEntryRepository.ListByStatuses(ctx, req.PersonID, period.ID, "",
		[]timesheet.Status{timesheet.StatusClosed})
	if err != nil {
		return timesheet.BatchResult{}, fmt.Errorf("failed to list closed entries: %w", err)
	}

	if len(entries) == 0 {
		return timesheet.BatchResult{NothingToDo: true}, nil
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.ID)
	}

	if err := s.TimeEntryRepository.UpdateStatusBatch(ctx, ids, timesheet.StatusBilled, nil); err != nil {
		return timesheet.BatchResult{}, &timesheet.TransientError{Err: err}
	}

	return timesheet.BatchResult{Updated: len(ids)}, nil
}

// checkProjectLead verifies the actor leads the project. HR passes without
// owning any project.
func (s *ApprovalServiceImpl) checkProjectLead(ctx context.Context, actor auth.Actor, projectID string) error {
	if !actor.Role.IsManager() {
		return user.ErrManagerAccessRequired
	}
	if actor.Role == user.RoleHR {
		return nil
	}

	prj, err := s.ProjectRepository.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, project.ErrProjectNotFound) {
			return project.ErrProjectNotFound
		}
		return fmt.Errorf("failed to get project: %w", err)
	}

	if prj.ManagerID != actor.PersonID {
		return project.ErrNotProjectLead
	}

	return nil
}

func (s *ApprovalServiceImpl) findPeriod(ctx context.Context, req timesheet.ClosePeriodRequest) (calendar.Period, error) {
	from, _ := time.Parse("2006-01-02", req.From)
	to, _ := time.Parse("2006-01-02", req.To)

	period, err := s.CalendarRepository.FindPeriodInRange(ctx, req.PersonID, from, to)
	if err != nil {
		if errors.Is(err, calendar.ErrPeriodNotFound) {
			return calendar.Period{}, calendar.ErrPeriodNotFound
		}
		return calendar.Period{}, fmt.Errorf("failed to find period: %w", err)
	}

	return period, nil
}
