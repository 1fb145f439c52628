package timesheet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chronoworks/timesheet-backend-go/internal/domain/auth"
	"github.com/chronoworks/timesheet-backend-go/internal/domain/calendar"
	"github.com/chronoworks/timesheet-backend-go/internal/domain/project"
	"github.com/chronoworks/timesheet-backend-go/internal/domain/timesheet"
	"github.com/chronoworks/timesheet-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
)

type TimeEntryServiceImpl struct {
	tx postgresql.Transactor
	timesheet.TimeEntryRepository
	calendar.CalendarRepository
	project.AllocationRepository
	classifier *Classifier
}

func NewTimeEntryService(
	tx postgresql.Transactor,
	entryRepo timesheet.TimeEntryRepository,
	calendarRepo calendar.CalendarRepository,
	allocationRepo project.AllocationRepository,
	classifier *Classifier,
) timesheet.TimeEntryService {
	return &TimeEntryServiceImpl{
		tx:                   tx,
		TimeEntryRepository:  entryRepo,
		CalendarRepository:   calendarRepo,
		AllocationRepository: allocationRepo,
		classifier:           classifier,
	}
}

// GetDailyQuota implements timesheet.TimeEntryService.
func (s *TimeEntryServiceImpl) GetDailyQuota(ctx context.Context, date string) (timesheet.DayQuotaResponse, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return timesheet.DayQuotaResponse{}, err
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return timesheet.DayQuotaResponse{}, fmt.Errorf("invalid date %q: %w", date, err)
	}

	res, err := s.CalendarRepository.ResolveDay(ctx, actor.PersonID, day)
	if err != nil {
		if errors.Is(err, calendar.ErrDayNotFound) {
			return timesheet.DayQuotaResponse{}, calendar.ErrDayNotFound
		}
		return timesheet.DayQuotaResponse{}, fmt.Errorf("failed to resolve day: %w", err)
	}

	agg, err := s.TimeEntryRepository.AggregateDay(ctx, actor.PersonID, res.DayID, "")
	if err != nil {
		return timesheet.DayQuotaResponse{}, fmt.Errorf("failed to aggregate day: %w", err)
	}

	remaining := res.ContractedDailyHours.Sub(agg.UsedNormal)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	return timesheet.DayQuotaResponse{
		PeriodID:             res.PeriodID,
		DayID:                res.DayID,
		Date:                 res.Date.Format("2006-01-02"),
		DayType:              string(res.DayType),
		ContractedDailyHours: res.ContractedDailyHours.InexactFloat64(),
		UsedNormal:           agg.UsedNormal.InexactFloat64(),
		RemainingNormal:      remaining.InexactFloat64(),
	}, nil
}

// SubmitEntry implements timesheet.TimeEntryService.
func (s *TimeEntryServiceImpl) SubmitEntry(ctx context.Context, req timesheet.CreateEntryRequest) (timesheet.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.EntryResponse{}, err
	}

	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return timesheet.EntryResponse{}, err
	}

	day, _ := time.Parse("2006-01-02", req.Date)

	res, err := s.CalendarRepository.ResolveDay(ctx, actor.PersonID, day)
	if err != nil {
		if errors.Is(err, calendar.ErrDayNotFound) {
			return timesheet.EntryResponse{}, calendar.ErrDayNotFound
		}
		return timesheet.EntryResponse{}, fmt.Errorf("failed to resolve day: %w", err)
	}

	allocated, err := s.AllocationRepository.IsAllocated(ctx, actor.PersonID, req.ProjectID, day)
	if err != nil {
		return timesheet.EntryResponse{}, fmt.Errorf("failed to check allocation: %w", err)
	}
	if !allocated {
		return timesheet.EntryResponse{}, project.ErrNotAllocated
	}

	var created timesheet.TimeEntry

	// The day-so-far read and the insert form one critical section per
	// person+day: two concurrent submissions must not both pass the quota
	// check. The advisory lock serializes them.
	err = s.tx.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.TimeEntryRepository.LockDay(txCtx, actor.PersonID, res.DayID); err != nil {
			return err
		}

		agg, err := s.TimeEntryRepository.AggregateDay(txCtx, actor.PersonID, res.DayID, "")
		if err != nil {
			return fmt.Errorf("failed to aggregate day: %w", err)
		}

		classification, err := s.classifier.Classify(classifyInputFromRequest(req), daySoFarFromAggregate(agg), res.ContractedDailyHours)
		if err != nil {
			return err
		}

		created, err = s.TimeEntryRepository.Create(txCtx, timesheet.TimeEntry{
			PersonID:      actor.PersonID,
			PeriodID:      res.PeriodID,
			DayID:         res.DayID,
			ProjectID:     req.ProjectID,
			Buckets:       classification.Buckets,
			Status:        timesheet.StatusDraft,
			Justification: classification.Justification,
		})
		if err != nil {
			return fmt.Errorf("failed to create time entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return timesheet.EntryResponse{}, err
	}

	created.Date = res.Date
	return mapEntryToResponse(created), nil
}

// UpdateEntry implements timesheet.TimeEntryService.
func (s *TimeEntryServiceImpl) UpdateEntry(ctx context.Context, req timesheet.UpdateEntryRequest) (timesheet.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.EntryResponse{}, err
	}

	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return timesheet.EntryResponse{}, err
	}

	entry, err := s.TimeEntryRepository.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, timesheet.ErrEntryNotFound) {
			return timesheet.EntryResponse{}, timesheet.ErrEntryNotFound
		}
		return timesheet.EntryResponse{}, fmt.Errorf("failed to get time entry: %w", err)
	}

	if entry.PersonID != actor.PersonID {
		return timesheet.EntryResponse{}, timesheet.ErrNotEntryOwner
	}
	if !entry.Mutable() {
		return timesheet.EntryResponse{}, timesheet.ErrEntryImmutable
	}

	res, err := s.CalendarRepository.ResolveDay(ctx, actor.PersonID, entry.Date)
	if err != nil {
		return timesheet.EntryResponse{}, fmt.Errorf("failed to resolve day: %w", err)
	}

	var updated timesheet.TimeEntry

	err = s.tx.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.TimeEntryRepository.LockDay(txCtx, actor.PersonID, entry.DayID); err != nil {
			return err
		}

		locked, err := s.TimeEntryRepository.HasLockedSibling(txCtx, actor.PersonID, entry.DayID)
		if err != nil {
			return fmt.Errorf("failed to check day lock: %w", err)
		}
		if locked {
			return timesheet.ErrDayLocked
		}

		agg, err := s.TimeEntryRepository.AggregateDay(txCtx, actor.PersonID, entry.DayID, entry.ID)
		if err != nil {
			return fmt.Errorf("failed to aggregate day: %w", err)
		}

		classification, err := s.classifier.Classify(classifyInputFromRequest(req.CreateEntryRequest), daySoFarFromAggregate(agg), res.ContractedDailyHours)
		if err != nil {
			return err
		}

		entry.ProjectID = req.ProjectID
		entry.Buckets = classification.Buckets
		entry.Justification = classification.Justification
		entry.Status = timesheet.StatusDraft
		entry.RejectionReason = nil // a rework clears the prior rejection

		if err := s.TimeEntryRepository.Update(txCtx, entry); err != nil {
			return fmt.Errorf("failed to update time entry: %w", err)
		}
		updated = entry
		return nil
	})
	if err != nil {
		return timesheet.EntryResponse{}, err
	}

	return mapEntryToResponse(updated), nil
}

// ListDayEntries implements timesheet.TimeEntryService.
func (s *TimeEntryServiceImpl) ListDayEntries(ctx context.Context, date string) (timesheet.DayEntriesResponse, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return timesheet.DayEntriesResponse{}, err
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return timesheet.DayEntriesResponse{}, fmt.Errorf("invalid date %q: %w", date, err)
	}

	res, err := s.CalendarRepository.ResolveDay(ctx, actor.PersonID, day)
	if err != nil {
		if errors.Is(err, calendar.ErrDayNotFound) {
			return timesheet.DayEntriesResponse{}, calendar.ErrDayNotFound
		}
		return timesheet.DayEntriesResponse{}, fmt.Errorf("failed to resolve day: %w", err)
	}

	entries, err := s.TimeEntryRepository.ListByPersonAndDay(ctx, actor.PersonID, res.DayID)
	if err != nil {
		return timesheet.DayEntriesResponse{}, fmt.Errorf("failed to list day entries: %w", err)
	}

	allocations, err := s.AllocationRepository.ListActive(ctx, actor.PersonID, day)
	if err != nil {
		return timesheet.DayEntriesResponse{}, fmt.Errorf("failed to list allocations: %w", err)
	}

	responses := make([]timesheet.EntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, mapEntryToResponse(entry))
	}

	projects := make([]timesheet.ProjectOption, 0, len(allocations))
	for _, alloc := range allocations {
		projects = append(projects, timesheet.ProjectOption{
			ProjectID:   alloc.ProjectID,
			ProjectName: alloc.ProjectName,
		})
	}

	return timesheet.DayEntriesResponse{
		Date:     res.Date.Format("2006-01-02"),
		Entries:  responses,
		Projects: projects,
	}, nil
}

// DeleteEntry implements timesheet.TimeEntryService.
func (s *TimeEntryServiceImpl) DeleteEntry(ctx context.Context, id string) error {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return err
	}

	entry, err := s.TimeEntryRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, timesheet.ErrEntryNotFound) {
			return timesheet.ErrEntryNotFound
		}
		return fmt.Errorf("failed to get time entry: %w", err)
	}

	if entry.PersonID != actor.PersonID {
		return timesheet.ErrNotEntryOwner
	}
	if !entry.Mutable() {
		return timesheet.ErrEntryImmutable
	}

	locked, err := s.TimeEntryRepository.HasLockedSibling(ctx, actor.PersonID, entry.DayID)
	if err != nil {
		return fmt.Errorf("failed to check day lock: %w", err)
	}
	if locked {
		return timesheet.ErrDayLocked
	}

	if err := s.TimeEntryRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete time entry: %w", err)
	}
	return nil
}

// SubmitDay implements timesheet.TimeEntryService.
func (s *TimeEntryServiceImpl) SubmitDay(ctx context.Context, date string) (timesheet.BatchResult, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return timesheet.BatchResult{}, err
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return timesheet.BatchResult{}, fmt.Errorf("invalid date %q: %w", date, err)
	}

	res, err := s.CalendarRepository.ResolveDay(ctx, actor.PersonID, day)
	if err != nil {
		if errors.Is(err, calendar.ErrDayNotFound) {
			return timesheet.BatchResult{}, calendar.ErrDayNotFound
		}
		return timesheet.BatchResult{}, fmt.Errorf("failed to resolve day: %w", err)
	}

	return s.submitPending(ctx, actor.PersonID, res.PeriodID, res.DayID)
}

// SubmitPeriod implements timesheet.TimeEntryService.
func (s *TimeEntryServiceImpl) SubmitPeriod(ctx context.Context, periodID string) (timesheet.BatchResult, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return timesheet.BatchResult{}, err
	}

	if _, err := s.CalendarRepository.GetPeriodForPerson(ctx, periodID, actor.PersonID); err != nil {
		if errors.Is(err, calendar.ErrPeriodNotFound) {
			return timesheet.BatchResult{}, calendar.ErrPeriodNotFound
		}
		return timesheet.BatchResult{}, fmt.Errorf("failed to get period: %w", err)
	}

	return s.submitPending(ctx, actor.PersonID, periodID, "")
}

// submitPending moves every Draft/Rejected entry of the scope to Submitted.
// An empty match is a no-op success, not an error.
func (s *TimeEntryServiceImpl) submitPending(ctx context.Context, personID, periodID, dayID string) (timesheet.BatchResult, error) {
	pending, err := s.TimeEntryRepository.ListByStatuses(ctx, personID, periodID, dayID,
		[]timesheet.Status{timesheet.StatusDraft, timesheet.StatusRejected})
	if err != nil {
		return timesheet.BatchResult{}, fmt.Errorf("failed to list pending entries: %w", err)
	}

	if len(pending) == 0 {
		return timesheet.BatchResult{NothingToDo: true}, nil
	}

	ids := make([]string, 0, len(pending))
	for _, entry := range pending {
		ids = append(ids, entry.ID)
	}

	// The batch write is atomic, so a store failure leaves every entry in
	// its previous status and the whole submission is safe to retry.
	if err := s.TimeEntryRepository.UpdateStatusBatch(ctx, ids, timesheet.StatusSubmitted, nil); err != nil {
		return timesheet.BatchResult{}, &timesheet.TransientError{Err: err}
	}

	return timesheet.BatchResult{Updated: len(ids)}, nil
}

func classifyInputFromRequest(req timesheet.CreateEntryRequest) timesheet.ClassifyInput {
	return timesheet.ClassifyInput{
		NormalHours:      decimal.NewFromFloat(req.NormalHours),
		ExtraHours:       decimal.NewFromFloat(req.ExtraHours),
		ExtraDestination: timesheet.ExtraDestination(req.ExtraDestination),
		AbsenceHours:     decimal.NewFromFloat(req.AbsenceHours),
		AbsenceKind:      timesheet.AbsenceKind(req.AbsenceKind),
		Justification:    req.Justification,
	}
}

func daySoFarFromAggregate(agg timesheet.DayAggregate) timesheet.DaySoFar {
	return timesheet.DaySoFar{
		UsedNormal: agg.UsedNormal,
		UsedTotal:  agg.Total,
	}
}

// mapEntryToResponse converts a TimeEntry entity to EntryResponse
func mapEntryToResponse(entry timesheet.TimeEntry) timesheet.EntryResponse {
	return timesheet.EntryResponse{
		ID:              entry.ID,
		PersonID:        entry.PersonID,
		PeriodID:        entry.PeriodID,
		DayID:           entry.DayID,
		Date:            entry.Date.Format("2006-01-02"),
		ProjectID:       entry.ProjectID,
		ProjectName:     entry.ProjectName,
		NormalHours:     entry.Buckets.Normal.InexactFloat64(),
		OvertimePaid:    entry.Buckets.OvertimePaid.InexactFloat64(),
		OvertimeBanked:  entry.Buckets.OvertimeBanked.InexactFloat64(),
		AbsencePaid:     entry.Buckets.AbsencePaid.InexactFloat64(),
		AbsenceUnpaid:   entry.Buckets.AbsenceUnpaid.InexactFloat64(),
		Status:          string(entry.Status),
		Justification:   entry.Justification,
		RejectionReason: entry.RejectionReason,
	}
}
