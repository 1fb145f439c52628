package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chronoworks/timesheet-backend-go/internal/domain/auth"
	"github.com/chronoworks/timesheet-backend-go/internal/domain/bank"
	"github.com/chronoworks/timesheet-backend-go/internal/domain/calendar"
	"github.com/chronoworks/timesheet-backend-go/internal/domain/person"
	"github.com/chronoworks/timesheet-backend-go/internal/domain/timesheet"
	"github.com/shopspring/decimal"
)

type CalendarServiceImpl struct {
	calendar.CalendarRepository
	timesheet.TimeEntryRepository
	bank.LedgerRepository
	person.PersonRepository
}

func NewCalendarService(
	calendarRepo calendar.CalendarRepository,
	entryRepo timesheet.TimeEntryRepository,
	ledgerRepo bank.LedgerRepository,
	personRepo person.PersonRepository,
) calendar.CalendarService {
	return &CalendarServiceImpl{
		CalendarRepository:  calendarRepo,
		TimeEntryRepository: entryRepo,
		LedgerRepository:    ledgerRepo,
		PersonRepository:    personRepo,
	}
}

// ResolveDay implements calendar.CalendarService.
func (s *CalendarServiceImpl) ResolveDay(ctx context.Context, date string) (calendar.DayResolution, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return calendar.DayResolution{}, err
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return calendar.DayResolution{}, fmt.Errorf("invalid date %q: %w", date, err)
	}

	res, err := s.CalendarRepository.ResolveDay(ctx, actor.PersonID, day)
	if err != nil {
		if errors.Is(err, calendar.ErrDayNotFound) {
			return calendar.DayResolution{}, calendar.ErrDayNotFound
		}
		return calendar.DayResolution{}, fmt.Errorf("failed to resolve day: %w", err)
	}

	return res, nil
}

// CountBusinessDays implements calendar.CalendarService.
func (s *CalendarServiceImpl) CountBusinessDays(ctx context.Context, periodID string) (int, error) {
	count, err := s.CalendarRepository.CountBusinessDays(ctx, periodID)
	if err != nil {
		return 0, fmt.Errorf("failed to count business days: %w", err)
	}
	return count, nil
}

// ListMyPeriods implements calendar.CalendarService.
func (s *CalendarServiceImpl) ListMyPeriods(ctx context.Context) ([]calendar.PeriodResponse, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	periods, err := s.CalendarRepository.ListPeriodsByPerson(ctx, actor.PersonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}

	responses := make([]calendar.PeriodResponse, 0, len(periods))
	for _, p := range periods {
		responses = append(responses, mapPeriodToResponse(p))
	}
	return responses, nil
}

// PeriodSummary implements calendar.CalendarService.
func (s *CalendarServiceImpl) PeriodSummary(ctx context.Context, periodID string) (calendar.PeriodSummaryResponse, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return calendar.PeriodSummaryResponse{}, err
	}

	period, err := s.CalendarRepository.GetPeriodForPerson(ctx, periodID, actor.PersonID)
	if err != nil {
		if errors.Is(err, calendar.ErrPeriodNotFound) {
			return calendar.PeriodSummaryResponse{}, calendar.ErrPeriodNotFound
		}
		return calendar.PeriodSummaryResponse{}, fmt.Errorf("failed to get period: %w", err)
	}

	days, err := s.CalendarRepository.ListDays(ctx, periodID)
	if err != nil {
		return calendar.PeriodSummaryResponse{}, fmt.Errorf("failed to list days: %w", err)
	}

	entries, err := s.TimeEntryRepository.ListByPersonAndPeriod(ctx, actor.PersonID, periodID)
	if err != nil {
		return calendar.PeriodSummaryResponse{}, fmt.Errorf("failed to list period entries: %w", err)
	}

	byDay := make(map[string][]timesheet.TimeEntry)
	for _, entry := range entries {
		byDay[entry.DayID] = append(byDay[entry.DayID], entry)
	}

	cells := make([]calendar.DayCell, 0, len(days))
	for _, day := range days {
		dayEntries := byDay[day.ID]

		total := decimal.Zero
		for _, entry := range dayEntries {
			total = total.Add(entry.Buckets.Total())
		}

		cells = append(cells, calendar.DayCell{
			DayID:          day.ID,
			Date:           day.Date.Format("2006-01-02"),
			Type:           string(day.Type),
			TotalHours:     total.InexactFloat64(),
			ApprovalStatus: dayApprovalStatus(dayEntries),
			EntryCount:     len(dayEntries),
		})
	}

	agg, err := s.TimeEntryRepository.AggregatePeriod(ctx, actor.PersonID, periodID)
	if err != nil {
		return calendar.PeriodSummaryResponse{}, fmt.Errorf("failed to aggregate period: %w", err)
	}

	counts, err := s.TimeEntryRepository.CountByPeriodAndStatus(ctx, periodID)
	if err != nil {
		return calendar.PeriodSummaryResponse{}, fmt.Errorf("failed to count entry statuses: %w", err)
	}

	balance, err := s.LedgerRepository.SumByPerson(ctx, actor.PersonID)
	if err != nil {
		return calendar.PeriodSummaryResponse{}, fmt.Errorf("failed to compute bank balance: %w", err)
	}

	return calendar.PeriodSummaryResponse{
		Period:          mapPeriodToResponse(period),
		Days:            cells,
		ContractedHours: period.ContractedHours().InexactFloat64(),
		LoggedHours:     agg.Logged().InexactFloat64(),
		BankDelta:       agg.OvertimeBanked.InexactFloat64(),
		BankBalance:     balance.InexactFloat64(),
		Status:          rollupPeriodStatus(counts),
	}, nil
}

// HRRoster implements calendar.CalendarService.
func (s *CalendarServiceImpl) HRRoster(ctx context.Context, from, to string) ([]calendar.RosterRow, error) {
	start, err := time.Parse("2006-01-02", from)
	if err != nil {
		return nil, fmt.Errorf("invalid from date %q: %w", from, err)
	}
	end, err := time.Parse("2006-01-02", to)
	if err != nil {
		return nil, fmt.Errorf("invalid to date %q: %w", to, err)
	}

	periods, err := s.CalendarRepository.ListPeriodsInRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list periods in range: %w", err)
	}

	personIDs := make([]string, 0, len(periods))
	for _, p := range periods {
		personIDs = append(personIDs, p.PersonID)
	}

	people, err := s.PersonRepository.ListByIDs(ctx, personIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}

	rows := make([]calendar.RosterRow, 0, len(periods))
	for _, p := range periods {
		agg, err := s.TimeEntryRepository.AggregatePeriod(ctx, p.PersonID, p.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to aggregate period: %w", err)
		}

		counts, err := s.TimeEntryRepository.CountByPeriodAndStatus(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count entry statuses: %w", err)
		}

		pending := counts[timesheet.StatusDraft] + counts[timesheet.StatusRejected] + counts[timesheet.StatusSubmitted]
		approved := counts[timesheet.StatusApproved]

		row := calendar.RosterRow{
			PersonID:        p.PersonID,
			PeriodID:        p.ID,
			StartDate:       p.StartDate.Format("2006-01-02"),
			EndDate:         p.EndDate.Format("2006-01-02"),
			ContractedHours: p.ContractedHours().InexactFloat64(),
			LoggedHours:     agg.Logged().InexactFloat64(),
			BankDelta:       agg.OvertimeBanked.InexactFloat64(),
			PendingCount:    pending,
			ApprovedCount:   approved,
			ClosedCount:     counts[timesheet.StatusClosed],
			BilledCount:     counts[timesheet.StatusBilled],
			Closable:        approved > 0 && pending == 0,
			Status:          rollupPeriodStatus(counts),
		}
		if per, ok := people[p.PersonID]; ok {
			row.PersonName = per.Name
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// dayApprovalStatus rolls one day's entry statuses into the cell badge.
// Pending work dominates terminal states so the owner sees what still needs
// attention.
func dayApprovalStatus(entries []timesheet.TimeEntry) string {
	if len(entries) == 0 {
		return "none"
	}

	var hasRejected, hasDraft, hasSubmitted bool
	for _, entry := range entries {
		switch entry.Status {
		case timesheet.StatusRejected:
			hasRejected = true
		case timesheet.StatusDraft:
			hasDraft = true
		case timesheet.StatusSubmitted:
			hasSubmitted = true
		}
	}

	switch {
	case hasRejected:
		return "rejected"
	case hasDraft:
		return "draft"
	case hasSubmitted:
		return "submitted"
	default:
		return "approved"
	}
}

// rollupPeriodStatus reduces per-status entry counts to the period header
// badge. The period is only as far along as its least-advanced entry.
func rollupPeriodStatus(counts map[timesheet.Status]int) calendar.PeriodStatus {
	total := 0
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return calendar.PeriodNew
	}

	switch {
	case counts[timesheet.StatusDraft] > 0 || counts[timesheet.StatusRejected] > 0:
		return calendar.PeriodOpen
	case counts[timesheet.StatusSubmitted] > 0:
		return calendar.PeriodAwaitingApproval
	case counts[timesheet.StatusApproved] > 0:
		return calendar.PeriodApproved
	case counts[timesheet.StatusClosed] > 0:
		return calendar.PeriodClosed
	default:
		return calendar.PeriodBilled
	}
}

func mapPeriodToResponse(p calendar.Period) calendar.PeriodResponse {
	return calendar.PeriodResponse{
		ID:                   p.ID,
		StartDate:            p.StartDate.Format("2006-01-02"),
		EndDate:              p.EndDate.Format("2006-01-02"),
		BusinessDays:         p.BusinessDays,
		ContractedDailyHours: p.ContractedDailyHours.InexactFloat64(),
		ContractedHours:      p.ContractedHours().InexactFloat64(),
	}
}
