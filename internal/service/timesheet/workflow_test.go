package timesheet

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/chronoworks/timesheet-backend-go/internal/domain/bank"
	"github.com/chronoworks/timesheet-backend-go/internal/domain/calendar"
	"github.com/chronoworks/timesheet-backend-go/internal/domain/project"
	"github.com/chronoworks/timesheet-backend-go/internal/domain/timesheet"
	"github.com/chronoworks/timesheet-backend-go/internal/domain/user"
	bankService "github.com/chronoworks/timesheet-backend-go/internal/service/bank"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLedgerRepo struct {
	rows          map[string]bank.LedgerEntry // keyed by time entry id
	seq           int
	failCreateFor string // time entry id whose Create fails
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{rows: make(map[string]bank.LedgerEntry)}
}

func (f *fakeLedgerRepo) Create(ctx context.Context, entry bank.LedgerEntry) (bank.LedgerEntry, error) {
	if f.failCreateFor == entry.TimeEntryID {
		return bank.LedgerEntry{}, fmt.Errorf("insert failed")
	}
	f.seq++
	entry.ID = fmt.Sprintf("ledger-%d", f.seq)
	f.rows[entry.TimeEntryID] = entry
	return entry, nil
}

func (f *fakeLedgerRepo) GetByTimeEntryID(ctx context.Context, timeEntryID string) (bank.LedgerEntry, error) {
	row, ok := f.rows[timeEntryID]
	if !ok {
		return bank.LedgerEntry{}, bank.ErrLedgerEntryNotFound
	}
	return row, nil
}

func (f *fakeLedgerRepo) ListByPerson(ctx context.Context, personID string) ([]bank.LedgerEntry, error) {
	var out []bank.LedgerEntry
	for _, row := range f.rows {
		if row.PersonID == personID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeLedgerRepo) SumByPerson(ctx context.Context, personID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, row := range f.rows {
		if row.PersonID == personID {
			sum = sum.Add(row.Signed())
		}
	}
	return sum, nil
}

func newWorkflowFixture() (*fakeEntryRepo, *fakeCalendarRepo, *fakeProjectRepo, timesheet.ApprovalService) {
	entryRepo, calendarRepo, projectRepo, _, svc := newClosureFixture()
	return entryRepo, calendarRepo, projectRepo, svc
}

func newClosureFixture() (*fakeEntryRepo, *fakeCalendarRepo, *fakeProjectRepo, *fakeLedgerRepo, timesheet.ApprovalService) {
	entryRepo := newFakeEntryRepo()
	calendarRepo := newFakeCalendarRepo()
	projectRepo := newFakeProjectRepo()
	projectRepo.projects[testProject] = project.Project{
		ID:        testProject,
		Name:      "Test Project",
		ManagerID: testManager,
		Active:    true,
	}

	ledgerRepo := newFakeLedgerRepo()
	ledgerSvc := bankService.NewLedgerService(ledgerRepo)
	svc := NewApprovalService(fakeTransactor{}, entryRepo, calendarRepo, projectRepo, ledgerSvc)
	return entryRepo, calendarRepo, projectRepo, ledgerRepo, svc
}

func monthFilter() timesheet.ApprovalFilter {
	return timesheet.ApprovalFilter{
		ProjectID: testProject,
		From:      "2026-03-01",
		To:        "2026-03-31",
	}
}

func TestApprovalService_Approve(t *testing.T) {
	entryRepo, _, _, svc := newWorkflowFixture()

	submitted := draftEntry(testPerson, 8)
	submitted.Status = timesheet.StatusSubmitted
	submitted = entryRepo.put(submitted)

	draft := entryRepo.put(draftEntry(testPerson, 4))

	closed := draftEntry(testPerson, 2)
	closed.Status = timesheet.StatusClosed
	closed = entryRepo.put(closed)

	ctx := actorContext(t, testManager, user.RoleManager)

	result, err := svc.Approve(ctx, monthFilter())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Updated)

	got, _ := entryRepo.GetByID(ctx, submitted.ID)
	assert.Equal(t, timesheet.StatusApproved, got.Status)

	got, _ = entryRepo.GetByID(ctx, draft.ID)
	assert.Equal(t, timesheet.StatusApproved, got.Status)

	got, _ = entryRepo.GetByID(ctx, closed.ID)
	assert.Equal(t, timesheet.StatusClosed, got.Status, "closed entries never move backwards")
}

func TestApprovalService_Approve_CollaboratorForbidden(t *testing.T) {
	_, _, _, svc := newWorkflowFixture()
	ctx := actorContext(t, testPerson, user.RoleCollaborator)

	_, err := svc.Approve(ctx, monthFilter())
	assert.ErrorIs(t, err, user.ErrManagerAccessRequired)
}

func TestApprovalService_Approve_NotProjectLead(t *testing.T) {
	_, _, _, svc := newWorkflowFixture()
	ctx := actorContext(t, "other-manager", user.RoleManager)

	_, err := svc.Approve(ctx, monthFilter())
	assert.ErrorIs(t, err, project.ErrNotProjectLead)
}

func TestApprovalService_Approve_HRBypassesLeadCheck(t *testing.T) {
	entryRepo, _, _, svc := newWorkflowFixture()

	submitted := draftEntry(testPerson, 8)
	submitted.Status = timesheet.StatusSubmitted
	entryRepo.put(submitted)

	ctx := actorContext(t, "hr-person", user.RoleHR)

	result, err := svc.Approve(ctx, monthFilter())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)
}

func TestApprovalService_Approve_NothingToDo(t *testing.T) {
	_, _, _, svc := newWorkflowFixture()
	ctx := actorContext(t, testManager, user.RoleManager)

	result, err := svc.Approve(ctx, monthFilter())
	require.NoError(t, err)
	assert.True(t, result.NothingToDo)
}

func TestApprovalService_Approve_PersonFilter(t *testing.T) {
	entryRepo, _, _, svc := newWorkflowFixture()

	mine := draftEntry(testPerson, 8)
	mine.Status = timesheet.StatusSubmitted
	mine = entryRepo.put(mine)

	other := draftEntry("person-2", 8)
	other.Status = timesheet.StatusSubmitted
	other = entryRepo.put(other)

	ctx := actorContext(t, testManager, user.RoleManager)

	filter := monthFilter()
	filter.PersonID = testPerson

	result, err := svc.Approve(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)

	got, _ := entryRepo.GetByID(ctx, other.ID)
	assert.Equal(t, timesheet.StatusSubmitted, got.Status)
}

func TestApprovalService_Reject(t *testing.T) {
	entryRepo, _, _, svc := newWorkflowFixture()

	submitted := draftEntry(testPerson, 8)
	submitted.Status = timesheet.StatusSubmitted
	submitted = entryRepo.put(submitted)

	ctx := actorContext(t, testManager, user.RoleManager)

	result, err := svc.Reject(ctx, timesheet.RejectRequest{
		ApprovalFilter: monthFilter(),
		Reason:         "hours do not match the sprint log",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)

	got, _ := entryRepo.GetByID(ctx, submitted.ID)
	assert.Equal(t, timesheet.StatusRejected, got.Status)
	require.NotNil(t, got.RejectionReason)
	assert.Equal(t, "hours do not match the sprint log", *got.RejectionReason)
}

func TestApprovalService_Reject_ReasonRequired(t *testing.T) {
	_, _, _, svc := newWorkflowFixture()
	ctx := actorContext(t, testManager, user.RoleManager)

	_, err := svc.Reject(ctx, timesheet.RejectRequest{
		ApprovalFilter: monthFilter(),
	})
	assert.Error(t, err)
}

func TestApprovalService_Reject_ReplacesStoredReason(t *testing.T) {
	entryRepo, _, _, svc := newWorkflowFixture()

	oldReason := "old reason"
	rejected := draftEntry(testPerson, 8)
	rejected.Status = timesheet.StatusRejected
	rejected.RejectionReason = &oldReason
	rejected = entryRepo.put(rejected)

	ctx := actorContext(t, testManager, user.RoleManager)

	result, err := svc.Reject(ctx, timesheet.RejectRequest{
		ApprovalFilter: monthFilter(),
		Reason:         "new reason",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)

	got, _ := entryRepo.GetByID(ctx, rejected.ID)
	assert.Equal(t, timesheet.StatusRejected, got.Status)
	require.NotNil(t, got.RejectionReason)
	assert.Equal(t, "new reason", *got.RejectionReason)
}

func TestApprovalService_ApproveAfterReject_ClearsReason(t *testing.T) {
	entryRepo, _, _, svc := newWorkflowFixture()

	reason := "fix the project"
	rejected := draftEntry(testPerson, 8)
	rejected.Status = timesheet.StatusRejected
	rejected.RejectionReason = &reason
	rejected = entryRepo.put(rejected)

	ctx := actorContext(t, testManager, user.RoleManager)

	_, err := svc.Approve(ctx, monthFilter())
	require.NoError(t, err)

	got, _ := entryRepo.GetByID(ctx, rejected.ID)
	assert.Equal(t, timesheet.StatusApproved, got.Status)
	assert.Nil(t, got.RejectionReason)
}

func closeRequest() timesheet.ClosePeriodRequest {
	return timesheet.ClosePeriodRequest{
		PersonID: testPerson,
		From:     "2026-03-01",
		To:       "2026-03-31",
	}
}

func addMarchPeriod(calendarRepo *fakeCalendarRepo) {
	start, _ := time.Parse("2006-01-02", "2026-03-01")
	end, _ := time.Parse("2006-01-02", "2026-03-31")
	calendarRepo.periods[testPeriod] = calendar.Period{
		ID:        testPeriod,
		PersonID:  testPerson,
		StartDate: start,
		EndDate:   end,
	}
}

func TestApprovalService_ClosePeriod_HRRoleRequired(t *testing.T) {
	_, _, _, svc := newWorkflowFixture()
	ctx := actorContext(t, testManager, user.RoleManager)

	_, err := svc.ClosePeriod(ctx, closeRequest())
	assert.ErrorIs(t, err, user.ErrHRAccessRequired)
}

func TestApprovalService_ClosePeriod_NothingToDo(t *testing.T) {
	_, calendarRepo, _, svc := newWorkflowFixture()
	addMarchPeriod(calendarRepo)

	ctx := actorContext(t, "hr-person", user.RoleHR)

	result, err := svc.ClosePeriod(ctx, closeRequest())
	require.NoError(t, err)
	assert.True(t, result.NothingToDo)
}

func TestApprovalService_ClosePeriod_PeriodNotFound(t *testing.T) {
	_, _, _, svc := newWorkflowFixture()
	ctx := actorContext(t, "hr-person", user.RoleHR)

	_, err := svc.ClosePeriod(ctx, closeRequest())
	assert.ErrorIs(t, err, calendar.ErrPeriodNotFound)
}

func TestApprovalService_ClosePeriod(t *testing.T) {
	entryRepo, calendarRepo, _, ledgerRepo, svc := newClosureFixture()
	addMarchPeriod(calendarRepo)

	banked := draftEntry(testPerson, 8)
	banked.Status = timesheet.StatusApproved
	banked.Buckets.OvertimeBanked = decimal.NewFromInt(2)
	banked = entryRepo.put(banked)

	plain := draftEntry(testPerson, 6)
	plain.Status = timesheet.StatusApproved
	plain = entryRepo.put(plain)

	ctx := actorContext(t, "hr-person", user.RoleHR)

	result, err := svc.ClosePeriod(ctx, closeRequest())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Updated)

	got, _ := entryRepo.GetByID(ctx, banked.ID)
	assert.Equal(t, timesheet.StatusClosed, got.Status)

	got, _ = entryRepo.GetByID(ctx, plain.ID)
	assert.Equal(t, timesheet.StatusClosed, got.Status)

	row, err := ledgerRepo.GetByTimeEntryID(ctx, banked.ID)
	require.NoError(t, err)
	assert.Equal(t, bank.TypeCredit, row.Type)
	assert.Equal(t, "2", row.Hours.String())

	_, err = ledgerRepo.GetByTimeEntryID(ctx, plain.ID)
	assert.ErrorIs(t, err, bank.ErrLedgerEntryNotFound, "entries without banked hours produce no ledger row")
}

func TestApprovalService_ClosePeriod_LedgerFailureAbortsBatch(t *testing.T) {
	entryRepo, calendarRepo, _, ledgerRepo, svc := newClosureFixture()
	addMarchPeriod(calendarRepo)

	first := draftEntry(testPerson, 8)
	first.Status = timesheet.StatusApproved
	first.Buckets.OvertimeBanked = decimal.NewFromInt(1)
	first = entryRepo.put(first)

	second := draftEntry(testPerson, 8)
	second.Status = timesheet.StatusApproved
	second.Buckets.OvertimeBanked = decimal.NewFromInt(3)
	second = entryRepo.put(second)

	ledgerRepo.failCreateFor = second.ID

	ctx := actorContext(t, "hr-person", user.RoleHR)

	_, err := svc.ClosePeriod(ctx, closeRequest())
	require.Error(t, err)

	var inconsistency *bank.LedgerInconsistencyError
	require.ErrorAs(t, err, &inconsistency)
	assert.Equal(t, second.ID, inconsistency.TimeEntryID)

	got, _ := entryRepo.GetByID(ctx, first.ID)
	assert.Equal(t, timesheet.StatusApproved, got.Status, "no entry closes when any ledger write fails")

	got, _ = entryRepo.GetByID(ctx, second.ID)
	assert.Equal(t, timesheet.StatusApproved, got.Status)
}

func TestApprovalService_BillPeriod(t *testing.T) {
	entryRepo, calendarRepo, _, svc := newWorkflowFixture()
	addMarchPeriod(calendarRepo)

	closed := draftEntry(testPerson, 8)
	closed.Status = timesheet.StatusClosed
	closed = entryRepo.put(closed)

	approved := draftEntry(testPerson, 4)
	approved.Status = timesheet.StatusApproved
	approved = entryRepo.put(approved)

	ctx := actorContext(t, "finance-person", user.RoleFinance)

	result, err := svc.BillPeriod(ctx, closeRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)

	got, _ := entryRepo.GetByID(ctx, closed.ID)
	assert.Equal(t, timesheet.StatusBilled, got.Status)

	got, _ = entryRepo.GetByID(ctx, approved.ID)
	assert.Equal(t, timesheet.StatusApproved, got.Status, "unclosed entries are not billable")
}

func TestApprovalService_BillPeriod_FinanceRoleRequired(t *testing.T) {
	_, calendarRepo, _, svc := newWorkflowFixture()
	addMarchPeriod(calendarRepo)

	ctx := actorContext(t, "hr-person", user.RoleHR)

	_, err := svc.BillPeriod(ctx, closeRequest())
	assert.ErrorIs(t, err, user.ErrFinanceAccessRequired)
}
