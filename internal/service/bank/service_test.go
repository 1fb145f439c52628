package bank

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/chronoworks/timesheet-backend-go/internal/domain/bank"
	"github.com/chronoworks/timesheet-backend-go/internal/domain/timesheet"
	"github.com/chronoworks/timesheet-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLedgerRepo struct {
	rows map[string]bank.LedgerEntry // keyed by time entry id
	seq  int
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{rows: make(map[string]bank.LedgerEntry)}
}

func (f *fakeLedgerRepo) Create(ctx context.Context, entry bank.LedgerEntry) (bank.LedgerEntry, error) {
	f.seq++
	entry.ID = fmt.Sprintf("ledger-%d", f.seq)
	entry.CreatedAt = time.Now()
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

func actorContext(t *testing.T, personID string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret-key"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"person_id": personID,
		"name":      "Test Person",
		"role":      string(user.RoleCollaborator),
		"type":      "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func bankedEntry(id, personID string, banked float64) timesheet.TimeEntry {
	date, _ := time.Parse("2006-01-02", "2026-03-02")
	return timesheet.TimeEntry{
		ID:       id,
		PersonID: personID,
		Date:     date,
		Status:   timesheet.StatusApproved,
		Buckets: timesheet.HourBuckets{
			Normal:         decimal.NewFromInt(8),
			OvertimePaid:   decimal.Zero,
			OvertimeBanked: decimal.NewFromFloat(banked),
			AbsencePaid:    decimal.Zero,
			AbsenceUnpaid:  decimal.Zero,
		},
	}
}

func TestLedgerService_Materialize_NoBankedHours(t *testing.T) {
	repo := newFakeLedgerRepo()
	svc := NewLedgerService(repo)

	row, err := svc.Materialize(context.Background(), bankedEntry("entry-1", "person-1", 0))
	require.NoError(t, err)

	assert.Nil(t, row)
	assert.Empty(t, repo.rows)
}

func TestLedgerService_Materialize_Credit(t *testing.T) {
	repo := newFakeLedgerRepo()
	svc := NewLedgerService(repo)

	row, err := svc.Materialize(context.Background(), bankedEntry("entry-1", "person-1", 2))
	require.NoError(t, err)
	require.NotNil(t, row)

	assert.Equal(t, bank.TypeCredit, row.Type)
	assert.Equal(t, "2", row.Hours.String())
	assert.Equal(t, "entry-1", row.TimeEntryID)
	assert.Equal(t, "2026-03-02", row.WorkDate.Format("2006-01-02"))
}

func TestLedgerService_Materialize_Debit(t *testing.T) {
	repo := newFakeLedgerRepo()
	svc := NewLedgerService(repo)

	row, err := svc.Materialize(context.Background(), bankedEntry("entry-1", "person-1", -3))
	require.NoError(t, err)
	require.NotNil(t, row)

	assert.Equal(t, bank.TypeDebit, row.Type)
	assert.Equal(t, "3", row.Hours.String(), "ledger stores the magnitude")
	assert.Equal(t, "-3", row.Signed().String())
}

func TestLedgerService_Materialize_Idempotent(t *testing.T) {
	repo := newFakeLedgerRepo()
	svc := NewLedgerService(repo)
	entry := bankedEntry("entry-1", "person-1", 2)

	first, err := svc.Materialize(context.Background(), entry)
	require.NoError(t, err)

	second, err := svc.Materialize(context.Background(), entry)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "retry returns the existing row")
	assert.Len(t, repo.rows, 1)

	balance, _ := repo.SumByPerson(context.Background(), "person-1")
	assert.Equal(t, "2", balance.String(), "no double counting")
}

func TestLedgerService_Balance(t *testing.T) {
	repo := newFakeLedgerRepo()
	svc := NewLedgerService(repo)
	ctx := context.Background()

	_, err := svc.Materialize(ctx, bankedEntry("entry-1", "person-1", 2))
	require.NoError(t, err)
	_, err = svc.Materialize(ctx, bankedEntry("entry-2", "person-1", -0.5))
	require.NoError(t, err)
	_, err = svc.Materialize(ctx, bankedEntry("entry-3", "someone-else", 4))
	require.NoError(t, err)

	result, err := svc.Balance(actorContext(t, "person-1"))
	require.NoError(t, err)

	assert.Equal(t, "person-1", result.PersonID)
	assert.Equal(t, 1.5, result.Balance)
}

func TestLedgerService_Statement(t *testing.T) {
	repo := newFakeLedgerRepo()
	svc := NewLedgerService(repo)
	ctx := context.Background()

	_, err := svc.Materialize(ctx, bankedEntry("entry-1", "person-1", 2))
	require.NoError(t, err)
	_, err = svc.Materialize(ctx, bankedEntry("entry-2", "person-1", -1))
	require.NoError(t, err)

	result, err := svc.Statement(actorContext(t, "person-1"))
	require.NoError(t, err)

	assert.Equal(t, 1.0, result.Balance)
	assert.Len(t, result.Rows, 2)

	types := map[string]float64{}
	for _, row := range result.Rows {
		types[row.Type] = row.Hours
	}
	assert.Equal(t, 2.0, types["credit"])
	assert.Equal(t, 1.0, types["debit"])
}
