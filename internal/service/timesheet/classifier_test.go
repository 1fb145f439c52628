package timesheet

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/chronoworks/timesheet-backend-go/internal/domain/timesheet"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var eight = decimal.NewFromInt(8)

func classify(t *testing.T, input timesheet.ClassifyInput, daySoFar timesheet.DaySoFar, contracted decimal.Decimal) (timesheet.Classification, error) {
	t.Helper()
	return NewClassifier().Classify(input, daySoFar, contracted)
}

func TestClassifier_RoundToHalfHour(t *testing.T) {
	cases := []struct {
		raw      float64
		expected string
	}{
		{1.2, "1"},
		{1.3, "1.5"},
		{1.5, "1.5"},
		{1.7, "1.5"},
		{1.8, "2"},
		{1.25, "1.5"}, // tie rounds up
		{0.75, "1"},   // tie rounds up
		{8.0, "8"},
	}

	for _, tc := range cases {
		got := roundToHalfHour(decimal.NewFromFloat(tc.raw))
		assert.Equal(t, tc.expected, got.String(), "rounding %v", tc.raw)
	}
}

func TestClassifier_RoundingIsAppliedToInput(t *testing.T) {
	result, err := classify(t, timesheet.ClassifyInput{
		NormalHours: decimal.NewFromFloat(7.8),
	}, timesheet.DaySoFar{}, eight)
	require.NoError(t, err)

	assert.Equal(t, "8", result.Buckets.Normal.String())
}

func TestClassifier_GranularityTooSmall(t *testing.T) {
	_, err := classify(t, timesheet.ClassifyInput{
		NormalHours: decimal.NewFromFloat(0.2),
	}, timesheet.DaySoFar{}, eight)

	assert.ErrorIs(t, err, timesheet.ErrInvalidGranularity)
}

func TestClassifier_NormalDay(t *testing.T) {
	result, err := classify(t, timesheet.ClassifyInput{
		NormalHours: eight,
	}, timesheet.DaySoFar{}, eight)
	require.NoError(t, err)

	assert.Equal(t, "8", result.Buckets.Normal.String())
	assert.True(t, result.Buckets.OvertimePaid.IsZero())
	assert.True(t, result.Buckets.OvertimeBanked.IsZero())
	assert.Empty(t, result.Justification)
}

func TestClassifier_QuotaExceeded(t *testing.T) {
	_, err := classify(t, timesheet.ClassifyInput{
		NormalHours: decimal.NewFromInt(3),
	}, timesheet.DaySoFar{
		UsedNormal: decimal.NewFromInt(6),
		UsedTotal:  decimal.NewFromInt(6),
	}, eight)

	require.Error(t, err)
	assert.ErrorIs(t, err, timesheet.ErrNormalQuotaExceeded)

	var quotaErr *timesheet.QuotaExceededError
	require.ErrorAs(t, err, &quotaErr)
	assert.Equal(t, "2", quotaErr.Remaining.String())
	assert.Equal(t, "8", quotaErr.Limit.String())
}

func TestClassifier_QuotaExceeded_RemainingFloorsAtZero(t *testing.T) {
	_, err := classify(t, timesheet.ClassifyInput{
		NormalHours: decimal.NewFromInt(1),
	}, timesheet.DaySoFar{
		UsedNormal: decimal.NewFromInt(9),
		UsedTotal:  decimal.NewFromInt(9),
	}, eight)

	var quotaErr *timesheet.QuotaExceededError
	require.ErrorAs(t, err, &quotaErr)
	assert.Equal(t, "0", quotaErr.Remaining.String())
}

func TestClassifier_OvertimeBeforeQuotaFilled(t *testing.T) {
	for _, destination := range []timesheet.ExtraDestination{timesheet.ExtraPaid, timesheet.ExtraBanked} {
		_, err := classify(t, timesheet.ClassifyInput{
			NormalHours:      decimal.NewFromInt(4),
			ExtraHours:       decimal.NewFromInt(2),
			ExtraDestination: destination,
		}, timesheet.DaySoFar{}, eight)

		require.Error(t, err, "destination %s", destination)
		assert.ErrorIs(t, err, timesheet.ErrNormalIncomplete)

		var incompleteErr *timesheet.NormalIncompleteError
		require.ErrorAs(t, err, &incompleteErr)
		assert.Equal(t, "4", incompleteErr.Missing.String())
	}
}

func TestClassifier_OvertimePaid(t *testing.T) {
	result, err := classify(t, timesheet.ClassifyInput{
		NormalHours:      eight,
		ExtraHours:       decimal.NewFromInt(2),
		ExtraDestination: timesheet.ExtraPaid,
		Justification:    "release deployment",
	}, timesheet.DaySoFar{}, eight)
	require.NoError(t, err)

	assert.Equal(t, "2", result.Buckets.OvertimePaid.String())
	assert.True(t, result.Buckets.OvertimeBanked.IsZero())
	assert.Equal(t, "[Overtime:Paid] release deployment", result.Justification)
}

func TestClassifier_OvertimeBanked(t *testing.T) {
	result, err := classify(t, timesheet.ClassifyInput{
		NormalHours:      eight,
		ExtraHours:       decimal.NewFromInt(2),
		ExtraDestination: timesheet.ExtraBanked,
	}, timesheet.DaySoFar{}, eight)
	require.NoError(t, err)

	assert.Equal(t, "2", result.Buckets.OvertimeBanked.String())
	assert.True(t, result.Buckets.OvertimePaid.IsZero())
	assert.Equal(t, "[Overtime:Banked]", result.Justification)
}

func TestClassifier_OvertimeOnFilledDay(t *testing.T) {
	// Normal quota already consumed by earlier entries; a pure overtime
	// entry is allowed.
	result, err := classify(t, timesheet.ClassifyInput{
		ExtraHours:       decimal.NewFromFloat(1.5),
		ExtraDestination: timesheet.ExtraPaid,
	}, timesheet.DaySoFar{
		UsedNormal: eight,
		UsedTotal:  eight,
	}, eight)
	require.NoError(t, err)

	assert.Equal(t, "1.5", result.Buckets.OvertimePaid.String())
}

func TestClassifier_AbsencePaid(t *testing.T) {
	result, err := classify(t, timesheet.ClassifyInput{
		AbsenceHours: eight,
		AbsenceKind:  timesheet.AbsencePaid,
	}, timesheet.DaySoFar{}, eight)
	require.NoError(t, err)

	assert.Equal(t, "8", result.Buckets.AbsencePaid.String())
	assert.True(t, result.Buckets.OvertimeBanked.IsZero())
}

func TestClassifier_AbsenceUnpaid(t *testing.T) {
	result, err := classify(t, timesheet.ClassifyInput{
		AbsenceHours: decimal.NewFromInt(4),
		AbsenceKind:  timesheet.AbsenceUnpaid,
	}, timesheet.DaySoFar{}, eight)
	require.NoError(t, err)

	assert.Equal(t, "4", result.Buckets.AbsenceUnpaid.String())
}

func TestClassifier_AbsenceBankedDebitsTheBank(t *testing.T) {
	result, err := classify(t, timesheet.ClassifyInput{
		NormalHours:  decimal.NewFromInt(5),
		AbsenceHours: decimal.NewFromInt(3),
		AbsenceKind:  timesheet.AbsenceBanked,
	}, timesheet.DaySoFar{}, eight)
	require.NoError(t, err)

	assert.Equal(t, "-3", result.Buckets.OvertimeBanked.String())
	assert.Equal(t, "5", result.Buckets.Normal.String())
	assert.Equal(t, "[Absence:Banked]", result.Justification)
}

func TestClassifier_BankedCreditAndDebitNet(t *testing.T) {
	// Extra banked plus absence banked in one entry nets inside the
	// signed bucket.
	result, err := classify(t, timesheet.ClassifyInput{
		NormalHours:      eight,
		ExtraHours:       decimal.NewFromInt(2),
		ExtraDestination: timesheet.ExtraBanked,
		AbsenceHours:     decimal.NewFromFloat(0.5),
		AbsenceKind:      timesheet.AbsenceBanked,
	}, timesheet.DaySoFar{}, eight)
	require.NoError(t, err)

	assert.Equal(t, "1.5", result.Buckets.OvertimeBanked.String())
}

func TestClassifier_DailyCeiling(t *testing.T) {
	_, err := classify(t, timesheet.ClassifyInput{
		NormalHours: decimal.NewFromInt(5),
	}, timesheet.DaySoFar{
		UsedNormal: decimal.NewFromInt(4),
		UsedTotal:  decimal.NewFromInt(20),
	}, decimal.NewFromInt(10))

	assert.ErrorIs(t, err, timesheet.ErrDailyCeilingExceeded)
}

func TestClassifier_TagNotDuplicated(t *testing.T) {
	result, err := classify(t, timesheet.ClassifyInput{
		NormalHours:      eight,
		ExtraHours:       decimal.NewFromInt(1),
		ExtraDestination: timesheet.ExtraPaid,
		Justification:    "[Overtime:Paid] already tagged",
	}, timesheet.DaySoFar{}, eight)
	require.NoError(t, err)

	assert.Equal(t, "[Overtime:Paid] already tagged", result.Justification)
}

func TestClassifier_QuotaHoldsUnderRandomLoads(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		used := decimal.NewFromFloat(float64(r.Intn(17)) * 0.5)
		normal := decimal.NewFromFloat(float64(r.Intn(17)) * 0.5)

		result, err := classify(t, timesheet.ClassifyInput{
			NormalHours: normal,
		}, timesheet.DaySoFar{UsedNormal: used, UsedTotal: used}, eight)

		projected := used.Add(normal)
		if projected.GreaterThan(eight.Add(QuotaTolerance)) {
			assert.ErrorIs(t, err, timesheet.ErrNormalQuotaExceeded,
				"used=%s normal=%s", used, normal)
			continue
		}
		if normal.IsZero() {
			// zero-hour entries pass classification; the handler-level
			// validation rejects them earlier
			continue
		}
		require.NoError(t, err, "used=%s normal=%s", used, normal)
		assert.True(t, result.Buckets.Normal.Equal(normal))
	}
}

func TestClassifier_VerdictsAreDistinguishable(t *testing.T) {
	_, quotaErr := classify(t, timesheet.ClassifyInput{
		NormalHours: decimal.NewFromInt(9),
	}, timesheet.DaySoFar{}, eight)

	_, incompleteErr := classify(t, timesheet.ClassifyInput{
		NormalHours:      decimal.NewFromInt(2),
		ExtraHours:       decimal.NewFromInt(1),
		ExtraDestination: timesheet.ExtraPaid,
	}, timesheet.DaySoFar{}, eight)

	assert.False(t, errors.Is(quotaErr, timesheet.ErrNormalIncomplete))
	assert.False(t, errors.Is(incompleteErr, timesheet.ErrNormalQuotaExceeded))
}
