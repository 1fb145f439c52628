package timesheet

import (
	"strings"

	"github.com/chronoworks/timesheet-backend-go/internal/domain/timesheet"
	"github.com/shopspring/decimal"
)

// All quota and overtime rules live here; callers must never re-derive
// thresholds.
var (
	// QuotaTolerance absorbs float noise when comparing against the
	// contracted limit. Fixed at 0.01h.
	QuotaTolerance = decimal.NewFromFloat(0.01)

	// DailyCeiling is the sanity limit for one person's total hours per day.
	DailyCeiling = decimal.NewFromInt(24)

	granularity = decimal.NewFromFloat(0.5)
	two         = decimal.NewFromInt(2)
)

// Audit tags prepended to the justification, mirroring how entries are
// reviewed later: the tag tells the approver where the hours went.
const (
	tagOvertimePaid   = "[Overtime:Paid]"
	tagOvertimeBanked = "[Overtime:Banked]"
	tagAbsenceBanked  = "[Absence:Banked]"
)

// Classifier splits raw input hours into the five hour buckets and enforces
// the quota invariants. Pure: no I/O, no clock.
type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

// roundToHalfHour rounds to the nearest 0.5h, ties away from zero.
func roundToHalfHour(v decimal.Decimal) decimal.Decimal {
	return v.Mul(two).Round(0).Div(two)
}

// Classify validates one proposed entry against the person's contracted
// daily limit and the day's already-logged totals.
//
// Verdicts are returned as typed errors: ErrInvalidGranularity,
// *QuotaExceededError, *NormalIncompleteError, ErrDailyCeilingExceeded.
// A nil error is the Ok verdict.
func (c *Classifier) Classify(input timesheet.ClassifyInput, daySoFar timesheet.DaySoFar, contractedDailyHours decimal.Decimal) (timesheet.Classification, error) {
	normal, err := c.round(input.NormalHours)
	if err != nil {
		return timesheet.Classification{}, err
	}
	extra, err := c.round(input.ExtraHours)
	if err != nil {
		return timesheet.Classification{}, err
	}
	absence, err := c.round(input.AbsenceHours)
	if err != nil {
		return timesheet.Classification{}, err
	}

	// Daily normal-hour quota
	projectedNormal := daySoFar.UsedNormal.Add(normal)
	if projectedNormal.GreaterThan(contractedDailyHours.Add(QuotaTolerance)) {
		remaining := contractedDailyHours.Sub(daySoFar.UsedNormal)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}
		return timesheet.Classification{}, &timesheet.QuotaExceededError{
			Remaining: remaining,
			Limit:     contractedDailyHours,
		}
	}

	// Overtime gating: no extra hours of either destination while the
	// normal quota for the day is still open
	if extra.IsPositive() && projectedNormal.LessThan(contractedDailyHours.Sub(QuotaTolerance)) {
		return timesheet.Classification{}, &timesheet.NormalIncompleteError{
			Missing: contractedDailyHours.Sub(projectedNormal),
		}
	}

	buckets := timesheet.HourBuckets{
		Normal:         normal,
		OvertimePaid:   decimal.Zero,
		OvertimeBanked: decimal.Zero,
		AbsencePaid:    decimal.Zero,
		AbsenceUnpaid:  decimal.Zero,
	}

	justification := strings.TrimSpace(input.Justification)

	if extra.IsPositive() {
		switch input.ExtraDestination {
		case timesheet.ExtraBanked:
			buckets.OvertimeBanked = buckets.OvertimeBanked.Add(extra)
			justification = prependTag(justification, tagOvertimeBanked)
		default:
			buckets.OvertimePaid = extra
			justification = prependTag(justification, tagOvertimePaid)
		}
	}

	if absence.IsPositive() {
		switch input.AbsenceKind {
		case timesheet.AbsenceBanked:
			buckets.OvertimeBanked = buckets.OvertimeBanked.Sub(absence)
			justification = prependTag(justification, tagAbsenceBanked)
		case timesheet.AbsenceUnpaid:
			buckets.AbsenceUnpaid = absence
		default:
			buckets.AbsencePaid = absence
		}
	}

	// Sanity ceiling across every bucket already logged plus this entry
	dailyTotal := daySoFar.UsedTotal.Add(buckets.Total())
	if dailyTotal.GreaterThan(DailyCeiling) {
		return timesheet.Classification{}, timesheet.ErrDailyCeilingExceeded
	}

	return timesheet.Classification{
		Buckets:       buckets,
		Justification: justification,
	}, nil
}

// round applies half-hour granularity. A non-zero raw value that rounds to
// zero is below the minimum loggable unit.
func (c *Classifier) round(v decimal.Decimal) (decimal.Decimal, error) {
	rounded := roundToHalfHour(v)
	if rounded.IsZero() && !v.IsZero() {
		return decimal.Zero, timesheet.ErrInvalidGranularity
	}
	return rounded, nil
}

func prependTag(justification, tag string) string {
	if strings.Contains(justification, tag) {
		return justification
	}
	if justification == "" {
		return tag
	}
	return tag + " " + justification
}
