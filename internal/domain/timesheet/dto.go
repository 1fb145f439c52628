package timesheet

import (
	"github.com/chronoworks/timesheet-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// CLASSIFIER INPUT / OUTPUT
// ========================================

// ExtraDestination routes excess hours: paid out or banked as credit.
type ExtraDestination string

const (
	ExtraPaid   ExtraDestination = "paid"
	ExtraBanked ExtraDestination = "banked"
)

// AbsenceKind routes absence hours: excused paid, unpaid, or debited from
// the hour bank.
type AbsenceKind string

const (
	AbsencePaid   AbsenceKind = "paid"
	AbsenceUnpaid AbsenceKind = "unpaid"
	AbsenceBanked AbsenceKind = "banked"
)

// ClassifyInput is the raw hour input for one entry before classification.
type ClassifyInput struct {
	NormalHours      decimal.Decimal
	ExtraHours       decimal.Decimal
	ExtraDestination ExtraDestination
	AbsenceHours     decimal.Decimal
	AbsenceKind      AbsenceKind
	Justification    string
}

// DaySoFar is the person's already-persisted totals for the day, aggregated
// from non-rejected entries.
type DaySoFar struct {
	UsedNormal decimal.Decimal
	UsedTotal  decimal.Decimal
}

// Classification is a successful verdict: the finalized buckets plus the
// justification with audit tags prepended.
type Classification struct {
	Buckets       HourBuckets
	Justification string
}

// ========================================
// ENTRY DTOs
// ========================================

type CreateEntryRequest struct {
	Date             string  `json:"date"`
	ProjectID        string  `json:"project_id"`
	NormalHours      float64 `json:"normal_hours"`
	ExtraHours       float64 `json:"extra_hours"`
	ExtraDestination string  `json:"extra_destination,omitempty"`
	AbsenceHours     float64 `json:"absence_hours"`
	AbsenceKind      string  `json:"absence_kind,omitempty"`
	Justification    string  `json:"justification,omitempty"`
}

func (r *CreateEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.ProjectID) {
		errs = append(errs, validator.ValidationError{
			Field:   "project_id",
			Message: "project_id is required",
		})
	}

	if r.NormalHours < 0 || r.ExtraHours < 0 || r.AbsenceHours < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "hours",
			Message: "hour values cannot be negative",
		})
	}

	if r.NormalHours == 0 && r.ExtraHours == 0 && r.AbsenceHours == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "hours",
			Message: "at least one hour value is required",
		})
	}

	if r.ExtraHours > 0 && !validator.IsInSlice(r.ExtraDestination, []string{string(ExtraPaid), string(ExtraBanked)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "extra_destination",
			Message: "extra_destination must be 'paid' or 'banked'",
		})
	}

	if r.AbsenceHours > 0 && !validator.IsInSlice(r.AbsenceKind, []string{string(AbsencePaid), string(AbsenceUnpaid), string(AbsenceBanked)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "absence_kind",
			Message: "absence_kind must be 'paid', 'unpaid' or 'banked'",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateEntryRequest struct {
	ID string `json:"-"`
	CreateEntryRequest
}

type EntryResponse struct {
	ID              string  `json:"id"`
	PersonID        string  `json:"person_id"`
	PeriodID        string  `json:"period_id"`
	DayID           string  `json:"day_id"`
	Date            string  `json:"date"`
	ProjectID       string  `json:"project_id"`
	ProjectName     *string `json:"project_name,omitempty"`
	NormalHours     float64 `json:"normal_hours"`
	OvertimePaid    float64 `json:"overtime_paid"`
	OvertimeBanked  float64 `json:"overtime_banked"`
	AbsencePaid     float64 `json:"absence_paid"`
	AbsenceUnpaid   float64 `json:"absence_unpaid"`
	Status          string  `json:"status"`
	Justification   string  `json:"justification,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}

// ProjectOption is an allocation the person may log against on the day.
type ProjectOption struct {
	ProjectID   string `json:"project_id"`
	ProjectName string `json:"project_name"`
}

// DayEntriesResponse is the day detail: the person's entries for the date
// plus the projects they are allocated to on that date.
type DayEntriesResponse struct {
	Date     string          `json:"date"`
	Entries  []EntryResponse `json:"entries"`
	Projects []ProjectOption `json:"projects"`
}

type DayQuotaResponse struct {
	PeriodID             string  `json:"period_id"`
	DayID                string  `json:"day_id"`
	Date                 string  `json:"date"`
	DayType              string  `json:"day_type"`
	ContractedDailyHours float64 `json:"contracted_daily_hours"`
	UsedNormal           float64 `json:"used_normal"`
	RemainingNormal      float64 `json:"remaining_normal"`
}

// ========================================
// WORKFLOW DTOs
// ========================================

// BatchResult is the aggregate outcome of a batch transition. An empty
// matching set is success with NothingToDo set, not an error.
type BatchResult struct {
	Updated     int  `json:"updated"`
	NothingToDo bool `json:"nothing_to_do"`
}

// ApprovalFilter selects submitted work for a manager decision.
type ApprovalFilter struct {
	PersonID  string `json:"person_id"`
	ProjectID string `json:"project_id"`
	From      string `json:"from"`
	To        string `json:"to"`
}

func (f *ApprovalFilter) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(f.ProjectID) {
		errs = append(errs, validator.ValidationError{
			Field:   "project_id",
			Message: "project_id is required",
		})
	}

	if _, ok := validator.IsValidDate(f.From); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "from must be in YYYY-MM-DD format",
		})
	}

	if _, ok := validator.IsValidDate(f.To); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RejectRequest struct {
	ApprovalFilter
	Reason string `json:"reason"`
}

func (r *RejectRequest) Validate() error {
	if err := r.ApprovalFilter.Validate(); err != nil {
		return err
	}

	if validator.IsEmpty(r.Reason) {
		return validator.ValidationErrors{{
			Field:   "reason",
			Message: "a rejection reason is required",
		}}
	}

	return nil
}

type ClosePeriodRequest struct {
	PersonID string `json:"person_id"`
	From     string `json:"from"`
	To       string `json:"to"`
}

func (r *ClosePeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PersonID) {
		errs = append(errs, validator.ValidationError{
			Field:   "person_id",
			Message: "person_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.From); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "from must be in YYYY-MM-DD format",
		})
	}

	if _, ok := validator.IsValidDate(r.To); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
