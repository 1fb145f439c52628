package response

import (
	"errors"
	"net/http"

	"github.com/chronoworks/timesheet-backend-go/internal/domain/auth"
	"github.com/chronoworks/timesheet-backend-go/internal/domain/bank"
	"github.com/chronoworks/timesheet-backend-go/internal/domain/calendar"
	"github.com/chronoworks/timesheet-backend-go/internal/domain/person"
	"github.com/chronoworks/timesheet-backend-go/internal/domain/project"
	"github.com/chronoworks/timesheet-backend-go/internal/domain/timesheet"
	"github.com/chronoworks/timesheet-backend-go/internal/domain/user"
	"github.com/chronoworks/timesheet-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Quota verdicts carry the remaining allowance back to the client
	var quotaErr *timesheet.QuotaExceededError
	if errors.As(err, &quotaErr) {
		UnprocessableEntity(w, "QUOTA_EXCEEDED", quotaErr.Error(), map[string]string{
			"remaining": quotaErr.Remaining.String(),
			"limit":     quotaErr.Limit.String(),
		})
		return
	}

	var incompleteErr *timesheet.NormalIncompleteError
	if errors.As(err, &incompleteErr) {
		UnprocessableEntity(w, "NORMAL_QUOTA_INCOMPLETE", incompleteErr.Error(), map[string]string{
			"missing": incompleteErr.Missing.String(),
		})
		return
	}

	var transientErr *timesheet.TransientError
	if errors.As(err, &transientErr) {
		ServiceUnavailable(w, "A transient data store failure occurred, please retry")
		return
	}

	var ledgerErr *bank.LedgerInconsistencyError
	if errors.As(err, &ledgerErr) {
		InternalServerError(w, "Period closure aborted, no entry was closed")
		return
	}

	switch {
	// Auth / role errors
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrMissingClaims):
		Unauthorized(w, "Invalid or incomplete access token")
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "Manager role required")
	case errors.Is(err, user.ErrHRAccessRequired):
		Forbidden(w, "HR role required")
	case errors.Is(err, user.ErrFinanceAccessRequired):
		Forbidden(w, "Finance role required")

	// Calendar errors
	case errors.Is(err, calendar.ErrDayNotFound):
		NotFound(w, "No calendar day exists for this person and date")
	case errors.Is(err, calendar.ErrPeriodNotFound):
		NotFound(w, "Period not found")

	// Person / project errors
	case errors.Is(err, person.ErrPersonNotFound):
		NotFound(w, "Person not found")
	case errors.Is(err, project.ErrProjectNotFound):
		NotFound(w, "Project not found")
	case errors.Is(err, project.ErrNotAllocated):
		Forbidden(w, "Person is not allocated to this project on this date")
	case errors.Is(err, project.ErrNotProjectLead):
		Forbidden(w, "Only the project lead may decide on its entries")

	// Timesheet errors
	case errors.Is(err, timesheet.ErrEntryNotFound):
		NotFound(w, "Time entry not found")
	case errors.Is(err, timesheet.ErrNotEntryOwner):
		Forbidden(w, "Time entry belongs to another person")
	case errors.Is(err, timesheet.ErrInvalidGranularity):
		UnprocessableEntity(w, "INVALID_GRANULARITY", err.Error(), nil)
	case errors.Is(err, timesheet.ErrDailyCeilingExceeded):
		UnprocessableEntity(w, "DAILY_CEILING_EXCEEDED", err.Error(), nil)
	case errors.Is(err, timesheet.ErrDayLocked):
		Conflict(w, "DAY_LOCKED", "The day is locked: a sibling entry has already been submitted")
	case errors.Is(err, timesheet.ErrEntryImmutable):
		Conflict(w, "ENTRY_IMMUTABLE", "Closed or billed entries cannot be modified")
	case errors.Is(err, timesheet.ErrWorkflowViolation):
		Conflict(w, "WORKFLOW_VIOLATION", "The requested status transition is not allowed")

	// Bank errors
	case errors.Is(err, bank.ErrLedgerEntryNotFound):
		NotFound(w, "Bank ledger entry not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
