package http

import (
	"encoding/json"
	"net/http"

	"github.com/chronoworks/timesheet-backend-go/internal/domain/timesheet"
	"github.com/chronoworks/timesheet-backend-go/internal/handler/http/response"
	"github.com/chronoworks/timesheet-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type TimeEntryHandler interface {
	GetDailyQuota(w http.ResponseWriter, r *http.Request)
	SubmitEntry(w http.ResponseWriter, r *http.Request)
	UpdateEntry(w http.ResponseWriter, r *http.Request)
	ListDayEntries(w http.ResponseWriter, r *http.Request)
	DeleteEntry(w http.ResponseWriter, r *http.Request)
	SubmitDay(w http.ResponseWriter, r *http.Request)
	SubmitPeriod(w http.ResponseWriter, r *http.Request)
}

type timeEntryHandlerImpl struct {
	entryService timesheet.TimeEntryService
}

func NewTimeEntryHandler(entryService timesheet.TimeEntryService) TimeEntryHandler {
	return &timeEntryHandlerImpl{
		entryService: entryService,
	}
}

// GetDailyQuota implements TimeEntryHandler.
func (h *timeEntryHandlerImpl) GetDailyQuota(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	result, err := h.entryService.GetDailyQuota(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SubmitEntry implements TimeEntryHandler.
func (h *timeEntryHandlerImpl) SubmitEntry(w http.ResponseWriter, r *http.Request) {
	var req timesheet.CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.entryService.SubmitEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Time entry created", result)
}

// UpdateEntry implements TimeEntryHandler.
func (h *timeEntryHandlerImpl) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	var req timesheet.UpdateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")
	if !validator.IsValidUUID(req.ID) {
		response.BadRequest(w, "Invalid entry id", nil)
		return
	}

	result, err := h.entryService.UpdateEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Time entry updated", result)
}

// ListDayEntries implements TimeEntryHandler.
func (h *timeEntryHandlerImpl) ListDayEntries(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	result, err := h.entryService.ListDayEntries(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DeleteEntry implements TimeEntryHandler.
func (h *timeEntryHandlerImpl) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Invalid entry id", nil)
		return
	}

	if err := h.entryService.DeleteEntry(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Time entry deleted", nil)
}

// SubmitDay implements TimeEntryHandler.
func (h *timeEntryHandlerImpl) SubmitDay(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	result, err := h.entryService.SubmitDay(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Day submitted", result)
}

// SubmitPeriod implements TimeEntryHandler.
func (h *timeEntryHandlerImpl) SubmitPeriod(w http.ResponseWriter, r *http.Request) {
	periodID := chi.URLParam(r, "id")
	if !validator.IsValidUUID(periodID) {
		response.BadRequest(w, "Invalid period id", nil)
		return
	}

	result, err := h.entryService.SubmitPeriod(r.Context(), periodID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Period submitted", result)
}
