package http

import (
	"net/http"

	"github.com/chronoworks/timesheet-backend-go/internal/domain/calendar"
	"github.com/chronoworks/timesheet-backend-go/internal/handler/http/response"
	"github.com/chronoworks/timesheet-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type CalendarHandler interface {
	ListMyPeriods(w http.ResponseWriter, r *http.Request)
	PeriodSummary(w http.ResponseWriter, r *http.Request)
	HRRoster(w http.ResponseWriter, r *http.Request)
}

type calendarHandlerImpl struct {
	calendarService calendar.CalendarService
}

func NewCalendarHandler(calendarService calendar.CalendarService) CalendarHandler {
	return &calendarHandlerImpl{
		calendarService: calendarService,
	}
}

// ListMyPeriods implements CalendarHandler.
func (h *calendarHandlerImpl) ListMyPeriods(w http.ResponseWriter, r *http.Request) {
	result, err := h.calendarService.ListMyPeriods(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// PeriodSummary implements CalendarHandler.
func (h *calendarHandlerImpl) PeriodSummary(w http.ResponseWriter, r *http.Request) {
	periodID := chi.URLParam(r, "id")
	if !validator.IsValidUUID(periodID) {
		response.BadRequest(w, "Invalid period id", nil)
		return
	}

	result, err := h.calendarService.PeriodSummary(r.Context(), periodID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// HRRoster implements CalendarHandler.
func (h *calendarHandlerImpl) HRRoster(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	if _, ok := validator.IsValidDate(from); !ok {
		response.BadRequest(w, "Query parameter 'from' must be in YYYY-MM-DD format", nil)
		return
	}
	if _, ok := validator.IsValidDate(to); !ok {
		response.BadRequest(w, "Query parameter 'to' must be in YYYY-MM-DD format", nil)
		return
	}

	result, err := h.calendarService.HRRoster(r.Context(), from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
