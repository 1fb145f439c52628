package http

import (
	"net/http"

	"github.com/chronoworks/timesheet-backend-go/internal/domain/bank"
	"github.com/chronoworks/timesheet-backend-go/internal/handler/http/response"
)

type BankHandler interface {
	Balance(w http.ResponseWriter, r *http.Request)
	Statement(w http.ResponseWriter, r *http.Request)
}

type bankHandlerImpl struct {
	ledgerService bank.LedgerService
}

func NewBankHandler(ledgerService bank.LedgerService) BankHandler {
	return &bankHandlerImpl{
		ledgerService: ledgerService,
	}
}

// Balance implements BankHandler.
func (h *bankHandlerImpl) Balance(w http.ResponseWriter, r *http.Request) {
	result, err := h.ledgerService.Balance(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Statement implements BankHandler.
func (h *bankHandlerImpl) Statement(w http.ResponseWriter, r *http.Request) {
	result, err := h.ledgerService.Statement(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
