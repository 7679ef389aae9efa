package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/bancaore-backend-go/internal/domain/ledger"
	"github.com/cmlabs-hris/bancaore-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LedgerHandler interface {
	GetMyBalance(w http.ResponseWriter, r *http.Request)
	GetUserBalance(w http.ResponseWriter, r *http.Request)
	ListTransactions(w http.ResponseWriter, r *http.Request)
	ListDebtors(w http.ResponseWriter, r *http.Request)
	GetDebtSummary(w http.ResponseWriter, r *http.Request)
	AddManualCredit(w http.ResponseWriter, r *http.Request)
}

type ledgerHandlerImpl struct {
	ledgerService ledger.LedgerService
}

func NewLedgerHandler(ledgerService ledger.LedgerService) LedgerHandler {
	return &ledgerHandlerImpl{
		ledgerService: ledgerService,
	}
}

func parseBalanceQuery(r *http.Request) (ledger.BalanceQuery, bool) {
	year, ok := queryInt(r, "year")
	if !ok {
		return ledger.BalanceQuery{}, false
	}
	return ledger.BalanceQuery{
		Year:      year,
		StartDate: queryString(r, "start_date"),
		EndDate:   queryString(r, "end_date"),
	}, true
}

// GetMyBalance implements LedgerHandler.
func (h *ledgerHandlerImpl) GetMyBalance(w http.ResponseWriter, r *http.Request) {
	query, ok := parseBalanceQuery(r)
	if !ok {
		response.BadRequest(w, "year must be a number", nil)
		return
	}

	balance, err := h.ledgerService.GetMyBalance(r.Context(), query)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balance)
}

// GetUserBalance implements LedgerHandler.
func (h *ledgerHandlerImpl) GetUserBalance(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		response.BadRequest(w, "User ID is required", nil)
		return
	}

	query, ok := parseBalanceQuery(r)
	if !ok {
		response.BadRequest(w, "year must be a number", nil)
		return
	}

	balance, err := h.ledgerService.GetUserBalance(r.Context(), userID, query)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balance)
}

// ListTransactions implements LedgerHandler.
func (h *ledgerHandlerImpl) ListTransactions(w http.ResponseWriter, r *http.Request) {
	query, ok := parseBalanceQuery(r)
	if !ok {
		response.BadRequest(w, "year must be a number", nil)
		return
	}

	filter := ledger.TransactionFilter{
		UserID:       queryString(r, "user_id"),
		BalanceQuery: query,
	}

	transactions, err := h.ledgerService.ListTransactions(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, transactions)
}

// ListDebtors implements LedgerHandler.
func (h *ledgerHandlerImpl) ListDebtors(w http.ResponseWriter, r *http.Request) {
	threshold, ok := queryFloat(r, "threshold")
	if !ok {
		response.BadRequest(w, "threshold must be a number", nil)
		return
	}

	summary, err := h.ledgerService.GetDebtSummary(r.Context(), threshold)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary.EmployeesWithDebt)
}

// GetDebtSummary implements LedgerHandler.
func (h *ledgerHandlerImpl) GetDebtSummary(w http.ResponseWriter, r *http.Request) {
	threshold, ok := queryFloat(r, "threshold")
	if !ok {
		response.BadRequest(w, "threshold must be a number", nil)
		return
	}

	summary, err := h.ledgerService.GetDebtSummary(r.Context(), threshold)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// AddManualCredit implements LedgerHandler.
func (h *ledgerHandlerImpl) AddManualCredit(w http.ResponseWriter, r *http.Request) {
	var req ledger.ManualCreditRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("AddManualCredit decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	entry, err := h.ledgerService.AddManualCredit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Manual credit added successfully", entry)
}
