package handler

import (
	"customer-registry/internal/api/handler/dto"
	"customer-registry/internal/domain/transaction"
	"log/slog"
	"net/http"
)

type TransactionHandler struct {
	service transaction.TransactionService
	logger  *slog.Logger
}

func NewTransactionHandler(s transaction.TransactionService, l *slog.Logger) *TransactionHandler {
	if s == nil {
		panic("transaction service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &TransactionHandler{
		service: s,
		logger:  l.With("component", "TransactionHandler"),
	}
}

// ListTransactions handles GET /api/customers/{customerID}/transactions
// @Summary List a customer's transactions
// @Description Newest first, with the summed amount.
// @Tags Transactions
// @Produce json
// @Param customerID path string true "Customer ID"
// @Success 200 {object} dto.LedgerResponse "Transactions and total"
// @Failure 404 {object} dto.ErrorResponse "customer_not_found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/customers/{customerID}/transactions [get]
// @Security BearerAuth
func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	customerID, err := getIDFromURL(r, "customerID")
	if err != nil {
		respondError(w, err)
		return
	}
	logger := h.logger.With(slog.String("customerID", customerID))

	ledger, err := h.service.ListTransactions(r.Context(), customerID)
	if err != nil {
		logger.Log(r.Context(), logLevelFor(err), "Service failed to list transactions", slog.Any("error", err))
		respondOwnerError(w, err)
		return
	}

	logger.DebugContext(r.Context(), "Transactions listed", slog.Int("count", len(ledger.Transactions)))
	respondJSON(w, http.StatusOK, dto.NewLedgerResponse(ledger))
}
