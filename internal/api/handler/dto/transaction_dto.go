package dto

import (
	"customer-registry/internal/domain/transaction"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionResponse struct {
	ID         string      `json:"id"`
	CustomerID string      `json:"customer_id"`
	Detail     string      `json:"detail"`
	Amount     json.Number `json:"amount" swaggertype:"number"`
	CreatedAt  time.Time   `json:"created_at"`
}

type LedgerResponse struct {
	Total        json.Number           `json:"total" swaggertype:"number"`
	Transactions []TransactionResponse `json:"transactions"`
}

// formatMoney renders an amount as a bare JSON number with two decimals.
func formatMoney(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

func NewTransactionResponse(t *transaction.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:         t.ID,
		CustomerID: t.CustomerID,
		Detail:     t.Detail,
		Amount:     formatMoney(t.Amount),
		CreatedAt:  t.CreatedAt,
	}
}

func NewTransactionResponses(txns []*transaction.Transaction) []TransactionResponse {
	resp := make([]TransactionResponse, 0, len(txns))
	for _, t := range txns {
		resp = append(resp, NewTransactionResponse(t))
	}
	return resp
}

func NewLedgerResponse(l *transaction.Ledger) LedgerResponse {
	return LedgerResponse{
		Total:        formatMoney(l.Total),
		Transactions: NewTransactionResponses(l.Transactions),
	}
}
