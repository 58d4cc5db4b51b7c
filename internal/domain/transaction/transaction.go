package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is an immutable ledger entry owned by a customer. The API only
// reads transactions; they are written by seeding or by upstream systems.
type Transaction struct {
	ID         string
	CustomerID string
	Detail     string
	Amount     decimal.Decimal
	CreatedAt  time.Time
}

func NewTransaction(customerID, detail string, amount decimal.Decimal) *Transaction {
	return &Transaction{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		Detail:     detail,
		Amount:     amount,
		CreatedAt:  time.Now(),
	}
}

type Repository interface {
	CustomerExists(ctx context.Context, customerID string) (bool, error)

	ListByCustomer(ctx context.Context, customerID string) ([]*Transaction, error)
}
