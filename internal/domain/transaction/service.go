package transaction

import (
	"context"
	"customer-registry/internal/pkg/apperrors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
)

// Ledger is a customer's transactions, newest first, with their sum.
type Ledger struct {
	Transactions []*Transaction
	Total        decimal.Decimal
}

func NewLedger(txns []*Transaction) *Ledger {
	total := decimal.Zero
	for _, t := range txns {
		total = total.Add(t.Amount)
	}
	if txns == nil {
		txns = []*Transaction{}
	}
	return &Ledger{Transactions: txns, Total: total}
}

type TransactionService interface {
	ListTransactions(ctx context.Context, customerID string) (*Ledger, error)
}

type transactionService struct {
	repo   Repository
	logger *slog.Logger
}

func NewTransactionService(repo Repository, logger *slog.Logger) TransactionService {
	if repo == nil {
		panic("transaction repository cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &transactionService{repo: repo, logger: logger.With(slog.String("component", "transactionService"))}
}

func (s *transactionService) ListTransactions(ctx context.Context, customerID string) (*Ledger, error) {
	exists, err := s.repo.CustomerExists(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up customer %s: %w", customerID, err)
	}
	if !exists {
		s.logger.WarnContext(ctx, "Customer not found for transaction listing", slog.String("customerID", customerID))
		return nil, apperrors.ErrCustomerNotFound
	}

	txns, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing transactions", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list transactions for customer %s: %w", customerID, err)
	}
	return NewLedger(txns), nil
}
