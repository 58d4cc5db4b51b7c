package postgres

import (
	"context"
	"customer-registry/internal/domain/transaction"
	"customer-registry/internal/pkg/apperrors"
	"fmt"
	"log/slog"
	"os"
	"time"
)

const (
	listTransactionsQuery = `
        SELECT id, customer_id, detail, amount, created_at
        FROM transactions
        WHERE customer_id = $1
        ORDER BY created_at DESC`

	countTransactionsQuery = `SELECT COUNT(*) FROM transactions WHERE customer_id = $1`

	insertTransactionQuery = `
        INSERT INTO transactions (id, customer_id, detail, amount, created_at)
        VALUES ($1, $2, $3, $4, NOW())
        RETURNING created_at`
)

type TransactionRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ transaction.Repository = (*TransactionRepository)(nil)

func NewTransactionRepository(db DBPool, logger *slog.Logger) *TransactionRepository {
	if db == nil {
		panic("DBPool cannot be nil for TransactionRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}
	return &TransactionRepository{
		db:     db,
		logger: logger.With("component", "TransactionRepository"),
	}
}

func (r *TransactionRepository) CustomerExists(ctx context.Context, customerID string) (exists bool, err error) {
	defer observe("customer_exists", time.Now(), &err)

	if err = r.db.QueryRow(ctx, customerExistsQuery, customerID).Scan(&exists); err != nil {
		r.logger.ErrorContext(ctx, "Failed to check customer existence", slog.Any("error", err))
		return false, fmt.Errorf("%w: failed to check customer existence: %w", apperrors.ErrDatabase, err)
	}
	return exists, nil
}

func (r *TransactionRepository) ListByCustomer(ctx context.Context, customerID string) (txns []*transaction.Transaction, err error) {
	defer observe("transaction_list", time.Now(), &err)
	return listTransactions(ctx, r.db, r.logger, customerID)
}

func listTransactions(ctx context.Context, q querier, logger *slog.Logger, customerID string) ([]*transaction.Transaction, error) {
	rows, err := q.Query(ctx, listTransactionsQuery, customerID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to query transactions", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query transactions: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	txns := make([]*transaction.Transaction, 0)
	for rows.Next() {
		var t transaction.Transaction
		if err := rows.Scan(&t.ID, &t.CustomerID, &t.Detail, &t.Amount, &t.CreatedAt); err != nil {
			logger.ErrorContext(ctx, "Failed to scan transaction row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan transaction row: %w", apperrors.ErrDatabase, err)
		}
		txns = append(txns, &t)
	}
	if err := rows.Err(); err != nil {
		logger.ErrorContext(ctx, "Error iterating transaction rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating transaction rows: %w", apperrors.ErrDatabase, err)
	}
	return txns, nil
}

func countTransactions(ctx context.Context, q querier, logger *slog.Logger, customerID string) (int, error) {
	var count int
	if err := q.QueryRow(ctx, countTransactionsQuery, customerID).Scan(&count); err != nil {
		logger.ErrorContext(ctx, "Failed to count transactions", slog.Any("error", err))
		return 0, fmt.Errorf("%w: failed to count transactions: %w", apperrors.ErrDatabase, err)
	}
	return count, nil
}

func insertTransaction(ctx context.Context, q querier, logger *slog.Logger, t *transaction.Transaction) error {
	if err := q.QueryRow(ctx, insertTransactionQuery, t.ID, t.CustomerID, t.Detail, t.Amount).Scan(&t.CreatedAt); err != nil {
		logger.ErrorContext(ctx, "Failed to insert transaction", slog.Any("error", err))
		return translateDBError(err, logger)
	}
	return nil
}
