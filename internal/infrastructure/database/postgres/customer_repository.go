package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"customer-registry/internal/domain/address"
	"customer-registry/internal/domain/customer"
	"customer-registry/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

const (
	insertCustomerQuery = `
        INSERT INTO customers (id, first_name, last_name, phone, city, state, pincode, email, account_type, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
        RETURNING created_at, updated_at`

	findCustomerQuery = `SELECT ` + customerColumns + ` FROM customers c WHERE c.id = $1`

	lockCustomerQuery = `SELECT id FROM customers WHERE id = $1 FOR UPDATE`

	deleteCustomerQuery = `DELETE FROM customers WHERE id = $1`

	emailTakenQuery = `SELECT EXISTS (SELECT 1 FROM customers WHERE email = $1 AND id <> $2)`
)

type CustomerRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ customer.Repository = (*CustomerRepository)(nil)

func NewCustomerRepository(db DBPool, logger *slog.Logger) *CustomerRepository {
	if db == nil {
		panic("DBPool cannot be nil for CustomerRepository")
	}
	if logger == nil {

		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerRepository, using default stderr handler")
	}
	return &CustomerRepository{
		db:     db,
		logger: logger.With("component", "CustomerRepository"),
	}
}

func (r *CustomerRepository) Create(ctx context.Context, cust *customer.Customer, primary *address.Address) (err error) {
	if cust == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}
	defer observe("customer_create", time.Now(), &err)
	logger := r.logger.With(slog.String("customerID", cust.ID))
	logger.InfoContext(ctx, "Attempting to insert new customer", slog.Bool("withAddress", primary != nil))

	return withTx(ctx, r.db, logger, func(tx pgx.Tx) error {
		if err := insertCustomer(ctx, tx, logger, cust); err != nil {
			return err
		}
		if primary == nil {
			return nil
		}
		primary.CustomerID = cust.ID
		primary.IsPrimary = true
		return insertAddress(ctx, tx, logger, primary)
	})
}

func (r *CustomerRepository) FindByID(ctx context.Context, customerID string) (cust *customer.Customer, err error) {
	defer observe("customer_find", time.Now(), &err)
	return findCustomer(ctx, r.db, r.logger, customerID)
}

func (r *CustomerRepository) FindDetail(ctx context.Context, customerID string) (detail *customer.Detail, err error) {
	defer observe("customer_detail", time.Now(), &err)
	logger := r.logger.With(slog.String("customerID", customerID))

	cust, err := findCustomer(ctx, r.db, logger, customerID)
	if err != nil {
		return nil, err
	}
	addrs, err := listAddresses(ctx, r.db, logger, customerID)
	if err != nil {
		return nil, err
	}
	txns, err := listTransactions(ctx, r.db, logger, customerID)
	if err != nil {
		return nil, err
	}

	return &customer.Detail{Customer: *cust, Addresses: addrs, Transactions: txns}, nil
}

func (r *CustomerRepository) List(ctx context.Context, q customer.ListQuery) (rows []*customer.Summary, total int, err error) {
	defer observe("customer_list", time.Now(), &err)

	stmts := buildListStatements(q)

	if err = r.db.QueryRow(ctx, stmts.countSQL, stmts.countArgs...).Scan(&total); err != nil {
		r.logger.ErrorContext(ctx, "Failed to count customers", slog.Any("error", err))
		return nil, 0, fmt.Errorf("%w: failed to count customers: %w", apperrors.ErrDatabase, err)
	}

	customers, err := r.queryCustomers(ctx, stmts.pageSQL, stmts.pageArgs...)
	if err != nil {
		return nil, 0, err
	}

	counts, err := r.addressCounts(ctx, customers)
	if err != nil {
		return nil, 0, err
	}

	rows = make([]*customer.Summary, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, customer.NewSummary(*c, counts[c.ID]))
	}
	r.logger.DebugContext(ctx, "Finished listing customers", slog.Int("count", len(rows)), slog.Int("total", total))
	return rows, total, nil
}

func (r *CustomerRepository) Update(ctx context.Context, customerID string, in customer.Input) (err error) {
	defer observe("customer_update", time.Now(), &err)
	logger := r.logger.With(slog.String("customerID", customerID))
	logger.InfoContext(ctx, "Attempting to update customer")

	sets, args := customerAssignments(in)
	if len(sets) == 0 {
		return apperrors.ErrNoFields
	}
	args = append(args, customerID)
	query := fmt.Sprintf("UPDATE customers SET %s, updated_at = NOW() WHERE id = $%d", strings.Join(sets, ", "), len(args))

	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		translatedErr := translateDBError(err, logger)
		if errors.Is(translatedErr, apperrors.ErrAlreadyExists) {
			logger.WarnContext(ctx, "Failed to update customer due to unique constraint violation", slog.Any("error", err))
			return translatedErr
		}
		logger.ErrorContext(ctx, "Failed to update customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to update customer: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		logger.WarnContext(ctx, "Update affected zero rows, customer likely not found")
		return apperrors.ErrNotFound
	}

	logger.InfoContext(ctx, "Customer updated successfully")
	return nil
}

// Delete locks the customer row, refuses when transactions reference it and
// otherwise removes it; addresses go with it through the cascade.
func (r *CustomerRepository) Delete(ctx context.Context, customerID string) (err error) {
	defer observe("customer_delete", time.Now(), &err)
	logger := r.logger.With(slog.String("customerID", customerID))
	logger.InfoContext(ctx, "Attempting to delete customer")

	return withTx(ctx, r.db, logger, func(tx pgx.Tx) error {
		var id string
		if err := tx.QueryRow(ctx, lockCustomerQuery, customerID).Scan(&id); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				logger.WarnContext(ctx, "Customer not found for delete")
				return apperrors.ErrNotFound
			}
			logger.ErrorContext(ctx, "Failed to lock customer", slog.Any("error", err))
			return fmt.Errorf("%w: failed to lock customer: %w", apperrors.ErrDatabase, err)
		}

		count, err := countTransactions(ctx, tx, logger, customerID)
		if err != nil {
			return err
		}
		if count > 0 {
			logger.WarnContext(ctx, "Customer has linked transactions", slog.Int("count", count))
			return apperrors.NewLinkedTransactionsError(count)
		}

		if _, err := tx.Exec(ctx, deleteCustomerQuery, customerID); err != nil {
			translatedErr := translateDBError(err, logger)
			if errors.Is(translatedErr, apperrors.ErrLinkedTransactions) {
				return translatedErr
			}
			logger.ErrorContext(ctx, "Failed to execute delete customer", slog.Any("error", err))
			return fmt.Errorf("%w: failed to delete customer: %w", apperrors.ErrDatabase, err)
		}

		logger.InfoContext(ctx, "Customer deleted successfully")
		return nil
	})
}

func (r *CustomerRepository) EmailTaken(ctx context.Context, email, excludeCustomerID string) (taken bool, err error) {
	defer observe("customer_email_taken", time.Now(), &err)

	if err = r.db.QueryRow(ctx, emailTakenQuery, email, excludeCustomerID).Scan(&taken); err != nil {
		r.logger.ErrorContext(ctx, "Failed to check email uniqueness", slog.Any("error", err))
		return false, fmt.Errorf("%w: failed to check email: %w", apperrors.ErrDatabase, err)
	}
	return taken, nil
}

func (r *CustomerRepository) queryCustomers(ctx context.Context, query string, args ...any) ([]*customer.Customer, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query customers", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query customers: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	customers := make([]*customer.Customer, 0)
	for rows.Next() {
		cust, err := scanCustomer(rows)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan customer row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan customer row: %w", apperrors.ErrDatabase, err)
		}
		customers = append(customers, cust)
	}

	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating customer rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating customer rows: %w", apperrors.ErrDatabase, err)
	}
	return customers, nil
}

func (r *CustomerRepository) addressCounts(ctx context.Context, customers []*customer.Customer) (map[string]int, error) {
	counts := make(map[string]int, len(customers))
	if len(customers) == 0 {
		return counts, nil
	}
	ids := make([]string, 0, len(customers))
	for _, c := range customers {
		ids = append(ids, c.ID)
	}

	rows, err := r.db.Query(ctx, addressCountsQuery, ids)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to count addresses", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to count addresses: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("%w: failed to scan address count: %w", apperrors.ErrDatabase, err)
		}
		counts[id] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating address counts: %w", apperrors.ErrDatabase, err)
	}
	return counts, nil
}

func insertCustomer(ctx context.Context, q querier, logger *slog.Logger, cust *customer.Customer) error {
	err := q.QueryRow(ctx, insertCustomerQuery,
		cust.ID,
		cust.FirstName,
		cust.LastName,
		cust.Phone,
		cust.City,
		cust.State,
		cust.Pincode,
		cust.Email,
		cust.AccountType,
	).Scan(&cust.CreatedAt, &cust.UpdatedAt)
	if err != nil {
		translatedErr := translateDBError(err, logger)
		if errors.Is(translatedErr, apperrors.ErrAlreadyExists) {
			logger.WarnContext(ctx, "Failed to insert customer due to unique constraint violation")
			return translatedErr
		}
		logger.ErrorContext(ctx, "Failed to insert customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to insert customer: %w", apperrors.ErrDatabase, err)
	}
	return nil
}

func findCustomer(ctx context.Context, q querier, logger *slog.Logger, customerID string) (*customer.Customer, error) {
	cust, err := scanCustomer(q.QueryRow(ctx, findCustomerQuery, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.WarnContext(ctx, "Customer not found")
			return nil, apperrors.ErrNotFound
		}
		logger.ErrorContext(ctx, "Failed to query/scan customer by ID", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get customer by ID: %w", apperrors.ErrDatabase, err)
	}
	return cust, nil
}

func scanCustomer(row pgx.Row) (*customer.Customer, error) {
	var c customer.Customer
	err := row.Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&c.Phone,
		&c.City,
		&c.State,
		&c.Pincode,
		&c.Email,
		&c.AccountType,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
