package postgres

import (
	"context"
	"customer-registry/internal/domain/address"
	"customer-registry/internal/domain/customer"
	"customer-registry/internal/domain/transaction"
	"customer-registry/internal/pkg/apperrors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const countCustomersQuery = `SELECT COUNT(*) FROM customers`

type seedCustomer struct {
	input       customer.Input
	line1       string
	transaction *seedTransaction
}

type seedTransaction struct {
	detail string
	amount decimal.Decimal
}

func seedData() []seedCustomer {
	s := func(v string) *string { return &v }
	return []seedCustomer{
		{
			input: customer.Input{
				FirstName:   s("Ravi"),
				LastName:    s("Kumar"),
				Phone:       s("9876543210"),
				City:        s("Bengaluru"),
				State:       s("Karnataka"),
				Pincode:     s("560001"),
				Email:       s("ravi@example.com"),
				AccountType: s("savings"),
			},
			line1:       "12 MG Road",
			transaction: &seedTransaction{detail: "Initial deposit", amount: decimal.RequireFromString("1500.00")},
		},
		{
			input: customer.Input{
				FirstName:   s("Priya"),
				LastName:    s("Sharma"),
				Phone:       s("9123456780"),
				City:        s("Mumbai"),
				State:       s("Maharashtra"),
				Pincode:     s("400001"),
				Email:       s("priya@example.com"),
				AccountType: s("current"),
			},
			line1: "221 Marine Drive",
		},
	}
}

// Seed inserts the sample customers when the customers table is empty. It
// reports whether anything was written.
func Seed(ctx context.Context, db DBPool, logger *slog.Logger) (bool, error) {
	logger = logger.With("component", "Seeder")
	seeded := false

	err := withTx(ctx, db, logger, func(tx pgx.Tx) error {
		var count int
		if err := tx.QueryRow(ctx, countCustomersQuery).Scan(&count); err != nil {
			return fmt.Errorf("%w: failed to count customers: %w", apperrors.ErrDatabase, err)
		}
		if count > 0 {
			logger.InfoContext(ctx, "Customers already present, skipping seed", slog.Int("count", count))
			return nil
		}

		for _, sc := range seedData() {
			cust := customer.NewCustomer(sc.input)
			if err := insertCustomer(ctx, tx, logger, cust); err != nil {
				return err
			}

			line1 := sc.line1
			addr := address.NewAddress(cust.ID, address.Input{
				Line1:   &line1,
				City:    sc.input.City,
				State:   sc.input.State,
				Pincode: sc.input.Pincode,
			})
			addr.IsPrimary = true
			if err := insertAddress(ctx, tx, logger, addr); err != nil {
				return err
			}

			if sc.transaction != nil {
				t := transaction.NewTransaction(cust.ID, sc.transaction.detail, sc.transaction.amount)
				if err := insertTransaction(ctx, tx, logger, t); err != nil {
					return err
				}
			}
			logger.InfoContext(ctx, "Seeded customer", slog.String("customerID", cust.ID), slog.String("name", cust.FirstName+" "+cust.LastName))
		}
		seeded = true
		return nil
	})
	if err != nil {
		logger.ErrorContext(ctx, "Seeding failed", slog.Any("error", err))
		return false, err
	}
	return seeded, nil
}
