package postgres

import (
	"context"
	"customer-registry/internal/domain/address"
	"customer-registry/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

const (
	addressColumns = `id, customer_id, line1, line2, city, state, pincode, country, is_primary, created_at, updated_at`

	customerExistsQuery = `SELECT EXISTS (SELECT 1 FROM customers WHERE id = $1)`

	listAddressesQuery = `SELECT ` + addressColumns + `
        FROM addresses
        WHERE customer_id = $1
        ORDER BY is_primary DESC, created_at DESC`

	insertAddressQuery = `
        INSERT INTO addresses (id, customer_id, line1, line2, city, state, pincode, country, is_primary, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
        RETURNING created_at, updated_at`

	addressOwnerQuery = `SELECT customer_id FROM addresses WHERE id = $1 FOR UPDATE`

	demoteSiblingsQuery = `
        UPDATE addresses
        SET is_primary = FALSE, updated_at = NOW()
        WHERE customer_id = $1 AND id <> $2 AND is_primary`

	// promoteSoleAddressQuery flags a customer's only address as primary.
	promoteSoleAddressQuery = `
        UPDATE addresses
        SET is_primary = TRUE, updated_at = NOW()
        WHERE customer_id = $1
          AND NOT is_primary
          AND (SELECT COUNT(*) FROM addresses WHERE customer_id = $1) = 1`

	deleteAddressQuery = `DELETE FROM addresses WHERE id = $1 RETURNING customer_id`

	repairExtraPrimariesQuery = `
        UPDATE addresses a
        SET is_primary = FALSE, updated_at = NOW()
        WHERE a.is_primary
          AND EXISTS (
            SELECT 1 FROM addresses b
            WHERE b.customer_id = a.customer_id
              AND b.is_primary
              AND (b.updated_at, b.id) > (a.updated_at, a.id))`

	repairSoleAddressesQuery = `
        UPDATE addresses a
        SET is_primary = TRUE, updated_at = NOW()
        WHERE NOT a.is_primary
          AND (SELECT COUNT(*) FROM addresses b WHERE b.customer_id = a.customer_id) = 1`
)

type AddressRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ address.Repository = (*AddressRepository)(nil)

func NewAddressRepository(db DBPool, logger *slog.Logger) *AddressRepository {
	if db == nil {
		panic("DBPool cannot be nil for AddressRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewAddressRepository, using default stderr handler")
	}
	return &AddressRepository{
		db:     db,
		logger: logger.With("component", "AddressRepository"),
	}
}

func (r *AddressRepository) CustomerExists(ctx context.Context, customerID string) (exists bool, err error) {
	defer observe("customer_exists", time.Now(), &err)

	if err = r.db.QueryRow(ctx, customerExistsQuery, customerID).Scan(&exists); err != nil {
		r.logger.ErrorContext(ctx, "Failed to check customer existence", slog.Any("error", err))
		return false, fmt.Errorf("%w: failed to check customer existence: %w", apperrors.ErrDatabase, err)
	}
	return exists, nil
}

func (r *AddressRepository) ListByCustomer(ctx context.Context, customerID string) (addrs []*address.Address, err error) {
	defer observe("address_list", time.Now(), &err)
	return listAddresses(ctx, r.db, r.logger, customerID)
}

func (r *AddressRepository) Create(ctx context.Context, addr *address.Address) (err error) {
	if addr == nil {
		return fmt.Errorf("%w: address cannot be nil", apperrors.ErrInvalidArgument)
	}
	defer observe("address_create", time.Now(), &err)
	logger := r.logger.With(slog.String("customerID", addr.CustomerID), slog.String("addressID", addr.ID))

	return withTx(ctx, r.db, logger, func(tx pgx.Tx) error {
		if addr.IsPrimary {
			if err := demoteSiblings(ctx, tx, logger, addr.CustomerID, addr.ID); err != nil {
				return err
			}
		}
		if err := insertAddress(ctx, tx, logger, addr); err != nil {
			return err
		}
		promoted, err := promoteSoleAddress(ctx, tx, logger, addr.CustomerID)
		if err != nil {
			return err
		}
		if promoted {
			addr.IsPrimary = true
		}
		return nil
	})
}

func (r *AddressRepository) Update(ctx context.Context, addressID string, in address.Input) (err error) {
	defer observe("address_update", time.Now(), &err)
	logger := r.logger.With(slog.String("addressID", addressID))

	sets, args := addressAssignments(in)
	if len(sets) == 0 {
		return apperrors.ErrNoFields
	}

	return withTx(ctx, r.db, logger, func(tx pgx.Tx) error {
		var customerID string
		if err := tx.QueryRow(ctx, addressOwnerQuery, addressID).Scan(&customerID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				logger.WarnContext(ctx, "Address not found")
				return apperrors.ErrNotFound
			}
			logger.ErrorContext(ctx, "Failed to load address owner", slog.Any("error", err))
			return fmt.Errorf("%w: failed to load address: %w", apperrors.ErrDatabase, err)
		}

		if in.IsPrimary != nil && *in.IsPrimary {
			if err := demoteSiblings(ctx, tx, logger, customerID, addressID); err != nil {
				return err
			}
		}

		args = append(args, addressID)
		query := fmt.Sprintf("UPDATE addresses SET %s, updated_at = NOW() WHERE id = $%d", strings.Join(sets, ", "), len(args))
		cmdTag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			logger.ErrorContext(ctx, "Failed to update address", slog.Any("error", err))
			return translateDBError(err, logger)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrNotFound
		}

		_, err = promoteSoleAddress(ctx, tx, logger, customerID)
		return err
	})
}

func (r *AddressRepository) Delete(ctx context.Context, addressID string) (err error) {
	defer observe("address_delete", time.Now(), &err)
	logger := r.logger.With(slog.String("addressID", addressID))

	return withTx(ctx, r.db, logger, func(tx pgx.Tx) error {
		var customerID string
		if err := tx.QueryRow(ctx, deleteAddressQuery, addressID).Scan(&customerID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				logger.WarnContext(ctx, "Delete affected zero rows, address likely not found")
				return apperrors.ErrNotFound
			}
			logger.ErrorContext(ctx, "Failed to delete address", slog.Any("error", err))
			return fmt.Errorf("%w: failed to delete address: %w", apperrors.ErrDatabase, err)
		}

		_, err := promoteSoleAddress(ctx, tx, logger, customerID)
		return err
	})
}

// RepairPrimaryFlags restores the primary address rule across all customers:
// only the most recently updated primary survives, and a sole address is
// promoted. It returns the number of rows changed.
func (r *AddressRepository) RepairPrimaryFlags(ctx context.Context) (changed int64, err error) {
	defer observe("address_repair_primary", time.Now(), &err)

	err = withTx(ctx, r.db, r.logger, func(tx pgx.Tx) error {
		for _, q := range []string{repairExtraPrimariesQuery, repairSoleAddressesQuery} {
			cmdTag, err := tx.Exec(ctx, q)
			if err != nil {
				r.logger.ErrorContext(ctx, "Failed to repair primary flags", slog.Any("error", err))
				return fmt.Errorf("%w: failed to repair primary flags: %w", apperrors.ErrDatabase, err)
			}
			changed += cmdTag.RowsAffected()
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return changed, nil
}

func listAddresses(ctx context.Context, q querier, logger *slog.Logger, customerID string) ([]*address.Address, error) {
	rows, err := q.Query(ctx, listAddressesQuery, customerID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to query addresses", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query addresses: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	addrs := make([]*address.Address, 0)
	for rows.Next() {
		var a address.Address
		if err := rows.Scan(
			&a.ID,
			&a.CustomerID,
			&a.Line1,
			&a.Line2,
			&a.City,
			&a.State,
			&a.Pincode,
			&a.Country,
			&a.IsPrimary,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			logger.ErrorContext(ctx, "Failed to scan address row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan address row: %w", apperrors.ErrDatabase, err)
		}
		addrs = append(addrs, &a)
	}
	if err := rows.Err(); err != nil {
		logger.ErrorContext(ctx, "Error iterating address rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating address rows: %w", apperrors.ErrDatabase, err)
	}
	return addrs, nil
}

func insertAddress(ctx context.Context, q querier, logger *slog.Logger, addr *address.Address) error {
	err := q.QueryRow(ctx, insertAddressQuery,
		addr.ID,
		addr.CustomerID,
		addr.Line1,
		addr.Line2,
		addr.City,
		addr.State,
		addr.Pincode,
		addr.Country,
		addr.IsPrimary,
	).Scan(&addr.CreatedAt, &addr.UpdatedAt)
	if err != nil {
		translated := translateDBError(err, logger)
		if errors.Is(translated, apperrors.ErrCustomerNotFound) {
			return translated
		}
		logger.ErrorContext(ctx, "Failed to insert address", slog.Any("error", err))
		return fmt.Errorf("%w: failed to insert address: %w", apperrors.ErrDatabase, err)
	}
	return nil
}

func demoteSiblings(ctx context.Context, q querier, logger *slog.Logger, customerID, keepID string) error {
	cmdTag, err := q.Exec(ctx, demoteSiblingsQuery, customerID, keepID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to demote sibling addresses", slog.Any("error", err))
		return fmt.Errorf("%w: failed to demote sibling addresses: %w", apperrors.ErrDatabase, err)
	}
	logger.DebugContext(ctx, "Demoted sibling addresses", slog.Int64("count", cmdTag.RowsAffected()))
	return nil
}

func promoteSoleAddress(ctx context.Context, q querier, logger *slog.Logger, customerID string) (bool, error) {
	cmdTag, err := q.Exec(ctx, promoteSoleAddressQuery, customerID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to promote sole address", slog.Any("error", err))
		return false, fmt.Errorf("%w: failed to promote sole address: %w", apperrors.ErrDatabase, err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// addressAssignments turns the supplied fields into SET clauses. Blank
// optional values are stored as NULL; a blank country falls back to the
// default.
func addressAssignments(in address.Input) ([]string, []any) {
	var sets []string
	var args []any
	set := func(expr string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf(expr, len(args)))
	}

	if in.Line1 != nil {
		set("line1 = TRIM($%d)", *in.Line1)
	}
	for _, f := range []struct {
		column string
		value  *string
	}{
		{"line2", in.Line2},
		{"city", in.City},
		{"state", in.State},
		{"pincode", in.Pincode},
	} {
		if f.value != nil {
			set(f.column+" = NULLIF(TRIM($%d), '')", *f.value)
		}
	}
	if in.Country != nil {
		set("country = COALESCE(NULLIF(TRIM($%d), ''), '"+address.DefaultCountry+"')", *in.Country)
	}
	if in.IsPrimary != nil {
		set("is_primary = $%d", *in.IsPrimary)
	}
	return sets, args
}
