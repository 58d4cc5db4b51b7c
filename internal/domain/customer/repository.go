package customer

import (
	"context"
	"customer-registry/internal/domain/address"
)

type Repository interface {
	// Create stores the customer and, when primary is not nil, its first
	// address in the same transaction.
	Create(ctx context.Context, cust *Customer, primary *address.Address) error

	FindByID(ctx context.Context, customerID string) (*Customer, error)

	FindDetail(ctx context.Context, customerID string) (*Detail, error)

	// List returns one page of customers matching q and the total number of
	// matches. q must already be normalized.
	List(ctx context.Context, q ListQuery) ([]*Summary, int, error)

	Update(ctx context.Context, customerID string, in Input) error

	// Delete removes the customer and its addresses unless transactions still
	// reference it, in which case a *apperrors.LinkedRecordsError is returned.
	Delete(ctx context.Context, customerID string) error

	EmailTaken(ctx context.Context, email, excludeCustomerID string) (bool, error)
}
