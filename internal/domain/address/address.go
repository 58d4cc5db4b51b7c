package address

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

const DefaultCountry = "India"

type Address struct {
	ID         string
	CustomerID string
	Line1      string
	Line2      *string
	City       *string
	State      *string
	Pincode    *string
	Country    string
	IsPrimary  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Input carries address fields supplied by a caller. A nil field was not
// supplied; an empty string clears an optional column on update.
type Input struct {
	Line1     *string `json:"line1"`
	Line2     *string `json:"line2"`
	City      *string `json:"city"`
	State     *string `json:"state"`
	Pincode   *string `json:"pincode"`
	Country   *string `json:"country"`
	IsPrimary *bool   `json:"is_primary"`
}

func (in Input) IsEmpty() bool {
	return in.Line1 == nil && in.Line2 == nil && in.City == nil && in.State == nil &&
		in.Pincode == nil && in.Country == nil && in.IsPrimary == nil
}

func NewAddress(customerID string, in Input) *Address {
	now := time.Now()
	addr := &Address{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		Line2:      nonEmpty(in.Line2),
		City:       nonEmpty(in.City),
		State:      nonEmpty(in.State),
		Pincode:    nonEmpty(in.Pincode),
		Country:    DefaultCountry,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if in.Line1 != nil {
		addr.Line1 = strings.TrimSpace(*in.Line1)
	}
	if c := nonEmpty(in.Country); c != nil {
		addr.Country = *c
	}
	if in.IsPrimary != nil {
		addr.IsPrimary = *in.IsPrimary
	}
	return addr
}

func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

// Repository persists addresses. Every write keeps the primary address rule
// for the owning customer: at most one primary, and a sole address is primary.
type Repository interface {
	CustomerExists(ctx context.Context, customerID string) (bool, error)

	ListByCustomer(ctx context.Context, customerID string) ([]*Address, error)

	Create(ctx context.Context, addr *Address) error

	Update(ctx context.Context, addressID string, in Input) error

	Delete(ctx context.Context, addressID string) error

	RepairPrimaryFlags(ctx context.Context) (int64, error)
}
