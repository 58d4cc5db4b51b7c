package customer

import (
	"customer-registry/internal/domain/address"
	"customer-registry/internal/domain/transaction"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	ID          string
	FirstName   string
	LastName    string
	Phone       string
	City        *string
	State       *string
	Pincode     *string
	Email       *string
	AccountType *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Summary is a listing row: the customer plus how many addresses it owns.
type Summary struct {
	Customer
	AddressCount   int
	OnlyOneAddress bool
}

func NewSummary(c Customer, addressCount int) *Summary {
	return &Summary{Customer: c, AddressCount: addressCount, OnlyOneAddress: addressCount == 1}
}

// Detail is a customer with its addresses (primary first, then newest) and
// its transactions (newest first).
type Detail struct {
	Customer
	Addresses    []*address.Address
	Transactions []*transaction.Transaction
}

// Input carries customer fields from a request body. A nil field was not
// supplied. On create every "required" field must be present.
type Input struct {
	FirstName   *string `json:"first_name" validate:"required,notblank"`
	LastName    *string `json:"last_name" validate:"required,notblank"`
	Phone       *string `json:"phone" validate:"required,phone"`
	City        *string `json:"city"`
	State       *string `json:"state"`
	Pincode     *string `json:"pincode" validate:"omitempty,pincode"`
	Email       *string `json:"email"`
	AccountType *string `json:"account_type"`
}

func (in Input) IsEmpty() bool {
	return len(in.Fields()) == 0
}

// Fields returns the column names supplied in the input, in a stable order.
func (in Input) Fields() []string {
	var fields []string
	for _, f := range []struct {
		name string
		v    *string
	}{
		{"first_name", in.FirstName},
		{"last_name", in.LastName},
		{"phone", in.Phone},
		{"city", in.City},
		{"state", in.State},
		{"pincode", in.Pincode},
		{"email", in.Email},
		{"account_type", in.AccountType},
	} {
		if f.v != nil {
			fields = append(fields, f.name)
		}
	}
	return fields
}

// NormalizedEmail returns the trimmed email, or nil when it is absent or blank.
func (in Input) NormalizedEmail() *string {
	return nonEmpty(in.Email)
}

func NewCustomer(in Input) *Customer {
	now := time.Now()
	return &Customer{
		ID:          uuid.NewString(),
		FirstName:   trimmed(in.FirstName),
		LastName:    trimmed(in.LastName),
		Phone:       trimmed(in.Phone),
		City:        nonEmpty(in.City),
		State:       nonEmpty(in.State),
		Pincode:     nonEmpty(in.Pincode),
		Email:       nonEmpty(in.Email),
		AccountType: nonEmpty(in.AccountType),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
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
