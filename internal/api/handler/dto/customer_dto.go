package dto

import (
	"customer-registry/internal/domain/address"
	"customer-registry/internal/domain/customer"
	"time"
)

// CreateCustomerRequest is a customer payload with an optional inline
// address. The address is created as primary when its line1 is non-blank.
type CreateCustomerRequest struct {
	customer.Input
	Address *address.Input `json:"address,omitempty"`
}

type UpdateCustomerRequest = customer.Input

type CustomerResponse struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Phone       string    `json:"phone"`
	City        *string   `json:"city"`
	State       *string   `json:"state"`
	Pincode     *string   `json:"pincode"`
	Email       *string   `json:"email"`
	AccountType *string   `json:"account_type"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CustomerSummaryResponse struct {
	CustomerResponse
	AddressCount   int  `json:"address_count"`
	OnlyOneAddress bool `json:"onlyOneAddress"`
}

type CustomerListResponse struct {
	Total    int                       `json:"total"`
	Page     int                       `json:"page"`
	PageSize int                       `json:"pageSize"`
	Data     []CustomerSummaryResponse `json:"data"`
}

type CustomerDetailResponse struct {
	CustomerResponse
	Addresses    []AddressResponse     `json:"addresses"`
	Transactions []TransactionResponse `json:"transactions"`
}

func NewCustomerResponse(c customer.Customer) CustomerResponse {
	return CustomerResponse{
		ID:          c.ID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Phone:       c.Phone,
		City:        c.City,
		State:       c.State,
		Pincode:     c.Pincode,
		Email:       c.Email,
		AccountType: c.AccountType,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func NewCustomerListResponse(res *customer.ListResult) CustomerListResponse {
	data := make([]CustomerSummaryResponse, 0, len(res.Customers))
	for _, s := range res.Customers {
		data = append(data, CustomerSummaryResponse{
			CustomerResponse: NewCustomerResponse(s.Customer),
			AddressCount:     s.AddressCount,
			OnlyOneAddress:   s.OnlyOneAddress,
		})
	}
	return CustomerListResponse{
		Total:    res.Total,
		Page:     res.Page,
		PageSize: res.PageSize,
		Data:     data,
	}
}

func NewCustomerDetailResponse(d *customer.Detail) CustomerDetailResponse {
	return CustomerDetailResponse{
		CustomerResponse: NewCustomerResponse(d.Customer),
		Addresses:        NewAddressResponses(d.Addresses),
		Transactions:     NewTransactionResponses(d.Transactions),
	}
}
