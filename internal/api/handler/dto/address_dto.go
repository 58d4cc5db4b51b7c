package dto

import (
	"customer-registry/internal/domain/address"
	"time"
)

type AddressRequest = address.Input

type AddressResponse struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	Line1      string    `json:"line1"`
	Line2      *string   `json:"line2"`
	City       *string   `json:"city"`
	State      *string   `json:"state"`
	Pincode    *string   `json:"pincode"`
	Country    string    `json:"country"`
	IsPrimary  bool      `json:"is_primary"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewAddressResponse(a *address.Address) AddressResponse {
	return AddressResponse{
		ID:         a.ID,
		CustomerID: a.CustomerID,
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		State:      a.State,
		Pincode:    a.Pincode,
		Country:    a.Country,
		IsPrimary:  a.IsPrimary,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func NewAddressResponses(addrs []*address.Address) []AddressResponse {
	resp := make([]AddressResponse, 0, len(addrs))
	for _, a := range addrs {
		resp = append(resp, NewAddressResponse(a))
	}
	return resp
}
