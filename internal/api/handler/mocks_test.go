package handler_test

import (
	"context"
	"customer-registry/internal/domain/address"
	"customer-registry/internal/domain/customer"
	"customer-registry/internal/domain/transaction"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

type MockCustomerService struct {
	mock.Mock
}

func (_m *MockCustomerService) CreateCustomer(ctx context.Context, in customer.Input, addr *address.Input) (*customer.Customer, error) {
	ret := _m.Called(ctx, in, addr)

	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerService) GetCustomer(ctx context.Context, customerID string) (*customer.Detail, error) {
	ret := _m.Called(ctx, customerID)

	var r0 *customer.Detail
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Detail)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerService) ListCustomers(ctx context.Context, q customer.ListQuery) (*customer.ListResult, error) {
	ret := _m.Called(ctx, q)

	var r0 *customer.ListResult
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.ListResult)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerService) UpdateCustomer(ctx context.Context, customerID string, in customer.Input) error {
	ret := _m.Called(ctx, customerID, in)
	return ret.Error(0)
}

func (_m *MockCustomerService) DeleteCustomer(ctx context.Context, customerID string) error {
	ret := _m.Called(ctx, customerID)
	return ret.Error(0)
}

type MockAddressService struct {
	mock.Mock
}

func (_m *MockAddressService) ListAddresses(ctx context.Context, customerID string) ([]*address.Address, error) {
	ret := _m.Called(ctx, customerID)

	var r0 []*address.Address
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*address.Address)
	}
	return r0, ret.Error(1)
}

func (_m *MockAddressService) CreateAddress(ctx context.Context, customerID string, in address.Input) (*address.Address, error) {
	ret := _m.Called(ctx, customerID, in)

	var r0 *address.Address
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*address.Address)
	}
	return r0, ret.Error(1)
}

func (_m *MockAddressService) UpdateAddress(ctx context.Context, addressID string, in address.Input) error {
	ret := _m.Called(ctx, addressID, in)
	return ret.Error(0)
}

func (_m *MockAddressService) DeleteAddress(ctx context.Context, addressID string) error {
	ret := _m.Called(ctx, addressID)
	return ret.Error(0)
}

type MockTransactionService struct {
	mock.Mock
}

func (_m *MockTransactionService) ListTransactions(ctx context.Context, customerID string) (*transaction.Ledger, error) {
	ret := _m.Called(ctx, customerID)

	var r0 *transaction.Ledger
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*transaction.Ledger)
	}
	return r0, ret.Error(1)
}
