package address

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockAddressRepository struct {
	mock.Mock
}

func (_m *MockAddressRepository) CustomerExists(ctx context.Context, customerID string) (bool, error) {
	ret := _m.Called(ctx, customerID)
	return ret.Bool(0), ret.Error(1)
}

func (_m *MockAddressRepository) ListByCustomer(ctx context.Context, customerID string) ([]*Address, error) {
	ret := _m.Called(ctx, customerID)

	var r0 []*Address
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*Address)
	}
	return r0, ret.Error(1)
}

func (_m *MockAddressRepository) Create(ctx context.Context, addr *Address) error {
	ret := _m.Called(ctx, addr)
	return ret.Error(0)
}

func (_m *MockAddressRepository) Update(ctx context.Context, addressID string, in Input) error {
	ret := _m.Called(ctx, addressID, in)
	return ret.Error(0)
}

func (_m *MockAddressRepository) Delete(ctx context.Context, addressID string) error {
	ret := _m.Called(ctx, addressID)
	return ret.Error(0)
}

func (_m *MockAddressRepository) RepairPrimaryFlags(ctx context.Context) (int64, error) {
	ret := _m.Called(ctx)

	var r0 int64
	if rf, ok := ret.Get(0).(func(context.Context) int64); ok {
		r0 = rf(ctx)
	} else {
		r0 = ret.Get(0).(int64)
	}
	return r0, ret.Error(1)
}
