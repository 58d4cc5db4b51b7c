package transaction

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockTransactionRepository struct {
	mock.Mock
}

func (_m *MockTransactionRepository) CustomerExists(ctx context.Context, customerID string) (bool, error) {
	ret := _m.Called(ctx, customerID)
	return ret.Bool(0), ret.Error(1)
}

func (_m *MockTransactionRepository) ListByCustomer(ctx context.Context, customerID string) ([]*Transaction, error) {
	ret := _m.Called(ctx, customerID)

	var r0 []*Transaction
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*Transaction)
	}
	return r0, ret.Error(1)
}
