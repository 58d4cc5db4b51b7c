package customer

import (
	"context"
	"customer-registry/internal/domain/address"
	"customer-registry/internal/event"

	"github.com/stretchr/testify/mock"
)

type MockCustomerRepository struct {
	mock.Mock
}

func (_m *MockCustomerRepository) Create(ctx context.Context, cust *Customer, primary *address.Address) error {
	ret := _m.Called(ctx, cust, primary)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *Customer, *address.Address) error); ok {
		r0 = rf(ctx, cust, primary)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

func (_m *MockCustomerRepository) FindByID(ctx context.Context, customerID string) (*Customer, error) {
	ret := _m.Called(ctx, customerID)

	var r0 *Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*Customer)
	}

	return r0, ret.Error(1)
}

func (_m *MockCustomerRepository) FindDetail(ctx context.Context, customerID string) (*Detail, error) {
	ret := _m.Called(ctx, customerID)

	var r0 *Detail
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*Detail)
	}

	return r0, ret.Error(1)
}

func (_m *MockCustomerRepository) List(ctx context.Context, q ListQuery) ([]*Summary, int, error) {
	ret := _m.Called(ctx, q)

	var r0 []*Summary
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*Summary)
	}

	return r0, ret.Int(1), ret.Error(2)
}

func (_m *MockCustomerRepository) Update(ctx context.Context, customerID string, in Input) error {
	ret := _m.Called(ctx, customerID, in)
	return ret.Error(0)
}

func (_m *MockCustomerRepository) Delete(ctx context.Context, customerID string) error {
	ret := _m.Called(ctx, customerID)
	return ret.Error(0)
}

func (_m *MockCustomerRepository) EmailTaken(ctx context.Context, email, excludeCustomerID string) (bool, error) {
	ret := _m.Called(ctx, email, excludeCustomerID)
	return ret.Bool(0), ret.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

var _ event.EventPublisher = (*MockEventPublisher)(nil)

func (_m *MockEventPublisher) PublishCustomerCreated(ctx context.Context, evt event.CustomerCreatedEvent) error {
	return _m.Called(ctx, evt).Error(0)
}

func (_m *MockEventPublisher) PublishCustomerUpdated(ctx context.Context, evt event.CustomerUpdatedEvent) error {
	return _m.Called(ctx, evt).Error(0)
}

func (_m *MockEventPublisher) PublishCustomerDeleted(ctx context.Context, evt event.CustomerDeletedEvent) error {
	return _m.Called(ctx, evt).Error(0)
}
