package address_test

import (
	"context"
	"customer-registry/internal/domain/address"
	"customer-registry/internal/pkg/apperrors"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupTest() (*address.MockAddressRepository, address.AddressService) {
	mockRepo := new(address.MockAddressRepository)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return mockRepo, address.NewAddressService(mockRepo, logger)
}

func TestAddressService_CreateAddress(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo, service := setupTest()
		mockRepo.On("CustomerExists", ctx, "cust-1").Return(true, nil).Once()
		mockRepo.On("Create", ctx, mock.MatchedBy(func(a *address.Address) bool {
			return a.CustomerID == "cust-1" && a.Line1 == "1 Main St" && a.IsPrimary
		})).Return(nil).Once()

		addr, err := service.CreateAddress(ctx, "cust-1", address.Input{Line1: strPtr(" 1 Main St "), IsPrimary: boolPtr(true)})

		require.NoError(t, err)
		assert.NotEmpty(t, addr.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - Customer Not Found", func(t *testing.T) {
		mockRepo, service := setupTest()
		mockRepo.On("CustomerExists", ctx, "missing").Return(false, nil).Once()

		_, err := service.CreateAddress(ctx, "missing", address.Input{Line1: strPtr("1 Main St")})

		assert.ErrorIs(t, err, apperrors.ErrCustomerNotFound)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Error - Missing Line1", func(t *testing.T) {
		mockRepo, service := setupTest()
		mockRepo.On("CustomerExists", ctx, "cust-1").Return(true, nil).Once()

		_, err := service.CreateAddress(ctx, "cust-1", address.Input{City: strPtr("Pune")})

		var ve *apperrors.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, apperrors.CodeLine1Required, ve.Code)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Success - Free Form Postal Code", func(t *testing.T) {
		mockRepo, service := setupTest()
		mockRepo.On("CustomerExists", ctx, "cust-1").Return(true, nil).Once()
		mockRepo.On("Create", ctx, mock.MatchedBy(func(a *address.Address) bool {
			return a.Pincode != nil && *a.Pincode == "SW1A 2AA" && a.Country == "UK"
		})).Return(nil).Once()

		_, err := service.CreateAddress(ctx, "cust-1", address.Input{
			Line1:   strPtr("10 Downing St"),
			Pincode: strPtr("SW1A 2AA"),
			Country: strPtr("UK"),
		})

		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - Repository Failure", func(t *testing.T) {
		mockRepo, service := setupTest()
		dbErr := errors.New("connection refused")
		mockRepo.On("CustomerExists", ctx, "cust-1").Return(true, nil).Once()
		mockRepo.On("Create", ctx, mock.AnythingOfType("*address.Address")).Return(dbErr).Once()

		_, err := service.CreateAddress(ctx, "cust-1", address.Input{Line1: strPtr("1 Main St")})

		assert.ErrorIs(t, err, dbErr)
		assert.Contains(t, err.Error(), "failed to create address")
	})
}

func TestAddressService_UpdateAddress(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo, service := setupTest()
		mockRepo.On("Update", ctx, "addr-1", mock.MatchedBy(func(in address.Input) bool {
			return in.IsPrimary != nil && *in.IsPrimary && *in.Line1 == "2 Park Ave"
		})).Return(nil).Once()

		err := service.UpdateAddress(ctx, "addr-1", address.Input{Line1: strPtr(" 2 Park Ave"), IsPrimary: boolPtr(true)})

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - No Fields", func(t *testing.T) {
		mockRepo, service := setupTest()

		err := service.UpdateAddress(ctx, "addr-1", address.Input{})

		assert.ErrorIs(t, err, apperrors.ErrNoFields)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error - Blank Line1", func(t *testing.T) {
		_, service := setupTest()

		err := service.UpdateAddress(ctx, "addr-1", address.Input{Line1: strPtr(" ")})

		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("Error - Not Found", func(t *testing.T) {
		mockRepo, service := setupTest()
		mockRepo.On("Update", ctx, "missing", mock.Anything).Return(apperrors.ErrNotFound).Once()

		err := service.UpdateAddress(ctx, "missing", address.Input{City: strPtr("Pune")})

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestAddressService_DeleteAddress(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo, service := setupTest()
		mockRepo.On("Delete", ctx, "addr-1").Return(nil).Once()

		assert.NoError(t, service.DeleteAddress(ctx, "addr-1"))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - Not Found", func(t *testing.T) {
		mockRepo, service := setupTest()
		mockRepo.On("Delete", ctx, "missing").Return(apperrors.ErrNotFound).Once()

		assert.ErrorIs(t, service.DeleteAddress(ctx, "missing"), apperrors.ErrNotFound)
	})
}

func TestAddressService_ListAddresses(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo, service := setupTest()
		expected := []*address.Address{{ID: "a1", CustomerID: "cust-1", IsPrimary: true}}
		mockRepo.On("CustomerExists", ctx, "cust-1").Return(true, nil).Once()
		mockRepo.On("ListByCustomer", ctx, "cust-1").Return(expected, nil).Once()

		got, err := service.ListAddresses(ctx, "cust-1")

		require.NoError(t, err)
		assert.Equal(t, expected, got)
	})

	t.Run("Error - Customer Not Found", func(t *testing.T) {
		mockRepo, service := setupTest()
		mockRepo.On("CustomerExists", ctx, "missing").Return(false, nil).Once()

		_, err := service.ListAddresses(ctx, "missing")

		assert.ErrorIs(t, err, apperrors.ErrCustomerNotFound)
	})
}
