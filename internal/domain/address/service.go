package address

import (
	"context"
	"customer-registry/internal/infrastructure/monitoring"
	"customer-registry/internal/pkg/apperrors"
	"customer-registry/internal/pkg/validation"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

type AddressService interface {
	ListAddresses(ctx context.Context, customerID string) ([]*Address, error)
	CreateAddress(ctx context.Context, customerID string, in Input) (*Address, error)
	UpdateAddress(ctx context.Context, addressID string, in Input) error
	DeleteAddress(ctx context.Context, addressID string) error
}

var _ AddressService = (*addressService)(nil)

type addressService struct {
	repo   Repository
	logger *slog.Logger
}

func NewAddressService(repo Repository, logger *slog.Logger) AddressService {
	if repo == nil {
		panic("address repository cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewAddressService, using default stderr handler")
	}
	return &addressService{
		repo:   repo,
		logger: logger.With(slog.String("component", "addressService")),
	}
}

func (s *addressService) ListAddresses(ctx context.Context, customerID string) ([]*Address, error) {
	logger := s.logger.With(slog.String("customerID", customerID))

	if err := s.ensureCustomer(ctx, customerID); err != nil {
		logger.WarnContext(ctx, "Cannot list addresses", slog.Any("error", err))
		return nil, err
	}

	addresses, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		logger.ErrorContext(ctx, "Repository error listing addresses", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list addresses for customer %s: %w", customerID, err)
	}
	logger.DebugContext(ctx, "Listed addresses", slog.Int("count", len(addresses)))
	return addresses, nil
}

func (s *addressService) CreateAddress(ctx context.Context, customerID string, in Input) (*Address, error) {
	logger := s.logger.With(slog.String("customerID", customerID))
	logger.InfoContext(ctx, "Attempting to create address")

	if err := s.ensureCustomer(ctx, customerID); err != nil {
		logger.WarnContext(ctx, "Cannot create address", slog.Any("error", err))
		return nil, err
	}

	if in.Line1 == nil || strings.TrimSpace(*in.Line1) == "" {
		logger.WarnContext(ctx, "Validation failed: line1 is missing")
		return nil, apperrors.NewLine1RequiredError()
	}

	addr := NewAddress(customerID, in)
	if err := s.repo.Create(ctx, addr); err != nil {
		logger.ErrorContext(ctx, "Repository failed to create address", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create address: %w", err)
	}

	monitoring.RecordAddressChanged("create")
	logger.InfoContext(ctx, "Address created", slog.String("addressID", addr.ID), slog.Bool("isPrimary", addr.IsPrimary))
	return addr, nil
}

func (s *addressService) UpdateAddress(ctx context.Context, addressID string, in Input) error {
	logger := s.logger.With(slog.String("addressID", addressID))
	logger.InfoContext(ctx, "Attempting to update address")

	if in.IsEmpty() {
		logger.WarnContext(ctx, "Update rejected: no fields supplied")
		return apperrors.ErrNoFields
	}
	if in.Line1 != nil && strings.TrimSpace(*in.Line1) == "" {
		logger.WarnContext(ctx, "Validation failed: line1 cleared")
		return apperrors.NewLine1RequiredError()
	}

	in.Line1 = validation.TrimOptional(in.Line1)
	if err := s.repo.Update(ctx, addressID, in); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.WarnContext(ctx, "Address not found for update")
			return err
		}
		logger.ErrorContext(ctx, "Repository failed to update address", slog.Any("error", err))
		return fmt.Errorf("failed to update address %s: %w", addressID, err)
	}

	monitoring.RecordAddressChanged("update")
	logger.InfoContext(ctx, "Address updated")
	return nil
}

func (s *addressService) DeleteAddress(ctx context.Context, addressID string) error {
	logger := s.logger.With(slog.String("addressID", addressID))
	logger.InfoContext(ctx, "Attempting to delete address")

	if err := s.repo.Delete(ctx, addressID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.WarnContext(ctx, "Address not found for delete")
			return err
		}
		logger.ErrorContext(ctx, "Repository failed to delete address", slog.Any("error", err))
		return fmt.Errorf("failed to delete address %s: %w", addressID, err)
	}

	monitoring.RecordAddressChanged("delete")
	logger.InfoContext(ctx, "Address deleted")
	return nil
}

func (s *addressService) ensureCustomer(ctx context.Context, customerID string) error {
	exists, err := s.repo.CustomerExists(ctx, customerID)
	if err != nil {
		return fmt.Errorf("failed to look up customer %s: %w", customerID, err)
	}
	if !exists {
		return apperrors.ErrCustomerNotFound
	}
	return nil
}
