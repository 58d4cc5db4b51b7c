package customer

import (
	"context"
	"customer-registry/internal/domain/address"
	"customer-registry/internal/event"
	"customer-registry/internal/infrastructure/monitoring"
	"customer-registry/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

const (
	inputValidationPassed = "Input validation passed"
	customerNotFound      = "Customer not found by repository"
)

type CustomerService interface {
	CreateCustomer(ctx context.Context, in Input, addr *address.Input) (*Customer, error)
	GetCustomer(ctx context.Context, customerID string) (*Detail, error)
	ListCustomers(ctx context.Context, q ListQuery) (*ListResult, error)
	UpdateCustomer(ctx context.Context, customerID string, in Input) error
	DeleteCustomer(ctx context.Context, customerID string) error
}

var _ CustomerService = (*customerService)(nil)

type customerService struct {
	repo   Repository
	pub    event.EventPublisher
	logger *slog.Logger
}

func NewCustomerService(repo Repository, eventPublisher event.EventPublisher, logger *slog.Logger) CustomerService {
	if repo == nil {
		panic("customer repository cannot be nil")
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerService, using default stderr handler")
	}

	if eventPublisher == nil {
		logger.Warn("Warning: No event publisher provided to NewCustomerService, events will be dropped")
		eventPublisher = event.NewNoopEventPublisher(logger)
	}

	return &customerService{
		repo:   repo,
		pub:    eventPublisher,
		logger: logger.With(slog.String("component", "customerService")),
	}
}

func NewCustomerEventPayload(cust *Customer) event.CustomerEventPayload {
	if cust == nil {
		return event.CustomerEventPayload{}
	}
	return event.CustomerEventPayload{
		CustomerID:  cust.ID,
		FirstName:   cust.FirstName,
		LastName:    cust.LastName,
		Phone:       cust.Phone,
		Email:       cust.Email,
		City:        cust.City,
		State:       cust.State,
		AccountType: cust.AccountType,
		CreatedAt:   cust.CreatedAt,
		UpdatedAt:   cust.UpdatedAt,
	}
}

func (s *customerService) CreateCustomer(ctx context.Context, in Input, addr *address.Input) (*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to create new customer")

	if fields := Validate(in, ModeCreate); len(fields) > 0 {
		s.logger.WarnContext(ctx, "Validation failed", slog.Any("fields", fields))
		return nil, apperrors.NewFieldsValidationError(fields)
	}

	withAddress := addr != nil && addr.Line1 != nil && strings.TrimSpace(*addr.Line1) != ""
	s.logger.DebugContext(ctx, inputValidationPassed)

	if email := in.NormalizedEmail(); email != nil {
		if err := s.ensureEmailFree(ctx, *email, ""); err != nil {
			return nil, err
		}
	}

	cust := NewCustomer(in)
	logger := s.logger.With(slog.String("customerID", cust.ID))

	var primary *address.Address
	if withAddress {
		primary = address.NewAddress(cust.ID, *addr)
		primary.IsPrimary = true
	}

	if err := s.repo.Create(ctx, cust, primary); err != nil {
		if errors.Is(err, apperrors.ErrEmailExists) {
			logger.WarnContext(ctx, "Email taken by a concurrent write")
			return nil, apperrors.ErrEmailExists
		}
		logger.ErrorContext(ctx, "Repository failed to save new customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save new customer: %w", err)
	}

	monitoring.RecordCustomerCreated()
	logger.InfoContext(ctx, "Successfully saved new customer, publishing creation event", slog.Bool("withAddress", primary != nil))
	createdEvent := event.CustomerCreatedEvent{
		Timestamp: time.Now(),
		Payload:   NewCustomerEventPayload(cust),
	}
	if pubErr := s.pub.PublishCustomerCreated(ctx, createdEvent); pubErr != nil {
		logger.ErrorContext(ctx, "Customer created, but FAILED to publish creation event", slog.Any("error", pubErr))
	}
	return cust, nil
}

func (s *customerService) GetCustomer(ctx context.Context, customerID string) (*Detail, error) {
	logger := s.logger.With(slog.String("customerID", customerID))
	logger.DebugContext(ctx, "Attempting to get customer by ID")

	detail, err := s.repo.FindDetail(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.WarnContext(ctx, customerNotFound)
			return nil, apperrors.ErrCustomerNotFound
		}
		logger.ErrorContext(ctx, "Repository error finding customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get customer %s: %w", customerID, err)
	}
	return detail, nil
}

func (s *customerService) ListCustomers(ctx context.Context, q ListQuery) (*ListResult, error) {
	q = q.Normalize()
	s.logger.DebugContext(ctx, "Listing customers",
		slog.Int("page", q.Page),
		slog.Int("pageSize", q.PageSize),
		slog.String("sortBy", q.SortBy),
		slog.Bool("onlyMultipleAddresses", q.OnlyMultipleAddresses),
	)

	rows, total, err := s.repo.List(ctx, q)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing customers", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	if rows == nil {
		rows = []*Summary{}
	}
	return &ListResult{Total: total, Page: q.Page, PageSize: q.PageSize, Customers: rows}, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, customerID string, in Input) error {
	logger := s.logger.With(slog.String("customerID", customerID))
	logger.InfoContext(ctx, "Attempting to update customer")

	if in.IsEmpty() {
		logger.WarnContext(ctx, "Update rejected: no fields supplied")
		return apperrors.ErrNoFields
	}
	if fields := Validate(in, ModePartial); len(fields) > 0 {
		logger.WarnContext(ctx, "Validation failed", slog.Any("fields", fields))
		return apperrors.NewFieldsValidationError(fields)
	}

	if email := in.NormalizedEmail(); email != nil {
		if err := s.ensureEmailFree(ctx, *email, customerID); err != nil {
			return err
		}
	}

	if err := s.repo.Update(ctx, customerID, in); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.WarnContext(ctx, customerNotFound)
			return apperrors.ErrCustomerNotFound
		case errors.Is(err, apperrors.ErrEmailExists):
			logger.WarnContext(ctx, "Email taken by a concurrent write")
			return apperrors.ErrEmailExists
		}
		logger.ErrorContext(ctx, "Repository failed to update customer", slog.Any("error", err))
		return fmt.Errorf("failed to update customer %s: %w", customerID, err)
	}

	logger.InfoContext(ctx, "Successfully updated customer, publishing update event")
	s.publishCustomerUpdated(ctx, customerID, in.Fields())
	return nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, customerID string) error {
	logger := s.logger.With(slog.String("customerID", customerID))
	logger.InfoContext(ctx, "Attempting to delete customer")

	if err := s.repo.Delete(ctx, customerID); err != nil {
		var linked *apperrors.LinkedRecordsError
		switch {
		case errors.As(err, &linked):
			monitoring.RecordDeleteBlocked()
			logger.WarnContext(ctx, "Delete blocked by linked transactions", slog.Int("count", linked.Count))
			return linked
		case errors.Is(err, apperrors.ErrNotFound):
			logger.WarnContext(ctx, customerNotFound)
			return apperrors.ErrCustomerNotFound
		}
		logger.ErrorContext(ctx, "Repository error deleting customer", slog.Any("error", err))
		return fmt.Errorf("failed to delete customer %s: %w", customerID, err)
	}

	monitoring.RecordCustomerDeleted()
	logger.InfoContext(ctx, "Successfully deleted customer")
	deletedEvent := event.CustomerDeletedEvent{Timestamp: time.Now(), CustomerID: customerID}
	if pubErr := s.pub.PublishCustomerDeleted(ctx, deletedEvent); pubErr != nil {
		logger.ErrorContext(ctx, "Customer deleted, but FAILED to publish deletion event", slog.Any("error", pubErr))
	}
	return nil
}

func (s *customerService) ensureEmailFree(ctx context.Context, email, excludeID string) error {
	taken, err := s.repo.EmailTaken(ctx, email, excludeID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error checking email", slog.Any("error", err))
		return fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		s.logger.WarnContext(ctx, "Email already belongs to another customer")
		return apperrors.ErrEmailExists
	}
	return nil
}

func (s *customerService) publishCustomerUpdated(ctx context.Context, customerID string, fields []string) {
	cust, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Successfully updated customer, but FAILED to re-fetch customer for event publishing", slog.Any("error", err))
		return
	}
	updatedEvent := event.CustomerUpdatedEvent{
		Timestamp: time.Now(),
		Fields:    fields,
		Payload:   NewCustomerEventPayload(cust),
	}
	if err := s.pub.PublishCustomerUpdated(ctx, updatedEvent); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish customer update event", slog.Any("error", err))
	}
}
