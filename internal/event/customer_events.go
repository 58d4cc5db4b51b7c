package event

import (
	"context"
	"log/slog"
	"time"
)

type CustomerEventPayload struct {
	CustomerID  string    `json:"customerId"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Phone       string    `json:"phone"`
	Email       *string   `json:"email,omitempty"`
	City        *string   `json:"city,omitempty"`
	State       *string   `json:"state,omitempty"`
	AccountType *string   `json:"accountType,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CustomerCreatedEvent struct {
	Timestamp time.Time            `json:"timestamp"`
	Payload   CustomerEventPayload `json:"payload"`
}

type CustomerUpdatedEvent struct {
	Timestamp time.Time `json:"timestamp"`
	// Fields lists the columns written by the update.
	Fields  []string             `json:"fields"`
	Payload CustomerEventPayload `json:"payload"`
}

type CustomerDeletedEvent struct {
	Timestamp  time.Time `json:"timestamp"`
	CustomerID string    `json:"customerId"`
}

// NoopEventPublisher drops every event. It is used when no broker is configured.
type NoopEventPublisher struct {
	logger *slog.Logger
}

var _ EventPublisher = (*NoopEventPublisher)(nil)

func NewNoopEventPublisher(logger *slog.Logger) *NoopEventPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoopEventPublisher{logger: logger.With("component", "NoopEventPublisher")}
}

func (p *NoopEventPublisher) PublishCustomerCreated(ctx context.Context, event CustomerCreatedEvent) error {
	p.logger.DebugContext(ctx, "Dropping event", slog.String("routingKey", routingKeyCustomerCreated), slog.String("customerId", event.Payload.CustomerID))
	return nil
}

func (p *NoopEventPublisher) PublishCustomerUpdated(ctx context.Context, event CustomerUpdatedEvent) error {
	p.logger.DebugContext(ctx, "Dropping event", slog.String("routingKey", routingKeyCustomerUpdated), slog.String("customerId", event.Payload.CustomerID))
	return nil
}

func (p *NoopEventPublisher) PublishCustomerDeleted(ctx context.Context, event CustomerDeletedEvent) error {
	p.logger.DebugContext(ctx, "Dropping event", slog.String("routingKey", routingKeyCustomerDeleted), slog.String("customerId", event.CustomerID))
	return nil
}
