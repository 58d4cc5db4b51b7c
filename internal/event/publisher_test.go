package event

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRabbitMQEventPublisher_InvalidArguments(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := NewRabbitMQEventPublisher(nil, "customer-registry", logger)
	assert.ErrorContains(t, err, "connection cannot be nil")

	_, err = NewRabbitMQEventPublisher(&amqp.Connection{}, "", logger)
	assert.ErrorContains(t, err, "exchange name cannot be empty")
}

func TestNewPublishing(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	email := "ravi@example.com"
	evt := CustomerCreatedEvent{
		Timestamp: now,
		Payload: CustomerEventPayload{
			CustomerID: "c-1",
			FirstName:  "Ravi",
			LastName:   "Kumar",
			Phone:      "9876543210",
			Email:      &email,
		},
	}

	msg, err := newPublishing(evt, now)
	require.NoError(t, err)

	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, publisherAppID, msg.AppId)
	assert.Equal(t, now, msg.Timestamp)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Body, &decoded))
	payload := decoded["payload"].(map[string]any)
	assert.Equal(t, "c-1", payload["customerId"])
	assert.Equal(t, "ravi@example.com", payload["email"])
	assert.NotContains(t, payload, "city")
}

func TestNewPublishing_MarshalError(t *testing.T) {
	_, err := newPublishing(map[string]any{"bad": make(chan int)}, time.Now())
	assert.ErrorContains(t, err, "failed to marshal event")
}

func TestNoopEventPublisher(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	pub := NewNoopEventPublisher(logger)
	ctx := context.Background()

	assert.NoError(t, pub.PublishCustomerCreated(ctx, CustomerCreatedEvent{Payload: CustomerEventPayload{CustomerID: "c-1"}}))
	assert.NoError(t, pub.PublishCustomerUpdated(ctx, CustomerUpdatedEvent{Payload: CustomerEventPayload{CustomerID: "c-1"}}))
	assert.NoError(t, pub.PublishCustomerDeleted(ctx, CustomerDeletedEvent{CustomerID: "c-1"}))

	out := buf.String()
	for _, key := range []string{routingKeyCustomerCreated, routingKeyCustomerUpdated, routingKeyCustomerDeleted} {
		assert.True(t, strings.Contains(out, key), "expected log line for %s", key)
	}
}
