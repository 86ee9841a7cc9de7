// Package kafka publishes order change notifications to a Kafka topic.
// Subscribers (driver boards, company dashboards) consume the topic to
// refresh their views; the core treats publication as fire-and-forget.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
)

// OrderChangedEvent is the wire payload published for every order change.
type OrderChangedEvent struct {
	OrderID       string    `json:"orderId"`
	TenantID      string    `json:"tenantId"`
	ClientID      string    `json:"clientId"`
	DriverID      *string   `json:"driverId,omitempty"`
	Status        string    `json:"status"`
	StatusLabel   string    `json:"statusLabel"`
	PaymentMethod string    `json:"paymentMethod"`
	PaymentStatus string    `json:"paymentStatus"`
	TotalCents    int64     `json:"totalCents"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// OrderNotifier publishes order change events to the order-changed topic.
// Messages are keyed by tenant so one tenant's events stay ordered.
type OrderNotifier struct {
	writer *kafka.Writer
	logger *slog.Logger
}

// NewOrderNotifier creates a notifier publishing to the given topic on host.
func NewOrderNotifier(host string, topic string, logger *slog.Logger) *OrderNotifier {
	return &OrderNotifier{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(host),
			Topic:    topic,
			Balancer: &kafka.Hash{},
		},
		logger: logger.With(slog.String("component", "kafka-notifier")),
	}
}

// NotifyOrderChanged publishes the order's current state. Failures are
// logged and returned; callers on the write path ignore the error because
// the business operation already committed.
func (n *OrderNotifier) NotifyOrderChanged(ctx context.Context, aggregate *order.Order) error {
	event := OrderChangedEvent{
		OrderID:       aggregate.ID().String(),
		TenantID:      aggregate.TenantID().String(),
		ClientID:      aggregate.ClientID().String(),
		Status:        aggregate.Status().String(),
		StatusLabel:   aggregate.Status().Label(),
		PaymentMethod: aggregate.PaymentMethod().String(),
		PaymentStatus: aggregate.PaymentStatus().String(),
		TotalCents:    aggregate.Total().Cents(),
		OccurredAt:    time.Now().UTC(),
	}
	if driver := aggregate.AssignedDriver(); driver != nil {
		id := driver.String()
		event.DriverID = &id
	}

	payload, err := json.Marshal(event)
	if err != nil {
		n.logger.ErrorContext(ctx, "failed to marshal order changed event",
			slog.String("order_id", event.OrderID), slog.Any("error", err))
		return err
	}

	err = n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.TenantID),
		Value: payload,
	})
	if err != nil {
		n.logger.ErrorContext(ctx, "failed to publish order changed event",
			slog.String("order_id", event.OrderID), slog.Any("error", err))
		return err
	}

	return nil
}

// Close flushes and closes the underlying writer.
func (n *OrderNotifier) Close() error {
	return n.writer.Close()
}
