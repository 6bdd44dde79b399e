// Package push delivers driver notifications over Kafka. The mobile push
// gateway consumes the topic and fans messages out to devices, so from this
// service's point of view a notification is sent once the broker has
// acknowledged the write.
package push

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

const defaultWriteTimeout = 5 * time.Second

// KafkaNotifier publishes driver notifications to a Kafka topic, implementing
// ports.Notifier. Messages are keyed by driver ID so per-driver ordering is
// preserved across partitions.
type KafkaNotifier struct {
	writer *kafka.Writer
}

// notificationMessage is the wire format consumed by the push gateway.
type notificationMessage struct {
	DriverID string    `json:"driver_id"`
	Message  string    `json:"message"`
	SentAt   time.Time `json:"sent_at"`
}

// NewKafkaNotifier creates a notifier writing to the given brokers and topic.
// The write timeout is kept short: callers run inside scheduled jobs and a
// slow broker must not stall a whole pass.
func NewKafkaNotifier(brokers []string, topic string) (*KafkaNotifier, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka notifier: at least one broker required")
	}
	if topic == "" {
		return nil, fmt.Errorf("kafka notifier: topic required")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		WriteTimeout: defaultWriteTimeout,
		RequiredAcks: kafka.RequireOne,
	}

	return &KafkaNotifier{writer: writer}, nil
}

// Notify publishes one notification and returns once the broker acknowledges
// it. Retrying is left to the caller; the reminder job treats a failed send
// as skipped, not fatal.
func (n *KafkaNotifier) Notify(ctx context.Context, driverID kernel.UUID, message string) error {
	payload, err := json.Marshal(notificationMessage{
		DriverID: driverID.String(),
		Message:  message,
		SentAt:   time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(driverID.String()),
		Value: payload,
	}

	if err := n.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish notification for driver %s: %w", driverID, err)
	}
	return nil
}

// Close releases the underlying writer's connections.
func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}

var _ ports.Notifier = (*KafkaNotifier)(nil)
