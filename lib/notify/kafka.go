package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	kafka "github.com/segmentio/kafka-go"
)

// deliverableSentEvent is the schema published to the notification topic
type deliverableSentEvent struct {
	EventID     string    `json:"event_id"`
	RecipientID string    `json:"recipient_id"`
	ProjectName string    `json:"project_name"`
	Title       string    `json:"title"`
	SentAt      time.Time `json:"sent_at"`
}

// newDeliverableSentEvent stamps the event with a unique id so downstream
// consumers can deduplicate retried publishes
func newDeliverableSentEvent(recipientID, projectName, title string) deliverableSentEvent {
	return deliverableSentEvent{
		EventID:     uuid.NewString(),
		RecipientID: recipientID,
		ProjectName: projectName,
		Title:       title,
		SentAt:      time.Now().UTC(),
	}
}

// KafkaNotifier publishes deliverable notifications to a Kafka topic,
// consumed downstream by the email/push delivery worker.
type KafkaNotifier struct {
	writer *kafka.Writer
}

// NewKafkaNotifier creates a notifier publishing to the given brokers and topic
func NewKafkaNotifier(brokers []string, topic string) *KafkaNotifier {
	writer := kafka.NewWriter(kafka.WriterConfig{
		Brokers:  brokers,
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	})
	return &KafkaNotifier{writer: writer}
}

// DeliverableSent publishes a notification event keyed by recipient
func (n *KafkaNotifier) DeliverableSent(ctx context.Context, recipientID, projectName, title string) error {
	event := newDeliverableSentEvent(recipientID, projectName, title)

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	err = n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(recipientID),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying writer
func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}
