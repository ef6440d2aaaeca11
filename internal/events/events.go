package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/2beens/fitcompare/internal/telemetry/tracing"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type Type string

const (
	DatasetCreated  Type = "dataset.created"
	DatasetDeleted  Type = "dataset.deleted"
	DatasetShared   Type = "dataset.shared"
	DatasetUnshared Type = "dataset.unshared"
	FilesAdded      Type = "dataset.files_added"
	FileDeleted     Type = "dataset.file_deleted"
)

type Event struct {
	ID         string    `json:"id"`
	Type       Type      `json:"type"`
	UserID     string    `json:"userId"`
	DatasetID  string    `json:"datasetId"`
	FileCount  int       `json:"fileCount,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

func NewEvent(eventType Type, userID, datasetID string) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		UserID:     userID,
		DatasetID:  datasetID,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher emits dataset lifecycle events. Publishing never fails the caller:
// errors are logged and dropped.
type Publisher interface {
	Publish(ctx context.Context, event Event)
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
}

// publishBatchTimeout bounds how long a partial batch waits before it is flushed.
const publishBatchTimeout = 10 * time.Millisecond

// NewKafkaPublisher returns a publisher whose writes never block the caller:
// messages are enqueued, delivery failures are logged from the completion callback.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireAll,
			Compression:            kafka.Snappy,
			AllowAutoTopicCreation: true,
			BatchTimeout:           publishBatchTimeout,
			Async:                  true,
			Completion:             logDelivery,
		},
	}
}

func logDelivery(messages []kafka.Message, err error) {
	if err == nil {
		log.Tracef("events: delivered %d message(s)", len(messages))
		return
	}
	for _, msg := range messages {
		log.Errorf("events: deliver message for dataset [%s]: %s", msg.Key, err)
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "events.publish")
	var err error
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("event.type", string(event.Type)))

	payload, err := json.Marshal(event)
	if err != nil {
		log.Errorf("events: marshal [%s]: %s", event.Type, err)
		return
	}

	// keyed by dataset, so events of one dataset stay ordered within a partition
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.DatasetID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	})
	if err != nil {
		log.Errorf("events: publish [%s] for dataset [%s]: %s", event.Type, event.DatasetID, err)
		return
	}

	log.Tracef("events: published [%s] for dataset [%s]", event.Type, event.DatasetID)
}

func (p *KafkaPublisher) Close() error {
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("close kafka writer: %w", err)
	}
	return nil
}

// NopPublisher is used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) {}

func (NopPublisher) Close() error { return nil }

// NewPublisher returns a Kafka publisher, or a no-op one when brokers is empty.
func NewPublisher(brokers []string, topic string) Publisher {
	if len(brokers) == 0 {
		log.Debugln("events: no kafka brokers configured, events disabled")
		return NopPublisher{}
	}
	return NewKafkaPublisher(brokers, topic)
}
