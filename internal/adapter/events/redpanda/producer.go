// Package redpanda publishes application lifecycle events to Redpanda/Kafka.
//
// Events are an outbound notification stream for downstream consumers
// (notifications, analytics); the API never blocks a mutation on delivery.
package redpanda

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/careerflowhq/careerflow-api/internal/domain"
)

// TopicApplicationEvents is the Kafka topic for application lifecycle events.
const TopicApplicationEvents = "application-events"

// Producer wraps a Kafka producer and implements domain.EventPublisher.
type Producer struct {
	client *kgo.Client
	topic  string
}

// NewProducer constructs a Producer and ensures the events topic exists.
func NewProducer(brokers []string) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("no seed brokers provided")
	}
	slog.Info("creating redpanda producer", slog.Any("brokers", brokers))

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.RequestRetries(10),
		kgo.ProducerBatchMaxBytes(1000000),
	)
	if err != nil {
		return nil, fmt.Errorf("redpanda client: %w", err)
	}

	if err := createTopicIfNotExists(context.Background(), client, TopicApplicationEvents, 1, 1); err != nil {
		slog.Warn("failed to create topic, it may already exist",
			slog.String("topic", TopicApplicationEvents),
			slog.Any("error", err))
	}

	return &Producer{client: client, topic: TopicApplicationEvents}, nil
}

// PublishApplicationEvent produces one event record, keyed by application id
// so all events of one application stay ordered on a single partition.
func (p *Producer) PublishApplicationEvent(ctx domain.Context, ev domain.ApplicationEvent) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("op=events.publish: %w", err)
	}
	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(ev.ApplicationID),
		Value: b,
		Headers: []kgo.RecordHeader{
			{Key: "event_type", Value: []byte(ev.Type)},
			{Key: "job_id", Value: []byte(ev.JobID)},
		},
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("op=events.publish: %w", err)
	}
	return nil
}

// Ping checks broker connectivity for readiness probes.
func (p *Producer) Ping(ctx context.Context) error {
	return p.client.Ping(ctx)
}

// Close flushes and closes the underlying client.
func (p *Producer) Close() {
	p.client.Close()
}
