package repository

import (
	"context"

	"FreightIQ/internal/domain/models"
	domrepo "FreightIQ/internal/domain/repository"
	pkgkafka "FreightIQ/pkg/kafka"
)

// KafkaEventPublisher ships training events to a Kafka topic, keyed by
// forwarder so events for one forwarder stay ordered.
type KafkaEventPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaEventPublisher creates the Kafka publisher.
func NewKafkaEventPublisher(producer *pkgkafka.Producer, topic string) domrepo.EventPublisher {
	return &KafkaEventPublisher{producer: producer, topic: topic}
}

func (p *KafkaEventPublisher) Publish(ctx context.Context, ev models.TrainingEvent) error {
	key := []byte(ev.ForwarderID)
	if len(key) == 0 {
		key = []byte(ev.RequestID)
	}
	return p.producer.Publish(ctx, p.topic, key, ev)
}

func (p *KafkaEventPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
