package notify

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// MessageWriter exposes the writer seam to the external test package.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

func NewKafkaPublisherWithWriters(newWriter func(topic string) MessageWriter) *KafkaPublisher {
	return newKafkaPublisher(func(topic string) messageWriter {
		return newWriter(topic)
	})
}
