package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/2beens/fittracker/internal/telemetry/tracing"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

var _ Publisher = (*KafkaPublisher)(nil)

// KafkaPublisher lazily creates one writer per topic.
type KafkaPublisher struct {
	mu        sync.Mutex
	writers   map[string]messageWriter
	newWriter func(topic string) messageWriter
}

func NewKafkaPublisher(brokers []string) *KafkaPublisher {
	return newKafkaPublisher(func(topic string) messageWriter {
		return &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			RequiredAcks:           kafka.RequireAll,
			Compression:            kafka.Snappy,
			AllowAutoTopicCreation: true,
		}
	})
}

func newKafkaPublisher(newWriter func(topic string) messageWriter) *KafkaPublisher {
	return &KafkaPublisher{
		writers:   make(map[string]messageWriter),
		newWriter: newWriter,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, topic string, events ...Event) (err error) {
	if len(events) == 0 {
		return nil
	}

	ctx, span := tracing.GlobalTracer.Start(ctx, "notify.kafka.publish")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("topic", topic),
		attribute.Int("events", len(events)),
	)

	msgs := make([]kafka.Message, 0, len(events))
	for _, e := range events {
		value, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", e.ID, err)
		}
		msgs = append(msgs, kafka.Message{
			Key:     []byte(e.Key),
			Value:   value,
			Headers: []kafka.Header{{Key: "event_type", Value: []byte(e.Type)}},
		})
	}

	if err := p.writerFor(topic).WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write to %s: %w", topic, err)
	}
	return nil
}

func (p *KafkaPublisher) writerFor(topic string) messageWriter {
	p.mu.Lock()
	defer p.mu.Unlock()

	if w, ok := p.writers[topic]; ok {
		return w
	}
	w := p.newWriter(topic)
	p.writers[topic] = w
	return w
}

// Close flushes and releases all writers.
func (p *KafkaPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var err error
	for topic, w := range p.writers {
		err = multierr.Append(err, w.Close())
		delete(p.writers, topic)
	}
	return err
}
