// Package notify publishes domain events about recorded workouts and
// unlocked achievements to a message broker.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	EventWorkoutRecorded     = "workout.recorded"
	EventHistoryCleared      = "workout.history_cleared"
	EventAchievementUnlocked = "achievement.unlocked"
	EventAchievementsReset   = "achievement.reset"
)

type Event struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurredAt"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	// Key selects the partition; events with the same key keep their order.
	Key string `json:"-"`
}

func NewEvent(eventType, key string, payload any, occurredAt time.Time) (Event, error) {
	e := Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: occurredAt.UTC(),
		Key:        key,
	}
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return Event{}, fmt.Errorf("marshal %s payload: %w", eventType, err)
		}
		e.Payload = b
	}
	return e, nil
}

type Publisher interface {
	Publish(ctx context.Context, topic string, events ...Event) error
	Close() error
}

var _ Publisher = NoopPublisher{}

// NoopPublisher drops every event. It is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, ...Event) error { return nil }
func (NoopPublisher) Close() error { return nil }
