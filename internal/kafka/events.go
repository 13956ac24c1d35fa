package kafka

import (
	"context"
)

// Events binds a producer to the configured events topic. A nil *Events
// drops everything, same as a nil Producer.
type Events struct {
	producer *Producer
	topic    string
}

// NewEvents creates an event emitter for one topic
func NewEvents(producer *Producer, topic string) *Events {
	if producer == nil {
		return nil
	}
	return &Events{producer: producer, topic: topic}
}

// Emit publishes one domain event, best-effort
func (e *Events) Emit(ctx context.Context, eventType, subjectID, actorID string) {
	if e == nil {
		return
	}

	e.producer.Publish(ctx, e.topic, Event{
		Type:      eventType,
		SubjectID: subjectID,
		ActorID:   actorID,
	})
}
