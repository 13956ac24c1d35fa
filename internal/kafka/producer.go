package kafka

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Domain event types published to the events topic
const (
	EventNotificationCreated  = "notification.created"
	EventPostCreated          = "post.created"
	EventReportFiled          = "report.filed"
	EventReportDismissed      = "report.dismissed"
	EventReportResolved       = "report.resolved"
	EventProfessionalVerified = "professional.verified"
	EventProfessionalRejected = "professional.rejected"
)

// Event is the envelope published for every domain event
type Event struct {
	Type       string    `json:"type"`
	SubjectID  string    `json:"subject_id"`
	ActorID    string    `json:"actor_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Producer publishes domain events. A nil Producer is valid and drops every
// event, so callers never need to check whether kafka is enabled.
type Producer struct {
	mu      sync.Mutex
	writers map[string]*kafka.Writer
	brokers []string
	client  string
	logger  *zap.Logger
}

// NewProducer creates a new kafka producer
func NewProducer(brokers []string, clientID string, logger *zap.Logger) *Producer {
	return &Producer{
		writers: make(map[string]*kafka.Writer),
		brokers: brokers,
		client:  clientID,
		logger:  logger,
	}
}

// getWriter returns the writer for a topic, creating it on first use
func (p *Producer) getWriter(topic string) *kafka.Writer {
	p.mu.Lock()
	defer p.mu.Unlock()

	if writer, exists := p.writers[topic]; exists {
		return writer
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(p.brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Transport: &kafka.Transport{
			ClientID: p.client,
		},
	}

	p.writers[topic] = writer
	return writer
}

// Publish sends one event to the topic. Failures are logged, not returned:
// event delivery is best-effort and must never fail the triggering operation.
func (p *Producer) Publish(ctx context.Context, topic string, event Event) {
	if p == nil {
		return
	}

	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	value, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("failed to marshal event",
			zap.String("topic", topic),
			zap.String("type", event.Type),
			zap.Error(err))
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.SubjectID),
		Value: value,
		Time:  time.Now(),
	}

	if err := p.getWriter(topic).WriteMessages(ctx, msg); err != nil {
		p.logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("type", event.Type),
			zap.Error(err))
	}
}

// Close shuts down every writer
func (p *Producer) Close() error {
	if p == nil {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for topic, writer := range p.writers {
		if err := writer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(p.writers, topic)
	}
	return firstErr
}
