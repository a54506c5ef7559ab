package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
)

// envelope: формат события в топике.
type envelope struct {
	ID            string          `json:"id"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	EventType     string          `json:"event_type"`
	Payload       json.RawMessage `json:"payload"`
	PublishedAt   time.Time       `json:"published_at"`
}

// OutboxPublisher публикует outbox-сообщения в топик, выбранный по типу агрегата.
type OutboxPublisher struct {
	producer *Producer
	topics   Topics
}

// NewOutboxPublisher создаёт publisher для outbox worker.
func NewOutboxPublisher(producer *Producer, topics Topics) *OutboxPublisher {
	return &OutboxPublisher{producer: producer, topics: topics}
}

// Publish отправляет событие; ключ партиционирования: идентификатор агрегата.
func (p *OutboxPublisher) Publish(ctx context.Context, event domain.OutboxMessage) error {
	value, err := json.Marshal(envelope{
		ID:            event.ID,
		AggregateType: event.AggregateType,
		AggregateID:   event.AggregateID,
		EventType:     event.EventType,
		Payload:       rawPayload(event.Payload),
		PublishedAt:   time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return p.producer.Send(ctx, Message{
		Topic: p.topics.For(event.AggregateType),
		Key:   partitionKey(event),
		Value: value,
		Headers: map[string]string{
			HeaderEventType:     event.EventType,
			HeaderAggregateType: event.AggregateType,
		},
	})
}

// DeadLetterPublisher отправляет исчерпавшие попытки сообщения в DLQ-топик.
type DeadLetterPublisher struct {
	producer *Producer
	topics   Topics
}

// NewDeadLetterPublisher создаёт publisher DLQ.
func NewDeadLetterPublisher(producer *Producer, topics Topics) *DeadLetterPublisher {
	return &DeadLetterPublisher{producer: producer, topics: topics}
}

// PublishDeadLetter отправляет исходное сообщение с причиной отказа в заголовках.
func (p *DeadLetterPublisher) PublishDeadLetter(ctx context.Context, event domain.OutboxMessage, cause error) error {
	value, err := json.Marshal(envelope{
		ID:            event.ID,
		AggregateType: event.AggregateType,
		AggregateID:   event.AggregateID,
		EventType:     event.EventType,
		Payload:       rawPayload(event.Payload),
		PublishedAt:   time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	headers := map[string]string{
		HeaderEventType:     event.EventType,
		HeaderAggregateType: event.AggregateType,
		HeaderOriginalTopic: p.topics.For(event.AggregateType),
		HeaderFailedAt:      time.Now().UTC().Format(time.RFC3339Nano),
	}
	if cause != nil {
		headers[HeaderErrorMessage] = cause.Error()
	}

	return p.producer.Send(ctx, Message{
		Topic:   orDefault(p.topics.DeadLetter, TopicDeadLetter),
		Key:     partitionKey(event),
		Value:   value,
		Headers: headers,
	})
}

func partitionKey(event domain.OutboxMessage) string {
	if event.AggregateID != "" {
		return event.AggregateID
	}
	return event.ID
}

func rawPayload(payload []byte) json.RawMessage {
	if !json.Valid(payload) {
		quoted, _ := json.Marshal(string(payload))
		return quoted
	}
	return payload
}

var _ domain.OutboxPublisher = (*OutboxPublisher)(nil)
