package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
)

// Publisher forwards appointment facts to a Kafka topic for the
// notification subsystem. Messages are keyed by appointment id so every fact
// for one appointment lands on the same partition.
type Publisher struct {
	writer *kafka.Writer
	topic  string
}

// message is the wire shape consumers read.
type message struct {
	EventID    string    `json:"eventId"`
	EventType  string    `json:"eventType"`
	Entity     string    `json:"entity"`
	EntityID   string    `json:"entityId"`
	BarberID   *uint     `json:"barberId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data,omitempty"`
}

func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 50 * time.Millisecond,
		},
		topic: topic,
	}
}

func (p *Publisher) Name() string { return "kafka" }

func (p *Publisher) Write(ctx context.Context, ev audit.Event) error {
	msg, err := encode(ev)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

func encode(ev audit.Event) (kafka.Message, error) {
	eventID := uuid.NewString()
	body, err := json.Marshal(message{
		EventID:    eventID,
		EventType:  ev.Action,
		Entity:     ev.Entity,
		EntityID:   ev.EntityID,
		BarberID:   ev.BarberID,
		OccurredAt: ev.OccurredAt.UTC(),
		Data:       ev.Metadata,
	})
	if err != nil {
		return kafka.Message{}, err
	}

	return kafka.Message{
		Key:   []byte(ev.EntityID),
		Value: body,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(eventID)},
			{Key: "event_type", Value: []byte(ev.Action)},
		},
	}, nil
}

var _ audit.Sink = (*Publisher)(nil)
