package broker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

type Config struct {
	Brokers []string
	Topic   string
}

// Publisher emits domain events onto a single topic, keyed by entity id.
// Publishing is best-effort everywhere it is used: a broker outage must
// never fail the request that produced the event.
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(cfg *Config) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.LeastBytes{},
			WriteTimeout: 10 * time.Second,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *Publisher) Publish(ctx context.Context, eventType, key string, payload any) error {
	value, err := json.Marshal(struct {
		Type       string    `json:"type"`
		OccurredAt time.Time `json:"occurred_at"`
		Payload    any       `json:"payload"`
	}{
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	})
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
	})
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
