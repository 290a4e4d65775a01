package events

import (
	"context"
	"encoding/json"
	"time"

	"loja-api/internal/service"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Producer publishes order lifecycle events. Publishing is best effort:
// callers log failures and move on.
type Producer struct {
	writer *kafka.Writer
	log    *zap.Logger
}

func NewProducer(brokers []string, topic string, log *zap.Logger) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
		},
		log: log,
	}
}

func (p *Producer) PublishOrderCreated(ctx context.Context, ev service.OrderCreatedEvent) error {
	return p.publish(ctx, "pedido.criado", ev.OrderID.String(), ev)
}

func (p *Producer) PublishStatusChanged(ctx context.Context, ev service.StatusChangedEvent) error {
	return p.publish(ctx, "pedido.status-entrega", ev.OrderID.String(), ev)
}

func (p *Producer) publish(ctx context.Context, eventType, key string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: body,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(eventType)},
		},
	})
	if err != nil {
		p.log.Warn("kafka publish failed",
			zap.String("event_type", eventType), zap.Error(err))
		return err
	}
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
