package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const headerEventType = "event_type"

type Producer struct {
	Writer WriterInterface
	Logger *zap.SugaredLogger
}

// NewProducer пишет синхронно из обработчиков запросов, поэтому пачки не копятся дольше 10мс
func NewProducer(brokers []string, topic string, logger *zap.SugaredLogger) *Producer {
	return &Producer{
		Writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			BatchTimeout:           10 * time.Millisecond,
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
		Logger: logger,
	}
}

// SendEvent пишет событие с ключом сессии, события одного посетителя попадают в одну партицию
func (p *Producer) SendEvent(ctx context.Context, event Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.Writer.WriteMessages(ctx, kafka.Message{
		Key:     []byte(event.SessionID),
		Value:   value,
		Time:    event.Timestamp,
		Headers: []kafka.Header{{Key: headerEventType, Value: []byte(event.Type)}},
	})
	if err != nil {
		p.Logger.Errorf("Failed to write Kafka message: %v", err)
		return err
	}

	return nil
}

func (p *Producer) Close() error {
	return p.Writer.Close()
}

// NopProducer используется, когда брокеры не настроены
type NopProducer struct {
	Logger *zap.SugaredLogger
}

func (p *NopProducer) SendEvent(_ context.Context, event Event) error {
	p.Logger.Debugf("kafka disabled, dropping %s event", event.Type)
	return nil
}

func (p *NopProducer) Close() error {
	return nil
}
