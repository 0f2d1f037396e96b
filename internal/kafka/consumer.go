package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	kgo "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	DefaultMaxAttempts = 3
	DefaultBackoff     = 500 * time.Millisecond

	resultProcessed = "processed"
	resultInvalid   = "invalid"
	resultFailed    = "failed"
)

var eventsConsumed = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "shop_events_consumed_total",
		Help: "Shop events read from Kafka by result",
	},
	[]string{"type", "result"},
)

func init() {
	prometheus.MustRegister(eventsConsumed)
}

// Consumer читает события магазина из топика в составе consumer group
type Consumer struct {
	Reader      ReaderInterface
	Logger      *zap.SugaredLogger
	MaxAttempts int
	Backoff     time.Duration
}

func NewConsumer(brokers []string, topic, groupID string, logger *zap.SugaredLogger) *Consumer {
	return &Consumer{
		Reader: kgo.NewReader(kgo.ReaderConfig{
			Brokers:  brokers,
			Topic:    topic,
			GroupID:  groupID,
			MinBytes: 1,
			MaxBytes: 10e6, // 10MB
			MaxWait:  time.Second,
		}),
		Logger:      logger,
		MaxAttempts: DefaultMaxAttempts,
		Backoff:     DefaultBackoff,
	}
}

// Consume читает события до отмены контекста.
// Битые события пропускаются, ошибка обработчика повторяется MaxAttempts раз,
// после чего событие тоже пропускается. Смещение коммитится в любом случае
func (c *Consumer) Consume(ctx context.Context, handler func(context.Context, Event) error) {
	for {
		msg, err := c.Reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return
			}
			c.Logger.Errorf("Failed to fetch message: %v", err)
			continue
		}

		if !c.handle(ctx, msg, handler) {
			return
		}

		if err := c.Reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return
			}
			c.Logger.Warnw("Failed to commit offset", "partition", msg.Partition, "offset", msg.Offset, "err", err)
		}
	}
}

// handle возвращает false, если контекст отменили во время повторов
func (c *Consumer) handle(ctx context.Context, msg kgo.Message, handler func(context.Context, Event) error) bool {
	var event Event
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		c.Logger.Warnw("Skipping malformed event", "offset", msg.Offset, "err", err)
		eventsConsumed.WithLabelValues("unknown", resultInvalid).Inc()
		return true
	}
	if err := event.Validate(); err != nil {
		c.Logger.Warnw("Skipping invalid event", "offset", msg.Offset, "err", err)
		eventsConsumed.WithLabelValues(string(event.Type), resultInvalid).Inc()
		return true
	}

	attempts := c.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; ; attempt++ {
		err := handler(ctx, event)
		if err == nil {
			eventsConsumed.WithLabelValues(string(event.Type), resultProcessed).Inc()
			return true
		}

		if attempt >= attempts {
			c.Logger.Errorw("Dropping event after retries",
				"type", event.Type, "session_id", event.SessionID, "attempts", attempt, "err", err)
			eventsConsumed.WithLabelValues(string(event.Type), resultFailed).Inc()
			return true
		}

		c.Logger.Warnw("Failed to process event, retrying", "type", event.Type, "attempt", attempt, "err", err)
		select {
		case <-ctx.Done():
			return false
		case <-time.After(c.Backoff):
		}
	}
}

func (c *Consumer) Close() error {
	return c.Reader.Close()
}
