package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/joshu-sajeev/jobboard/internal/config"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher is the part of an AMQP channel the invalidator needs.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// InvalidationMessage is the body published for every invalidation.
type InvalidationMessage struct {
	Paths      []string  `json:"paths"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BrokerInvalidator publishes invalidations to a RabbitMQ exchange for the
// rendering tier to consume.
type BrokerInvalidator struct {
	cfg       config.BrokerConfig
	publisher Publisher
	log       *slog.Logger
	mu        sync.Mutex
	sleep     func(time.Duration)
}

var (
	_ Invalidator = (*BrokerInvalidator)(nil)
	_ Invalidator = (*LogInvalidator)(nil)
)

func NewBrokerInvalidator(cfg config.BrokerConfig, publisher Publisher, log *slog.Logger) *BrokerInvalidator {
	return &BrokerInvalidator{
		cfg:       cfg,
		publisher: publisher,
		log:       log.With(slog.String("component", "cache")),
		sleep:     time.Sleep,
	}
}

// Invalidate publishes one message, retrying with exponential backoff.
func (b *BrokerInvalidator) Invalidate(ctx context.Context, paths ...string) error {
	body, err := json.Marshal(InvalidationMessage{Paths: paths, OccurredAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("encode invalidation: %w", err)
	}

	retries := max(b.cfg.PublishRetries, 0)
	delay := b.cfg.RetryDelay
	if delay <= 0 {
		delay = 100 * time.Millisecond
	}

	// amqp channels are not safe for concurrent publishing.
	b.mu.Lock()
	defer b.mu.Unlock()

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		lastErr = b.publisher.PublishWithContext(ctx, b.cfg.Exchange, b.cfg.RoutingKey, false, false, amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
		if lastErr == nil {
			b.log.Debug("invalidation published", slog.Any("paths", paths), slog.Int("attempt", attempt+1))
			return nil
		}
		if ctx.Err() != nil {
			break
		}

		if attempt < retries {
			backoff := delay * time.Duration(uint(1)<<uint(attempt))
			b.log.Warn("publish failed, retrying",
				slog.Int("attempt", attempt+1),
				slog.Duration("retry_after", backoff),
				slog.Any("error", lastErr),
			)
			b.sleep(backoff)
		}
	}

	return fmt.Errorf("publish invalidation after %d attempts: %w", retries+1, lastErr)
}

// Connection owns the AMQP connection and channel behind a BrokerInvalidator.
type Connection struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	log     *slog.Logger
}

// Dial connects to RabbitMQ and declares the invalidation exchange.
func Dial(cfg config.BrokerConfig, log *slog.Logger) (*Connection, error) {
	conn, err := amqp.DialConfig(cfg.URL, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange, // name
		"topic",      // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	log.Info("connected to RabbitMQ", slog.String("exchange", cfg.Exchange))
	return &Connection{conn: conn, channel: ch, log: log}, nil
}

func (c *Connection) Channel() *amqp.Channel {
	return c.channel
}

func (c *Connection) Close() error {
	if err := c.channel.Close(); err != nil {
		c.log.Error("failed to close RabbitMQ channel", slog.Any("error", err))
	}
	return c.conn.Close()
}
