package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
)

// operationMessage is the payload sent downstream for every operation. No
// ordering or delivery guarantee is required of the transport.
type operationMessage struct {
	ID            string `json:"id"`
	NameOperation string `json:"nameOperation"`
}

// Publisher emits fire-and-forget operation notifications to a RabbitMQ topic
// exchange. When constructed without a URI it stays disabled and every Notify
// is a logged no-op.
type Publisher struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
	enabled  bool
	logger   *slog.Logger
}

func NewPublisher(uri, exchange string, logger *slog.Logger) (*Publisher, error) {
	if uri == "" {
		logger.Warn("rabbitmq uri is empty, notifications disabled")
		return &Publisher{
			exchange: exchange,
			enabled:  false,
			logger:   logger,
		}, nil
	}

	conn, err := amqp091.Dial(uri)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	logger.Info("notification publisher initialized", "exchange", exchange)

	return &Publisher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		enabled:  true,
		logger:   logger,
	}, nil
}

// Notify publishes a message tagged with the operation that ran. Each message
// carries a fresh unique id.
func (p *Publisher) Notify(ctx context.Context, operation string) error {
	if !p.enabled {
		p.logger.Debug("notifications disabled, skipping", "operation", operation)
		return nil
	}

	msg := operationMessage{
		ID:            uuid.NewString(),
		NameOperation: operation,
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange, // exchange
		operation,  // routing key
		false,      // mandatory
		false,      // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	p.logger.Debug("notification published", "operation", operation, "message_id", msg.ID)
	return nil
}

func (p *Publisher) Close() error {
	if !p.enabled {
		return nil
	}

	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			p.logger.Error("error closing RabbitMQ channel", "error", err)
		}
	}

	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			return fmt.Errorf("error closing RabbitMQ connection: %w", err)
		}
	}

	return nil
}
