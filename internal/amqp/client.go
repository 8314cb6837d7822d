// Package amqp carries ledger change events between the API server and
// the export worker over RabbitMQ: a durable direct exchange bound to a
// durable queue, persistent JSON messages.
package amqp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"grana/internal/core"
	"grana/internal/ledger"
	applog "grana/internal/log"
)

const publishTimeout = 5 * time.Second

// Client publishes and consumes ledger change events. It implements
// ledger.EventPublisher on the server side; the worker uses Consume.
type Client struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
	queue    string
	logger   *slog.Logger
}

var _ ledger.EventPublisher = (*Client)(nil)

func NewClient(url, exchange, queue string, logger *applog.Logger) (*Client, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	c := &Client{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		queue:    queue,
		logger:   logger.WithComponent(applog.ComponentAMQP).Logger,
	}
	if err := c.declare(); err != nil {
		c.Close()
		return nil, fmt.Errorf("declare topology: %w", err)
	}
	return c, nil
}

func (c *Client) declare() error {
	if err := c.channel.ExchangeDeclare(c.exchange, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}
	if _, err := c.channel.QueueDeclare(c.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}
	// Routing key matches the queue name on a direct exchange.
	if err := c.channel.QueueBind(c.queue, c.queue, c.exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	return nil
}

func (c *Client) PublishExpenseUpsert(ctx context.Context, e core.Expense) error {
	return c.publish(ctx, newExpenseEvent(KindExpenseUpsert, e))
}

func (c *Client) PublishExpenseDelete(ctx context.Context, e core.Expense) error {
	return c.publish(ctx, newExpenseEvent(KindExpenseDelete, e))
}

func (c *Client) PublishIncomeUpsert(ctx context.Context, a core.AdditionalIncome) error {
	return c.publish(ctx, newIncomeEvent(KindIncomeUpsert, a))
}

func (c *Client) PublishIncomeDelete(ctx context.Context, a core.AdditionalIncome) error {
	return c.publish(ctx, newIncomeEvent(KindIncomeDelete, a))
}

func (c *Client) publish(ctx context.Context, event Event) error {
	body, err := event.encode()
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = c.channel.PublishWithContext(ctx,
		c.exchange,
		c.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    event.Timestamp,
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("publish %s: %w", event.Kind, err)
	}
	c.logger.DebugContext(ctx, "Event published", "kind", string(event.Kind))
	return nil
}

// Consume delivers events to the handler until the context ends. A
// handler error nacks with requeue; an undecodable message is dropped.
func (c *Client) Consume(ctx context.Context, handler func(context.Context, Event) error) error {
	deliveries, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}
	c.logger.InfoContext(ctx, "Consuming ledger events", "queue", c.queue)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			event, err := DecodeEvent(delivery.Body)
			if err != nil {
				c.logger.ErrorContext(ctx, "Dropping malformed event", applog.FieldError, err)
				delivery.Nack(false, false)
				continue
			}
			if err := handler(ctx, event); err != nil {
				c.logger.ErrorContext(ctx, "Event handling failed, requeueing",
					"kind", string(event.Kind), applog.FieldError, err)
				delivery.Nack(false, true)
				continue
			}
			delivery.Ack(false)
		}
	}
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
