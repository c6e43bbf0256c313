package rabbit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Handler processes one message body.
type Handler func(ctx context.Context, body []byte) error

type permanentError struct{ err error }

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying. The message is dropped instead of requeued.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent reports whether err was marked with Permanent.
func IsPermanent(err error) bool {
	var p *permanentError
	return errors.As(err, &p)
}

// Consumer delivers queued messages to a Handler with manual acknowledgement.
type Consumer struct {
	client   *Client
	logger   *slog.Logger
	prefetch int
}

// NewConsumer returns a consumer on the client's queue.
func NewConsumer(client *Client, prefetch int, logger *slog.Logger) *Consumer {
	if prefetch <= 0 {
		prefetch = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Consumer{client: client, prefetch: prefetch, logger: logger}
}

// Run consumes until ctx is done or the channel closes. Successful messages are acked.
// Failed messages are requeued once and dropped on the second failure or when the
// error is permanent.
func (c *Consumer) Run(ctx context.Context, handle Handler) error {
	if err := c.client.channel.Qos(c.prefetch, 0, false); err != nil {
		return fmt.Errorf("failed to set prefetch: %w", err)
	}
	msgs, err := c.client.channel.Consume(c.client.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming %s: %w", c.client.queue, err)
	}
	c.logger.InfoContext(ctx, "consuming", "queue", c.client.queue)

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.New("delivery channel closed")
			}
			c.deliver(ctx, d, handle)
		}
	}
}

func (c *Consumer) deliver(ctx context.Context, d amqp.Delivery, handle Handler) {
	err := handle(ctx, d.Body)
	if err == nil {
		if aerr := d.Ack(false); aerr != nil {
			c.logger.ErrorContext(ctx, "ack failed", "message_id", d.MessageId, "err", aerr)
		}
		return
	}
	requeue := !d.Redelivered && !IsPermanent(err)
	c.logger.WarnContext(ctx, "message failed", "message_id", d.MessageId, "redelivered", d.Redelivered, "requeue", requeue, "err", err)
	if nerr := d.Nack(false, requeue); nerr != nil {
		c.logger.ErrorContext(ctx, "nack failed", "message_id", d.MessageId, "err", nerr)
	}
}
