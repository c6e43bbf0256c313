package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"goonj/internal/domain"
)

// Publisher queues confirmation requests as persistent JSON messages.
type Publisher struct {
	client *Client
}

// NewPublisher returns a domain.ConfirmationPublisher writing to the client's queue.
func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

func (p *Publisher) Publish(ctx context.Context, req *domain.ConfirmationRequest) error {
	if req == nil {
		return fmt.Errorf("confirmation request is nil")
	}
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to encode confirmation: %w", err)
	}
	err = p.client.channel.PublishWithContext(ctx, "", p.client.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    req.RegistrationID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish confirmation: %w", err)
	}
	return nil
}
