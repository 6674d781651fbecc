package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/sngm3741/ugym-konect/api/internal/public/application"
)

// channel is the subset of *amqp.Channel the publisher needs.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher implements application.CheckoutPublisher over RabbitMQ.
type Publisher struct {
	ch       channel
	exchange string
}

// NewPublisher opens a channel and declares the checkout queue.
// With a non-empty exchange the queue is bound to it as a durable topic exchange.
func NewPublisher(conn *amqp.Connection, exchange string) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(CartCheckedOutQueue, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare %s: %w", CartCheckedOutQueue, err)
	}
	if exchange != "" {
		if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
			return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
		}
		if err := ch.QueueBind(CartCheckedOutQueue, CartCheckedOutQueue, exchange, false, nil); err != nil {
			return nil, fmt.Errorf("bind %s: %w", CartCheckedOutQueue, err)
		}
	}

	return &Publisher{ch: ch, exchange: exchange}, nil
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}

func (p *Publisher) PublishCartCheckedOut(ctx context.Context, ev application.CheckoutEvent) error {
	body, err := json.Marshal(newCartCheckedOutEvent(ev))
	if err != nil {
		return fmt.Errorf("marshal CartCheckedOut: %w", err)
	}
	return p.publishJSON(ctx, CartCheckedOutQueue, ev.EventID, body)
}

func (p *Publisher) publishJSON(ctx context.Context, routingKey, messageID string, body []byte) error {
	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return p.ch.PublishWithContext(
		pubCtx,
		p.exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    messageID,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
}

// LogPublisher stands in for RabbitMQ in local development: checkouts are logged and dropped.
type LogPublisher struct {
	Logger *log.Logger
}

func (p LogPublisher) PublishCartCheckedOut(ctx context.Context, ev application.CheckoutEvent) error {
	body, err := json.Marshal(newCartCheckedOutEvent(ev))
	if err != nil {
		return fmt.Errorf("marshal CartCheckedOut: %w", err)
	}
	if p.Logger != nil {
		p.Logger.Printf("checkout event (no broker configured): %s", body)
	}
	return nil
}
