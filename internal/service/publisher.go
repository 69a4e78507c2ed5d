package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/ruta593/fleet-console/internal/config"
	"github.com/ruta593/fleet-console/internal/queue"
)

// AMQPPublisher publishes layout events to RabbitMQ.  Each publish dials,
// declares the durable queue and sends a persistent message; saves are rare
// so no connection is held between them.
type AMQPPublisher struct {
	url   string
	queue string
}

// NewAMQPPublisher returns nil when the broker is disabled.  Publishing on a
// nil publisher is a no-op.
func NewAMQPPublisher(cfg config.BrokerConfig) *AMQPPublisher {
	if !cfg.Enabled {
		return nil
	}
	return &AMQPPublisher{url: cfg.URL, queue: cfg.Queue}
}

// PublishLayoutSaved sends ev to the layout queue through the default
// exchange.
func (p *AMQPPublisher) PublishLayoutSaved(ctx context.Context, ev queue.LayoutSavedEvent) error {
	if p == nil {
		return nil
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		p.queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		return fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, pub); err != nil {
		return fmt.Errorf("rabbitmq publish: %w", err)
	}
	return nil
}
