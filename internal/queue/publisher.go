package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher sends RoomBookedEvent messages to RabbitMQ.  Each publish
// opens its own connection, so a broker outage never affects the
// request that triggered the event beyond the returned error.
type Publisher struct {
	url string
	log *zap.Logger
}

// NewPublisher returns a publisher for the broker at url.
func NewPublisher(url string, log *zap.Logger) *Publisher {
	return &Publisher{url: url, log: log}
}

// PublishRoomBooked declares the durable room.booked queue and publishes
// ev as a persistent JSON message on it.
func (p *Publisher) PublishRoomBooked(ctx context.Context, ev RoomBookedEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("dial broker: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(RoomBookedQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	// default exchange, routing key = queue name
	if err := ch.PublishWithContext(ctx, "", RoomBookedQueue, false, false, pub); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	p.log.Debug("room booked event published", zap.String("date", ev.Date))
	return nil
}

// NopPublisher drops every event.  It is used when events are disabled.
type NopPublisher struct{}

func (NopPublisher) PublishRoomBooked(context.Context, RoomBookedEvent) error { return nil }
