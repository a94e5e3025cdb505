package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Publisher appends domain events to a single Redis stream.
type Publisher struct {
	client *redis.Client
	stream string
}

func NewPublisher(client *redis.Client, stream string) *Publisher {
	if stream == "" {
		stream = DirectoryEventsStream
	}
	return &Publisher{client: client, stream: stream}
}

func (p *Publisher) Publish(ctx context.Context, eventType string, data any) error {
	event := Event{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]any{
			"type":  eventType,
			"event": eventJSON,
		},
	}

	if _, err := p.client.XAdd(ctx, args).Result(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}
