package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/hostel-cms/complaint-service/internal/events"
)

// DefaultRedisChannel is the pub/sub channel used when none is configured.
const DefaultRedisChannel = "hostel:complaints"

// RedisSink publishes events as JSON on a Redis pub/sub channel. Pub/sub has
// no headers, so the whole envelope is sent and the notification sits under
// "payload".
type RedisSink struct {
	client  redis.UniversalClient
	channel string
}

// NewRedisSink returns a sink publishing on channel through client.
func NewRedisSink(client redis.UniversalClient, channel string) *RedisSink {
	if channel == "" {
		channel = DefaultRedisChannel
	}
	return &RedisSink{client: client, channel: channel}
}

func (s *RedisSink) Name() string { return "redis" }

func (s *RedisSink) Send(ctx context.Context, event events.Event) error {
	body, err := redisMessage(event)
	if err != nil {
		return err
	}
	return s.client.Publish(ctx, s.channel, body).Err()
}

func redisMessage(event events.Event) ([]byte, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("encode event: %w", err)
	}
	return body, nil
}
