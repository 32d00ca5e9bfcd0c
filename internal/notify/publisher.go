package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Publisher sends a notification to every listener of a session.
type Publisher interface {
	Publish(ctx context.Context, sessionID string, n Notification) error
}

// Channel 返回会话对应的 Redis Pub/Sub 频道名。
func Channel(sessionID string) string {
	return "session_notify:" + sessionID
}

// RedisPublisher 通过 Redis Pub/Sub 转发给 WebSocket 连接。
type RedisPublisher struct {
	client redis.UniversalClient
}

func NewRedisPublisher(client redis.UniversalClient) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) Publish(ctx context.Context, sessionID string, n Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	if err := p.client.Publish(ctx, Channel(sessionID), payload).Err(); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}

// NopPublisher drops every notification.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, Notification) error { return nil }
