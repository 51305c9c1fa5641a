package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Pub/Sub channel for transit digests: astro:digest:{profile_id}
const digestChannelPrefix = "astro:digest:"

// DigestPublisher fans transit digests out over Redis Pub/Sub. Nothing is stored.
type DigestPublisher struct {
	client *redis.Client
}

// NewDigestPublisher creates a new DigestPublisher
func NewDigestPublisher(client *redis.Client) *DigestPublisher {
	return &DigestPublisher{client: client}
}

// Publish sends payload as JSON to the profile's channel and returns the
// number of subscribers that received it.
func (p *DigestPublisher) Publish(ctx context.Context, profileID string, payload any) (int64, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal digest: %w", err)
	}
	n, err := p.client.Publish(ctx, DigestChannel(profileID), data).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to publish digest: %w", err)
	}
	return n, nil
}

// DigestChannel names the channel a profile's digests are published on.
func DigestChannel(profileID string) string {
	return fmt.Sprintf("%s%s", digestChannelPrefix, profileID)
}

// Subscribe relays digest payloads published for a profile until ctx ends.
// The subscription is confirmed before Subscribe returns.
func (p *DigestPublisher) Subscribe(ctx context.Context, profileID string) (<-chan string, error) {
	sub := p.client.Subscribe(ctx, DigestChannel(profileID))
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, fmt.Errorf("failed to subscribe to digests: %w", err)
	}

	out := make(chan string)
	go func() {
		defer close(out)
		defer sub.Close()
		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case out <- msg.Payload:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
