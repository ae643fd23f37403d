package storage

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	"solwallet/internal/domain"
)

// Redis is a domain.Storage backed by a Redis client. Keys are stored
// verbatim without TTL; sessions live until removed.
type Redis struct {
	client *redis.Client
}

// NewRedis returns a Redis-backed store.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// Get returns the value for key and whether it was present.
func (s *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, "redis get")
	}
	return v, true, nil
}

// Set stores value under key.
func (s *Redis) Set(ctx context.Context, key, value string) error {
	return errors.Wrap(s.client.Set(ctx, key, value, 0).Err(), "redis set")
}

// Remove deletes key. Removing an absent key is not an error.
func (s *Redis) Remove(ctx context.Context, key string) error {
	return errors.Wrap(s.client.Del(ctx, key).Err(), "redis del")
}

// Compile-time assertion that Redis implements domain.Storage.
var _ domain.Storage = (*Redis)(nil)
