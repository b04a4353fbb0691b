package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSnapshotStore keeps one cached quiz-session snapshot per client key.
// Redis enforces the TTL; the reconciler additionally checks the embedded
// timestamp so both layers agree on expiry.
type RedisSnapshotStore struct {
	client *redis.Client
	prefix string // e.g. "medquiz:session_cache:"
}

func NewRedisSnapshotStore(client *redis.Client, prefix string) *RedisSnapshotStore {
	return &RedisSnapshotStore{
		client: client,
		prefix: prefix,
	}
}

func (s *RedisSnapshotStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, s.buildKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read snapshot from redis: %w", err)
	}
	return data, true, nil
}

func (s *RedisSnapshotStore) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if key == "" {
		return errors.New("snapshot key cannot be empty")
	}
	if err := s.client.Set(ctx, s.buildKey(key), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store snapshot in redis: %w", err)
	}
	return nil
}

func (s *RedisSnapshotStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.buildKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete snapshot from redis: %w", err)
	}
	return nil
}

func (s *RedisSnapshotStore) buildKey(key string) string {
	return s.prefix + key
}
