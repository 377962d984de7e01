package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisStore backs the response cache with Redis so several gateway replicas
// share one view of what is cached and what has been invalidated.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewRedisStore connects to Redis and verifies the connection with a ping.
func NewRedisStore(ctx context.Context, addr, password string, db int, ttl time.Duration, log *zap.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &RedisStore{client: client, ttl: ttl, log: log}, nil
}

func (s *RedisStore) Get(ctx context.Context, key Key) ([]byte, bool) {
	payload, err := s.client.Get(ctx, key.String()).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		// A broken cache degrades to a miss; the backend still answers.
		s.log.Warn("redis get failed", zap.String("key", key.String()), zap.Error(err))
		return nil, false
	}
	return payload, true
}

func (s *RedisStore) Set(ctx context.Context, key Key, payload []byte) {
	if err := s.client.Set(ctx, key.String(), payload, s.ttl).Err(); err != nil {
		s.log.Warn("redis set failed", zap.String("key", key.String()), zap.Error(err))
	}
}

func (s *RedisStore) Invalidate(ctx context.Context, keys ...Key) {
	if len(keys) == 0 {
		return
	}
	names := make([]string, len(keys))
	for i, key := range keys {
		names[i] = key.String()
	}
	if err := s.client.Del(ctx, names...).Err(); err != nil {
		s.log.Warn("redis invalidate failed", zap.Strings("keys", names), zap.Error(err))
	}
}

// Close releases the underlying Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
