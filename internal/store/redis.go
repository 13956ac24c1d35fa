package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisStore is a RecordStore backed by redis. Values are stored without
// expiry; retention is the domain's concern, not the store's.
type RedisStore struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisStore connects to redis and verifies the connection
func NewRedisStore(ctx context.Context, url, password string, db int, logger *zap.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     url,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return &RedisStore{client: client, logger: logger}, nil
}

// Get returns the value for key, or (nil, nil) when absent
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		s.logger.Error("redis get failed", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return value, nil
}

// Set replaces the value for key
func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		s.logger.Error("redis set failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// Delete removes the key
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		s.logger.Error("redis delete failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// Close releases the underlying client
func (s *RedisStore) Close() error {
	return s.client.Close()
}
