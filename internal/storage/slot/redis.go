package slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/cafebonheur/pos/internal/config"
)

var _ Slot = (*RedisSlot)(nil)
var _ HealthChecker = (*RedisSlot)(nil)

// RedisSlot stores the state under a single redis key, for deployments
// where the terminal's local disk is not durable.
type RedisSlot struct {
	client *redis.Client
	key    string
}

// NewRedisSlot connects to redis and verifies the connection.
func NewRedisSlot(ctx context.Context, cfg config.Redis, key string) (*RedisSlot, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &RedisSlot{client: client, key: key}, nil
}

func (r *RedisSlot) Read(ctx context.Context) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get slot key: %w", err)
	}
	return data, nil
}

func (r *RedisSlot) Write(ctx context.Context, data []byte) error {
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("set slot key: %w", err)
	}
	return nil
}

func (r *RedisSlot) IsHealthy(ctx context.Context) (bool, error) {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return false, fmt.Errorf("ping redis: %w", err)
	}
	return true, nil
}

// Close releases the underlying redis connection.
func (r *RedisSlot) Close() error {
	return r.client.Close()
}
