package output

import (
	"context"
	"fmt"
	"time"

	"github.com/chrisdamba/foodorder/internal/models"
	"github.com/redis/go-redis/v9"
)

// RedisOutput appends each event to a Redis stream named after the topic.
type RedisOutput struct {
	client  *redis.Client
	maxLen  int64
	timeout time.Duration
}

func NewRedisClient(config models.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         config.Address,
		Password:     config.Password,
		DB:           config.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
}

func NewRedisOutput(client *redis.Client, maxLen int64) *RedisOutput {
	return &RedisOutput{client: client, maxLen: maxLen, timeout: 3 * time.Second}
}

// OpenRedisOutput connects and pings the configured server.
func OpenRedisOutput(ctx context.Context, config models.RedisConfig) (*RedisOutput, error) {
	client := NewRedisClient(config)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return NewRedisOutput(client, config.StreamMaxLen), nil
}

func (r *RedisOutput) WriteMessage(topic string, msg []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	args := &redis.XAddArgs{
		Stream: topic,
		Values: map[string]interface{}{"event": string(msg)},
	}
	if r.maxLen > 0 {
		args.MaxLen = r.maxLen
		args.Approx = true
	}
	if err := r.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("failed to append to stream %s: %w", topic, err)
	}
	return nil
}

func (r *RedisOutput) Close() error {
	if r.client == nil {
		return nil
	}
	err := r.client.Close()
	r.client = nil
	return err
}
