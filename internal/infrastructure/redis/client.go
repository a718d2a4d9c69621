package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	pingInitialInterval = 100 * time.Millisecond
	pingMaxInterval     = 2 * time.Second
	pingMaxElapsedTime  = 15 * time.Second
)

// NewClient creates a new Redis client. The initial ping is retried with
// exponential backoff until pingMaxElapsedTime or ctx expires.
func NewClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	return newClient(ctx, redisURL, pingMaxElapsedTime)
}

func newClient(ctx context.Context, redisURL string, maxElapsed time.Duration) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = pingInitialInterval
	b.MaxInterval = pingMaxInterval
	b.MaxElapsedTime = maxElapsed

	attempt := 0
	err = backoff.Retry(func() error {
		attempt++
		if err := client.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Int("attempt", attempt).Msg("redis not ready, retrying")
			return err
		}
		return nil
	}, backoff.WithContext(b, ctx))
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}
