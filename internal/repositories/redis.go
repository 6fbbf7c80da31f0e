package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/kwatiwellness/commerce-platform/internal/config"
	"github.com/kwatiwellness/commerce-platform/internal/utils"
	"github.com/redis/go-redis/v9"
)

func NewRedisClient(cfg *config.Config) (*redis.Client, error) {

	redisURL := cfg.RedisConnect.GetDSN()
	slog.Info("Connecting to Redis", slog.String("url", fmt.Sprintf("redis://%s:<password>@%s:%s", cfg.RedisConnect.Username, cfg.RedisConnect.Host, cfg.RedisConnect.Port)))

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		slog.Error("Failed to parse Redis URL", slog.Any("error", err))
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	opt.DB = cfg.RedisConnect.DB

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		slog.Error("Failed to connect to Redis", slog.Any("error", err))
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("✅ Successfully connected to Redis")
	return client, nil

}

// Each aggregate is stored whole as a JSON blob under its per-user key. The
// blob is the unit of persistence: a mutation loads it, applies the change and
// writes the full document back.

// getAggregate loads and unmarshals the aggregate at key. A missing key yields
// (nil, nil) so callers can initialize a fresh aggregate.
func getAggregate[T any](ctx context.Context, client *redis.Client, key string) (*T, error) {

	storeCtx, cancel := utils.WithStoreTimeout(ctx)
	defer cancel()

	payload, err := client.Get(storeCtx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load %q: %w", key, err)
	}

	var aggregate T
	if err := json.Unmarshal(payload, &aggregate); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %q: %w", key, err)
	}

	return &aggregate, nil
}

// saveAggregate marshals the aggregate and writes it back whole, replacing
// the previous document. No TTL: aggregates live until explicitly cleared.
func saveAggregate(ctx context.Context, client *redis.Client, key string, aggregate any) error {

	storeCtx, cancel := utils.WithStoreTimeout(ctx)
	defer cancel()

	payload, err := json.Marshal(aggregate)
	if err != nil {
		return fmt.Errorf("failed to marshal %q: %w", key, err)
	}

	if err := client.Set(storeCtx, key, payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to save %q: %w", key, err)
	}

	return nil
}

func deleteAggregate(ctx context.Context, client *redis.Client, key string) error {

	storeCtx, cancel := utils.WithStoreTimeout(ctx)
	defer cancel()

	if err := client.Del(storeCtx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}

	return nil
}
