package repository

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// SettingsRepository is the key-value store backing persisted screener state
// (scanner params, watchlist). Values are stored as whole JSON documents.
type SettingsRepository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// NewSettingsRepository creates a Redis-backed settings repository.
func NewSettingsRepository(client *redis.Client) SettingsRepository {
	return &settingsRepository{client: client}
}

type settingsRepository struct {
	client *redis.Client
}

// Get returns the stored value and whether the key exists.
func (r *settingsRepository) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set stores the value without expiration.
func (r *settingsRepository) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value, 0).Err()
}

// Delete removes the key. Deleting a missing key is a no-op.
func (r *settingsRepository) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
