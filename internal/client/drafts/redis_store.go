package drafts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"mdnotes/pkg/db/redis"
	"mdnotes/pkg/logger"
)

const draftKeyPrefix = "draft:"

// RedisStore keeps drafts in Redis. The TTL is enforced twice: as the key
// expiry and as an explicit freshness check on load, so a reconfigured TTL
// also applies to drafts written before the change.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a draft store with the given freshness window.
// A non-positive TTL falls back to DefaultTTL.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

// Save writes the draft under the note key, stamping it with the save time.
func (s *RedisStore) Save(ctx context.Context, key string, draft Draft) error {
	draft.SavedAt = time.Now()

	encoded, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}

	if err := s.client.Set(ctx, draftKeyPrefix+key, encoded, s.ttl); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

// Load returns the draft stored under the note key, or (nil, nil) when none
// exists or the stored one is older than the freshness window.
func (s *RedisStore) Load(ctx context.Context, key string) (*Draft, error) {
	value, err := s.client.Get(ctx, draftKeyPrefix+key)
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}

	var draft Draft
	if err := json.Unmarshal([]byte(value), &draft); err != nil {
		return nil, fmt.Errorf("failed to decode draft: %w", err)
	}

	if time.Since(draft.SavedAt) > s.ttl {
		if err := s.Clear(ctx, key); err != nil {
			logger.Log(ctx).Warn(ctx, "failed to clear expired draft", zap.Error(err))
		}
		return nil, nil
	}

	return &draft, nil
}

// Clear removes the draft stored under the note key.
func (s *RedisStore) Clear(ctx context.Context, key string) error {
	if err := s.client.Delete(ctx, draftKeyPrefix+key); err != nil {
		return fmt.Errorf("failed to clear draft: %w", err)
	}
	return nil
}
