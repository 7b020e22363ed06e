package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/srgjo27/gercamp/internal/core/domain"
)

type ScheduleCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewScheduleCache(client *redis.Client, ttl time.Duration) *ScheduleCache {
	return &ScheduleCache{client: client, ttl: ttl}
}

func ScheduleKey(yurtID uuid.UUID) string {
	return fmt.Sprintf("yurt:%s:schedule", yurtID.String())
}

// Get reports a miss with ok=false and a nil error.
func (c *ScheduleCache) Get(ctx context.Context, yurtID uuid.UUID) ([]domain.ScheduleEntry, bool, error) {
	raw, err := c.client.Get(ctx, ScheduleKey(yurtID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read schedule cache: %w", err)
	}

	var entries []domain.ScheduleEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false, fmt.Errorf("failed to decode schedule cache: %w", err)
	}
	return entries, true, nil
}

func (c *ScheduleCache) Set(ctx context.Context, yurtID uuid.UUID, entries []domain.ScheduleEntry) error {
	if entries == nil {
		entries = []domain.ScheduleEntry{}
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode schedule: %w", err)
	}

	if err := c.client.Set(ctx, ScheduleKey(yurtID), string(raw), c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write schedule cache: %w", err)
	}
	return nil
}

func (c *ScheduleCache) Invalidate(ctx context.Context, yurtID uuid.UUID) error {
	if err := c.client.Del(ctx, ScheduleKey(yurtID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate schedule cache: %w", err)
	}
	return nil
}
