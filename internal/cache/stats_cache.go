package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"teambalancer/internal/model"
)

// StatsCache keeps the aggregated player stats of a group for a short while
type StatsCache interface {
	Get(ctx context.Context, groupID string) ([]model.PlayerStat, error)
	Set(ctx context.Context, groupID string, stats []model.PlayerStat) error
	Invalidate(ctx context.Context, groupID string) error
}

type statsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatsCache creates a new stats cache
func NewStatsCache(client *redis.Client, ttl time.Duration) StatsCache {
	return &statsCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *statsCache) key(groupID string) string {
	return fmt.Sprintf("group:%s:stats", groupID)
}

// Get returns nil, nil on a miss
func (c *statsCache) Get(ctx context.Context, groupID string) ([]model.PlayerStat, error) {
	data, err := c.client.Get(ctx, c.key(groupID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	stats := []model.PlayerStat{}
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (c *statsCache) Set(ctx context.Context, groupID string, stats []model.PlayerStat) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(groupID), data, c.ttl).Err()
}

func (c *statsCache) Invalidate(ctx context.Context, groupID string) error {
	return c.client.Del(ctx, c.key(groupID)).Err()
}
