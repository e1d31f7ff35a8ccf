package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"teambalancer/internal/model"
)

// RankingCache keeps a ZSET of player averages per group
type RankingCache interface {
	Replace(ctx context.Context, groupID string, stats []model.PlayerStat) error
	GetTop(ctx context.Context, groupID string, limit int) ([]model.RankingEntry, error)
	GetRank(ctx context.Context, groupID, playerID string) (int64, error)
	Clear(ctx context.Context, groupID string) error
}

type rankingCache struct {
	client *redis.Client
}

// NewRankingCache creates a new ranking cache
func NewRankingCache(client *redis.Client) RankingCache {
	return &rankingCache{
		client: client,
	}
}

func (c *rankingCache) key(groupID string) string {
	return fmt.Sprintf("group:%s:ranking", groupID)
}

// Replace swaps the whole ranking atomically. Players nobody voted for are
// left out.
func (c *rankingCache) Replace(ctx context.Context, groupID string, stats []model.PlayerStat) error {
	members := make([]redis.Z, 0, len(stats))
	for _, s := range stats {
		if s.VoteCount == 0 {
			continue
		}
		members = append(members, redis.Z{
			Score:  s.AveragePoints,
			Member: s.ID,
		})
	}

	pipe := c.client.TxPipeline()
	pipe.Del(ctx, c.key(groupID))
	if len(members) > 0 {
		pipe.ZAdd(ctx, c.key(groupID), members...)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// GetTop returns the best averages first; limit <= 0 means everyone
func (c *rankingCache) GetTop(ctx context.Context, groupID string, limit int) ([]model.RankingEntry, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}
	results, err := c.client.ZRevRangeWithScores(ctx, c.key(groupID), 0, stop).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]model.RankingEntry, len(results))
	for i, z := range results {
		entries[i] = model.RankingEntry{
			PlayerID:      z.Member.(string),
			AveragePoints: z.Score,
			Rank:          i + 1,
		}
	}
	return entries, nil
}

// GetRank is 1-indexed, -1 when the player is not ranked
func (c *rankingCache) GetRank(ctx context.Context, groupID, playerID string) (int64, error) {
	rank, err := c.client.ZRevRank(ctx, c.key(groupID), playerID).Result()
	if err == redis.Nil {
		return -1, nil
	}
	if err != nil {
		return -1, err
	}
	return rank + 1, nil
}

func (c *rankingCache) Clear(ctx context.Context, groupID string) error {
	return c.client.Del(ctx, c.key(groupID)).Err()
}
