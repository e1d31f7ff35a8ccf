package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"teambalancer/internal/model"
)

const activeGroupsKey = "groups:active"

// GroupCache holds the public list of active groups
type GroupCache interface {
	GetActive(ctx context.Context) ([]*model.Group, error)
	SetActive(ctx context.Context, groups []*model.Group) error
	Invalidate(ctx context.Context) error
}

type groupCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewGroupCache creates a new group list cache
func NewGroupCache(client *redis.Client, ttl time.Duration) GroupCache {
	return &groupCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *groupCache) GetActive(ctx context.Context) ([]*model.Group, error) {
	data, err := c.client.Get(ctx, activeGroupsKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	groups := []*model.Group{}
	if err := json.Unmarshal(data, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

func (c *groupCache) SetActive(ctx context.Context, groups []*model.Group) error {
	data, err := json.Marshal(groups)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, activeGroupsKey, data, c.ttl).Err()
}

func (c *groupCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, activeGroupsKey).Err()
}
