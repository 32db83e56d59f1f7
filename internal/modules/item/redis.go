package item

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// cacheTTL bounds staleness of cache entries that miss invalidation.
const cacheTTL = time.Hour

type redisCache struct {
	client *redis.Client
}

// NewRedisCache creates an item cache backed by Redis. Values are
// JSON-serialized item representations.
func NewRedisCache(client *redis.Client) Cache {
	return &redisCache{client: client}
}

func (c *redisCache) GetItem(ctx context.Context, id int64) (*Item, bool, error) {
	raw, err := c.client.Get(ctx, itemKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	it := &Item{}
	if err := json.Unmarshal(raw, it); err != nil {
		return nil, false, err
	}
	return it, true, nil
}

func (c *redisCache) SetItem(ctx context.Context, it *Item) error {
	raw, err := json.Marshal(it)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, itemKey(it.ID), raw, cacheTTL).Err()
}

func (c *redisCache) GetList(ctx context.Context) ([]Item, bool, error) {
	raw, err := c.client.Get(ctx, listKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false, err
	}
	return items, true, nil
}

func (c *redisCache) SetList(ctx context.Context, items []Item) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, listKey, raw, cacheTTL).Err()
}

func (c *redisCache) InvalidateItem(ctx context.Context, id int64) error {
	return c.client.Del(ctx, itemKey(id), listKey).Err()
}

func (c *redisCache) InvalidateList(ctx context.Context) error {
	return c.client.Del(ctx, listKey).Err()
}
