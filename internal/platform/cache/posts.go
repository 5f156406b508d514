package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"pressroom/internal/domain/model"
)

// PostCache is a read-through cache for published posts. A nil *PostCache is
// valid and disables caching, so callers need no conditionals.
type PostCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewPostCache(rdb *redis.Client, ttl time.Duration) *PostCache {
	if rdb == nil {
		return nil
	}
	return &PostCache{rdb: rdb, ttl: ttl}
}

func key(id string) string { return "post:" + id }

// Get returns the cached post, or nil on miss or any redis failure. Cache
// errors never surface to the request path.
func (c *PostCache) Get(ctx context.Context, id string) *model.Post {
	if c == nil {
		return nil
	}
	raw, err := c.rdb.Get(ctx, key(id)).Bytes()
	if err != nil {
		return nil
	}
	var post model.Post
	if err := json.Unmarshal(raw, &post); err != nil {
		return nil
	}
	return &post
}

// Set stores a post. Only published posts belong here: drafts are
// owner-visible only and must not be servable from a shared cache.
func (c *PostCache) Set(ctx context.Context, post *model.Post) {
	if c == nil || post == nil || !post.Published {
		return
	}
	raw, err := json.Marshal(post)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, key(post.ID), raw, c.ttl)
}

func (c *PostCache) Invalidate(ctx context.Context, id string) {
	if c == nil {
		return
	}
	c.rdb.Del(ctx, key(id))
}
