package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pressroom/internal/domain/model"
)

func newTestCache(t *testing.T) *PostCache {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewPostCache(rdb, time.Minute)
}

func TestPostCache_SetGet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	post := &model.Post{ID: "p1", Title: "Hi", Published: true, AuthorID: "a1"}
	c.Set(ctx, post)

	got := c.Get(ctx, "p1")
	require.NotNil(t, got)
	assert.Equal(t, "Hi", got.Title)
	assert.Equal(t, "a1", got.AuthorID)
}

func TestPostCache_DraftsNeverCached(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, &model.Post{ID: "p2", Title: "Draft", Published: false})
	assert.Nil(t, c.Get(ctx, "p2"))
}

func TestPostCache_Invalidate(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, &model.Post{ID: "p3", Title: "Hi", Published: true})
	require.NotNil(t, c.Get(ctx, "p3"))

	c.Invalidate(ctx, "p3")
	assert.Nil(t, c.Get(ctx, "p3"))
}

func TestPostCache_NilDisabled(t *testing.T) {
	var c *PostCache
	ctx := context.Background()

	// All operations are no-ops on a nil cache.
	c.Set(ctx, &model.Post{ID: "p4", Published: true})
	assert.Nil(t, c.Get(ctx, "p4"))
	c.Invalidate(ctx, "p4")
}

func TestPostCache_Miss(t *testing.T) {
	c := newTestCache(t)
	assert.Nil(t, c.Get(context.Background(), "absent"))
}
