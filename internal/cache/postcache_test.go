package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestPostCacheDisabledWithoutClient(t *testing.T) {
	cache := NewPostCache(nil, time.Minute, zap.NewNop())

	payload, ok := cache.Get(context.Background(), "post-1")
	assert.False(t, ok)
	assert.Nil(t, payload)

	// Writes and invalidations are no-ops, not panics.
	cache.Set(context.Background(), "post-1", []byte(`{"id":"post-1"}`))
	cache.Invalidate(context.Background(), "post-1")
}

func TestPostCacheNilReceiver(t *testing.T) {
	var cache *PostCache

	_, ok := cache.Get(context.Background(), "post-1")
	assert.False(t, ok)
	cache.Set(context.Background(), "post-1", nil)
	cache.Invalidate(context.Background(), "post-1")
}

func TestPostKey(t *testing.T) {
	assert.Equal(t, "post:abc", postKey("abc"))
}
