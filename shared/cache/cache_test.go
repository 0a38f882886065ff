package cache_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"shareit/infras/otel/mocks"
	"shareit/shared/cache"
)

func TestIsMiss(t *testing.T) {
	assert.True(t, cache.IsMiss(redis.Nil))
	assert.True(t, cache.IsMiss(fmt.Errorf("failed to get cache value: %w", redis.Nil)))
	assert.False(t, cache.IsMiss(errors.New("connection refused")))
	assert.False(t, cache.IsMiss(nil))
}

func TestRedisCache_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	c := cache.NewRedisCache(client, mocks.NewOtel())
	ctx := context.Background()

	var got string

	err := c.Get(ctx, "item:get:i-1", &got)
	assert.Error(t, err)
	assert.False(t, cache.IsMiss(err))

	assert.Error(t, c.Save(ctx, "item:get:i-1", map[string]string{"id": "i-1"}, 60))
}
