package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookstore-backend/internal/domain/book"
	"github.com/xiebiao/bookstore-backend/pkg/circuitbreaker"
)

func newTestBreaker() *circuitbreaker.CircuitBreaker {
	return circuitbreaker.NewCircuitBreaker("book-cache-test", circuitbreaker.Config{
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     time.Minute,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 2
		},
	})
}

func TestBookCache(t *testing.T) {
	ctx := context.Background()
	client, mr := newTestClient(t)
	cache := NewBookCache(client, 10*time.Minute, newTestBreaker())

	b := &book.Book{ID: 7, Title: "The Silicon Valley", Writer: "Jane", CoverImage: "c", Point: 150, Tag: "tech"}

	t.Run("未命中返回nil", func(t *testing.T) {
		got, err := cache.Get(ctx, 7)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("写入后命中", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, b))
		assert.Equal(t, 10*time.Minute, mr.TTL("book:7"))

		got, err := cache.Get(ctx, 7)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, b.Title, got.Title)
		assert.Equal(t, b.Point, got.Point)
	})

	t.Run("删除后未命中", func(t *testing.T) {
		require.NoError(t, cache.Delete(ctx, 7))
		got, err := cache.Get(ctx, 7)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("未命中不计入熔断失败", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			_, _ = cache.Get(ctx, 99)
		}
		assert.Equal(t, circuitbreaker.StateClosed, cache.breaker.State())
	})
}

func TestBookCache_BreakerOpens(t *testing.T) {
	ctx := context.Background()
	client, mr := newTestClient(t)
	cache := NewBookCache(client, time.Minute, newTestBreaker())

	mr.Close()

	// 连续两次失败后熔断
	_, err := cache.Get(ctx, 1)
	assert.Error(t, err)
	_, err = cache.Get(ctx, 1)
	assert.Error(t, err)
	assert.Equal(t, circuitbreaker.StateOpen, cache.breaker.State())

	t.Run("熔断期间跳过缓存", func(t *testing.T) {
		got, err := cache.Get(ctx, 1)
		assert.NoError(t, err)
		assert.Nil(t, got)
		assert.NoError(t, cache.Set(ctx, &book.Book{ID: 1}))
		assert.NoError(t, cache.Delete(ctx, 1))
	})
}
