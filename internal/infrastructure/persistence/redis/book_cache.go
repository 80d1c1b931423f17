package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/bookstore-backend/internal/domain/book"
	"github.com/xiebiao/bookstore-backend/pkg/circuitbreaker"
	"github.com/xiebiao/bookstore-backend/pkg/metrics"
)

// BookCache 图书详情缓存（Cache-Aside）
// 1. 读：先查缓存，未命中由领域服务回源数据库后回填
// 2. 写：更新数据库后删除缓存，而不是更新缓存
// 3. 所有Redis调用经过熔断器，Redis故障时直接跳过缓存
//
// 熔断期间删除缓存会被跳过，旧数据最多保留一个TTL
type BookCache struct {
	client  *redis.Client
	ttl     time.Duration
	breaker *circuitbreaker.CircuitBreaker
}

// NewBookCache 创建图书缓存
func NewBookCache(client *redis.Client, ttl time.Duration, breaker *circuitbreaker.CircuitBreaker) *BookCache {
	return &BookCache{client: client, ttl: ttl, breaker: breaker}
}

// bookKey 格式：book:{book_id}
func bookKey(id uint) string {
	return fmt.Sprintf("book:%d", id)
}

// Get 获取图书缓存，未命中或熔断时返回(nil, nil)
func (c *BookCache) Get(ctx context.Context, id uint) (*book.Book, error) {
	var raw []byte
	err := c.breaker.Execute(func() error {
		val, err := c.client.Get(ctx, bookKey(id)).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil // 未命中不算失败
		}
		raw = val
		return err
	})
	if err != nil {
		if errors.Is(err, circuitbreaker.ErrOpenState) {
			recordCache("rejected")
			return nil, nil
		}
		recordCache("error")
		return nil, fmt.Errorf("获取缓存失败: %w", err)
	}
	if raw == nil {
		recordCache("miss")
		return nil, nil
	}

	var b book.Book
	if err := json.Unmarshal(raw, &b); err != nil {
		recordCache("error")
		return nil, fmt.Errorf("反序列化失败: %w", err)
	}
	recordCache("hit")
	return &b, nil
}

// Set 写入图书缓存
func (c *BookCache) Set(ctx context.Context, b *book.Book) error {
	val, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("序列化失败: %w", err)
	}

	return c.skipWhenOpen(c.breaker.Execute(func() error {
		return c.client.Set(ctx, bookKey(b.ID), val, c.ttl).Err()
	}), "设置缓存失败")
}

// Delete 删除图书缓存
func (c *BookCache) Delete(ctx context.Context, id uint) error {
	return c.skipWhenOpen(c.breaker.Execute(func() error {
		return c.client.Del(ctx, bookKey(id)).Err()
	}), "删除缓存失败")
}

func (c *BookCache) skipWhenOpen(err error, message string) error {
	if err == nil || errors.Is(err, circuitbreaker.ErrOpenState) {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

func recordCache(result string) {
	metrics.IncCounterVec(metrics.BookCacheRequests, map[string]string{"result": result})
}
