package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 便于Mock测试,不依赖具体数据库实现
type Repository interface {
	// Create 创建图书,成功后回填ID
	// 没有写入任何行时返回ErrBookNotCreated
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书,不存在返回ErrBookNotFound
	FindByID(ctx context.Context, id uint) (*Book, error)

	// Update 全字段更新,没有匹配行返回ErrBookNotFound
	Update(ctx context.Context, book *Book) error

	// Delete 物理删除,没有匹配行返回ErrBookNotFound
	Delete(ctx context.Context, id uint) error

	// List 按条件分页查询,返回当前页数据和总数
	List(ctx context.Context, params ListParams) ([]*Book, int64, error)
}

// Cache 图书详情缓存(Cache-Aside)
// Get未命中时返回(nil, nil)
type Cache interface {
	Get(ctx context.Context, id uint) (*Book, error)
	Set(ctx context.Context, book *Book) error
	Delete(ctx context.Context, id uint) error
}

// ListParams 列表查询参数
type ListParams struct {
	Page         int    // 页码(从1开始)
	ItemsPerPage int    // 每页数量
	Search       string // 搜索关键词(匹配书名或作者,不区分大小写)
	MinPrice     int64  // 最低价格,0表示不限
	MaxPrice     int64  // 最高价格,HasMax为false时忽略
	HasMax       bool
}

// NopCache 不缓存
type NopCache struct{}

func (NopCache) Get(context.Context, uint) (*Book, error) { return nil, nil }
func (NopCache) Set(context.Context, *Book) error          { return nil }
func (NopCache) Delete(context.Context, uint) error        { return nil }
