package order

import (
	"context"
)

// Repository 订单仓储接口
type Repository interface {
	// Create 创建订单,成功后回填ID
	// 图书/用户不存在返回ErrReferenceMissing,重复订购返回ErrOrderDuplicate
	Create(ctx context.Context, order *Order) error

	// DeleteByBookAndUser 按(图书ID,用户ID)删除订单,返回被删除的订单
	// 没有匹配行返回ErrOrderNotFound
	DeleteByBookAndUser(ctx context.Context, bookID, userID uint) (*Order, error)

	// ListByUser 分页查询用户的订单(关联图书信息),按订单ID升序
	ListByUser(ctx context.Context, userID uint, page, itemsPerPage int) ([]*Detail, int64, error)
}
