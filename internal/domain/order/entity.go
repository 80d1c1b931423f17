package order

import (
	"time"
)

// Order 订单实体
// 设计说明:
// 1. 订单只记录"哪个用户订了哪本书",(BookID, UserID)唯一
// 2. 生命周期:不存在 → 有效 → 不存在,取消即物理删除,没有状态字段
// 3. 只保存BookID/UserID,不跨聚合引用Book/User对象
type Order struct {
	ID        uint      `json:"id"`
	BookID    uint      `json:"bookID"`
	UserID    uint      `json:"userID"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewOrder 创建新订单(工厂方法)
func NewOrder(bookID, userID uint) *Order {
	return &Order{
		BookID:    bookID,
		UserID:    userID,
		CreatedAt: time.Now(),
	}
}

// IsOwnedBy 检查订单是否属于指定用户
func (o *Order) IsOwnedBy(userID uint) bool {
	return o.UserID == userID
}

// Detail 订单及其图书信息(列表查询时关联books表)
type Detail struct {
	Order
	Title      string `json:"title"`
	Writer     string `json:"writer"`
	CoverImage string `json:"coverImage"`
	Point      int64  `json:"point"`
	Tag        string `json:"tag"`
}
