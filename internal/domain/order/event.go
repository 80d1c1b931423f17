package order

import (
	"context"
	"time"
)

// 订单事件路由键
const (
	EventPlaced    = "order.placed"
	EventCancelled = "order.cancelled"
)

// Event 订单领域事件
type Event struct {
	Action     string    `json:"action"`
	OrderID    uint      `json:"order_id"`
	BookID     uint      `json:"book_id"`
	UserID     uint      `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewEvent 由订单生成事件
func NewEvent(action string, o *Order) Event {
	return Event{
		Action:     action,
		OrderID:    o.ID,
		BookID:     o.BookID,
		UserID:     o.UserID,
		OccurredAt: time.Now(),
	}
}

// EventPublisher 事件发布接口(尽力而为,失败不影响订单本身)
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher 不发布任何事件
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
