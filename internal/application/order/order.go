package order

import (
	"context"

	"github.com/xiebiao/bookstore-backend/internal/domain/order"
	"github.com/xiebiao/bookstore-backend/pkg/logger"
)

const tracerName = "order-usecase"

// Transactor 事务执行器(由mysql.TxManager实现)
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// publish 尽力发布订单事件,失败只记录日志
func publish(ctx context.Context, publisher order.EventPublisher, event order.Event) {
	if err := publisher.Publish(ctx, event); err != nil {
		logger.FromContext(ctx).WithError(err).WithField("action", event.Action).Warn("发布订单事件失败")
	}
}
