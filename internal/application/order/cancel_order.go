package order

import (
	"context"

	"github.com/xiebiao/bookstore-backend/internal/domain/order"
	"github.com/xiebiao/bookstore-backend/pkg/metrics"
	"github.com/xiebiao/bookstore-backend/pkg/tracing"
	"github.com/xiebiao/bookstore-backend/pkg/validate"
)

// CancelOrderUseCase 取消订单用例
// 按(图书ID,当前用户ID)删除,用户只能取消自己的订单
type CancelOrderUseCase struct {
	orderRepo order.Repository
	tx        Transactor
	publisher order.EventPublisher
}

// NewCancelOrderUseCase 创建取消用例
func NewCancelOrderUseCase(orderRepo order.Repository, tx Transactor, publisher order.EventPublisher) *CancelOrderUseCase {
	if publisher == nil {
		publisher = order.NopPublisher{}
	}
	return &CancelOrderUseCase{
		orderRepo: orderRepo,
		tx:        tx,
		publisher: publisher,
	}
}

// CancelOrderRequest 取消订单请求
type CancelOrderRequest struct {
	BookID string
	UserID uint
}

// Execute 执行取消,没有匹配的订单返回NotFound
func (uc *CancelOrderUseCase) Execute(ctx context.Context, req CancelOrderRequest) (removed *order.Order, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "CancelOrder")
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	bookID, err := validate.ID("bookID", req.BookID)
	if err != nil {
		return nil, err
	}

	// 锁定并删除在同一事务中完成
	err = uc.tx.Transaction(ctx, func(ctx context.Context) error {
		var txErr error
		removed, txErr = uc.orderRepo.DeleteByBookAndUser(ctx, bookID, req.UserID)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	metrics.IncCounter(metrics.OrdersCancelledTotal)
	publish(ctx, uc.publisher, order.NewEvent(order.EventCancelled, removed))
	return removed, nil
}
