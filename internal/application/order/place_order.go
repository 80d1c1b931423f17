package order

import (
	"context"
	"strconv"
	"time"

	"github.com/xiebiao/bookstore-backend/internal/domain/order"
	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
	"github.com/xiebiao/bookstore-backend/pkg/metrics"
	"github.com/xiebiao/bookstore-backend/pkg/tracing"
	"github.com/xiebiao/bookstore-backend/pkg/validate"
)

// PlaceOrderUseCase 下单用例
// 一个用户对同一本书只能有一个订单,由(book_id, user_id)唯一索引保证,
// 图书或用户不存在由外键约束保证,不做先查后插
type PlaceOrderUseCase struct {
	orderRepo order.Repository
	publisher order.EventPublisher
}

// NewPlaceOrderUseCase 创建下单用例
func NewPlaceOrderUseCase(orderRepo order.Repository, publisher order.EventPublisher) *PlaceOrderUseCase {
	if publisher == nil {
		publisher = order.NopPublisher{}
	}
	return &PlaceOrderUseCase{
		orderRepo: orderRepo,
		publisher: publisher,
	}
}

// PlaceOrderRequest 下单请求
type PlaceOrderRequest struct {
	BookID string // 路径参数原文
	UserID uint   // 从JWT中提取
}

// Execute 执行下单
func (uc *PlaceOrderUseCase) Execute(ctx context.Context, req PlaceOrderRequest) (o *order.Order, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "PlaceOrder")
	start := time.Now()
	defer func() {
		if err != nil {
			metrics.IncCounter(metrics.OrdersFailedTotal)
		}
		metrics.ObserveHistogram(metrics.OrderPlacementDuration, time.Since(start).Seconds())
		tracing.RecordError(span, err)
		span.End()
	}()

	// 1. 校验引用ID(在任何I/O之前)
	bookID, err := referenceID("bookID", req.BookID)
	if err != nil {
		return nil, err
	}
	userID, err := referenceID("userID", strconv.FormatUint(uint64(req.UserID), 10))
	if err != nil {
		return nil, err
	}

	// 2. 插入订单
	o = order.NewOrder(bookID, userID)
	if err := uc.orderRepo.Create(ctx, o); err != nil {
		return nil, err
	}

	// 3. 发布事件
	metrics.IncCounter(metrics.OrdersPlacedTotal)
	publish(ctx, uc.publisher, order.NewEvent(order.EventPlaced, o))
	return o, nil
}

// referenceID 校验失败统一归为非法引用,保留具体原因
func referenceID(name, raw string) (uint, error) {
	id, err := validate.ID(name, raw)
	if err != nil {
		return 0, order.ErrInvalidReference.WithMessage(apperrors.GetAppError(err).Message)
	}
	return id, nil
}
