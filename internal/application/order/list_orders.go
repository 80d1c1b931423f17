package order

import (
	"context"

	"github.com/xiebiao/bookstore-backend/internal/domain/order"
	"github.com/xiebiao/bookstore-backend/pkg/tracing"
	"github.com/xiebiao/bookstore-backend/pkg/validate"
)

// ListOrdersUseCase 我的订单列表
type ListOrdersUseCase struct {
	orderRepo order.Repository
}

// NewListOrdersUseCase 创建订单列表用例
func NewListOrdersUseCase(orderRepo order.Repository) *ListOrdersUseCase {
	return &ListOrdersUseCase{orderRepo: orderRepo}
}

// ListOrdersRequest 订单列表请求
type ListOrdersRequest struct {
	UserID       uint
	Page         string
	ItemsPerPage string
}

// ListOrdersResponse 订单列表结果(总是分页返回)
type ListOrdersResponse struct {
	Orders       []*order.Detail
	Total        int64
	Page         int
	ItemsPerPage int
}

// Execute 查询当前用户的订单及图书信息
func (uc *ListOrdersUseCase) Execute(ctx context.Context, req ListOrdersRequest) (resp *ListOrdersResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "ListOrders")
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	page, err := validate.Pagination(req.Page, req.ItemsPerPage)
	if err != nil {
		return nil, err
	}

	orders, total, err := uc.orderRepo.ListByUser(ctx, req.UserID, page.Page, page.ItemsPerPage)
	if err != nil {
		return nil, err
	}

	return &ListOrdersResponse{
		Orders:       orders,
		Total:        total,
		Page:         page.Page,
		ItemsPerPage: page.ItemsPerPage,
	}, nil
}
