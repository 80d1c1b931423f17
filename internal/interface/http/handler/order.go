package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/bookstore-backend/internal/application/order"
	"github.com/xiebiao/bookstore-backend/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-backend/internal/interface/http/middleware"
	"github.com/xiebiao/bookstore-backend/pkg/response"
)

// OrderHandler 订单HTTP处理器（全部需要登录）
type OrderHandler struct {
	placeOrder  *apporder.PlaceOrderUseCase
	cancelOrder *apporder.CancelOrderUseCase
	listOrders  *apporder.ListOrdersUseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(
	placeOrder *apporder.PlaceOrderUseCase,
	cancelOrder *apporder.CancelOrderUseCase,
	listOrders *apporder.ListOrdersUseCase,
) *OrderHandler {
	return &OrderHandler{
		placeOrder:  placeOrder,
		cancelOrder: cancelOrder,
		listOrders:  listOrders,
	}
}

// PlaceOrder 订购图书
// @Summary      订购图书
// @Description  当前用户订购一本书。每个用户对同一本书最多持有一个订单，重复订购返回409；取消订单后可再次订购
// @Tags         订单模块
// @Produce      json
// @Security     BearerAuth
// @Param        bookID  path  int  true  "图书ID"
// @Success      201 {object} response.Response{data=dto.OrderResponse}
// @Failure      400 {object} response.Response "图书ID非法"
// @Failure      401 {object} response.Response "未登录"
// @Failure      409 {object} response.Response "图书不存在或已订购过该书"
// @Router       /orders/{bookID} [post]
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	o, err := h.placeOrder.Execute(c.Request.Context(), apporder.PlaceOrderRequest{
		BookID: c.Param("bookID"),
		UserID: middleware.MustGetUserID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewOrderResponse(o))
}

// CancelOrder 取消订购
// @Summary      取消订购
// @Tags         订单模块
// @Produce      json
// @Security     BearerAuth
// @Param        bookID  path  int  true  "图书ID"
// @Success      200 {object} response.Response{data=dto.OrderResponse}
// @Failure      400 {object} response.Response "图书ID非法"
// @Failure      401 {object} response.Response "未登录"
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /orders/{bookID} [delete]
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	removed, err := h.cancelOrder.Execute(c.Request.Context(), apporder.CancelOrderRequest{
		BookID: c.Param("bookID"),
		UserID: middleware.MustGetUserID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewOrderResponse(removed))
}

// ListOrders 我的订单
// @Summary      我的订单
// @Tags         订单模块
// @Produce      json
// @Security     BearerAuth
// @Param        page          query  int  false  "页码（默认1）"
// @Param        itemsPerPage  query  int  false  "每页数量（默认10）"
// @Success      200 {object} response.Response{data=response.PageData{documents=[]dto.OrderDetailResponse}}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      401 {object} response.Response "未登录"
// @Router       /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	result, err := h.listOrders.Execute(c.Request.Context(), apporder.ListOrdersRequest{
		UserID:       middleware.MustGetUserID(c),
		Page:         c.Query("page"),
		ItemsPerPage: itemsPerPage(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, dto.NewOrderDetailResponses(result.Orders), result.Total, result.Page, result.ItemsPerPage)
}
