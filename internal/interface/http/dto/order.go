package dto

import (
	"github.com/samber/lo"

	"github.com/xiebiao/bookstore-backend/internal/domain/order"
)

// OrderResponse 下单/取消订单响应
type OrderResponse struct {
	ID     uint `json:"id" example:"1"`
	BookID uint `json:"bookID" example:"3"`
	UserID uint `json:"userID" example:"7"`
}

// OrderDetailResponse 订单列表项（关联图书信息）
type OrderDetailResponse struct {
	ID         uint   `json:"id" example:"1"`
	BookID     uint   `json:"bookID" example:"3"`
	UserID     uint   `json:"userID" example:"7"`
	Title      string `json:"title" example:"Go程序设计语言"`
	Writer     string `json:"writer" example:"Alan Donovan"`
	CoverImage string `json:"coverImage" example:"https://example.com/gopl.jpg"`
	Point      int64  `json:"point" example:"59"`
	Tag        string `json:"tag" example:"programming"`
	CreatedAt  string `json:"createdAt" example:"2024-01-15 10:30:00"`
}

// NewOrderResponse 领域实体 → HTTP响应
func NewOrderResponse(o *order.Order) OrderResponse {
	return OrderResponse{ID: o.ID, BookID: o.BookID, UserID: o.UserID}
}

// NewOrderDetailResponses 列表转换
func NewOrderDetailResponses(details []*order.Detail) []OrderDetailResponse {
	return lo.Map(details, func(d *order.Detail, _ int) OrderDetailResponse {
		return OrderDetailResponse{
			ID:         d.ID,
			BookID:     d.BookID,
			UserID:     d.UserID,
			Title:      d.Title,
			Writer:     d.Writer,
			CoverImage: d.CoverImage,
			Point:      d.Point,
			Tag:        d.Tag,
			CreatedAt:  d.CreatedAt.Format(timeLayout),
		}
	})
}
