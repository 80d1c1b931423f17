package dto

import (
	"encoding/json"

	"github.com/samber/lo"

	"github.com/xiebiao/bookstore-backend/internal/domain/book"
)

const timeLayout = "2006-01-02 15:04:05"

// BookRequest HTTP创建/更新图书请求
// 字段校验在应用层完成（必填、point非负整数），这里不加binding tag
// point接受JSON数字或数字字符串,tag接受任意JSON（非字符串按原文保存）
type BookRequest struct {
	Title      string          `json:"title" example:"Go程序设计语言"`
	Writer     string          `json:"writer" example:"Alan Donovan"`
	CoverImage string          `json:"coverImage" example:"https://example.com/gopl.jpg"`
	Point      json.Number     `json:"point" swaggertype:"integer" example:"59"`
	Tag        json.RawMessage `json:"tag" swaggertype:"string" example:"programming"`
}

// BookResponse HTTP图书响应
type BookResponse struct {
	ID         uint   `json:"id" example:"1"`
	Title      string `json:"title" example:"Go程序设计语言"`
	Writer     string `json:"writer" example:"Alan Donovan"`
	CoverImage string `json:"coverImage" example:"https://example.com/gopl.jpg"`
	Point      int64  `json:"point" example:"59"`
	Tag        string `json:"tag" example:"programming"`
	CreatedAt  string `json:"createdAt" example:"2024-01-15 10:30:00"`
	UpdatedAt  string `json:"updatedAt" example:"2024-01-15 10:30:00"`
}

// DeleteBookResponse 删除结果
type DeleteBookResponse struct {
	ID uint `json:"id" example:"1"`
}

// NewBookResponse 领域实体 → HTTP响应
func NewBookResponse(b *book.Book) BookResponse {
	return BookResponse{
		ID:         b.ID,
		Title:      b.Title,
		Writer:     b.Writer,
		CoverImage: b.CoverImage,
		Point:      b.Point,
		Tag:        b.Tag,
		CreatedAt:  b.CreatedAt.Format(timeLayout),
		UpdatedAt:  b.UpdatedAt.Format(timeLayout),
	}
}

// NewBookResponses 列表转换，空列表返回[]而不是null
func NewBookResponses(books []*book.Book) []BookResponse {
	return lo.Map(books, func(b *book.Book, _ int) BookResponse {
		return NewBookResponse(b)
	})
}
