package book

import (
	"context"

	"github.com/xiebiao/bookstore-backend/internal/domain/book"
	"github.com/xiebiao/bookstore-backend/pkg/tracing"
	"github.com/xiebiao/bookstore-backend/pkg/validate"
)

// ListBooksUseCase 图书列表查询用例
// 支持分页、书名/作者模糊搜索、价格区间过滤
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{
		bookService: bookService,
	}
}

// ListBooksRequest 列表查询请求(查询串原文,空串表示使用默认值)
type ListBooksRequest struct {
	Page         string
	ItemsPerPage string
	Search       string
	MinPrice     string
	MaxPrice     string
}

// ListBooksResponse 列表查询结果
type ListBooksResponse struct {
	Books        []*book.Book
	Total        int64
	Page         int
	ItemsPerPage int
}

// Execute 执行列表查询用例
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (resp *ListBooksResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "ListBooks")
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	// 1. 参数校验(非法参数在访问数据库之前返回)
	page, err := validate.Pagination(req.Page, req.ItemsPerPage)
	if err != nil {
		return nil, err
	}
	prices, err := validate.Prices(req.MinPrice, req.MaxPrice)
	if err != nil {
		return nil, err
	}

	// 2. 查询
	books, total, err := uc.bookService.ListBooks(ctx, book.ListParams{
		Page:         page.Page,
		ItemsPerPage: page.ItemsPerPage,
		Search:       validate.Search(req.Search),
		MinPrice:     prices.Min,
		MaxPrice:     prices.Max,
		HasMax:       prices.HasMax,
	})
	if err != nil {
		return nil, err
	}

	return &ListBooksResponse{
		Books:        books,
		Total:        total,
		Page:         page.Page,
		ItemsPerPage: page.ItemsPerPage,
	}, nil
}
