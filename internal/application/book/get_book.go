package book

import (
	"context"

	"github.com/xiebiao/bookstore-backend/internal/domain/book"
	"github.com/xiebiao/bookstore-backend/pkg/tracing"
	"github.com/xiebiao/bookstore-backend/pkg/validate"
)

// GetBookUseCase 图书详情用例
type GetBookUseCase struct {
	bookService book.Service
}

// NewGetBookUseCase 创建详情用例
func NewGetBookUseCase(bookService book.Service) *GetBookUseCase {
	return &GetBookUseCase{bookService: bookService}
}

// Execute 按路径参数中的ID查询图书
func (uc *GetBookUseCase) Execute(ctx context.Context, rawID string) (b *book.Book, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "GetBook")
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	id, err := validate.ID("id", rawID)
	if err != nil {
		return nil, err
	}
	return uc.bookService.GetBook(ctx, id)
}
