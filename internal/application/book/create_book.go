package book

import (
	"context"

	"github.com/xiebiao/bookstore-backend/internal/domain/book"
	"github.com/xiebiao/bookstore-backend/pkg/metrics"
	"github.com/xiebiao/bookstore-backend/pkg/tracing"
)

// CreateBookUseCase 图书上架用例
type CreateBookUseCase struct {
	bookService book.Service
}

// NewCreateBookUseCase 创建上架用例
func NewCreateBookUseCase(bookService book.Service) *CreateBookUseCase {
	return &CreateBookUseCase{bookService: bookService}
}

// Execute 校验字段后创建图书
func (uc *CreateBookUseCase) Execute(ctx context.Context, in BookInput) (b *book.Book, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "CreateBook")
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	f, err := in.validate()
	if err != nil {
		return nil, err
	}

	b, err = uc.bookService.CreateBook(ctx, f.title, f.writer, f.coverImage, f.point, f.tag)
	if err != nil {
		return nil, err
	}

	metrics.IncCounter(metrics.BooksCreatedTotal)
	return b, nil
}
