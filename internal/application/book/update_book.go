package book

import (
	"context"

	"github.com/xiebiao/bookstore-backend/internal/domain/book"
	"github.com/xiebiao/bookstore-backend/pkg/tracing"
	"github.com/xiebiao/bookstore-backend/pkg/validate"
)

// UpdateBookUseCase 图书全量更新用例
type UpdateBookUseCase struct {
	bookService book.Service
}

// NewUpdateBookUseCase 创建更新用例
func NewUpdateBookUseCase(bookService book.Service) *UpdateBookUseCase {
	return &UpdateBookUseCase{bookService: bookService}
}

// Execute 先校验ID再校验字段,全部通过后才访问数据库
func (uc *UpdateBookUseCase) Execute(ctx context.Context, rawID string, in BookInput) (b *book.Book, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "UpdateBook")
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	id, err := validate.ID("id", rawID)
	if err != nil {
		return nil, err
	}

	f, err := in.validate()
	if err != nil {
		return nil, err
	}

	return uc.bookService.UpdateBook(ctx, id, f.title, f.writer, f.coverImage, f.point, f.tag)
}

// DeleteBookUseCase 图书删除用例
type DeleteBookUseCase struct {
	bookService book.Service
}

// NewDeleteBookUseCase 创建删除用例
func NewDeleteBookUseCase(bookService book.Service) *DeleteBookUseCase {
	return &DeleteBookUseCase{bookService: bookService}
}

// Execute 物理删除图书,返回校验后的ID,仍被订单引用时返回约束错误
func (uc *DeleteBookUseCase) Execute(ctx context.Context, rawID string) (id uint, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "DeleteBook")
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	id, err = validate.ID("id", rawID)
	if err != nil {
		return 0, err
	}
	if err = uc.bookService.DeleteBook(ctx, id); err != nil {
		return 0, err
	}
	return id, nil
}
