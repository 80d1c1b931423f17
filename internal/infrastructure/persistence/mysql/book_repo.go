package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-backend/internal/domain/book"
)

const bookColumns = "id, title, writer, cover_image, point, tag, created_at, updated_at"

// bookRepository 图书仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 把驱动错误转换为业务错误(NotFound/NotCreated/外键约束)
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	// 1. 领域实体 → GORM模型
	model := toBookModel(b)

	// 2. 插入数据库
	result := getDB(ctx, r.db).Create(model)
	if result.Error != nil {
		return translateError(result.Error, "创建图书失败")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotCreated
	}

	// 3. 回填自增ID
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, translateError(err, "查询图书失败")
	}

	return toBookEntity(&model), nil
}

// Update 全字段更新
// DSN开启了clientFoundRows,RowsAffected为匹配行数,值未变化也不会误判为不存在
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = time.Now()
	}

	result := getDB(ctx, r.db).Model(&BookModel{}).Where("id = ?", b.ID).Updates(map[string]interface{}{
		"title":       b.Title,
		"writer":      b.Writer,
		"cover_image": b.CoverImage,
		"point":       b.Point,
		"tag":         b.Tag,
		"updated_at":  b.UpdatedAt,
	})

	if result.Error != nil {
		return translateError(result.Error, "更新图书失败")
	}

	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}

	return nil
}

// Delete 物理删除图书
// 仍被订单引用时由外键拒绝
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&BookModel{}, id)

	if result.Error != nil {
		if isForeignKeyError(result.Error) {
			return book.ErrBookReferenced.WithErr(result.Error)
		}
		return translateError(result.Error, "删除图书失败")
	}

	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}

	return nil
}

// List 分页查询图书列表
// 计数与分页两条查询由同一组条件生成,并发执行
func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	filter := BookFilter{
		Search:   params.Search,
		MinPrice: params.MinPrice,
		MaxPrice: params.MaxPrice,
		HasMax:   params.HasMax,
	}

	q := SelectQuery{
		Columns: bookColumns,
		From:    "books",
		Where:   filter.Predicates(),
		OrderBy: "id ASC",
	}

	models, total, err := queryPage[BookModel](ctx, getDB(ctx, r.db), q, params.Page, params.ItemsPerPage)
	if err != nil {
		return nil, 0, translateError(err, "查询图书列表失败")
	}

	// 转换为领域实体
	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}

	return books, total, nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		ID:         b.ID,
		Title:      b.Title,
		Writer:     b.Writer,
		CoverImage: b.CoverImage,
		Point:      b.Point,
		Tag:        b.Tag,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:         model.ID,
		Title:      model.Title,
		Writer:     model.Writer,
		CoverImage: model.CoverImage,
		Point:      model.Point,
		Tag:        model.Tag,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}
