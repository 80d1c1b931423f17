package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookstore-backend/internal/domain/order"
)

const orderDetailColumns = "orders.id, orders.book_id, orders.user_id, orders.created_at, " +
	"books.title, books.writer, books.cover_image, books.point, books.tag"

// orderRepository 订单仓储实现(MySQL)
// 1. 图书/用户是否存在由外键约束保证,不做先查后插
// 2. (book_id, user_id)唯一索引保证同一用户不会重复订购
// 3. 事务通过context传递
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

// orderDetailRow 订单关联图书的查询结果
type orderDetailRow struct {
	ID         uint
	BookID     uint
	UserID     uint
	CreatedAt  time.Time
	Title      string
	Writer     string
	CoverImage string
	Point      int64
	Tag        string
}

// Create 创建订单
func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	model := &OrderModel{
		BookID:    o.BookID,
		UserID:    o.UserID,
		CreatedAt: o.CreatedAt,
	}

	// Book/User只用于生成外键,插入时跳过关联
	err := getDB(ctx, r.db).Omit(clause.Associations).Create(model).Error
	if err != nil {
		switch {
		case isForeignKeyError(err):
			return order.ErrReferenceMissing.WithErr(err)
		case isDuplicateError(err):
			return order.ErrOrderDuplicate.WithErr(err)
		}
		return translateError(err, "创建订单失败")
	}

	o.ID = model.ID
	o.CreatedAt = model.CreatedAt
	return nil
}

// DeleteByBookAndUser 按(图书ID,用户ID)删除订单
// 先加锁读出订单再删除,调用方应放在事务中
func (r *orderRepository) DeleteByBookAndUser(ctx context.Context, bookID, userID uint) (*order.Order, error) {
	db := getDB(ctx, r.db)

	// 1. 锁定订单行
	var model OrderModel
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("book_id = ? AND user_id = ?", bookID, userID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, translateError(err, "查询订单失败")
	}

	// 2. 删除
	result := db.Delete(&OrderModel{}, model.ID)
	if result.Error != nil {
		return nil, translateError(result.Error, "删除订单失败")
	}
	if result.RowsAffected == 0 {
		return nil, order.ErrOrderNotFound
	}

	return toOrderEntity(&model), nil
}

// ListByUser 分页查询用户订单,关联图书信息
func (r *orderRepository) ListByUser(ctx context.Context, userID uint, page, itemsPerPage int) ([]*order.Detail, int64, error) {
	q := SelectQuery{
		Columns: orderDetailColumns,
		From:    "orders INNER JOIN books ON orders.book_id = books.id",
		Where:   []Predicate{{SQL: "orders.user_id = ?", Args: []interface{}{userID}}},
		OrderBy: "orders.id ASC",
	}

	rows, total, err := queryPage[orderDetailRow](ctx, getDB(ctx, r.db), q, page, itemsPerPage)
	if err != nil {
		return nil, 0, translateError(err, "查询订单列表失败")
	}

	details := make([]*order.Detail, len(rows))
	for i := range rows {
		row := &rows[i]
		details[i] = &order.Detail{
			Order: order.Order{
				ID:        row.ID,
				BookID:    row.BookID,
				UserID:    row.UserID,
				CreatedAt: row.CreatedAt,
			},
			Title:      row.Title,
			Writer:     row.Writer,
			CoverImage: row.CoverImage,
			Point:      row.Point,
			Tag:        row.Tag,
		}
	}

	return details, total, nil
}

// toOrderEntity GORM模型 → 领域实体
func toOrderEntity(model *OrderModel) *order.Order {
	return &order.Order{
		ID:        model.ID,
		BookID:    model.BookID,
		UserID:    model.UserID,
		CreatedAt: model.CreatedAt,
	}
}
