package book

import (
	"context"

	"github.com/xiebiao/bookstore-backend/pkg/logger"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 领域服务封装业务规则和缓存策略
// 2. 不依赖具体的Repository实现(依赖倒置)
type Service interface {
	// CreateBook 创建图书
	CreateBook(ctx context.Context, title, writer, coverImage string, point int64, tag string) (*Book, error)

	// GetBook 根据ID获取图书详情(先查缓存)
	GetBook(ctx context.Context, id uint) (*Book, error)

	// UpdateBook 全字段更新图书
	UpdateBook(ctx context.Context, id uint, title, writer, coverImage string, point int64, tag string) (*Book, error)

	// DeleteBook 删除图书
	DeleteBook(ctx context.Context, id uint) error

	// ListBooks 分页查询图书列表
	ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error)
}

// service 领域服务实现
type service struct {
	repo  Repository
	cache Cache
}

// NewService 创建图书领域服务,cache为nil时不使用缓存
func NewService(repo Repository, cache Cache) Service {
	if cache == nil {
		cache = NopCache{}
	}
	return &service{repo: repo, cache: cache}
}

// CreateBook 创建图书
func (s *service) CreateBook(ctx context.Context, title, writer, coverImage string, point int64, tag string) (*Book, error) {
	if point < 0 {
		return nil, ErrInvalidPoint
	}

	book := NewBook(title, writer, coverImage, point, tag)
	if err := s.repo.Create(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// GetBook 根据ID获取图书
// 缓存读写失败只记录日志,不影响主流程
func (s *service) GetBook(ctx context.Context, id uint) (*Book, error) {
	// 1. 查缓存
	cached, err := s.cache.Get(ctx, id)
	if err != nil {
		logger.FromContext(ctx).WithError(err).WithField("book_id", id).Warn("读取图书缓存失败")
	}
	if cached != nil {
		return cached, nil
	}

	// 2. 查数据库
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3. 回填缓存
	if err := s.cache.Set(ctx, book); err != nil {
		logger.FromContext(ctx).WithError(err).WithField("book_id", id).Warn("写入图书缓存失败")
	}
	return book, nil
}

// UpdateBook 全字段更新图书
func (s *service) UpdateBook(ctx context.Context, id uint, title, writer, coverImage string, point int64, tag string) (*Book, error) {
	if point < 0 {
		return nil, ErrInvalidPoint
	}

	book := &Book{ID: id}
	book.Replace(title, writer, coverImage, point, tag)
	if err := s.repo.Update(ctx, book); err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)

	// 重新读取,带回创建时间等数据库字段
	return s.repo.FindByID(ctx, id)
}

// DeleteBook 删除图书
func (s *service) DeleteBook(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, id)
	return nil
}

// ListBooks 分页查询图书列表
func (s *service) ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error) {
	return s.repo.List(ctx, params)
}

// invalidate 更新数据库后删除缓存
func (s *service) invalidate(ctx context.Context, id uint) {
	if err := s.cache.Delete(ctx, id); err != nil {
		logger.FromContext(ctx).WithError(err).WithField("book_id", id).Warn("删除图书缓存失败")
	}
}
