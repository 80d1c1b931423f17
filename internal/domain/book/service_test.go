package book

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo 内存实现的Repository
type fakeRepo struct {
	mu     sync.Mutex
	books  map[uint]*Book
	nextID uint
	finds  int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{books: map[uint]*Book{}, nextID: 1}
}

func (r *fakeRepo) Create(_ context.Context, b *Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b.ID = r.nextID
	r.nextID++
	cp := *b
	r.books[b.ID] = &cp
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id uint) (*Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finds++
	b, ok := r.books[id]
	if !ok {
		return nil, ErrBookNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeRepo) Update(_ context.Context, b *Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.books[b.ID]
	if !ok {
		return ErrBookNotFound
	}
	cp := *b
	cp.CreatedAt = old.CreatedAt
	r.books[b.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[id]; !ok {
		return ErrBookNotFound
	}
	delete(r.books, id)
	return nil
}

func (r *fakeRepo) List(_ context.Context, _ ListParams) ([]*Book, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Book
	for _, b := range r.books {
		out = append(out, b)
	}
	return out, int64(len(out)), nil
}

// fakeCache 内存缓存,可注入错误
type fakeCache struct {
	items map[uint]*Book
	err   error
}

func (c *fakeCache) Get(_ context.Context, id uint) (*Book, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.items[id], nil
}

func (c *fakeCache) Set(_ context.Context, b *Book) error {
	if c.err != nil {
		return c.err
	}
	c.items[b.ID] = b
	return nil
}

func (c *fakeCache) Delete(_ context.Context, id uint) error {
	if c.err != nil {
		return c.err
	}
	delete(c.items, id)
	return nil
}

func TestService_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo(), nil)

	created, err := svc.CreateBook(ctx, "The Silicon Valley", "Jane", "http://img/1.png", 150, "tech")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := svc.GetBook(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "The Silicon Valley", got.Title)
	assert.Equal(t, "Jane", got.Writer)
	assert.Equal(t, "http://img/1.png", got.CoverImage)
	assert.Equal(t, int64(150), got.Point)
	assert.Equal(t, "tech", got.Tag)
}

func TestService_CreateBook_NegativePoint(t *testing.T) {
	_, err := NewService(newFakeRepo(), nil).CreateBook(context.Background(), "t", "w", "c", -1, "x")
	assert.ErrorIs(t, err, ErrInvalidPoint)
}

func TestService_GetBook_Cache(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	cache := &fakeCache{items: map[uint]*Book{}}
	svc := NewService(repo, cache)

	created, err := svc.CreateBook(ctx, "t", "w", "c", 1, "x")
	require.NoError(t, err)

	t.Run("首次读取回填缓存", func(t *testing.T) {
		_, err := svc.GetBook(ctx, created.ID)
		require.NoError(t, err)
		assert.Contains(t, cache.items, created.ID)
		assert.Equal(t, 1, repo.finds)
	})

	t.Run("命中缓存不查数据库", func(t *testing.T) {
		_, err := svc.GetBook(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, repo.finds)
	})

	t.Run("更新后删除缓存", func(t *testing.T) {
		updated, err := svc.UpdateBook(ctx, created.ID, "t2", "w2", "c2", 2, "y")
		require.NoError(t, err)
		assert.Equal(t, "t2", updated.Title)
		assert.NotContains(t, cache.items, created.ID)
	})

	t.Run("缓存故障时回源数据库", func(t *testing.T) {
		cache.err = errors.New("redis down")
		got, err := svc.GetBook(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "t2", got.Title)
	})
}

func TestService_DeleteBook(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo(), nil)

	created, err := svc.CreateBook(ctx, "t", "w", "c", 1, "x")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteBook(ctx, created.ID))

	t.Run("重复删除返回不存在", func(t *testing.T) {
		assert.ErrorIs(t, svc.DeleteBook(ctx, created.ID), ErrBookNotFound)
		assert.ErrorIs(t, svc.DeleteBook(ctx, created.ID), ErrBookNotFound)
	})

	t.Run("删除后读取返回不存在", func(t *testing.T) {
		_, err := svc.GetBook(ctx, created.ID)
		assert.ErrorIs(t, err, ErrBookNotFound)
	})
}

func TestService_UpdateBook_NotFound(t *testing.T) {
	_, err := NewService(newFakeRepo(), nil).UpdateBook(context.Background(), 99, "t", "w", "c", 1, "x")
	assert.ErrorIs(t, err, ErrBookNotFound)
}
