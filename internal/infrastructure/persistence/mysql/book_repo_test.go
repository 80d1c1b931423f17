package mysql

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	gomysql "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookstore-backend/internal/domain/book"
	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
)

var bookRowColumns = []string{"id", "title", "writer", "cover_image", "point", "tag", "created_at", "updated_at"}

func TestBookRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("创建成功回填ID", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec("INSERT INTO `books`").WillReturnResult(sqlmock.NewResult(7, 1))

		b := book.NewBook("Go语言实战", "William", "http://img/go.png", 120, "golang")
		require.NoError(t, NewBookRepository(db).Create(ctx, b))
		assert.Equal(t, uint(7), b.ID)
	})

	t.Run("没有写入任何行", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec("INSERT INTO `books`").WillReturnResult(sqlmock.NewResult(0, 0))

		err := NewBookRepository(db).Create(ctx, book.NewBook("t", "w", "c", 1, "x"))
		assert.ErrorIs(t, err, book.ErrBookNotCreated)
		assert.True(t, apperrors.IsKind(err, apperrors.KindNotCreated))
	})
}

func TestBookRepository_FindByID(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("找到图书", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `books` WHERE `books`.`id` = ?")).
			WillReturnRows(sqlmock.NewRows(bookRowColumns).
				AddRow(3, "The Silicon Valley", "Jane", "http://img/3.png", 150, "tech", now, now))

		b, err := NewBookRepository(db).FindByID(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, uint(3), b.ID)
		assert.Equal(t, "The Silicon Valley", b.Title)
		assert.Equal(t, "http://img/3.png", b.CoverImage)
		assert.Equal(t, int64(150), b.Point)
	})

	t.Run("图书不存在", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("SELECT \\* FROM `books`").WillReturnRows(sqlmock.NewRows(bookRowColumns))

		_, err := NewBookRepository(db).FindByID(ctx, 404)
		assert.ErrorIs(t, err, book.ErrBookNotFound)
	})
}

func TestBookRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("更新成功", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec("UPDATE `books` SET").WillReturnResult(sqlmock.NewResult(0, 1))

		err := NewBookRepository(db).Update(ctx, &book.Book{ID: 3, Title: "t", Writer: "w", CoverImage: "c", Point: 1, Tag: "x"})
		assert.NoError(t, err)
	})

	t.Run("没有匹配行", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec("UPDATE `books` SET").WillReturnResult(sqlmock.NewResult(0, 0))

		err := NewBookRepository(db).Update(ctx, &book.Book{ID: 404, Title: "t"})
		assert.ErrorIs(t, err, book.ErrBookNotFound)
	})
}

func TestBookRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("重复删除两次都返回不存在", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec("DELETE FROM `books`").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM `books`").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("DELETE FROM `books`").WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewBookRepository(db)
		require.NoError(t, repo.Delete(ctx, 5))
		assert.ErrorIs(t, repo.Delete(ctx, 5), book.ErrBookNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, 5), book.ErrBookNotFound)
	})

	t.Run("仍被订单引用", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec("DELETE FROM `books`").
			WillReturnError(&gomysql.MySQLError{Number: 1451, Message: "Cannot delete or update a parent row"})

		err := NewBookRepository(db).Delete(ctx, 5)
		assert.ErrorIs(t, err, book.ErrBookReferenced)
		assert.True(t, apperrors.IsKind(err, apperrors.KindConstraint))
	})
}

func TestBookRepository_List(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("搜索+价格区间", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.MatchExpectationsInOrder(false)

		where := " WHERE (LOWER(title) LIKE ? OR LOWER(writer) LIKE ?) AND point >= ? AND point <= ?"
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM books"+where)).
			WithArgs("%silicon%", "%silicon%", 100, 500).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT "+bookColumns+" FROM books"+where+" ORDER BY id ASC LIMIT ? OFFSET ?")).
			WithArgs("%silicon%", "%silicon%", 100, 500, 10, 10).
			WillReturnRows(sqlmock.NewRows(bookRowColumns).
				AddRow(11, "The Silicon Valley", "Jane", "c", 150, "tech", now, now).
				AddRow(12, "Silicon Dreams", "Bob", "c", 480, "tech", now, now))

		books, total, err := NewBookRepository(db).List(ctx, book.ListParams{
			Page:         2,
			ItemsPerPage: 10,
			Search:       "Silicon",
			MinPrice:     100,
			MaxPrice:     500,
			HasMax:       true,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(12), total)
		require.Len(t, books, 2)
		assert.Equal(t, "Silicon Dreams", books[1].Title)
	})

	t.Run("无过滤条件", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.MatchExpectationsInOrder(false)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM books")).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT "+bookColumns+" FROM books ORDER BY id ASC LIMIT ? OFFSET ?")).
			WithArgs(10, 0).
			WillReturnRows(sqlmock.NewRows(bookRowColumns))

		books, total, err := NewBookRepository(db).List(ctx, book.ListParams{Page: 1, ItemsPerPage: 10})
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, books)
	})
}
