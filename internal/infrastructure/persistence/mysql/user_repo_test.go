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

	"github.com/xiebiao/bookstore-backend/internal/domain/user"
	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
)

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("注册成功", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec("INSERT INTO `users`").WillReturnResult(sqlmock.NewResult(3, 1))

		u := user.NewUser("alice@example.com", "$2a$hash")
		require.NoError(t, NewUserRepository(db).Create(ctx, u))
		assert.Equal(t, uint(3), u.ID)
	})

	t.Run("邮箱重复", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec("INSERT INTO `users`").
			WillReturnError(&gomysql.MySQLError{Number: 1062, Message: "Duplicate entry 'alice@example.com' for key 'idx_users_email'"})

		err := NewUserRepository(db).Create(ctx, user.NewUser("alice@example.com", "$2a$hash"))
		assert.ErrorIs(t, err, apperrors.ErrEmailDuplicate)
	})
}

func TestUserRepository_FindByEmail(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	columns := []string{"id", "email", "password", "point", "created_at", "updated_at"}

	t.Run("找到用户", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` WHERE email = ?")).
			WillReturnRows(sqlmock.NewRows(columns).AddRow(3, "alice@example.com", "$2a$hash", 100, now, now))

		u, err := NewUserRepository(db).FindByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, uint(3), u.ID)
		assert.Equal(t, int64(100), u.Point)
	})

	t.Run("用户不存在", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("SELECT \\* FROM `users`").WillReturnRows(sqlmock.NewRows(columns))

		_, err := NewUserRepository(db).FindByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}

func TestUserRepository_FindByID(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT \\* FROM `users`").WillReturnRows(
		sqlmock.NewRows([]string{"id", "email", "password", "point"}).AddRow(9, "bob@example.com", "h", 100))

	u, err := NewUserRepository(db).FindByID(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", u.Email)
}
