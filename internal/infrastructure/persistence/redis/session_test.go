package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
)

func TestSessionStore_Session(t *testing.T) {
	ctx := context.Background()
	client, mr := newTestClient(t)
	store := NewSessionStore(client)

	require.NoError(t, store.SaveSession(ctx, 3, map[string]interface{}{
		"email":      "alice@example.com",
		"login_time": "2026-10-14T10:00:00Z",
	}, time.Hour))

	t.Run("保存并设置过期时间", func(t *testing.T) {
		assert.Equal(t, time.Hour, mr.TTL("session:3"))

		session, err := store.GetSession(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", session["email"])
	})

	t.Run("过期后会话不存在", func(t *testing.T) {
		mr.FastForward(2 * time.Hour)
		_, err := store.GetSession(ctx, 3)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("删除会话", func(t *testing.T) {
		require.NoError(t, store.SaveSession(ctx, 4, map[string]interface{}{"email": "b@example.com"}, time.Hour))
		require.NoError(t, store.DeleteSession(ctx, 4))
		_, err := store.GetSession(ctx, 4)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}

func TestSessionStore_Blacklist(t *testing.T) {
	ctx := context.Background()
	client, mr := newTestClient(t)
	store := NewSessionStore(client)

	token := "eyJhbGciOiJIUzI1NiJ9.payload.signature"

	inList, err := store.IsInBlacklist(ctx, token)
	require.NoError(t, err)
	assert.False(t, inList)

	require.NoError(t, store.AddToBlacklist(ctx, token, 2*time.Hour))

	inList, err = store.IsInBlacklist(ctx, token)
	require.NoError(t, err)
	assert.True(t, inList)

	t.Run("Key不包含Token原文", func(t *testing.T) {
		for _, key := range mr.Keys() {
			assert.NotContains(t, key, token)
		}
	})

	t.Run("Redis不可用返回连接错误", func(t *testing.T) {
		mr.Close()
		_, err := store.IsInBlacklist(ctx, token)
		assert.True(t, apperrors.IsKind(err, apperrors.KindConnection))
	})
}
