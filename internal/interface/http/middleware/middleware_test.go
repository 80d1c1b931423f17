package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookstore-backend/pkg/jwt"
	"github.com/xiebiao/bookstore-backend/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeBlacklist struct {
	tokens map[string]bool
	err    error
}

func (b *fakeBlacklist) IsInBlacklist(_ context.Context, token string) (bool, error) {
	if b.err != nil {
		return false, b.err
	}
	return b.tokens[token], nil
}

func decode(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func newAuthRouter(m *AuthMiddleware) *gin.Engine {
	r := gin.New()
	r.GET("/profile", m.RequireAuth(), func(c *gin.Context) {
		response.Success(c, gin.H{
			"user_id": MustGetUserID(c),
			"email":   GetEmail(c),
			"token":   GetAccessToken(c),
		})
	})
	return r
}

func TestRequireAuth(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour, 24*time.Hour)
	pair, err := manager.GenerateToken(5, "reader@example.com")
	require.NoError(t, err)

	blacklist := &fakeBlacklist{tokens: map[string]bool{}}
	r := newAuthRouter(NewAuthMiddleware(manager, blacklist))

	do := func(header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("有效Token", func(t *testing.T) {
		w := do("Bearer " + pair.AccessToken)
		require.Equal(t, http.StatusOK, w.Code)

		data := decode(t, w).Data.(map[string]interface{})
		assert.Equal(t, float64(5), data["user_id"])
		assert.Equal(t, "reader@example.com", data["email"])
		assert.Equal(t, pair.AccessToken, data["token"])
	})

	tests := []struct {
		name   string
		header string
	}{
		{"缺少Header", ""},
		{"缺少Bearer前缀", pair.AccessToken},
		{"Bearer后为空", "Bearer "},
		{"伪造Token", "Bearer abc.def.ghi"},
		{"Refresh Token", "Bearer " + pair.RefreshToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(tt.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			resp := decode(t, w)
			assert.True(t, resp.Error)
			assert.Equal(t, http.StatusUnauthorized, resp.Status)
		})
	}

	t.Run("已登出的Token", func(t *testing.T) {
		blacklist.tokens[pair.AccessToken] = true
		defer delete(blacklist.tokens, pair.AccessToken)

		w := do("Bearer " + pair.AccessToken)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("黑名单不可用", func(t *testing.T) {
		blacklist.err = errors.New("redis down")
		defer func() { blacklist.err = nil }()

		w := do("Bearer " + pair.AccessToken)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestRequestLogger(t *testing.T) {
	base, hook := test.NewNullLogger()
	base.SetLevel(logrus.DebugLevel)

	r := gin.New()
	r.Use(RequestLogger(base))
	r.GET("/books/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	t.Run("生成请求ID", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/books/1", nil))

		requestID := w.Header().Get(HeaderRequestID)
		assert.Len(t, requestID, 36)

		entry := hook.LastEntry()
		require.NotNil(t, entry)
		assert.Equal(t, logrus.WarnLevel, entry.Level)
		assert.Equal(t, requestID, entry.Data["request_id"])
		assert.Equal(t, http.StatusNotFound, entry.Data["status"])
	})

	t.Run("沿用客户端请求ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/books/1", nil)
		req.Header.Set(HeaderRequestID, "req-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "req-123", w.Header().Get(HeaderRequestID))
		assert.Equal(t, "req-123", hook.LastEntry().Data["request_id"])
	})
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/panic", func(c *gin.Context) { MustGetUserID(c) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decode(t, w)
	assert.True(t, resp.Error)
	assert.Equal(t, http.StatusInternalServerError, resp.Status)
}

func TestMetricsAndTracing(t *testing.T) {
	// 指标未注册时中间件同样可用
	r := gin.New()
	r.Use(Tracing("bookstore-test"), Metrics())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
