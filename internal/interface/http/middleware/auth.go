package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
	"github.com/xiebiao/bookstore-backend/pkg/jwt"
	"github.com/xiebiao/bookstore-backend/pkg/logger"
	"github.com/xiebiao/bookstore-backend/pkg/response"
)

// Context中的键
const (
	ContextUserID      = "user_id"
	ContextEmail       = "email"
	ContextAccessToken = "access_token"
)

// TokenBlacklist 已登出Token黑名单（由redis.SessionStore实现）
type TokenBlacklist interface {
	IsInBlacklist(ctx context.Context, token string) (bool, error)
}

// AuthMiddleware JWT认证中间件
// 1. 从Header提取Token
// 2. 检查Token黑名单
// 3. 验证签名和有效期
// 4. 将用户信息注入Context
type AuthMiddleware struct {
	jwtManager *jwt.Manager
	blacklist  TokenBlacklist
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(jwtManager *jwt.Manager, blacklist TokenBlacklist) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		blacklist:  blacklist,
	}
}

// RequireAuth 要求登录
//
//	authorized := v1.Group("")
//	authorized.Use(authMiddleware.RequireAuth())
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 格式：Authorization: Bearer <token>
		tokenString, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			response.Abort(c, err)
			return
		}

		// 2. 已登出的Token（黑名单不可用时拒绝请求）
		blacklisted, err := m.blacklist.IsInBlacklist(c.Request.Context(), tokenString)
		if err != nil {
			response.Abort(c, err)
			return
		}
		if blacklisted {
			response.Abort(c, apperrors.ErrInvalidToken.WithMessage("Token已失效，请重新登录"))
			return
		}

		// 3. 签名、有效期、Token类型
		claims, err := m.jwtManager.ParseAccessToken(tokenString)
		if err != nil {
			response.Abort(c, err)
			return
		}

		// 4. 注入用户信息,请求日志同时带上user_id
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextAccessToken, tokenString)
		logger.Attach(c, logger.FromGin(c).WithField("user_id", claims.UserID))

		c.Next()
	}
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", apperrors.ErrUnauthorized
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", apperrors.ErrInvalidToken.WithMessage("Token格式错误")
	}
	return strings.TrimSpace(parts[1]), nil
}

// =========================================
// Context辅助函数（供Handler使用）
// =========================================

// GetUserID 从Context获取当前登录用户ID，未登录返回0
func GetUserID(c *gin.Context) uint {
	if uid, ok := c.Get(ContextUserID); ok {
		if id, ok := uid.(uint); ok {
			return id
		}
	}
	return 0
}

// GetEmail 从Context获取当前登录用户邮箱
func GetEmail(c *gin.Context) string {
	return c.GetString(ContextEmail)
}

// GetAccessToken 从Context获取当前请求的Access Token（登出时加入黑名单）
func GetAccessToken(c *gin.Context) string {
	return c.GetString(ContextAccessToken)
}

// MustGetUserID 从Context获取用户ID（如果不存在则panic）
// 只用于已经通过RequireAuth的Handler，panic由Recovery中间件兜底
func MustGetUserID(c *gin.Context) uint {
	userID := GetUserID(c)
	if userID == 0 {
		panic("user_id not found in context")
	}
	return userID
}
