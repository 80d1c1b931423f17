package user

import (
	"context"
	"time"

	"github.com/xiebiao/bookstore-backend/internal/domain/user"
	"github.com/xiebiao/bookstore-backend/pkg/jwt"
	"github.com/xiebiao/bookstore-backend/pkg/logger"
	"github.com/xiebiao/bookstore-backend/pkg/tracing"
)

// SessionStore 会话存储（由redis.SessionStore实现）
type SessionStore interface {
	SaveSession(ctx context.Context, userID uint, sessionData map[string]interface{}, ttl time.Duration) error
	DeleteSession(ctx context.Context, userID uint) error
	AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error
}

// LoginUseCase 用户登录用例
// 1. 验证邮箱密码
// 2. 生成JWT Token对
// 3. 保存会话到Redis
type LoginUseCase struct {
	userService  user.Service
	jwtManager   *jwt.Manager
	sessionStore SessionStore
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(
	userService user.Service,
	jwtManager *jwt.Manager,
	sessionStore SessionStore,
) *LoginUseCase {
	return &LoginUseCase{
		userService:  userService,
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
	}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string
	Password string
	ClientIP string
}

// Execute 执行登录
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (resp *AuthResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "Login")
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	// 1. 验证邮箱密码（邮箱不存在和密码错误返回同一个错误）
	u, err := uc.userService.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	// 2. 生成JWT Token对
	tokenPair, err := uc.jwtManager.GenerateToken(u.ID, u.Email)
	if err != nil {
		return nil, err
	}

	// 3. 保存会话，有效期与Refresh Token一致
	sessionData := map[string]interface{}{
		"user_id":  u.ID,
		"email":    u.Email,
		"login_at": time.Now().Unix(),
		"ip":       req.ClientIP,
	}
	if err := uc.sessionStore.SaveSession(ctx, u.ID, sessionData, uc.jwtManager.RefreshTokenTTL()); err != nil {
		// 会话保存失败不影响登录
		logger.FromContext(ctx).WithError(err).WithField("user_id", u.ID).Warn("保存会话失败")
	}

	return newAuthResponse(u, tokenPair), nil
}

// LogoutUseCase 用户登出用例
type LogoutUseCase struct {
	sessionStore SessionStore
	jwtManager   *jwt.Manager
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(sessionStore SessionStore, jwtManager *jwt.Manager) *LogoutUseCase {
	return &LogoutUseCase{sessionStore: sessionStore, jwtManager: jwtManager}
}

// Execute 删除会话并把Access Token加入黑名单
func (uc *LogoutUseCase) Execute(ctx context.Context, userID uint, accessToken string) (err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "Logout")
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	if err := uc.sessionStore.DeleteSession(ctx, userID); err != nil {
		return err
	}

	// 黑名单有效期=Access Token有效期，之后Token自然过期
	return uc.sessionStore.AddToBlacklist(ctx, accessToken, uc.jwtManager.AccessTokenTTL())
}

// RefreshUseCase 刷新Access Token
type RefreshUseCase struct {
	jwtManager *jwt.Manager
}

// NewRefreshUseCase 创建刷新用例
func NewRefreshUseCase(jwtManager *jwt.Manager) *RefreshUseCase {
	return &RefreshUseCase{jwtManager: jwtManager}
}

// RefreshResponse 刷新响应
type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// Execute 用Refresh Token换取新的Access Token
func (uc *RefreshUseCase) Execute(ctx context.Context, refreshToken string) (resp *RefreshResponse, err error) {
	_, span := tracing.StartSpan(ctx, tracerName, "Refresh")
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	accessToken, err := uc.jwtManager.RefreshAccessToken(refreshToken)
	if err != nil {
		return nil, err
	}
	return &RefreshResponse{
		AccessToken: accessToken,
		ExpiresIn:   int64(uc.jwtManager.AccessTokenTTL().Seconds()),
	}, nil
}
