package user

import (
	"context"

	"github.com/xiebiao/bookstore-backend/internal/domain/user"
	"github.com/xiebiao/bookstore-backend/pkg/jwt"
	"github.com/xiebiao/bookstore-backend/pkg/tracing"
)

const tracerName = "user-usecase"

// RegisterUseCase 用户注册用例
// 注册成功后直接签发Token对,客户端无需再登录一次
type RegisterUseCase struct {
	userService user.Service
	jwtManager  *jwt.Manager
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(userService user.Service, jwtManager *jwt.Manager) *RegisterUseCase {
	return &RegisterUseCase{
		userService: userService,
		jwtManager:  jwtManager,
	}
}

// Execute 执行注册
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (resp *AuthResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "Register")
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	// 1. 调用领域服务执行注册（邮箱格式、密码强度、邮箱唯一）
	u, err := uc.userService.Register(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	// 2. 签发Token对
	tokenPair, err := uc.jwtManager.GenerateToken(u.ID, u.Email)
	if err != nil {
		return nil, err
	}

	return newAuthResponse(u, tokenPair), nil
}

// =========================================
// 应用层DTO
// =========================================

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email    string
	Password string
}

// AuthResponse 注册/登录响应
type AuthResponse struct {
	User         UserInfo `json:"user"`
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	ExpiresIn    int64    `json:"expiresIn"` // Access Token有效期（秒）
}

// UserInfo 用户信息（不含密码）
type UserInfo struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Point int64  `json:"point"`
}

func newUserInfo(u *user.User) UserInfo {
	return UserInfo{ID: u.ID, Email: u.Email, Point: u.Point}
}

func newAuthResponse(u *user.User, pair *jwt.TokenPair) *AuthResponse {
	return &AuthResponse{
		User:         newUserInfo(u),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}
}
