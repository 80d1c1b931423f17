package user

import (
	"context"

	"github.com/xiebiao/bookstore-backend/internal/domain/user"
	"github.com/xiebiao/bookstore-backend/pkg/tracing"
)

// ProfileUseCase 当前登录用户信息
type ProfileUseCase struct {
	userService user.Service
}

// NewProfileUseCase 创建用户信息用例
func NewProfileUseCase(userService user.Service) *ProfileUseCase {
	return &ProfileUseCase{userService: userService}
}

// Execute 查询用户（Token有效但用户已被删除时返回NotFound）
func (uc *ProfileUseCase) Execute(ctx context.Context, userID uint) (info *UserInfo, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "Profile")
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	u, err := uc.userService.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile := newUserInfo(u)
	return &profile, nil
}
