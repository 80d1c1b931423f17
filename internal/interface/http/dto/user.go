package dto

// RegisterRequest HTTP层注册请求
// 邮箱格式和密码强度由领域服务校验
type RegisterRequest struct {
	Email    string `json:"email" binding:"required" example:"reader@example.com"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"reader@example.com"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// RefreshRequest 刷新Token请求
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// UserInfo 用户信息（不包含密码）
type UserInfo struct {
	ID    uint   `json:"id" example:"1"`
	Email string `json:"email" example:"reader@example.com"`
	Point int64  `json:"point" example:"100"`
}

// AuthResponse 注册/登录响应
type AuthResponse struct {
	User         UserInfo `json:"user"`
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	ExpiresIn    int64    `json:"expiresIn" example:"7200"` // Access Token过期时间（秒）
}

// RefreshResponse 刷新Token响应
type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn" example:"7200"`
}

// ProfileResponse 当前登录用户
type ProfileResponse struct {
	UserInfo
}
