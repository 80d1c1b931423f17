package user

import (
	"time"
)

// DefaultPoint 新用户的初始积分
const DefaultPoint int64 = 100

// User 用户实体（聚合根）
// DDD设计说明：
// 1. User是用户聚合的根实体，包含用户的核心属性
// 2. 密码已加密存储（bcrypt），不应该有GetPassword()等方法暴露明文
// 3. 领域实体不依赖GORM tag（infrastructure层的Repository实现时会处理映射）
type User struct {
	ID        uint
	Email     string
	Password  string // bcrypt哈希值
	Point     int64  // 积分余额
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser 创建新用户（工厂方法）
// hashedPassword必须是bcrypt加密后的密码
func NewUser(email, hashedPassword string) *User {
	now := time.Now()
	return &User{
		Email:     email,
		Password:  hashedPassword,
		Point:     DefaultPoint,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
