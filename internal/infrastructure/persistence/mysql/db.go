package mysql

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookstore-backend/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架，连接池由database/sql管理
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate），外键约束随迁移创建
func NewDB(cfg *config.Config, log *logrus.Logger) (*gorm.DB, error) {
	// 1. 构建DSN连接字符串
	dsn := cfg.Database.DSN()

	// 2. 配置GORM日志
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	// 3. 连接数据库
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:                 logger.New(log, logger.Config{SlowThreshold: 200 * time.Millisecond, LogLevel: logLevel}),
		SkipDefaultTransaction: true,
		NowFunc: func() time.Time {
			return time.Now()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 4. 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	// 最大打开连接数（建议：CPU核数 * 2 + 磁盘数量）
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)

	// 最大空闲连接数（建议：MaxOpenConns的1/4到1/2）
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	// 连接最大存活时间（防止数据库主动断开连接）
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// 5. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.WithField("addr", fmt.Sprintf("%s:%d", cfg.Database.Host, cfg.Database.Port)).Info("✓ 数据库连接成功")

	// 6. 自动迁移表结构
	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// AutoMigrate 自动迁移表结构
// 顺序：被引用的表在前（users、books），orders在后
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&BookModel{},
		&OrderModel{},
	)
}

// UserModel GORM用户模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/user/entity.go是领域实体，不依赖GORM
// 3. Repository负责两者之间的转换
type UserModel struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Password  string    `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	Point     int64     `gorm:"not null;default:100;comment:积分"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// BookModel GORM图书模型
// 设计说明:
// 1. 物理删除,没有DeletedAt
// 2. point单独建索引,支持价格区间过滤
// 3. tag可能保存JSON原文,使用text类型
type BookModel struct {
	ID         uint      `gorm:"primaryKey"`
	Title      string    `gorm:"size:255;not null;comment:书名"`
	Writer     string    `gorm:"size:255;not null;comment:作者"`
	CoverImage string    `gorm:"size:500;not null;comment:封面图片URL"`
	Point      int64     `gorm:"index;not null;default:0;comment:价格"`
	Tag        string    `gorm:"type:text;comment:标签"`
	CreatedAt  time.Time `gorm:"comment:创建时间"`
	UpdatedAt  time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// OrderModel GORM订单模型
// 设计说明:
// 1. (book_id, user_id)联合唯一,同一用户同一本书只能有一个订单
// 2. Book/User仅用于迁移时生成外键约束,读写时不加载
// 3. 删除仍被订单引用的图书或用户会被外键拒绝(RESTRICT)
type OrderModel struct {
	ID        uint      `gorm:"primaryKey"`
	BookID    uint      `gorm:"uniqueIndex:idx_book_user;not null;comment:图书ID"`
	UserID    uint      `gorm:"uniqueIndex:idx_book_user;index;not null;comment:用户ID"`
	CreatedAt time.Time `gorm:"comment:创建时间"`

	Book BookModel `gorm:"foreignKey:BookID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	User UserModel `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// TableName 指定表名
func (OrderModel) TableName() string {
	return "orders"
}
