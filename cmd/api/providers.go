package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-backend/internal/domain/book"
	"github.com/xiebiao/bookstore-backend/internal/domain/user"
	"github.com/xiebiao/bookstore-backend/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-backend/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookstore-backend/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookstore-backend/pkg/circuitbreaker"
	"github.com/xiebiao/bookstore-backend/pkg/jwt"
	"github.com/xiebiao/bookstore-backend/pkg/logger"
	"github.com/xiebiao/bookstore-backend/pkg/metrics"
	"github.com/xiebiao/bookstore-backend/pkg/tracing"
)

// App 组装完成的应用
type App struct {
	Config *config.Config
	Log    *logrus.Logger
	Server *http.Server
}

// ========================================
// Custom Providers
// ========================================
// 构造函数参数需要从Config中提取，或者返回值需要附带cleanup的，在这里包一层

// provideLogger 从配置创建Logger并设为全局默认
func provideLogger(cfg *config.Config) (*logrus.Logger, error) {
	log, err := logger.New(logger.Options{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	})
	if err != nil {
		return nil, err
	}
	logger.SetDefault(log)
	return log, nil
}

// provideDB 创建数据库连接池，cleanup时关闭
func provideDB(cfg *config.Config, log *logrus.Logger) (*gorm.DB, func(), error) {
	db, err := mysql.NewDB(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.WithError(err).Warn("关闭数据库连接失败")
			}
		}
	}
	return db, cleanup, nil
}

// provideRedis 创建Redis客户端，cleanup时关闭
func provideRedis(cfg *config.Config, log *logrus.Logger) (*goredis.Client, func(), error) {
	client, err := redis.NewClient(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := client.Close(); err != nil {
			log.WithError(err).Warn("关闭Redis连接失败")
		}
	}
	return client, cleanup, nil
}

// provideTracer 开启tracing时初始化OTLP导出，关闭时使用全局Noop Provider
func provideTracer(cfg *config.Config, log *logrus.Logger) (tracing.ShutdownFunc, func(), error) {
	if !cfg.Tracing.Enabled {
		noop := func(context.Context) error { return nil }
		return noop, func() {}, nil
	}

	shutdown, err := tracing.InitTracer(cfg.Server.Name, cfg.Tracing.Endpoint)
	if err != nil {
		return nil, nil, err
	}
	log.WithField("endpoint", cfg.Tracing.Endpoint).Info("✓ 链路追踪已开启")

	cleanup := func() {
		if err := shutdown(context.Background()); err != nil {
			log.WithError(err).Warn("关闭TracerProvider失败")
		}
	}
	return shutdown, cleanup, nil
}

// provideJWTManager 从配置创建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideUserService NewService的选项是可变参数，Wire无法直接注入
func provideUserService(repo user.Repository) user.Service {
	return user.NewService(repo)
}

// provideBookCache 图书缓存
// cache.enabled=false时返回nil，领域服务退化为直接查库
func provideBookCache(cfg *config.Config, client *goredis.Client, log *logrus.Logger) book.Cache {
	if !cfg.Cache.Enabled {
		return nil
	}

	breaker := circuitbreaker.NewCircuitBreaker("book-cache", circuitbreaker.DefaultConfig())
	breaker.SetStateChangeCallback(func(name string, from, to circuitbreaker.State) {
		metrics.SetBreakerState(name, int(to))
		log.WithFields(logrus.Fields{
			"breaker": name,
			"from":    from.String(),
			"to":      to.String(),
		}).Warn("熔断器状态变化")
	})
	return redis.NewBookCache(client, cfg.Cache.BookTTL, breaker)
}

// provideServer 用配置的超时包装Gin引擎
// 依赖tracing.ShutdownFunc只是为了让Wire先初始化TracerProvider
func provideServer(cfg *config.Config, engine *gin.Engine, _ tracing.ShutdownFunc) *http.Server {
	return &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}

func newApp(cfg *config.Config, log *logrus.Logger, server *http.Server) *App {
	return &App{Config: cfg, Log: log, Server: server}
}

// LogEntry 带服务名、监听地址和运行模式的日志条目
func (a *App) LogEntry() *logrus.Entry {
	return a.Log.WithFields(logrus.Fields{
		"service": a.Config.Server.Name,
		"addr":    a.Server.Addr,
		"mode":    a.Config.Server.Mode,
	})
}
