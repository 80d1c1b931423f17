// Package router 注册HTTP路由
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/xiebiao/bookstore-backend/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-backend/internal/interface/http/handler"
	"github.com/xiebiao/bookstore-backend/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
	"github.com/xiebiao/bookstore-backend/pkg/metrics"
	"github.com/xiebiao/bookstore-backend/pkg/response"
)

// Handlers 路由需要的所有处理器
type Handlers struct {
	User  *handler.UserHandler
	Book  *handler.BookHandler
	Order *handler.OrderHandler
}

// New 创建Gin引擎并注册路由
// 中间件顺序：Recovery → Tracing → RequestLogger → Metrics → 业务Handler
func New(cfg *config.Config, log *logrus.Logger, h Handlers, auth *middleware.AuthMiddleware) *gin.Engine {
	switch cfg.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}
	metrics.InitMetrics()

	r := gin.New()
	r.Use(
		middleware.Recovery(),
		middleware.Tracing(cfg.Server.Name),
		middleware.RequestLogger(log),
		middleware.Metrics(),
	)
	r.NoRoute(func(c *gin.Context) {
		response.Error(c, apperrors.ErrNotFound.WithMessage("接口不存在"))
	})

	// 健康检查、监控、文档
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if cfg.Server.Mode != "release" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requireAuth := auth.RequireAuth()

	v1 := r.Group("/api/v1")
	{
		// 用户模块
		users := v1.Group("/users")
		{
			users.POST("/register", h.User.Register)
			users.POST("/login", h.User.Login)
			users.POST("/refresh", h.User.Refresh)
			users.POST("/logout", requireAuth, h.User.Logout)
		}

		v1.GET("/profile", requireAuth, h.User.Profile)

		// 图书模块（查询公开，写操作需要登录）
		books := v1.Group("/books")
		{
			books.GET("", h.Book.ListBooks)
			books.GET("/:id", h.Book.GetBook)
			books.POST("", requireAuth, h.Book.CreateBook)
			books.PUT("/:id", requireAuth, h.Book.UpdateBook)
			books.DELETE("/:id", requireAuth, h.Book.DeleteBook)
		}

		// 订单模块（需要登录）
		orders := v1.Group("/orders", requireAuth)
		{
			orders.GET("", h.Order.ListOrders)
			orders.POST("/:bookID", h.Order.PlaceOrder)
			orders.DELETE("/:bookID", h.Order.CancelOrder)
		}
	}

	return r
}
