//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 修改本文件后运行 `wire gen ./cmd/api` 重新生成wire_gen.go
package main

import (
	"github.com/google/wire"

	appbook "github.com/xiebiao/bookstore-backend/internal/application/book"
	apporder "github.com/xiebiao/bookstore-backend/internal/application/order"
	appuser "github.com/xiebiao/bookstore-backend/internal/application/user"
	"github.com/xiebiao/bookstore-backend/internal/domain/book"
	"github.com/xiebiao/bookstore-backend/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-backend/internal/infrastructure/messaging"
	"github.com/xiebiao/bookstore-backend/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookstore-backend/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookstore-backend/internal/interface/http/handler"
	"github.com/xiebiao/bookstore-backend/internal/interface/http/middleware"
	"github.com/xiebiao/bookstore-backend/internal/interface/http/router"
)

// infrastructureSet 基础设施层依赖
var infrastructureSet = wire.NewSet(
	config.Load,
	provideLogger,
	provideDB,
	provideRedis,
	provideTracer,
	messaging.NewFromConfig, // 订单事件发布者
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewBookRepository,
	mysql.NewOrderRepository,
	mysql.NewTxManager,
	wire.Bind(new(apporder.Transactor), new(*mysql.TxManager)),
	redis.NewSessionStore,
	wire.Bind(new(appuser.SessionStore), new(*redis.SessionStore)),
	wire.Bind(new(middleware.TokenBlacklist), new(*redis.SessionStore)),
	provideBookCache,
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	provideUserService,
	book.NewService,
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewRefreshUseCase,
	appuser.NewLogoutUseCase,
	appuser.NewProfileUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewCreateBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
	apporder.NewPlaceOrderUseCase,
	apporder.NewCancelOrderUseCase,
	apporder.NewListOrdersUseCase,
)

// interfaceSet 中间件、处理器、路由
var interfaceSet = wire.NewSet(
	provideJWTManager,
	middleware.NewAuthMiddleware,
	handler.NewUserHandler,
	handler.NewBookHandler,
	handler.NewOrderHandler,
	wire.Struct(new(router.Handlers), "*"),
	router.New,
	provideServer,
)

// InitializeApp 初始化整个应用
// cleanup按创建的逆序释放资源（Tracer、MQ连接、Redis、数据库）
func InitializeApp() (*App, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		interfaceSet,
		newApp,
	)
	return nil, nil, nil
}
