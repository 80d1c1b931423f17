package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/xiebiao/bookstore-backend/docs" // Swagger文档（swag init生成）
)

// main 主程序入口
// 依赖由Wire在编译期组装（见wire.go / wire_gen.go）
//
// @title           Bookstore API
// @version         1.0
// @description     图书商城后端：图书增删改查、分页搜索、订购与登录认证
// @BasePath        /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 格式：Bearer {access_token}
func main() {
	// 1. 组装依赖（配置、数据库、Redis、用例、路由）
	app, cleanup, err := InitializeApp()
	if err != nil {
		log.Fatalf("初始化应用失败: %v", err)
	}
	defer cleanup()

	logEntry := app.LogEntry()

	// 2. 启动HTTP服务
	go func() {
		logEntry.Info("🚀 服务启动成功")
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logEntry.WithError(err).Fatal("启动服务失败")
		}
	}()

	// 3. 等待退出信号，优雅关闭（处理完进行中的请求）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logEntry.Info("正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Server.Shutdown(ctx); err != nil {
		logEntry.WithError(err).Error("服务关闭超时")
		return
	}
	logEntry.Info("服务已退出")
}
