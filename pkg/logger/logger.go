// Package logger 基于logrus的结构化日志
//
// 用法：
//
//	log, err := logger.New(logger.Options{Level: "info", Format: "json"})
//	logger.SetDefault(log)
//	logger.FromContext(ctx).WithField("book_id", id).Info("图书已创建")
package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Options 日志配置
type Options struct {
	Level        string // debug | info | warn | error
	Format       string // text | json
	Output       string // stdout | stderr | /path/to/file
	EnableCaller bool
}

// ginKey 请求级日志在gin.Context中的key
const ginKey = "logger"

type ctxKey struct{}

var std = logrus.StandardLogger()

// New 根据配置创建Logger
func New(opts Options) (*logrus.Logger, error) {
	l := logrus.New()

	// 1. 日志级别（为空时默认info）
	level := logrus.InfoLevel
	if opts.Level != "" {
		parsed, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("无效的日志级别 %q: %w", opts.Level, err)
		}
		level = parsed
	}
	l.SetLevel(level)

	// 2. 输出格式
	switch strings.ToLower(opts.Format) {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	case "", "text", "console":
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("无效的日志格式: %s", opts.Format)
	}

	// 3. 输出目标
	out, err := openOutput(opts.Output)
	if err != nil {
		return nil, err
	}
	l.SetOutput(out)

	l.SetReportCaller(opts.EnableCaller)
	return l, nil
}

func openOutput(output string) (io.Writer, error) {
	switch output {
	case "", "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	default:
		file, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("打开日志文件失败: %w", err)
		}
		return file, nil
	}
}

// SetDefault 设置全局Logger（未注入请求级日志时使用）
func SetDefault(l *logrus.Logger) {
	if l != nil {
		std = l
	}
}

// Default 返回全局Logger
func Default() *logrus.Logger {
	return std
}

// WithContext 把日志Entry放入context
func WithContext(ctx context.Context, entry *logrus.Entry) context.Context {
	return context.WithValue(ctx, ctxKey{}, entry)
}

// FromContext 取出请求级日志，没有则返回全局Logger
func FromContext(ctx context.Context) *logrus.Entry {
	if ctx != nil {
		if entry, ok := ctx.Value(ctxKey{}).(*logrus.Entry); ok {
			return entry
		}
	}
	return logrus.NewEntry(std)
}

// Attach 把请求级日志挂到gin.Context和其Request.Context上
func Attach(c *gin.Context, entry *logrus.Entry) {
	c.Set(ginKey, entry)
	c.Request = c.Request.WithContext(WithContext(c.Request.Context(), entry))
}

// FromGin 取出gin请求上的日志
func FromGin(c *gin.Context) *logrus.Entry {
	if c == nil {
		return logrus.NewEntry(std)
	}
	if v, ok := c.Get(ginKey); ok {
		if entry, ok := v.(*logrus.Entry); ok {
			return entry
		}
	}
	if c.Request != nil {
		return FromContext(c.Request.Context())
	}
	return logrus.NewEntry(std)
}
