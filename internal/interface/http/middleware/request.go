package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
	"github.com/xiebiao/bookstore-backend/pkg/logger"
	"github.com/xiebiao/bookstore-backend/pkg/metrics"
	"github.com/xiebiao/bookstore-backend/pkg/response"
	"github.com/xiebiao/bookstore-backend/pkg/tracing"
)

// HeaderRequestID 请求ID头，客户端传入时沿用，否则生成
const HeaderRequestID = "X-Request-ID"

// RequestLogger 生成请求ID，并创建请求级日志（带request_id/trace_id），请求结束后记录访问日志
// 需要放在Tracing之后，才能拿到trace_id
func RequestLogger(base *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(HeaderRequestID, requestID)

		fields := logrus.Fields{"request_id": requestID}
		if traceID := tracing.ExtractTraceID(c.Request.Context()); traceID != "" {
			fields["trace_id"] = traceID
		}
		logger.Attach(c, base.WithFields(fields))

		c.Next()

		entry := logger.FromGin(c).WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
		})
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			entry.Error("请求完成")
		case status >= http.StatusBadRequest:
			entry.Warn("请求完成")
		default:
			entry.Info("请求完成")
		}
	}
}

// Tracing 为每个请求创建根Span
func Tracing(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartSpan(c.Request.Context(), serviceName, spanName(c))
		defer span.End()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if c.Writer.Status() >= http.StatusInternalServerError {
			tracing.RecordError(span, fmt.Errorf("HTTP %d", c.Writer.Status()))
		}
	}
}

func spanName(c *gin.Context) string {
	return c.Request.Method + " " + routePath(c)
}

// routePath 优先使用路由模板（/api/v1/books/:id），避免指标标签基数爆炸
func routePath(c *gin.Context) string {
	if path := c.FullPath(); path != "" {
		return path
	}
	return "unmatched"
}

// Metrics 记录HTTP请求数、耗时、处理中请求数
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		metrics.IncGauge(metrics.HTTPRequestsInProgress)
		defer metrics.DecGauge(metrics.HTTPRequestsInProgress)

		c.Next()

		path := routePath(c)
		metrics.IncCounterVec(metrics.HTTPRequestsTotal, map[string]string{
			"method": c.Request.Method,
			"path":   path,
			"status": strconv.Itoa(c.Writer.Status()),
		})
		metrics.ObserveHistogramVec(metrics.HTTPRequestDuration, map[string]string{
			"method": c.Request.Method,
			"path":   path,
		}, time.Since(start).Seconds())
	}
}

// Recovery 捕获panic，记录堆栈并返回500统一响应
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.FromGin(c).WithFields(logrus.Fields{
					"panic": r,
					"stack": string(debug.Stack()),
				}).Error("请求处理panic")
				response.Abort(c, apperrors.ErrInternal)
			}
		}()
		c.Next()
	}
}
