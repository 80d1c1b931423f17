package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
	"github.com/xiebiao/bookstore-backend/pkg/logger"
)

// Response 统一响应结构
// 设计说明：
// 1. Code是业务错误码，方便客户端判断具体错误
// 2. Error/Status冗余一份HTTP语义，客户端无需解析Code也能判断成败
// 3. Data是业务数据，失败时为null
type Response struct {
	Code    int         `json:"code"`
	Error   bool        `json:"error"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	Status  int         `json:"status"`
}

// Success 成功响应（Code=0表示成功）
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
		Status:  http.StatusOK,
	})
}

// Created 创建成功响应（201）
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: "created",
		Data:    data,
		Status:  http.StatusCreated,
	})
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	err := userService.Register(...)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	// 1. 提取AppError
	appErr := apperrors.GetAppError(err)
	kind := appErr.Kind()
	status := kind.HTTPStatus()

	// 2. 记录详细错误到日志（包含内部错误）
	entry := logger.FromGin(c).WithFields(logrus.Fields{
		"code": appErr.Code,
		"kind": kind.String(),
	})
	if appErr.Err != nil {
		entry = entry.WithError(appErr.Err)
	}
	if status >= http.StatusInternalServerError {
		entry.Error(appErr.Message)
	} else {
		entry.Debug(appErr.Message)
	}

	// 3. 返回用户友好的错误信息
	c.JSON(status, Response{
		Code:    appErr.Code,
		Error:   true,
		Message: appErr.Message,
		Data:    nil,
		Status:  status,
	})
}

// ErrorWithCode 自定义错误码和消息
func ErrorWithCode(c *gin.Context, code int, message string) {
	Error(c, apperrors.New(code, message))
}

// Abort 错误响应并终止后续中间件
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}

// =========================================
// 分页响应结构
// =========================================

// PageData 分页数据封装
type PageData struct {
	Documents    interface{} `json:"documents"`    // 数据列表
	Page         int         `json:"page"`         // 当前页码
	ItemsPerPage int         `json:"itemsPerPage"` // 每页大小
	TotalCount   int64       `json:"totalCount"`   // 总记录数
	TotalPages   int         `json:"totalPages"`   // 总页数
}

// NewPageData 创建分页数据
func NewPageData(documents interface{}, total int64, page, itemsPerPage int) *PageData {
	return &PageData{
		Documents:    documents,
		Page:         page,
		ItemsPerPage: itemsPerPage,
		TotalCount:   total,
		TotalPages:   TotalPages(total, itemsPerPage),
	}
}

// TotalPages 向上取整计算总页数，total为0时返回0
func TotalPages(total int64, itemsPerPage int) int {
	if itemsPerPage <= 0 || total <= 0 {
		return 0
	}
	pages := total / int64(itemsPerPage)
	if total%int64(itemsPerPage) != 0 {
		pages++
	}
	return int(pages)
}

// SuccessWithPage 分页成功响应
func SuccessWithPage(c *gin.Context, documents interface{}, total int64, page, itemsPerPage int) {
	Success(c, NewPageData(documents, total, page, itemsPerPage))
}
