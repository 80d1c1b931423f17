package order

import (
	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
)

// 订单领域错误定义
var (
	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = apperrors.ErrOrderNotFound

	// ErrOrderDuplicate 同一用户重复订购同一本书
	ErrOrderDuplicate = apperrors.ErrOrderDuplicate

	// ErrReferenceMissing 图书或用户不存在(外键约束失败)
	ErrReferenceMissing = apperrors.New(apperrors.ErrCodeForeignKey, "图书或用户不存在")

	// ErrInvalidReference 图书ID或用户ID格式非法
	ErrInvalidReference = apperrors.ErrInvalidReference
)
