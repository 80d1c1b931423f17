package book

import (
	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.ErrBookNotFound

	// ErrBookNotCreated 插入没有影响任何行
	ErrBookNotCreated = apperrors.ErrBookNotCreated

	// ErrBookReferenced 图书仍被订单引用,不能删除
	ErrBookReferenced = apperrors.New(apperrors.ErrCodeForeignKey, "图书已被订购,不能删除")

	// ErrInvalidPoint 无效的价格
	ErrInvalidPoint = apperrors.New(apperrors.ErrCodeInvalidParams, "point不能为负数")
)
