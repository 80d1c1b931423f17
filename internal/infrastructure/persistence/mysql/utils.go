package mysql

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
)

// MySQL错误码
const (
	mysqlErrDuplicateEntry  = 1062 // Duplicate entry 'xxx' for key 'yyy'
	mysqlErrRowIsReferenced = 1451 // 删除/更新被外键引用的行
	mysqlErrNoReferencedRow = 1452 // 插入/更新引用了不存在的行
)

func mysqlErrorNumber(err error) uint16 {
	var myErr *gomysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number
	}
	return 0
}

// isDuplicateError 判断是否为MySQL唯一索引冲突错误
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || mysqlErrorNumber(err) == mysqlErrDuplicateEntry {
		return true
	}
	// 兼容检查:错误信息包含"Duplicate entry"
	return strings.Contains(err.Error(), "Duplicate entry")
}

// isForeignKeyError 判断是否为外键约束失败
func isForeignKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	switch mysqlErrorNumber(err) {
	case mysqlErrRowIsReferenced, mysqlErrNoReferencedRow:
		return true
	}
	return false
}

// isConnectionError 判断是否为连接类故障(连接失效、超时、网络错误)
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, gomysql.ErrInvalidConn) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// translateError 把驱动错误统一转换为业务错误,只在仓储层调用一次
func translateError(err error, message string) error {
	switch {
	case err == nil:
		return nil
	case apperrors.IsAppError(err):
		return err
	case isDuplicateError(err):
		return apperrors.ErrDuplicateEntry.WithErr(err)
	case isForeignKeyError(err):
		return apperrors.ErrForeignKey.WithErr(err)
	case isConnectionError(err):
		return apperrors.ErrDatabaseError.WithErr(err)
	default:
		return apperrors.Wrap(err, message)
	}
}
