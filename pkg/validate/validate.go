// Package validate 校验来自HTTP层的原始字符串参数
//
// 所有函数在访问存储之前执行，失败统一返回KindValidation类的AppError。
package validate

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
)

const (
	// MaxID ID上限（不含）
	MaxID = 1000000

	DefaultPage         = 1
	DefaultItemsPerPage = 10

	// MaxItemsPerPage 每页数量上限
	MaxItemsPerPage = 100
	// MaxOffset (page-1)*itemsPerPage的上限，超过的页码必然为空页
	MaxOffset = math.MaxInt32
)

// Page 分页参数
type Page struct {
	Page         int
	ItemsPerPage int
}

// Offset 计算偏移量
func (p Page) Offset() int {
	return (p.Page - 1) * p.ItemsPerPage
}

// PriceRange 价格区间，HasMax为false表示无上限
type PriceRange struct {
	Min    int64
	Max    int64
	HasMax bool
}

func invalid(format string, args ...interface{}) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeInvalidParams, format, args...)
}

// ID 校验资源ID：必填、整数、0 <= id < 1000000
func ID(name, raw string) (uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, invalid("%s不能为空", name)
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, invalid("%s必须是数字", name)
	}
	if n < 0 {
		return 0, invalid("%s不能为负数", name)
	}
	if n >= MaxID {
		return 0, invalid("%s必须小于%d", name, MaxID)
	}
	return uint(n), nil
}

// Pagination 校验分页参数，为空时使用默认值
func Pagination(page, itemsPerPage string) (Page, error) {
	p, err := positiveInt("page", page, DefaultPage)
	if err != nil {
		return Page{}, err
	}
	size, err := positiveInt("itemsPerPage", itemsPerPage, DefaultItemsPerPage)
	if err != nil {
		return Page{}, err
	}
	if size > MaxItemsPerPage {
		return Page{}, invalid("itemsPerPage不能大于%d", MaxItemsPerPage)
	}
	// 先除后比较，避免乘法溢出
	if p-1 > MaxOffset/size {
		return Page{}, invalid("page超出范围")
	}
	return Page{Page: p, ItemsPerPage: size}, nil
}

func positiveInt(name, raw string, def int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalid("%s必须是整数", name)
	}
	if n < 1 {
		return 0, invalid("%s必须大于等于1", name)
	}
	return n, nil
}

// Prices 校验价格区间
// min默认0；max默认无上限，也接受Infinity/inf
func Prices(min, max string) (PriceRange, error) {
	var r PriceRange

	min = strings.TrimSpace(min)
	if min != "" {
		v, err := strconv.ParseInt(min, 10, 64)
		if err != nil {
			return PriceRange{}, invalid("minPrice必须是整数")
		}
		if v < 0 {
			return PriceRange{}, invalid("minPrice不能为负数")
		}
		r.Min = v
	}

	max = strings.TrimSpace(max)
	if max != "" && !isInfinity(max) {
		v, err := strconv.ParseInt(max, 10, 64)
		if err != nil {
			return PriceRange{}, invalid("maxPrice必须是整数")
		}
		if v < 0 {
			return PriceRange{}, invalid("maxPrice不能为负数")
		}
		r.Max = v
		r.HasMax = true
	}

	if r.HasMax && r.Min > r.Max {
		return PriceRange{}, invalid("minPrice不能大于maxPrice")
	}
	return r, nil
}

func isInfinity(s string) bool {
	switch strings.ToLower(strings.TrimPrefix(s, "+")) {
	case "infinity", "inf":
		return true
	}
	return false
}

// Search 规整搜索关键字
func Search(raw string) string {
	return strings.TrimSpace(raw)
}

// Required 校验字符串必填
func Required(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return invalid("%s不能为空", name)
	}
	return nil
}

// NonNegativeInt 校验JSON数字（也接受数字字符串）为非负整数
func NonNegativeInt(name string, n json.Number) (int64, error) {
	s := strings.TrimSpace(n.String())
	if s == "" {
		return 0, invalid("%s不能为空", name)
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// 1e2、100.0这类写法只要是整数也接受
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != math.Trunc(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt64 {
			return 0, invalid("%s必须是整数", name)
		}
		v = int64(f)
	}
	if v < 0 {
		return 0, invalid("%s不能为负数", name)
	}
	return v, nil
}

// Tag 规整标签字段
// JSON字符串取其内容，其他JSON值（数组、对象、数字）按原文保存
func Tag(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", invalid("tag不能为空")
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", invalid("tag格式错误")
		}
		if err := Required("tag", s); err != nil {
			return "", err
		}
		return s, nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return "", invalid("tag格式错误")
	}
	return buf.String(), nil
}
