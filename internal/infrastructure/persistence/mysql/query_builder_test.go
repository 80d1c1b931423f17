package mysql

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
	"github.com/xiebiao/bookstore-backend/pkg/validate"
)

func TestBookFilter_Predicates(t *testing.T) {
	t.Run("无条件", func(t *testing.T) {
		assert.Empty(t, BookFilter{}.Predicates())
	})

	t.Run("搜索+价格区间", func(t *testing.T) {
		preds := BookFilter{Search: "Silicon", MinPrice: 100, MaxPrice: 500, HasMax: true}.Predicates()

		assert.Equal(t, []Predicate{
			{SQL: "(LOWER(title) LIKE ? OR LOWER(writer) LIKE ?)", Args: []interface{}{"%silicon%", "%silicon%"}},
			{SQL: "point >= ?", Args: []interface{}{int64(100)}},
			{SQL: "point <= ?", Args: []interface{}{int64(500)}},
		}, preds)
	})

	t.Run("最低价为0不加下限", func(t *testing.T) {
		preds := BookFilter{MinPrice: 0, MaxPrice: 0, HasMax: true}.Predicates()
		assert.Equal(t, []Predicate{{SQL: "point <= ?", Args: []interface{}{int64(0)}}}, preds)
	})

	t.Run("通配符按字面匹配", func(t *testing.T) {
		preds := BookFilter{Search: `50%_off\`}.Predicates()
		assert.Equal(t, `%50\%\_off\\%`, preds[0].Args[0])
	})
}

func TestSelectQuery(t *testing.T) {
	q := SelectQuery{
		Columns: "id, title",
		From:    "books",
		Where:   BookFilter{Search: "Silicon", MinPrice: 100, MaxPrice: 500, HasMax: true}.Predicates(),
		OrderBy: "id ASC",
	}

	t.Run("计数查询", func(t *testing.T) {
		sql, args := q.CountSQL()
		assert.Equal(t, "SELECT COUNT(*) FROM books WHERE (LOWER(title) LIKE ? OR LOWER(writer) LIKE ?) AND point >= ? AND point <= ?", sql)
		assert.Equal(t, []interface{}{"%silicon%", "%silicon%", int64(100), int64(500)}, args)
	})

	t.Run("分页查询", func(t *testing.T) {
		sql, args := q.PageSQL(3, 20)
		assert.Equal(t, "SELECT id, title FROM books WHERE (LOWER(title) LIKE ? OR LOWER(writer) LIKE ?) AND point >= ? AND point <= ? ORDER BY id ASC LIMIT ? OFFSET ?", sql)
		assert.Equal(t, []interface{}{"%silicon%", "%silicon%", int64(100), int64(500), 20, 40}, args)
	})

	t.Run("占位符数量与参数数量一致", func(t *testing.T) {
		sql, args := q.PageSQL(1, 10)
		assert.Equal(t, len(args), countPlaceholders(sql))
		sql, args = q.CountSQL()
		assert.Equal(t, len(args), countPlaceholders(sql))
	})

	t.Run("无条件时没有WHERE", func(t *testing.T) {
		sql, args := SelectQuery{Columns: "*", From: "books"}.PageSQL(1, 10)
		assert.Equal(t, "SELECT * FROM books LIMIT ? OFFSET ?", sql)
		assert.Equal(t, []interface{}{10, 0}, args)
	})

	t.Run("多次调用互不影响", func(t *testing.T) {
		_, first := q.PageSQL(1, 10)
		_, second := q.PageSQL(2, 10)
		_, count := q.CountSQL()
		assert.Len(t, first, 6)
		assert.Len(t, second, 6)
		assert.Len(t, count, 4)
	})
}

func TestSelectQuery_PageBoundary(t *testing.T) {
	q := SelectQuery{Columns: "*", From: "books"}

	t.Run("最大合法页码偏移量不溢出", func(t *testing.T) {
		p, err := validate.Pagination(strconv.Itoa(validate.MaxOffset/validate.MaxItemsPerPage+1), "100")
		require.NoError(t, err)

		_, args := q.PageSQL(p.Page, p.ItemsPerPage)
		require.Len(t, args, 2)
		assert.Equal(t, 100, args[0])
		offset := args[1].(int)
		assert.GreaterOrEqual(t, offset, 0)
		assert.LessOrEqual(t, offset, validate.MaxOffset)
		assert.Equal(t, p.Offset(), offset)
	})

	t.Run("溢出的页码在生成SQL前被拒绝", func(t *testing.T) {
		_, err := validate.Pagination("9223372036854775807", "2")
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	})
}

func countPlaceholders(sql string) int {
	n := 0
	for _, r := range sql {
		if r == '?' {
			n++
		}
	}
	return n
}
