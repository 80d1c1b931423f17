package validate

import (
	"encoding/json"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
)

func assertValidation(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation), "want validation error, got %v", err)
}

func TestID(t *testing.T) {
	t.Run("合法ID", func(t *testing.T) {
		for raw, want := range map[string]uint{"0": 0, "42": 42, " 7 ": 7, "999999": 999999} {
			id, err := ID("id", raw)
			require.NoError(t, err, raw)
			assert.Equal(t, want, id)
		}
	})

	t.Run("非法ID", func(t *testing.T) {
		for _, raw := range []string{"", "abc", "1.5", "-1", "1000000", "99999999999999999999"} {
			_, err := ID("id", raw)
			assertValidation(t, err)
		}
	})

	t.Run("错误信息包含字段名", func(t *testing.T) {
		_, err := ID("bookID", "x")
		assert.Contains(t, apperrors.GetAppError(err).Message, "bookID")
	})
}

func TestPagination(t *testing.T) {
	t.Run("空值使用默认值", func(t *testing.T) {
		p, err := Pagination("", "")
		require.NoError(t, err)
		assert.Equal(t, Page{Page: 1, ItemsPerPage: 10}, p)
		assert.Equal(t, 0, p.Offset())
	})

	t.Run("自定义分页", func(t *testing.T) {
		p, err := Pagination("3", "20")
		require.NoError(t, err)
		assert.Equal(t, 40, p.Offset())
	})

	t.Run("非整数或小于1被拒绝", func(t *testing.T) {
		for _, pair := range [][2]string{{"1.5", ""}, {"0", ""}, {"", "0"}, {"abc", "10"}, {"1", "-5"}} {
			_, err := Pagination(pair[0], pair[1])
			assertValidation(t, err)
		}
	})
}

func TestPagination_Bounds(t *testing.T) {
	t.Run("每页数量上限", func(t *testing.T) {
		p, err := Pagination("1", "100")
		require.NoError(t, err)
		assert.Equal(t, MaxItemsPerPage, p.ItemsPerPage)

		_, err = Pagination("1", "101")
		assertValidation(t, err)
	})

	t.Run("偏移量边界", func(t *testing.T) {
		// (page-1)*10 == MaxOffset 的最后一页
		last := strconv.Itoa(MaxOffset/10 + 1)
		p, err := Pagination(last, "10")
		require.NoError(t, err)
		assert.LessOrEqual(t, p.Offset(), MaxOffset)
		assert.GreaterOrEqual(t, p.Offset(), 0)

		_, err = Pagination(strconv.Itoa(MaxOffset/10+2), "10")
		assertValidation(t, err)
	})

	t.Run("乘法溢出的页码被拒绝", func(t *testing.T) {
		for _, pair := range [][2]string{
			{"9223372036854775807", "2"},
			{"1000000000000", "100"},
			{"99999999999999999999", "10"},
		} {
			_, err := Pagination(pair[0], pair[1])
			assertValidation(t, err)
		}
	})
}

func TestPrices(t *testing.T) {
	t.Run("默认无上限", func(t *testing.T) {
		r, err := Prices("", "")
		require.NoError(t, err)
		assert.Equal(t, PriceRange{}, r)
	})

	t.Run("Infinity表示无上限", func(t *testing.T) {
		r, err := Prices("100", "Infinity")
		require.NoError(t, err)
		assert.Equal(t, int64(100), r.Min)
		assert.False(t, r.HasMax)
	})

	t.Run("有界区间", func(t *testing.T) {
		r, err := Prices("100", "500")
		require.NoError(t, err)
		assert.Equal(t, PriceRange{Min: 100, Max: 500, HasMax: true}, r)
	})

	t.Run("最小值等于最大值", func(t *testing.T) {
		_, err := Prices("200", "200")
		assert.NoError(t, err)
	})

	t.Run("非法区间", func(t *testing.T) {
		for _, pair := range [][2]string{{"500", "100"}, {"-1", ""}, {"abc", ""}, {"", "xyz"}, {"", "-3"}} {
			_, err := Prices(pair[0], pair[1])
			assertValidation(t, err)
		}
	})
}

func TestNonNegativeInt(t *testing.T) {
	for raw, want := range map[string]int64{"0": 0, "100": 100, "1e2": 100, "250.0": 250} {
		v, err := NonNegativeInt("point", json.Number(raw))
		require.NoError(t, err, raw)
		assert.Equal(t, want, v)
	}

	for _, raw := range []string{"", "-1", "12.5", "abc"} {
		_, err := NonNegativeInt("point", json.Number(raw))
		assertValidation(t, err)
	}
}

func TestTag(t *testing.T) {
	t.Run("字符串取内容", func(t *testing.T) {
		tag, err := Tag(json.RawMessage(`"fiction"`))
		require.NoError(t, err)
		assert.Equal(t, "fiction", tag)
	})

	t.Run("其他JSON保留原文", func(t *testing.T) {
		tag, err := Tag(json.RawMessage(`[ "a", "b" ]`))
		require.NoError(t, err)
		assert.Equal(t, `["a","b"]`, tag)
	})

	t.Run("缺失或空字符串", func(t *testing.T) {
		for _, raw := range []string{"", "null", `""`, `"  "`} {
			_, err := Tag(json.RawMessage(raw))
			assertValidation(t, err)
		}
	})
}

func TestRequired(t *testing.T) {
	assert.NoError(t, Required("title", "Go"))
	assertValidation(t, Required("title", "   "))
}
