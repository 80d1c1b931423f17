//go:build integration

package integration

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookCRUD(t *testing.T) {
	requireServer(t)
	_, token := RegisterTestUser(t, "book_crud")

	created := CreateTestBook(t, token, "集成测试图书", 5)
	bookURL := fmt.Sprintf("%s/books/%d", BaseURL, created.ID)

	t.Run("创建后读取字段一致", func(t *testing.T) {
		resp := Do(t, http.MethodGet, bookURL, nil, "")
		require.Equal(t, http.StatusOK, resp.Status)

		got := Decode[BookData](t, resp)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "集成测试图书", got.Title)
		assert.Equal(t, "测试作者", got.Writer)
		assert.Equal(t, "https://example.com/cover.jpg", got.CoverImage)
		assert.Equal(t, int64(5), got.Point)
		assert.Equal(t, "integration", got.Tag)
	})

	t.Run("未登录不能创建", func(t *testing.T) {
		resp := Do(t, http.MethodPost, BaseURL+"/books", map[string]interface{}{
			"title": "x", "writer": "y", "coverImage": "z", "point": 1, "tag": "t",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, resp.Status)
		assert.True(t, resp.Error)
	})

	t.Run("全字段更新", func(t *testing.T) {
		resp := Do(t, http.MethodPut, bookURL, map[string]interface{}{
			"title":      "集成测试图书（第二版）",
			"writer":     "测试作者",
			"coverImage": "https://example.com/cover2.jpg",
			"point":      "8",
			"tag":        []string{"a", "b"},
		}, token)
		require.Equal(t, http.StatusOK, resp.Status, resp.Message)

		got := Decode[BookData](t, resp)
		assert.Equal(t, int64(8), got.Point)
		assert.Equal(t, `["a","b"]`, got.Tag)
	})

	t.Run("删除两次第二次返回404", func(t *testing.T) {
		resp := Do(t, http.MethodDelete, bookURL, nil, token)
		require.Equal(t, http.StatusOK, resp.Status, resp.Message)

		resp = Do(t, http.MethodDelete, bookURL, nil, token)
		assert.Equal(t, http.StatusNotFound, resp.Status)

		resp = Do(t, http.MethodGet, bookURL, nil, "")
		assert.Equal(t, http.StatusNotFound, resp.Status)
	})

	t.Run("非法ID在查库前拒绝", func(t *testing.T) {
		for _, id := range []string{"abc", "-1", "1000000"} {
			resp := Do(t, http.MethodGet, BaseURL+"/books/"+id, nil, "")
			assert.Equal(t, http.StatusBadRequest, resp.Status, "id=%s", id)
		}
	})
}

func TestBookList(t *testing.T) {
	requireServer(t)
	_, token := RegisterTestUser(t, "book_list")

	// 用唯一关键词隔离其他测试的数据
	keyword := fmt.Sprintf("Silicon%d", time.Now().UnixNano())
	for _, point := range []int64{50, 100, 300, 500, 900} {
		CreateTestBook(t, token, fmt.Sprintf("%s Valley %d", keyword, point), point)
	}

	list := func(t *testing.T, query url.Values) PageData[BookData] {
		resp := Do(t, http.MethodGet, BaseURL+"/books?"+query.Encode(), nil, "")
		require.Equal(t, http.StatusOK, resp.Status, resp.Message)
		return Decode[PageData[BookData]](t, resp)
	}

	t.Run("搜索+价格区间", func(t *testing.T) {
		page := list(t, url.Values{
			"search":   {keyword},
			"minPrice": {"100"},
			"maxPrice": {"500"},
		})
		assert.Equal(t, int64(3), page.TotalCount)
		for _, b := range page.Documents {
			assert.Contains(t, b.Title, keyword)
			assert.GreaterOrEqual(t, b.Point, int64(100))
			assert.LessOrEqual(t, b.Point, int64(500))
		}
	})

	t.Run("搜索不区分大小写", func(t *testing.T) {
		page := list(t, url.Values{"search": {"SILICON" + keyword[len("Silicon"):]}})
		assert.Equal(t, int64(5), page.TotalCount)
	})

	t.Run("分页", func(t *testing.T) {
		page := list(t, url.Values{"search": {keyword}, "page": {"2"}, "itemsPerPage": {"2"}})
		assert.Equal(t, 2, page.Page)
		assert.Equal(t, 2, page.ItemsPerPage)
		assert.Equal(t, int64(5), page.TotalCount)
		assert.Equal(t, 3, page.TotalPages)
		assert.Len(t, page.Documents, 2)
	})

	t.Run("非法参数", func(t *testing.T) {
		for _, q := range []string{"page=0", "page=1.5", "itemsPerPage=-1", "minPrice=10&maxPrice=5"} {
			resp := Do(t, http.MethodGet, BaseURL+"/books?"+q, nil, "")
			assert.Equal(t, http.StatusBadRequest, resp.Status, q)
		}
	})
}
