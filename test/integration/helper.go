//go:build integration

// Package integration 针对运行中的服务做端到端测试
//
// 运行方式：
//
//	go run ./cmd/api &
//	go test -tags=integration ./test/integration/...
//
// 服务地址可通过BOOKSTORE_BASE_URL覆盖，服务不可达时跳过全部用例
package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
	// TestPassword 测试用户密码（满足8-20位字母+数字）
	TestPassword = "Test1234"
)

// BaseURL API基础URL
var BaseURL = func() string {
	if url := os.Getenv("BOOKSTORE_BASE_URL"); url != "" {
		return url
	}
	return "http://localhost:8080/api/v1"
}()

// Response 统一响应结构
type Response struct {
	Code    int             `json:"code"`
	Error   bool            `json:"error"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Status  int             `json:"status"`
}

// AuthData 注册/登录响应数据
type AuthData struct {
	User struct {
		ID    uint   `json:"id"`
		Email string `json:"email"`
		Point int64  `json:"point"`
	} `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// BookData 图书响应数据
type BookData struct {
	ID         uint   `json:"id"`
	Title      string `json:"title"`
	Writer     string `json:"writer"`
	CoverImage string `json:"coverImage"`
	Point      int64  `json:"point"`
	Tag        string `json:"tag"`
}

// PageData 分页响应数据
type PageData[T any] struct {
	Documents    []T   `json:"documents"`
	Page         int   `json:"page"`
	ItemsPerPage int   `json:"itemsPerPage"`
	TotalCount   int64 `json:"totalCount"`
	TotalPages   int   `json:"totalPages"`
}

// OrderData 订单响应数据（列表项额外带图书信息）
type OrderData struct {
	ID     uint   `json:"id"`
	BookID uint   `json:"bookID"`
	UserID uint   `json:"userID"`
	Title  string `json:"title"`
}

// requireServer 服务未启动时跳过
func requireServer(t *testing.T) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(BaseURL + "/books?itemsPerPage=1")
	if err != nil {
		t.Skipf("服务不可达，跳过集成测试: %v", err)
	}
	resp.Body.Close()
}

// Do 发送请求并解析统一响应
func Do(t *testing.T, method, url string, data interface{}, token string) *Response {
	t.Helper()

	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	require.NoError(t, json.Unmarshal(raw, &result), "解析JSON响应失败: %s", string(raw))
	require.Equal(t, resp.StatusCode, result.Status, "HTTP状态码应与status字段一致")
	return &result
}

// Decode 解析Data字段
func Decode[T any](t *testing.T, resp *Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(resp.Data, &v), "解析响应数据失败: %s", string(resp.Data))
	return v
}

// GenerateTestEmail 生成唯一的测试邮箱
func GenerateTestEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@test.com", prefix, time.Now().UnixNano())
}

// RegisterTestUser 注册测试用户并返回用户ID和Access Token
func RegisterTestUser(t *testing.T, prefix string) (uint, string) {
	t.Helper()
	resp := Do(t, http.MethodPost, BaseURL+"/users/register", map[string]string{
		"email":    GenerateTestEmail(prefix),
		"password": TestPassword,
	}, "")
	require.Equal(t, http.StatusCreated, resp.Status, "注册失败: %s", resp.Message)

	auth := Decode[AuthData](t, resp)
	return auth.User.ID, auth.AccessToken
}

// CreateTestBook 上架测试图书并返回图书
func CreateTestBook(t *testing.T, token, title string, point int64) BookData {
	t.Helper()
	resp := Do(t, http.MethodPost, BaseURL+"/books", map[string]interface{}{
		"title":      title,
		"writer":     "测试作者",
		"coverImage": "https://example.com/cover.jpg",
		"point":      point,
		"tag":        "integration",
	}, token)
	require.Equal(t, http.StatusCreated, resp.Status, "图书上架失败: %s", resp.Message)
	return Decode[BookData](t, resp)
}
