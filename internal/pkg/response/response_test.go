package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) Response {
	var resp Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	return resp
}

func TestSuccess(t *testing.T) {
	router := gin.New()
	router.GET("/test", func(c *gin.Context) {
		Success(c, gin.H{"key": "value"})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	resp := parseResponse(t, w)
	assert.Equal(t, CodeSuccess, resp.Code)
	assert.Equal(t, "success", resp.Message)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "value", data["key"])
}

func TestSuccessWithMessage(t *testing.T) {
	router := gin.New()
	router.GET("/test", func(c *gin.Context) {
		SuccessWithMessage(c, "操作成功", gin.H{"result": true})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := parseResponse(t, w)
	assert.Equal(t, CodeSuccess, resp.Code)
	assert.Equal(t, "操作成功", resp.Message)
}

func TestSuccessPage(t *testing.T) {
	router := gin.New()
	router.GET("/test", func(c *gin.Context) {
		items := []string{"item1", "item2", "item3"}
		SuccessPage(c, 100, 1, 10, items)
	})

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := parseResponse(t, w)
	assert.Equal(t, CodeSuccess, resp.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(100), data["total"])
	assert.Equal(t, float64(1), data["page"])
	assert.Equal(t, float64(10), data["page_size"])

	items, ok := data["items"].([]interface{})
	require.True(t, ok)
	assert.Len(t, items, 3)
}

func TestError_DefaultMessage(t *testing.T) {
	tests := []struct {
		name        string
		fn          func(c *gin.Context)
		wantCode    int
		wantMessage string
	}{
		{
			name:        "param error",
			fn:          func(c *gin.Context) { ParamError(c, "") },
			wantCode:    CodeParamError,
			wantMessage: "参数错误",
		},
		{
			name:        "auth error",
			fn:          func(c *gin.Context) { AuthError(c, "") },
			wantCode:    CodeAuthFailed,
			wantMessage: "认证失败",
		},
		{
			name:        "permission error",
			fn:          func(c *gin.Context) { PermissionError(c, "") },
			wantCode:    CodePermissionDenied,
			wantMessage: "权限不足",
		},
		{
			name:        "not found error",
			fn:          func(c *gin.Context) { NotFoundError(c, "") },
			wantCode:    CodeResourceNotFound,
			wantMessage: "资源不存在",
		},
		{
			name:        "conflict error",
			fn:          func(c *gin.Context) { ConflictError(c, "") },
			wantCode:    CodeStateConflict,
			wantMessage: "当前状态不允许该操作",
		},
		{
			name:        "duplicate error",
			fn:          func(c *gin.Context) { DuplicateError(c, "") },
			wantCode:    CodeDuplicateAction,
			wantMessage: "重复操作",
		},
		{
			name:        "server error",
			fn:          func(c *gin.Context) { ServerError(c, "") },
			wantCode:    CodeServerError,
			wantMessage: "服务器内部错误",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/test", tt.fn)

			req := httptest.NewRequest("GET", "/test", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			resp := parseResponse(t, w)
			assert.Equal(t, tt.wantCode, resp.Code)
			assert.Equal(t, tt.wantMessage, resp.Message)
			assert.Nil(t, resp.Data)
		})
	}
}

func TestError_CustomMessage(t *testing.T) {
	router := gin.New()
	router.GET("/test", func(c *gin.Context) {
		ConflictError(c, "没有有效会籍")
	})

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := parseResponse(t, w)
	assert.Equal(t, CodeStateConflict, resp.Code)
	assert.Equal(t, "没有有效会籍", resp.Message)
}
