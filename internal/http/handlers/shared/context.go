package shared

import (
	"strconv"
	"strings"

	"github.com/wallmasters/storefront/internal/http/response"
	"github.com/wallmasters/storefront/internal/i18n"

	"github.com/gin-gonic/gin"
)

// 上下文键
const (
	UserIDKey    = "user_id"
	UserEmailKey = "user_email"
	AdminIDKey   = "admin_id"
	AdminNameKey = "username"
	RequestIDKey = "request_id"
)

// localeHeader 客户端显式指定语言
const localeHeader = "X-Locale"

// Locale 解析请求语言：X-Locale 优先，其次 Accept-Language
func Locale(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return i18n.LocaleEN
	}
	if raw := strings.TrimSpace(c.GetHeader(localeHeader)); raw != "" {
		return i18n.ResolveLocale(raw)
	}
	return i18n.ResolveLocale(c.GetHeader("Accept-Language"))
}

// GetContextUint 从上下文读取 uint 值，缺失时返回 401
func GetContextUint(c *gin.Context, key string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return 0, false
	}
	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v > 0 {
			return uint(v), true
		}
	case float64:
		if v > 0 {
			return uint(v), true
		}
	}
	RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
	return 0, false
}

// ParseUintParam 解析路径参数中的正整数 ID，失败时返回 400
func ParseUintParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil || id == 0 {
		RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return uint(id), true
}

// ParseUintQuery 解析查询参数中的正整数，失败时返回 400
func ParseUintQuery(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Query(name)), 10, 64)
	if err != nil || id == 0 {
		RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return uint(id), true
}
