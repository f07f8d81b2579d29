package shared

import (
	"errors"

	"github.com/wallmasters/storefront/internal/http/response"
	"github.com/wallmasters/storefront/internal/i18n"
	"github.com/wallmasters/storefront/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get(RequestIDKey); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回国际化错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, key string, err error) {
	RespondErrorWithMsg(c, code, i18n.T(Locale(c), key), err)
}

// RespondErrorWithMsg 返回自定义消息错误响应，并在有原始错误时记录日志。
func RespondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	appErr := response.WrapError(code, msg, err)
	if appErr.ServerSide() {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Fail(c, appErr)
}

// MappedError 业务错误到接口错误响应的映射
type MappedError struct {
	Target error
	Code   int
	Key    string
}

// MessageKeyer 携带自定义翻译 key 与参数的错误（如密码策略）
type MessageKeyer interface {
	MessageKey() (string, []interface{})
}

// RespondMapped 按规则表映射错误，未命中时使用兜底码并记录原始错误
func RespondMapped(c *gin.Context, err error, rules []MappedError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if !errors.Is(err, rule.Target) {
			continue
		}
		var keyed MessageKeyer
		if errors.As(err, &keyed) {
			key, args := keyed.MessageKey()
			RespondErrorWithMsg(c, rule.Code, i18n.Sprintf(Locale(c), key, args...), nil)
			return
		}
		RespondError(c, rule.Code, rule.Key, nil)
		return
	}
	RespondError(c, fallbackCode, fallbackKey, err)
}

// Translate 按请求语言翻译 key
func Translate(c *gin.Context, key string) string {
	return i18n.T(Locale(c), key)
}
