package response

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// AppError 接口层错误：业务码决定 HTTP 状态，Message 已按请求语言翻译，
// Err 为不返回给顾客的原始错误
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("[%d] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// ServerSide 5xx 或携带原始错误时需要落日志
func (e *AppError) ServerSide() bool {
	return e.Err != nil || HTTPStatus(e.Code) >= 500
}

// WrapError 包装错误
func WrapError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// Fail 输出错误信封并中止后续 handler
func Fail(c *gin.Context, e *AppError) {
	Error(c, e.Code, e.Message)
	c.Abort()
}
