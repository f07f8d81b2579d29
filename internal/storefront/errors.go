package storefront

import (
	"errors"
	"fmt"
	"net/http"
)

// 客户端错误分类，调用方通过 errors.Is 判断
var (
	ErrValidation       = errors.New("validation failed")
	ErrDuplicate        = errors.New("duplicate record")
	ErrTransientNetwork = errors.New("network unavailable")
	ErrNotFound         = errors.New("not found")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalidResponse  = errors.New("invalid response")
)

// APIError 服务端返回的错误响应
type APIError struct {
	HTTPStatus int
	Code       int
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("api error %d: %s (request_id=%s)", e.HTTPStatus, e.Message, e.RequestID)
	}
	return fmt.Sprintf("api error %d: %s", e.HTTPStatus, e.Message)
}

// Unwrap 按 HTTP 状态归类到哨兵错误
func (e *APIError) Unwrap() error {
	return classify(e.HTTPStatus)
}

func classify(status int) error {
	switch {
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return ErrValidation
	case status == http.StatusConflict:
		return ErrDuplicate
	case status == http.StatusNotFound:
		return ErrNotFound
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return ErrUnauthorized
	case status == http.StatusTooManyRequests, status >= 500:
		return ErrTransientNetwork
	default:
		return ErrInvalidResponse
	}
}
