// Package storefront 是商城 REST 接口的客户端，把响应信封与 HTTP 状态转换为统一的错误分类。
package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/wallmasters/storefront/internal/logger"
)

const (
	defaultTimeout = 15 * time.Second
	maxBodyBytes   = 4 << 20
)

// TokenSource 提供当前登录令牌，游客返回空字符串
type TokenSource interface {
	Token() string
}

// Client 接口客户端；请求只发送一次，不做重试
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	locale  string
}

// Option 客户端选项
type Option func(*Client)

// WithHTTPClient 使用自定义 http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout 设置单次请求超时
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.http.Timeout = timeout
		}
	}
}

// WithTokenSource 为需要登录的接口附加 Bearer 令牌
func WithTokenSource(tokens TokenSource) Option {
	return func(c *Client) {
		c.tokens = tokens
	}
}

// WithLocale 设置 X-Locale，服务端按该语言返回错误文案
func WithLocale(locale string) Option {
	return func(c *Client) {
		c.locale = strings.TrimSpace(locale)
	}
}

// New 创建客户端，baseURL 形如 http://127.0.0.1:8080/api/v1
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
	Pagination *Pagination     `json:"pagination,omitempty"`
}

// do 发送请求并把 data 解码到 out；out 为 nil 时忽略响应数据
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) (*Pagination, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.locale != "" {
		req.Header.Set("X-Locale", c.locale)
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Debugw("storefront_request_failed", "method", method, "path", path, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrTransientNetwork, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrTransientNetwork, err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apiError(resp.StatusCode, env, decodeErr)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, decodeErr)
	}
	if env.StatusCode != 0 {
		return nil, apiError(env.StatusCode, env, nil)
	}
	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("%w: decode data: %v", ErrInvalidResponse, err)
		}
	}
	return env.Pagination, nil
}

func apiError(status int, env envelope, decodeErr error) *APIError {
	apiErr := &APIError{HTTPStatus: status, Code: env.StatusCode, Message: env.Msg}
	if decodeErr != nil || apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	var meta struct {
		RequestID string `json:"request_id"`
	}
	if len(env.Data) > 0 && json.Unmarshal(env.Data, &meta) == nil {
		apiErr.RequestID = meta.RequestID
	}
	return apiErr
}

// AsAPIError 取出服务端错误详情
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
