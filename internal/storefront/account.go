package storefront

import (
	"context"
	"net/http"
)

// Register 注册并返回登录令牌
func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var out AuthResult
	if _, err := c.do(ctx, http.MethodPost, "/auth/register", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login 邮箱密码登录
func (c *Client) Login(ctx context.Context, email, password string, rememberMe bool) (*AuthResult, error) {
	body := map[string]interface{}{"email": email, "password": password, "remember_me": rememberMe}
	var out AuthResult
	if _, err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me 当前登录用户
func (c *Client) Me(ctx context.Context) (*User, error) {
	var out User
	if _, err := c.do(ctx, http.MethodGet, "/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
