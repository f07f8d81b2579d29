package storefront

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// SubmitOrder 提交订单，返回服务端订单号；只发送一次
func (c *Client) SubmitOrder(ctx context.Context, req OrderRequest) (string, error) {
	var out struct {
		Order Order `json:"order"`
	}
	if _, err := c.do(ctx, http.MethodPost, "/orders", nil, req, &out); err != nil {
		return "", err
	}
	if out.Order.OrderID == "" {
		return "", fmt.Errorf("%w: missing order_id", ErrInvalidResponse)
	}
	return out.Order.OrderID, nil
}

// ListOrders 我的订单
func (c *Client) ListOrders(ctx context.Context, page, pageSize int) ([]Order, *Pagination, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		query.Set("page_size", strconv.Itoa(pageSize))
	}
	var orders []Order
	pagination, err := c.do(ctx, http.MethodGet, "/orders", query, nil, &orders)
	if err != nil {
		return nil, nil, err
	}
	return orders, pagination, nil
}

// GetOrder 订单详情
func (c *Client) GetOrder(ctx context.Context, orderNo string) (*Order, error) {
	var out struct {
		Order Order `json:"order"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(orderNo), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Order, nil
}
