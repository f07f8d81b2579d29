package storefront

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// ListProducts 商品列表
func (c *Client) ListProducts(ctx context.Context, q ProductQuery) ([]Product, *Pagination, error) {
	query := url.Values{}
	if v := strings.TrimSpace(q.Category); v != "" {
		query.Set("category", v)
	}
	if v := strings.TrimSpace(q.Search); v != "" {
		query.Set("search", v)
	}
	if q.Page > 0 {
		query.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		query.Set("page_size", strconv.Itoa(q.PageSize))
	}
	var products []Product
	page, err := c.do(ctx, http.MethodGet, "/products", query, nil, &products)
	if err != nil {
		return nil, nil, err
	}
	return products, page, nil
}

// GetProduct 商品详情
func (c *Client) GetProduct(ctx context.Context, id string) (*Product, error) {
	var out struct {
		Product Product `json:"product"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Product, nil
}
