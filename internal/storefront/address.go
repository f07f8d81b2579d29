package storefront

import (
	"context"
	"net/http"
	"net/url"
)

func addressPath(userID string, rest ...string) string {
	path := "/addresses/" + url.PathEscape(userID)
	for _, seg := range rest {
		path += "/" + url.PathEscape(seg)
	}
	return path
}

// ListAddresses 地址列表
func (c *Client) ListAddresses(ctx context.Context, userID string) ([]Address, error) {
	var out struct {
		Addresses []Address `json:"addresses"`
	}
	if _, err := c.do(ctx, http.MethodGet, addressPath(userID), nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Addresses, nil
}

// CreateAddress 新建地址；重复地址返回 ErrDuplicate
func (c *Client) CreateAddress(ctx context.Context, userID string, input AddressInput) (*Address, error) {
	var out struct {
		Address Address `json:"address"`
	}
	if _, err := c.do(ctx, http.MethodPost, addressPath(userID), nil, input, &out); err != nil {
		return nil, err
	}
	return &out.Address, nil
}

// DeleteAddress 删除地址
func (c *Client) DeleteAddress(ctx context.Context, userID, addressID string) error {
	_, err := c.do(ctx, http.MethodDelete, addressPath(userID, addressID), nil, nil, nil)
	return err
}

// SetDefaultAddress 设为默认地址
func (c *Client) SetDefaultAddress(ctx context.Context, userID, addressID string) (*Address, error) {
	var out struct {
		Address Address `json:"address"`
	}
	if _, err := c.do(ctx, http.MethodPut, addressPath(userID, addressID, "default"), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Address, nil
}
