// Package checkout 组装订单快照并把购物车提交为订单。
// 提交只发起一次请求；失败时购物车保持原样，成功后清空。
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/wallmasters/storefront/internal/cart"
	"github.com/wallmasters/storefront/internal/identity"
	"github.com/wallmasters/storefront/internal/logger"
	"github.com/wallmasters/storefront/internal/pricing"
	"github.com/wallmasters/storefront/internal/storefront"
)

var (
	// ErrSubmitInProgress 已有一次提交尚未返回
	ErrSubmitInProgress = errors.New("order submission already in progress")
	// ErrEmptyCart 购物车为空
	ErrEmptyCart = fmt.Errorf("%w: cart is empty", storefront.ErrValidation)
	// ErrSignInRequired 游客不能下单
	ErrSignInRequired = fmt.Errorf("%w: sign in required", storefront.ErrUnauthorized)
)

// API 结算依赖的远端接口
type API interface {
	ListAddresses(ctx context.Context, userID string) ([]storefront.Address, error)
	CreateAddress(ctx context.Context, userID string, input storefront.AddressInput) (*storefront.Address, error)
	SubmitOrder(ctx context.Context, req storefront.OrderRequest) (string, error)
}

// Cart 结算读取的购物车
type Cart interface {
	Items() []cart.LineItem
	ClearCart()
}

// Flow 结算流程
type Flow struct {
	cart       Cart
	api        API
	identity   identity.Provider
	rule       pricing.Rule
	country    string
	submitting atomic.Bool
}

// NewFlow 创建结算流程；country 为地址表单固定的国家
func NewFlow(c Cart, api API, provider identity.Provider, rule pricing.Rule, country string) *Flow {
	country = strings.TrimSpace(country)
	if country == "" {
		country = "Egypt"
	}
	return &Flow{cart: c, api: api, identity: provider, rule: rule, country: country}
}

// Totals 当前购物车的小计、运费与总额
func (f *Flow) Totals() pricing.Totals {
	return Totals(f.cart.Items(), f.rule)
}

// Submitting 是否有提交正在进行
func (f *Flow) Submitting() bool {
	return f.submitting.Load()
}

// Result 下单结果
type Result struct {
	OrderID  string
	Snapshot OrderSnapshot
}

// SubmitOrder 校验表单、按需保存地址、提交订单。
// 同一时刻只允许一次提交；失败时购物车不变，成功后清空购物车。
func (f *Flow) SubmitOrder(ctx context.Context, form AddressForm) (*Result, error) {
	if !f.submitting.CompareAndSwap(false, true) {
		return nil, ErrSubmitInProgress
	}
	defer f.submitting.Store(false)

	userID, ok := f.identity.Current()
	if !ok {
		return nil, ErrSignInRequired
	}
	items := f.cart.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	form.Country = f.country
	if err := form.Validate(); err != nil {
		return nil, err
	}

	if form.SaveToBook {
		if _, err := f.SaveAddress(ctx, form); err != nil {
			return nil, err
		}
	}

	snapshot := NewSnapshot(items, form.shipping(), f.rule)
	log := logger.SW("user_id", userID, "items", len(items), "total", snapshot.Totals.Total.String())
	orderID, err := f.api.SubmitOrder(ctx, snapshot.Request(userID))
	if err != nil {
		log.Warnw("order_submit_failed", "error", err)
		return nil, fmt.Errorf("submit order: %w", err)
	}

	f.cart.ClearCart()
	log.Infow("order_submitted", "order_id", orderID)
	return &Result{OrderID: orderID, Snapshot: snapshot}, nil
}

// SaveAddress 把表单地址保存到地址簿；地址已存在视为成功并返回 nil 地址
func (f *Flow) SaveAddress(ctx context.Context, form AddressForm) (*storefront.Address, error) {
	userID, ok := f.identity.Current()
	if !ok {
		return nil, ErrSignInRequired
	}
	form.Country = f.country
	if err := form.Validate(); err != nil {
		return nil, err
	}
	addr, err := f.api.CreateAddress(ctx, userID, form.input())
	if errors.Is(err, storefront.ErrDuplicate) {
		logger.Debugw("checkout_address_exists", "user_id", userID)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("save address: %w", err)
	}
	return addr, nil
}
