package checkout

import (
	"github.com/wallmasters/storefront/internal/cart"
	"github.com/wallmasters/storefront/internal/pricing"
	"github.com/wallmasters/storefront/internal/storefront"
)

// OrderSnapshot 提交时冻结的购物车、地址与金额，提交后即丢弃
type OrderSnapshot struct {
	Items   []cart.LineItem
	Address storefront.ShippingAddress
	Totals  pricing.Totals
}

// Totals 按运费规则计算购物车金额
func Totals(items []cart.LineItem, rule pricing.Rule) pricing.Totals {
	lines := make([]pricing.Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, pricing.Line{UnitPrice: it.UnitPrice, Quantity: it.Quantity})
	}
	return pricing.Compute(lines, rule)
}

// NewSnapshot 复制购物车行并计算金额
func NewSnapshot(items []cart.LineItem, addr storefront.ShippingAddress, rule pricing.Rule) OrderSnapshot {
	frozen := append([]cart.LineItem(nil), items...)
	return OrderSnapshot{
		Items:   frozen,
		Address: addr,
		Totals:  Totals(frozen, rule),
	}
}

// Request 转换为下单请求体
func (s OrderSnapshot) Request(userID string) storefront.OrderRequest {
	products := make([]storefront.OrderItem, 0, len(s.Items))
	for _, it := range s.Items {
		products = append(products, storefront.OrderItem{
			ProductID: it.ProductID,
			Name:      it.DisplayName,
			Size:      it.VariantKey,
			Quantity:  it.Quantity,
			Price:     it.UnitPrice,
			Image:     it.ImageRef,
		})
	}
	return storefront.OrderRequest{
		UserID:          userID,
		Products:        products,
		TotalPrice:      s.Totals.Total,
		ShippingAddress: s.Address,
	}
}
