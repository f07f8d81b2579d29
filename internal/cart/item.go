// Package cart 管理设备端购物车：按身份持久化、数量合并、登录迁移。
package cart

import (
	"errors"
	"strings"

	"github.com/wallmasters/storefront/internal/constants"
	"github.com/wallmasters/storefront/internal/models"
)

// LineItem 购物车行，(ProductID, VariantKey) 在同一购物车内唯一
type LineItem struct {
	ProductID   string       `json:"product_id"`
	VariantKey  string       `json:"size"`
	UnitPrice   models.Money `json:"price"`
	Quantity    int          `json:"quantity"`
	ImageRef    string       `json:"image"`
	DisplayName string       `json:"name"`
}

// Product 加购时的商品展示信息
type Product struct {
	ID    string
	Name  string
	Image string
}

// Variant 加购时选中的尺寸与价格
type Variant struct {
	Key   string
	Price models.Money
}

// ErrInvalidProduct 加购的商品缺少 ID 或名称，或价格为负
var ErrInvalidProduct = errors.New("cart: invalid product")

// normalize 去掉首尾空白并校验，下单接口同样拒绝这些行
func (p Product) normalize(v Variant) (Product, Variant, error) {
	p.ID = strings.TrimSpace(p.ID)
	p.Name = strings.TrimSpace(p.Name)
	p.Image = strings.TrimSpace(p.Image)
	v.Key = strings.TrimSpace(v.Key)
	if p.ID == "" || p.Name == "" || v.Price.IsNegative() {
		return p, v, ErrInvalidProduct
	}
	return p, v, nil
}

func (it LineItem) matches(productID, variantKey string) bool {
	return it.ProductID == productID && it.VariantKey == variantKey
}

// Subtotal 单价乘数量
func (it LineItem) Subtotal() models.Money {
	return it.UnitPrice.Times(it.Quantity)
}

// StorageKey 身份对应的存储键，空身份表示游客
func StorageKey(identityKey string) string {
	identityKey = strings.TrimSpace(identityKey)
	if identityKey == "" {
		return constants.GuestCartKey
	}
	return constants.CartKeyPrefix + identityKey
}

// sanitize 丢弃数量非正的行，并把重复的 (商品, 尺寸) 合并到首次出现的位置
func sanitize(items []LineItem) []LineItem {
	out := make([]LineItem, 0, len(items))
	for _, it := range items {
		if it.Quantity <= 0 || strings.TrimSpace(it.ProductID) == "" {
			continue
		}
		if idx := indexOf(out, it.ProductID, it.VariantKey); idx >= 0 {
			out[idx].Quantity += it.Quantity
			continue
		}
		out = append(out, it)
	}
	return out
}

func indexOf(items []LineItem, productID, variantKey string) int {
	for i := range items {
		if items[i].matches(productID, variantKey) {
			return i
		}
	}
	return -1
}
