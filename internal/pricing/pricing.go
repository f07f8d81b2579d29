// Package pricing 计算订单小计、运费与应付总额，客户端与服务端共用同一规则。
package pricing

import (
	"github.com/wallmasters/storefront/internal/config"
	"github.com/wallmasters/storefront/internal/models"

	"github.com/shopspring/decimal"
)

// Rule 运费规则：小计严格大于 FreeThreshold 时免运费，否则收取 FlatFee
type Rule struct {
	FreeThreshold models.Money
	FlatFee       models.Money
	Currency      string
}

// Line 参与计价的一行商品
type Line struct {
	UnitPrice models.Money
	Quantity  int
}

// Totals 计价结果
type Totals struct {
	Subtotal models.Money `json:"subtotal"`
	Shipping models.Money `json:"shipping"`
	Total    models.Money `json:"total"`
	Currency string       `json:"currency"`
}

// FreeShipping 是否免运费
func (t Totals) FreeShipping() bool {
	return t.Shipping.IsZero()
}

// DefaultRule 默认规则：满 2000 免运费，否则 70
func DefaultRule() Rule {
	return Rule{
		FreeThreshold: models.MustMoney("2000"),
		FlatFee:       models.MustMoney("70"),
		Currency:      "EGP",
	}
}

// RuleFromConfig 从结算配置构建规则。默认值由配置层（checkout.* 的 viper 默认）提供，
// 0 是合法配置：阈值 0 表示任何非空购物车都免运费，运费 0 表示不收运费；只有负数回退到默认值
func RuleFromConfig(cfg config.CheckoutConfig) Rule {
	rule := DefaultRule()
	if cfg.FreeShippingThreshold >= 0 {
		rule.FreeThreshold = models.NewMoneyFromFloat(cfg.FreeShippingThreshold)
	}
	if cfg.FlatShippingFee >= 0 {
		rule.FlatFee = models.NewMoneyFromFloat(cfg.FlatShippingFee)
	}
	if cfg.Currency != "" {
		rule.Currency = cfg.Currency
	}
	return rule
}

// Compute 计算小计、运费与总额，数量非正的行不计入
func Compute(lines []Line, rule Rule) Totals {
	subtotal := decimal.Zero
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		subtotal = subtotal.Add(line.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	shipping := rule.FlatFee.Decimal
	if subtotal.GreaterThan(rule.FreeThreshold.Decimal) {
		shipping = decimal.Zero
	}

	return Totals{
		Subtotal: models.NewMoneyFromDecimal(subtotal),
		Shipping: models.NewMoneyFromDecimal(shipping),
		Total:    models.NewMoneyFromDecimal(subtotal.Add(shipping)),
		Currency: rule.Currency,
	}
}
