package checkout

import (
	"testing"

	"github.com/wallmasters/storefront/internal/cart"
	"github.com/wallmasters/storefront/internal/models"
	"github.com/wallmasters/storefront/internal/pricing"

	"github.com/stretchr/testify/assert"
)

func TestTotalsShippingBoundary(t *testing.T) {
	rule := pricing.DefaultRule()
	cases := []struct {
		name     string
		items    []cart.LineItem
		shipping string
		total    string
	}{
		{
			name:     "below threshold pays shipping",
			items:    []cart.LineItem{{UnitPrice: models.MustMoney("1999"), Quantity: 1}},
			shipping: "70.00",
			total:    "2069.00",
		},
		{
			name:     "exactly threshold pays shipping",
			items:    []cart.LineItem{{UnitPrice: models.MustMoney("1000"), Quantity: 2}},
			shipping: "70.00",
			total:    "2070.00",
		},
		{
			name:     "just above threshold ships free",
			items:    []cart.LineItem{{UnitPrice: models.MustMoney("2000.01"), Quantity: 1}},
			shipping: "0.00",
			total:    "2000.01",
		},
		{
			name:     "empty cart",
			items:    nil,
			shipping: "70.00",
			total:    "70.00",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Totals(tc.items, rule)
			assert.Equal(t, tc.shipping, got.Shipping.String())
			assert.Equal(t, tc.total, got.Total.String())
			assert.Equal(t, "EGP", got.Currency)
		})
	}
}

func TestSnapshotIsFrozen(t *testing.T) {
	items := []cart.LineItem{{ProductID: "1", VariantKey: "30x40", UnitPrice: models.MustMoney("300"), Quantity: 1}}
	snap := NewSnapshot(items, validForm.shipping(), pricing.DefaultRule())
	items[0].Quantity = 9

	assert.Equal(t, 1, snap.Items[0].Quantity)
	assert.Equal(t, "370.00", snap.Totals.Total.String())
}
