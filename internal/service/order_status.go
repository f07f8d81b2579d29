package service

import (
	"strings"

	"github.com/wallmasters/storefront/internal/constants"
)

// 订单状态流转表
var orderTransitions = map[string][]string{
	constants.OrderStatusPending:   {constants.OrderStatusProcessed, constants.OrderStatusCancelled},
	constants.OrderStatusProcessed: {constants.OrderStatusShipped, constants.OrderStatusCancelled},
	constants.OrderStatusShipped:   {constants.OrderStatusDelivered},
	// 送达后退货
	constants.OrderStatusDelivered: {constants.OrderStatusCancelled},
}

func canTransition(from, to string) bool {
	from = strings.ToLower(strings.TrimSpace(from))
	to = strings.ToLower(strings.TrimSpace(to))
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// paymentStatusAfter 货到付款：送达即视为已收款，已收款订单取消视为退款
func paymentStatusAfter(current, orderStatus string) string {
	switch orderStatus {
	case constants.OrderStatusDelivered:
		return constants.PaymentStatusPaid
	case constants.OrderStatusCancelled:
		if current == constants.PaymentStatusPaid {
			return constants.PaymentStatusRefunded
		}
	}
	return current
}
