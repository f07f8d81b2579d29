package service

import (
	"errors"

	"github.com/wallmasters/storefront/internal/logger"
	"github.com/wallmasters/storefront/internal/models"
	"github.com/wallmasters/storefront/internal/queue"
)

// OrderNotifier 订单邮件投递：队列启用时异步入队，否则在后台协程直接发送
type OrderNotifier struct {
	queue *queue.Client
	email *EmailService
}

// NewOrderNotifier 创建订单通知器
func NewOrderNotifier(queueClient *queue.Client, email *EmailService) *OrderNotifier {
	return &OrderNotifier{queue: queueClient, email: email}
}

// OrderPlaced 新订单：顾客确认邮件 + 店铺通知邮件
func (n *OrderNotifier) OrderPlaced(order *models.Order, locale string) {
	if n == nil || order == nil {
		return
	}
	err := n.queue.EnqueueOrderPlaced(queue.OrderPlacedPayload{OrderID: order.ID, Locale: locale})
	if err == nil {
		return
	}
	if !errors.Is(err, queue.ErrDisabled) {
		logger.Warnw("order_placed_enqueue_failed", "order_no", order.OrderNo, "error", err)
	}
	snapshot := *order
	go func() {
		if err := n.SendOrderPlaced(&snapshot, locale); err != nil {
			logger.Warnw("order_placed_email_inline_failed", "order_no", snapshot.OrderNo, "error", err)
		}
	}()
}

// SendOrderPlaced 同步发送两封新订单邮件，任一失败都返回错误
func (n *OrderNotifier) SendOrderPlaced(order *models.Order, locale string) error {
	customerErr := n.email.SendOrderConfirmation(order, locale)
	storeErr := n.email.SendStoreNotification(order)
	if isEmailSkippable(customerErr) && isEmailSkippable(storeErr) {
		logger.Debugw("order_placed_email_skipped", "order_no", order.OrderNo, "reason", customerErr)
		return nil
	}
	return errors.Join(customerErr, storeErr)
}

// OrderStatusChanged 订单状态变更通知
func (n *OrderNotifier) OrderStatusChanged(order *models.Order) {
	if n == nil || order == nil {
		return
	}
	err := n.queue.EnqueueOrderStatus(queue.OrderStatusPayload{OrderID: order.ID, Status: order.OrderStatus})
	if err == nil {
		return
	}
	if !errors.Is(err, queue.ErrDisabled) {
		logger.Warnw("order_status_enqueue_failed", "order_no", order.OrderNo, "error", err)
	}
	snapshot := *order
	go func() {
		if err := n.SendOrderStatus(&snapshot); err != nil {
			logger.Warnw("order_status_email_inline_failed", "order_no", snapshot.OrderNo, "error", err)
		}
	}()
}

// SendOrderStatus 同步发送状态邮件
func (n *OrderNotifier) SendOrderStatus(order *models.Order) error {
	err := n.email.SendOrderStatus(order, "")
	if isEmailSkippable(err) {
		return nil
	}
	return err
}

func isEmailSkippable(err error) bool {
	return err == nil || errors.Is(err, ErrEmailServiceDisabled) || errors.Is(err, ErrEmailServiceNotConfigured)
}
