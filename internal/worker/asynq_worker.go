package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/wallmasters/storefront/internal/logger"
	"github.com/wallmasters/storefront/internal/provider"
	"github.com/wallmasters/storefront/internal/queue"
	"github.com/wallmasters/storefront/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderPlaced, c.handleOrderPlaced)
	mux.HandleFunc(queue.TaskOrderStatusUpdated, c.handleOrderStatusUpdated)
}

func (c *Consumer) handleOrderPlaced(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_placed_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderPlacedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_placed_unmarshal_failed", "error", err)
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_placed_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_placed_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_placed_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}
	if err := c.OrderNotifier.SendOrderPlaced(order, strings.TrimSpace(payload.Locale)); err != nil {
		logger.Warnw("worker_order_placed_send_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"error", err,
		)
		return retryable(err)
	}
	return nil
}

func (c *Consumer) handleOrderStatusUpdated(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_status_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderStatusPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_status_unmarshal_failed", "error", err)
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_status_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_status_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_status_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}
	// 队列积压时订单可能已继续流转，只发送最新状态
	if status := strings.TrimSpace(payload.Status); status != "" && status != order.OrderStatus {
		logger.Debugw("worker_order_status_skip_stale",
			"order_no", order.OrderNo,
			"payload_status", status,
			"current_status", order.OrderStatus,
		)
		return nil
	}
	if err := c.OrderNotifier.SendOrderStatus(order); err != nil {
		logger.Warnw("worker_order_status_send_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"status", order.OrderStatus,
			"error", err,
		)
		return retryable(err)
	}
	return nil
}

// retryable 收件人被拒属于永久失败，不再重试
func retryable(err error) error {
	if errors.Is(err, service.ErrEmailRecipientRejected) {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	return err
}
