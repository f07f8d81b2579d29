package queue

import (
	"encoding/json"

	"github.com/wallmasters/storefront/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderPlaced 新订单邮件任务（顾客确认 + 店铺通知）
	TaskOrderPlaced = constants.TaskOrderPlaced
	// TaskOrderStatusUpdated 订单状态变更邮件任务
	TaskOrderStatusUpdated = constants.TaskOrderUpdated
)

// OrderPlacedPayload 新订单任务载荷
type OrderPlacedPayload struct {
	OrderID uint   `json:"order_id"`
	Locale  string `json:"locale,omitempty"`
}

// OrderStatusPayload 订单状态变更任务载荷
type OrderStatusPayload struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

// NewOrderPlacedTask 创建新订单任务
func NewOrderPlacedTask(payload OrderPlacedPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderPlaced, body, asynq.MaxRetry(5)), nil
}

// NewOrderStatusTask 创建订单状态邮件任务
func NewOrderStatusTask(payload OrderStatusPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusUpdated, body, asynq.MaxRetry(3)), nil
}
