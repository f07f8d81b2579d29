package worker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/wallmasters/storefront/internal/config"
	"github.com/wallmasters/storefront/internal/models"
	"github.com/wallmasters/storefront/internal/provider"
	"github.com/wallmasters/storefront/internal/queue"
	"github.com/wallmasters/storefront/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

func newTestConsumer(t *testing.T) *Consumer {
	t.Helper()
	dsn := fmt.Sprintf("file:worker_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	c, err := provider.NewContainerWithDB(&config.Config{}, db)
	if err != nil {
		t.Fatalf("init container failed: %v", err)
	}
	return NewConsumer(c)
}

func seedOrder(t *testing.T, c *Consumer, status string) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNo:       "WM-260301-ABCDEF0123",
		UserID:        1,
		OrderStatus:   status,
		PaymentStatus: "unpaid",
		PaymentMethod: "cash_on_delivery",
		Currency:      "EGP",
		Subtotal:      models.MustMoney("650"),
		ShippingFee:   models.MustMoney("70"),
		TotalPrice:    models.MustMoney("720"),
		Items: []models.OrderItem{
			{ProductID: "1", Name: "Desert Dunes", Size: "50x70", Quantity: 1, Price: models.MustMoney("650")},
		},
	}
	if err := c.OrderRepo.Create(order); err != nil {
		t.Fatalf("seed order failed: %v", err)
	}
	return order
}

func TestHandleOrderPlacedSkipsWhenEmailDisabled(t *testing.T) {
	c := newTestConsumer(t)
	order := seedOrder(t, c, "pending")

	task, err := queue.NewOrderPlacedTask(queue.OrderPlacedPayload{OrderID: order.ID})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := c.handleOrderPlaced(context.Background(), task); err != nil {
		t.Fatalf("disabled email should not fail the task: %v", err)
	}
}

func TestHandleOrderPlacedMissingOrder(t *testing.T) {
	c := newTestConsumer(t)
	task, err := queue.NewOrderPlacedTask(queue.OrderPlacedPayload{OrderID: 404})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := c.handleOrderPlaced(context.Background(), task); err != nil {
		t.Fatalf("missing order should be dropped, got %v", err)
	}
}

func TestHandleMalformedPayloadSkipsRetry(t *testing.T) {
	c := newTestConsumer(t)
	task := asynq.NewTask(queue.TaskOrderStatusUpdated, []byte("{not json"))
	err := c.handleOrderStatusUpdated(context.Background(), task)
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("want SkipRetry got %v", err)
	}
}

func TestHandleOrderStatusSkipsStalePayload(t *testing.T) {
	c := newTestConsumer(t)
	order := seedOrder(t, c, "shipped")
	task, err := queue.NewOrderStatusTask(queue.OrderStatusPayload{OrderID: order.ID, Status: "processed"})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := c.handleOrderStatusUpdated(context.Background(), task); err != nil {
		t.Fatalf("stale status should be skipped, got %v", err)
	}
}

func TestRetryable(t *testing.T) {
	if err := retryable(service.ErrEmailRecipientRejected); !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("rejected recipient should skip retry, got %v", err)
	}
	transient := errors.New("dial tcp: timeout")
	if err := retryable(transient); errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("transient error should be retried")
	}
}

func TestNewServiceRequiresEnabledQueue(t *testing.T) {
	if _, err := NewService(&config.QueueConfig{Enabled: false}, &Consumer{}); !errors.Is(err, ErrQueueDisabled) {
		t.Fatalf("want ErrQueueDisabled got %v", err)
	}
}
