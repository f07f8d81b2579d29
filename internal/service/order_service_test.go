package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/wallmasters/storefront/internal/constants"
	"github.com/wallmasters/storefront/internal/models"
	"github.com/wallmasters/storefront/internal/repository"
)

func newTestOrderService(t *testing.T) (*OrderService, *repository.GormOrderRepository) {
	t.Helper()
	db := openServiceTestDB(t)
	repo := repository.NewOrderRepository(db)
	products := NewProductService(repository.NewProductRepository(db), time.Minute)
	return NewOrderService(repo, products, disabledNotifier(), testConfig().Checkout), repo
}

func sampleShipping() models.ShippingAddress {
	return models.ShippingAddress{
		Name:     "Mona",
		Email:    "mona@example.com",
		MobileNo: "01000000000",
		HouseNo:  "12",
		Street:   "Tahrir St",
		City:     "Cairo",
	}
}

func TestOrderServiceCreateRecomputesTotals(t *testing.T) {
	svc, repo := newTestOrderService(t)

	order, err := svc.Create(context.Background(), CreateOrderInput{
		UserID: 1,
		Items: []OrderItemInput{
			{ProductID: "p1", Name: "Canvas", Size: "50x70", Quantity: 2, Price: models.MustMoney("500")},
			{ProductID: "p2", Name: "Frame", Size: "30x40", Quantity: 1, Price: models.MustMoney("300")},
		},
		// 客户端总额错误不影响落库金额
		ClientTotal:     models.MustMoney("1"),
		ShippingAddress: sampleShipping(),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !order.Subtotal.Equal(models.MustMoney("1300")) || !order.ShippingFee.Equal(models.MustMoney("70")) {
		t.Fatalf("unexpected totals: subtotal=%s shipping=%s", order.Subtotal, order.ShippingFee)
	}
	if !order.TotalPrice.Equal(models.MustMoney("1370")) {
		t.Fatalf("unexpected total: %s", order.TotalPrice)
	}
	if !strings.HasPrefix(order.OrderNo, "WM-") {
		t.Fatalf("unexpected order no: %s", order.OrderNo)
	}
	if order.PaymentMethod != constants.PaymentMethodCashOnDelivery || order.OrderStatus != constants.OrderStatusPending {
		t.Fatalf("unexpected order state: %+v", order)
	}
	if order.ShippingAddress.Country != "Egypt" {
		t.Fatalf("country should default from config, got %q", order.ShippingAddress.Country)
	}

	stored, err := repo.GetByOrderNo(order.OrderNo)
	if err != nil || stored == nil {
		t.Fatalf("stored order missing: %v", err)
	}
	if len(stored.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(stored.Items))
	}
}

func TestOrderServiceCreateFreeShippingAboveThreshold(t *testing.T) {
	svc, _ := newTestOrderService(t)
	order, err := svc.Create(context.Background(), CreateOrderInput{
		UserID:          1,
		Items:           []OrderItemInput{{ProductID: "p1", Name: "Mural", Size: "L", Quantity: 1, Price: models.MustMoney("2000.01")}},
		ShippingAddress: sampleShipping(),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !order.ShippingFee.IsZero() {
		t.Fatalf("expected free shipping, got %s", order.ShippingFee)
	}
}

func TestOrderServiceCreateRejectsInvalidInput(t *testing.T) {
	svc, _ := newTestOrderService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateOrderInput{UserID: 1, ShippingAddress: sampleShipping()}); !errors.Is(err, ErrOrderEmpty) {
		t.Fatalf("expected ErrOrderEmpty, got %v", err)
	}
	badQty := []OrderItemInput{{ProductID: "p1", Name: "Canvas", Quantity: 0, Price: models.MustMoney("10")}}
	if _, err := svc.Create(ctx, CreateOrderInput{UserID: 1, Items: badQty, ShippingAddress: sampleShipping()}); !errors.Is(err, ErrOrderInvalid) {
		t.Fatalf("expected ErrOrderInvalid, got %v", err)
	}
	ship := sampleShipping()
	ship.Street = ""
	items := []OrderItemInput{{ProductID: "p1", Name: "Canvas", Quantity: 1, Price: models.MustMoney("10")}}
	if _, err := svc.Create(ctx, CreateOrderInput{UserID: 1, Items: items, ShippingAddress: ship}); !errors.Is(err, ErrAddressInvalid) {
		t.Fatalf("expected ErrAddressInvalid, got %v", err)
	}
}

func TestOrderServiceUpdateStatus(t *testing.T) {
	svc, _ := newTestOrderService(t)
	fixed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	order, err := svc.Create(context.Background(), CreateOrderInput{
		UserID:          4,
		Items:           []OrderItemInput{{ProductID: "p1", Name: "Canvas", Quantity: 1, Price: models.MustMoney("100")}},
		ShippingAddress: sampleShipping(),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !strings.Contains(order.OrderNo, "-260301-") {
		t.Fatalf("order no should carry the date: %s", order.OrderNo)
	}

	if _, err := svc.UpdateStatus(order.ID, constants.OrderStatusDelivered); !errors.Is(err, ErrInvalidOrderStatus) {
		t.Fatalf("pending -> delivered should be rejected, got %v", err)
	}
	for _, status := range []string{constants.OrderStatusProcessed, constants.OrderStatusShipped, constants.OrderStatusDelivered} {
		if _, err := svc.UpdateStatus(order.ID, status); err != nil {
			t.Fatalf("transition to %s failed: %v", status, err)
		}
	}
	delivered, err := svc.GetForUser(4, order.OrderNo)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if delivered.PaymentStatus != constants.PaymentStatusPaid {
		t.Fatalf("delivered COD order should be paid, got %s", delivered.PaymentStatus)
	}

	cancelled, err := svc.UpdateStatus(order.ID, constants.OrderStatusCancelled)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.PaymentStatus != constants.PaymentStatusRefunded || cancelled.CanceledAt == nil {
		t.Fatalf("unexpected cancelled order: %+v", cancelled)
	}

	if _, err := svc.GetForUser(5, order.OrderNo); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("other user must not see order, got %v", err)
	}
	if _, err := svc.UpdateStatus(99999, constants.OrderStatusProcessed); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderServiceListByUser(t *testing.T) {
	svc, _ := newTestOrderService(t)
	ctx := context.Background()
	for _, userID := range []uint{1, 1, 2} {
		_, err := svc.Create(ctx, CreateOrderInput{
			UserID:          userID,
			Items:           []OrderItemInput{{ProductID: "p1", Name: "Canvas", Quantity: 1, Price: models.MustMoney("100")}},
			ShippingAddress: sampleShipping(),
		})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}
	orders, total, err := svc.ListByUser(1, "", 1, 20)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 || len(orders) != 2 {
		t.Fatalf("expected 2 orders for user 1, got total=%d len=%d", total, len(orders))
	}
}
