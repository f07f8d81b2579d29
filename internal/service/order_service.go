package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/wallmasters/storefront/internal/config"
	"github.com/wallmasters/storefront/internal/constants"
	"github.com/wallmasters/storefront/internal/logger"
	"github.com/wallmasters/storefront/internal/models"
	"github.com/wallmasters/storefront/internal/pricing"
	"github.com/wallmasters/storefront/internal/repository"
	"github.com/wallmasters/storefront/internal/validation"

	"github.com/google/uuid"
)

// OrderService 订单服务
type OrderService struct {
	repo     repository.OrderRepository
	products *ProductService
	notifier *OrderNotifier
	checkout config.CheckoutConfig
	rule     pricing.Rule
	now      func() time.Time
}

// NewOrderService 创建订单服务
func NewOrderService(repo repository.OrderRepository, products *ProductService, notifier *OrderNotifier, checkout config.CheckoutConfig) *OrderService {
	return &OrderService{
		repo:     repo,
		products: products,
		notifier: notifier,
		checkout: checkout,
		rule:     pricing.RuleFromConfig(checkout),
		now:      time.Now,
	}
}

// OrderItemInput 下单商品行（价格为加购时快照）
type OrderItemInput struct {
	ProductID string
	Name      string
	Size      string
	Quantity  int
	Price     models.Money
	Image     string
}

// CreateOrderInput 下单输入
type CreateOrderInput struct {
	UserID          uint
	Items           []OrderItemInput
	ClientTotal     models.Money
	ShippingAddress models.ShippingAddress
	ClientIP        string
	Locale          string
}

// Create 创建货到付款订单，金额以服务端重新计算为准
func (s *OrderService) Create(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	if input.UserID == 0 {
		return nil, ErrOrderInvalid
	}
	items, lines, err := s.buildItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}
	ship, err := s.normalizeShipping(input.ShippingAddress)
	if err != nil {
		return nil, err
	}

	totals := pricing.Compute(lines, s.rule)
	if !input.ClientTotal.IsZero() && !input.ClientTotal.Equal(totals.Total) {
		logger.Warnw("order_total_mismatch",
			"user_id", input.UserID,
			"client_total", input.ClientTotal.String(),
			"server_total", totals.Total.String(),
		)
	}

	order := &models.Order{
		OrderNo:         s.newOrderNo(),
		UserID:          input.UserID,
		OrderStatus:     constants.OrderStatusPending,
		PaymentStatus:   constants.PaymentStatusUnpaid,
		PaymentMethod:   constants.PaymentMethodCashOnDelivery,
		Currency:        totals.Currency,
		Subtotal:        totals.Subtotal,
		ShippingFee:     totals.Shipping,
		TotalPrice:      totals.Total,
		ClientTotal:     input.ClientTotal,
		ClientIP:        strings.TrimSpace(input.ClientIP),
		ShippingAddress: ship,
		Items:           items,
	}
	if err := s.repo.Create(order); err != nil {
		return nil, err
	}
	logger.Infow("order_created",
		"order_no", order.OrderNo,
		"user_id", order.UserID,
		"items", len(order.Items),
		"total", order.TotalPrice.String(),
	)
	s.notifier.OrderPlaced(order, input.Locale)
	return order, nil
}

// ListByUser 用户订单列表
func (s *OrderService) ListByUser(userID uint, status string, page, pageSize int) ([]models.Order, int64, error) {
	return s.repo.ListByUser(repository.OrderListFilter{
		Page:        page,
		PageSize:    pageSize,
		UserID:      userID,
		OrderStatus: strings.TrimSpace(status),
	})
}

// GetForUser 获取用户自己的订单
func (s *OrderService) GetForUser(userID uint, orderNo string) (*models.Order, error) {
	order, err := s.repo.GetByOrderNo(strings.TrimSpace(orderNo))
	if err != nil {
		return nil, err
	}
	if order == nil || order.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListAdmin 后台订单列表
func (s *OrderService) ListAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	filter.OrderStatus = strings.TrimSpace(filter.OrderStatus)
	return s.repo.ListAdmin(filter)
}

// UpdateStatus 后台更新订单状态，按状态机校验并通知顾客
func (s *OrderService) UpdateStatus(id uint, target string) (*models.Order, error) {
	order, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	target = strings.ToLower(strings.TrimSpace(target))
	if !canTransition(order.OrderStatus, target) {
		return nil, ErrInvalidOrderStatus
	}

	updates := map[string]interface{}{"order_status": target}
	payment := paymentStatusAfter(order.PaymentStatus, target)
	if payment != order.PaymentStatus {
		updates["payment_status"] = payment
	}
	now := s.now()
	if target == constants.OrderStatusCancelled {
		updates["canceled_at"] = now
	}
	if err := s.repo.UpdateStatus(order.ID, updates); err != nil {
		return nil, err
	}

	previous := order.OrderStatus
	order.OrderStatus = target
	order.PaymentStatus = payment
	if target == constants.OrderStatusCancelled {
		order.CanceledAt = &now
	}
	logger.Infow("order_status_updated", "order_no", order.OrderNo, "from", previous, "to", target)
	s.notifier.OrderStatusChanged(order)
	return order, nil
}

func (s *OrderService) buildItems(ctx context.Context, inputs []OrderItemInput) ([]models.OrderItem, []pricing.Line, error) {
	if len(inputs) == 0 {
		return nil, nil, ErrOrderEmpty
	}
	items := make([]models.OrderItem, 0, len(inputs))
	lines := make([]pricing.Line, 0, len(inputs))
	for _, in := range inputs {
		productID := strings.TrimSpace(in.ProductID)
		name := strings.TrimSpace(in.Name)
		if productID == "" || name == "" || in.Quantity <= 0 || in.Price.IsNegative() {
			return nil, nil, ErrOrderInvalid
		}
		s.checkCatalogPrice(ctx, productID, strings.TrimSpace(in.Size), in.Price)
		items = append(items, models.OrderItem{
			ProductID: productID,
			Name:      name,
			Size:      strings.TrimSpace(in.Size),
			Quantity:  in.Quantity,
			Price:     in.Price,
			Image:     strings.TrimSpace(in.Image),
		})
		lines = append(lines, pricing.Line{UnitPrice: in.Price, Quantity: in.Quantity})
	}
	return items, lines, nil
}

// checkCatalogPrice 快照价与当前目录价不一致时仅记录日志，订单仍按快照价结算
func (s *OrderService) checkCatalogPrice(ctx context.Context, productID, size string, snapshot models.Money) {
	if s.products == nil {
		return
	}
	id, err := strconv.ParseUint(productID, 10, 64)
	if err != nil {
		return
	}
	_, variant, err := s.products.FindVariant(ctx, uint(id), size)
	if err != nil || variant == nil {
		return
	}
	if !variant.Price.Equal(snapshot) {
		logger.Infow("order_item_price_drift",
			"product_id", productID,
			"size", size,
			"snapshot", snapshot.String(),
			"catalog", variant.Price.String(),
		)
	}
}

func (s *OrderService) normalizeShipping(in models.ShippingAddress) (models.ShippingAddress, error) {
	ship := models.ShippingAddress{
		Name:       strings.TrimSpace(in.Name),
		Email:      strings.ToLower(strings.TrimSpace(in.Email)),
		MobileNo:   strings.TrimSpace(in.MobileNo),
		HouseNo:    strings.TrimSpace(in.HouseNo),
		Street:     strings.TrimSpace(in.Street),
		City:       strings.TrimSpace(in.City),
		PostalCode: strings.TrimSpace(in.PostalCode),
		Country:    strings.TrimSpace(in.Country),
	}
	if ship.Country == "" {
		ship.Country = s.checkout.Country
	}
	missing := validation.MissingAddressFields(validation.AddressFields{
		Name:     ship.Name,
		Email:    ship.Email,
		MobileNo: ship.MobileNo,
		HouseNo:  ship.HouseNo,
		Street:   ship.Street,
		City:     ship.City,
	})
	if len(missing) > 0 {
		return ship, ErrAddressInvalid
	}
	if !validation.IsEmail(ship.Email) {
		return ship, ErrInvalidEmail
	}
	return ship, nil
}

func (s *OrderService) newOrderNo() string {
	prefix := strings.TrimSpace(s.checkout.OrderNoPrefix)
	if prefix == "" {
		prefix = "WM"
	}
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return prefix + "-" + s.now().Format("060102") + "-" + id[:10]
}
