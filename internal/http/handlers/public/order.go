package public

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/wallmasters/storefront/internal/http/handlers/shared"
	"github.com/wallmasters/storefront/internal/http/response"
	"github.com/wallmasters/storefront/internal/models"
	"github.com/wallmasters/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// flexibleID 兼容数字与字符串两种商品ID写法
type flexibleID string

func (f *flexibleID) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexibleID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexibleID(n.String())
	return nil
}

// OrderItemRequest 下单商品行
type OrderItemRequest struct {
	ProductID flexibleID   `json:"product_id"`
	Name      string       `json:"name"`
	Size      string       `json:"size"`
	Quantity  int          `json:"quantity"`
	Price     models.Money `json:"price"`
	Image     string       `json:"image"`
}

// CreateOrderRequest 下单请求
type CreateOrderRequest struct {
	UserID          flexibleID             `json:"user_id"`
	Products        []OrderItemRequest     `json:"products"`
	TotalPrice      models.Money           `json:"total_price"`
	ShippingAddress models.ShippingAddress `json:"shipping_address"`
}

var orderCreateErrorRules = append([]mappedHandlerError{
	{Target: service.ErrForbidden, Code: response.CodeForbidden, Key: "error.forbidden"},
}, orderErrorRules...)

// CreateOrder 提交货到付款订单
func (h *Handler) CreateOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	// 请求体中的 user_id 可省略，填写时必须与登录身份一致
	if req.UserID != "" && string(req.UserID) != uintString(userID) {
		respondWithMappedError(c, service.ErrForbidden, orderCreateErrorRules, "error.order_create_failed")
		return
	}

	items := make([]service.OrderItemInput, 0, len(req.Products))
	for _, p := range req.Products {
		items = append(items, service.OrderItemInput{
			ProductID: string(p.ProductID),
			Name:      p.Name,
			Size:      p.Size,
			Quantity:  p.Quantity,
			Price:     p.Price,
			Image:     p.Image,
		})
	}
	order, err := h.OrderService.Create(c.Request.Context(), service.CreateOrderInput{
		UserID:          userID,
		Items:           items,
		ClientTotal:     req.TotalPrice,
		ShippingAddress: req.ShippingAddress,
		ClientIP:        c.ClientIP(),
		Locale:          shared.Locale(c),
	})
	if err != nil {
		if !errors.Is(err, service.ErrOrderEmpty) && !errors.Is(err, service.ErrOrderInvalid) {
			requestLog(c).Warnw("order_create_failed", "user_id", userID, "error", err)
		}
		respondWithMappedError(c, err, orderCreateErrorRules, "error.order_create_failed")
		return
	}
	response.Created(c, gin.H{"order": order})
}

// ListMyOrders 当前顾客的订单列表
func (h *Handler) ListMyOrders(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := shared.PageQuery(c)
	orders, total, err := h.OrderService.ListByUser(userID, strings.TrimSpace(c.Query("status")), page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}

// GetMyOrder 按订单号查询当前顾客的订单
func (h *Handler) GetMyOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	order, err := h.OrderService.GetForUser(userID, strings.TrimSpace(c.Param("order_no")))
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, "error.internal")
		return
	}
	response.Success(c, gin.H{"order": order})
}

func uintString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
