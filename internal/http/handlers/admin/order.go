package admin

import (
	"strings"

	"github.com/wallmasters/storefront/internal/http/handlers/shared"
	"github.com/wallmasters/storefront/internal/http/response"
	"github.com/wallmasters/storefront/internal/repository"

	"github.com/gin-gonic/gin"
)

// UpdateOrderStatusRequest 订单状态变更请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// GetAdminOrders 订单列表，支持 status / user_id / search 过滤
func (h *Handler) GetAdminOrders(c *gin.Context) {
	page, pageSize := shared.PageQuery(c)
	filter := repository.OrderListFilter{
		Page:        page,
		PageSize:    pageSize,
		OrderStatus: strings.TrimSpace(c.Query("status")),
		Search:      strings.TrimSpace(c.Query("search")),
	}
	if raw := strings.TrimSpace(c.Query("user_id")); raw != "" {
		userID, ok := shared.ParseUintQuery(c, "user_id")
		if !ok {
			return
		}
		filter.UserID = userID
	}

	orders, total, err := h.OrderService.ListAdmin(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}

// UpdateOrderStatus 推进订单状态
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := shared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	order, err := h.OrderService.UpdateStatus(id, strings.ToLower(strings.TrimSpace(req.Status)))
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules)
		return
	}
	shared.RequestLog(c).Infow("admin_order_status_updated",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"status", order.OrderStatus,
		"admin", c.GetString(shared.AdminNameKey),
	)
	response.Success(c, order)
}
