package public

import (
	"errors"

	"github.com/wallmasters/storefront/internal/http/handlers/shared"
	"github.com/wallmasters/storefront/internal/http/response"
	"github.com/wallmasters/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// SaveForLaterRequest 稍后购买请求
type SaveForLaterRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// ListSavedItems 稍后购买列表
func (h *Handler) ListSavedItems(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	items, err := h.SavedItemService.List(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"items": items})
}

// SaveForLater 加入稍后购买，已存在时返回 409 与已有记录
func (h *Handler) SaveForLater(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req SaveForLaterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	item, err := h.SavedItemService.Save(userID, req.ProductID)
	if err != nil {
		if item != nil && isSavedItemExists(err) {
			msg := shared.Translate(c, "error.saved_item_exists")
			response.ErrorWithData(c, response.CodeConflict, msg, gin.H{"item": item})
			return
		}
		respondWithMappedError(c, err, savedItemErrorRules, "error.internal")
		return
	}
	response.Created(c, gin.H{"item": item})
}

// RemoveSavedItem 移出稍后购买
func (h *Handler) RemoveSavedItem(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := shared.ParseUintParam(c, "product_id")
	if !ok {
		return
	}
	if err := h.SavedItemService.Remove(userID, productID); err != nil {
		respondWithMappedError(c, err, savedItemErrorRules, "error.internal")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func isSavedItemExists(err error) bool {
	return errors.Is(err, service.ErrSavedItemExists)
}
