package public

import (
	"github.com/wallmasters/storefront/internal/http/handlers/shared"
	"github.com/wallmasters/storefront/internal/http/response"
	"github.com/wallmasters/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// AddressRequest 新建地址请求
type AddressRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	MobileNo   string `json:"mobile_no"`
	HouseNo    string `json:"house_no"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	IsDefault  bool   `json:"is_default"`
}

// ListAddresses 地址列表
func (h *Handler) ListAddresses(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	list, err := h.AddressService.List(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"addresses": list})
}

// CreateAddress 新建地址，重复地址返回 409
func (h *Handler) CreateAddress(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	addr, err := h.AddressService.Create(userID, service.AddressInput{
		Name:       req.Name,
		Email:      req.Email,
		MobileNo:   req.MobileNo,
		HouseNo:    req.HouseNo,
		Street:     req.Street,
		City:       req.City,
		PostalCode: req.PostalCode,
		IsDefault:  req.IsDefault,
	})
	if err != nil {
		respondWithMappedError(c, err, addressErrorRules, "error.internal")
		return
	}
	response.Created(c, gin.H{"address": addr})
}

// DeleteAddress 删除地址
func (h *Handler) DeleteAddress(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	addressID, ok := shared.ParseUintParam(c, "address_id")
	if !ok {
		return
	}
	if err := h.AddressService.Delete(userID, addressID); err != nil {
		respondWithMappedError(c, err, addressErrorRules, "error.internal")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// SetDefaultAddress 设为默认地址
func (h *Handler) SetDefaultAddress(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	addressID, ok := shared.ParseUintParam(c, "address_id")
	if !ok {
		return
	}
	addr, err := h.AddressService.SetDefault(userID, addressID)
	if err != nil {
		respondWithMappedError(c, err, addressErrorRules, "error.internal")
		return
	}
	response.Success(c, gin.H{"address": addr})
}
