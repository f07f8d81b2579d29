package admin

import (
	"strings"

	"github.com/wallmasters/storefront/internal/http/handlers/shared"
	"github.com/wallmasters/storefront/internal/http/response"
	"github.com/wallmasters/storefront/internal/models"
	"github.com/wallmasters/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// VariantRequest 尺寸规格
type VariantRequest struct {
	Size      string       `json:"size"`
	Price     models.Money `json:"price"`
	IsActive  *bool        `json:"is_active"`
	SortOrder int          `json:"sort_order"`
}

// ProductRequest 创建/更新商品请求
type ProductRequest struct {
	Slug        string           `json:"slug"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Images      []string         `json:"images"`
	IsActive    *bool            `json:"is_active"`
	SortOrder   int              `json:"sort_order"`
	Variants    []VariantRequest `json:"variants"`
}

func (r ProductRequest) toInput() service.ProductInput {
	variants := make([]service.VariantInput, 0, len(r.Variants))
	for _, v := range r.Variants {
		variants = append(variants, service.VariantInput{
			Size:      v.Size,
			Price:     v.Price,
			IsActive:  v.IsActive,
			SortOrder: v.SortOrder,
		})
	}
	return service.ProductInput{
		Slug:        r.Slug,
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Images:      r.Images,
		IsActive:    r.IsActive,
		SortOrder:   r.SortOrder,
		Variants:    variants,
	}
}

// GetAdminProducts 获取商品列表 (Admin)，包含下架商品
func (h *Handler) GetAdminProducts(c *gin.Context) {
	page, pageSize := shared.PageQuery(c)
	products, total, err := h.ProductService.ListAdmin(strings.TrimSpace(c.Query("search")), page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.ProductService.Create(req.toInput())
	if err != nil {
		respondWithMappedError(c, err, productErrorRules)
		return
	}
	response.Created(c, product)
}

// UpdateProduct 更新商品，同时失效商品缓存
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := shared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.ProductService.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, productErrorRules)
		return
	}
	response.Success(c, product)
}
