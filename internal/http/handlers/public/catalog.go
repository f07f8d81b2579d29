package public

import (
	"strings"

	"github.com/wallmasters/storefront/internal/http/handlers/shared"
	"github.com/wallmasters/storefront/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetProducts 上架商品列表，支持 category 与 search 过滤
func (h *Handler) GetProducts(c *gin.Context) {
	page, pageSize := shared.PageQuery(c)
	products, total, err := h.ProductService.ListPublic(c.Query("category"), c.Query("search"), page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// GetProduct 商品详情，仅返回可售尺寸
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := shared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	product, err := h.ProductService.GetPublic(c.Request.Context(), id)
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, "error.internal")
		return
	}
	if size := strings.TrimSpace(c.Query("size")); size != "" {
		_, variant, err := h.ProductService.FindVariant(c.Request.Context(), id, size)
		if err != nil {
			respondWithMappedError(c, err, catalogErrorRules, "error.internal")
			return
		}
		response.Success(c, gin.H{"product": product, "variant": variant})
		return
	}
	response.Success(c, gin.H{"product": product})
}
