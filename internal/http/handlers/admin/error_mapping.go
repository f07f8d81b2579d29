package admin

import (
	"github.com/wallmasters/storefront/internal/authz"
	"github.com/wallmasters/storefront/internal/http/handlers/shared"
	"github.com/wallmasters/storefront/internal/http/response"
	"github.com/wallmasters/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

var productErrorRules = []shared.MappedError{
	{Target: service.ErrProductInvalid, Code: response.CodeBadRequest, Key: "error.product_invalid"},
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
}

var orderErrorRules = []shared.MappedError{
	{Target: service.ErrInvalidOrderStatus, Code: response.CodeBadRequest, Key: "error.order_status_invalid"},
	{Target: service.ErrOrderNotFound, Code: response.CodeNotFound, Key: "error.order_not_found"},
}

var authzErrorRules = []shared.MappedError{
	{Target: authz.ErrInvalidRole, Code: response.CodeBadRequest, Key: "error.bad_request"},
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.not_found"},
	{Target: authz.ErrUnavailable, Code: response.CodeInternal, Key: "error.internal"},
}

func respondWithMappedError(c *gin.Context, err error, rules []shared.MappedError) {
	shared.RespondMapped(c, err, rules, response.CodeInternal, "error.internal")
}
