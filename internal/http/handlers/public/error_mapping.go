package public

import (
	"github.com/wallmasters/storefront/internal/http/handlers/shared"
	"github.com/wallmasters/storefront/internal/http/response"
	"github.com/wallmasters/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

type mappedHandlerError = shared.MappedError

var authErrorRules = []mappedHandlerError{
	{Target: service.ErrNameRequired, Code: response.CodeBadRequest, Key: "error.name_required"},
	{Target: service.ErrInvalidEmail, Code: response.CodeBadRequest, Key: "error.invalid_email"},
	{Target: service.ErrWeakPassword, Code: response.CodeBadRequest, Key: "error.bad_request"},
	{Target: service.ErrEmailExists, Code: response.CodeConflict, Key: "error.email_exists"},
	{Target: service.ErrInvalidCredentials, Code: response.CodeUnauthorized, Key: "error.invalid_credentials"},
	{Target: service.ErrUserDisabled, Code: response.CodeForbidden, Key: "error.user_disabled"},
	{Target: service.ErrPasswordMismatch, Code: response.CodeBadRequest, Key: "error.password_wrong"},
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.not_found"},
}

var addressErrorRules = []mappedHandlerError{
	{Target: service.ErrAddressInvalid, Code: response.CodeBadRequest, Key: "error.address_invalid"},
	{Target: service.ErrInvalidEmail, Code: response.CodeBadRequest, Key: "error.invalid_email"},
	{Target: service.ErrAddressExists, Code: response.CodeConflict, Key: "error.address_exists"},
	{Target: service.ErrAddressNotFound, Code: response.CodeNotFound, Key: "error.address_not_found"},
}

var catalogErrorRules = []mappedHandlerError{
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
	{Target: service.ErrVariantNotFound, Code: response.CodeNotFound, Key: "error.variant_not_found"},
}

var orderErrorRules = []mappedHandlerError{
	{Target: service.ErrOrderEmpty, Code: response.CodeBadRequest, Key: "error.order_empty"},
	{Target: service.ErrOrderInvalid, Code: response.CodeBadRequest, Key: "error.order_invalid"},
	{Target: service.ErrAddressInvalid, Code: response.CodeBadRequest, Key: "error.address_invalid"},
	{Target: service.ErrInvalidEmail, Code: response.CodeBadRequest, Key: "error.invalid_email"},
	{Target: service.ErrOrderNotFound, Code: response.CodeNotFound, Key: "error.order_not_found"},
}

var savedItemErrorRules = []mappedHandlerError{
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
	{Target: service.ErrSavedItemExists, Code: response.CodeConflict, Key: "error.saved_item_exists"},
	{Target: service.ErrSavedItemNotFound, Code: response.CodeNotFound, Key: "error.saved_item_not_found"},
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackKey string) {
	shared.RespondMapped(c, err, rules, response.CodeInternal, fallbackKey)
}
