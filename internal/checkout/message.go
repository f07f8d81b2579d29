package checkout

import (
	"errors"

	"github.com/wallmasters/storefront/internal/cart"
	"github.com/wallmasters/storefront/internal/i18n"
	"github.com/wallmasters/storefront/internal/identity"
	"github.com/wallmasters/storefront/internal/storefront"
)

// UserMessage 把结算、登录同步与加购错误转换为面向用户的提示
func UserMessage(locale string, err error) string {
	if err == nil {
		return ""
	}
	var vErr *ValidationError
	switch {
	case errors.Is(err, ErrSubmitInProgress):
		return i18n.T(locale, "error.submit_in_progress")
	case errors.Is(err, ErrEmptyCart):
		return i18n.T(locale, "error.order_empty")
	case errors.Is(err, ErrSignInRequired):
		return i18n.T(locale, "error.sign_in_required")
	case errors.Is(err, identity.ErrChangeAborted):
		return i18n.T(locale, "error.cart_sync_failed")
	case errors.Is(err, cart.ErrInvalidProduct):
		return i18n.T(locale, "error.cart_item_invalid")
	case errors.As(err, &vErr):
		if len(vErr.Missing) == 0 && vErr.InvalidEmail {
			return i18n.T(locale, "error.invalid_email")
		}
		return i18n.T(locale, "error.address_invalid")
	}

	// 服务端返回的文案已按语言本地化，优先展示
	if apiErr, ok := storefront.AsAPIError(err); ok && apiErr.Message != "" && !errors.Is(err, storefront.ErrTransientNetwork) {
		return apiErr.Message
	}
	switch {
	case errors.Is(err, storefront.ErrValidation):
		return i18n.T(locale, "error.order_invalid")
	case errors.Is(err, storefront.ErrDuplicate):
		return i18n.T(locale, "error.address_exists")
	case errors.Is(err, storefront.ErrUnauthorized):
		return i18n.T(locale, "error.unauthorized")
	case errors.Is(err, storefront.ErrNotFound):
		return i18n.T(locale, "error.not_found")
	case errors.Is(err, storefront.ErrTransientNetwork):
		return i18n.T(locale, "error.network")
	default:
		return i18n.T(locale, "error.order_create_failed")
	}
}
