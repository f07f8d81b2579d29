package service

import "errors"

var (
	// ErrNotFound 通用资源不存在
	ErrNotFound = errors.New("not found")
	// ErrForbidden 访问他人资源
	ErrForbidden = errors.New("forbidden")

	ErrInvalidEmail       = errors.New("invalid email")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserDisabled       = errors.New("user disabled")
	ErrWeakPassword       = errors.New("weak password")
	ErrPasswordMismatch   = errors.New("current password mismatch")
	ErrNameRequired       = errors.New("name required")

	ErrAddressExists   = errors.New("address already exists")
	ErrAddressNotFound = errors.New("address not found")
	ErrAddressInvalid  = errors.New("address incomplete")

	ErrProductNotFound   = errors.New("product not found")
	ErrVariantNotFound   = errors.New("variant not found")
	ErrProductInvalid    = errors.New("product invalid")
	ErrSavedItemExists   = errors.New("saved item exists")
	ErrSavedItemNotFound = errors.New("saved item not found")

	ErrOrderEmpty         = errors.New("order has no items")
	ErrOrderInvalid       = errors.New("order invalid")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidOrderStatus = errors.New("invalid order status transition")

	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")
)
