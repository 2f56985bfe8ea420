package service

import "errors"

// 业务层哨兵错误，供 handler 统一映射为响应码
var (
	ErrNotFound                  = errors.New("resource not found")
	ErrInvalidInput              = errors.New("invalid input")
	ErrPhoneExists               = errors.New("phone already registered")
	ErrInvalidCredentials        = errors.New("invalid credentials")
	ErrUserDisabled              = errors.New("user disabled")
	ErrPasswordMismatch          = errors.New("passwords do not match")
	ErrWeakPassword              = errors.New("password does not meet policy")
	ErrCategoryNameExists        = errors.New("category name exists")
	ErrCategoryInUse             = errors.New("category has stores")
	ErrStoreNameExists           = errors.New("store name exists")
	ErrStoreInUse                = errors.New("store has products")
	ErrStoreCategoryExists       = errors.New("store category name exists in store")
	ErrSlugExists                = errors.New("slug exists")
	ErrProductNotAvailable       = errors.New("product size not available")
	ErrProductInOrders           = errors.New("product referenced by order items")
	ErrSizeInOrders              = errors.New("size referenced by order items")
	ErrDiscountAbovePrice        = errors.New("discount price above base price")
	ErrInvalidQuantity           = errors.New("quantity must be positive")
	ErrCartNotFound              = errors.New("cart not found")
	ErrCartEmpty                 = errors.New("cart is empty")
	ErrCartItemNotFound          = errors.New("cart item not found")
	ErrOrderNotFound             = errors.New("order not found")
	ErrOrderNotPending           = errors.New("order is not pending")
	ErrOrderStatusInvalid        = errors.New("unknown order status")
	ErrOrderStatusTransition     = errors.New("illegal order status transition")
	ErrOrderItemNotFound         = errors.New("order item not found")
	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrInvalidEmail              = errors.New("invalid email address")
	ErrQueueUnavailable          = errors.New("queue unavailable")
)
