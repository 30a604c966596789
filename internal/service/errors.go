package service

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrTableNotFound      = errors.New("table does not exist for this restaurant")
	ErrUnknownPlan        = errors.New("unknown subscription plan")
	ErrInvalidTransition  = errors.New("order status transition not allowed")
	ErrEntitlementBlocked = errors.New("restaurant is blocked")
	ErrInvalidSession     = errors.New("invalid or expired session")
)
