package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidQuantity     = errors.New("quantity must be positive")
	ErrInvalidPrice        = errors.New("price must not be negative")
	ErrEmptyComment        = errors.New("comment body must not be empty")
	ErrShopExists          = errors.New("owner already has a shop")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrNoStockRecord       = errors.New("no stock record for flower")
	ErrMalformedPayload    = errors.New("malformed payment payload")
	ErrSignatureInvalid    = errors.New("payment signature verification failed")
	ErrGatewayUnconfigured = errors.New("payment gateway credentials are not configured")
	ErrGatewayUnavailable  = errors.New("payment gateway unavailable")
)

// InsufficientStockError carries the quantity actually available so callers
// can surface it to the buyer.
type InsufficientStockError struct {
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: %d available", e.Available)
}
