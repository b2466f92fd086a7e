package services

import (
	"errors"

	"go-shop/money"
	"go-shop/repository"
)

// Business-rule errors surfaced to callers. Not-found conditions from the
// storage layer keep their repository identity so errors.Is works across
// layers.
var (
	ErrInvalidQuantity = money.ErrInvalidQuantity
	ErrProductNotFound = repository.ErrProductNotFound
	ErrCartNotFound    = repository.ErrCartNotFound
	ErrProductInactive = errors.New("product is not available")
	ErrItemNotFound    = errors.New("product not found in cart")
	ErrEmptyCart       = errors.New("cart is empty")
)
