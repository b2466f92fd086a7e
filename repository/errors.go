package repository

import "errors"

var (
	ErrCartNotFound     = errors.New("cart not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrCategoryNotFound = errors.New("category not found")

	// ErrVersionConflict signals that a cart save lost an optimistic
	// concurrency race; callers re-read and retry.
	ErrVersionConflict = errors.New("cart was modified concurrently")
)
