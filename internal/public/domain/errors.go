package domain

import "errors"

var (
	// ErrInvalidArgument marks a caller bug: a value that breaks the input contract.
	// Legitimately empty results (reversed price range, unknown cart item) are never reported with it.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound is returned when a listing or provider does not exist in the feed.
	ErrNotFound = errors.New("not found")
	// ErrEmptyCart is returned when checkout is attempted without lines.
	ErrEmptyCart = errors.New("cart is empty")
)
