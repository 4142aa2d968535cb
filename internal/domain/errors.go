package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrCorruptCart marks persisted cart text that does not decode into line items.
	ErrCorruptCart = errors.New("corrupt persisted cart")
	// ErrInvalidItem marks an add without a usable product id.
	ErrInvalidItem = errors.New("line item without product id")
	// ErrStorageUnavailable is returned when the cart could not be persisted.
	ErrStorageUnavailable = errors.New("cart storage unavailable")
	// ErrQuotaExceeded is returned by storage backends that refuse oversized values.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)
