package service

import "errors"

// Sentinel errors for the service layer. Handlers map these onto HTTP status
// codes and error codes; services wrap them with fmt.Errorf("...: %w", ...)
// to carry the caller-facing message.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrOutOfStock        = errors.New("out of stock")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrAccountDisabled   = errors.New("account disabled")

	// ErrStorage masks persistence failures. The technical detail is logged
	// at the point of failure and never reaches the caller.
	ErrStorage = errors.New("storage failure")
)
