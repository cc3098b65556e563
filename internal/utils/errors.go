package utils

import "errors"

// Common application errors used across the inventory core and services.
var (
	ErrInvalidArgument      = errors.New("INVALID_ARGUMENT")
	ErrInvalidQuantity      = errors.New("INVALID_QUANTITY")
	ErrInsufficientStock    = errors.New("INSUFFICIENT_STOCK")
	ErrLimitExceeded        = errors.New("LIMIT_EXCEEDED")
	ErrNotFound             = errors.New("NOT_FOUND")
	ErrDuplicateReferenceID = errors.New("DUPLICATE_REFERENCE_ID")
	ErrInvalidCredentials   = errors.New("INVALID_CREDENTIALS")
	ErrInvalidToken         = errors.New("INVALID_TOKEN")
)
