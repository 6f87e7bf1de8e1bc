package common

import "errors"

// Business logic errors
var (
	// General errors
	ErrNotFound  = errors.New("resource not found")
	ErrDuplicate = errors.New("resource already exists")

	// Catalogue errors
	ErrCategoryNotFound = errors.New("category not found")
	ErrPlatformNotFound = errors.New("platform not found")
	ErrScriptNotFound   = errors.New("script not found")
	ErrNGWordNotFound   = errors.New("ng word not found")

	// Generation errors
	ErrDailyLimitExceeded   = errors.New("daily generation limit exceeded")
	ErrGeneratorUnavailable = errors.New("script generator not configured")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
)
