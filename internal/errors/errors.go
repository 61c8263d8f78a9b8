// Package errors provides custom error types for the stockbook API.
// All service-layer errors use AppError so that responses stay consistent
// and never leak storage-layer details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid username or password", StatusCode: http.StatusUnauthorized}
	ErrUsernameTaken      = &AppError{Code: "USERNAME_TAKEN", Message: "A user with this username already exists", StatusCode: http.StatusConflict}
	ErrUserNotFound       = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
)

// Input validation errors. These are caller problems, recoverable by
// correcting the request; they are never logged as system failures.
var (
	ErrInvalidInput    = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrInvalidDate     = &AppError{Code: "INVALID_DATE", Message: "Date must be a valid calendar date in YYYY-MM-DD form", StatusCode: http.StatusBadRequest}
	ErrInvalidAmount   = &AppError{Code: "INVALID_AMOUNT", Message: "Amount must be greater than zero", StatusCode: http.StatusBadRequest}
	ErrInvalidName     = &AppError{Code: "INVALID_NAME", Message: "Name must not be empty", StatusCode: http.StatusBadRequest}
	ErrInvalidPrice    = &AppError{Code: "INVALID_PRICE", Message: "Price must be greater than zero", StatusCode: http.StatusBadRequest}
	ErrInvalidStock    = &AppError{Code: "INVALID_STOCK", Message: "Stock must be zero or greater", StatusCode: http.StatusBadRequest}
	ErrInvalidQuantity = &AppError{Code: "INVALID_QUANTITY", Message: "Quantity must be at least one", StatusCode: http.StatusBadRequest}
)

// Ledger errors.
var (
	ErrExpenseNotFound = &AppError{Code: "EXPENSE_NOT_FOUND", Message: "Expense not found", StatusCode: http.StatusNotFound}
)

// Inventory errors.
var (
	ErrProductNotFound   = &AppError{Code: "PRODUCT_NOT_FOUND", Message: "Product not found", StatusCode: http.StatusNotFound}
	ErrInsufficientStock = &AppError{Code: "INSUFFICIENT_STOCK", Message: "Not enough stock for this purchase", StatusCode: http.StatusBadRequest}
)

// Infrastructure errors.
var (
	ErrStorageUnavailable = &AppError{Code: "STORAGE_UNAVAILABLE", Message: "Storage is temporarily unavailable, please retry", StatusCode: http.StatusServiceUnavailable}
	ErrInternalServer     = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)
