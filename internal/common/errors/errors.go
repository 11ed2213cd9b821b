// Package errors provides standardized error handling for the assistant service.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeRequestValidationFailed ErrorCode = "REQUEST_VALIDATION_FAILED"
	ErrCodeRateLimitExceeded       ErrorCode = "RATE_LIMIT_EXCEEDED"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeCatalogLookupFailed      ErrorCode = "CATALOG_LOOKUP_FAILED"
	ErrCodeOrderLookupFailed        ErrorCode = "ORDER_LOOKUP_FAILED"
	ErrCodeOrderCreateFailed        ErrorCode = "ORDER_CREATE_FAILED"
	ErrCodeLoyaltyLookupFailed      ErrorCode = "LOYALTY_LOOKUP_FAILED"

	ErrCodeSessionStoreFailed ErrorCode = "SESSION_STORE_FAILED"
	ErrCodeSessionNotFound    ErrorCode = "SESSION_NOT_FOUND"

	ErrCodeResourceNotFound   ErrorCode = "RESOURCE_NOT_FOUND"
	ErrCodeAdminUpdateFailed  ErrorCode = "ADMIN_UPDATE_FAILED"
	ErrCodeInvalidCategory    ErrorCode = "INVALID_CATEGORY"
	ErrCodeInvalidLocation    ErrorCode = "INVALID_LOCATION"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewRequestValidationFailedError creates a non-retryable request validation error.
func NewRequestValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRequestValidationFailed,
		Message:   "Request body failed schema validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRateLimitExceededError creates a rate-limit error carrying the retry delay.
func NewRateLimitExceededError(retryAfter time.Duration) *StandardError {
	return &StandardError{
		Code:      ErrCodeRateLimitExceeded,
		Message:   "Too many requests",
		Details:   fmt.Sprintf("retry after %s", retryAfter),
		Retryable: true,
		Metadata:  map[string]interface{}{"retryAfterSeconds": int(retryAfter.Seconds())},
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogLookupFailedError creates a retryable menu catalog lookup error.
func NewCatalogLookupFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogLookupFailed,
		Message:   "Menu catalog query failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewOrderLookupFailedError creates a retryable order history lookup error.
func NewOrderLookupFailedError(phone string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeOrderLookupFailed,
		Message:   "Order history query failed",
		Details:   fmt.Sprintf("phone: %s, error: %s", maskPhone(phone), err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewOrderCreateFailedError creates a retryable order insert error.
func NewOrderCreateFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeOrderCreateFailed,
		Message:   "Order could not be created",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewLoyaltyLookupFailedError creates a retryable loyalty profile lookup error.
func NewLoyaltyLookupFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeLoyaltyLookupFailed,
		Message:   "Loyalty profile query failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionStoreFailedError creates a retryable session store error.
func NewSessionStoreFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionStoreFailed,
		Message:   "Conversation session store error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionNotFoundError creates a non-retryable session lookup error.
func NewSessionNotFoundError(sessionID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionNotFound,
		Message:   "Conversation session not found",
		Details:   fmt.Sprintf("sessionId: %s", sessionID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewResourceNotFoundError creates a non-retryable not-found error.
func NewResourceNotFoundError(resource, id string) *StandardError {
	return &StandardError{
		Code:      ErrCodeResourceNotFound,
		Message:   fmt.Sprintf("%s not found", resource),
		Details:   fmt.Sprintf("id: %s", id),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAdminUpdateFailedError creates a retryable admin CRUD error.
func NewAdminUpdateFailedError(resource string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAdminUpdateFailed,
		Message:   fmt.Sprintf("Admin update failed for %s", resource),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidCategoryError creates a non-retryable category error.
func NewInvalidCategoryError(category string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidCategory,
		Message:   "Unknown menu category",
		Details:   fmt.Sprintf("category: %s", category),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidLocationError creates a non-retryable location error.
func NewInvalidLocationError(locationID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidLocation,
		Message:   "Unknown location",
		Details:   fmt.Sprintf("locationId: %s", locationID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// IsRetryable reports whether err is a StandardError marked retryable.
func IsRetryable(err error) bool {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr.Retryable
	}
	return false
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	case strings.Contains(codeStr, "RATE_LIMIT"):
		return "RATE_LIMIT"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "LOOKUP") || strings.Contains(codeStr, "CREATE"):
		return "DATABASE"
	case strings.Contains(codeStr, "SESSION"):
		return "SESSION"
	case strings.Contains(codeStr, "ADMIN"):
		return "ADMIN"
	default:
		return "OTHER"
	}
}

func maskPhone(phone string) string {
	if len(phone) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(phone)-4) + phone[len(phone)-4:]
}
