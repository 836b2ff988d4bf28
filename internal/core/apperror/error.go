// Package apperror provides structured error handling following RFC 7807 Problem Details.
// All business errors must use AppError for consistent API responses.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes following domain-driven design
const (
	// Infrastructure errors (5xx)
	CodeInternal = "INTERNAL_ERROR"
	CodeDatabase = "DATABASE_ERROR"
	CodeTimeout  = "TIMEOUT_ERROR"

	// Validation errors (400)
	CodeValidation   = "VALIDATION_ERROR"
	CodeInvalidInput = "INVALID_INPUT"

	// Business rule violations (422)
	CodeBusinessRule           = "BUSINESS_RULE_VIOLATION"
	CodeInvoiceNoDate          = "INVOICE_NO_DATE"
	CodeProductNoSupplier      = "PRODUCT_NO_SUPPLIER"
	CodeNoCommonLocation       = "NO_COMMON_LOCATION"
	CodeNoCommonPartner        = "NO_COMMON_PARTNER"
	CodeMissingRequiredField   = "MISSING_REQUIRED_FIELD"
	CodeInvalidStateTransition = "INVALID_STATE_TRANSITION"
	CodeConcurrentModification = "CONCURRENT_MODIFICATION"

	// Authorization errors (401, 403)
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"

	// Not found (404)
	CodeNotFound = "NOT_FOUND"

	// Conflict (409)
	CodeConflict  = "CONFLICT"
	CodeDuplicate = "DUPLICATE_ENTRY"
)

// AppError is the standard error type for the service.
// It implements error interface and provides structured details for API responses.
type AppError struct {
	// Code is a machine-readable error identifier
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Details contains additional context (field errors, quantities, etc.)
	Details map[string]any `json:"details,omitempty"`

	// HTTPStatus is the suggested HTTP status code
	HTTPStatus int `json:"-"`

	// Err is the underlying error (not exposed in JSON)
	Err error `json:"-"`
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail adds a key-value pair to error details
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

// --- Factory functions for common errors ---

// NewValidation creates a validation error (400)
func NewValidation(message string) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewNotFound creates a not found error (404)
func NewNotFound(entity string, id any) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", entity),
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"entity": entity, "id": id},
	}
}

// NewBusinessRule creates a business rule violation error (422)
func NewBusinessRule(code, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// NewInvoiceNoDate signals that a warranty cannot be computed because the
// invoice carries no invoice date.
func NewInvoiceNoDate(invoiceID any) *AppError {
	return &AppError{
		Code:       CodeInvoiceNoDate,
		Message:    "Cannot find any date for invoice. Must be a validated invoice.",
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    map[string]any{"invoice_id": invoiceID},
	}
}

// NewProductNoSupplier signals that a supplier warranty cannot be computed
// because the product has no supplier record.
func NewProductNoSupplier(productID any) *AppError {
	return &AppError{
		Code:       CodeProductNoSupplier,
		Message:    "The product has no supplier configured.",
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    map[string]any{"product_id": productID},
	}
}

// NewNoCommonLocation rejects a product-return picking over lines with
// diverging destination locations.
func NewNoCommonLocation() *AppError {
	return &AppError{
		Code: CodeNoCommonLocation,
		Message: "A product return cannot be created for various destination " +
			"locations, please choose lines with the same destination location.",
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// NewNoCommonPartner rejects a product-return picking over lines with
// diverging return addresses.
func NewNoCommonPartner() *AppError {
	return &AppError{
		Code: CodeNoCommonPartner,
		Message: "A product return cannot be created for various destination " +
			"addresses, please choose lines with the same address.",
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// NewMissingRequiredField is returned when a warranty computation is
// explicitly requested for a line missing its product or invoice line.
func NewMissingRequiredField(field string) *AppError {
	return &AppError{
		Code:       CodeMissingRequiredField,
		Message:    "Please set product and invoice.",
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    map[string]any{"field": field},
	}
}

// NewInvalidStateTransition creates a claim line lifecycle error.
func NewInvalidStateTransition(from, to string) *AppError {
	return &AppError{
		Code:       CodeInvalidStateTransition,
		Message:    fmt.Sprintf("cannot move from state %q to state %q", from, to),
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    map[string]any{"from": from, "to": to},
	}
}

// NewConcurrentModification creates an optimistic locking error
func NewConcurrentModification(entity string, id any) *AppError {
	return &AppError{
		Code:       CodeConcurrentModification,
		Message:    "Record was modified by another user. Please refresh and try again.",
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"entity": entity, "id": id},
	}
}

// NewInternal creates an internal server error (hides details from client)
func NewInternal(err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewUnauthorized creates an authentication error (401)
func NewUnauthorized(message string) *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewForbidden creates an authorization error (403)
func NewForbidden(message string) *AppError {
	return &AppError{
		Code:       CodeForbidden,
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

// NewConflict creates a conflict error (409)
func NewConflict(message string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

// NewDuplicate creates a duplicate entry error (409)
func NewDuplicate(entity, field, value string) *AppError {
	return &AppError{
		Code:       CodeDuplicate,
		Message:    fmt.Sprintf("%s with this %s already exists", entity, field),
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"entity": entity, "field": field, "value": value},
	}
}

// --- Helper functions ---

// IsAppError checks if error is AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError extracts AppError from error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// GetHTTPStatus returns appropriate HTTP status for any error
func GetHTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// IsNotFound checks if error is CodeNotFound
func IsNotFound(err error) bool {
	return HasCode(err, CodeNotFound)
}

// IsConcurrentModification checks if error is CodeConcurrentModification
func IsConcurrentModification(err error) bool {
	return HasCode(err, CodeConcurrentModification)
}

// HasCode checks if error carries the given application code.
func HasCode(err error, code string) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == code
	}
	return false
}
