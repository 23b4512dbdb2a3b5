package app

import (
	"errors"
	"fmt"
)

// ValidationError represents a mutation rejected at the boundary before
// any state changed. Validation failures are user-facing and block the
// action; no partial mutation occurs for them.
type ValidationError struct {
	// Code identifies the error category.
	Code ValidationCode

	// Message is a human-readable description.
	Message string
}

// ValidationCode categorizes validation errors.
type ValidationCode string

const (
	// ErrCodeEmptyCart indicates checkout of a cart with no lines.
	ErrCodeEmptyCart ValidationCode = "EMPTY_CART"

	// ErrCodeDuplicateBarcode indicates a product barcode already in use
	// by a different product.
	ErrCodeDuplicateBarcode ValidationCode = "DUPLICATE_BARCODE"

	// ErrCodeCustomerHasDebt indicates deletion of a customer carrying debt.
	ErrCodeCustomerHasDebt ValidationCode = "CUSTOMER_HAS_DEBT"

	// ErrCodeLastUser indicates deletion that would empty the user roster.
	ErrCodeLastUser ValidationCode = "LAST_USER"

	// ErrCodeSelfDelete indicates a user deleting their own account.
	ErrCodeSelfDelete ValidationCode = "SELF_DELETE"

	// ErrCodeOutOfStock indicates adding a product with no on-hand stock.
	ErrCodeOutOfStock ValidationCode = "OUT_OF_STOCK"

	// ErrCodeInvalidAmount indicates a settlement or debt edit outside
	// the allowed range.
	ErrCodeInvalidAmount ValidationCode = "INVALID_AMOUNT"

	// ErrCodeNotFound indicates the referenced entity does not exist.
	ErrCodeNotFound ValidationCode = "NOT_FOUND"

	// ErrCodeBadCredentials indicates a failed login.
	ErrCodeBadCredentials ValidationCode = "BAD_CREDENTIALS"
)

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsValidation reports whether err is a ValidationError.
// Uses errors.As to handle wrapped errors.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ValidationCodeOf extracts the code from a wrapped ValidationError, or ""
// when err is not one.
func ValidationCodeOf(err error) ValidationCode {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Code
	}
	return ""
}

func validationErr(code ValidationCode, format string, args ...any) *ValidationError {
	return &ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}
