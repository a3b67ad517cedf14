package service

import (
	"errors"
	"strings"
)

var (
	ErrItemNotFound  = errors.New("item not found")
	ErrOrderNotFound = errors.New("order not found")
	ErrStockExceeded = errors.New("maximum stock reached")

	// ErrOrderPersistence is the generic storage failure surfaced to the
	// customer; the underlying cause is logged, never exposed.
	ErrOrderPersistence = errors.New("order could not be saved")
)

// Validation error codes for order submission and wardrobe edits.
const (
	CodeCartEmpty        = "cart_empty"
	CodeMissingField     = "missing_field"
	CodeInvalidEmail     = "invalid_email"
	CodeConsentRequired  = "consent_required"
	CodeInvalidDate      = "invalid_date"
	CodeDateInPast       = "date_in_past"
	CodeDateOrderInvalid = "date_order_invalid"
	CodeInvalidPrice     = "invalid_price"
	CodeInvalidStock     = "invalid_stock"
)

// ValidationError is one user-facing validation failure.
type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationErrors accumulates every failure found in a request so the
// caller can display all problems at once.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Message
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationErrors) add(code, message string) {
	*e = append(*e, ValidationError{Code: code, Message: message})
}
