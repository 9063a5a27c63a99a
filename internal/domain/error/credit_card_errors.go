package error

import "errors"

// Credit card domain errors.
var (
	// ErrCreditCardNotFound is returned when a card does not exist.
	ErrCreditCardNotFound = errors.New("credit card not found")

	// ErrInvalidCardAmounts is returned for negative limits or available credit.
	ErrInvalidCardAmounts = errors.New("credit limit and available credit must not be negative")

	// ErrNotCardOwner is returned when a user touches someone else's card.
	ErrNotCardOwner = errors.New("credit card belongs to another user")
)

// CreditCardErrorCode defines error codes for credit card errors.
// Format: CRD-XXYYYY where XX is category and YYYY is specific error.
type CreditCardErrorCode string

const (
	ErrCodeCreditCardNotFound CreditCardErrorCode = "CRD-010001"
	ErrCodeInvalidCardAmounts CreditCardErrorCode = "CRD-010002"
	ErrCodeNotCardOwner       CreditCardErrorCode = "CRD-010003"
	ErrCodeMissingCardName    CreditCardErrorCode = "CRD-010004"
)

// CreditCardError represents a credit card error with code and message.
type CreditCardError struct {
	Code    CreditCardErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CreditCardError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CreditCardError) Unwrap() error {
	return e.Err
}

// NewCreditCardError creates a new CreditCardError with the given code and message.
func NewCreditCardError(code CreditCardErrorCode, message string, err error) *CreditCardError {
	return &CreditCardError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
