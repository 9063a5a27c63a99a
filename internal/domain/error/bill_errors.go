package error

import "errors"

// Bill domain errors.
var (
	// ErrBillNotFound is returned when a bill does not exist.
	ErrBillNotFound = errors.New("bill not found")

	// ErrInvalidDueDate is returned when a due day falls outside 1..31.
	ErrInvalidDueDate = errors.New("due date must be a day between 1 and 31")

	// ErrInvalidBillAmount is returned for negative bill amounts.
	ErrInvalidBillAmount = errors.New("bill amount must not be negative")

	// ErrNotBillOwner is returned when a user touches someone else's bill.
	ErrNotBillOwner = errors.New("bill belongs to another user")

	// ErrInvalidBillStatus is returned for an unknown bill status.
	ErrInvalidBillStatus = errors.New("bill status must be 'paid' or 'unpaid'")
)

// BillErrorCode defines error codes for bill errors.
// Format: BIL-XXYYYY where XX is category and YYYY is specific error.
type BillErrorCode string

const (
	// Validation and access errors (01XXXX)
	ErrCodeBillNotFound      BillErrorCode = "BIL-010001"
	ErrCodeInvalidDueDate    BillErrorCode = "BIL-010002"
	ErrCodeInvalidBillAmount BillErrorCode = "BIL-010003"
	ErrCodeNotBillOwner      BillErrorCode = "BIL-010004"
	ErrCodeInvalidBillStatus BillErrorCode = "BIL-010005"
)

// BillError represents a bill error with code and message.
type BillError struct {
	Code    BillErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BillError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BillError) Unwrap() error {
	return e.Err
}

// NewBillError creates a new BillError with the given code and message.
func NewBillError(code BillErrorCode, message string, err error) *BillError {
	return &BillError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
