package error

import "errors"

// Budget domain errors.
var (
	// ErrBudgetSettingsNotFound is returned when a user has no settings row yet.
	ErrBudgetSettingsNotFound = errors.New("budget settings not found")

	// ErrInvalidBudgetSettings is returned for negative income or savings goal.
	ErrInvalidBudgetSettings = errors.New("monthly income and savings goal must not be negative")

	// ErrInvalidTierSelection is returned when the selected value is not a current tier value.
	ErrInvalidTierSelection = errors.New("selected weekly target does not match any tier")

	// ErrSnapshotUnavailable is returned when the inputs of a snapshot could not be loaded.
	ErrSnapshotUnavailable = errors.New("budget snapshot unavailable")

	// ErrCoachNotConfigured is returned when no coaching provider is wired.
	ErrCoachNotConfigured = errors.New("budget coach is not configured")

	// ErrCoachFailed is returned when the coaching provider fails.
	ErrCoachFailed = errors.New("budget coach failed")

	// ErrExportFailed is returned when the workbook cannot be rendered.
	ErrExportFailed = errors.New("budget export failed")
)

// BudgetErrorCode defines error codes for budget errors.
// Format: BUD-XXYYYY where XX is category and YYYY is specific error.
type BudgetErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidBudgetSettings BudgetErrorCode = "BUD-010001"
	ErrCodeInvalidTierSelection  BudgetErrorCode = "BUD-010002"

	// Snapshot errors (02XXXX)
	ErrCodeSnapshotUnavailable BudgetErrorCode = "BUD-020001"
	ErrCodeExportFailed        BudgetErrorCode = "BUD-020002"

	// Coach errors (03XXXX)
	ErrCodeCoachNotConfigured BudgetErrorCode = "BUD-030001"
	ErrCodeCoachFailed        BudgetErrorCode = "BUD-030002"
)

// BudgetError represents a budget error with code and message.
type BudgetError struct {
	Code    BudgetErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BudgetError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BudgetError) Unwrap() error {
	return e.Err
}

// NewBudgetError creates a new BudgetError with the given code and message.
func NewBudgetError(code BudgetErrorCode, message string, err error) *BudgetError {
	return &BudgetError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
