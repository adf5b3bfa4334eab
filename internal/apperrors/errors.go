package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates a concurrent update moved a resource past the state the
// operation expected, so the write was refused.
var ErrConflict = errors.New("resource changed concurrently")

// ErrForbidden indicates the caller is not allowed to perform the operation.
var ErrForbidden = errors.New("operation not permitted")

// ErrInvalidPolicy indicates a distribution policy with bad deduction percentages
// (negative, above 100, or summing past 100).
var ErrInvalidPolicy = errors.New("invalid distribution policy")

// ErrInvalidRoster indicates that a weighted policy has no usable beneficiaries.
var ErrInvalidRoster = errors.New("no usable beneficiaries in roster")

// ErrStaleApproval indicates that roster or policy inputs changed between approval
// and execution, so the approved snapshot no longer matches a fresh computation.
var ErrStaleApproval = errors.New("approved snapshot is stale")

// ErrExecutionInProgress indicates another execution or closing currently holds the
// fiscal-period lock.
var ErrExecutionInProgress = errors.New("execution already in progress for fiscal period")

// ErrUnbalancedEntry indicates a computed journal entry whose debits do not equal
// its credits. This is a defensive guard and should never fire.
var ErrUnbalancedEntry = errors.New("journal entry debits do not equal credits")

// ErrTemplateNotFound indicates that no journal template is configured for an event.
var ErrTemplateNotFound = errors.New("journal template not found for event")

// ErrPeriodClosed indicates an attempt to mutate or close an already closed fiscal period.
var ErrPeriodClosed = errors.New("fiscal period is already closed")

// AppError wraps a lower-level error with an HTTP-ish code and a message,
// used primarily by the repository layer.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
