package shared

import "errors"

// Error codes shared by every bounded context
const (
	CodeValidation  = "VALIDATION_ERROR"
	CodeNotFound    = "NOT_FOUND"
	CodeConflict    = "ALREADY_EXISTS"
	CodePersistence = "PERSISTENCE_ERROR"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target is a DomainError with the same code, so that
// errors.Is(err, ErrNotFound) matches any not-found error regardless of message.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError reports a missing or malformed field; the operation was not attempted.
func NewValidationError(message string) *DomainError {
	return NewDomainError(CodeValidation, message)
}

// NewNotFoundError reports a referenced entity that does not exist.
func NewNotFoundError(message string) *DomainError {
	return NewDomainError(CodeNotFound, message)
}

// NewConflictError reports a duplicate unique field.
func NewConflictError(message string) *DomainError {
	return NewDomainError(CodeConflict, message)
}

// Common domain errors
var (
	ErrNotFound    = NewNotFoundError("Resource not found")
	ErrConflict    = NewConflictError("Resource already exists")
	ErrValidation  = NewValidationError("Invalid input provided")
	ErrPersistence = NewDomainError(CodePersistence, "Unable to persist changes")
)

// PersistenceError wraps a store failure. The message exposed to callers is
// generic; the cause stays available through errors.Unwrap for logging.
type PersistenceError struct {
	Op  string
	Err error
	// Transient marks failures that may succeed when retried
	// (serialization failures, deadlocks, lock timeouts, busy databases).
	Transient bool
}

// Error implements the error interface
func (e *PersistenceError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying store error
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrPersistence) true for every PersistenceError
func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

// NewPersistenceError wraps err unless it already carries a domain classification
func NewPersistenceError(op string, err error) error {
	if err == nil {
		return nil
	}
	var de *DomainError
	if errors.As(err, &de) {
		return err
	}
	var pe *PersistenceError
	if errors.As(err, &pe) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}

// NewTransientError wraps a store failure that is safe to retry
func NewTransientError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err, Transient: true}
}

// IsTransient reports whether err is a retryable store failure
func IsTransient(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe) && pe.Transient
}

// IsNotFound reports whether err is a not-found domain error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict reports whether err is a duplicate-key domain error
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
