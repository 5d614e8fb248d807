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

// ErrConflict indicates that the request clashes with the current state of the resource,
// e.g. a second pending withdrawal request or an already approved referral.
var ErrConflict = errors.New("conflicting state")

// ErrBelowThreshold indicates that a balance is under the configured minimum.
var ErrBelowThreshold = errors.New("balance below threshold")

// ErrAuthentication indicates that a signed confirmation could not be verified.
var ErrAuthentication = errors.New("authentication failed")

// ErrUploadFailed indicates that the document storage collaborator returned an error.
var ErrUploadFailed = errors.New("upload failed")

// ErrPersistence indicates a store write conflict or unavailability. Operations failing
// with this error may be retried.
var ErrPersistence = errors.New("persistence failed")

// AppError carries an HTTP-ish status code and a message alongside the underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}
