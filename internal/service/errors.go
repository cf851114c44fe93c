package service

import "errors"

// Sentinel errors let controllers choose a status code without string
// matching.
var (
	ErrNotFound         = errors.New("resource not found")
	ErrLocked           = errors.New("candidature is locked")
	ErrAlreadySubmitted = errors.New("candidature already submitted")
	ErrAlreadyValidated = errors.New("result already validated")
	ErrForbidden        = errors.New("operation not allowed for this user")
	ErrInvalidLogin     = errors.New("invalid email or password")
	ErrClosed           = errors.New("candidature period is closed")
)

// ValidationError carries field-keyed messages for pre-persistence
// rejections. The request never reaches the storage layer when one is
// returned.
type ValidationError struct {
	Message string
	Fields  map[string][]string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message, Fields: map[string][]string{}}
}

func (e *ValidationError) Add(field, message string) *ValidationError {
	e.Fields[field] = append(e.Fields[field], message)
	return e
}
