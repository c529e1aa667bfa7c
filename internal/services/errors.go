package services

import (
	"errors"
	"fmt"
)

// ValidationError rejects bad edit input before any mutation happens.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// ConflictError reports a state conflict the caller must resolve manually,
// e.g. a member already mapped to another driver entry in the same session.
// ConflictID names the conflicting entity.
type ConflictError struct {
	Msg        string
	ConflictID string
}

func (e *ConflictError) Error() string {
	return e.Msg
}

// NotFoundError reports an unknown target; no mutation was attempted.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrResolutionFailed means no race matched and none could be created.
// The importer routes the payload to the orphan handler instead of
// surfacing this as a hard failure.
var ErrResolutionFailed = errors.New("no matching or creatable race for session")

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}

// ConflictID extracts the conflicting entity id from a ConflictError, or
// "" when err is not one.
func ConflictID(err error) string {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce.ConflictID
	}
	return ""
}
