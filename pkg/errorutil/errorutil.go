package errorutil

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, err error) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Err: err}
}

func NewValidationError(message string) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, nil)
}

func NewNotFound(message string) error {
	return NewDomainError("NOT_FOUND", message, http.StatusNotFound, nil)
}

// NewSourceUnreadable reports an input file that could not be ingested. The
// cause text is the user-visible message.
func NewSourceUnreadable(err error) error {
	return NewDomainError("SOURCE_UNREADABLE", err.Error(), http.StatusUnprocessableEntity, err)
}

func NewInternalError(err error) error {
	return NewDomainError("INTERNAL_ERROR", "internal server error", http.StatusInternalServerError, err)
}

// ToDomainError converts generic errors to DomainError. Unknown errors map to
// an internal error that hides the cause.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}
