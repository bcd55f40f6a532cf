package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestToDomainError(t *testing.T) {
	t.Parallel()

	if ToDomainError(nil) != nil {
		t.Fatal("ToDomainError(nil) should be nil")
	}

	wrapped := fmt.Errorf("handler: %w", NewNotFound("no processed data"))
	de := ToDomainError(wrapped)
	if de.HTTPStatus != http.StatusNotFound || de.Message != "no processed data" {
		t.Errorf("wrapped not-found = %+v", de)
	}

	cause := errors.New("disk on fire")
	de = ToDomainError(cause)
	if de.HTTPStatus != http.StatusInternalServerError || de.Code != "INTERNAL_ERROR" {
		t.Errorf("unknown error = %+v", de)
	}
	if de.Message == cause.Error() {
		t.Error("internal error leaked its cause into Message")
	}
	if !errors.Is(de, cause) {
		t.Error("internal error does not unwrap to its cause")
	}
}

func TestNewSourceUnreadable(t *testing.T) {
	t.Parallel()

	cause := errors.New("source unreadable: open x.csv: no such file or directory")
	de := ToDomainError(NewSourceUnreadable(cause))
	if de.HTTPStatus != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", de.HTTPStatus)
	}
	if de.Message != cause.Error() {
		t.Errorf("Message = %q, want cause text", de.Message)
	}
}
