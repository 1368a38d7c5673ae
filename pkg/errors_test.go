package pkg

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppError(t *testing.T) {
	t.Run("simple", func(t *testing.T) {
		e := NewDomainErrorSimple("NOT_FOUND", "Not found", http.StatusNotFound)
		if e.Error() != "NOT_FOUND: Not found" {
			t.Fatalf("unexpected message %q", e.Error())
		}
		if e.Unwrap() != nil {
			t.Fatalf("expected no cause")
		}
		body := e.ToHTTPError()
		if body.Code != "NOT_FOUND" || body.Message != "Not found" {
			t.Fatalf("unexpected body %+v", body)
		}
	})

	t.Run("wrapped", func(t *testing.T) {
		cause := errors.New("dynamo down")
		e := NewDomainError("INTERNAL_ERROR", "An internal error occurred", cause, http.StatusInternalServerError)
		if !errors.Is(e, cause) {
			t.Fatalf("expected errors.Is to reach the cause")
		}
		if e.Error() != "INTERNAL_ERROR: An internal error occurred: dynamo down" {
			t.Fatalf("unexpected message %q", e.Error())
		}
		if e.ToHTTPError().Message != "An internal error occurred" {
			t.Fatalf("cause leaked into body")
		}
	})
}
