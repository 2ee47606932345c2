package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{NotFound("patient not found"), http.StatusNotFound},
		{Validation("age must be between 0 and 120"), http.StatusUnprocessableEntity},
		{Conflict("handover is locked"), http.StatusConflict},
		{Upstream(errors.New("dial tcp"), "transcription failed"), http.StatusBadGateway},
		{TooLarge("file too large"), http.StatusRequestEntityTooLarge},
		{TooSmall("file too small"), http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
		{fmt.Errorf("get patient: %w", NotFound("patient not found")), http.StatusNotFound},
	}
	for _, tt := range tests {
		if got := StatusOf(tt.err); got != tt.want {
			t.Errorf("StatusOf(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestUpstream_UnwrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Upstream(cause, "transcription failed")
	if !errors.Is(err, cause) {
		t.Error("expected cause to be reachable")
	}
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Error("expected upstream kind")
	}
	if err.Error() != "transcription failed: connection refused" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestProblems(t *testing.T) {
	var p Problems
	if p.Err() != nil {
		t.Fatal("expected nil error for no problems")
	}

	age := 130
	pain := 5
	p.Require("name", "  ")
	p.Require("gender", "male")
	p.Range("age", &age, 0, 120)
	p.Range("pain_score", &pain, 0, 10)
	p.Range("missing", nil, 0, 10)
	p.MaxLen("ward", "ICU", 3)
	p.MaxLen("shift_time", "2025-01-09 morning", 10)

	err := p.Err()
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "name is required; age must be between 0 and 120; shift_time must be at most 10 characters" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestHTTP(t *testing.T) {
	if HTTP(nil) != nil {
		t.Error("expected nil for nil error")
	}

	he, ok := HTTP(NotFound("patient not found")).(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound || he.Message != "patient not found" {
		t.Errorf("unexpected mapping: %+v", he)
	}

	he, ok = HTTP(errors.New("pq: connection reset")).(*echo.HTTPError)
	if !ok || he.Code != http.StatusInternalServerError || he.Message != "internal server error" {
		t.Errorf("expected opaque 500, got %+v", he)
	}
	if he.Internal == nil {
		t.Error("expected internal cause to be kept")
	}

	orig := echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	if HTTP(orig) != orig {
		t.Error("expected echo errors to pass through")
	}
}
