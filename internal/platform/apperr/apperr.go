// Package apperr defines the error kinds surfaced to API callers and their
// mapping onto HTTP status codes.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrValidation          = errors.New("validation failed")
	ErrConflict            = errors.New("conflict")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrTooLarge            = errors.New("payload too large")
	ErrTooSmall            = errors.New("payload too small")
)

// Error carries a caller-facing message, its kind and an optional cause.
type Error struct {
	Kind  error
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Msg + ": " + e.Cause.Error()
	}
	return e.Msg
}

func (e *Error) Is(target error) bool { return target == e.Kind }

func (e *Error) Unwrap() error { return e.Cause }

func newf(kind error, format string, args ...interface{}) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) error {
	return newf(ErrNotFound, format, args...)
}

func Validation(format string, args ...interface{}) error {
	return newf(ErrValidation, format, args...)
}

func Conflict(format string, args ...interface{}) error {
	return newf(ErrConflict, format, args...)
}

func TooLarge(format string, args ...interface{}) error {
	return newf(ErrTooLarge, format, args...)
}

func TooSmall(format string, args ...interface{}) error {
	return newf(ErrTooSmall, format, args...)
}

// Upstream wraps a failure of the speech or LLM provider.
func Upstream(cause error, format string, args ...interface{}) error {
	return &Error{Kind: ErrUpstreamUnavailable, Msg: fmt.Sprintf(format, args...), Cause: cause}
}

// Problems accumulates field-level validation failures.
type Problems []string

func (p *Problems) Add(format string, args ...interface{}) {
	*p = append(*p, fmt.Sprintf(format, args...))
}

// Require records "<field> is required" when value is blank.
func (p *Problems) Require(field, value string) {
	if strings.TrimSpace(value) == "" {
		p.Add("%s is required", field)
	}
}

// MaxLen records a problem when value is longer than n characters.
func (p *Problems) MaxLen(field, value string, n int) {
	if utf8.RuneCountInString(value) > n {
		p.Add("%s must be at most %d characters", field, n)
	}
}

// Range records a problem when v is set and outside [lo, hi].
func (p *Problems) Range(field string, v *int, lo, hi int) {
	if v != nil && (*v < lo || *v > hi) {
		p.Add("%s must be between %d and %d", field, lo, hi)
	}
}

// Err returns nil when nothing was recorded.
func (p Problems) Err() error {
	if len(p) == 0 {
		return nil
	}
	return Validation("%s", strings.Join(p, "; "))
}

// StatusOf maps an error to its HTTP status.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUpstreamUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrTooSmall):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// HTTP converts err into an echo error. Unclassified errors become a 500
// whose cause is kept internal for logging.
func HTTP(err error) error {
	if err == nil {
		return nil
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}
	status := StatusOf(err)
	if status == http.StatusInternalServerError {
		return echo.NewHTTPError(status, "internal server error").SetInternal(err)
	}
	return echo.NewHTTPError(status, err.Error()).SetInternal(err)
}
