package middleware

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const maxHeaderValueSize = 8 << 10

var (
	sqlPattern    = regexp.MustCompile(`(?i)('+\s*;\s*DROP\b|UNION\s+SELECT\b|'\s+OR\s+1\s*=\s*1)`)
	scriptPattern = regexp.MustCompile(`(?i)(<script|javascript\s*:|on\w+\s*=)`)
)

// Sanitize rejects requests with path traversal, null bytes, header
// injection, oversized headers or script in the query string. SQL-looking
// query values are only logged; every query is parameterized.
func Sanitize(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if reason := rejectReason(c.Request()); reason != "" {
				return echo.NewHTTPError(http.StatusBadRequest, reason)
			}

			for key, values := range c.Request().URL.Query() {
				for _, v := range values {
					if sqlPattern.MatchString(v) {
						logger.Warn().
							Str("param", key).
							Str("path", c.Request().URL.Path).
							Str("remote_ip", c.RealIP()).
							Msg("suspicious SQL in query parameter")
					}
				}
			}
			return next(c)
		}
	}
}

func rejectReason(req *http.Request) string {
	paths := []string{req.URL.Path, req.URL.RawPath}
	for _, p := range paths {
		if containsPathTraversal(p) {
			return "path traversal detected"
		}
		if containsNullByte(p) {
			return "null byte in path"
		}
	}

	for name, values := range req.Header {
		for _, v := range values {
			if len(v) > maxHeaderValueSize {
				return "header value too large: " + name
			}
			if strings.ContainsAny(v, "\r\n") {
				return "header injection detected: " + name
			}
		}
	}

	for key, values := range req.URL.Query() {
		if containsNullByte(key) || scriptPattern.MatchString(key) {
			return "invalid query parameter name"
		}
		for _, v := range values {
			if containsNullByte(v) {
				return "null byte in query parameter " + key
			}
			if scriptPattern.MatchString(v) {
				return "script in query parameter " + key
			}
		}
	}
	return ""
}

func containsPathTraversal(s string) bool {
	lower := strings.ToLower(s)
	return strings.Contains(s, "..") || strings.Contains(lower, "%2e%2e") || strings.Contains(lower, "%252e")
}

func containsNullByte(s string) bool {
	return strings.ContainsRune(s, 0) || strings.Contains(strings.ToLower(s), "%00")
}
