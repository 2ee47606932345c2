package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// AccessEntry describes one access to patient data.
type AccessEntry struct {
	RequestID string
	Action    string
	Resource  string
	PatientID string
	Method    string
	Route     string
	RemoteIP  string
	Status    int
}

// Audit logs a "phi_access" line for every request under /api that touches
// patient data. Voice and health endpoints carry no stored PHI and are
// skipped.
func Audit(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !isAuditablePath(c.Request().URL.Path) {
				return next(c)
			}

			err := next(c)

			entry := accessEntry(c)
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					entry.Status = he.Code
				} else {
					entry.Status = http.StatusInternalServerError
				}
			}

			logger.Info().
				Str("type", "phi_audit").
				Str("request_id", entry.RequestID).
				Str("action", entry.Action).
				Str("resource", entry.Resource).
				Str("patient_id", entry.PatientID).
				Str("method", entry.Method).
				Str("route", entry.Route).
				Str("remote_ip", entry.RemoteIP).
				Int("status", entry.Status).
				Msg("phi_access")

			return err
		}
	}
}

func accessEntry(c echo.Context) AccessEntry {
	req := c.Request()
	rid, _ := c.Get("request_id").(string)
	return AccessEntry{
		RequestID: rid,
		Action:    httpMethodToAction(req.Method),
		Resource:  extractResource(req.URL.Path),
		PatientID: extractPatientID(c),
		Method:    req.Method,
		Route:     c.Path(),
		RemoteIP:  c.RealIP(),
		Status:    c.Response().Status,
	}
}

var unaudited = []string{"/api/health", "/api/transcribe", "/api/map/", "/api/reference/"}

func isAuditablePath(path string) bool {
	if !strings.HasPrefix(path, "/api/") {
		return false
	}
	for _, p := range unaudited {
		if strings.HasPrefix(path, p) {
			return false
		}
	}
	return true
}

func httpMethodToAction(method string) string {
	switch method {
	case http.MethodPost:
		return "create"
	case http.MethodPut, http.MethodPatch:
		return "update"
	case http.MethodDelete:
		return "delete"
	default:
		return "read"
	}
}

// extractResource returns the first path segment after /api/, e.g. "patients"
// for /api/patients/<id>/discharge.
func extractResource(path string) string {
	rest := strings.TrimPrefix(path, "/api/")
	seg, _, _ := strings.Cut(rest, "/")
	if seg == "" {
		return "unknown"
	}
	return seg
}

// extractPatientID reads the patient from the matched route: :id under
// /patients and the TAT patient listing, or :patient_id for the timeline.
func extractPatientID(c echo.Context) string {
	route := c.Path()
	var raw string
	switch {
	case strings.Contains(route, "/patients/:id"), strings.Contains(route, "/tat/patient/:id"):
		raw = c.Param("id")
	case strings.Contains(route, ":patient_id"):
		raw = c.Param("patient_id")
	}
	if _, err := uuid.Parse(raw); err != nil {
		return ""
	}
	return raw
}
