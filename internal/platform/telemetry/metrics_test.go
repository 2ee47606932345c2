package telemetry

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.RecordUpsert("discharge", true)
	m.RecordDeletes("handover", 3)
	m.TATTransition("admission", "completed")
	m.ExtractionFallback("admission", "no_api_key")
	m.ObserveUpstream("transcribe", time.Second, nil)
}

func expectCount(t *testing.T, c prometheus.Collector, want float64) {
	t.Helper()
	if got := testutil.ToFloat64(c); got != want {
		t.Errorf("counter = %v, want %v", got, want)
	}
}

func TestMetrics_DomainCounters(t *testing.T) {
	m := New()

	m.RecordUpsert("patient_file_section1", true)
	m.RecordUpsert("patient_file_section1", false)
	m.RecordUpsert("patient_file_section1", false)
	m.RecordDeletes("handover", 2)
	m.RecordDeletes("handover", 0)
	m.TATTransition("admission", "completed")
	m.ExtractionFallback("doctor_note", "upstream_error")

	expectCount(t, m.recordUpserts.WithLabelValues("patient_file_section1", "created"), 1)
	expectCount(t, m.recordUpserts.WithLabelValues("patient_file_section1", "updated"), 2)
	expectCount(t, m.recordDeletes.WithLabelValues("handover"), 2)
	expectCount(t, m.tatTransitions.WithLabelValues("admission", "completed"), 1)
	expectCount(t, m.extractionFallbacks.WithLabelValues("doctor_note", "upstream_error"), 1)
}

func TestMetrics_MiddlewareUsesRouteTemplate(t *testing.T) {
	m := New()
	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/api/patients/:id", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	e.GET("/api/fail", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	})
	e.GET("/api/boom", func(c echo.Context) error {
		return errors.New("boom")
	})

	for _, path := range []string{"/api/patients/a", "/api/patients/b", "/api/fail", "/api/boom"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	expectCount(t, m.httpRequests.WithLabelValues("GET", "/api/patients/:id", "200"), 2)
	expectCount(t, m.httpRequests.WithLabelValues("GET", "/api/fail", "404"), 1)
	expectCount(t, m.httpRequests.WithLabelValues("GET", "/api/boom", "500"), 1)
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.TATTransition("discharge", "in_progress")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	want := `growit_tat_transitions_total{service_type="discharge",status="in_progress"} 1`
	if !strings.Contains(rec.Body.String(), want) {
		t.Errorf("exposition missing %s", want)
	}
}
