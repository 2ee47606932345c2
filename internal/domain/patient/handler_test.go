package patient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ayush-2302/deploy-gro/internal/domain/record"
)

func newTestHandler() (*Handler, *fixture, *echo.Echo) {
	f := newFixture()
	return NewHandler(f.svc, f.cascade), f, echo.New()
}

// errStatus returns the status carried by an echo error, or 0.
func errStatus(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return 0
}

func withID(e *echo.Echo, req *http.Request, name, id string) (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames(name)
	c.SetParamValues(id)
	return c, rec
}

func TestHandler_CreatePatient(t *testing.T) {
	h, _, e := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(asha))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Create(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var p Patient
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, "Asha", p.Name)
}

func TestHandler_CreatePatient_Unprocessable(t *testing.T) {
	h, _, e := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x","age":200,"gender":"M"}`))
	err := h.Create(e.NewContext(req, httptest.NewRecorder()))
	assert.Equal(t, http.StatusUnprocessableEntity, errStatus(err))
}

func TestHandler_ListPatients(t *testing.T) {
	h, f, e := newTestHandler()
	for i := 0; i < 3; i++ {
		_, err := f.svc.Create(context.Background(), json.RawMessage(asha))
		require.NoError(t, err)
	}

	req := httptest.NewRequest(http.MethodGet, "/?limit=2", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.List(e.NewContext(req, rec)))

	var body struct {
		Data    []Patient `json:"data"`
		Total   int       `json:"total"`
		HasMore bool      `json:"has_more"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Data, 2)
	assert.Equal(t, 3, body.Total)
	assert.True(t, body.HasMore)
}

func TestHandler_GetPatient_NotFound(t *testing.T) {
	h, _, e := newTestHandler()

	c, _ := withID(e, httptest.NewRequest(http.MethodGet, "/", nil), "id", "6f1c2b9e-3f5e-4c1a-9a57-3f1b2d9f0c11")
	assert.Equal(t, http.StatusNotFound, errStatus(h.Get(c)))
}

func TestHandler_DeletePatient(t *testing.T) {
	h, f, e := newTestHandler()
	ctx := context.Background()
	p, _ := f.svc.Create(ctx, json.RawMessage(asha))
	_, err := f.records.Append(ctx, p.ID, record.CategoryDoctorNote, doc{})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	c, rec := withID(e, req, "id", p.ID.String())
	require.NoError(t, h.Delete(c))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(1), body["deleted_records"])
	assert.Equal(t, "Patient and all associated data deleted successfully", body["message"])

	c, _ = withID(e, req, "id", p.ID.String())
	assert.Equal(t, http.StatusNotFound, errStatus(h.Delete(c)), "second delete")
}

func TestHandler_Timeline(t *testing.T) {
	h, f, e := newTestHandler()
	p, _ := f.svc.Create(context.Background(), json.RawMessage(asha))

	c, rec := withID(e, httptest.NewRequest(http.MethodGet, "/", nil), "patient_id", p.ID.String())
	require.NoError(t, h.Timeline(c))

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "[]", string(body["handovers"]))
	assert.Equal(t, "null", string(body["discharge"]))
}
