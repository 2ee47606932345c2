package tat

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Ayush-2302/deploy-gro/internal/domain/record/recordtest"
	"github.com/Ayush-2302/deploy-gro/internal/platform/apperr"
	"github.com/Ayush-2302/deploy-gro/internal/platform/db"
	"github.com/Ayush-2302/deploy-gro/internal/platform/reporting"
)

type memRepo struct {
	mu   sync.Mutex
	rows []*Record
}

func clone(r *Record) *Record {
	c := *r
	return &c
}

func (m *memRepo) Create(_ context.Context, r *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, clone(r))
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id uuid.UUID) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.ID == id {
			return clone(r), nil
		}
	}
	return nil, apperr.NotFound("TAT record %s not found", id)
}

func (m *memRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*Record, error) {
	return m.GetByID(ctx, id)
}

func (m *memRepo) Update(_ context.Context, r *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, row := range m.rows {
		if row.ID == r.ID {
			m.rows[i] = clone(r)
			return nil
		}
	}
	return apperr.NotFound("TAT record %s not found", r.ID)
}

func (m *memRepo) filter(keep func(*Record) bool) []*Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Record
	for i := len(m.rows) - 1; i >= 0; i-- {
		if keep(m.rows[i]) {
			out = append(out, clone(m.rows[i]))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *memRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*Record, error) {
	return m.filter(func(r *Record) bool { return r.PatientID == patientID }), nil
}

func (m *memRepo) ListByServiceType(_ context.Context, st ServiceType) ([]*Record, error) {
	return m.filter(func(r *Record) bool { return r.ServiceType == st }), nil
}

func (m *memRepo) ListAll(_ context.Context) ([]*Record, error) {
	return m.filter(func(*Record) bool { return true }), nil
}

func (m *memRepo) DeleteByPatient(_ context.Context, patientID uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []*Record
	var n int64
	for _, r := range m.rows {
		if r.PatientID == patientID {
			n++
			continue
		}
		kept = append(kept, r)
	}
	m.rows = kept
	return n, nil
}

func newTestService() (*Service, *memRepo, uuid.UUID) {
	repo := &memRepo{}
	pid := uuid.New()
	svc := NewService(repo, recordtest.Patients{pid: true}, db.NoTx{}, nil)
	return svc, repo, pid
}

func createBody(pid uuid.UUID, extra string) json.RawMessage {
	return json.RawMessage(`{"patient_id":"` + pid.String() + `","service_type":"discharge","start_time":"2025-01-09T09:00:00Z"` + extra + `}`)
}

func TestService_CreateThenComplete(t *testing.T) {
	svc, _, pid := newTestService()
	ctx := context.Background()

	rec, err := svc.Create(ctx, createBody(pid, ""))
	require.NoError(t, err)
	assert.Equal(t, StatusPending, rec.Status)
	assert.Nil(t, rec.DurationMinutes)

	updated, err := svc.Update(ctx, rec.ID, json.RawMessage(`{"end_time":"2025-01-09T09:05:00Z","status":"completed"}`))
	require.NoError(t, err)
	require.NotNil(t, updated.DurationMinutes)
	assert.Equal(t, 5.0, *updated.DurationMinutes)
	assert.Equal(t, StatusCompleted, updated.Status)

	summary, err := svc.Summarize(ctx, "discharge")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalCases)
	assert.Equal(t, 1, summary.CompletedCases)
	assert.Equal(t, 5.0, summary.AverageDurationMinutes)
	assert.Equal(t, 5.0, summary.MinDurationMinutes)
	assert.Equal(t, 5.0, summary.MaxDurationMinutes)
	assert.Zero(t, summary.PendingCases)
}

func TestService_CreateWithEndTime(t *testing.T) {
	svc, _, pid := newTestService()

	rec, err := svc.Create(context.Background(), createBody(pid, `,"end_time":"2025-01-09T09:01:30Z","status":"completed","notes":"fast"`))
	require.NoError(t, err)
	require.NotNil(t, rec.DurationMinutes)
	assert.Equal(t, 1.5, *rec.DurationMinutes)
	assert.Equal(t, "fast", *rec.Notes)
}

func TestService_CreateValidation(t *testing.T) {
	svc, _, pid := newTestService()

	tests := []struct {
		name string
		body json.RawMessage
		want error
	}{
		{"end before start", createBody(pid, `,"end_time":"2025-01-09T08:00:00Z"`), apperr.ErrValidation},
		{"unknown service", json.RawMessage(`{"patient_id":"` + pid.String() + `","service_type":"radiology","start_time":"2025-01-09T09:00:00Z"}`), apperr.ErrValidation},
		{"unknown status", createBody(pid, `,"status":"paused"`), apperr.ErrValidation},
		{"missing start", json.RawMessage(`{"patient_id":"` + pid.String() + `","service_type":"claims"}`), apperr.ErrValidation},
		{"bad time", json.RawMessage(`{"patient_id":"` + pid.String() + `","service_type":"claims","start_time":"yesterday"}`), apperr.ErrValidation},
		{"unknown patient", createBody(uuid.New(), ""), apperr.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.body)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestService_TimestampForms(t *testing.T) {
	nine := time.Date(2025, 1, 9, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		start string
		end   string
		want  time.Time
	}{
		{"rfc3339", "2025-01-09T09:00:00Z", "2025-01-09T09:05:00Z", nine},
		{"offset", "2025-01-09T14:30:00+05:30", "2025-01-09T14:35:00+05:30", nine},
		{"no zone", "2025-01-09T09:00:00", "2025-01-09T09:05:00", nine},
		{"fractional no zone", "2025-01-09T09:00:00.250", "2025-01-09T09:05:00.250", nine.Add(250 * time.Millisecond)},
		{"datetime-local", "2025-01-09T09:00", "2025-01-09T09:05", nine},
		{"space separated", "2025-01-09 09:00:00", "2025-01-09 09:05:00", nine},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, pid := newTestService()
			ctx := context.Background()

			rec, err := svc.Create(ctx, json.RawMessage(`{"patient_id":"`+pid.String()+`","service_type":"admission","start_time":"`+tt.start+`"}`))
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(rec.StartTime), "start_time = %s", rec.StartTime)

			updated, err := svc.Update(ctx, rec.ID, json.RawMessage(`{"end_time":"`+tt.end+`","status":"completed"}`))
			require.NoError(t, err)
			require.NotNil(t, updated.DurationMinutes)
			assert.Equal(t, 5.0, *updated.DurationMinutes)
		})
	}

	svc, _, pid := newTestService()
	_, err := svc.Create(context.Background(), json.RawMessage(`{"patient_id":"`+pid.String()+`","service_type":"admission","start_time":"09/01/2025"}`))
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, err = svc.Create(context.Background(), json.RawMessage(`{"patient_id":"`+pid.String()+`","service_type":"admission","start_time":1736413200}`))
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestService_UpdatePolicy(t *testing.T) {
	svc, repo, pid := newTestService()
	ctx := context.Background()

	rec, err := svc.Create(ctx, createBody(pid, `,"status":"in_progress"`))
	require.NoError(t, err)

	_, err = svc.Update(ctx, rec.ID, json.RawMessage(`{"status":"pending"}`))
	assert.ErrorIs(t, err, apperr.ErrConflict)

	_, err = svc.Update(ctx, rec.ID, json.RawMessage(`{"status":"in_progress"}`))
	assert.NoError(t, err)

	_, err = svc.Update(ctx, rec.ID, json.RawMessage(`{"status":"cancelled"}`))
	require.NoError(t, err)

	_, err = svc.Update(ctx, rec.ID, json.RawMessage(`{"status":"completed"}`))
	assert.ErrorIs(t, err, apperr.ErrConflict)

	got, err := svc.Update(ctx, rec.ID, json.RawMessage(`{"notes":"patient left"}`))
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, got.Status)
	assert.Equal(t, "patient left", *got.Notes)

	stored, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "patient left", *stored.Notes)
}

func TestService_UpdateRefreshesUpdatedAt(t *testing.T) {
	svc, _, pid := newTestService()
	ctx := context.Background()
	created := time.Date(2025, 1, 9, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return created }

	rec, err := svc.Create(ctx, createBody(pid, ""))
	require.NoError(t, err)

	later := created.Add(10 * time.Minute)
	svc.now = func() time.Time { return later }
	got, err := svc.Update(ctx, rec.ID, json.RawMessage(`{}`))
	require.NoError(t, err)
	assert.Equal(t, later, got.UpdatedAt)
	assert.Equal(t, created, got.CreatedAt)
}

func TestService_UpdateErrors(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Update(ctx, uuid.New(), json.RawMessage(`{"notes":"x"}`))
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = svc.Update(ctx, uuid.New(), json.RawMessage(`{"status":"done"}`))
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestService_Lists(t *testing.T) {
	svc, _, pid := newTestService()
	ctx := context.Background()
	other := uuid.New()
	svc.patients = recordtest.Patients{pid: true, other: true}

	for i, p := range []uuid.UUID{pid, pid, other} {
		svc.now = func() time.Time { return time.Date(2025, 1, 9, 9, i, 0, 0, time.UTC) }
		_, err := svc.Create(ctx, createBody(p, ""))
		require.NoError(t, err)
	}

	mine, err := svc.ListByPatient(ctx, pid)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.True(t, mine[0].CreatedAt.After(mine[1].CreatedAt))

	byType, err := svc.ListByServiceType(ctx, "discharge")
	require.NoError(t, err)
	assert.Len(t, byType, 3)

	_, err = svc.ListByServiceType(ctx, "radiology")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	all, err := svc.SummarizeAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 7)
	assert.Equal(t, 3, all[4].PendingCases)
}

func TestService_Export(t *testing.T) {
	svc, _, pid := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, createBody(pid, `,"end_time":"2025-01-09T09:05:00Z","status":"completed","notes":"ok"`))
	require.NoError(t, err)
	_, err = svc.Create(ctx, createBody(pid, ""))
	require.NoError(t, err)

	data, err := svc.Export(ctx)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "Records"}, f.GetSheetList())

	rows, err := f.GetRows("Summary")
	require.NoError(t, err)
	require.Len(t, rows, 8)
	assert.Equal(t, "Service Type", rows[0][0])
	assert.Equal(t, "admission", rows[1][0])
	assert.Equal(t, "discharge", rows[5][0])
	assert.Equal(t, "2", rows[5][1])
	assert.Equal(t, "1", rows[5][2])
	assert.Equal(t, "5", rows[5][4])

	records, err := f.GetRows("Records")
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestHandler_CreateAndUpdate(t *testing.T) {
	svc, _, pid := newTestService()
	h := NewHandler(svc)
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(createBody(pid, "")))
	rec := httptest.NewRecorder()
	require.NoError(t, h.Create(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var created Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, StatusPending, created.Status)

	req = httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"end_time":"2025-01-09T09:01:30Z","status":"completed"}`))
	rec = httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(created.ID.String())
	require.NoError(t, h.Update(c))

	var updated Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.NotNil(t, updated.DurationMinutes)
	assert.Equal(t, 1.5, *updated.DurationMinutes)

	req = httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"status":"pending"}`))
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(created.ID.String())
	var he *echo.HTTPError
	require.ErrorAs(t, h.Update(c), &he)
	assert.Equal(t, http.StatusConflict, he.Code)
}

func TestHandler_ListEmptyIsArray(t *testing.T) {
	svc, _, pid := newTestService()
	h := NewHandler(svc)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(pid.String())
	require.NoError(t, h.ListByPatient(c))
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandler_ServiceTypeUnknown(t *testing.T) {
	svc, _, _ := newTestService()
	h := NewHandler(svc)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("type")
	c.SetParamValues("radiology")
	var he *echo.HTTPError
	require.ErrorAs(t, h.ListByServiceType(c), &he)
	assert.Equal(t, http.StatusUnprocessableEntity, he.Code)
}

func TestHandler_Export(t *testing.T) {
	svc, _, _ := newTestService()
	h := NewHandler(svc)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Export(e.NewContext(req, rec)))
	assert.Equal(t, reporting.ContentType, rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "tat-summary-")
	assert.NotEmpty(t, rec.Body.Bytes())
}
