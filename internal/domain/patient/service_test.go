package patient

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ayush-2302/deploy-gro/internal/domain/record"
	"github.com/Ayush-2302/deploy-gro/internal/domain/record/recordtest"
	"github.com/Ayush-2302/deploy-gro/internal/platform/apperr"
	"github.com/Ayush-2302/deploy-gro/internal/platform/db"
)

// -- in-memory mocks --

type mockRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*Patient
}

func newMockRepo() *mockRepo {
	return &mockRepo{rows: make(map[uuid.UUID]*Patient)}
}

func (m *mockRepo) Create(_ context.Context, p *Patient) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *p
	m.rows[p.ID] = &c
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok {
		return nil, apperr.NotFound("patient %s not found", id)
	}
	c := *p
	return &c, nil
}

func (m *mockRepo) Update(_ context.Context, p *Patient) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[p.ID]; !ok {
		return apperr.NotFound("patient %s not found", p.ID)
	}
	c := *p
	m.rows[p.ID] = &c
	return nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Patient, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []*Patient
	for _, p := range m.rows {
		c := *p
		all = append(all, &c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := len(all)
	if offset > total {
		offset = total
	}
	end := min(offset+limit, total)
	return all[offset:end], total, nil
}

func (m *mockRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.rows[id]
	return ok, nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return 0, nil
	}
	delete(m.rows, id)
	return 1, nil
}

type mockTAT struct {
	counts map[uuid.UUID]int64
	err    error
}

func (m *mockTAT) DeleteByPatient(_ context.Context, id uuid.UUID) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	n := m.counts[id]
	delete(m.counts, id)
	return n, nil
}

type fixture struct {
	repo    *mockRepo
	store   *recordtest.Store
	records *record.Resolver
	tat     *mockTAT
	svc     *Service
	cascade *Cascade
}

func newFixture() *fixture {
	repo := newMockRepo()
	store := recordtest.NewStore()
	records := record.NewResolver(store, repo, db.NoTx{}, nil)
	tat := &mockTAT{counts: map[uuid.UUID]int64{}}
	return &fixture{
		repo:    repo,
		store:   store,
		records: records,
		tat:     tat,
		svc:     NewService(repo, records),
		cascade: NewCascade(repo, records, tat, db.NoTx{}, zerolog.Nop()),
	}
}

const asha = `{"name":"Asha","age":42,"gender":"F","ward":"W2","mobile_no":"9876543210"}`

type doc map[string]interface{}

func (doc) Validate() error { return nil }

// -- Service tests --

func TestService_CreateAndGet(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	p, err := f.svc.Create(ctx, json.RawMessage(asha))
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, p.ID, "id is assigned")
	assert.Nil(t, p.UpdatedAt, "updated_at is unset on create")

	got, err := f.svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha", got.Name)
	assert.Equal(t, 42, got.Age)
	require.NotNil(t, got.MobileNo)
	assert.Equal(t, "9876543210", *got.MobileNo)
}

func TestService_CreateValidation(t *testing.T) {
	f := newFixture()
	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"age":4,"gender":"M"}`},
		{"missing age", `{"name":"x","gender":"M"}`},
		{"age too high", `{"name":"x","age":121,"gender":"M"}`},
		{"negative age", `{"name":"x","age":-1,"gender":"M"}`},
		{"age not a number", `{"name":"x","age":"forty","gender":"M"}`},
		{"missing gender", `{"name":"x","age":4}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(context.Background(), json.RawMessage(tt.body))
			assert.ErrorIs(t, err, apperr.ErrValidation)
		})
	}
}

func TestService_UpdateReplaces(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	p, err := f.svc.Create(ctx, json.RawMessage(asha))
	require.NoError(t, err)
	got, err := f.svc.Update(ctx, p.ID, json.RawMessage(`{"name":"Asha R","age":43,"gender":"F"}`))
	require.NoError(t, err)
	assert.Equal(t, "Asha R", got.Name)
	assert.Equal(t, 43, got.Age)
	assert.Nil(t, got.Ward, "omitted fields are cleared")
	assert.Nil(t, got.MobileNo, "omitted fields are cleared")
	assert.NotNil(t, got.UpdatedAt)
	assert.True(t, got.CreatedAt.Equal(p.CreatedAt), "created_at is preserved")

	_, err = f.svc.Update(ctx, uuid.New(), json.RawMessage(asha))
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestService_Timeline(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	p, _ := f.svc.Create(ctx, json.RawMessage(asha))

	tl, err := f.svc.Timeline(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, tl.Handovers)
	assert.Nil(t, tl.Discharge)

	_, _, err = f.records.Upsert(ctx, p.ID, record.CategoryHandover, "08:00", doc{"shift_time": "08:00"})
	require.NoError(t, err)
	_, _, err = f.records.Upsert(ctx, p.ID, record.CategoryDischarge, "", doc{"follow_up": "1 week"})
	require.NoError(t, err)

	tl, err = f.svc.Timeline(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, tl.Handovers, 1)
	assert.Equal(t, "08:00", tl.Handovers[0]["shift_time"])
	require.NotNil(t, tl.Discharge)
	assert.Equal(t, "1 week", tl.Discharge["follow_up"])

	_, err = f.svc.Timeline(ctx, uuid.New())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

// -- Cascade tests --

func seed(t *testing.T, f *fixture, id uuid.UUID) int64 {
	t.Helper()
	ctx := context.Background()
	var n int64
	for i := 1; i <= record.SectionCount; i += 3 {
		_, _, err := f.records.Upsert(ctx, id, record.Section(i), "", doc{})
		require.NoError(t, err)
		n++
	}
	for _, key := range []string{"notes", "vitals"} {
		_, _, err := f.records.Upsert(ctx, id, record.CategoryPatientFile, key, doc{})
		require.NoError(t, err)
		n++
	}
	_, _, err := f.records.Upsert(ctx, id, record.CategoryHandover, "08:00", doc{})
	require.NoError(t, err)
	_, _, err = f.records.Upsert(ctx, id, record.CategoryDischarge, "", doc{})
	require.NoError(t, err)
	n += 2
	for _, cat := range []record.Category{record.CategoryClaim, record.CategoryDoctorNote, record.CategoryDoctorNote, record.CategoryOperationRecord} {
		_, err := f.records.Append(ctx, id, cat, doc{})
		require.NoError(t, err)
		n++
	}
	f.tat.counts[id] = 3
	return n + 3
}

func TestCascade_DeletePatient(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	p, _ := f.svc.Create(ctx, json.RawMessage(asha))
	other, _ := f.svc.Create(ctx, json.RawMessage(asha))
	want := seed(t, f, p.ID)
	seed(t, f, other.ID)

	n, err := f.cascade.DeletePatient(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, want, n)

	ok, _ := f.repo.Exists(ctx, p.ID)
	assert.False(t, ok, "patient is gone")
	for _, cat := range dependents() {
		assert.Zero(t, f.store.Count(p.ID, cat), "%s rows", cat)
	}
	assert.NotContains(t, f.tat.counts, p.ID, "TAT records are purged")

	assert.Equal(t, 2, f.store.Count(other.ID, record.CategoryDoctorNote), "other patient's notes untouched")
	ok, _ = f.repo.Exists(ctx, other.ID)
	assert.True(t, ok, "other patient remains")
}

func TestCascade_BarePatient(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	p, _ := f.svc.Create(ctx, json.RawMessage(asha))
	n, err := f.cascade.DeletePatient(ctx, p.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCascade_NotFound(t *testing.T) {
	f := newFixture()
	_, err := f.cascade.DeletePatient(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCascade_StopsOnError(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	p, _ := f.svc.Create(ctx, json.RawMessage(asha))
	f.tat.err = errors.New("connection reset")

	_, err := f.cascade.DeletePatient(ctx, p.ID)
	require.Error(t, err)
	ok, _ := f.repo.Exists(ctx, p.ID)
	assert.True(t, ok, "patient row survives a failed cascade")
}

func TestDependents_Order(t *testing.T) {
	cats := dependents()
	require.Len(t, cats, record.SectionCount+6)
	assert.Equal(t, record.Section(1), cats[0])
	assert.Equal(t, record.Section(12), cats[11])
	assert.Equal(t, record.CategoryPatientFile, cats[12])
	assert.Equal(t, record.CategoryOperationRecord, cats[len(cats)-1])
}
