// Package recordtest provides in-memory implementations of the record
// package interfaces for tests.
package recordtest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Ayush-2302/deploy-gro/internal/domain/record"
	"github.com/Ayush-2302/deploy-gro/internal/platform/apperr"
)

type stored struct {
	rec *record.Record
	seq int
}

// Store is a map-backed record.Store.
type Store struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*stored
	seq  int
	// Saves counts calls to Save.
	Saves int
	// LockedReads counts calls to GetForUpdate.
	LockedReads int
}

func NewStore() *Store {
	return &Store{rows: make(map[uuid.UUID]*stored)}
}

func clone(r *record.Record) *record.Record {
	c := *r
	c.Data = append([]byte(nil), r.Data...)
	if r.LockedAt != nil {
		t := *r.LockedAt
		c.LockedAt = &t
	}
	return &c
}

func (s *Store) find(patientID uuid.UUID, category record.Category, key string) *stored {
	for _, row := range s.rows {
		r := row.rec
		if r.PatientID == patientID && r.Category == category && r.Key == key {
			return row
		}
	}
	return nil
}

func (s *Store) Get(_ context.Context, patientID uuid.UUID, category record.Category, key string) (*record.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := s.find(patientID, category, key)
	if row == nil {
		return nil, apperr.NotFound("%s not found", category)
	}
	return clone(row.rec), nil
}

// GetForUpdate behaves like Get; the store mutex already serializes callers.
func (s *Store) GetForUpdate(ctx context.Context, patientID uuid.UUID, category record.Category, key string) (*record.Record, error) {
	s.mu.Lock()
	s.LockedReads++
	s.mu.Unlock()
	return s.Get(ctx, patientID, category, key)
}

func (s *Store) GetByID(_ context.Context, id uuid.UUID) (*record.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[id]
	if !ok {
		return nil, apperr.NotFound("record %s not found", id)
	}
	return clone(row.rec), nil
}

func (s *Store) List(_ context.Context, patientID uuid.UUID, category record.Category) ([]*record.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var rows []*stored
	for _, row := range s.rows {
		if row.rec.PatientID == patientID && row.rec.Category == category {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].rec.CreatedAt.Equal(rows[j].rec.CreatedAt) {
			return rows[i].rec.CreatedAt.After(rows[j].rec.CreatedAt)
		}
		return rows[i].seq > rows[j].seq
	})
	out := make([]*record.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, clone(row.rec))
	}
	return out, nil
}

func (s *Store) Save(_ context.Context, r *record.Record) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Saves++
	if row := s.find(r.PatientID, r.Category, r.Key); row != nil {
		row.rec.Data = append([]byte(nil), r.Data...)
		row.rec.Version++
		row.rec.UpdatedAt = r.UpdatedAt
		*r = *clone(row.rec)
		return false, nil
	}
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	r.Version = 1
	r.CreatedAt = r.UpdatedAt
	s.seq++
	s.rows[r.ID] = &stored{rec: clone(r), seq: s.seq}
	return true, nil
}

func (s *Store) SetLock(_ context.Context, id uuid.UUID, at time.Time) (*record.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[id]
	if !ok {
		return nil, apperr.NotFound("record %s not found", id)
	}
	if row.rec.LockedAt == nil {
		row.rec.LockedAt = &at
	}
	return clone(row.rec), nil
}

func (s *Store) DeleteKey(_ context.Context, patientID uuid.UUID, category record.Category, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if row := s.find(patientID, category, key); row != nil {
		delete(s.rows, row.rec.ID)
		return 1, nil
	}
	return 0, nil
}

func (s *Store) DeleteCategory(_ context.Context, patientID uuid.UUID, category record.Category) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, row := range s.rows {
		if row.rec.PatientID == patientID && row.rec.Category == category {
			delete(s.rows, id)
			n++
		}
	}
	return n, nil
}

// Count returns how many records the patient has in category.
func (s *Store) Count(patientID uuid.UUID, category record.Category) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, row := range s.rows {
		if row.rec.PatientID == patientID && row.rec.Category == category {
			n++
		}
	}
	return n
}

// Patients is a set-backed record.PatientLookup.
type Patients map[uuid.UUID]bool

func (p Patients) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	return p[id], nil
}
