package record

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store persists records under the unique (patient, category, key) triple.
type Store interface {
	Get(ctx context.Context, patientID uuid.UUID, category Category, key string) (*Record, error)
	// GetForUpdate is Get with a row lock held until the surrounding
	// transaction ends.
	GetForUpdate(ctx context.Context, patientID uuid.UUID, category Category, key string) (*Record, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Record, error)
	// List returns the patient's records of one category, newest first.
	List(ctx context.Context, patientID uuid.UUID, category Category) ([]*Record, error)
	// Save inserts r or, when a row with the same triple exists, replaces its
	// data and increments its version. r is filled from the stored row.
	Save(ctx context.Context, r *Record) (created bool, err error)
	// SetLock stamps locked_at unless it is already set.
	SetLock(ctx context.Context, id uuid.UUID, at time.Time) (*Record, error)
	DeleteKey(ctx context.Context, patientID uuid.UUID, category Category, key string) (int64, error)
	DeleteCategory(ctx context.Context, patientID uuid.UUID, category Category) (int64, error)
}

// PatientLookup reports whether a patient exists.
type PatientLookup interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
