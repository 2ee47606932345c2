package tat

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, r *Record) error
	GetByID(ctx context.Context, id uuid.UUID) (*Record, error)
	// GetForUpdate reads the record and, inside a transaction, holds its row
	// lock until commit.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*Record, error)
	Update(ctx context.Context, r *Record) error
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Record, error)
	ListByServiceType(ctx context.Context, serviceType ServiceType) ([]*Record, error)
	ListAll(ctx context.Context) ([]*Record, error)
	DeleteByPatient(ctx context.Context, patientID uuid.UUID) (int64, error)
}
