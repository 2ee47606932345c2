package tat

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ayush-2302/deploy-gro/internal/platform/apperr"
	"github.com/Ayush-2302/deploy-gro/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const tatCols = `id, patient_id, service_type, start_time, end_time, status, duration_minutes, notes, created_at, updated_at`

func scanTAT(row pgx.Row) (*Record, error) {
	var t Record
	err := row.Scan(&t.ID, &t.PatientID, &t.ServiceType, &t.StartTime, &t.EndTime,
		&t.Status, &t.DurationMinutes, &t.Notes, &t.CreatedAt, &t.UpdatedAt)
	return &t, err
}

func (r *repoPG) Create(ctx context.Context, t *Record) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO tat_record (`+tatCols+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		t.ID, t.PatientID, t.ServiceType, t.StartTime, t.EndTime,
		t.Status, t.DurationMinutes, t.Notes, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert tat record: %w", err)
	}
	return nil
}

func (r *repoPG) get(ctx context.Context, id uuid.UUID, suffix string) (*Record, error) {
	t, err := scanTAT(r.conn(ctx).QueryRow(ctx,
		`SELECT `+tatCols+` FROM tat_record WHERE id = $1`+suffix, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("TAT record %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Record, error) {
	return r.get(ctx, id, "")
}

func (r *repoPG) GetForUpdate(ctx context.Context, id uuid.UUID) (*Record, error) {
	return r.get(ctx, id, " FOR UPDATE")
}

func (r *repoPG) Update(ctx context.Context, t *Record) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE tat_record SET end_time = $2, status = $3, duration_minutes = $4, notes = $5, updated_at = $6
		WHERE id = $1`,
		t.ID, t.EndTime, t.Status, t.DurationMinutes, t.Notes, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update tat record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("TAT record %s not found", t.ID)
	}
	return nil
}

func (r *repoPG) list(ctx context.Context, where string, args ...interface{}) ([]*Record, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+tatCols+` FROM tat_record `+where+` ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Record
	for rows.Next() {
		t, err := scanTAT(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Record, error) {
	return r.list(ctx, `WHERE patient_id = $1`, patientID)
}

func (r *repoPG) ListByServiceType(ctx context.Context, serviceType ServiceType) ([]*Record, error) {
	return r.list(ctx, `WHERE service_type = $1`, serviceType)
}

func (r *repoPG) ListAll(ctx context.Context) ([]*Record, error) {
	return r.list(ctx, "")
}

func (r *repoPG) DeleteByPatient(ctx context.Context, patientID uuid.UUID) (int64, error) {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM tat_record WHERE patient_id = $1`, patientID)
	if err != nil {
		return 0, fmt.Errorf("delete tat records: %w", err)
	}
	return tag.RowsAffected(), nil
}
