package record

import (
	"context"
	"errors"
	"time"

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

type storePG struct{ pool *pgxpool.Pool }

func NewStorePG(pool *pgxpool.Pool) Store {
	return &storePG{pool: pool}
}

func (s *storePG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return s.pool
}

const recordCols = `id, patient_id, category, record_key, data, version, locked_at, created_at, updated_at`

func scanRecord(row pgx.Row) (*Record, error) {
	var r Record
	var data []byte
	err := row.Scan(&r.ID, &r.PatientID, &r.Category, &r.Key, &data, &r.Version, &r.LockedAt, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	r.Data = data
	return &r, nil
}

func notFound(err error, format string, args ...interface{}) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(format, args...)
	}
	return err
}

func (s *storePG) Get(ctx context.Context, patientID uuid.UUID, category Category, key string) (*Record, error) {
	r, err := scanRecord(s.conn(ctx).QueryRow(ctx, `
		SELECT `+recordCols+` FROM patient_record
		WHERE patient_id = $1 AND category = $2 AND record_key = $3`,
		patientID, category, key))
	if err != nil {
		return nil, notFound(err, "%s not found", category)
	}
	return r, nil
}

func (s *storePG) GetForUpdate(ctx context.Context, patientID uuid.UUID, category Category, key string) (*Record, error) {
	r, err := scanRecord(s.conn(ctx).QueryRow(ctx, `
		SELECT `+recordCols+` FROM patient_record
		WHERE patient_id = $1 AND category = $2 AND record_key = $3
		FOR UPDATE`,
		patientID, category, key))
	if err != nil {
		return nil, notFound(err, "%s not found", category)
	}
	return r, nil
}

func (s *storePG) GetByID(ctx context.Context, id uuid.UUID) (*Record, error) {
	r, err := scanRecord(s.conn(ctx).QueryRow(ctx, `SELECT `+recordCols+` FROM patient_record WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, "record %s not found", id)
	}
	return r, nil
}

func (s *storePG) List(ctx context.Context, patientID uuid.UUID, category Category) ([]*Record, error) {
	rows, err := s.conn(ctx).Query(ctx, `
		SELECT `+recordCols+` FROM patient_record
		WHERE patient_id = $1 AND category = $2
		ORDER BY created_at DESC, id`,
		patientID, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

// Save relies on the unique triple so that concurrent writers of the same
// key converge on one row; xmax = 0 only for freshly inserted tuples.
func (s *storePG) Save(ctx context.Context, r *Record) (bool, error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	var created bool
	var data []byte
	err := s.conn(ctx).QueryRow(ctx, `
		INSERT INTO patient_record (id, patient_id, category, record_key, data, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, 1, $6, $6)
		ON CONFLICT (patient_id, category, record_key) DO UPDATE
		SET data = EXCLUDED.data,
		    version = patient_record.version + 1,
		    updated_at = EXCLUDED.updated_at
		RETURNING id, data, version, locked_at, created_at, updated_at, (xmax = 0)`,
		r.ID, r.PatientID, r.Category, r.Key, []byte(r.Data), r.UpdatedAt,
	).Scan(&r.ID, &data, &r.Version, &r.LockedAt, &r.CreatedAt, &r.UpdatedAt, &created)
	if err != nil {
		return false, err
	}
	r.Data = data
	return created, nil
}

func (s *storePG) SetLock(ctx context.Context, id uuid.UUID, at time.Time) (*Record, error) {
	r, err := scanRecord(s.conn(ctx).QueryRow(ctx, `
		UPDATE patient_record SET locked_at = COALESCE(locked_at, $2)
		WHERE id = $1
		RETURNING `+recordCols, id, at))
	if err != nil {
		return nil, notFound(err, "record %s not found", id)
	}
	return r, nil
}

func (s *storePG) DeleteKey(ctx context.Context, patientID uuid.UUID, category Category, key string) (int64, error) {
	tag, err := s.conn(ctx).Exec(ctx, `
		DELETE FROM patient_record WHERE patient_id = $1 AND category = $2 AND record_key = $3`,
		patientID, category, key)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (s *storePG) DeleteCategory(ctx context.Context, patientID uuid.UUID, category Category) (int64, error) {
	tag, err := s.conn(ctx).Exec(ctx, `DELETE FROM patient_record WHERE patient_id = $1 AND category = $2`, patientID, category)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
