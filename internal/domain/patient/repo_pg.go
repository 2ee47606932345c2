package patient

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
	"github.com/Ayush-2302/deploy-gro/internal/platform/phi"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct {
	pool   *pgxpool.Pool
	cipher *phi.Cipher
}

// NewRepoPG returns a Postgres repository. A nil or key-less cipher stores
// PHI columns as plaintext.
func NewRepoPG(pool *pgxpool.Pool, cipher *phi.Cipher) Repository {
	return &repoPG{pool: pool, cipher: cipher}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const patientCols = `id, name, age, gender, uhid, ward, bed_no, bed_number,
	admission_date, admission_time, discharge_date, mobile_no, admitted_under_doctor,
	attender_name, relation, attender_mobile_no, aadhaar_number, reason,
	created_at, updated_at`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.Name, &p.Age, &p.Gender, &p.UHID, &p.Ward, &p.BedNo, &p.BedNumber,
		&p.AdmissionDate, &p.AdmissionTime, &p.DischargeDate, &p.MobileNo, &p.AdmittedUnderDoctor,
		&p.AttenderName, &p.Relation, &p.AttenderMobileNo, &p.AadhaarNumber, &p.Reason,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// sealed returns a copy of p with its PHI columns encrypted.
func (r *repoPG) sealed(p *Patient) (*Patient, error) {
	c := *p
	var err error
	if c.MobileNo, err = r.cipher.EncryptPtr(p.MobileNo); err != nil {
		return nil, err
	}
	if c.AttenderMobileNo, err = r.cipher.EncryptPtr(p.AttenderMobileNo); err != nil {
		return nil, err
	}
	if c.AadhaarNumber, err = r.cipher.EncryptPtr(p.AadhaarNumber); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repoPG) open(p *Patient) error {
	var err error
	if p.MobileNo, err = r.cipher.DecryptPtr(p.MobileNo); err != nil {
		return err
	}
	if p.AttenderMobileNo, err = r.cipher.DecryptPtr(p.AttenderMobileNo); err != nil {
		return err
	}
	if p.AadhaarNumber, err = r.cipher.DecryptPtr(p.AadhaarNumber); err != nil {
		return err
	}
	return nil
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	s, err := r.sealed(p)
	if err != nil {
		return fmt.Errorf("patient create: %w", err)
	}
	_, err = r.conn(ctx).Exec(ctx, `
		INSERT INTO patient (`+patientCols+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)`,
		s.ID, s.Name, s.Age, s.Gender, s.UHID, s.Ward, s.BedNo, s.BedNumber,
		s.AdmissionDate, s.AdmissionTime, s.DischargeDate, s.MobileNo, s.AdmittedUnderDoctor,
		s.AttenderName, s.Relation, s.AttenderMobileNo, s.AadhaarNumber, s.Reason,
		s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("patient create: %w", err)
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, err := scanPatient(r.conn(ctx).QueryRow(ctx, `SELECT `+patientCols+` FROM patient WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("patient %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	if err := r.open(p); err != nil {
		return nil, fmt.Errorf("patient get by id: %w", err)
	}
	return p, nil
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	s, err := r.sealed(p)
	if err != nil {
		return fmt.Errorf("patient update: %w", err)
	}
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient SET
			name=$2, age=$3, gender=$4, uhid=$5, ward=$6, bed_no=$7, bed_number=$8,
			admission_date=$9, admission_time=$10, discharge_date=$11, mobile_no=$12,
			admitted_under_doctor=$13, attender_name=$14, relation=$15, attender_mobile_no=$16,
			aadhaar_number=$17, reason=$18, updated_at=$19
		WHERE id = $1`,
		s.ID, s.Name, s.Age, s.Gender, s.UHID, s.Ward, s.BedNo, s.BedNumber,
		s.AdmissionDate, s.AdmissionTime, s.DischargeDate, s.MobileNo,
		s.AdmittedUnderDoctor, s.AttenderName, s.Relation, s.AttenderMobileNo,
		s.AadhaarNumber, s.Reason, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("patient update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("patient %s not found", p.ID)
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patient`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+patientCols+` FROM patient ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var patients []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		if err := r.open(p); err != nil {
			return nil, 0, fmt.Errorf("patient list: %w", err)
		}
		patients = append(patients, p)
	}
	return patients, total, rows.Err()
}

func (r *repoPG) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var ok bool
	err := r.conn(ctx).QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM patient WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM patient WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("patient delete: %w", err)
	}
	return tag.RowsAffected(), nil
}
