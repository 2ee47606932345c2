package record

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Ayush-2302/deploy-gro/internal/platform/apperr"
	"github.com/Ayush-2302/deploy-gro/internal/platform/db"
	"github.com/Ayush-2302/deploy-gro/internal/platform/telemetry"
)

// Payload is a typed category document.
type Payload interface {
	Validate() error
}

// MergeFunc combines the stored document with an incoming one.
type MergeFunc func(existing, incoming json.RawMessage) (json.RawMessage, error)

type upsertOptions struct {
	merge        MergeFunc
	rejectLocked bool
}

type Option func(*upsertOptions)

// WithMerge folds the incoming document into the stored one instead of
// replacing it.
func WithMerge(fn MergeFunc) Option {
	return func(o *upsertOptions) { o.merge = fn }
}

// RejectLocked refuses to overwrite a record whose locked_at is set.
func RejectLocked() Option {
	return func(o *upsertOptions) { o.rejectLocked = true }
}

// Resolver implements create-or-replace for patient-scoped documents.
type Resolver struct {
	store    Store
	patients PatientLookup
	tx       db.TxRunner
	metrics  *telemetry.Metrics
	now      func() time.Time
}

func NewResolver(store Store, patients PatientLookup, tx db.TxRunner, metrics *telemetry.Metrics) *Resolver {
	return &Resolver{
		store:    store,
		patients: patients,
		tx:       tx,
		metrics:  metrics,
		now:      time.Now,
	}
}

func (r *Resolver) ensurePatient(ctx context.Context, patientID uuid.UUID) error {
	ok, err := r.patients.Exists(ctx, patientID)
	if err != nil {
		return fmt.Errorf("check patient: %w", err)
	}
	if !ok {
		return apperr.NotFound("patient %s not found", patientID)
	}
	return nil
}

func validate(p Payload) error {
	if err := p.Validate(); err != nil {
		if errors.Is(err, apperr.ErrValidation) {
			return err
		}
		return apperr.Validation("%v", err)
	}
	return nil
}

// Upsert stores payload under (patientID, category, key). The first write
// creates the record at version 1; later writes replace (or merge into) the
// data and bump the version. Exactly one row is written per call.
func (r *Resolver) Upsert(ctx context.Context, patientID uuid.UUID, category Category, key string, payload Payload, opts ...Option) (*Record, bool, error) {
	var o upsertOptions
	for _, opt := range opts {
		opt(&o)
	}

	if err := validate(payload); err != nil {
		return nil, false, err
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, false, fmt.Errorf("encode %s: %w", category, err)
	}

	rec := &Record{PatientID: patientID, Category: category, Key: key}
	var created bool
	err = r.tx.InTx(ctx, func(ctx context.Context) error {
		if err := r.ensurePatient(ctx, patientID); err != nil {
			return err
		}
		if o.merge != nil || o.rejectLocked {
			get := r.store.Get
			if o.rejectLocked {
				// Hold the row so a concurrent Lock cannot land between the
				// check and the write.
				get = r.store.GetForUpdate
			}
			existing, err := get(ctx, patientID, category, key)
			switch {
			case errors.Is(err, apperr.ErrNotFound):
			case err != nil:
				return err
			default:
				if o.rejectLocked && existing.LockedAt != nil {
					return apperr.Conflict("%s %s is locked", category, existing.ID)
				}
				if o.merge != nil {
					if data, err = o.merge(existing.Data, data); err != nil {
						return err
					}
				}
			}
		}
		rec.Data = data
		rec.UpdatedAt = r.now().UTC()
		created, err = r.store.Save(ctx, rec)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	r.metrics.RecordUpsert(string(category), created)
	return rec, created, nil
}

// Append stores payload as a new record of a repeatable category.
func (r *Resolver) Append(ctx context.Context, patientID uuid.UUID, category Category, payload Payload) (*Record, error) {
	if err := validate(payload); err != nil {
		return nil, err
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", category, err)
	}

	id := uuid.New()
	rec := &Record{ID: id, PatientID: patientID, Category: category, Key: id.String(), Data: data}
	err = r.tx.InTx(ctx, func(ctx context.Context) error {
		if err := r.ensurePatient(ctx, patientID); err != nil {
			return err
		}
		rec.UpdatedAt = r.now().UTC()
		_, err := r.store.Save(ctx, rec)
		return err
	})
	if err != nil {
		return nil, err
	}
	r.metrics.RecordUpsert(string(category), true)
	return rec, nil
}

func (r *Resolver) Get(ctx context.Context, patientID uuid.UUID, category Category, key string) (*Record, error) {
	return r.store.Get(ctx, patientID, category, key)
}

// GetByID returns a record by id, checking that it belongs to patientID and
// category.
func (r *Resolver) GetByID(ctx context.Context, patientID uuid.UUID, category Category, id uuid.UUID) (*Record, error) {
	rec, err := r.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.PatientID != patientID || rec.Category != category {
		return nil, apperr.NotFound("%s %s not found", category, id)
	}
	return rec, nil
}

func (r *Resolver) List(ctx context.Context, patientID uuid.UUID, category Category) ([]*Record, error) {
	return r.store.List(ctx, patientID, category)
}

// Lock stamps locked_at on a record of category. Locking twice keeps the
// first timestamp.
func (r *Resolver) Lock(ctx context.Context, category Category, id uuid.UUID) (*Record, error) {
	rec, err := r.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.Category != category {
		return nil, apperr.NotFound("%s %s not found", category, id)
	}
	if rec.LockedAt != nil {
		return rec, nil
	}
	return r.store.SetLock(ctx, id, r.now().UTC())
}

// Delete removes a single keyed record. A missing record is NotFound.
func (r *Resolver) Delete(ctx context.Context, patientID uuid.UUID, category Category, key string) error {
	n, err := r.store.DeleteKey(ctx, patientID, category, key)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound("%s not found", category)
	}
	r.metrics.RecordDeletes(string(category), n)
	return nil
}

// DeleteCategories removes every record of the given categories in order
// and returns the total removed. Missing records are not an error.
func (r *Resolver) DeleteCategories(ctx context.Context, patientID uuid.UUID, categories ...Category) (int64, error) {
	var total int64
	err := r.tx.InTx(ctx, func(ctx context.Context) error {
		for _, c := range categories {
			n, err := r.store.DeleteCategory(ctx, patientID, c)
			if err != nil {
				return fmt.Errorf("delete %s: %w", c, err)
			}
			r.metrics.RecordDeletes(string(c), n)
			total += n
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// EnsurePatient returns NotFound when the patient does not exist.
func (r *Resolver) EnsurePatient(ctx context.Context, patientID uuid.UUID) error {
	return r.ensurePatient(ctx, patientID)
}
