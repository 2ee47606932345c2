package patient

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Ayush-2302/deploy-gro/internal/domain/record"
	"github.com/Ayush-2302/deploy-gro/internal/platform/apperr"
)

type Service struct {
	repo    Repository
	records *record.Resolver
	now     func() time.Time
}

func NewService(repo Repository, records *record.Resolver) *Service {
	return &Service{repo: repo, records: records, now: time.Now}
}

func decodeInput(body json.RawMessage) (*Input, error) {
	var in Input
	if err := record.DecodePayload(body, &in); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return &in, nil
}

func (s *Service) Create(ctx context.Context, body json.RawMessage) (*Patient, error) {
	in, err := decodeInput(body)
	if err != nil {
		return nil, err
	}
	p := &Patient{ID: uuid.New(), CreatedAt: s.now().UTC()}
	in.apply(p)
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

// Update replaces every writable field of the patient.
func (s *Service) Update(ctx context.Context, id uuid.UUID, body json.RawMessage) (*Patient, error) {
	in, err := decodeInput(body)
	if err != nil {
		return nil, err
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(p)
	now := s.now().UTC()
	p.UpdatedAt = &now
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// Exists satisfies record.PatientLookup.
func (s *Service) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.repo.Exists(ctx, id)
}

// Timeline is the patient with their handovers and discharge summary.
type Timeline struct {
	Patient   *Patient                 `json:"patient"`
	Handovers []map[string]interface{} `json:"handovers"`
	Discharge map[string]interface{}   `json:"discharge"`
}

func (s *Service) Timeline(ctx context.Context, id uuid.UUID) (*Timeline, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	handovers, err := s.records.List(ctx, id, record.CategoryHandover)
	if err != nil {
		return nil, err
	}
	t := &Timeline{Patient: p}
	if t.Handovers, err = record.FlattenAll(handovers); err != nil {
		return nil, err
	}

	discharge, err := s.records.Get(ctx, id, record.CategoryDischarge, "")
	switch {
	case errors.Is(err, apperr.ErrNotFound):
	case err != nil:
		return nil, err
	default:
		if t.Discharge, err = discharge.Flatten(); err != nil {
			return nil, err
		}
	}
	return t, nil
}
