package clinical

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/Ayush-2302/deploy-gro/internal/domain/record"
)

type normalizer interface {
	normalize()
}

// Service covers the ward documents that sit beside the patient file:
// shift handovers, the discharge summary, doctor notes and operation records.
type Service struct {
	records *record.Resolver
}

func NewService(records *record.Resolver) *Service {
	return &Service{records: records}
}

func decode(body json.RawMessage, p record.Payload) error {
	if err := record.DecodePayload(body, p); err != nil {
		return err
	}
	if n, ok := p.(normalizer); ok {
		n.normalize()
	}
	return nil
}

// -- Handovers --

// UpsertHandover creates or updates the handover for body's shift_time.
// Sub-documents present in body replace the stored ones; absent ones are
// kept. A locked handover cannot be written.
func (s *Service) UpsertHandover(ctx context.Context, patientID uuid.UUID, body json.RawMessage) (*record.Record, bool, error) {
	var h Handover
	if err := decode(body, &h); err != nil {
		return nil, false, err
	}
	return s.records.Upsert(ctx, patientID, record.CategoryHandover, h.ShiftTime, &h,
		record.RejectLocked(), record.WithMerge(record.MergeObjects))
}

func (s *Service) ListHandovers(ctx context.Context, patientID uuid.UUID) ([]*record.Record, error) {
	return s.records.List(ctx, patientID, record.CategoryHandover)
}

// LockHandover marks a handover read-only. Repeated locks are no-ops.
func (s *Service) LockHandover(ctx context.Context, id uuid.UUID) (*record.Record, error) {
	return s.records.Lock(ctx, record.CategoryHandover, id)
}

// -- Discharge --

func (s *Service) UpsertDischarge(ctx context.Context, patientID uuid.UUID, body json.RawMessage) (*record.Record, bool, error) {
	var d Discharge
	if err := decode(body, &d); err != nil {
		return nil, false, err
	}
	return s.records.Upsert(ctx, patientID, record.CategoryDischarge, "", &d)
}

func (s *Service) GetDischarge(ctx context.Context, patientID uuid.UUID) (*record.Record, error) {
	return s.records.Get(ctx, patientID, record.CategoryDischarge, "")
}

// -- Doctor notes --

func (s *Service) AddNote(ctx context.Context, patientID uuid.UUID, body json.RawMessage) (*record.Record, error) {
	var n DoctorNote
	if err := decode(body, &n); err != nil {
		return nil, err
	}
	return s.records.Append(ctx, patientID, record.CategoryDoctorNote, &n)
}

func (s *Service) ListNotes(ctx context.Context, patientID uuid.UUID) ([]*record.Record, error) {
	return s.records.List(ctx, patientID, record.CategoryDoctorNote)
}

// -- Operation records --

func (s *Service) AddOperationRecord(ctx context.Context, patientID uuid.UUID, body json.RawMessage) (*record.Record, error) {
	var o OperationRecord
	if err := decode(body, &o); err != nil {
		return nil, err
	}
	return s.records.Append(ctx, patientID, record.CategoryOperationRecord, &o)
}

func (s *Service) ListOperationRecords(ctx context.Context, patientID uuid.UUID) ([]*record.Record, error) {
	return s.records.List(ctx, patientID, record.CategoryOperationRecord)
}

func (s *Service) GetOperationRecord(ctx context.Context, patientID, id uuid.UUID) (*record.Record, error) {
	return s.records.GetByID(ctx, patientID, record.CategoryOperationRecord, id)
}
