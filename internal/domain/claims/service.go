package claims

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/Ayush-2302/deploy-gro/internal/domain/record"
)

type Service struct {
	records *record.Resolver
}

func NewService(records *record.Resolver) *Service {
	return &Service{records: records}
}

func decodeRequest(body json.RawMessage) (*Request, error) {
	var req Request
	if err := record.DecodePayload(body, &req); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req.normalize()
	return &req, nil
}

// Validate scores a document set without storing anything.
func (s *Service) Validate(body json.RawMessage) (Readiness, error) {
	req, err := decodeRequest(body)
	if err != nil {
		return Readiness{}, err
	}
	return Score(req.Docs), nil
}

// Submit scores the documents and appends the claim to the patient's history.
func (s *Service) Submit(ctx context.Context, patientID uuid.UUID, body json.RawMessage) (*record.Record, error) {
	req, err := decodeRequest(body)
	if err != nil {
		return nil, err
	}
	c := &Claim{Scheme: req.Scheme, Docs: req.Docs, Readiness: Score(req.Docs)}
	return s.records.Append(ctx, patientID, record.CategoryClaim, c)
}

// List returns the patient's claims, newest first.
func (s *Service) List(ctx context.Context, patientID uuid.UUID) ([]*record.Record, error) {
	return s.records.List(ctx, patientID, record.CategoryClaim)
}
