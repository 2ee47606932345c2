package patientfile

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"github.com/Ayush-2302/deploy-gro/internal/domain/record"
	"github.com/Ayush-2302/deploy-gro/internal/platform/apperr"
)

// Document is the free-form body of a generic patient-file entry.
type Document map[string]json.RawMessage

func (d Document) Validate() error { return nil }

// FileEntry is the request body of the generic patient-file endpoint.
type FileEntry struct {
	Section string   `json:"section"`
	Data    Document `json:"data"`
}

type Service struct {
	records *record.Resolver
}

func NewService(records *record.Resolver) *Service {
	return &Service{records: records}
}

// UpsertSection decodes body into the section's schema and replaces the
// stored section.
func (s *Service) UpsertSection(ctx context.Context, patientID uuid.UUID, d Descriptor, body json.RawMessage) (*record.Record, bool, error) {
	p := d.New()
	if err := record.DecodePayload(body, p); err != nil {
		return nil, false, err
	}
	if dv, ok := p.(deriver); ok {
		dv.derive()
	}
	return s.records.Upsert(ctx, patientID, d.Category, "", p)
}

func (s *Service) GetSection(ctx context.Context, patientID uuid.UUID, d Descriptor) (*record.Record, error) {
	return s.records.Get(ctx, patientID, d.Category, "")
}

func (s *Service) DeleteSection(ctx context.Context, patientID uuid.UUID, d Descriptor) error {
	return s.records.Delete(ctx, patientID, d.Category, "")
}

// DeleteAllSections removes the twelve fixed sections and nothing else.
func (s *Service) DeleteAllSections(ctx context.Context, patientID uuid.UUID) (int64, error) {
	if err := s.records.EnsurePatient(ctx, patientID); err != nil {
		return 0, err
	}
	return s.records.DeleteCategories(ctx, patientID, record.FileSections()...)
}

// UpsertFile merges entry.Data into the patient's entry for entry.Section.
func (s *Service) UpsertFile(ctx context.Context, patientID uuid.UUID, entry FileEntry) (*record.Record, bool, error) {
	section := strings.TrimSpace(entry.Section)
	var p apperr.Problems
	p.Require("section", section)
	p.MaxLen("section", section, record.MaxKeyLength)
	if entry.Data == nil {
		p.Add("data is required")
	}
	if err := p.Err(); err != nil {
		return nil, false, err
	}
	return s.records.Upsert(ctx, patientID, record.CategoryPatientFile, section, entry.Data,
		record.WithMerge(record.MergeObjects))
}

func (s *Service) ListFiles(ctx context.Context, patientID uuid.UUID) ([]*record.Record, error) {
	return s.records.List(ctx, patientID, record.CategoryPatientFile)
}

func (s *Service) GetFile(ctx context.Context, patientID uuid.UUID, section string) (*record.Record, error) {
	return s.records.Get(ctx, patientID, record.CategoryPatientFile, section)
}
