package tat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Ayush-2302/deploy-gro/internal/domain/record"
	"github.com/Ayush-2302/deploy-gro/internal/platform/apperr"
	"github.com/Ayush-2302/deploy-gro/internal/platform/db"
	"github.com/Ayush-2302/deploy-gro/internal/platform/reporting"
	"github.com/Ayush-2302/deploy-gro/internal/platform/telemetry"
)

// Service tracks turnaround times for hospital workflows.
type Service struct {
	repo     Repository
	patients record.PatientLookup
	tx       db.TxRunner
	metrics  *telemetry.Metrics
	now      func() time.Time
}

func NewService(repo Repository, patients record.PatientLookup, tx db.TxRunner, metrics *telemetry.Metrics) *Service {
	return &Service{
		repo:     repo,
		patients: patients,
		tx:       tx,
		metrics:  metrics,
		now:      time.Now,
	}
}

func decode(body json.RawMessage, v interface{ Validate() error }) error {
	if err := json.Unmarshal(body, v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return apperr.Validation("%s must be of type %s", typeErr.Field, typeErr.Type)
		}
		return apperr.Validation("invalid TAT document: %v", err)
	}
	return v.Validate()
}

// Create starts tracking a service episode. A record created with an end
// time gets its duration straight away.
func (s *Service) Create(ctx context.Context, body json.RawMessage) (*Record, error) {
	var req CreateRequest
	if err := decode(body, &req); err != nil {
		return nil, err
	}

	ok, err := s.patients.Exists(ctx, req.PatientID)
	if err != nil {
		return nil, fmt.Errorf("check patient: %w", err)
	}
	if !ok {
		return nil, apperr.NotFound("patient %s not found", req.PatientID)
	}

	now := s.now().UTC()
	rec := &Record{
		ID:          uuid.New(),
		PatientID:   req.PatientID,
		ServiceType: req.ServiceType,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Status:      req.Status,
		Notes:       req.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if rec.Status == "" {
		rec.Status = StatusPending
	}
	if rec.EndTime != nil {
		d := Duration(rec.StartTime, *rec.EndTime)
		rec.DurationMinutes = &d
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	s.metrics.TATTransition(string(rec.ServiceType), string(rec.Status))
	return rec, nil
}

// Update applies a sparse patch to a TAT record.
func (s *Service) Update(ctx context.Context, id uuid.UUID, body json.RawMessage) (*Record, error) {
	var patch UpdateRequest
	if err := decode(body, &patch); err != nil {
		return nil, err
	}

	var rec *Record
	var changed bool
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		var err error
		if rec, err = s.repo.GetForUpdate(ctx, id); err != nil {
			return err
		}
		before := rec.Status
		if err := Apply(rec, patch, s.now().UTC()); err != nil {
			return err
		}
		changed = rec.Status != before
		return s.repo.Update(ctx, rec)
	})
	if err != nil {
		return nil, err
	}
	if changed {
		s.metrics.TATTransition(string(rec.ServiceType), string(rec.Status))
	}
	return rec, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Record, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Record, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

func parseServiceType(raw string) (ServiceType, error) {
	st := ServiceType(raw)
	if !st.Valid() {
		return "", apperr.Validation("service_type %q is not a known service type", raw)
	}
	return st, nil
}

func (s *Service) ListByServiceType(ctx context.Context, raw string) ([]*Record, error) {
	st, err := parseServiceType(raw)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByServiceType(ctx, st)
}

// Summarize aggregates the records of a single service type.
func (s *Service) Summarize(ctx context.Context, raw string) (Summary, error) {
	st, err := parseServiceType(raw)
	if err != nil {
		return Summary{}, err
	}
	recs, err := s.repo.ListByServiceType(ctx, st)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(st, recs), nil
}

// SummarizeAll returns one summary row per service type.
func (s *Service) SummarizeAll(ctx context.Context) ([]Summary, error) {
	recs, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return SummarizeAll(recs), nil
}

// Export renders the summary and the raw records as an XLSX workbook.
func (s *Service) Export(ctx context.Context) ([]byte, error) {
	recs, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	summary := &reporting.Sheet{
		Name: "Summary",
		Headers: []string{
			"Service Type", "Total Cases", "Completed Cases", "Pending Cases",
			"Average (min)", "Min (min)", "Max (min)",
		},
		Widths: []float64{20, 12, 16, 14, 14, 12, 12},
	}
	for _, row := range SummarizeAll(recs) {
		summary.AddRow(string(row.ServiceType), row.TotalCases, row.CompletedCases, row.PendingCases,
			row.AverageDurationMinutes, row.MinDurationMinutes, row.MaxDurationMinutes)
	}

	records := &reporting.Sheet{
		Name: "Records",
		Headers: []string{
			"ID", "Patient ID", "Service Type", "Status", "Start Time", "End Time",
			"Duration (min)", "Notes",
		},
		Widths: []float64{38, 38, 20, 14, 22, 22, 14, 40},
	}
	for _, r := range recs {
		var end, duration, notes interface{}
		if r.EndTime != nil {
			end = r.EndTime.UTC().Format(time.RFC3339)
		}
		if r.DurationMinutes != nil {
			duration = *r.DurationMinutes
		}
		if r.Notes != nil {
			notes = *r.Notes
		}
		records.AddRow(r.ID.String(), r.PatientID.String(), string(r.ServiceType), string(r.Status),
			r.StartTime.UTC().Format(time.RFC3339), end, duration, notes)
	}

	return reporting.Render(summary, records)
}
