package tat

import (
	"time"

	"github.com/google/uuid"

	"github.com/Ayush-2302/deploy-gro/internal/platform/apperr"
)

// ServiceType is the hospital workflow a TAT record measures.
type ServiceType string

const (
	ServiceAdmission       ServiceType = "admission"
	ServiceDoctorSlip      ServiceType = "doctor_slip"
	ServiceOperationRecord ServiceType = "operation_record"
	ServiceNurseHandover   ServiceType = "nurse_handover"
	ServiceDischarge       ServiceType = "discharge"
	ServiceClaims          ServiceType = "claims"
	ServicePatientFile     ServiceType = "patient_file"
)

var serviceTypes = []ServiceType{
	ServiceAdmission,
	ServiceDoctorSlip,
	ServiceOperationRecord,
	ServiceNurseHandover,
	ServiceDischarge,
	ServiceClaims,
	ServicePatientFile,
}

// ServiceTypes returns every service type in declaration order.
func ServiceTypes() []ServiceType {
	return append([]ServiceType(nil), serviceTypes...)
}

func (s ServiceType) Valid() bool {
	for _, t := range serviceTypes {
		if s == t {
			return true
		}
	}
	return false
}

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further status change is allowed.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Record is one timed service episode for a patient.
type Record struct {
	ID              uuid.UUID   `json:"id"`
	PatientID       uuid.UUID   `json:"patient_id"`
	ServiceType     ServiceType `json:"service_type"`
	StartTime       time.Time   `json:"start_time"`
	EndTime         *time.Time  `json:"end_time"`
	Status          Status      `json:"status"`
	DurationMinutes *float64    `json:"duration_minutes"`
	Notes           *string     `json:"notes"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

type CreateRequest struct {
	PatientID   uuid.UUID   `json:"patient_id"`
	ServiceType ServiceType `json:"service_type"`
	StartTime   time.Time   `json:"start_time"`
	EndTime     *time.Time  `json:"end_time"`
	Status      Status      `json:"status"`
	Notes       *string     `json:"notes"`
}

func (r *CreateRequest) Validate() error {
	var p apperr.Problems
	if r.PatientID == uuid.Nil {
		p.Add("patient_id is required")
	}
	if !r.ServiceType.Valid() {
		p.Add("service_type %q is not a known service type", r.ServiceType)
	}
	if r.StartTime.IsZero() {
		p.Add("start_time is required")
	}
	if r.Status != "" && !r.Status.Valid() {
		p.Add("status %q is not a known status", r.Status)
	}
	if r.EndTime != nil && !r.StartTime.IsZero() && r.EndTime.Before(r.StartTime) {
		p.Add("end_time must not be before start_time")
	}
	return p.Err()
}

// UpdateRequest is a sparse patch; nil fields are left unchanged.
type UpdateRequest struct {
	EndTime *time.Time `json:"end_time"`
	Status  *Status    `json:"status"`
	Notes   *string    `json:"notes"`
}

func (r *UpdateRequest) Validate() error {
	if r.Status != nil && !r.Status.Valid() {
		return apperr.Validation("status %q is not a known status", *r.Status)
	}
	return nil
}

// Summary aggregates the records of one service type.
type Summary struct {
	ServiceType            ServiceType `json:"service_type"`
	TotalCases             int         `json:"total_cases"`
	CompletedCases         int         `json:"completed_cases"`
	AverageDurationMinutes float64     `json:"average_duration_minutes"`
	MinDurationMinutes     float64     `json:"min_duration_minutes"`
	MaxDurationMinutes     float64     `json:"max_duration_minutes"`
	PendingCases           int         `json:"pending_cases"`
}
