package record

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Category names a kind of patient-scoped document.
type Category string

const (
	CategoryPatientFile     Category = "patient_file"
	CategoryHandover        Category = "handover"
	CategoryDischarge       Category = "discharge"
	CategoryClaim           Category = "claim"
	CategoryDoctorNote      Category = "doctor_note"
	CategoryOperationRecord Category = "operation_record"
)

// MaxKeyLength bounds Record.Key, matching the record_key column.
const MaxKeyLength = 128

// SectionCount is the number of fixed patient-file sections.
const SectionCount = 12

// Section returns the category of patient-file section n (1-based).
func Section(n int) Category {
	return Category(fmt.Sprintf("patient_file_section%d", n))
}

// FileSections lists the twelve section categories in numeric order.
func FileSections() []Category {
	out := make([]Category, 0, SectionCount)
	for i := 1; i <= SectionCount; i++ {
		out = append(out, Section(i))
	}
	return out
}

// Record is one stored document. Single-instance categories use an empty
// Key; handovers key by shift time; repeatable categories key by ID.
type Record struct {
	ID        uuid.UUID       `json:"id"`
	PatientID uuid.UUID       `json:"patient_id"`
	Category  Category        `json:"category"`
	Key       string          `json:"-"`
	Data      json.RawMessage `json:"data"`
	Version   int             `json:"version"`
	LockedAt  *time.Time      `json:"locked_at,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Decode unmarshals the stored document into v.
func (r *Record) Decode(v interface{}) error {
	if err := json.Unmarshal(r.Data, v); err != nil {
		return fmt.Errorf("decode %s record %s: %w", r.Category, r.ID, err)
	}
	return nil
}

// ETag is a weak validator derived from the version counter.
func (r *Record) ETag() string {
	return fmt.Sprintf(`W/"%d"`, r.Version)
}
