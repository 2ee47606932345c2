package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Ayush-2302/deploy-gro/internal/domain/patient"
	"github.com/Ayush-2302/deploy-gro/internal/domain/patientfile"
)

const demoPatient = `{
	"name": "Rajesh Kumar Sharma",
	"age": 45,
	"gender": "Male",
	"mobile_no": "7976636359",
	"admitted_under_doctor": "Dr. Ravikant Porwal",
	"attender_name": "Pradeep Shihani",
	"relation": "Son",
	"attender_mobile_no": "7976636359",
	"aadhaar_number": "1234 5678 9012",
	"admission_date": "2025-01-09",
	"admission_time": "14:30",
	"ward": "Cardiology",
	"bed_number": "A-101",
	"reason": "Acute myocardial infarction"
}`

const demoSection1 = `{
	"patient_name": "Rajesh Kumar Sharma",
	"age": 45,
	"sex": "Male",
	"date_of_admission": "2025-01-09",
	"ward": "Cardiology",
	"bed_number": "A-101",
	"drug_hypersensitivity_allergy": "Penicillin allergy",
	"consultant": "Dr. Ravikant Porwal",
	"diagnosis": "Acute myocardial infarction",
	"diet": {"type": "Cardiac", "notes": "Low sodium, low fat diet"},
	"medication_orders": [{
		"date": "2025-01-09",
		"time": "10:00",
		"drug_name": "Aspirin",
		"strength": "75mg",
		"route": "Oral",
		"doctor_name_verbal_order": "Dr. Ravikant Porwal",
		"doctor_signature": "Dr. Ravikant Porwal",
		"verbal_order_taken_by": "Nurse Wilson",
		"time_of_administration": "10:15",
		"administered_by": "Nurse Wilson",
		"administration_witnessed_by": "Nurse Johnson"
	}]
}`

// seedDemoPatient creates the demo admission and its first patient-file
// section. Each run creates a new patient.
func seedDemoPatient(ctx context.Context, svc *services) (*patient.Patient, error) {
	p, err := svc.patients.Create(ctx, json.RawMessage(demoPatient))
	if err != nil {
		return nil, fmt.Errorf("create patient: %w", err)
	}

	d, ok := patientfile.Lookup(1)
	if !ok {
		return nil, fmt.Errorf("patient file section 1 is not registered")
	}
	if _, _, err := svc.files.UpsertSection(ctx, p.ID, d, json.RawMessage(demoSection1)); err != nil {
		return nil, fmt.Errorf("create section 1: %w", err)
	}
	return p, nil
}
