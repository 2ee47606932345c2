package patientfile

import (
	"fmt"
	"math"

	"github.com/Ayush-2302/deploy-gro/internal/platform/apperr"
)

const (
	maxAge  = 120
	maxPain = 10
)

func nonNegative(p *apperr.Problems, field string, v *int) {
	if v != nil && *v < 0 {
		p.Add("%s must not be negative", field)
	}
}

func nonNegativeFloat(p *apperr.Problems, field string, v *float64) {
	if v != nil && (*v < 0 || math.IsNaN(*v)) {
		p.Add("%s must not be negative", field)
	}
}

func requireInt(p *apperr.Problems, field string, v *int, lo, hi int) {
	if v == nil {
		p.Add("%s is required", field)
		return
	}
	p.Range(field, v, lo, hi)
}

func (s *Section1) Validate() error {
	var p apperr.Problems
	p.Require("patient_name", s.PatientName)
	requireInt(&p, "age", s.Age, 0, maxAge)
	p.Require("sex", s.Sex)
	p.Require("date_of_admission", s.DateOfAdmission)
	p.Require("ward", s.Ward)
	p.Require("bed_number", s.BedNumber)
	if s.Diet != nil {
		p.Require("diet.type", s.Diet.Type)
	}
	for i, o := range s.MedicationOrders {
		f := func(name string) string { return fmt.Sprintf("medication_orders[%d].%s", i, name) }
		p.Require(f("date"), o.Date)
		p.Require(f("time"), o.Time)
		p.Require(f("drug_name"), o.DrugName)
		p.Require(f("strength"), o.Strength)
		p.Require(f("route"), o.Route)
		p.Require(f("doctor_name_verbal_order"), o.DoctorNameVerbalOrder)
		p.Require(f("doctor_signature"), o.DoctorSignature)
		p.Require(f("verbal_order_taken_by"), o.VerbalOrderTakenBy)
		p.Require(f("time_of_administration"), o.TimeOfAdministration)
		p.Require(f("administered_by"), o.AdministeredBy)
		p.Require(f("administration_witnessed_by"), o.AdministrationWitnessedBy)
	}
	return p.Err()
}

func (s *Section2) Validate() error {
	var p apperr.Problems
	p.Require("hospital_number", s.HospitalNumber)
	p.Require("name", s.Name)
	requireInt(&p, "age", s.Age, 0, maxAge)
	p.Require("sex", s.Sex)
	p.Range("nursing_pain_score", s.NursingPainScore, 0, maxPain)
	p.Range("discharge_pain_score", s.DischargePainScore, 0, maxPain)
	for i, c := range s.CrossConsultations {
		p.Require(fmt.Sprintf("cross_consultations[%d].doctor_name", i), c.DoctorName)
		p.Require(fmt.Sprintf("cross_consultations[%d].department", i), c.Department)
	}
	for i, m := range s.DischargeMedications {
		f := func(name string) string { return fmt.Sprintf("discharge_medications[%d].%s", i, name) }
		if m.SlNo == nil {
			p.Add("%s is required", f("sl_no"))
		}
		p.Require(f("name"), m.Name)
		p.Require(f("dose"), m.Dose)
		p.Require(f("frequency"), m.Frequency)
		p.Require(f("duration"), m.Duration)
	}
	return p.Err()
}

func (s *Section3) Validate() error {
	var p apperr.Problems
	p.Range("pain_vas_score", s.PainVASScore, 0, maxPain)
	return p.Err()
}

func (s *Section4) Validate() error { return nil }

func (s *Section5) Validate() error {
	var p apperr.Problems
	p.Range("pain_score", s.PainScore, 0, maxPain)
	return p.Err()
}

func (s *Section6) Validate() error {
	var p apperr.Problems
	p.Range("discharge_pain_score", s.DischargePainScore, 0, maxPain)
	return p.Err()
}

func (s *Section7) Validate() error { return nil }

func (s *Section8) Validate() error { return nil }

func (s *Section9) Validate() error {
	var p apperr.Problems
	nonNegative(&p, "intake_oral", s.IntakeOral)
	nonNegative(&p, "intake_iv_fluids", s.IntakeIVFluids)
	nonNegative(&p, "intake_medications", s.IntakeMedications)
	nonNegative(&p, "intake_other_amount", s.IntakeOtherAmount)
	nonNegative(&p, "output_urine", s.OutputUrine)
	nonNegative(&p, "output_vomitus", s.OutputVomitus)
	nonNegative(&p, "output_drainage", s.OutputDrainage)
	nonNegative(&p, "output_other_amount", s.OutputOtherAmount)
	nonNegative(&p, "total_intake", s.TotalIntake)
	nonNegative(&p, "total_output", s.TotalOutput)
	return p.Err()
}

func (s *Section10) Validate() error {
	var p apperr.Problems
	p.Range("age", s.Age, 0, maxAge)
	nonNegativeFloat(&p, "weight", s.Weight)
	nonNegativeFloat(&p, "height", s.Height)
	nonNegativeFloat(&p, "bmi", s.BMI)
	nonNegativeFloat(&p, "weight_loss_amount", s.WeightLossAmount)
	return p.Err()
}

func (s *Section11) Validate() error {
	var p apperr.Problems
	p.Range("patient_age", s.PatientAge, 0, maxAge)
	nonNegativeFloat(&p, "weight_kg", s.WeightKg)
	nonNegativeFloat(&p, "height_cm", s.HeightCm)
	nonNegativeFloat(&p, "muac_cm", s.MUACCm)
	nonNegativeFloat(&p, "skinfold_thickness", s.SkinfoldThickness)
	return p.Err()
}

func (s *Section12) Validate() error {
	var p apperr.Problems
	p.Range("age", s.Age, 0, maxAge)
	return p.Err()
}
