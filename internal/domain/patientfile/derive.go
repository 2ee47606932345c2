package patientfile

import "math"

// deriver fills computed fields the client left empty.
type deriver interface {
	derive()
}

func (s *Section1) derive() {
	if s.MedicationOrders == nil {
		s.MedicationOrders = []MedicationOrder{}
	}
}

func (s *Section2) derive() {
	if s.CrossConsultations == nil {
		s.CrossConsultations = []CrossConsultation{}
	}
	if s.DischargeMedications == nil {
		s.DischargeMedications = []DischargeMedication{}
	}
}

func sum(vals ...*int) (int, bool) {
	total, seen := 0, false
	for _, v := range vals {
		if v != nil {
			total += *v
			seen = true
		}
	}
	return total, seen
}

func (s *Section9) derive() {
	if s.TotalIntake == nil {
		if t, ok := sum(s.IntakeOral, s.IntakeIVFluids, s.IntakeMedications, s.IntakeOtherAmount); ok {
			s.TotalIntake = &t
		}
	}
	if s.TotalOutput == nil {
		if t, ok := sum(s.OutputUrine, s.OutputVomitus, s.OutputDrainage, s.OutputOtherAmount); ok {
			s.TotalOutput = &t
		}
	}
	if s.NetBalance == nil && s.TotalIntake != nil && s.TotalOutput != nil {
		net := *s.TotalIntake - *s.TotalOutput
		s.NetBalance = &net
	}
}

func (s *Section10) derive() {
	if s.BMI != nil || s.Weight == nil || s.Height == nil || *s.Weight <= 0 || *s.Height <= 0 {
		return
	}
	m := *s.Height / 100
	bmi := math.Round(*s.Weight/(m*m)*10) / 10
	s.BMI = &bmi
}
