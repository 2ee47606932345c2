package clinical

import (
	"github.com/Ayush-2302/deploy-gro/internal/domain/record"
	"github.com/Ayush-2302/deploy-gro/internal/platform/apperr"
)

// -- Handover --

type Vitals struct {
	BP   string `json:"bp"`
	HR   *int   `json:"hr"`
	Temp string `json:"temp"`
	SpO2 *int   `json:"spo2"`
}

type Outgoing struct {
	Status                string   `json:"status"`
	Vitals                *Vitals  `json:"vitals"`
	MedsGiven             []string `json:"meds_given"`
	MedsDue               []string `json:"meds_due"`
	PendingInvestigations []string `json:"pending_investigations"`
	Signature             *string  `json:"signature,omitempty"`
}

type Incoming struct {
	Verification               string  `json:"verification"`
	MedsVerification           string  `json:"meds_verification"`
	InvestigationsVerification string  `json:"investigations_verification"`
	Acknowledgement            string  `json:"acknowledgement"`
	Signature                  *string `json:"signature,omitempty"`
}

type Incharge struct {
	Verification                   string  `json:"verification"`
	MedsInvestigationsConfirmation string  `json:"meds_investigations_confirmation"`
	AuditLog                       string  `json:"audit_log"`
	Signature                      *string `json:"signature,omitempty"`
}

type Summary struct {
	Text string `json:"text"`
}

// Handover is a nursing shift handover. Each stage is filled in by a
// different nurse, so every sub-document is optional.
type Handover struct {
	ShiftTime string    `json:"shift_time"`
	Outgoing  *Outgoing `json:"outgoing,omitempty"`
	Incoming  *Incoming `json:"incoming,omitempty"`
	Incharge  *Incharge `json:"incharge,omitempty"`
	Summary   *Summary  `json:"summary,omitempty"`
}

func (h *Handover) Validate() error {
	var p apperr.Problems
	p.Require("shift_time", h.ShiftTime)
	p.MaxLen("shift_time", h.ShiftTime, record.MaxKeyLength)
	if o := h.Outgoing; o != nil {
		p.Require("outgoing.status", o.Status)
		if o.Vitals == nil {
			p.Add("outgoing.vitals is required")
		} else {
			p.Require("outgoing.vitals.bp", o.Vitals.BP)
			p.Require("outgoing.vitals.temp", o.Vitals.Temp)
			if o.Vitals.HR == nil {
				p.Add("outgoing.vitals.hr is required")
			}
			if o.Vitals.SpO2 == nil {
				p.Add("outgoing.vitals.spo2 is required")
			}
			p.Range("outgoing.vitals.hr", o.Vitals.HR, 0, 300)
			p.Range("outgoing.vitals.spo2", o.Vitals.SpO2, 0, 100)
		}
	}
	if in := h.Incoming; in != nil {
		p.Require("incoming.verification", in.Verification)
		p.Require("incoming.meds_verification", in.MedsVerification)
		p.Require("incoming.investigations_verification", in.InvestigationsVerification)
		p.Require("incoming.acknowledgement", in.Acknowledgement)
	}
	if ic := h.Incharge; ic != nil {
		p.Require("incharge.verification", ic.Verification)
		p.Require("incharge.meds_investigations_confirmation", ic.MedsInvestigationsConfirmation)
		p.Require("incharge.audit_log", ic.AuditLog)
	}
	if h.Summary != nil {
		p.Require("summary.text", h.Summary.Text)
	}
	return p.Err()
}

func (h *Handover) normalize() {
	if o := h.Outgoing; o != nil {
		if o.MedsGiven == nil {
			o.MedsGiven = []string{}
		}
		if o.MedsDue == nil {
			o.MedsDue = []string{}
		}
		if o.PendingInvestigations == nil {
			o.PendingInvestigations = []string{}
		}
	}
}

// -- Discharge --

type Discharge struct {
	TreatingClinician    *string  `json:"treating_clinician,omitempty"`
	Diagnosis            []string `json:"diagnosis"`
	ChiefComplaints      []string `json:"chief_complaints"`
	PastHistory          *string  `json:"past_history,omitempty"`
	PhysicalExam         *string  `json:"physical_exam,omitempty"`
	Investigations       []string `json:"investigations"`
	Procedures           []string `json:"procedures"`
	Course               *string  `json:"course,omitempty"`
	OperativeFindings    *string  `json:"operative_findings,omitempty"`
	TreatmentGiven       *string  `json:"treatment_given,omitempty"`
	TreatmentOnDischarge *string  `json:"treatment_on_discharge,omitempty"`
	FollowUp             *string  `json:"follow_up,omitempty"`
}

func (d *Discharge) Validate() error { return nil }

func (d *Discharge) normalize() {
	for _, l := range []*[]string{&d.Diagnosis, &d.ChiefComplaints, &d.Investigations, &d.Procedures} {
		if *l == nil {
			*l = []string{}
		}
	}
}

// -- Doctor note --

type DoctorNote struct {
	ChiefComplaint *string  `json:"chief_complaint,omitempty"`
	HPI            *string  `json:"hpi,omitempty"`
	PhysicalExam   *string  `json:"physical_exam,omitempty"`
	Diagnosis      []string `json:"diagnosis"`
	Orders         []string `json:"orders"`
	Prescriptions  []string `json:"prescriptions"`
	Advice         *string  `json:"advice,omitempty"`
}

func (n *DoctorNote) Validate() error { return nil }

func (n *DoctorNote) normalize() {
	for _, l := range []*[]string{&n.Diagnosis, &n.Orders, &n.Prescriptions} {
		if *l == nil {
			*l = []string{}
		}
	}
}

// -- Operation record --

// OperationRecord is the surgical record form. Every field is mandatory.
type OperationRecord struct {
	HospitalName                   string `json:"hospital_name"`
	PatientName                    string `json:"patient_name"`
	UHID                           string `json:"uhid"`
	Age                            string `json:"age"`
	Gender                         string `json:"gender"`
	Ward                           string `json:"ward"`
	BedNo                          string `json:"bed_no"`
	DateOfSurgery                  string `json:"date_of_surgery"`
	TimeOfSurgery                  string `json:"time_of_surgery"`
	PreOperativeDiagnosis          string `json:"pre_operative_diagnosis"`
	PostOperativeDiagnosis         string `json:"post_operative_diagnosis"`
	PlannedProcedure               string `json:"planned_procedure"`
	ProcedurePerformed             string `json:"procedure_performed"`
	Surgeons                       string `json:"surgeons"`
	Assistants                     string `json:"assistants"`
	Anaesthesiologist              string `json:"anaesthesiologist"`
	TypeOfAnaesthesia              string `json:"type_of_anaesthesia"`
	AnaesthesiaMedications         string `json:"anaesthesia_medications"`
	PreOperativeAssessmentComplete *bool  `json:"pre_operative_assessment_completed"`
	InformedConsentObtained        *bool  `json:"informed_consent_obtained"`
	OperativeFindings              string `json:"operative_findings"`
	SpecimensRemoved               string `json:"specimens_removed"`
	EstimatedBloodLoss             string `json:"estimated_blood_loss"`
	BloodIVFluidsGiven             string `json:"blood_iv_fluids_given"`
	IntraOperativeEvents           string `json:"intra_operative_events"`
	InstrumentCountVerified        *bool  `json:"instrument_count_verified"`
	PostOperativePlan              string `json:"post_operative_plan"`
	PatientConditionOnTransfer     string `json:"patient_condition_on_transfer"`
	TransferredTo                  string `json:"transferred_to"`
	SurgeonSignature               string `json:"surgeon_signature"`
	AnaesthesiologistSignature     string `json:"anaesthesiologist_signature"`
	NursingStaffSignature          string `json:"nursing_staff_signature"`
}

func (o *OperationRecord) Validate() error {
	var p apperr.Problems
	for _, f := range []struct {
		name  string
		value string
	}{
		{"hospital_name", o.HospitalName},
		{"patient_name", o.PatientName},
		{"uhid", o.UHID},
		{"age", o.Age},
		{"gender", o.Gender},
		{"ward", o.Ward},
		{"bed_no", o.BedNo},
		{"date_of_surgery", o.DateOfSurgery},
		{"time_of_surgery", o.TimeOfSurgery},
		{"pre_operative_diagnosis", o.PreOperativeDiagnosis},
		{"post_operative_diagnosis", o.PostOperativeDiagnosis},
		{"planned_procedure", o.PlannedProcedure},
		{"procedure_performed", o.ProcedurePerformed},
		{"surgeons", o.Surgeons},
		{"assistants", o.Assistants},
		{"anaesthesiologist", o.Anaesthesiologist},
		{"type_of_anaesthesia", o.TypeOfAnaesthesia},
		{"anaesthesia_medications", o.AnaesthesiaMedications},
		{"operative_findings", o.OperativeFindings},
		{"specimens_removed", o.SpecimensRemoved},
		{"estimated_blood_loss", o.EstimatedBloodLoss},
		{"blood_iv_fluids_given", o.BloodIVFluidsGiven},
		{"intra_operative_events", o.IntraOperativeEvents},
		{"post_operative_plan", o.PostOperativePlan},
		{"patient_condition_on_transfer", o.PatientConditionOnTransfer},
		{"transferred_to", o.TransferredTo},
		{"surgeon_signature", o.SurgeonSignature},
		{"anaesthesiologist_signature", o.AnaesthesiologistSignature},
		{"nursing_staff_signature", o.NursingStaffSignature},
	} {
		p.Require(f.name, f.value)
	}
	for _, f := range []struct {
		name  string
		value *bool
	}{
		{"pre_operative_assessment_completed", o.PreOperativeAssessmentComplete},
		{"informed_consent_obtained", o.InformedConsentObtained},
		{"instrument_count_verified", o.InstrumentCountVerified},
	} {
		if f.value == nil {
			p.Add("%s is required", f.name)
		}
	}
	return p.Err()
}
