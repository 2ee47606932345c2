package patientfile

// DietInfo is the admission diet order.
type DietInfo struct {
	Type  string  `json:"type"`
	Notes *string `json:"notes,omitempty"`
}

type MedicationOrder struct {
	Date                      string `json:"date"`
	Time                      string `json:"time"`
	DrugName                  string `json:"drug_name"`
	Strength                  string `json:"strength"`
	Route                     string `json:"route"`
	DoctorNameVerbalOrder     string `json:"doctor_name_verbal_order"`
	DoctorSignature           string `json:"doctor_signature"`
	VerbalOrderTakenBy        string `json:"verbal_order_taken_by"`
	TimeOfAdministration      string `json:"time_of_administration"`
	AdministeredBy            string `json:"administered_by"`
	AdministrationWitnessedBy string `json:"administration_witnessed_by"`
}

// Section1 is the basic patient information sheet.
type Section1 struct {
	PatientName                 string            `json:"patient_name"`
	Age                         *int              `json:"age"`
	Sex                         string            `json:"sex"`
	DateOfAdmission             string            `json:"date_of_admission"`
	Ward                        string            `json:"ward"`
	BedNumber                   string            `json:"bed_number"`
	AdmittedUnderDoctor         *string           `json:"admitted_under_doctor,omitempty"`
	AttenderName                *string           `json:"attender_name,omitempty"`
	Relation                    *string           `json:"relation,omitempty"`
	AttenderMobileNo            *string           `json:"attender_mobile_no,omitempty"`
	DrugHypersensitivityAllergy *string           `json:"drug_hypersensitivity_allergy,omitempty"`
	Consultant                  *string           `json:"consultant,omitempty"`
	Diagnosis                   *string           `json:"diagnosis,omitempty"`
	Diet                        *DietInfo         `json:"diet,omitempty"`
	MedicationOrders            []MedicationOrder `json:"medication_orders"`
}

type CrossConsultation struct {
	DoctorName string `json:"doctor_name"`
	Department string `json:"department"`
}

type DischargeMedication struct {
	SlNo      *int   `json:"sl_no"`
	Name      string `json:"name"`
	Dose      string `json:"dose"`
	Frequency string `json:"frequency"`
	Duration  string `json:"duration"`
}

// Section2 is the initial assessment form, including the nursing initial
// assessment and the doctor's discharge planning block.
type Section2 struct {
	HospitalNumber string  `json:"hospital_number"`
	Name           string  `json:"name"`
	Age            *int    `json:"age"`
	Sex            string  `json:"sex"`
	IPNumber       *string `json:"ip_number,omitempty"`
	Consultant     *string `json:"consultant,omitempty"`
	DoctorUnit     *string `json:"doctor_unit,omitempty"`
	HistoryTakenBy *string `json:"history_taken_by,omitempty"`
	HistoryGivenBy *string `json:"history_given_by,omitempty"`
	KnownAllergies *string `json:"known_allergies,omitempty"`
	AssessmentDate *string `json:"assessment_date,omitempty"`
	AssessmentTime *string `json:"assessment_time,omitempty"`
	Signature      *string `json:"signature,omitempty"`

	ChiefComplaints                *string `json:"chief_complaints,omitempty"`
	HistoryPresentIllness          *string `json:"history_present_illness,omitempty"`
	PastHistory                    *string `json:"past_history,omitempty"`
	FamilyHistory                  *string `json:"family_history,omitempty"`
	PersonalHistory                *string `json:"personal_history,omitempty"`
	ImmunizationHistory            *string `json:"immunization_history,omitempty"`
	RelevantPreviousInvestigations *string `json:"relevant_previous_investigations,omitempty"`

	Sensorium                *string `json:"sensorium,omitempty"`
	Pallor                   *bool   `json:"pallor,omitempty"`
	Cyanosis                 *bool   `json:"cyanosis,omitempty"`
	Clubbing                 *bool   `json:"clubbing,omitempty"`
	Icterus                  *bool   `json:"icterus,omitempty"`
	Lymphadenopathy          *bool   `json:"lymphadenopathy,omitempty"`
	GeneralExaminationOthers *string `json:"general_examination_others,omitempty"`
	SystemicExamination      *string `json:"systemic_examination,omitempty"`
	ProvisionalDiagnosis     *string `json:"provisional_diagnosis,omitempty"`

	CarePlanCurative                *string `json:"care_plan_curative,omitempty"`
	CarePlanInvestigationsLab       *string `json:"care_plan_investigations_lab,omitempty"`
	CarePlanInvestigationsRadiology *string `json:"care_plan_investigations_radiology,omitempty"`
	CarePlanInvestigationsOthers    *string `json:"care_plan_investigations_others,omitempty"`
	CarePlanPreventive              *string `json:"care_plan_preventive,omitempty"`
	CarePlanPalliative              *string `json:"care_plan_palliative,omitempty"`
	CarePlanRehabilitative          *string `json:"care_plan_rehabilitative,omitempty"`
	MiscellaneousInvestigations     *string `json:"miscellaneous_investigations,omitempty"`

	Diet                             *string             `json:"diet,omitempty"`
	DietSpecify                      *string             `json:"diet_specify,omitempty"`
	DietaryConsultation              *bool               `json:"dietary_consultation,omitempty"`
	DietaryConsultationCrossReferral *string             `json:"dietary_consultation_cross_referral,omitempty"`
	DietaryScreeningHIS              *bool               `json:"dietary_screening_his,omitempty"`
	Physiotherapy                    *bool               `json:"physiotherapy,omitempty"`
	SpecialCare                      *string             `json:"special_care,omitempty"`
	RestraintRequired                *bool               `json:"restraint_required,omitempty"`
	RestraintFormConfirmation        *bool               `json:"restraint_form_confirmation,omitempty"`
	SurgeryProcedures                *string             `json:"surgery_procedures,omitempty"`
	CrossConsultations               []CrossConsultation `json:"cross_consultations"`

	InchargeConsultantName *string `json:"incharge_consultant_name,omitempty"`
	InchargeSignature      *string `json:"incharge_signature,omitempty"`
	InchargeDateTime       *string `json:"incharge_date_time,omitempty"`
	DoctorSignature        *string `json:"doctor_signature,omitempty"`
	AdditionalNotes        *string `json:"additional_notes,omitempty"`

	NursingVitalsBP                     *string `json:"nursing_vitals_bp,omitempty"`
	NursingVitalsPulse                  *string `json:"nursing_vitals_pulse,omitempty"`
	NursingVitalsTemperature            *string `json:"nursing_vitals_temperature,omitempty"`
	NursingVitalsRespiratoryRate        *string `json:"nursing_vitals_respiratory_rate,omitempty"`
	NursingVitalsWeight                 *string `json:"nursing_vitals_weight,omitempty"`
	NursingVitalsGRBS                   *string `json:"nursing_vitals_grbs,omitempty"`
	NursingVitalsSaturation             *string `json:"nursing_vitals_saturation,omitempty"`
	NursingExaminationConsciousness     *string `json:"nursing_examination_consciousness,omitempty"`
	NursingExaminationSkinIntegrity     *string `json:"nursing_examination_skin_integrity,omitempty"`
	NursingExaminationRespiratoryStatus *string `json:"nursing_examination_respiratory_status,omitempty"`
	NursingExaminationOtherFindings     *string `json:"nursing_examination_other_findings,omitempty"`
	NursingCurrentMedications           *string `json:"nursing_current_medications,omitempty"`
	NursingInvestigationsOrdered        *string `json:"nursing_investigations_ordered,omitempty"`
	NursingDiet                         *string `json:"nursing_diet,omitempty"`
	NursingVulnerableSpecialCare        *bool   `json:"nursing_vulnerable_special_care,omitempty"`
	NursingPainScore                    *int    `json:"nursing_pain_score,omitempty"`
	NursingPressureSores                *bool   `json:"nursing_pressure_sores,omitempty"`
	NursingPressureSoresDescription     *string `json:"nursing_pressure_sores_description,omitempty"`
	NursingRestraintsUsed               *bool   `json:"nursing_restraints_used,omitempty"`
	NursingRiskAssessmentFall           *bool   `json:"nursing_risk_assessment_fall,omitempty"`
	NursingRiskAssessmentDVT            *bool   `json:"nursing_risk_assessment_dvt,omitempty"`
	NursingRiskAssessmentPressureSores  *bool   `json:"nursing_risk_assessment_pressure_sores,omitempty"`
	NursingSignature                    *string `json:"nursing_signature,omitempty"`
	NursingDateTime                     *string `json:"nursing_date_time,omitempty"`

	DischargeLikelyDate           *string               `json:"discharge_likely_date,omitempty"`
	DischargeCompleteDiagnosis    *string               `json:"discharge_complete_diagnosis,omitempty"`
	DischargeMedications          []DischargeMedication `json:"discharge_medications"`
	DischargeVitals               *string               `json:"discharge_vitals,omitempty"`
	DischargeBloodSugar           *string               `json:"discharge_blood_sugar,omitempty"`
	DischargeBloodSugarControlled *bool                 `json:"discharge_blood_sugar_controlled,omitempty"`
	DischargeDiet                 *string               `json:"discharge_diet,omitempty"`
	DischargeConditionAmbulatory  *bool                 `json:"discharge_condition_ambulatory,omitempty"`
	DischargePainScore            *int                  `json:"discharge_pain_score,omitempty"`
	DischargeSpecialInstructions  *string               `json:"discharge_special_instructions,omitempty"`
	DischargePhysicalActivity     *string               `json:"discharge_physical_activity,omitempty"`
	DischargePhysiotherapy        *string               `json:"discharge_physiotherapy,omitempty"`
	DischargeOthers               *string               `json:"discharge_others,omitempty"`
	DischargeReportInCaseOf       *string               `json:"discharge_report_in_case_of,omitempty"`
	DischargeDoctorNameSignature  *string               `json:"discharge_doctor_name_signature,omitempty"`
	DischargeFollowUpInstructions *string               `json:"discharge_follow_up_instructions,omitempty"`
	DischargeCrossConsultation    *string               `json:"discharge_cross_consultation,omitempty"`
}

// Section3 holds progress notes, vitals and pain monitoring.
type Section3 struct {
	ProgressDate           *string `json:"progress_date,omitempty"`
	ProgressTime           *string `json:"progress_time,omitempty"`
	ProgressNotes          *string `json:"progress_notes,omitempty"`
	VitalsPulse            *string `json:"vitals_pulse,omitempty"`
	VitalsBloodPressure    *string `json:"vitals_blood_pressure,omitempty"`
	VitalsRespiratoryRate  *string `json:"vitals_respiratory_rate,omitempty"`
	VitalsTemperature      *string `json:"vitals_temperature,omitempty"`
	VitalsOxygenSaturation *string `json:"vitals_oxygen_saturation,omitempty"`
	PainVASScore           *int    `json:"pain_vas_score,omitempty"`
	PainDescription        *string `json:"pain_description,omitempty"`
}

// Section4 records diagnostics ordered and their results.
type Section4 struct {
	DiagnosticsLaboratory *string `json:"diagnostics_laboratory,omitempty"`
	DiagnosticsRadiology  *string `json:"diagnostics_radiology,omitempty"`
	DiagnosticsOthers     *string `json:"diagnostics_others,omitempty"`
	DiagnosticsDateTime   *string `json:"diagnostics_date_time,omitempty"`
	DiagnosticsResults    *string `json:"diagnostics_results,omitempty"`
	FollowUpInstructions  *string `json:"follow_up_instructions,omitempty"`
	ResponsiblePhysician  *string `json:"responsible_physician,omitempty"`
	Signature             *string `json:"signature,omitempty"`
	SignatureDateTime     *string `json:"signature_date_time,omitempty"`
}

// Section5 is the nursing vitals chart.
type Section5 struct {
	VitalsBP                     *string `json:"vitals_bp,omitempty"`
	VitalsPulse                  *string `json:"vitals_pulse,omitempty"`
	VitalsTemperature            *string `json:"vitals_temperature,omitempty"`
	VitalsRespiratoryRate        *string `json:"vitals_respiratory_rate,omitempty"`
	VitalsWeight                 *string `json:"vitals_weight,omitempty"`
	VitalsGRBS                   *string `json:"vitals_grbs,omitempty"`
	VitalsSaturation             *string `json:"vitals_saturation,omitempty"`
	ExaminationConsciousness     *string `json:"examination_consciousness,omitempty"`
	ExaminationSkinIntegrity     *string `json:"examination_skin_integrity,omitempty"`
	ExaminationRespiratoryStatus *string `json:"examination_respiratory_status,omitempty"`
	ExaminationOtherFindings     *string `json:"examination_other_findings,omitempty"`
	CurrentMedications           *string `json:"current_medications,omitempty"`
	InvestigationsOrdered        *string `json:"investigations_ordered,omitempty"`
	Diet                         *string `json:"diet,omitempty"`
	VulnerableSpecialCare        *bool   `json:"vulnerable_special_care,omitempty"`
	PainScore                    *int    `json:"pain_score,omitempty"`
	PressureSores                *bool   `json:"pressure_sores,omitempty"`
	PressureSoresDescription     *string `json:"pressure_sores_description,omitempty"`
	RestraintsUsed               *bool   `json:"restraints_used,omitempty"`
	RiskFall                     *bool   `json:"risk_fall,omitempty"`
	RiskDVT                      *bool   `json:"risk_dvt,omitempty"`
	RiskPressureSores            *bool   `json:"risk_pressure_sores,omitempty"`
	NurseSignature               *string `json:"nurse_signature,omitempty"`
	AssessmentDateTime           *string `json:"assessment_date_time,omitempty"`
}

// Section6 is the doctor's discharge planning sheet. Medications are kept
// as the client-encoded table string.
type Section6 struct {
	DischargeLikelyDate           *string `json:"discharge_likely_date,omitempty"`
	DischargeCompleteDiagnosis    *string `json:"discharge_complete_diagnosis,omitempty"`
	DischargeMedications          *string `json:"discharge_medications,omitempty"`
	DischargeVitals               *string `json:"discharge_vitals,omitempty"`
	DischargeBloodSugar           *string `json:"discharge_blood_sugar,omitempty"`
	DischargeBloodSugarControlled *bool   `json:"discharge_blood_sugar_controlled,omitempty"`
	DischargeDiet                 *string `json:"discharge_diet,omitempty"`
	DischargeCondition            *string `json:"discharge_condition,omitempty"`
	DischargePainScore            *int    `json:"discharge_pain_score,omitempty"`
	DischargeSpecialInstructions  *string `json:"discharge_special_instructions,omitempty"`
	DischargePhysicalActivity     *string `json:"discharge_physical_activity,omitempty"`
	DischargePhysiotherapy        *string `json:"discharge_physiotherapy,omitempty"`
	DischargeOthers               *string `json:"discharge_others,omitempty"`
	DischargeReportInCaseOf       *string `json:"discharge_report_in_case_of,omitempty"`
	DoctorNameSignature           *string `json:"doctor_name_signature,omitempty"`
}

type Section7 struct {
	FollowUpInstructions       *string `json:"follow_up_instructions,omitempty"`
	CrossConsultationDiagnosis *string `json:"cross_consultation_diagnosis,omitempty"`
	DischargeAdvice            *string `json:"discharge_advice,omitempty"`
}

// Section8 is the nursing care plan and nurse's record.
type Section8 struct {
	RecordDate                 *string `json:"record_date,omitempty"`
	RecordTime                 *string `json:"record_time,omitempty"`
	NurseName                  *string `json:"nurse_name,omitempty"`
	Shift                      *string `json:"shift,omitempty"`
	PatientConditionOverview   *string `json:"patient_condition_overview,omitempty"`
	AssessmentFindings         *string `json:"assessment_findings,omitempty"`
	NursingDiagnosis           *string `json:"nursing_diagnosis,omitempty"`
	GoalsExpectedOutcomes      *string `json:"goals_expected_outcomes,omitempty"`
	InterventionsNursingAction *string `json:"interventions_nursing_actions,omitempty"`
	PatientEducationCounseling *string `json:"patient_education_counseling,omitempty"`
	EvaluationResponseToCare   *string `json:"evaluation_response_to_care,omitempty"`
	MedicationAdministration   *string `json:"medication_administration,omitempty"`
	AdditionalNotes            *string `json:"additional_notes,omitempty"`
}

// Section9 is the intake and output chart. Volumes are in ml.
type Section9 struct {
	ChartDate          *string `json:"chart_date,omitempty"`
	ChartTime          *string `json:"chart_time,omitempty"`
	IntakeOral         *int    `json:"intake_oral,omitempty"`
	IntakeIVFluids     *int    `json:"intake_iv_fluids,omitempty"`
	IntakeMedications  *int    `json:"intake_medications,omitempty"`
	IntakeOtherSpecify *string `json:"intake_other_specify,omitempty"`
	IntakeOtherAmount  *int    `json:"intake_other_amount,omitempty"`
	OutputUrine        *int    `json:"output_urine,omitempty"`
	OutputVomitus      *int    `json:"output_vomitus,omitempty"`
	OutputDrainage     *int    `json:"output_drainage,omitempty"`
	OutputStool        *string `json:"output_stool,omitempty"`
	OutputOtherSpecify *string `json:"output_other_specify,omitempty"`
	OutputOtherAmount  *int    `json:"output_other_amount,omitempty"`
	TotalIntake        *int    `json:"total_intake,omitempty"`
	TotalOutput        *int    `json:"total_output,omitempty"`
	NetBalance         *int    `json:"net_balance,omitempty"`
	RemarksNotes       *string `json:"remarks_notes,omitempty"`
	NurseName          *string `json:"nurse_name,omitempty"`
	Signature          *string `json:"signature,omitempty"`
	SignoffDateTime    *string `json:"signoff_date_time,omitempty"`
}

// Section10 is the nutritional screening. Weight in kg, height in cm.
type Section10 struct {
	PatientName            *string  `json:"patient_name,omitempty"`
	HospitalNumber         *string  `json:"hospital_number,omitempty"`
	Age                    *int     `json:"age,omitempty"`
	Sex                    *string  `json:"sex,omitempty"`
	ScreeningDate          *string  `json:"screening_date,omitempty"`
	Weight                 *float64 `json:"weight,omitempty"`
	Height                 *float64 `json:"height,omitempty"`
	BMI                    *float64 `json:"bmi,omitempty"`
	RecentWeightLoss       *bool    `json:"recent_weight_loss,omitempty"`
	WeightLossAmount       *float64 `json:"weight_loss_amount,omitempty"`
	WeightLossPeriod       *string  `json:"weight_loss_period,omitempty"`
	AppetiteStatus         *string  `json:"appetite_status,omitempty"`
	SwallowingDifficulties *bool    `json:"swallowing_difficulties,omitempty"`
	DietaryRestrictions    *string  `json:"dietary_restrictions,omitempty"`
	CurrentDiet            *string  `json:"current_diet,omitempty"`
	RiskChronicIllness     *bool    `json:"risk_chronic_illness,omitempty"`
	RiskInfections         *bool    `json:"risk_infections,omitempty"`
	RiskSurgery            *bool    `json:"risk_surgery,omitempty"`
	RiskOthers             *string  `json:"risk_others,omitempty"`
	ScreeningOutcome       *string  `json:"screening_outcome,omitempty"`
	ScreeningCompletedBy   *string  `json:"screening_completed_by,omitempty"`
	ScreeningSignatureDate *string  `json:"screening_signature_date,omitempty"`
}

// Section11 is the nutrition assessment form.
type Section11 struct {
	PatientName               *string  `json:"patient_name,omitempty"`
	PatientAge                *int     `json:"patient_age,omitempty"`
	PatientSex                *string  `json:"patient_sex,omitempty"`
	HospitalNumber            *string  `json:"hospital_number,omitempty"`
	AssessmentDate            *string  `json:"assessment_date,omitempty"`
	DietaryHistory            *string  `json:"dietary_history,omitempty"`
	WeightKg                  *float64 `json:"weight_kg,omitempty"`
	HeightCm                  *float64 `json:"height_cm,omitempty"`
	MUACCm                    *float64 `json:"muac_cm,omitempty"`
	SkinfoldThickness         *float64 `json:"skinfold_thickness,omitempty"`
	BiochemicalData           *string  `json:"biochemical_data,omitempty"`
	ClinicalSignsMalnutrition *string  `json:"clinical_signs_malnutrition,omitempty"`
	FunctionalAssessment      *string  `json:"functional_assessment,omitempty"`
	NutritionalDiagnosis      *string  `json:"nutritional_diagnosis,omitempty"`
	RecommendedCarePlan       *string  `json:"recommended_care_plan,omitempty"`
	MonitoringEvaluationPlan  *string  `json:"monitoring_evaluation_plan,omitempty"`
	AssessedBy                *string  `json:"assessed_by,omitempty"`
	AssessmentSignatureDate   *string  `json:"assessment_signature_date,omitempty"`
}

// Section12 is the diet chart.
type Section12 struct {
	PatientName                    *string `json:"patient_name,omitempty"`
	HospitalNumber                 *string `json:"hospital_number,omitempty"`
	Age                            *int    `json:"age,omitempty"`
	Sex                            *string `json:"sex,omitempty"`
	AdmissionDate                  *string `json:"admission_date,omitempty"`
	DietType                       *string `json:"diet_type,omitempty"`
	DietTypeOthers                 *string `json:"diet_type_others,omitempty"`
	BreakfastDetails               *string `json:"breakfast_details,omitempty"`
	BreakfastNotes                 *string `json:"breakfast_notes,omitempty"`
	MidMorningDetails              *string `json:"mid_morning_details,omitempty"`
	MidMorningNotes                *string `json:"mid_morning_notes,omitempty"`
	LunchDetails                   *string `json:"lunch_details,omitempty"`
	LunchNotes                     *string `json:"lunch_notes,omitempty"`
	AfternoonDetails               *string `json:"afternoon_details,omitempty"`
	AfternoonNotes                 *string `json:"afternoon_notes,omitempty"`
	DinnerDetails                  *string `json:"dinner_details,omitempty"`
	DinnerNotes                    *string `json:"dinner_notes,omitempty"`
	BedtimeDetails                 *string `json:"bedtime_details,omitempty"`
	BedtimeNotes                   *string `json:"bedtime_notes,omitempty"`
	SpecialNutritionalInstructions *string `json:"special_nutritional_instructions,omitempty"`
	ConsultationRequired           *bool   `json:"consultation_required,omitempty"`
	DieticianName                  *string `json:"dietician_name,omitempty"`
	ConsultationDate               *string `json:"consultation_date,omitempty"`
	SignedBy                       *string `json:"signed_by,omitempty"`
	Designation                    *string `json:"designation,omitempty"`
	SignoffDateTime                *string `json:"signoff_date_time,omitempty"`
}
