package patient

import (
	"time"

	"github.com/google/uuid"

	"github.com/Ayush-2302/deploy-gro/internal/platform/apperr"
)

// Patient holds admission demographics. AadhaarNumber, MobileNo and
// AttenderMobileNo are encrypted at rest.
type Patient struct {
	ID                  uuid.UUID  `json:"id"`
	Name                string     `json:"name"`
	Age                 int        `json:"age"`
	Gender              string     `json:"gender"`
	UHID                *string    `json:"uhid"`
	Ward                *string    `json:"ward"`
	BedNo               *string    `json:"bed_no"`
	BedNumber           *string    `json:"bed_number"`
	AdmissionDate       *string    `json:"admission_date"`
	AdmissionTime       *string    `json:"admission_time"`
	DischargeDate       *string    `json:"discharge_date"`
	MobileNo            *string    `json:"mobile_no"`
	AdmittedUnderDoctor *string    `json:"admitted_under_doctor"`
	AttenderName        *string    `json:"attender_name"`
	Relation            *string    `json:"relation"`
	AttenderMobileNo    *string    `json:"attender_mobile_no"`
	AadhaarNumber       *string    `json:"aadhaar_number"`
	Reason              *string    `json:"reason"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           *time.Time `json:"updated_at"`
}

// Input is the writable subset of Patient accepted on create and replace.
type Input struct {
	Name                string  `json:"name"`
	Age                 *int    `json:"age"`
	Gender              string  `json:"gender"`
	UHID                *string `json:"uhid"`
	Ward                *string `json:"ward"`
	BedNo               *string `json:"bed_no"`
	BedNumber           *string `json:"bed_number"`
	AdmissionDate       *string `json:"admission_date"`
	AdmissionTime       *string `json:"admission_time"`
	DischargeDate       *string `json:"discharge_date"`
	MobileNo            *string `json:"mobile_no"`
	AdmittedUnderDoctor *string `json:"admitted_under_doctor"`
	AttenderName        *string `json:"attender_name"`
	Relation            *string `json:"relation"`
	AttenderMobileNo    *string `json:"attender_mobile_no"`
	AadhaarNumber       *string `json:"aadhaar_number"`
	Reason              *string `json:"reason"`
}

func (in *Input) Validate() error {
	var p apperr.Problems
	p.Require("name", in.Name)
	p.Require("gender", in.Gender)
	if in.Age == nil {
		p.Add("age is required")
	}
	p.Range("age", in.Age, 0, 120)
	return p.Err()
}

// apply copies every writable field onto p. Absent optional fields are
// cleared, so an update is a full replacement.
func (in *Input) apply(p *Patient) {
	p.Name = in.Name
	p.Age = *in.Age
	p.Gender = in.Gender
	p.UHID = in.UHID
	p.Ward = in.Ward
	p.BedNo = in.BedNo
	p.BedNumber = in.BedNumber
	p.AdmissionDate = in.AdmissionDate
	p.AdmissionTime = in.AdmissionTime
	p.DischargeDate = in.DischargeDate
	p.MobileNo = in.MobileNo
	p.AdmittedUnderDoctor = in.AdmittedUnderDoctor
	p.AttenderName = in.AttenderName
	p.Relation = in.Relation
	p.AttenderMobileNo = in.AttenderMobileNo
	p.AadhaarNumber = in.AadhaarNumber
	p.Reason = in.Reason
}
