package patientfile

import (
	"github.com/Ayush-2302/deploy-gro/internal/domain/record"
)

// Descriptor binds a section number to its category and schema.
type Descriptor struct {
	Number   int
	Category record.Category
	Title    string
	New      func() record.Payload
}

// Sections describes the twelve patient-file sections in numeric order.
var Sections = []Descriptor{
	{1, record.Section(1), "Basic Patient Information", func() record.Payload { return &Section1{} }},
	{2, record.Section(2), "Initial Assessment Form", func() record.Payload { return &Section2{} }},
	{3, record.Section(3), "Progress Notes, Vitals and Pain Monitoring", func() record.Payload { return &Section3{} }},
	{4, record.Section(4), "Diagnostics", func() record.Payload { return &Section4{} }},
	{5, record.Section(5), "Patient Vitals Chart", func() record.Payload { return &Section5{} }},
	{6, record.Section(6), "Doctors Discharge Planning", func() record.Payload { return &Section6{} }},
	{7, record.Section(7), "Follow Up Instructions", func() record.Payload { return &Section7{} }},
	{8, record.Section(8), "Nursing Care Plan", func() record.Payload { return &Section8{} }},
	{9, record.Section(9), "Intake and Output Chart", func() record.Payload { return &Section9{} }},
	{10, record.Section(10), "Nutritional Screening", func() record.Payload { return &Section10{} }},
	{11, record.Section(11), "Nutrition Assessment Form", func() record.Payload { return &Section11{} }},
	{12, record.Section(12), "Diet Chart", func() record.Payload { return &Section12{} }},
}

// Lookup returns the descriptor of section n.
func Lookup(n int) (Descriptor, bool) {
	if n < 1 || n > len(Sections) {
		return Descriptor{}, false
	}
	return Sections[n-1], true
}
