package claims

import (
	"github.com/Ayush-2302/deploy-gro/internal/platform/apperr"
)

// Doc is one supporting document of an insurance claim.
type Doc struct {
	ID     string   `json:"id"`
	Kind   string   `json:"kind"`
	Status string   `json:"status"`
	Issues []string `json:"issues"`
}

// Request is the body accepted by both the stateless validator and the
// per-patient claim endpoint. PatientID is informational on the latter.
type Request struct {
	PatientID string  `json:"patient_id,omitempty"`
	Scheme    *string `json:"scheme"`
	Docs      []Doc   `json:"docs"`
}

func (r *Request) Validate() error {
	var p apperr.Problems
	if r.Docs == nil {
		p.Add("docs is required")
	}
	for i, d := range r.Docs {
		if d.ID == "" {
			p.Add("docs[%d].id is required", i)
		}
		if d.Kind == "" {
			p.Add("docs[%d].kind is required", i)
		}
		if d.Status == "" {
			p.Add("docs[%d].status is required", i)
		}
	}
	return p.Err()
}

func (r *Request) normalize() {
	for i := range r.Docs {
		if r.Docs[i].Issues == nil {
			r.Docs[i].Issues = []string{}
		}
	}
}

// Claim is the stored form: the submitted documents plus their score.
type Claim struct {
	Scheme *string `json:"scheme"`
	Docs   []Doc   `json:"docs"`
	Readiness
}

func (c *Claim) Validate() error { return nil }
