package claims

import "fmt"

const (
	StatusMissing = "missing"
	StatusInvalid = "invalid"

	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// Readiness is the outcome of scoring a claim's document set.
type Readiness struct {
	Score int    `json:"readiness_score"`
	Risk  string `json:"risk"`
	ETA   string `json:"eta"`
}

// Score rates how ready a claim is for submission. Each missing document
// costs 15 points and each invalid one 10, floored at zero. Status matching
// is exact.
func Score(docs []Doc) Readiness {
	var missing, invalid int
	for _, d := range docs {
		switch d.Status {
		case StatusMissing:
			missing++
		case StatusInvalid:
			invalid++
		}
	}

	score := max(0, 100-15*missing-10*invalid)

	risk := RiskHigh
	switch {
	case score > 80:
		risk = RiskLow
	case score > 60:
		risk = RiskMedium
	}

	return Readiness{
		Score: score,
		Risk:  risk,
		ETA:   fmt.Sprintf("%dd", max(1, 5-score/20)),
	}
}
