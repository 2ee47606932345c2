package claims

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func docs(statuses ...string) []Doc {
	out := make([]Doc, 0, len(statuses))
	for i, s := range statuses {
		out = append(out, Doc{ID: string(rune('a' + i)), Kind: "bill", Status: s})
	}
	return out
}

func repeat(status string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = status
	}
	return out
}

func TestScore(t *testing.T) {
	tests := []struct {
		name  string
		docs  []Doc
		score int
		risk  string
		eta   string
	}{
		{"no docs", nil, 100, RiskLow, "1d"},
		{"all ok", docs("ok", "verified"), 100, RiskLow, "1d"},
		{"one missing", docs("missing"), 85, RiskLow, "1d"},
		{"one invalid", docs("invalid"), 90, RiskLow, "1d"},
		{"one of each", docs("missing", "invalid"), 75, RiskMedium, "2d"},
		{"two missing", docs("missing", "missing"), 70, RiskMedium, "2d"},
		{"two invalid", docs("invalid", "invalid"), 80, RiskMedium, "1d"},
		{"two missing one invalid", docs("missing", "missing", "invalid"), 60, RiskHigh, "2d"},
		{"three missing", docs(repeat("missing", 3)...), 55, RiskHigh, "3d"},
		{"floored", docs(repeat("missing", 8)...), 0, RiskHigh, "5d"},
		{"case sensitive", docs("Missing", "INVALID"), 100, RiskLow, "1d"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.docs)
			assert.Equal(t, tt.score, got.Score)
			assert.Equal(t, tt.risk, got.Risk)
			assert.Equal(t, tt.eta, got.ETA)
		})
	}
}

func TestScore_RiskBoundaries(t *testing.T) {
	// 100 - 10*2 = 80 is not > 80; 100 - 10*4 = 60 is not > 60.
	assert.Equal(t, RiskMedium, Score(docs(repeat("invalid", 2)...)).Risk)
	assert.Equal(t, RiskLow, Score(docs("invalid")).Risk)
	assert.Equal(t, RiskHigh, Score(docs(repeat("invalid", 4)...)).Risk)
	assert.Equal(t, RiskMedium, Score(docs(repeat("invalid", 3)...)).Risk)
}

func TestScore_ETAFloor(t *testing.T) {
	for n := 0; n <= 10; n++ {
		r := Score(docs(repeat("invalid", n)...))
		assert.GreaterOrEqual(t, r.Score, 0)
		assert.NotEqual(t, "0d", r.ETA)
	}
}
