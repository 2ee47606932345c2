package voice

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Segment is one timed chunk of a verbose transcription.
type Segment struct {
	Text       string  `json:"text"`
	AvgLogprob float64 `json:"avg_logprob"`
}

const minAvgLogprob = -1.2

var (
	digitsRe     = regexp.MustCompile(`\d+`)
	whitespaceRe = regexp.MustCompile(`\s+`)

	fillerWords = map[string]bool{
		"um": true, "uh": true, "ah": true, "er": true, "mm": true, "hmm": true,
	}
)

// CleanSegments joins the segments worth keeping into one transcript. It
// drops low-confidence and single-character segments, exact repeats, filler
// words and the runs of numbers the speech model hallucinates on silence.
func CleanSegments(segments []Segment) string {
	seen := make(map[string]bool, len(segments))
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if utf8.RuneCountInString(text) <= 1 || seg.AvgLogprob <= minAvgLogprob {
			continue
		}
		if seen[text] || fillerWords[strings.ToLower(text)] || repetitiveNumbers(text) {
			continue
		}
		seen[text] = true
		parts = append(parts, text)
	}
	return collapseSpace(strings.Join(parts, " "))
}

func collapseSpace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// repetitiveNumbers reports number noise: one numeral seen more than five
// times, or the last six numerals alternating a,b,a,b,a,b.
func repetitiveNumbers(text string) bool {
	nums := digitsRe.FindAllString(text, -1)
	if len(nums) < 3 {
		return false
	}

	counts := make(map[string]int, len(nums))
	for _, n := range nums {
		counts[n]++
		if counts[n] > 5 {
			return true
		}
	}

	if len(nums) > 6 {
		last := nums[len(nums)-6:]
		if last[0] == last[2] && last[2] == last[4] && last[1] == last[3] && last[3] == last[5] {
			return true
		}
	}
	return false
}
