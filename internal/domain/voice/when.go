package voice

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	numericDateRe = regexp.MustCompile(`(\d{1,2})[-/](\d{1,2})[-/](\d{2,4})`)
	namedDateRe   = regexp.MustCompile(`(\d{1,2})\s+(january|february|march|april|may|june|july|august|september|october|november|december)\s+(\d{2,4})`)
	relativeDayRe = regexp.MustCompile(`today|tomorrow|yesterday`)
)

type timeRule struct {
	re         *regexp.Regexp
	hasMinutes bool
	hasPeriod  bool
}

// Earlier rules win over later ones regardless of where they match.
var timeRules = []timeRule{
	{regexp.MustCompile(`(\d{1,2}):(\d{2})\s*(am|pm)`), true, true},
	{regexp.MustCompile(`(\d{1,2})\s*(am|pm)`), false, true},
	{regexp.MustCompile(`at\s+(\d{1,2}):(\d{2})`), true, false},
	{regexp.MustCompile(`time\s+(\d{1,2}):(\d{2})`), true, false},
}

// admissionWhen pulls an admission date (YYYY-MM-DD) and time (HH:MM) out of
// free text, defaulting each to now.
func admissionWhen(text string, now time.Time) (date, clock string) {
	lower := strings.ToLower(text)
	return admissionDate(lower, now), admissionTime(lower, now)
}

func admissionDate(text string, now time.Time) string {
	for _, m := range numericDateRe.FindAllStringSubmatch(text, -1) {
		if d, ok := validDate(fullYear(m[3]), pad2(m[2]), pad2(m[1])); ok {
			return d
		}
	}
	for _, m := range namedDateRe.FindAllStringSubmatch(text, -1) {
		if d, ok := validDate(fullYear(m[3]), fmt.Sprintf("%02d", monthNumber(m[2])), pad2(m[1])); ok {
			return d
		}
	}
	switch relativeDayRe.FindString(text) {
	case "tomorrow":
		return now.AddDate(0, 0, 1).Format("2006-01-02")
	case "yesterday":
		return now.AddDate(0, 0, -1).Format("2006-01-02")
	}
	return now.Format("2006-01-02")
}

// validDate rejects impossible calendar dates such as month 13 or 30 February.
func validDate(year, month, day string) (string, bool) {
	d := year + "-" + month + "-" + day
	if _, err := time.Parse("2006-01-02", d); err != nil {
		return "", false
	}
	return d, true
}

func admissionTime(text string, now time.Time) string {
	for _, rule := range timeRules {
		for _, m := range rule.re.FindAllStringSubmatch(text, -1) {
			if clock, ok := rule.clock(m); ok {
				return clock
			}
		}
	}
	// "now" and no match both mean the current time.
	return now.Format("15:04")
}

// clock converts a match to HH:MM. Out-of-range hours or minutes fail so the
// next match or rule gets a chance.
func (r timeRule) clock(m []string) (string, bool) {
	hour, _ := strconv.Atoi(m[1])
	minute := 0
	next := 2
	if r.hasMinutes {
		minute, _ = strconv.Atoi(m[2])
		next = 3
	}
	if minute > 59 {
		return "", false
	}
	if r.hasPeriod {
		if hour < 1 || hour > 12 {
			return "", false
		}
		switch {
		case m[next] == "pm" && hour != 12:
			hour += 12
		case m[next] == "am" && hour == 12:
			hour = 0
		}
	}
	if hour > 23 {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), true
}

func monthNumber(name string) int {
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(m.String(), name) {
			return int(m)
		}
	}
	return 0
}

func fullYear(y string) string {
	if len(y) == 2 {
		return "20" + y
	}
	return y
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
