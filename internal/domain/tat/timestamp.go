package tat

import (
	"encoding/json"
	"fmt"
	"time"
)

// Layouts accepted for request timestamps, tried in order. Values without a
// zone are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%q is not a valid timestamp", s)
}

// timestamp decodes the ISO forms browsers and the record forms send,
// including datetime-local values with no seconds or zone.
type timestamp time.Time

func (t *timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp must be a string")
	}
	parsed, err := parseTimestamp(s)
	if err != nil {
		return err
	}
	*t = timestamp(parsed)
	return nil
}

func (t *timestamp) ptr() *time.Time {
	if t == nil {
		return nil
	}
	v := time.Time(*t)
	return &v
}

func (r *CreateRequest) UnmarshalJSON(b []byte) error {
	type plain CreateRequest
	raw := struct {
		*plain
		StartTime *timestamp `json:"start_time"`
		EndTime   *timestamp `json:"end_time"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw.StartTime != nil {
		r.StartTime = time.Time(*raw.StartTime)
	}
	r.EndTime = raw.EndTime.ptr()
	return nil
}

func (r *UpdateRequest) UnmarshalJSON(b []byte) error {
	type plain UpdateRequest
	raw := struct {
		*plain
		EndTime *timestamp `json:"end_time"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	r.EndTime = raw.EndTime.ptr()
	return nil
}
