package tat

import (
	"math"
	"time"

	"github.com/Ayush-2302/deploy-gro/internal/platform/apperr"
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Duration returns the minutes between start and end rounded to two places.
func Duration(start, end time.Time) float64 {
	return round2(end.Sub(start).Minutes())
}

var transitions = map[Status][]Status{
	StatusPending:    {StatusInProgress, StatusCompleted, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

// Transition checks that a record may move from one status to another.
// Setting the current status again is always allowed.
func Transition(from, to Status) error {
	if from == to {
		return nil
	}
	for _, s := range transitions[from] {
		if s == to {
			return nil
		}
	}
	return apperr.Conflict("cannot move TAT record from %s to %s", from, to)
}

// Apply folds a patch into rec. The duration is recomputed only when the
// patch carries an end time.
func Apply(rec *Record, patch UpdateRequest, now time.Time) error {
	if patch.Status != nil {
		if err := Transition(rec.Status, *patch.Status); err != nil {
			return err
		}
	}
	if patch.EndTime != nil {
		if patch.EndTime.Before(rec.StartTime) {
			return apperr.Validation("end_time must not be before start_time")
		}
		end := *patch.EndTime
		d := Duration(rec.StartTime, end)
		rec.EndTime = &end
		rec.DurationMinutes = &d
	}
	if patch.Status != nil {
		rec.Status = *patch.Status
	}
	if patch.Notes != nil {
		rec.Notes = patch.Notes
	}
	rec.UpdatedAt = now
	return nil
}

// Summarize aggregates recs, which must all be of serviceType. Completed
// records without a duration are not counted as completed.
func Summarize(serviceType ServiceType, recs []*Record) Summary {
	s := Summary{ServiceType: serviceType, TotalCases: len(recs)}

	var total float64
	for _, r := range recs {
		switch r.Status {
		case StatusPending, StatusInProgress:
			s.PendingCases++
		case StatusCompleted:
			if r.DurationMinutes == nil {
				continue
			}
			d := *r.DurationMinutes
			if s.CompletedCases == 0 || d < s.MinDurationMinutes {
				s.MinDurationMinutes = d
			}
			if s.CompletedCases == 0 || d > s.MaxDurationMinutes {
				s.MaxDurationMinutes = d
			}
			total += d
			s.CompletedCases++
		}
	}

	if s.CompletedCases > 0 {
		s.AverageDurationMinutes = round2(total / float64(s.CompletedCases))
		s.MinDurationMinutes = round2(s.MinDurationMinutes)
		s.MaxDurationMinutes = round2(s.MaxDurationMinutes)
	}
	return s
}

// SummarizeAll returns one summary per service type in declaration order,
// including types with no records.
func SummarizeAll(recs []*Record) []Summary {
	byType := make(map[ServiceType][]*Record)
	for _, r := range recs {
		byType[r.ServiceType] = append(byType[r.ServiceType], r)
	}
	out := make([]Summary, 0, len(serviceTypes))
	for _, st := range serviceTypes {
		out = append(out, Summarize(st, byType[st]))
	}
	return out
}
