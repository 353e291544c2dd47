// Package stats derives dashboards from the activity list: range filters,
// summaries, breakdowns, streaks, weekly goals and achievements. Everything
// here is computed client side from what the gateway returns.
package stats

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/meltforce/fittrack/internal/models"
)

// Range selects how far back a dashboard looks.
type Range string

const (
	RangeWeek  Range = "week"
	RangeMonth Range = "month"
	RangeAll   Range = "all"
)

// ParseRange accepts week, month or all.
func ParseRange(s string) (Range, error) {
	switch r := Range(s); r {
	case RangeWeek, RangeMonth, RangeAll:
		return r, nil
	default:
		return "", fmt.Errorf("unknown range %q (want week, month or all)", s)
	}
}

// Cutoff returns the instant after which activities fall inside r, or the
// zero time for RangeAll.
func (r Range) Cutoff(now time.Time) time.Time {
	switch r {
	case RangeWeek:
		return now.AddDate(0, 0, -7)
	case RangeMonth:
		return now.AddDate(0, 0, -30)
	default:
		return time.Time{}
	}
}

// Filter returns the activities created strictly after r's cutoff.
func Filter(acts []models.Activity, r Range, now time.Time) []models.Activity {
	cutoff := r.Cutoff(now)
	if cutoff.IsZero() {
		return acts
	}
	var out []models.Activity
	for _, a := range acts {
		if a.CreatedAt.After(cutoff) {
			out = append(out, a)
		}
	}
	return out
}

// Summary is the headline numbers of a dashboard.
type Summary struct {
	TotalWorkouts    int                 `json:"totalWorkouts"`
	TotalCalories    int                 `json:"totalCalories"`
	TotalDuration    int                 `json:"totalDuration"`
	AvgDuration      int                 `json:"avgDuration"`
	MostPerformed    models.ExerciseType `json:"mostPerformed,omitempty"`
	CaloriesThisWeek int                 `json:"caloriesThisWeek"`
}

// Summarize computes the totals for the activities in r. CaloriesThisWeek
// always covers the last 7 days regardless of r.
func Summarize(acts []models.Activity, r Range, now time.Time) Summary {
	filtered := Filter(acts, r, now)
	s := Summary{TotalWorkouts: len(filtered)}
	for _, a := range filtered {
		s.TotalCalories += a.CaloriesBurned
		s.TotalDuration += a.Duration
	}
	if len(filtered) > 0 {
		s.AvgDuration = int(math.Round(float64(s.TotalDuration) / float64(len(filtered))))
	}
	if bd := TypeBreakdown(filtered); len(bd) > 0 {
		s.MostPerformed = bd[0].Type
	}
	for _, a := range Filter(acts, RangeWeek, now) {
		s.CaloriesThisWeek += a.CaloriesBurned
	}
	return s
}

// DayTotal is the calories burned on one calendar day.
type DayTotal struct {
	Date     string `json:"date"` // YYYY-MM-DD
	Calories int    `json:"calories"`
}

// CaloriesByDay groups calories per calendar day in loc, oldest first.
func CaloriesByDay(acts []models.Activity, loc *time.Location) []DayTotal {
	byDay := map[string]int{}
	for _, a := range acts {
		byDay[dayKey(a.CreatedAt.Time, loc)] += a.CaloriesBurned
	}
	out := make([]DayTotal, 0, len(byDay))
	for d, c := range byDay {
		out = append(out, DayTotal{Date: d, Calories: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// TypeCount is how often one exercise type was logged.
type TypeCount struct {
	Type  models.ExerciseType `json:"type"`
	Count int                 `json:"count"`
}

// TypeBreakdown counts activities per type, most frequent first. Ties are
// broken by type name.
func TypeBreakdown(acts []models.Activity) []TypeCount {
	counts := map[models.ExerciseType]int{}
	for _, a := range acts {
		counts[a.Type]++
	}
	out := make([]TypeCount, 0, len(counts))
	for t, n := range counts {
		out = append(out, TypeCount{Type: t, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Type < out[j].Type
	})
	return out
}

// Weekdays labels the WorkoutsPerWeekday buckets.
var Weekdays = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// WorkoutsPerWeekday counts activities per weekday in loc, Monday first.
func WorkoutsPerWeekday(acts []models.Activity, loc *time.Location) [7]int {
	var out [7]int
	for _, a := range acts {
		wd := a.CreatedAt.In(loc).Weekday()
		out[(int(wd)+6)%7]++
	}
	return out
}

func dayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// SortRecent orders acts newest first in place.
func SortRecent(acts []models.Activity) {
	sort.SliceStable(acts, func(i, j int) bool {
		return acts[i].CreatedAt.After(acts[j].CreatedAt.Time)
	})
}
