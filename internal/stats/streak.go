package stats

import (
	"sort"
	"time"

	"github.com/meltforce/fittrack/internal/models"
)

// Streak is a run of consecutive workout days.
type Streak struct {
	Current        int      `json:"currentStreak"`
	Longest        int      `json:"longestStreak"`
	WorkedOutToday bool     `json:"workedOutToday"`
	Dates          []string `json:"workoutDates"`
}

// ComputeStreak derives the streak from activity times, bucketed into
// calendar days in today's location. The current streak ends today, or
// yesterday when nothing has been logged yet today.
func ComputeStreak(times []time.Time, today time.Time) Streak {
	loc := today.Location()
	days := uniqueDays(times, loc)
	s := Streak{Dates: make([]string, len(days))}
	for i, d := range days {
		s.Dates[i] = d.Format("2006-01-02")
	}
	if len(days) == 0 {
		return s
	}

	run := 1
	s.Longest = 1
	for i := 1; i < len(days); i++ {
		if days[i].Equal(days[i-1].AddDate(0, 0, 1)) {
			run++
		} else {
			run = 1
		}
		s.Longest = max(s.Longest, run)
	}

	present := make(map[time.Time]bool, len(days))
	for _, d := range days {
		present[d] = true
	}
	day := midnight(today, loc)
	s.WorkedOutToday = present[day]
	if !s.WorkedOutToday {
		day = day.AddDate(0, 0, -1)
	}
	for present[day] {
		s.Current++
		day = day.AddDate(0, 0, -1)
	}
	return s
}

// ActivityTimes extracts creation times for ComputeStreak.
func ActivityTimes(acts []models.Activity) []time.Time {
	out := make([]time.Time, 0, len(acts))
	for _, a := range acts {
		if !a.CreatedAt.IsZero() {
			out = append(out, a.CreatedAt.Time)
		}
	}
	return out
}

func uniqueDays(times []time.Time, loc *time.Location) []time.Time {
	seen := map[time.Time]bool{}
	var out []time.Time
	for _, t := range times {
		d := midnight(t, loc)
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

func midnight(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
