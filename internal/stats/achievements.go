package stats

import (
	"time"

	"github.com/meltforce/fittrack/internal/models"
)

// Achievement is a badge unlocked by a condition over the activity history.
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`

	met func(acts []models.Activity, now time.Time) bool
}

var catalogue = []Achievement{
	{
		ID: "first_workout", Name: "First Steps", Description: "Complete your first workout",
		met: func(acts []models.Activity, _ time.Time) bool { return len(acts) >= 1 },
	},
	{
		ID: "week_streak", Name: "7 Day Warrior", Description: "Maintain a 7-day workout streak",
		met: func(acts []models.Activity, now time.Time) bool {
			return ComputeStreak(ActivityTimes(acts), now).Longest >= 7
		},
	},
	{
		ID: "calorie_crusher", Name: "Calorie Crusher", Description: "Burn 5000 calories total",
		met: func(acts []models.Activity, _ time.Time) bool {
			total := 0
			for _, a := range acts {
				total += a.CaloriesBurned
			}
			return total >= 5000
		},
	},
	{
		ID: "century_club", Name: "Century Club", Description: "Complete 100 workouts",
		met: func(acts []models.Activity, _ time.Time) bool { return len(acts) >= 100 },
	},
	{
		ID: "weekly_warrior", Name: "Weekly Warrior", Description: "Complete 5 workouts in a week",
		met: func(acts []models.Activity, now time.Time) bool {
			return len(Filter(acts, RangeWeek, now)) >= 5
		},
	},
	{
		ID: "marathon_runner", Name: "Marathon Runner", Description: "Complete 10 running workouts",
		met: func(acts []models.Activity, _ time.Time) bool {
			n := 0
			for _, a := range acts {
				if a.Type == models.Running || a.Type == models.Jogging {
					n++
				}
			}
			return n >= 10
		},
	},
	{
		ID: "consistency_king", Name: "Consistency King", Description: "Work out for 30 consecutive days",
		met: func(acts []models.Activity, now time.Time) bool {
			return ComputeStreak(ActivityTimes(acts), now).Longest >= 30
		},
	},
	{
		ID: "early_bird", Name: "Early Bird", Description: "Complete 5 workouts before 8 AM",
		met: func(acts []models.Activity, now time.Time) bool {
			n := 0
			for _, a := range acts {
				if !a.CreatedAt.IsZero() && a.CreatedAt.In(now.Location()).Hour() < 8 {
					n++
				}
			}
			return n >= 5
		},
	},
}

// Achievements returns the full catalogue in display order.
func Achievements() []Achievement {
	out := make([]Achievement, len(catalogue))
	copy(out, catalogue)
	return out
}

// Evaluate returns the ids of every achievement acts currently satisfies.
func Evaluate(acts []models.Activity, now time.Time) []string {
	var ids []string
	for _, a := range catalogue {
		if a.met(acts, now) {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

// Merge unions previously stored ids with newly unlocked ones. Once
// unlocked, an achievement stays unlocked.
func Merge(stored, unlocked []string) []string {
	seen := make(map[string]bool, len(stored)+len(unlocked))
	var out []string
	for _, list := range [][]string{stored, unlocked} {
		for _, id := range list {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	return out
}
