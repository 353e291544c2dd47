package stats

import (
	"time"

	"github.com/meltforce/fittrack/internal/models"
)

// Goals are the user's weekly targets.
type Goals struct {
	WeeklyCalories int `json:"weeklyCalories"`
	WeeklyWorkouts int `json:"weeklyWorkouts"`
}

// DefaultGoals is what a new user starts with.
func DefaultGoals() Goals {
	return Goals{WeeklyCalories: 2000, WeeklyWorkouts: 5}
}

// Progress is how far the last 7 days got towards the goals.
type Progress struct {
	Calories    int     `json:"calories"`
	Workouts    int     `json:"workouts"`
	CaloriesPct float64 `json:"caloriesPct"`
	WorkoutsPct float64 `json:"workoutsPct"`
}

// WeeklyProgress measures the last 7 days against g. Percentages are
// capped at 100.
func WeeklyProgress(acts []models.Activity, g Goals, now time.Time) Progress {
	week := Filter(acts, RangeWeek, now)
	p := Progress{Workouts: len(week)}
	for _, a := range week {
		p.Calories += a.CaloriesBurned
	}
	p.CaloriesPct = percent(p.Calories, g.WeeklyCalories)
	p.WorkoutsPct = percent(p.Workouts, g.WeeklyWorkouts)
	return p
}

func percent(n, goal int) float64 {
	if goal <= 0 {
		return 100
	}
	return min(float64(n)/float64(goal)*100, 100)
}
