// Package activity builds, validates and submits activity log entries.
package activity

import (
	"sort"
	"strconv"
	"strings"

	"github.com/meltforce/fittrack/internal/calories"
	"github.com/meltforce/fittrack/internal/models"
)

// Form holds what the user has entered so far. Zero numeric fields mean
// "not entered".
type Form struct {
	Type     models.ExerciseType
	Mode     models.InputMode
	Duration int // minutes, duration mode only
	Sets     int // sets/reps mode only
	Reps     int
	Calories int
	Notes    string
	WeightKg float64
}

// NewForm starts a form for t with the input mode its category defaults to.
func NewForm(t models.ExerciseType, weightKg float64) *Form {
	return &Form{
		Type:     t,
		Mode:     t.DefaultInputMode(),
		WeightKg: calories.Weight(weightKg),
	}
}

// SetType switches exercise, resets the numeric fields and picks the new
// type's default mode.
func (f *Form) SetType(t models.ExerciseType) {
	f.Type = t
	f.Mode = t.DefaultInputMode()
	f.Duration, f.Sets, f.Reps, f.Calories = 0, 0, 0, 0
}

// Estimate fills Calories from the estimator for the current mode. It
// leaves Calories alone when the inputs it needs are missing.
func (f *Form) Estimate() int {
	weight := calories.Weight(f.WeightKg)
	switch f.Mode {
	case models.InputSetsReps:
		if f.Sets > 0 && f.Reps > 0 {
			f.Calories = calories.FromSetsReps(f.Type, f.Sets, f.Reps, weight)
		}
	default:
		if f.Duration > 0 {
			f.Calories = calories.FromDuration(f.Type, float64(f.Duration), weight)
		}
	}
	return f.Calories
}

// FieldErrors maps a field name to its validation message.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return "invalid activity: " + strings.Join(parts, "; ")
}

// Validate checks the fields required for the current mode. It returns
// nil or a non-empty FieldErrors.
func (f *Form) Validate() error {
	errs := FieldErrors{}
	if !f.Type.IsValid() {
		errs["type"] = "Unknown activity type"
	}
	if f.Mode == models.InputSetsReps {
		if f.Sets <= 0 {
			errs["sets"] = "Sets must be greater than 0"
		}
		if f.Reps <= 0 {
			errs["reps"] = "Reps must be greater than 0"
		}
	} else if f.Duration <= 0 {
		errs["duration"] = "Duration must be greater than 0"
	}
	if f.Calories <= 0 {
		errs["caloriesBurned"] = "Calories must be greater than 0"
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Build converts a valid form into the entry sent to the gateway. In
// sets/reps mode the duration is derived and sets and reps are mirrored
// into additionalMetrics.
func (f *Form) Build() (models.Activity, error) {
	if err := f.Validate(); err != nil {
		return models.Activity{}, err
	}
	a := models.Activity{
		Type:           f.Type,
		CaloriesBurned: f.Calories,
		Notes:          strings.TrimSpace(f.Notes),
	}
	if f.Mode == models.InputSetsReps {
		a.Sets = f.Sets
		a.Reps = f.Reps
		a.Duration = calories.DurationFromSetsReps(f.Type, f.Sets, f.Reps)
		a.AdditionalMetrics = map[string]string{
			"sets": strconv.Itoa(f.Sets),
			"reps": strconv.Itoa(f.Reps),
		}
	} else {
		a.Duration = f.Duration
	}
	return a, nil
}
