// Package calories estimates energy expenditure for logged activities.
//
// The numbers are a pre-fill for the logging form, not a measurement. Every
// lookup falls back to a conservative default instead of failing, so the
// estimators are total over ExerciseType.
package calories

import (
	"math"

	"github.com/meltforce/fittrack/internal/models"
)

const (
	// DefaultWeightKg is used when the user's body weight is unknown.
	DefaultWeightKg = 70.0

	DefaultMET             = 5.0
	DefaultCaloriesPerRep  = 0.3
	DefaultSecondsPerRep   = 2.5
	RestBetweenSetsSeconds = 60
	referenceWeightKg      = 70.0
)

var metValues = map[models.ExerciseType]float64{
	models.Running:      9.8,
	models.Jogging:      7.0,
	models.Walking:      3.5,
	models.Cycling:      8.0,
	models.Swimming:     8.0,
	models.JumpRope:     12.3,
	models.PushUp:       8.0,
	models.PullUp:       8.0,
	models.ChinUp:       8.0,
	models.Squats:       5.0,
	models.Lunges:       4.0,
	models.BenchPress:   6.0,
	models.Deadlift:     6.0,
	models.BicepCurls:   3.5,
	models.TricepDips:   3.5,
	models.Plank:        4.0,
	models.SitUp:        4.8,
	models.Crunches:     4.5,
	models.LegRaises:    4.0,
	models.RussianTwist: 4.2,
	models.Yoga:         2.5,
	models.Stretching:   2.3,
	models.Pilates:      3.0,
	models.Basketball:   6.5,
	models.Soccer:       7.0,
	models.Tennis:       7.3,
	models.Badminton:    5.5,
	models.Cricket:      4.8,
	models.Hiking:       6.0,
	models.Dancing:      4.5,
	models.Boxing:       9.0,
	models.MartialArts:  10.3,
	models.Rowing:       7.0,
}

var caloriesPerRep = map[models.ExerciseType]float64{
	models.PullUp:       1.2,
	models.ChinUp:       1.1,
	models.PushUp:       0.5,
	models.Burpees:      1.5,
	models.JumpRope:     0.8,
	models.Squats:       0.4,
	models.Lunges:       0.4,
	models.BenchPress:   0.6,
	models.Deadlift:     0.8,
	models.SitUp:        0.3,
	models.Crunches:     0.3,
	models.LegRaises:    0.4,
	models.RussianTwist: 0.35,
	models.BicepCurls:   0.25,
	models.TricepDips:   0.3,
	models.Plank:        0.2,
}

var secondsPerRep = map[models.ExerciseType]float64{
	models.PullUp:       4,
	models.ChinUp:       4,
	models.PushUp:       3,
	models.Squats:       3,
	models.Deadlift:     4,
	models.BenchPress:   3,
	models.Plank:        1,
	models.Lunges:       2.5,
	models.SitUp:        2,
	models.Crunches:     2,
	models.LegRaises:    2.5,
	models.RussianTwist: 1.5,
	models.TricepDips:   2.5,
	models.BicepCurls:   2,
	models.JumpRope:     1,
	models.Burpees:      5,
}

// MET returns the metabolic equivalent for t, or DefaultMET.
func MET(t models.ExerciseType) float64 {
	if v, ok := metValues[t]; ok {
		return v
	}
	return DefaultMET
}

// CaloriesPerRep returns the per-repetition burn at 70 kg for t, or DefaultCaloriesPerRep.
func CaloriesPerRep(t models.ExerciseType) float64 {
	if v, ok := caloriesPerRep[t]; ok {
		return v
	}
	return DefaultCaloriesPerRep
}

// SecondsPerRep returns the assumed repetition tempo for t, or DefaultSecondsPerRep.
func SecondsPerRep(t models.ExerciseType) float64 {
	if v, ok := secondsPerRep[t]; ok {
		return v
	}
	return DefaultSecondsPerRep
}

// FromDuration estimates calories with the MET formula:
// round(MET * weightKg * durationMinutes/60).
// Non-positive durations are the caller's to reject; they yield <= 0.
func FromDuration(t models.ExerciseType, durationMinutes, weightKg float64) int {
	return int(math.Round(MET(t) * weightKg * (durationMinutes / 60)))
}

// FromSetsReps estimates calories from completed volume:
// round(sets * reps * caloriesPerRep * weightKg/70).
func FromSetsReps(t models.ExerciseType, sets, reps int, weightKg float64) int {
	totalReps := float64(sets * reps)
	return int(math.Round(totalReps * CaloriesPerRep(t) * (weightKg / referenceWeightKg)))
}

// DurationFromSetsReps derives a session length in minutes from volume,
// assuming a fixed 60 s rest between sets. The result is never below 1.
func DurationFromSetsReps(t models.ExerciseType, sets, reps int) int {
	work := float64(sets*reps) * SecondsPerRep(t)
	rest := float64((sets - 1) * RestBetweenSetsSeconds)
	minutes := int(math.Round((work + rest) / 60))
	return max(minutes, 1)
}

// Weight returns kg when positive, otherwise DefaultWeightKg.
func Weight(kg float64) float64 {
	if kg > 0 {
		return kg
	}
	return DefaultWeightKg
}
