package calories

import (
	"testing"

	"github.com/meltforce/fittrack/internal/models"
)

// TestFromDuration verifies the MET formula against hand-computed values.
func TestFromDuration(t *testing.T) {
	cases := []struct {
		typ      models.ExerciseType
		minutes  float64
		weightKg float64
		want     int
	}{
		{models.Running, 30, 70, 343},  // 9.8 * 70 * 0.5
		{models.Walking, 60, 80, 280},  // 3.5 * 80 * 1
		{models.Yoga, 45, 60, 113},     // 2.5 * 60 * 0.75 = 112.5
		{models.JumpRope, 20, 70, 287}, // 12.3 * 70 / 3
		{models.Running, 0, 70, 0},
	}
	for _, tc := range cases {
		if got := FromDuration(tc.typ, tc.minutes, tc.weightKg); got != tc.want {
			t.Errorf("FromDuration(%s, %v, %v) = %d, want %d", tc.typ, tc.minutes, tc.weightKg, got, tc.want)
		}
	}
}

// TestFromDurationMonotonic verifies the estimate never decreases as duration
// or body weight grow, for every catalogued exercise.
func TestFromDurationMonotonic(t *testing.T) {
	for _, typ := range models.AllExerciseTypes {
		prev := FromDuration(typ, 1, 70)
		for d := 2.0; d <= 180; d++ {
			got := FromDuration(typ, d, 70)
			if got < prev {
				t.Fatalf("%s: duration %v gave %d, less than %d at %v", typ, d, got, prev, d-1)
			}
			prev = got
		}

		prev = FromDuration(typ, 30, 40)
		for w := 41.0; w <= 150; w++ {
			got := FromDuration(typ, 30, w)
			if got < prev {
				t.Fatalf("%s: weight %v gave %d, less than %d at %v", typ, w, got, prev, w-1)
			}
			prev = got
		}
	}
}

// TestFromSetsRepsReferenceWeight verifies the weight multiplier is exactly 1
// at 70 kg, so the result is sets * reps * caloriesPerRep rounded.
func TestFromSetsRepsReferenceWeight(t *testing.T) {
	cases := []struct {
		typ        models.ExerciseType
		sets, reps int
		want       int
	}{
		{models.PushUp, 3, 10, 15},
		{models.PullUp, 4, 8, 38}, // 32 * 1.2 = 38.4
		{models.Plank, 2, 30, 12},
		{models.BicepCurls, 3, 12, 9},
	}
	for _, tc := range cases {
		if got := FromSetsReps(tc.typ, tc.sets, tc.reps, DefaultWeightKg); got != tc.want {
			t.Errorf("FromSetsReps(%s, %d, %d, 70) = %d, want %d", tc.typ, tc.sets, tc.reps, got, tc.want)
		}
	}
}

// TestFromSetsRepsScalesWithWeight verifies doubling body weight doubles the estimate.
func TestFromSetsRepsScalesWithWeight(t *testing.T) {
	if got := FromSetsReps(models.PushUp, 3, 10, 140); got != 30 {
		t.Errorf("FromSetsReps at 140 kg = %d, want 30", got)
	}
	if got := FromSetsReps(models.PushUp, 3, 10, 35); got != 8 { // 7.5 rounds away from zero
		t.Errorf("FromSetsReps at 35 kg = %d, want 8", got)
	}
}

// TestDurationFromSetsReps verifies work time plus 60 s between sets, rounded to minutes.
func TestDurationFromSetsReps(t *testing.T) {
	cases := []struct {
		typ        models.ExerciseType
		sets, reps int
		want       int
	}{
		{models.PushUp, 3, 10, 4},  // 90 s work + 120 s rest = 3.5 min
		{models.Squats, 4, 12, 5},  // 144 + 180 = 324 s
		{models.Burpees, 1, 10, 1}, // 50 s
		{models.PullUp, 5, 5, 6},   // 100 + 240 = 340 s
	}
	for _, tc := range cases {
		if got := DurationFromSetsReps(tc.typ, tc.sets, tc.reps); got != tc.want {
			t.Errorf("DurationFromSetsReps(%s, %d, %d) = %d, want %d", tc.typ, tc.sets, tc.reps, got, tc.want)
		}
	}
}

// TestDurationFromSetsRepsFloor verifies the result never drops below one
// minute, even for a single fast repetition.
func TestDurationFromSetsRepsFloor(t *testing.T) {
	for _, typ := range append(models.AllExerciseTypes, "UNKNOWN") {
		if got := DurationFromSetsReps(typ, 1, 1); got < 1 {
			t.Errorf("DurationFromSetsReps(%s, 1, 1) = %d, want >= 1", typ, got)
		}
	}
	if got := DurationFromSetsReps(models.Plank, 0, 0); got != 1 {
		t.Errorf("DurationFromSetsReps(PLANK, 0, 0) = %d, want 1", got)
	}
}

// TestUnknownTypeDefaults verifies lookups fall back to the documented
// defaults instead of failing.
func TestUnknownTypeDefaults(t *testing.T) {
	unknown := models.ExerciseType("UNDERWATER_BASKET_WEAVING")

	if got := MET(unknown); got != 5.0 {
		t.Errorf("MET = %v, want 5.0", got)
	}
	if got := CaloriesPerRep(unknown); got != 0.3 {
		t.Errorf("CaloriesPerRep = %v, want 0.3", got)
	}
	if got := SecondsPerRep(unknown); got != 2.5 {
		t.Errorf("SecondsPerRep = %v, want 2.5", got)
	}

	if got := FromDuration(unknown, 60, 80); got != 400 {
		t.Errorf("FromDuration = %d, want 400", got)
	}
	if got := FromSetsReps(unknown, 2, 10, 70); got != 6 {
		t.Errorf("FromSetsReps = %d, want 6", got)
	}
	if got := DurationFromSetsReps(unknown, 2, 10); got != 2 { // 50 + 60 = 110 s
		t.Errorf("DurationFromSetsReps = %d, want 2", got)
	}
}

// TestWeight verifies non-positive weights fall back to 70 kg.
func TestWeight(t *testing.T) {
	if got := Weight(0); got != DefaultWeightKg {
		t.Errorf("Weight(0) = %v, want %v", got, DefaultWeightKg)
	}
	if got := Weight(-3); got != DefaultWeightKg {
		t.Errorf("Weight(-3) = %v, want %v", got, DefaultWeightKg)
	}
	if got := Weight(82.5); got != 82.5 {
		t.Errorf("Weight(82.5) = %v, want 82.5", got)
	}
}
