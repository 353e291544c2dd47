package models

import (
	"fmt"
	"strings"
)

// ExerciseType identifies an exercise. Values match the gateway's enum names.
type ExerciseType string

const (
	Running      ExerciseType = "RUNNING"
	Walking      ExerciseType = "WALKING"
	Cycling      ExerciseType = "CYCLING"
	Swimming     ExerciseType = "SWIMMING"
	Jogging      ExerciseType = "JOGGING"
	JumpRope     ExerciseType = "JUMP_ROPE"
	Rowing       ExerciseType = "ROWING"
	Hiking       ExerciseType = "HIKING"
	PushUp       ExerciseType = "PUSH_UP"
	PullUp       ExerciseType = "PULL_UP"
	ChinUp       ExerciseType = "CHIN_UP"
	Squats       ExerciseType = "SQUATS"
	Lunges       ExerciseType = "LUNGES"
	BenchPress   ExerciseType = "BENCH_PRESS"
	Deadlift     ExerciseType = "DEADLIFT"
	BicepCurls   ExerciseType = "BICEP_CURLS"
	TricepDips   ExerciseType = "TRICEP_DIPS"
	Plank        ExerciseType = "PLANK"
	SitUp        ExerciseType = "SIT_UP"
	Crunches     ExerciseType = "CRUNCHES"
	LegRaises    ExerciseType = "LEG_RAISES"
	RussianTwist ExerciseType = "RUSSIAN_TWIST"
	Yoga         ExerciseType = "YOGA"
	Stretching   ExerciseType = "STRETCHING"
	Pilates      ExerciseType = "PILATES"
	Basketball   ExerciseType = "BASKETBALL"
	Soccer       ExerciseType = "SOCCER"
	Tennis       ExerciseType = "TENNIS"
	Badminton    ExerciseType = "BADMINTON"
	Cricket      ExerciseType = "CRICKET"
	Dancing      ExerciseType = "DANCING"
	Boxing       ExerciseType = "BOXING"
	MartialArts  ExerciseType = "MARTIAL_ARTS"
	Burpees      ExerciseType = "BURPEES"
)

// Category groups exercise types. It decides the default logging input mode.
type Category string

const (
	CategoryCardio      Category = "cardio"
	CategoryStrength    Category = "strength"
	CategoryCore        Category = "core"
	CategoryFlexibility Category = "flexibility"
	CategorySports      Category = "sports"
	CategoryOther       Category = "other"
)

// InputMode is how an activity's effort is entered when logging it.
type InputMode string

const (
	InputDuration InputMode = "duration"
	InputSetsReps InputMode = "sets_reps"
)

var categories = map[ExerciseType]Category{
	Running:      CategoryCardio,
	Walking:      CategoryCardio,
	Cycling:      CategoryCardio,
	Swimming:     CategoryCardio,
	Jogging:      CategoryCardio,
	JumpRope:     CategoryCardio,
	Rowing:       CategoryCardio,
	Hiking:       CategoryCardio,
	PushUp:       CategoryStrength,
	PullUp:       CategoryStrength,
	ChinUp:       CategoryStrength,
	Squats:       CategoryStrength,
	Lunges:       CategoryStrength,
	BenchPress:   CategoryStrength,
	Deadlift:     CategoryStrength,
	BicepCurls:   CategoryStrength,
	TricepDips:   CategoryStrength,
	Plank:        CategoryCore,
	SitUp:        CategoryCore,
	Crunches:     CategoryCore,
	LegRaises:    CategoryCore,
	RussianTwist: CategoryCore,
	Yoga:         CategoryFlexibility,
	Stretching:   CategoryFlexibility,
	Pilates:      CategoryFlexibility,
	Basketball:   CategorySports,
	Soccer:       CategorySports,
	Tennis:       CategorySports,
	Badminton:    CategorySports,
	Cricket:      CategorySports,
	Dancing:      CategoryOther,
	Boxing:       CategoryOther,
	MartialArts:  CategoryOther,
	Burpees:      CategoryOther,
}

// AllExerciseTypes lists every known exercise type grouped by category order.
var AllExerciseTypes = []ExerciseType{
	Running, Walking, Cycling, Swimming, Jogging, JumpRope, Rowing, Hiking,
	PushUp, PullUp, ChinUp, Squats, Lunges, BenchPress, Deadlift, BicepCurls, TricepDips,
	Plank, SitUp, Crunches, LegRaises, RussianTwist,
	Yoga, Stretching, Pilates,
	Basketball, Soccer, Tennis, Badminton, Cricket,
	Dancing, Boxing, MartialArts, Burpees,
}

func (t ExerciseType) String() string {
	return string(t)
}

// IsValid reports whether t is part of the known catalogue.
func (t ExerciseType) IsValid() bool {
	_, ok := categories[t]
	return ok
}

// Category returns the category of t, or CategoryOther for unknown types.
func (t ExerciseType) Category() Category {
	if c, ok := categories[t]; ok {
		return c
	}
	return CategoryOther
}

// DefaultInputMode returns sets/reps for strength and core exercises and
// duration for everything else.
func (t ExerciseType) DefaultInputMode() InputMode {
	switch t.Category() {
	case CategoryStrength, CategoryCore:
		return InputSetsReps
	default:
		return InputDuration
	}
}

// DisplayName turns "BENCH_PRESS" into "Bench Press".
func (t ExerciseType) DisplayName() string {
	words := strings.Split(strings.ToLower(string(t)), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// ParseExerciseType accepts the enum name in any case, with spaces or dashes
// in place of underscores.
func ParseExerciseType(s string) (ExerciseType, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "_", "-", "_").Replace(norm)
	t := ExerciseType(norm)
	if !t.IsValid() {
		return "", fmt.Errorf("unknown exercise type %q", s)
	}
	return t, nil
}

// TypesInCategory returns the catalogue entries belonging to c, in catalogue order.
func TypesInCategory(c Category) []ExerciseType {
	var out []ExerciseType
	for _, t := range AllExerciseTypes {
		if categories[t] == c {
			out = append(out, t)
		}
	}
	return out
}
