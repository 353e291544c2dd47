package activity

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/meltforce/fittrack/internal/models"
)

// TestNewForm_DefaultMode verifies the input mode follows the category.
func TestNewForm_DefaultMode(t *testing.T) {
	if f := NewForm(models.BenchPress, 80); f.Mode != models.InputSetsReps {
		t.Errorf("bench press mode=%q, want sets_reps", f.Mode)
	}
	if f := NewForm(models.Running, 80); f.Mode != models.InputDuration {
		t.Errorf("running mode=%q, want duration", f.Mode)
	}
	if f := NewForm(models.Running, 0); f.WeightKg != 70 {
		t.Errorf("weight=%v, want 70 fallback", f.WeightKg)
	}
}

// TestSetType verifies switching type clears the numbers and the mode follows.
func TestSetType(t *testing.T) {
	f := NewForm(models.Running, 70)
	f.Duration, f.Calories = 30, 343

	f.SetType(models.Plank)
	if f.Mode != models.InputSetsReps {
		t.Errorf("mode=%q, want sets_reps", f.Mode)
	}
	if f.Duration != 0 || f.Calories != 0 {
		t.Errorf("fields not reset: %+v", f)
	}
}

// TestEstimate verifies the estimator is applied per mode and missing
// inputs leave calories unchanged.
func TestEstimate(t *testing.T) {
	f := NewForm(models.Running, 70)
	if got := f.Estimate(); got != 0 {
		t.Errorf("estimate with no duration=%d, want 0", got)
	}
	f.Duration = 30
	if got := f.Estimate(); got != 343 {
		t.Errorf("running 30 min=%d, want 343", got)
	}

	f = NewForm(models.PushUp, 140)
	f.Sets, f.Reps = 3, 10
	if got := f.Estimate(); got != 30 {
		t.Errorf("push ups 3x10 at 140 kg=%d, want 30", got)
	}
}

// TestValidate verifies field-level messages for each mode.
func TestValidate(t *testing.T) {
	f := NewForm(models.Cycling, 70)
	err := f.Validate()
	var fe FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("err=%v, want FieldErrors", err)
	}
	if fe["duration"] != "Duration must be greater than 0" {
		t.Errorf("duration=%q", fe["duration"])
	}
	if fe["caloriesBurned"] != "Calories must be greater than 0" {
		t.Errorf("caloriesBurned=%q", fe["caloriesBurned"])
	}
	if _, ok := fe["sets"]; ok {
		t.Error("sets checked in duration mode")
	}

	f = NewForm(models.Squats, 70)
	f.Sets, f.Calories = 3, 12
	fe = nil
	if !errors.As(f.Validate(), &fe) {
		t.Fatal("expected FieldErrors")
	}
	if _, ok := fe["reps"]; !ok || len(fe) != 1 {
		t.Errorf("errors=%v, want only reps", fe)
	}

	f.Reps = 12
	if err := f.Validate(); err != nil {
		t.Errorf("valid form: %v", err)
	}
}

// TestBuild_SetsReps verifies the derived duration and mirrored metrics.
func TestBuild_SetsReps(t *testing.T) {
	f := NewForm(models.PushUp, 70)
	f.Sets, f.Reps = 3, 10
	f.Estimate()
	f.Notes = "  felt strong "

	a, err := f.Build()
	if err != nil {
		t.Fatal(err)
	}
	if a.Duration != 4 {
		t.Errorf("duration=%d, want 4", a.Duration)
	}
	if a.CaloriesBurned != 15 {
		t.Errorf("calories=%d, want 15", a.CaloriesBurned)
	}
	if a.AdditionalMetrics["sets"] != "3" || a.AdditionalMetrics["reps"] != "10" {
		t.Errorf("metrics=%v", a.AdditionalMetrics)
	}
	if a.Notes != "felt strong" {
		t.Errorf("notes=%q", a.Notes)
	}
}

// TestBuild_Duration verifies duration mode passes the duration through.
func TestBuild_Duration(t *testing.T) {
	f := NewForm(models.Yoga, 60)
	f.Duration = 45
	f.Calories = 200 // user override

	a, err := f.Build()
	if err != nil {
		t.Fatal(err)
	}
	if a.Duration != 45 || a.CaloriesBurned != 200 || a.AdditionalMetrics != nil {
		t.Errorf("activity=%+v", a)
	}
}

type fakeService struct {
	profile    *models.UserProfile
	profileErr error
	created    []models.Activity
}

func (f *fakeService) CreateActivity(_ context.Context, a models.Activity) (*models.Activity, error) {
	f.created = append(f.created, a)
	a.ID = "new"
	return &a, nil
}

func (f *fakeService) GetProfile(context.Context) (*models.UserProfile, error) {
	return f.profile, f.profileErr
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestSubmit_InvalidSkipsGateway verifies validation blocks the call.
func TestSubmit_InvalidSkipsGateway(t *testing.T) {
	svc := &fakeService{}
	l := NewLogger(svc, discardLogger())

	if _, err := l.Submit(context.Background(), NewForm(models.Running, 70)); err == nil {
		t.Fatal("expected validation error")
	}
	if len(svc.created) != 0 {
		t.Errorf("gateway called %d times, want 0", len(svc.created))
	}
}

// TestSubmit verifies a valid form is posted once.
func TestSubmit(t *testing.T) {
	svc := &fakeService{}
	l := NewLogger(svc, discardLogger())
	f := NewForm(models.Running, 70)
	f.Duration = 30
	f.Estimate()

	a, err := l.Submit(context.Background(), f)
	if err != nil {
		t.Fatal(err)
	}
	if a.ID != "new" || len(svc.created) != 1 {
		t.Errorf("activity=%+v created=%d", a, len(svc.created))
	}
}

// TestBodyWeight verifies the profile weight and its fallbacks.
func TestBodyWeight(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		svc  *fakeService
		want float64
	}{
		{&fakeService{profile: &models.UserProfile{Weight: 82}}, 82},
		{&fakeService{profile: &models.UserProfile{}}, 70},
		{&fakeService{profileErr: errors.New("offline")}, 70},
	}
	for _, tc := range cases {
		if got := NewLogger(tc.svc, discardLogger()).BodyWeight(ctx); got != tc.want {
			t.Errorf("BodyWeight=%v, want %v", got, tc.want)
		}
	}
}
