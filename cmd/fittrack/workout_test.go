package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/meltforce/fittrack/internal/gateway"
	"github.com/meltforce/fittrack/internal/models"
	"github.com/meltforce/fittrack/internal/workout"
)

type fakeSessions struct {
	mu        sync.Mutex
	active    *models.WorkoutSession
	startErr  error
	completed []models.CompleteExerciseRequest
	finished  bool
	abandoned bool
}

func (f *fakeSessions) GetActiveSession(context.Context) (*models.WorkoutSession, error) {
	return f.active, nil
}

func (f *fakeSessions) GetTemplate(_ context.Context, id string) (*models.WorkoutTemplate, error) {
	return &models.WorkoutTemplate{
		ID:   id,
		Name: "Quick Push",
		Exercises: []models.TemplateExercise{
			{ExerciseType: models.PushUp, TargetSets: 2, TargetReps: 10, RestSeconds: 30},
		},
	}, nil
}

func (f *fakeSessions) StartSession(_ context.Context, templateID string) (*models.WorkoutSession, error) {
	if f.startErr != nil {
		return nil, f.startErr
	}
	return &models.WorkoutSession{
		ID:           "s1",
		TemplateID:   templateID,
		TemplateName: "Quick Push",
		ExerciseProgress: []models.ExerciseProgress{
			{ExerciseType: models.PushUp, TargetSets: 2, TargetReps: 10},
		},
	}, nil
}

func (f *fakeSessions) CompleteExercise(_ context.Context, req models.CompleteExerciseRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.completed = append(f.completed, req)
	return nil
}

func (f *fakeSessions) CompleteSession(context.Context, string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finished = true
	return nil
}

func (f *fakeSessions) AbandonSession(context.Context, string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.abandoned = true
	return nil
}

var _ workout.SessionService = (*fakeSessions)(nil)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestPlayWorkout_Complete verifies a full session driven from input:
// set, skip rest, final set, then the completion message.
func TestPlayWorkout_Complete(t *testing.T) {
	svc := &fakeSessions{}
	var out bytes.Buffer

	err := playWorkout(context.Background(), svc, strings.NewReader("\ns\nd\n"), &out, discardLogger(), "t1")
	if err != nil {
		t.Fatalf("playWorkout: %v", err)
	}
	if !svc.finished {
		t.Error("session was not completed")
	}
	if len(svc.completed) != 1 || svc.completed[0].CompletedSets != 2 {
		t.Errorf("completed=%+v, want one exercise with 2 sets", svc.completed)
	}
	if !strings.Contains(out.String(), workout.CompletedMessage) {
		t.Errorf("output missing completion message:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "set 1 of 2") {
		t.Errorf("output missing first set:\n%s", out.String())
	}
}

// TestPlayWorkout_Abandon verifies abandoning notifies the gateway and ends the loop.
func TestPlayWorkout_Abandon(t *testing.T) {
	svc := &fakeSessions{}
	var out bytes.Buffer

	if err := playWorkout(context.Background(), svc, strings.NewReader("a\n"), &out, discardLogger(), "t1"); err != nil {
		t.Fatalf("playWorkout: %v", err)
	}
	if !svc.abandoned {
		t.Error("session was not abandoned")
	}
	if !strings.Contains(out.String(), "Workout abandoned.") {
		t.Errorf("output:\n%s", out.String())
	}
}

// TestPlayWorkout_EOFLeavesSession verifies running out of input leaves the
// session in progress.
func TestPlayWorkout_EOFLeavesSession(t *testing.T) {
	svc := &fakeSessions{}
	var out bytes.Buffer

	if err := playWorkout(context.Background(), svc, strings.NewReader("x\n"), &out, discardLogger(), "t1"); err != nil {
		t.Fatalf("playWorkout: %v", err)
	}
	if svc.abandoned || svc.finished {
		t.Error("session state changed on EOF")
	}
	if !strings.Contains(out.String(), "unknown command") || !strings.Contains(out.String(), "resumes next time") {
		t.Errorf("output:\n%s", out.String())
	}
}

// TestPlayWorkout_StartFailure verifies the start failure message is returned.
func TestPlayWorkout_StartFailure(t *testing.T) {
	svc := &fakeSessions{startErr: &gateway.Error{Kind: gateway.KindServer, Op: "POST /workout-sessions/start", Status: 500}}

	err := playWorkout(context.Background(), svc, strings.NewReader(""), io.Discard, discardLogger(), "t1")
	if err == nil || err.Error() != "Failed to start workout" {
		t.Errorf("err=%v, want Failed to start workout", err)
	}
}

// TestWorkoutErrorText verifies controller errors read as prompts.
func TestWorkoutErrorText(t *testing.T) {
	if got := workoutErrorText(workout.ErrResting); !strings.Contains(got, "skip") {
		t.Errorf("ErrResting text=%q", got)
	}
	if got := workoutErrorText(errors.New("boom")); got != "boom" {
		t.Errorf("plain error text=%q", got)
	}
}
