package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/meltforce/fittrack/internal/workout"
)

const workoutHelp = `Commands:
  <enter> or d   complete the current set
  s              skip the rest timer
  a              abandon the workout
  ?              this help
Ctrl-C leaves the session in progress; run the same command again to resume.`

func runWorkout(ctx context.Context, a *app, args []string) error {
	if len(args) != 1 {
		return usageError("workout <templateId>")
	}
	return playWorkout(ctx, a.client, a.in, a.out, a.log, args[0])
}

// playWorkout drives a live session from line-based input until it is
// completed, abandoned, or the input or context ends.
func playWorkout(ctx context.Context, svc workout.SessionService, in io.Reader, out io.Writer, log *slog.Logger, templateID string) error {
	view := &workoutView{out: out}
	done := make(chan string, 1)
	ctrl := workout.New(svc,
		workout.WithLogger(log),
		workout.WithOnChange(view.render),
		workout.WithNavigator(func(dest workout.Destination, msg string) {
			if dest == workout.ToTemplates && msg == "" {
				msg = "Workout abandoned."
			}
			select {
			case done <- msg:
			default:
			}
		}),
	)
	defer ctrl.Close()

	if err := ctrl.Start(ctx, templateID); err != nil {
		if msg := ctrl.Snapshot().Message; msg != "" {
			return errors.New(msg)
		}
		return err
	}
	view.println(workoutHelp)

	stop := make(chan struct{})
	defer close(stop)
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- strings.TrimSpace(sc.Text()):
			case <-stop:
				return
			}
		}
	}()

	for {
		select {
		case msg := <-done:
			view.println(msg)
			return nil
		default:
		}

		select {
		case msg := <-done:
			view.println(msg)
			return nil
		case <-ctx.Done():
			view.println("Leaving workout. The session stays in progress and resumes next time.")
			return nil
		case line, ok := <-lines:
			if !ok {
				view.println("Leaving workout. The session stays in progress and resumes next time.")
				return nil
			}
			if err := workoutInput(ctx, ctrl, line); err != nil {
				view.println(workoutErrorText(err))
			}
		}
	}
}

// workoutInput maps one line of input to a controller action.
func workoutInput(ctx context.Context, ctrl *workout.Controller, line string) error {
	switch strings.ToLower(line) {
	case "", "d", "done":
		return ctrl.CompleteSet(ctx)
	case "s", "skip":
		return ctrl.SkipRest()
	case "a", "abandon":
		return ctrl.Abandon(ctx)
	case "?", "h", "help":
		return errors.New(workoutHelp)
	default:
		return fmt.Errorf("unknown command %q, type ? for help", line)
	}
}

func workoutErrorText(err error) string {
	switch {
	case errors.Is(err, workout.ErrResting):
		return "Resting. Press s to skip the rest."
	case errors.Is(err, workout.ErrNotResting):
		return "Not resting."
	case errors.Is(err, workout.ErrBusy):
		return "Still saving, try again in a moment."
	case errors.Is(err, workout.ErrFinished):
		return "The workout is already finished."
	default:
		return userMessage(err)
	}
}

// workoutView prints controller snapshots. Rest ticks overwrite one line.
type workoutView struct {
	mu      sync.Mutex
	out     io.Writer
	resting bool
	lastMsg string
}

func (v *workoutView) println(s string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.endRestLineLocked()
	fmt.Fprintln(v.out, s)
}

func (v *workoutView) endRestLineLocked() {
	if v.resting {
		fmt.Fprintln(v.out)
		v.resting = false
	}
}

func (v *workoutView) render(s workout.Snapshot) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if s.Message != "" && s.Message != v.lastMsg {
		v.endRestLineLocked()
		fmt.Fprintf(v.out, "! %s\n", s.Message)
	}
	v.lastMsg = s.Message

	switch s.State {
	case workout.Active:
		v.endRestLineLocked()
		ex := s.Exercise
		pct := s.Progress() * 100
		fmt.Fprintf(v.out, "%s  exercise %d/%d  %s  set %d of %d x %d reps  %s %.0f%%\n",
			s.TemplateName, s.ExerciseIndex+1, s.ExerciseCount, ex.ExerciseType.DisplayName(),
			s.Set, ex.TargetSets, ex.TargetReps, percentBar(pct, 10), pct)
	case workout.Resting:
		fmt.Fprintf(v.out, "\rRest %3ds  (s to skip) ", s.RestRemaining)
		v.resting = true
	case workout.Completed, workout.Abandoned:
		v.endRestLineLocked()
	}
}
