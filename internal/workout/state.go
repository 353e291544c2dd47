package workout

import (
	"errors"

	"github.com/meltforce/fittrack/internal/models"
)

// State is the controller's position in the session lifecycle.
type State int

const (
	Loading State = iota
	Active
	Resting
	Completed
	Abandoned
	Failed
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Active:
		return "active"
	case Resting:
		return "resting"
	case Completed:
		return "completed"
	case Abandoned:
		return "abandoned"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions are possible.
func (s State) Terminal() bool {
	return s == Completed || s == Abandoned || s == Failed
}

// Destination is where the caller should go once the workout screen is done.
type Destination string

const (
	ToActivities Destination = "activities"
	ToTemplates  Destination = "templates"
)

// CompletedMessage accompanies the navigation that follows a finished workout.
const CompletedMessage = "Workout completed!"

var (
	ErrBusy       = errors.New("workout: previous action still in flight")
	ErrResting    = errors.New("workout: resting, skip or wait for the timer")
	ErrNotActive  = errors.New("workout: no active exercise")
	ErrNotResting = errors.New("workout: not resting")
	ErrFinished   = errors.New("workout: session already finished")
)

// Snapshot is a copy of the controller's state, safe to read without locks.
type Snapshot struct {
	State         State
	SessionID     string
	TemplateName  string
	ExerciseIndex int
	ExerciseCount int
	Exercise      models.ExerciseProgress // zero when ExerciseIndex >= ExerciseCount
	Set           int
	RestRemaining int    // seconds, only meaningful while Resting
	Message       string // last user-facing error, if any
}

// Progress returns the fraction of exercises finished, in [0, 1].
func (s Snapshot) Progress() float64 {
	if s.ExerciseCount == 0 {
		return 0
	}
	if s.State == Completed {
		return 1
	}
	return float64(s.ExerciseIndex) / float64(s.ExerciseCount)
}
