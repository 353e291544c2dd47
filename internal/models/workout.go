package models

// DefaultRestSeconds applies when a template exercise has no rest configured.
const DefaultRestSeconds = 60

// Difficulty values accepted by the template service.
const (
	DifficultyBeginner     = "BEGINNER"
	DifficultyIntermediate = "INTERMEDIATE"
	DifficultyAdvanced     = "ADVANCED"
)

// Template categories accepted by the template service.
const (
	TemplateStrength    = "STRENGTH"
	TemplateCardio      = "CARDIO"
	TemplateHIIT        = "HIIT"
	TemplateFlexibility = "FLEXIBILITY"
	TemplateFullBody    = "FULL_BODY"
)

// TemplateExercise is one ordered step of a workout template.
type TemplateExercise struct {
	ExerciseType ExerciseType `json:"exerciseType"`
	TargetSets   int          `json:"sets"`
	TargetReps   int          `json:"reps"`
	RestSeconds  int          `json:"restSeconds,omitempty"`
	Notes        string       `json:"notes,omitempty"`
	OrderIndex   int          `json:"orderIndex"`
}

// Rest returns the configured rest, or DefaultRestSeconds when unset.
func (e TemplateExercise) Rest() int {
	if e.RestSeconds > 0 {
		return e.RestSeconds
	}
	return DefaultRestSeconds
}

// WorkoutTemplate is a named, ordered exercise plan.
type WorkoutTemplate struct {
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	Description       string             `json:"description,omitempty"`
	Difficulty        string             `json:"difficulty,omitempty"`
	Category          string             `json:"category,omitempty"`
	EstimatedDuration int                `json:"estimatedDuration,omitempty"` // minutes
	CreatedBy         string             `json:"createdBy,omitempty"`
	IsPublic          bool               `json:"isPublic"`
	TimesUsed         int                `json:"timesUsed"`
	Exercises         []TemplateExercise `json:"exercises"`
	CreatedAt         Timestamp          `json:"createdAt"`
	UpdatedAt         Timestamp          `json:"updatedAt"`
}

// CreateTemplateRequest is the body of POST templates.
type CreateTemplateRequest struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Difficulty  string             `json:"difficulty,omitempty"`
	Category    string             `json:"category,omitempty"`
	IsPublic    bool               `json:"isPublic"`
	Exercises   []TemplateExercise `json:"exercises"`
}

// Session status values.
const (
	SessionInProgress = "IN_PROGRESS"
	SessionCompleted  = "COMPLETED"
	SessionAbandoned  = "ABANDONED"
)

// ExerciseProgress tracks one exercise inside a workout session.
type ExerciseProgress struct {
	ExerciseType  ExerciseType `json:"exerciseType"`
	TargetSets    int          `json:"targetSets"`
	CompletedSets int          `json:"completedSets,omitempty"`
	TargetReps    int          `json:"targetReps"`
	CompletedReps int          `json:"completedReps,omitempty"`
	IsCompleted   bool         `json:"isCompleted"`
	CompletedAt   Timestamp    `json:"completedAt"`
}

// WorkoutSession is one attempt at a template, as persisted by the gateway.
type WorkoutSession struct {
	ID                  string             `json:"id"`
	UserID              string             `json:"userId,omitempty"`
	TemplateID          string             `json:"templateId,omitempty"`
	TemplateName        string             `json:"templateName"`
	StartTime           Timestamp          `json:"startTime"`
	EndTime             Timestamp          `json:"endTime"`
	Status              string             `json:"status,omitempty"`
	ExerciseProgress    []ExerciseProgress `json:"exerciseProgress"`
	TotalCaloriesBurned int                `json:"totalCaloriesBurned,omitempty"`
	TotalDuration       int                `json:"totalDuration,omitempty"` // minutes
}

// CompletedCount returns how many exercises are marked completed.
func (s *WorkoutSession) CompletedCount() int {
	n := 0
	for _, ep := range s.ExerciseProgress {
		if ep.IsCompleted {
			n++
		}
	}
	return n
}

// StartSessionRequest is the body of POST workout-sessions/start.
type StartSessionRequest struct {
	TemplateID string `json:"templateId"`
}

// CompleteExerciseRequest is the body of PUT workout-sessions/exercise/complete.
type CompleteExerciseRequest struct {
	SessionID     string       `json:"sessionId"`
	ExerciseType  ExerciseType `json:"exerciseType"`
	CompletedSets int          `json:"completedSets"`
	CompletedReps int          `json:"completedReps"`
}
