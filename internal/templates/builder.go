// Package templates composes workout templates before they are sent to the
// gateway.
package templates

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/meltforce/fittrack/internal/models"
)

// secondsPerRep is the flat tempo the template service assumes when it
// estimates a template's length.
const secondsPerRep = 3

var (
	ErrIncomplete    = errors.New("Please provide template name and add at least one exercise")
	ErrExerciseField = errors.New("Please fill in all exercise fields")
)

var (
	difficulties = []string{models.DifficultyBeginner, models.DifficultyIntermediate, models.DifficultyAdvanced}
	categories   = []string{models.TemplateStrength, models.TemplateCardio, models.TemplateHIIT, models.TemplateFlexibility, models.TemplateFullBody}
)

// Difficulties lists the accepted difficulty values.
func Difficulties() []string { return slices.Clone(difficulties) }

// Categories lists the accepted template categories.
func Categories() []string { return slices.Clone(categories) }

// Builder accumulates a template's metadata and ordered exercises.
type Builder struct {
	Name        string
	Description string
	Difficulty  string
	Category    string
	IsPublic    bool

	exercises []models.TemplateExercise
}

// NewBuilder returns a private beginner strength template named name.
func NewBuilder(name string) *Builder {
	return &Builder{
		Name:       name,
		Difficulty: models.DifficultyBeginner,
		Category:   models.TemplateStrength,
	}
}

// AddExercise appends an exercise. Sets and reps must be positive; a
// non-positive rest becomes the 60 s default.
func (b *Builder) AddExercise(t models.ExerciseType, sets, reps, restSeconds int, notes string) error {
	if !t.IsValid() {
		return fmt.Errorf("unknown exercise type %q", t)
	}
	if sets <= 0 || reps <= 0 {
		return ErrExerciseField
	}
	if restSeconds <= 0 {
		restSeconds = models.DefaultRestSeconds
	}
	b.exercises = append(b.exercises, models.TemplateExercise{
		ExerciseType: t,
		TargetSets:   sets,
		TargetReps:   reps,
		RestSeconds:  restSeconds,
		Notes:        strings.TrimSpace(notes),
		OrderIndex:   len(b.exercises),
	})
	return nil
}

// RemoveExercise drops the exercise at i and renumbers the rest.
func (b *Builder) RemoveExercise(i int) error {
	if i < 0 || i >= len(b.exercises) {
		return fmt.Errorf("no exercise at position %d", i)
	}
	b.exercises = slices.Delete(b.exercises, i, i+1)
	b.renumber()
	return nil
}

// MoveExercise swaps the exercise at i with its neighbour in direction
// delta (-1 up, +1 down). Moves past either end are ignored.
func (b *Builder) MoveExercise(i, delta int) {
	j := i + delta
	if i < 0 || i >= len(b.exercises) || j < 0 || j >= len(b.exercises) {
		return
	}
	b.exercises[i], b.exercises[j] = b.exercises[j], b.exercises[i]
	b.renumber()
}

func (b *Builder) renumber() {
	for i := range b.exercises {
		b.exercises[i].OrderIndex = i
	}
}

// Exercises returns a copy of the current exercise list.
func (b *Builder) Exercises() []models.TemplateExercise {
	return slices.Clone(b.exercises)
}

// EstimatedDuration returns the template length in minutes, summing each
// exercise's work and inter-set rest with whole-minute truncation.
func (b *Builder) EstimatedDuration() int {
	total := 0
	for _, ex := range b.exercises {
		work := ex.TargetSets * ex.TargetReps * secondsPerRep
		rest := ex.Rest() * (ex.TargetSets - 1)
		total += (work + rest) / 60
	}
	return total
}

// Validate checks the template can be submitted.
func (b *Builder) Validate() error {
	if strings.TrimSpace(b.Name) == "" || len(b.exercises) == 0 {
		return ErrIncomplete
	}
	if !slices.Contains(difficulties, b.Difficulty) {
		return fmt.Errorf("unknown difficulty %q", b.Difficulty)
	}
	if !slices.Contains(categories, b.Category) {
		return fmt.Errorf("unknown category %q", b.Category)
	}
	return nil
}

// Request validates and builds the create-template payload.
func (b *Builder) Request() (models.CreateTemplateRequest, error) {
	if err := b.Validate(); err != nil {
		return models.CreateTemplateRequest{}, err
	}
	return models.CreateTemplateRequest{
		Name:        strings.TrimSpace(b.Name),
		Description: strings.TrimSpace(b.Description),
		Difficulty:  b.Difficulty,
		Category:    b.Category,
		IsPublic:    b.IsPublic,
		Exercises:   b.Exercises(),
	}, nil
}

// AddSpec adds an exercise written as TYPE:SETSxREPS[:REST[:NOTES]], for
// example "PUSH_UP:3x10:90:slow negatives".
func (b *Builder) AddSpec(spec string) error {
	parts := strings.SplitN(spec, ":", 4)
	if len(parts) < 2 {
		return fmt.Errorf("exercise %q: want TYPE:SETSxREPS[:REST[:NOTES]]", spec)
	}
	t, err := models.ParseExerciseType(parts[0])
	if err != nil {
		return err
	}
	setsStr, repsStr, ok := strings.Cut(strings.ToLower(parts[1]), "x")
	if !ok {
		return fmt.Errorf("exercise %q: volume %q is not SETSxREPS", spec, parts[1])
	}
	sets, err := strconv.Atoi(strings.TrimSpace(setsStr))
	if err != nil {
		return fmt.Errorf("exercise %q: sets: %w", spec, err)
	}
	reps, err := strconv.Atoi(strings.TrimSpace(repsStr))
	if err != nil {
		return fmt.Errorf("exercise %q: reps: %w", spec, err)
	}
	rest := 0
	if len(parts) > 2 && parts[2] != "" {
		if rest, err = strconv.Atoi(strings.TrimSpace(parts[2])); err != nil {
			return fmt.Errorf("exercise %q: rest: %w", spec, err)
		}
	}
	notes := ""
	if len(parts) > 3 {
		notes = parts[3]
	}
	return b.AddExercise(t, sets, reps, rest, notes)
}
