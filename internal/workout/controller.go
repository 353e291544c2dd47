// Package workout drives a live workout session: it walks the user through a
// template's exercises and sets, interposes rest periods, and reports
// progress to the gateway.
//
// Local state is the source of truth for the screen. Progress notifications
// are best effort: a failed call is logged and surfaced in the snapshot's
// Message but never rolls back a transition.
package workout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/meltforce/fittrack/internal/gateway"
	"github.com/meltforce/fittrack/internal/models"
)

// SessionService is the subset of the gateway the controller needs.
type SessionService interface {
	GetActiveSession(ctx context.Context) (*models.WorkoutSession, error)
	GetTemplate(ctx context.Context, id string) (*models.WorkoutTemplate, error)
	StartSession(ctx context.Context, templateID string) (*models.WorkoutSession, error)
	CompleteExercise(ctx context.Context, req models.CompleteExerciseRequest) error
	CompleteSession(ctx context.Context, sessionID string) error
	AbandonSession(ctx context.Context, sessionID string) error
}

// Compile-time check: *gateway.Client satisfies SessionService.
var _ SessionService = (*gateway.Client)(nil)

const (
	startFailedMessage = "Failed to start workout"
	saveFailedMessage  = "Failed to save progress"
)

// Controller is the live workout state machine. All methods are safe for
// concurrent use; gateway calls are made without holding the lock.
type Controller struct {
	svc       SessionService
	logger    *slog.Logger
	navigate  func(Destination, string)
	onChange  func(Snapshot)
	newTicker func(time.Duration) Ticker

	mu       sync.Mutex
	state    State
	session  *models.WorkoutSession
	template *models.WorkoutTemplate // nil when resuming
	index    int
	set      int
	restLeft int
	message  string
	busy     bool
	closed   bool

	seq        uint64 // bumped on every emitted change, guarded by mu
	restCancel context.CancelFunc
	timers     sync.WaitGroup

	emitMu  sync.Mutex
	emitted uint64
}

// Option configures a Controller.
type Option func(*Controller)

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithNavigator sets the hand-off called when the workout screen is left.
func WithNavigator(fn func(dest Destination, message string)) Option {
	return func(c *Controller) { c.navigate = fn }
}

// WithOnChange registers a callback for every state change. It may be
// invoked from the rest timer's goroutine; calls never overlap and arrive in
// change order. The callback must not call back into the controller.
func WithOnChange(fn func(Snapshot)) Option {
	return func(c *Controller) { c.onChange = fn }
}

// WithTicker replaces the wall-clock ticker used for the rest countdown.
func WithTicker(fn func(time.Duration) Ticker) Option {
	return func(c *Controller) { c.newTicker = fn }
}

// New creates a controller in the Loading state.
func New(svc SessionService, opts ...Option) *Controller {
	c := &Controller{
		svc:       svc,
		logger:    slog.Default(),
		navigate:  func(Destination, string) {},
		newTicker: newClockTicker,
		state:     Loading,
		set:       1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start resumes the caller's active session if there is one, otherwise
// fetches templateID and opens a new session for it. On failure the
// controller moves to Failed and the error is returned.
func (c *Controller) Start(ctx context.Context, templateID string) error {
	c.mu.Lock()
	switch {
	case c.closed || c.state.Terminal():
		c.mu.Unlock()
		return ErrFinished
	case c.state != Loading || c.busy:
		c.mu.Unlock()
		return ErrBusy
	}
	c.busy = true
	c.mu.Unlock()

	sess, tmpl, index, err := c.load(ctx, templateID)

	c.mu.Lock()
	c.busy = false
	if c.closed || c.state != Loading {
		// Closed or abandoned while loading.
		c.mu.Unlock()
		return err
	}
	if err != nil {
		c.state = Failed
		c.message = startFailure(err)
		snap, seq := c.changedLocked()
		c.mu.Unlock()
		c.logger.Error("starting workout", "template_id", templateID, "error", err)
		c.emit(snap, seq)
		return err
	}
	c.session = sess
	c.template = tmpl
	c.index = index
	c.set = 1
	c.state = Active
	snap, seq := c.changedLocked()
	c.mu.Unlock()

	c.emit(snap, seq)
	return nil
}

func (c *Controller) load(ctx context.Context, templateID string) (*models.WorkoutSession, *models.WorkoutTemplate, int, error) {
	active, err := c.svc.GetActiveSession(ctx)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("checking active session: %w", err)
	}
	if active != nil {
		// Only the exercise index survives a reload; the set within the
		// current exercise and any running rest are not persisted.
		done := active.CompletedCount()
		if active.TemplateID != "" && active.TemplateID != templateID {
			c.logger.Warn("resuming session for a different template",
				"session_id", active.ID,
				"session_template", active.TemplateID,
				"requested_template", templateID,
			)
		}
		c.logger.Info("resuming workout session", "session_id", active.ID, "completed_exercises", done)
		return active, nil, done, nil
	}

	tmpl, err := c.svc.GetTemplate(ctx, templateID)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("loading template %s: %w", templateID, err)
	}
	sess, err := c.svc.StartSession(ctx, templateID)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("starting session: %w", err)
	}
	c.logger.Info("started workout session", "session_id", sess.ID, "template", tmpl.Name)
	return sess, tmpl, 0, nil
}

func startFailure(err error) string {
	var ge *gateway.Error
	if errors.As(err, &ge) && ge.Message != "" {
		return ge.Message
	}
	return startFailedMessage
}

// CompleteSet records the current set. Below the target it starts a rest
// period and advances the set counter immediately; at the target it
// completes the exercise and moves on, or finishes the workout after the
// last exercise.
func (c *Controller) CompleteSet(ctx context.Context) error {
	c.mu.Lock()
	switch {
	case c.closed:
		c.mu.Unlock()
		return ErrFinished
	case c.busy:
		c.mu.Unlock()
		return ErrBusy
	case c.state == Resting:
		c.mu.Unlock()
		return ErrResting
	case c.state != Active:
		c.mu.Unlock()
		return ErrNotActive
	}

	sess := c.session
	if c.index >= len(sess.ExerciseProgress) {
		// Resumed with every exercise already done.
		c.busy = true
		c.state = Completed
		snap, seq := c.changedLocked()
		c.mu.Unlock()
		c.emit(snap, seq)
		c.finish(ctx, sess.ID)
		return nil
	}

	ex := sess.ExerciseProgress[c.index]
	if c.set < ex.TargetSets {
		rest := c.restFor(c.index)
		c.set++
		c.state = Resting
		c.restLeft = rest
		c.startRestLocked()
		snap, seq := c.changedLocked()
		c.mu.Unlock()
		c.emit(snap, seq)
		return nil
	}

	last := c.index == len(sess.ExerciseProgress)-1
	if last {
		c.state = Completed
	} else {
		c.index++
		c.set = 1
	}
	c.busy = true
	snap, seq := c.changedLocked()
	c.mu.Unlock()
	c.emit(snap, seq)

	c.notify(ctx, "complete exercise", func(ctx context.Context) error {
		return c.svc.CompleteExercise(ctx, models.CompleteExerciseRequest{
			SessionID:     sess.ID,
			ExerciseType:  ex.ExerciseType,
			CompletedSets: ex.TargetSets,
			CompletedReps: ex.TargetReps,
		})
	})

	if last {
		c.finish(ctx, sess.ID)
		return nil
	}
	c.mu.Lock()
	c.busy = false
	c.mu.Unlock()
	return nil
}

// finish reports the completed session and hands off to navigation.
// The controller must already be in Completed with busy set.
func (c *Controller) finish(ctx context.Context, sessionID string) {
	c.notify(ctx, "complete session", func(ctx context.Context) error {
		return c.svc.CompleteSession(ctx, sessionID)
	})

	c.mu.Lock()
	c.busy = false
	closed := c.closed
	c.mu.Unlock()

	c.logger.Info("workout completed", "session_id", sessionID)
	if !closed {
		c.navigate(ToActivities, CompletedMessage)
	}
}

// notify runs a progress call and records a failure without reverting state.
func (c *Controller) notify(ctx context.Context, what string, call func(context.Context) error) {
	err := call(ctx)
	if err == nil {
		return
	}
	c.logger.Error("workout progress not saved", "call", what, "error", err)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.message = saveFailedMessage
	snap, seq := c.changedLocked()
	c.mu.Unlock()
	c.emit(snap, seq)
}

// restFor returns the configured rest for the exercise at i. Without a
// template (resumed sessions) the default applies.
func (c *Controller) restFor(i int) int {
	if c.template != nil && i < len(c.template.Exercises) {
		return c.template.Exercises[i].Rest()
	}
	return models.DefaultRestSeconds
}

// SkipRest ends the rest period early. It is the same transition as the
// countdown reaching zero.
func (c *Controller) SkipRest() error {
	c.mu.Lock()
	if c.state != Resting {
		c.mu.Unlock()
		return ErrNotResting
	}
	c.endRestLocked()
	snap, seq := c.changedLocked()
	c.mu.Unlock()

	c.emit(snap, seq)
	return nil
}

// startRestLocked launches the countdown goroutine. c.mu must be held.
func (c *Controller) startRestLocked() {
	c.stopTimerLocked()

	ctx, cancel := context.WithCancel(context.Background())
	c.restCancel = cancel
	t := c.newTicker(time.Second)

	c.timers.Add(1)
	go func() {
		defer c.timers.Done()
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C():
				if !c.tick(ctx) {
					return
				}
			}
		}
	}()
}

// tick decrements the countdown and reports whether it should keep running.
func (c *Controller) tick(ctx context.Context) bool {
	c.mu.Lock()
	// A tick that raced with skip, abandon or close belongs to a dead timer.
	if ctx.Err() != nil || c.state != Resting {
		c.mu.Unlock()
		return false
	}
	c.restLeft--
	more := c.restLeft > 0
	if !more {
		c.endRestLocked()
	}
	snap, seq := c.changedLocked()
	c.mu.Unlock()

	c.emit(snap, seq)
	return more
}

// endRestLocked returns to Active and releases the timer. c.mu must be held.
func (c *Controller) endRestLocked() {
	c.stopTimerLocked()
	c.state = Active
	c.restLeft = 0
}

func (c *Controller) stopTimerLocked() {
	if c.restCancel != nil {
		c.restCancel()
		c.restCancel = nil
	}
}

// Abandon stops the rest timer, tells the gateway the session is abandoned
// and always navigates back to the template library, even when that call
// fails. The call's error is returned for display.
func (c *Controller) Abandon(ctx context.Context) error {
	c.mu.Lock()
	switch c.state {
	case Completed, Abandoned:
		c.mu.Unlock()
		return ErrFinished
	case Loading:
		// The session may be starting on the gateway; there is nothing to
		// abandon until Start returns.
		c.mu.Unlock()
		return ErrBusy
	}
	c.stopTimerLocked()
	c.restLeft = 0
	c.state = Abandoned
	sess := c.session
	snap, seq := c.changedLocked()
	c.mu.Unlock()
	c.emit(snap, seq)

	var err error
	if sess != nil {
		if err = c.svc.AbandonSession(ctx, sess.ID); err != nil {
			c.logger.Warn("abandon not saved", "session_id", sess.ID, "error", err)
			err = fmt.Errorf("abandoning session: %w", err)
		} else {
			c.logger.Info("workout abandoned", "session_id", sess.ID)
		}
	}

	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if !closed {
		c.navigate(ToTemplates, "")
	}
	return err
}

// Close releases the rest timer and waits for its goroutine. Results of
// calls still in flight are discarded afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.stopTimerLocked()
	c.mu.Unlock()

	c.timers.Wait()
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	s := Snapshot{
		State:         c.state,
		ExerciseIndex: c.index,
		Set:           c.set,
		RestRemaining: c.restLeft,
		Message:       c.message,
	}
	if c.session != nil {
		s.SessionID = c.session.ID
		s.TemplateName = c.session.TemplateName
		s.ExerciseCount = len(c.session.ExerciseProgress)
		if c.index < s.ExerciseCount {
			s.Exercise = c.session.ExerciseProgress[c.index]
		}
	}
	return s
}

// changedLocked numbers a state change and captures it. c.mu must be held.
func (c *Controller) changedLocked() (Snapshot, uint64) {
	c.seq++
	return c.snapshotLocked(), c.seq
}

// emit delivers s unless a later change has already been delivered. A tick
// that lost the race with SkipRest must not repaint the old rest count.
func (c *Controller) emit(s Snapshot, seq uint64) {
	c.emitMu.Lock()
	defer c.emitMu.Unlock()
	if seq <= c.emitted {
		return
	}
	c.emitted = seq
	if c.onChange != nil {
		c.onChange(s)
	}
}
