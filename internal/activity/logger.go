package activity

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/meltforce/fittrack/internal/calories"
	"github.com/meltforce/fittrack/internal/gateway"
	"github.com/meltforce/fittrack/internal/models"
)

// Service is the gateway surface used to log activities.
type Service interface {
	CreateActivity(ctx context.Context, a models.Activity) (*models.Activity, error)
	GetProfile(ctx context.Context) (*models.UserProfile, error)
}

// Compile-time check: *gateway.Client satisfies Service.
var _ Service = (*gateway.Client)(nil)

// Logger submits activity forms.
type Logger struct {
	svc    Service
	logger *slog.Logger
}

func NewLogger(svc Service, logger *slog.Logger) *Logger {
	return &Logger{svc: svc, logger: logger}
}

// BodyWeight returns the profile weight, or the 70 kg default when the
// profile cannot be loaded or has no weight.
func (l *Logger) BodyWeight(ctx context.Context) float64 {
	p, err := l.svc.GetProfile(ctx)
	if err != nil {
		l.logger.Warn("loading profile for weight, using default", "error", err)
		return calories.DefaultWeightKg
	}
	return calories.Weight(p.Weight)
}

// Submit validates f and posts it. Validation failures are returned as
// FieldErrors without contacting the gateway.
func (l *Logger) Submit(ctx context.Context, f *Form) (*models.Activity, error) {
	a, err := f.Build()
	if err != nil {
		return nil, err
	}
	created, err := l.svc.CreateActivity(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("logging activity: %w", err)
	}
	l.logger.Info("activity logged",
		"id", created.ID,
		"type", created.Type,
		"duration", created.Duration,
		"calories", created.CaloriesBurned,
	)
	return created, nil
}
