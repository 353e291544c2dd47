package mcp

import (
	"context"

	"github.com/meltforce/fittrack/internal/gateway"
	"github.com/meltforce/fittrack/internal/models"
	"github.com/meltforce/fittrack/internal/stats"
	"github.com/meltforce/fittrack/internal/store"
)

// DataSource abstracts the gateway for MCP tools.
type DataSource interface {
	ListActivities(ctx context.Context) ([]models.Activity, error)
	GetActivity(ctx context.Context, id string) (*models.Activity, error)
	CreateActivity(ctx context.Context, a models.Activity) (*models.Activity, error)
	GetProfile(ctx context.Context) (*models.UserProfile, error)
	GetRecommendation(ctx context.Context, activityID string) (*models.Recommendation, error)
	ListPublicTemplates(ctx context.Context) ([]models.WorkoutTemplate, error)
	ListMyTemplates(ctx context.Context) ([]models.WorkoutTemplate, error)
	ListTemplatesByCategory(ctx context.Context, category string) ([]models.WorkoutTemplate, error)
	ListTemplatesByDifficulty(ctx context.Context, difficulty string) ([]models.WorkoutTemplate, error)
	GetTemplate(ctx context.Context, id string) (*models.WorkoutTemplate, error)
	GetActiveSession(ctx context.Context) (*models.WorkoutSession, error)
	SessionHistory(ctx context.Context) ([]models.WorkoutSession, error)
}

// Prefs is the local state the dashboard tools read and update.
type Prefs interface {
	Goals(ctx context.Context, userID string) (stats.Goals, error)
	UnlockAchievements(ctx context.Context, userID string, ids []string) ([]string, error)
}

// Compile-time checks.
var (
	_ DataSource = (*gateway.Client)(nil)
	_ Prefs      = (*store.Store)(nil)
)
