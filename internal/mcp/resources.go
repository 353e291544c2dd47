package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/meltforce/fittrack/internal/calories"
	"github.com/meltforce/fittrack/internal/models"
	"github.com/meltforce/fittrack/internal/stats"
)

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (h *handlers) today(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	ctx, id := h.scope(ctx)
	now := h.now()

	acts, err := h.ds.ListActivities(ctx)
	if err != nil {
		return nil, err
	}

	goals, err := h.prefs.Goals(ctx, id.UserID)
	if err != nil {
		h.log.Warn("today: reading goals failed", "error", err)
		goals = stats.DefaultGoals()
	}

	active, err := h.ds.GetActiveSession(ctx)
	if err != nil {
		h.log.Warn("today: active session query failed", "error", err)
	}

	summary := map[string]any{
		"date":            now.Format("2006-01-02"),
		"streak":          stats.ComputeStreak(stats.ActivityTimes(acts), now),
		"goals":           goals,
		"weekly_progress": stats.WeeklyProgress(acts, goals, now),
		"active_session":  active,
	}
	return jsonResource(req.Params.URI, summary)
}

func (h *handlers) recentActivities(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	ctx, _ = h.scope(ctx)
	acts, err := h.ds.ListActivities(ctx)
	if err != nil {
		return nil, err
	}
	recent := stats.Filter(acts, stats.RangeWeek, h.now())
	stats.SortRecent(recent)
	if recent == nil {
		recent = []models.Activity{}
	}
	return jsonResource(req.Params.URI, recent)
}

// CatalogEntry describes one exercise type.
type CatalogEntry struct {
	Type           models.ExerciseType `json:"type"`
	Name           string              `json:"name"`
	Category       models.Category     `json:"category"`
	InputMode      models.InputMode    `json:"inputMode"`
	MET            float64             `json:"met"`
	CaloriesPerRep float64             `json:"caloriesPerRep"`
	SecondsPerRep  float64             `json:"secondsPerRep"`
}

func exerciseCatalog() []CatalogEntry {
	out := make([]CatalogEntry, 0, len(models.AllExerciseTypes))
	for _, t := range models.AllExerciseTypes {
		out = append(out, CatalogEntry{
			Type:           t,
			Name:           t.DisplayName(),
			Category:       t.Category(),
			InputMode:      t.DefaultInputMode(),
			MET:            calories.MET(t),
			CaloriesPerRep: calories.CaloriesPerRep(t),
			SecondsPerRep:  calories.SecondsPerRep(t),
		})
	}
	return out
}

func (h *handlers) exerciseCatalog(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(req.Params.URI, exerciseCatalog())
}
