package mcp

import (
	"context"
	"errors"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/meltforce/fittrack/internal/activity"
	"github.com/meltforce/fittrack/internal/calories"
	"github.com/meltforce/fittrack/internal/gateway"
	"github.com/meltforce/fittrack/internal/models"
	"github.com/meltforce/fittrack/internal/stats"
)

const defaultActivityLimit = 50

// --- Tool definitions ---

var toolListActivities = mcp.NewTool("list_activities",
	mcp.WithDescription("List logged activities, newest first. Each entry has type, duration in minutes, calories burned, sets/reps for strength work and notes."),
	mcp.WithString("range", mcp.Description("How far back to look. Defaults to 'all'."), mcp.Enum("week", "month", "all")),
	mcp.WithString("type", mcp.Description("Only return this exercise type (e.g. RUNNING, PUSH_UP)")),
	mcp.WithNumber("limit", mcp.Description("Maximum entries to return. Defaults to 50.")),
)

var toolGetActivity = mcp.NewTool("get_activity",
	mcp.WithDescription("Get one logged activity by id."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Activity id")),
)

var toolLogActivity = mcp.NewTool("log_activity",
	mcp.WithDescription("Log a new activity. Give either duration (minutes) or sets and reps. Calories are estimated from the user's body weight when omitted."),
	mcp.WithString("type", mcp.Required(), mcp.Description("Exercise type (e.g. RUNNING, PUSH_UP, YOGA)")),
	mcp.WithNumber("duration", mcp.Description("Duration in minutes")),
	mcp.WithNumber("sets", mcp.Description("Number of sets")),
	mcp.WithNumber("reps", mcp.Description("Repetitions per set")),
	mcp.WithNumber("calories", mcp.Description("Calories burned. Estimated when omitted.")),
	mcp.WithString("notes", mcp.Description("Free-text notes")),
)

var toolEstimateCalories = mcp.NewTool("estimate_calories",
	mcp.WithDescription("Estimate calories for an exercise from a duration (MET formula) or from sets and reps. Also returns the session length in minutes."),
	mcp.WithString("type", mcp.Required(), mcp.Description("Exercise type")),
	mcp.WithNumber("duration", mcp.Description("Duration in minutes")),
	mcp.WithNumber("sets", mcp.Description("Number of sets")),
	mcp.WithNumber("reps", mcp.Description("Repetitions per set")),
	mcp.WithNumber("weight", mcp.Description("Body weight in kg. Defaults to the profile weight, or 70.")),
)

var toolGetActivityStats = mcp.NewTool("get_activity_stats",
	mcp.WithDescription("Summary statistics over a range: totals, average duration, most performed exercise, calories per day and a per-type breakdown."),
	mcp.WithString("range", mcp.Description("Defaults to 'week'."), mcp.Enum("week", "month", "all")),
)

var toolGetStreak = mcp.NewTool("get_streak",
	mcp.WithDescription("Current and longest streak of consecutive workout days, and whether the user worked out today."),
)

var toolGetWeeklyProgress = mcp.NewTool("get_weekly_progress",
	mcp.WithDescription("Calories and workouts in the last 7 days measured against the user's weekly goals."),
)

var toolGetAchievements = mcp.NewTool("get_achievements",
	mcp.WithDescription("All achievements with their unlocked status. Newly met achievements are recorded as unlocked."),
)

var toolListTemplates = mcp.NewTool("list_templates",
	mcp.WithDescription("List workout templates. Filter by category or difficulty, or list only the user's own templates."),
	mcp.WithString("scope", mcp.Description("Defaults to 'public'."), mcp.Enum("public", "mine")),
	mcp.WithString("category", mcp.Description("Template category"), mcp.Enum(models.TemplateStrength, models.TemplateCardio, models.TemplateHIIT, models.TemplateFlexibility, models.TemplateFullBody)),
	mcp.WithString("difficulty", mcp.Description("Template difficulty"), mcp.Enum(models.DifficultyBeginner, models.DifficultyIntermediate, models.DifficultyAdvanced)),
)

var toolGetTemplate = mcp.NewTool("get_template",
	mcp.WithDescription("Get one workout template with its ordered exercises, target sets/reps and rest."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Template id")),
)

var toolGetWorkoutHistory = mcp.NewTool("get_workout_history",
	mcp.WithDescription("Past workout sessions with status, per-exercise progress, calories and duration."),
)

var toolGetActiveSession = mcp.NewTool("get_active_session",
	mcp.WithDescription("The user's in-progress workout session, if any."),
)

var toolGetRecommendation = mcp.NewTool("get_recommendation",
	mcp.WithDescription("AI feedback for a logged activity: summary, improvements, suggestions and safety notes. May still be generating shortly after logging."),
	mcp.WithString("activity_id", mcp.Required(), mcp.Description("Activity id")),
)

var toolGetProfile = mcp.NewTool("get_profile",
	mcp.WithDescription("The user's profile: name, age, weight, height and gender."),
)

// --- Tool handlers ---

// gatewayError turns a gateway failure into a tool error carrying the
// user-facing message.
func (h *handlers) gatewayError(tool string, err error) *mcp.CallToolResult {
	h.log.Error("mcp "+tool, "error", err)
	return mcp.NewToolResultError(gateway.Describe(err))
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listActivities(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	r, err := stats.ParseRange(req.GetString("range", string(stats.RangeAll)))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var typ models.ExerciseType
	if s := req.GetString("type", ""); s != "" {
		if typ, err = models.ParseExerciseType(s); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	limit := req.GetInt("limit", defaultActivityLimit)

	ctx, _ = h.scope(ctx)
	acts, err := h.ds.ListActivities(ctx)
	if err != nil {
		return h.gatewayError("list_activities", err), nil
	}

	acts = stats.Filter(acts, r, h.now())
	if typ != "" {
		var matched []models.Activity
		for _, a := range acts {
			if a.Type == typ {
				matched = append(matched, a)
			}
		}
		acts = matched
	}
	stats.SortRecent(acts)
	if limit > 0 && len(acts) > limit {
		acts = acts[:limit]
	}
	if acts == nil {
		acts = []models.Activity{}
	}
	return jsonResult(acts)
}

func (h *handlers) getActivity(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}
	ctx, _ = h.scope(ctx)
	a, err := h.ds.GetActivity(ctx, id)
	if err != nil {
		return h.gatewayError("get_activity", err), nil
	}
	return jsonResult(a)
}

func (h *handlers) logActivity(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	typeStr, err := req.RequireString("type")
	if err != nil {
		return mcp.NewToolResultError("type parameter is required"), nil
	}
	typ, err := models.ParseExerciseType(typeStr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ctx, _ = h.scope(ctx)
	form := activity.NewForm(typ, h.logger.BodyWeight(ctx))
	sets, reps := req.GetInt("sets", 0), req.GetInt("reps", 0)
	if sets > 0 || reps > 0 {
		form.Mode = models.InputSetsReps
		form.Sets, form.Reps = sets, reps
	} else {
		form.Mode = models.InputDuration
		form.Duration = req.GetInt("duration", 0)
	}
	form.Notes = req.GetString("notes", "")
	if c := req.GetInt("calories", 0); c > 0 {
		form.Calories = c
	} else {
		form.Estimate()
	}

	created, err := h.logger.Submit(ctx, form)
	var fe activity.FieldErrors
	if errors.As(err, &fe) {
		return mcp.NewToolResultError(fe.Error()), nil
	}
	if err != nil {
		return h.gatewayError("log_activity", err), nil
	}
	return jsonResult(created)
}

// Estimate is the result of estimate_calories.
type Estimate struct {
	Type            models.ExerciseType `json:"type"`
	Mode            models.InputMode    `json:"mode"`
	WeightKg        float64             `json:"weightKg"`
	Calories        int                 `json:"calories"`
	DurationMinutes int                 `json:"durationMinutes"`
}

func (h *handlers) estimateCalories(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	typeStr, err := req.RequireString("type")
	if err != nil {
		return mcp.NewToolResultError("type parameter is required"), nil
	}
	typ, err := models.ParseExerciseType(typeStr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	weight := req.GetFloat("weight", 0)
	if weight <= 0 {
		ctx, _ = h.scope(ctx)
		weight = h.logger.BodyWeight(ctx)
	}

	est := Estimate{Type: typ, WeightKg: weight}
	sets, reps := req.GetInt("sets", 0), req.GetInt("reps", 0)
	duration := req.GetFloat("duration", 0)
	switch {
	case sets > 0 && reps > 0:
		est.Mode = models.InputSetsReps
		est.Calories = calories.FromSetsReps(typ, sets, reps, weight)
		est.DurationMinutes = calories.DurationFromSetsReps(typ, sets, reps)
	case duration > 0:
		est.Mode = models.InputDuration
		est.Calories = calories.FromDuration(typ, duration, weight)
		est.DurationMinutes = int(duration)
	default:
		return mcp.NewToolResultError("give a positive duration, or positive sets and reps"), nil
	}
	return jsonResult(est)
}

// ActivityStats is the result of get_activity_stats.
type ActivityStats struct {
	Range         stats.Range       `json:"range"`
	Summary       stats.Summary     `json:"summary"`
	CaloriesByDay []stats.DayTotal  `json:"caloriesByDay"`
	TypeBreakdown []stats.TypeCount `json:"typeBreakdown"`
	PerWeekday    map[string]int    `json:"workoutsPerWeekday"`
}

func (h *handlers) getActivityStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	r, err := stats.ParseRange(req.GetString("range", string(stats.RangeWeek)))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ctx, _ = h.scope(ctx)
	acts, err := h.ds.ListActivities(ctx)
	if err != nil {
		return h.gatewayError("get_activity_stats", err), nil
	}

	now := h.now()
	inRange := stats.Filter(acts, r, now)
	perDay := stats.WorkoutsPerWeekday(inRange, now.Location())
	weekdays := make(map[string]int, len(perDay))
	for i, n := range perDay {
		weekdays[stats.Weekdays[i]] = n
	}
	return jsonResult(ActivityStats{
		Range:         r,
		Summary:       stats.Summarize(acts, r, now),
		CaloriesByDay: stats.CaloriesByDay(inRange, now.Location()),
		TypeBreakdown: stats.TypeBreakdown(inRange),
		PerWeekday:    weekdays,
	})
}

func (h *handlers) getStreak(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx, _ = h.scope(ctx)
	acts, err := h.ds.ListActivities(ctx)
	if err != nil {
		return h.gatewayError("get_streak", err), nil
	}
	return jsonResult(stats.ComputeStreak(stats.ActivityTimes(acts), h.now()))
}

// WeeklyProgress is the result of get_weekly_progress.
type WeeklyProgress struct {
	Goals    stats.Goals    `json:"goals"`
	Progress stats.Progress `json:"progress"`
}

func (h *handlers) getWeeklyProgress(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx, id := h.scope(ctx)
	goals, err := h.prefs.Goals(ctx, id.UserID)
	if err != nil {
		h.log.Warn("mcp get_weekly_progress: reading goals, using defaults", "error", err)
		goals = stats.DefaultGoals()
	}
	acts, err := h.ds.ListActivities(ctx)
	if err != nil {
		return h.gatewayError("get_weekly_progress", err), nil
	}
	return jsonResult(WeeklyProgress{Goals: goals, Progress: stats.WeeklyProgress(acts, goals, h.now())})
}

// AchievementStatus is one entry of get_achievements.
type AchievementStatus struct {
	stats.Achievement
	Unlocked bool `json:"unlocked"`
}

func (h *handlers) getAchievements(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx, id := h.scope(ctx)
	acts, err := h.ds.ListActivities(ctx)
	if err != nil {
		return h.gatewayError("get_achievements", err), nil
	}
	unlocked, err := h.prefs.UnlockAchievements(ctx, id.UserID, stats.Evaluate(acts, h.now()))
	if err != nil {
		h.log.Error("mcp get_achievements", "error", err)
		return mcp.NewToolResultError("could not record achievements: " + err.Error()), nil
	}
	return jsonResult(achievementStatuses(unlocked))
}

func achievementStatuses(unlocked []string) []AchievementStatus {
	have := make(map[string]bool, len(unlocked))
	for _, id := range unlocked {
		have[id] = true
	}
	var out []AchievementStatus
	for _, a := range stats.Achievements() {
		out = append(out, AchievementStatus{Achievement: a, Unlocked: have[a.ID]})
	}
	return out
}

func (h *handlers) listTemplates(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx, _ = h.scope(ctx)

	var (
		list []models.WorkoutTemplate
		err  error
	)
	category := strings.ToUpper(req.GetString("category", ""))
	difficulty := strings.ToUpper(req.GetString("difficulty", ""))
	switch {
	case req.GetString("scope", "public") == "mine":
		list, err = h.ds.ListMyTemplates(ctx)
	case category != "":
		list, err = h.ds.ListTemplatesByCategory(ctx, category)
	case difficulty != "":
		list, err = h.ds.ListTemplatesByDifficulty(ctx, difficulty)
	default:
		list, err = h.ds.ListPublicTemplates(ctx)
	}
	if err != nil {
		return h.gatewayError("list_templates", err), nil
	}

	// The gateway filters by one field at a time.
	var out []models.WorkoutTemplate
	for _, t := range list {
		if category != "" && t.Category != category {
			continue
		}
		if difficulty != "" && t.Difficulty != difficulty {
			continue
		}
		out = append(out, t)
	}
	if out == nil {
		out = []models.WorkoutTemplate{}
	}
	return jsonResult(out)
}

func (h *handlers) getTemplate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}
	ctx, _ = h.scope(ctx)
	t, err := h.ds.GetTemplate(ctx, id)
	if err != nil {
		return h.gatewayError("get_template", err), nil
	}
	return jsonResult(t)
}

func (h *handlers) getWorkoutHistory(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx, _ = h.scope(ctx)
	sessions, err := h.ds.SessionHistory(ctx)
	if err != nil {
		return h.gatewayError("get_workout_history", err), nil
	}
	if sessions == nil {
		sessions = []models.WorkoutSession{}
	}
	return jsonResult(sessions)
}

func (h *handlers) getActiveSession(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx, _ = h.scope(ctx)
	s, err := h.ds.GetActiveSession(ctx)
	if err != nil {
		return h.gatewayError("get_active_session", err), nil
	}
	if s == nil {
		return mcp.NewToolResultText("No workout session in progress."), nil
	}
	return jsonResult(s)
}

func (h *handlers) getRecommendation(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("activity_id")
	if err != nil {
		return mcp.NewToolResultError("activity_id parameter is required"), nil
	}
	ctx, _ = h.scope(ctx)
	rec, err := h.ds.GetRecommendation(ctx, id)
	if errors.Is(err, gateway.ErrRecommendationPending) {
		return mcp.NewToolResultText(err.Error()), nil
	}
	if err != nil {
		return h.gatewayError("get_recommendation", err), nil
	}
	return jsonResult(rec)
}

func (h *handlers) getProfile(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx, _ = h.scope(ctx)
	p, err := h.ds.GetProfile(ctx)
	if err != nil {
		return h.gatewayError("get_profile", err), nil
	}
	return jsonResult(p)
}
