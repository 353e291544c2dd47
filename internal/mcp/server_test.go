package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/meltforce/fittrack/internal/gateway"
	"github.com/meltforce/fittrack/internal/models"
	"github.com/meltforce/fittrack/internal/stats"
)

var testNow = time.Date(2024, 6, 15, 18, 0, 0, 0, time.UTC)

type fakeSource struct {
	activities []models.Activity
	templates  map[string][]models.WorkoutTemplate // keyed by listing
	active     *models.WorkoutSession
	profile    *models.UserProfile
	rec        *models.Recommendation
	err        error

	created  []models.Activity
	identity gateway.Identity
}

func (f *fakeSource) seen(ctx context.Context) {
	f.identity, _ = gateway.IdentityFrom(ctx)
}

func (f *fakeSource) ListActivities(ctx context.Context) ([]models.Activity, error) {
	f.seen(ctx)
	return append([]models.Activity(nil), f.activities...), f.err
}

func (f *fakeSource) GetActivity(ctx context.Context, id string) (*models.Activity, error) {
	f.seen(ctx)
	if f.err != nil {
		return nil, f.err
	}
	for _, a := range f.activities {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, &gateway.Error{Kind: gateway.KindNotFound, Op: "GET /activities/" + id, Status: 404}
}

func (f *fakeSource) CreateActivity(ctx context.Context, a models.Activity) (*models.Activity, error) {
	f.seen(ctx)
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, a)
	a.ID = "new"
	return &a, nil
}

func (f *fakeSource) GetProfile(context.Context) (*models.UserProfile, error) {
	if f.profile == nil {
		return nil, &gateway.Error{Kind: gateway.KindNotFound, Op: "GET /users/profile", Status: 404}
	}
	return f.profile, nil
}

func (f *fakeSource) GetRecommendation(_ context.Context, _ string) (*models.Recommendation, error) {
	if f.rec == nil {
		return nil, gateway.ErrRecommendationPending
	}
	return f.rec, nil
}

func (f *fakeSource) ListPublicTemplates(context.Context) ([]models.WorkoutTemplate, error) {
	return f.templates["public"], f.err
}

func (f *fakeSource) ListMyTemplates(context.Context) ([]models.WorkoutTemplate, error) {
	return f.templates["mine"], f.err
}

func (f *fakeSource) ListTemplatesByCategory(_ context.Context, c string) ([]models.WorkoutTemplate, error) {
	return f.templates["category:"+c], f.err
}

func (f *fakeSource) ListTemplatesByDifficulty(_ context.Context, d string) ([]models.WorkoutTemplate, error) {
	return f.templates["difficulty:"+d], f.err
}

func (f *fakeSource) GetTemplate(_ context.Context, id string) (*models.WorkoutTemplate, error) {
	return &models.WorkoutTemplate{ID: id, Name: "Push Day"}, f.err
}

func (f *fakeSource) GetActiveSession(context.Context) (*models.WorkoutSession, error) {
	return f.active, f.err
}

func (f *fakeSource) SessionHistory(context.Context) ([]models.WorkoutSession, error) {
	return nil, f.err
}

type fakePrefs struct {
	goals    map[string]stats.Goals
	unlocked map[string][]string
}

func (p *fakePrefs) Goals(_ context.Context, userID string) (stats.Goals, error) {
	if g, ok := p.goals[userID]; ok {
		return g, nil
	}
	return stats.DefaultGoals(), nil
}

func (p *fakePrefs) UnlockAchievements(_ context.Context, userID string, ids []string) ([]string, error) {
	if p.unlocked == nil {
		p.unlocked = map[string][]string{}
	}
	p.unlocked[userID] = stats.Merge(p.unlocked[userID], ids)
	return p.unlocked[userID], nil
}

var defaultID = gateway.Identity{Token: "tok", UserID: "u1"}

func newTestHandlers(ds *fakeSource, prefs *fakePrefs) *handlers {
	h := newHandlers(ds, prefs, defaultID, slog.New(slog.NewTextHandler(io.Discard, nil)))
	h.now = func() time.Time { return testNow }
	return h
}

func callTool(t *testing.T, fn func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) *mcp.CallToolResult {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	res, err := fn(context.Background(), req)
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("empty result")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want TextContent", res.Content[0])
	}
	return tc.Text
}

func decodeResult(t *testing.T, res *mcp.CallToolResult, v any) {
	t.Helper()
	if res.IsError {
		t.Fatalf("tool error: %s", resultText(t, res))
	}
	if err := json.Unmarshal([]byte(resultText(t, res)), v); err != nil {
		t.Fatalf("decoding result: %v", err)
	}
}

func act(id string, typ models.ExerciseType, daysAgo int, kcal int) models.Activity {
	return models.Activity{
		ID:             id,
		Type:           typ,
		Duration:       30,
		CaloriesBurned: kcal,
		CreatedAt:      models.NewTimestamp(testNow.AddDate(0, 0, -daysAgo)),
	}
}

// TestScopeDefaultsIdentity verifies calls without an identity act as the
// configured user, and an identity already in the context wins.
func TestScopeDefaultsIdentity(t *testing.T) {
	h := newTestHandlers(&fakeSource{}, &fakePrefs{})

	ctx, id := h.scope(context.Background())
	if id != defaultID {
		t.Errorf("id=%+v, want default", id)
	}
	if got, ok := gateway.IdentityFrom(ctx); !ok || got != defaultID {
		t.Errorf("context identity=%+v ok=%v, want default", got, ok)
	}

	other := gateway.Identity{Token: "x", UserID: "u9"}
	_, id = h.scope(gateway.WithIdentity(context.Background(), other))
	if id != other {
		t.Errorf("id=%+v, want %+v", id, other)
	}
}

// TestListActivities verifies range and type filters, newest-first order
// and the limit.
func TestListActivities(t *testing.T) {
	ds := &fakeSource{activities: []models.Activity{
		act("old", models.Running, 40, 300),
		act("a", models.Running, 3, 200),
		act("b", models.Yoga, 1, 100),
		act("c", models.Running, 0, 250),
	}}
	h := newTestHandlers(ds, &fakePrefs{})

	var got []models.Activity
	decodeResult(t, callTool(t, h.listActivities, map[string]any{"range": "week", "type": "running"}), &got)
	if len(got) != 2 || got[0].ID != "c" || got[1].ID != "a" {
		t.Fatalf("got %v, want [c a]", ids(got))
	}
	if ds.identity != defaultID {
		t.Errorf("gateway saw identity %+v, want default", ds.identity)
	}

	decodeResult(t, callTool(t, h.listActivities, map[string]any{"limit": float64(1)}), &got)
	if len(got) != 1 || got[0].ID != "c" {
		t.Errorf("got %v, want [c]", ids(got))
	}
}

func ids(acts []models.Activity) []string {
	var out []string
	for _, a := range acts {
		out = append(out, a.ID)
	}
	return out
}

// TestListActivities_BadRange verifies an unknown range is a tool error.
func TestListActivities_BadRange(t *testing.T) {
	h := newTestHandlers(&fakeSource{}, &fakePrefs{})
	res := callTool(t, h.listActivities, map[string]any{"range": "year"})
	if !res.IsError {
		t.Error("expected tool error for unknown range")
	}
}

// TestGetActivity_NotFound verifies gateway failures surface as the
// user-facing message.
func TestGetActivity_NotFound(t *testing.T) {
	h := newTestHandlers(&fakeSource{}, &fakePrefs{})
	res := callTool(t, h.getActivity, map[string]any{"id": "missing"})
	if !res.IsError {
		t.Fatal("expected tool error")
	}
	if got := resultText(t, res); got != "Activity not found. It may have been deleted." {
		t.Errorf("text=%q", got)
	}
}

// TestLogActivity_SetsReps verifies sets/reps logging estimates calories
// from the profile weight and derives the duration.
func TestLogActivity_SetsReps(t *testing.T) {
	ds := &fakeSource{profile: &models.UserProfile{Weight: 140}}
	h := newTestHandlers(ds, &fakePrefs{})

	var got models.Activity
	decodeResult(t, callTool(t, h.logActivity, map[string]any{
		"type": "PUSH_UP", "sets": float64(3), "reps": float64(10), "notes": "  felt good ",
	}), &got)

	if len(ds.created) != 1 {
		t.Fatalf("created %d activities, want 1", len(ds.created))
	}
	a := ds.created[0]
	if a.CaloriesBurned != 30 {
		t.Errorf("calories=%d, want 30", a.CaloriesBurned)
	}
	if a.Duration != 4 {
		t.Errorf("duration=%d, want 4", a.Duration)
	}
	if a.AdditionalMetrics["sets"] != "3" || a.AdditionalMetrics["reps"] != "10" {
		t.Errorf("additionalMetrics=%v", a.AdditionalMetrics)
	}
	if a.Notes != "felt good" {
		t.Errorf("notes=%q, want trimmed", a.Notes)
	}
	if got.ID != "new" {
		t.Errorf("returned id=%q, want new", got.ID)
	}
}

// TestLogActivity_Duration verifies duration logging with explicit calories
// keeps the caller's number.
func TestLogActivity_Duration(t *testing.T) {
	ds := &fakeSource{}
	h := newTestHandlers(ds, &fakePrefs{})

	callTool(t, h.logActivity, map[string]any{"type": "RUNNING", "duration": float64(30), "calories": float64(333)})
	if len(ds.created) != 1 {
		t.Fatalf("created %d activities, want 1", len(ds.created))
	}
	if a := ds.created[0]; a.Duration != 30 || a.CaloriesBurned != 333 {
		t.Errorf("got duration=%d calories=%d, want 30/333", a.Duration, a.CaloriesBurned)
	}
}

// TestLogActivity_Invalid verifies validation failures never reach the gateway.
func TestLogActivity_Invalid(t *testing.T) {
	ds := &fakeSource{}
	h := newTestHandlers(ds, &fakePrefs{})

	res := callTool(t, h.logActivity, map[string]any{"type": "RUNNING"})
	if !res.IsError {
		t.Fatal("expected tool error")
	}
	if !strings.Contains(resultText(t, res), "Duration must be greater than 0") {
		t.Errorf("text=%q", resultText(t, res))
	}
	if len(ds.created) != 0 {
		t.Error("gateway was called for an invalid form")
	}

	res = callTool(t, h.logActivity, map[string]any{"type": "SKYDIVING", "duration": float64(10)})
	if !res.IsError {
		t.Error("expected tool error for unknown type")
	}
}

// TestEstimateCalories verifies both estimator modes and the weight fallback.
func TestEstimateCalories(t *testing.T) {
	h := newTestHandlers(&fakeSource{}, &fakePrefs{})

	var est Estimate
	decodeResult(t, callTool(t, h.estimateCalories, map[string]any{"type": "RUNNING", "duration": float64(30)}), &est)
	if est.WeightKg != 70 || est.Calories != 343 || est.Mode != models.InputDuration {
		t.Errorf("got %+v, want 343 kcal at 70 kg", est)
	}

	decodeResult(t, callTool(t, h.estimateCalories, map[string]any{
		"type": "PULL_UP", "sets": float64(4), "reps": float64(8), "weight": float64(70),
	}), &est)
	if est.Calories != 38 || est.Mode != models.InputSetsReps {
		t.Errorf("got %+v, want 38 kcal in sets/reps mode", est)
	}

	if res := callTool(t, h.estimateCalories, map[string]any{"type": "RUNNING"}); !res.IsError {
		t.Error("expected tool error without duration or sets/reps")
	}
}

// TestGetRecommendation_Pending verifies a pending recommendation is
// reported as a plain message rather than an error.
func TestGetRecommendation_Pending(t *testing.T) {
	h := newTestHandlers(&fakeSource{}, &fakePrefs{})
	res := callTool(t, h.getRecommendation, map[string]any{"activity_id": "a1"})
	if res.IsError {
		t.Fatal("pending recommendation reported as error")
	}
	if got := resultText(t, res); got != gateway.ErrRecommendationPending.Error() {
		t.Errorf("text=%q", got)
	}
}

// TestGetWeeklyProgress verifies the stored goals are applied.
func TestGetWeeklyProgress(t *testing.T) {
	ds := &fakeSource{activities: []models.Activity{
		act("a", models.Running, 1, 500),
		act("b", models.Yoga, 2, 500),
		act("old", models.Yoga, 20, 900),
	}}
	prefs := &fakePrefs{goals: map[string]stats.Goals{"u1": {WeeklyCalories: 2000, WeeklyWorkouts: 4}}}
	h := newTestHandlers(ds, prefs)

	var got WeeklyProgress
	decodeResult(t, callTool(t, h.getWeeklyProgress, nil), &got)
	if got.Progress.Calories != 1000 || got.Progress.CaloriesPct != 50 {
		t.Errorf("calories=%d (%v%%), want 1000 (50%%)", got.Progress.Calories, got.Progress.CaloriesPct)
	}
	if got.Progress.Workouts != 2 || got.Progress.WorkoutsPct != 50 {
		t.Errorf("workouts=%d (%v%%), want 2 (50%%)", got.Progress.Workouts, got.Progress.WorkoutsPct)
	}
}

// TestGetAchievements verifies newly met achievements are recorded and
// every catalogue entry is reported.
func TestGetAchievements(t *testing.T) {
	ds := &fakeSource{activities: []models.Activity{act("a", models.Running, 0, 100)}}
	prefs := &fakePrefs{}
	h := newTestHandlers(ds, prefs)

	var got []AchievementStatus
	decodeResult(t, callTool(t, h.getAchievements, nil), &got)
	if len(got) != len(stats.Achievements()) {
		t.Fatalf("got %d entries, want %d", len(got), len(stats.Achievements()))
	}
	for _, a := range got {
		if want := a.ID == "first_workout"; a.Unlocked != want {
			t.Errorf("%s unlocked=%v, want %v", a.ID, a.Unlocked, want)
		}
	}
	if len(prefs.unlocked["u1"]) != 1 {
		t.Errorf("stored=%v, want [first_workout]", prefs.unlocked["u1"])
	}
}

// TestListTemplates verifies scope and filter routing.
func TestListTemplates(t *testing.T) {
	ds := &fakeSource{templates: map[string][]models.WorkoutTemplate{
		"public": {{ID: "p1"}},
		"mine":   {{ID: "m1", Category: "CARDIO"}, {ID: "m2", Category: "STRENGTH"}},
		"category:HIIT": {
			{ID: "h1", Category: "HIIT", Difficulty: "ADVANCED"},
			{ID: "h2", Category: "HIIT", Difficulty: "BEGINNER"},
		},
	}}
	h := newTestHandlers(ds, &fakePrefs{})

	cases := []struct {
		args map[string]any
		want []string
	}{
		{nil, []string{"p1"}},
		{map[string]any{"scope": "mine", "category": "strength"}, []string{"m2"}},
		{map[string]any{"category": "HIIT", "difficulty": "BEGINNER"}, []string{"h2"}},
	}
	for _, tc := range cases {
		var got []models.WorkoutTemplate
		decodeResult(t, callTool(t, h.listTemplates, tc.args), &got)
		if len(got) != len(tc.want) {
			t.Errorf("%v: got %d templates, want %v", tc.args, len(got), tc.want)
			continue
		}
		for i := range got {
			if got[i].ID != tc.want[i] {
				t.Errorf("%v: got %s at %d, want %s", tc.args, got[i].ID, i, tc.want[i])
			}
		}
	}
}

// TestGetActiveSession_None verifies the no-session case is a message.
func TestGetActiveSession_None(t *testing.T) {
	h := newTestHandlers(&fakeSource{}, &fakePrefs{})
	res := callTool(t, h.getActiveSession, nil)
	if res.IsError || !strings.Contains(resultText(t, res), "No workout session") {
		t.Errorf("got %q", resultText(t, res))
	}
}

// TestExerciseCatalog verifies every exercise type is described.
func TestExerciseCatalog(t *testing.T) {
	entries := exerciseCatalog()
	if len(entries) != len(models.AllExerciseTypes) {
		t.Fatalf("got %d entries, want %d", len(entries), len(models.AllExerciseTypes))
	}
	for _, e := range entries {
		if e.Type == models.PushUp && (e.InputMode != models.InputSetsReps || e.MET != 8.0) {
			t.Errorf("PUSH_UP entry = %+v", e)
		}
	}
}

// TestTodayResource verifies the today resource reports streak and goals.
func TestTodayResource(t *testing.T) {
	ds := &fakeSource{activities: []models.Activity{
		act("a", models.Running, 0, 100),
		act("b", models.Running, 1, 100),
	}}
	h := newTestHandlers(ds, &fakePrefs{})

	var req mcp.ReadResourceRequest
	req.Params.URI = "fittrack://today"
	contents, err := h.today(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	text := contents[0].(mcp.TextResourceContents).Text

	var got struct {
		Date   string       `json:"date"`
		Streak stats.Streak `json:"streak"`
		Goals  stats.Goals  `json:"goals"`
	}
	if err := json.Unmarshal([]byte(text), &got); err != nil {
		t.Fatal(err)
	}
	if got.Date != "2024-06-15" {
		t.Errorf("date=%q", got.Date)
	}
	if got.Streak.Current != 2 || !got.Streak.WorkedOutToday {
		t.Errorf("streak=%+v, want current 2 today", got.Streak)
	}
	if got.Goals != stats.DefaultGoals() {
		t.Errorf("goals=%+v, want defaults", got.Goals)
	}
}
