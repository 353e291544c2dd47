// Package mcp exposes the fitness gateway as MCP tools and resources, so an
// assistant can read activities, templates and dashboards and log workouts.
package mcp

import (
	"context"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/meltforce/fittrack/internal/activity"
	"github.com/meltforce/fittrack/internal/gateway"
)

// New creates an MCP server with all tools and resources registered. Calls
// without an identity in their context act as id.
func New(ds DataSource, prefs Prefs, id gateway.Identity, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("fittrack", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("fittrack fitness server. Query logged activities, workout templates and sessions, streaks, weekly goals and achievements, estimate calories and log new activities. All data is scoped to the logged-in user."),
	)

	h := newHandlers(ds, prefs, id, log)

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolListActivities, Handler: h.listActivities},
		server.ServerTool{Tool: toolGetActivity, Handler: h.getActivity},
		server.ServerTool{Tool: toolLogActivity, Handler: h.logActivity},
		server.ServerTool{Tool: toolEstimateCalories, Handler: h.estimateCalories},
		server.ServerTool{Tool: toolGetActivityStats, Handler: h.getActivityStats},
		server.ServerTool{Tool: toolGetStreak, Handler: h.getStreak},
		server.ServerTool{Tool: toolGetWeeklyProgress, Handler: h.getWeeklyProgress},
		server.ServerTool{Tool: toolGetAchievements, Handler: h.getAchievements},
		server.ServerTool{Tool: toolListTemplates, Handler: h.listTemplates},
		server.ServerTool{Tool: toolGetTemplate, Handler: h.getTemplate},
		server.ServerTool{Tool: toolGetWorkoutHistory, Handler: h.getWorkoutHistory},
		server.ServerTool{Tool: toolGetActiveSession, Handler: h.getActiveSession},
		server.ServerTool{Tool: toolGetRecommendation, Handler: h.getRecommendation},
		server.ServerTool{Tool: toolGetProfile, Handler: h.getProfile},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resToday, Handler: h.today},
		server.ServerResource{Resource: resRecentActivities, Handler: h.recentActivities},
		server.ServerResource{Resource: resExerciseCatalog, Handler: h.exerciseCatalog},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds     DataSource
	prefs  Prefs
	id     gateway.Identity
	logger *activity.Logger
	log    *slog.Logger
	now    func() time.Time
}

func newHandlers(ds DataSource, prefs Prefs, id gateway.Identity, log *slog.Logger) *handlers {
	return &handlers{
		ds:     ds,
		prefs:  prefs,
		id:     id,
		logger: activity.NewLogger(ds, log),
		log:    log,
		now:    time.Now,
	}
}

// scope returns ctx carrying an identity, defaulting to the server's.
func (h *handlers) scope(ctx context.Context) (context.Context, gateway.Identity) {
	if id, ok := gateway.IdentityFrom(ctx); ok {
		return ctx, id
	}
	return gateway.WithIdentity(ctx, h.id), h.id
}

// --- Resource definitions ---

var resToday = mcp.NewResource(
	"fittrack://today",
	"Today",
	mcp.WithResourceDescription("Current streak, progress towards this week's goals and any in-progress workout session"),
	mcp.WithMIMEType("application/json"),
)

var resRecentActivities = mcp.NewResource(
	"fittrack://recent_activities",
	"Recent Activities",
	mcp.WithResourceDescription("Activities logged in the last 7 days"),
	mcp.WithMIMEType("application/json"),
)

var resExerciseCatalog = mcp.NewResource(
	"fittrack://exercise_catalog",
	"Exercise Catalog",
	mcp.WithResourceDescription("All exercise types with category, default input mode and calorie factors"),
	mcp.WithMIMEType("application/json"),
)
