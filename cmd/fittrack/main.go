package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/multierr"
	"tailscale.com/tsnet"

	"github.com/meltforce/fittrack/internal/activity"
	"github.com/meltforce/fittrack/internal/config"
	"github.com/meltforce/fittrack/internal/gateway"
	"github.com/meltforce/fittrack/internal/store"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// command is one fittrack subcommand.
type command struct {
	name    string
	usage   string
	summary string
	auth    bool // requires stored credentials
	run     func(ctx context.Context, a *app, args []string) error
}

var commands []command

func init() {
	commands = []command{
		{"login", "login -token T -user ID", "save gateway credentials", false, runLogin},
		{"logout", "logout", "forget saved credentials", false, runLogout},
		{"whoami", "whoami", "show the logged-in user", true, runWhoami},
		{"activities", "activities [list|show|log|delete]", "list, inspect, log and delete activities", true, runActivities},
		{"estimate", "estimate -type T (-duration M | -sets S -reps R) [-weight KG]", "estimate calories for an exercise", true, runEstimate},
		{"templates", "templates [public|mine|category|difficulty|show|create|delete]", "browse and manage workout templates", true, runTemplates},
		{"workout", "workout <templateId>", "run a live workout session", true, runWorkout},
		{"history", "history", "list past workout sessions", true, runHistory},
		{"stats", "stats [-range week|month|all]", "activity statistics", true, runStats},
		{"streak", "streak [-server]", "current and longest workout streak", true, runStreak},
		{"goals", "goals [show|set -calories N -workouts N]", "weekly goals and progress", true, runGoals},
		{"achievements", "achievements", "unlocked and locked achievements", true, runAchievements},
		{"recommendation", "recommendation <activityId> | recommendation -all", "AI feedback for an activity", true, runRecommendation},
		{"profile", "profile [show|set -age N -weight KG -height CM -gender G]", "view or update the profile", true, runProfile},
		{"mcp", "mcp [-http]", "serve MCP tools over stdio or streamable HTTP", true, runMCP},
	}
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: fittrack [-config path] <command> [args]\n\nCommands:\n")
	for _, c := range commands {
		fmt.Fprintf(out, "  %-14s %s\n", c.name, c.summary)
	}
	fmt.Fprintf(out, "\nFlags:\n")
	flag.PrintDefaults()
}

// defaultConfigPath returns $FITTRACK_CONFIG, or the per-user config file
// when it exists, or "" to run on defaults.
func defaultConfigPath() string {
	if p := os.Getenv("FITTRACK_CONFIG"); p != "" {
		return p
	}
	if dir, err := os.UserConfigDir(); err == nil {
		p := filepath.Join(dir, "fittrack", "config.yaml")
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func main() {
	configPath := flag.String("config", defaultConfigPath(), "path to config file")
	version := flag.Bool("version", false, "print version and exit")
	flag.Usage = usage
	flag.Parse()

	if *version {
		fmt.Println("fittrack", Version)
		return
	}
	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}
	cmd, ok := lookup(flag.Arg(0))
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", flag.Arg(0))
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	a, err := newApp(ctx, cfg, log)
	if err == nil {
		err = a.run(ctx, cmd, flag.Args()[1:])
		err = multierr.Append(err, a.Close())
	}
	stop()

	if err != nil {
		log.Debug("command failed", "command", cmd.name, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %s\n", userMessage(err))
		os.Exit(1)
	}
}

// app carries what every command needs.
type app struct {
	cfg    *config.Config
	log    *slog.Logger
	store  *store.Store
	client *gateway.Client
	ts     *tsnet.Server
	id     gateway.Identity
	in     io.Reader
	out    io.Writer
}

func newApp(ctx context.Context, cfg *config.Config, log *slog.Logger) (*app, error) {
	st, err := store.Open(cfg.Store.Dir)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, log: log, store: st, in: os.Stdin, out: os.Stdout}

	opts := []gateway.Option{
		gateway.WithTimeout(cfg.Gateway.Timeout()),
		gateway.WithLogger(log),
	}
	if cfg.Tailscale.Enabled {
		a.ts = &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
			AuthKey:  cfg.Tailscale.AuthKey,
			Logf: func(format string, args ...any) {
				log.Debug(fmt.Sprintf(format, args...), "component", "tsnet")
			},
		}
		if err := a.ts.Start(); err != nil {
			return nil, multierr.Append(fmt.Errorf("tsnet start: %w", err), a.Close())
		}
		if _, err := a.ts.Up(ctx); err != nil {
			return nil, multierr.Append(fmt.Errorf("tsnet up: %w", err), a.Close())
		}
		log.Debug("gateway traffic routed through tailnet", "hostname", cfg.Tailscale.Hostname)
		opts = append(opts, gateway.WithTransport(a.ts.HTTPClient().Transport))
	}
	a.client = gateway.New(cfg.Gateway.URL, opts...)
	return a, nil
}

// run executes c, attaching the stored identity when c needs one.
func (a *app) run(ctx context.Context, c command, args []string) error {
	if c.auth {
		id, err := a.store.Credentials(ctx)
		if err != nil {
			return err
		}
		a.id = id
		ctx = gateway.WithIdentity(ctx, id)
	}
	return c.run(ctx, a, args)
}

// Close releases the store and the tailnet node.
func (a *app) Close() error {
	var err error
	if a.ts != nil {
		err = multierr.Append(err, a.ts.Close())
	}
	return multierr.Append(err, a.store.Close())
}

// activityLogger builds the form submitter over the gateway client.
func (a *app) activityLogger() *activity.Logger {
	return activity.NewLogger(a.client, a.log)
}

// usageError reports a malformed command line.
type usageError string

func (e usageError) Error() string { return "usage: fittrack " + string(e) }

// userMessage turns err into what the terminal shows.
func userMessage(err error) string {
	var ue usageError
	var fe activity.FieldErrors
	var ge *gateway.Error
	switch {
	case errors.As(err, &ue):
		return ue.Error()
	case errors.Is(err, store.ErrNotLoggedIn):
		return store.ErrNotLoggedIn.Error()
	case errors.Is(err, gateway.ErrRecommendationPending):
		return gateway.ErrRecommendationPending.Error()
	case errors.As(err, &fe):
		return fe.Error()
	case errors.As(err, &ge):
		return gateway.Describe(err)
	default:
		return err.Error()
	}
}
