// Package store is the local SQLite file holding what the client keeps
// between runs: the login credentials, weekly goals and unlocked
// achievements. Everything else lives in the gateway.
package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"

	"github.com/meltforce/fittrack/internal/gateway"
	"github.com/meltforce/fittrack/internal/stats"
)

// FileName is the database file created inside the store directory.
const FileName = "fittrack.db"

// ErrNotLoggedIn is returned when no credentials have been saved.
var ErrNotLoggedIn = errors.New("not logged in: run 'fittrack login' first")

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store wraps the SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) dir/fittrack.db and applies pending migrations.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating store dir %s: %w", dir, err)
	}
	path := filepath.Join(dir, FileName)

	if err := runMigrations(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// runMigrations applies the embedded schema with its own connection.
func runMigrations(path string) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, "sqlite://"+path)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveCredentials replaces the stored login.
func (s *Store) SaveCredentials(ctx context.Context, id gateway.Identity) error {
	if id.Token == "" || id.UserID == "" {
		return errors.New("token and user id are both required")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO credentials (id, token, user_id, saved_at) VALUES (1, ?, ?, CURRENT_TIMESTAMP)`,
		id.Token, id.UserID,
	)
	if err != nil {
		return fmt.Errorf("saving credentials: %w", err)
	}
	return nil
}

// Credentials returns the stored login or ErrNotLoggedIn.
func (s *Store) Credentials(ctx context.Context) (gateway.Identity, error) {
	var id gateway.Identity
	err := s.db.QueryRowContext(ctx, `SELECT token, user_id FROM credentials WHERE id = 1`).Scan(&id.Token, &id.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return gateway.Identity{}, ErrNotLoggedIn
	}
	if err != nil {
		return gateway.Identity{}, fmt.Errorf("reading credentials: %w", err)
	}
	return id, nil
}

// ClearCredentials forgets the stored login. Goals and achievements stay.
func (s *Store) ClearCredentials(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM credentials`); err != nil {
		return fmt.Errorf("clearing credentials: %w", err)
	}
	return nil
}

// Goals returns userID's weekly goals, or the defaults when none are saved.
func (s *Store) Goals(ctx context.Context, userID string) (stats.Goals, error) {
	var g stats.Goals
	err := s.db.QueryRowContext(ctx,
		`SELECT weekly_calories, weekly_workouts FROM weekly_goals WHERE user_id = ?`, userID,
	).Scan(&g.WeeklyCalories, &g.WeeklyWorkouts)
	if errors.Is(err, sql.ErrNoRows) {
		return stats.DefaultGoals(), nil
	}
	if err != nil {
		return stats.Goals{}, fmt.Errorf("reading goals: %w", err)
	}
	return g, nil
}

// SaveGoals stores userID's weekly goals. Both targets must be positive.
func (s *Store) SaveGoals(ctx context.Context, userID string, g stats.Goals) error {
	if g.WeeklyCalories <= 0 || g.WeeklyWorkouts <= 0 {
		return fmt.Errorf("goals must be positive, got %d kcal / %d workouts", g.WeeklyCalories, g.WeeklyWorkouts)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO weekly_goals (user_id, weekly_calories, weekly_workouts) VALUES (?, ?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET
		   weekly_calories = excluded.weekly_calories,
		   weekly_workouts = excluded.weekly_workouts,
		   updated_at = CURRENT_TIMESTAMP`,
		userID, g.WeeklyCalories, g.WeeklyWorkouts,
	)
	if err != nil {
		return fmt.Errorf("saving goals: %w", err)
	}
	return nil
}

// Achievements returns userID's unlocked achievement ids in unlock order.
func (s *Store) Achievements(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT achievement_id FROM achievements WHERE user_id = ? ORDER BY unlocked_at, rowid`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("reading achievements: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning achievement: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// UnlockAchievements records ids as unlocked for userID and returns the
// full unlocked set. Already unlocked ids are kept as they were.
func (s *Store) UnlockAchievements(ctx context.Context, userID string, ids []string) ([]string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, id := range ids {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO achievements (user_id, achievement_id) VALUES (?, ?)`, userID, id,
		); err != nil {
			return nil, fmt.Errorf("unlocking %s: %w", id, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.Achievements(ctx, userID)
}
