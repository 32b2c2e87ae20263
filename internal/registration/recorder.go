// Package registration stores course-registration intents.
//
// Records are append-only: the same user may register for the same course
// any number of times, and course names are not checked against the
// catalog.
package registration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"coursebot/internal/model"
)

// ErrStorage wraps every failure reported by a Recorder.
var ErrStorage = errors.New("registration storage error")

// Recorder persists registrations.
type Recorder interface {
	Register(ctx context.Context, userID int64, username, courseName string) (model.Registration, error)
	List(ctx context.Context) ([]model.Registration, error)
	Close() error
}

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config selects and configures a storage backend.
type Config struct {
	Driver      string
	SQLitePath  string
	PostgresDSN string
	PoolSize    int
	Logger      *slog.Logger
}

// Open returns the Recorder for cfg.Driver, creating the table if absent.
func Open(ctx context.Context, cfg Config) (Recorder, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", DriverSQLite:
		r, err := OpenSQLite(SQLiteConfig{Path: cfg.SQLitePath, PoolSize: cfg.PoolSize, Logger: cfg.Logger})
		if err != nil {
			return nil, err
		}
		return r, nil
	case DriverPostgres:
		r, err := OpenPostgres(ctx, PostgresConfig{DSN: cfg.PostgresDSN, MaxConns: int32(cfg.PoolSize), Logger: cfg.Logger})
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, fmt.Errorf("%w: unknown driver %q", ErrStorage, cfg.Driver)
	}
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}
