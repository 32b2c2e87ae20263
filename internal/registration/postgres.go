package registration

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"coursebot/internal/model"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS user_registration (
	id BIGSERIAL PRIMARY KEY,
	user_id BIGINT,
	username TEXT,
	course_name TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresConfig configures the PostgreSQL backend. DSN is required.
type PostgresConfig struct {
	DSN      string
	MaxConns int32
	Logger   *slog.Logger
}

// PostgresRecorder stores registrations in PostgreSQL.
type PostgresRecorder struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// OpenPostgres connects, pings and creates the table if absent.
func OpenPostgres(ctx context.Context, cfg PostgresConfig) (*PostgresRecorder, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("%w: postgres dsn is required", ErrStorage)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, storageErr("parse dsn", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, storageErr("connect", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, storageErr("ping", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, storageErr("create table", err)
	}
	logger.Info("Registration store opened", "driver", DriverPostgres, "max_conns", poolCfg.MaxConns)
	return &PostgresRecorder{pool: pool, logger: logger}, nil
}

// Register appends one registration and returns it with its assigned id.
func (r *PostgresRecorder) Register(ctx context.Context, userID int64, username, courseName string) (model.Registration, error) {
	var name *string
	if username != "" {
		name = &username
	}
	reg := model.Registration{UserID: userID, Username: username, CourseName: courseName}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO user_registration (user_id, username, course_name)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		userID, name, courseName,
	).Scan(&reg.ID, &reg.CreatedAt)
	if err != nil {
		return model.Registration{}, storageErr("insert", err)
	}
	return reg, nil
}

// List returns every registration in insertion order.
func (r *PostgresRecorder) List(ctx context.Context) ([]model.Registration, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, username, course_name, created_at
		 FROM user_registration
		 ORDER BY id`,
	)
	if err != nil {
		return nil, storageErr("list", err)
	}
	defer rows.Close()

	var out []model.Registration
	for rows.Next() {
		var reg model.Registration
		var name *string
		if err := rows.Scan(&reg.ID, &reg.UserID, &name, &reg.CourseName, &reg.CreatedAt); err != nil {
			return nil, storageErr("scan", err)
		}
		if name != nil {
			reg.Username = *name
		}
		out = append(out, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list", err)
	}
	return out, nil
}

// Close closes the pool.
func (r *PostgresRecorder) Close() error {
	r.pool.Close()
	return nil
}
