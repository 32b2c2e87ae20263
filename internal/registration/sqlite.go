package registration

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"coursebot/internal/model"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS user_registration (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER,
	username TEXT,
	course_name TEXT,
	created_at TEXT
);`

// SQLiteConfig configures the SQLite backend. Path is required.
type SQLiteConfig struct {
	Path     string
	PoolSize int
	Logger   *slog.Logger
}

// SQLiteRecorder stores registrations in a local SQLite file.
type SQLiteRecorder struct {
	pool   *sqlitex.Pool
	logger *slog.Logger
	path   string
}

// OpenSQLite opens (or creates) the database at cfg.Path. Databases
// created by earlier versions without created_at are upgraded in place.
func OpenSQLite(cfg SQLiteConfig) (*SQLiteRecorder, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("%w: sqlite path is required", ErrStorage)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	size := cfg.PoolSize
	if size <= 0 {
		size = 4
	}

	pool, err := sqlitex.NewPool(cfg.Path, sqlitex.PoolOptions{
		PoolSize:    size,
		PrepareConn: prepareConn,
	})
	if err != nil {
		return nil, storageErr("open "+cfg.Path, err)
	}
	r := &SQLiteRecorder{pool: pool, logger: logger, path: cfg.Path}
	if err := r.migrate(context.Background()); err != nil {
		pool.Close()
		return nil, err
	}
	logger.Info("Registration store opened", "driver", DriverSQLite, "path", cfg.Path, "pool_size", size)
	return r, nil
}

func prepareConn(conn *sqlite.Conn) error {
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	} {
		if err := sqlitex.ExecuteTransient(conn, pragma, nil); err != nil {
			return fmt.Errorf("%s: %w", pragma, err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) migrate(ctx context.Context) error {
	conn, err := r.pool.Take(ctx)
	if err != nil {
		return storageErr("take", err)
	}
	defer r.pool.Put(conn)

	if err := sqlitex.ExecuteScript(conn, sqliteSchema, nil); err != nil {
		return storageErr("create table", err)
	}

	hasCreatedAt := false
	err = sqlitex.ExecuteTransient(conn, "PRAGMA table_info(user_registration)", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			if stmt.ColumnText(1) == "created_at" {
				hasCreatedAt = true
			}
			return nil
		},
	})
	if err != nil {
		return storageErr("table info", err)
	}
	if !hasCreatedAt {
		if err := sqlitex.ExecuteTransient(conn, "ALTER TABLE user_registration ADD COLUMN created_at TEXT", nil); err != nil {
			return storageErr("add created_at", err)
		}
		r.logger.Info("Registration table upgraded", "column", "created_at")
	}
	return nil
}

// Register appends one registration and returns it with its assigned id.
func (r *SQLiteRecorder) Register(ctx context.Context, userID int64, username, courseName string) (model.Registration, error) {
	conn, err := r.pool.Take(ctx)
	if err != nil {
		return model.Registration{}, storageErr("take", err)
	}
	defer r.pool.Put(conn)

	now := time.Now().UTC()
	var name any
	if username != "" {
		name = username
	}
	err = sqlitex.Execute(conn,
		`INSERT INTO user_registration (user_id, username, course_name, created_at) VALUES (?, ?, ?, ?)`,
		&sqlitex.ExecOptions{Args: []any{userID, name, courseName, now.Format(time.RFC3339Nano)}},
	)
	if err != nil {
		return model.Registration{}, storageErr("insert", err)
	}
	return model.Registration{
		ID:         conn.LastInsertRowID(),
		UserID:     userID,
		Username:   username,
		CourseName: courseName,
		CreatedAt:  now,
	}, nil
}

// List returns every registration in insertion order.
func (r *SQLiteRecorder) List(ctx context.Context) ([]model.Registration, error) {
	conn, err := r.pool.Take(ctx)
	if err != nil {
		return nil, storageErr("take", err)
	}
	defer r.pool.Put(conn)

	var out []model.Registration
	err = sqlitex.Execute(conn,
		`SELECT id, user_id, username, course_name, created_at FROM user_registration ORDER BY id`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				reg := model.Registration{
					ID:         stmt.ColumnInt64(0),
					UserID:     stmt.ColumnInt64(1),
					Username:   stmt.ColumnText(2),
					CourseName: stmt.ColumnText(3),
				}
				// rows written before created_at existed stay zero
				if ts := stmt.ColumnText(4); ts != "" {
					reg.CreatedAt, _ = time.Parse(time.RFC3339Nano, ts)
				}
				out = append(out, reg)
				return nil
			},
		},
	)
	if err != nil {
		return nil, storageErr("list", err)
	}
	return out, nil
}

// Close releases every pooled connection.
func (r *SQLiteRecorder) Close() error {
	if err := r.pool.Close(); err != nil {
		r.logger.Error("Registration store close failed", "path", r.path, "err", err)
		return storageErr("close", err)
	}
	return nil
}
