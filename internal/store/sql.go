package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"todo/internal/service"
)

// dialect holds what differs between database/sql backends.
// Both use ? placeholders.
type dialect struct {
	driverName string
	pragmas    []string
	schema     string
}

var sqliteDialect = dialect{
	driverName: "sqlite",
	pragmas: []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	},
	schema: `CREATE TABLE IF NOT EXISTS tasks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		description TEXT NOT NULL,
		status TEXT NOT NULL
	)`,
}

var mysqlDialect = dialect{
	driverName: "mysql",
	schema: `CREATE TABLE IF NOT EXISTS tasks (
		id BIGINT PRIMARY KEY AUTO_INCREMENT,
		description TEXT NOT NULL,
		status TEXT NOT NULL
	)`,
}

// SQLStore is a service.Store backed by database/sql.
type SQLStore struct {
	db  *sql.DB
	log *slog.Logger
}

// OpenSQLite opens (creating if needed) the sqlite database file at path.
func OpenSQLite(ctx context.Context, path string, log *slog.Logger) (*SQLStore, error) {
	if path != ":memory:" && !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("storage unavailable: create db dir: %w", err)
		}
	}
	s, err := openSQL(ctx, sqliteDialect, path, log)
	if err != nil {
		return nil, err
	}
	// One writer at a time; also keeps :memory: databases on a single connection.
	s.db.SetMaxOpenConns(1)
	return s, nil
}

// OpenMySQL connects to a MySQL server using a go-sql-driver DSN.
func OpenMySQL(ctx context.Context, dsn string, log *slog.Logger) (*SQLStore, error) {
	return openSQL(ctx, mysqlDialect, dsn, log)
}

func openSQL(ctx context.Context, d dialect, dsn string, log *slog.Logger) (*SQLStore, error) {
	db, err := sql.Open(d.driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("storage unavailable: open %s: %w", d.driverName, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage unavailable: ping %s: %w", d.driverName, err)
	}

	s := &SQLStore{db: db, log: orDiscard(log)}
	if err := s.migrate(ctx, d); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLStore) migrate(ctx context.Context, d dialect) error {
	for _, p := range d.pragmas {
		if _, err := s.db.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("storage unavailable: %s pragma %q: %w", d.driverName, p, err)
		}
	}
	s.log.Debug("ensuring schema", "driver", d.driverName)
	if _, err := s.db.ExecContext(ctx, d.schema); err != nil {
		return fmt.Errorf("storage unavailable: create tasks table: %w", err)
	}
	return nil
}

// List implements service.Store.
func (s *SQLStore) List(ctx context.Context) ([]service.Task, error) {
	s.log.Debug("list tasks")
	rows, err := s.db.QueryContext(ctx, `SELECT id, description, status FROM tasks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var result []service.Task
	for rows.Next() {
		var t service.Task
		if err := rows.Scan(&t.ID, &t.Description, &t.Status); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return result, nil
}

// Add implements service.Store.
func (s *SQLStore) Add(ctx context.Context, description, status string) (int64, error) {
	if !service.ValidFields(description, status) {
		return 0, service.ErrEmptyField
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO tasks (description, status) VALUES (?, ?)`,
		description, status,
	)
	if err != nil {
		return 0, fmt.Errorf("insert task: %w", err)
	}

	id, err := insertedID(ctx, tx, res)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}
	s.log.Debug("task added", "id", id)
	return id, nil
}

// insertedID returns the id of the row just written through tx.
// When the driver cannot report it, the row is the highest id visible in tx.
func insertedID(ctx context.Context, tx *sql.Tx, res sql.Result) (int64, error) {
	id, err := res.LastInsertId()
	if err == nil && id > 0 {
		return id, nil
	}
	var maxID sql.NullInt64
	if err := tx.QueryRowContext(ctx, `SELECT MAX(id) FROM tasks`).Scan(&maxID); err != nil {
		return 0, fmt.Errorf("read inserted id: %w", err)
	}
	if !maxID.Valid {
		return 0, fmt.Errorf("read inserted id: no rows")
	}
	return maxID.Int64, nil
}

// Delete implements service.Store.
func (s *SQLStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	n, _ := res.RowsAffected()
	s.log.Debug("task deleted", "id", id, "rows", n)
	return nil
}

// Close implements service.Store.
func (s *SQLStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
