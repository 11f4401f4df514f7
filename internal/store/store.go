// Package store implements service.Store on top of relational databases.
//
// sqlite is the canonical backend: a single local file holding the tasks table.
// mysql and postgres are available for users who keep their tasks on a server.
package store

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"todo/internal/service"
)

// Supported driver names.
const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Options selects and configures a backend.
type Options struct {
	// Driver is one of DriverSQLite, DriverMySQL or DriverPostgres.
	// Empty means DriverSQLite.
	Driver string

	// DSN is a file path for sqlite, a go-sql-driver DSN for mysql and a
	// connection URL for postgres.
	DSN string

	// Logger receives a debug line per statement. Optional.
	Logger *slog.Logger
}

// Open connects to the configured backend and creates the tasks table if it
// is absent. Any failure here means storage is unavailable.
func Open(ctx context.Context, opts Options) (service.Store, error) {
	log := orDiscard(opts.Logger)
	driver := strings.ToLower(strings.TrimSpace(opts.Driver))
	if strings.TrimSpace(opts.DSN) == "" {
		name := driver
		if name == "" {
			name = DriverSQLite
		}
		return nil, fmt.Errorf("storage unavailable: dsn required for driver %s", name)
	}

	log.Debug("opening task store", "driver", driver)

	var (
		st  service.Store
		err error
	)
	switch driver {
	case "", DriverSQLite, "sqlite3":
		st, err = OpenSQLite(ctx, opts.DSN, log)
	case DriverMySQL:
		st, err = OpenMySQL(ctx, opts.DSN, log)
	case DriverPostgres, "postgresql", "pgx":
		st, err = OpenPostgres(ctx, opts.DSN, log)
	default:
		return nil, fmt.Errorf("unsupported driver: %s", opts.Driver)
	}
	if err != nil {
		return nil, err
	}
	return st, nil
}

func orDiscard(log *slog.Logger) *slog.Logger {
	if log == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return log
}
