package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"todo/internal/service"
)

// PostgresStore is a service.Store backed by a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

// OpenPostgres connects to PostgreSQL using a connection URL.
func OpenPostgres(ctx context.Context, databaseURL string, log *slog.Logger) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, strings.TrimSpace(databaseURL))
	if err != nil {
		return nil, fmt.Errorf("storage unavailable: connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("storage unavailable: ping postgres: %w", err)
	}
	if err := initPostgresSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &PostgresStore{pool: pool, log: orDiscard(log)}, nil
}

func initPostgresSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmt := `CREATE TABLE IF NOT EXISTS tasks (
		id BIGSERIAL PRIMARY KEY,
		description TEXT NOT NULL,
		status TEXT NOT NULL
	)`
	if _, err := pool.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("storage unavailable: create tasks table: %w", err)
	}
	return nil
}

// List implements service.Store.
func (s *PostgresStore) List(ctx context.Context) ([]service.Task, error) {
	s.log.Debug("list tasks")
	rows, err := s.pool.Query(ctx, `SELECT id, description, status FROM tasks ORDER BY id`)
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
func (s *PostgresStore) Add(ctx context.Context, description, status string) (int64, error) {
	if !service.ValidFields(description, status) {
		return 0, service.ErrEmptyField
	}

	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO tasks (description, status) VALUES ($1, $2) RETURNING id`,
		description, status,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert task: %w", err)
	}
	s.log.Debug("task added", "id", id)
	return id, nil
}

// Delete implements service.Store.
func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	s.log.Debug("task deleted", "id", id, "rows", tag.RowsAffected())
	return nil
}

// Close implements service.Store.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
