package service

import "context"

// Store is the durable table of tasks.
// Commands and the app state only see this interface, never a driver.
type Store interface {
	// List returns every task in insertion order.
	List(ctx context.Context) ([]Task, error)

	// Add persists a new task and returns the id the store assigned to it.
	// Returns ErrEmptyField without writing anything if either field is blank.
	Add(ctx context.Context, description, status string) (int64, error)

	// Delete removes the task with the given id.
	// Deleting an id that does not exist is not an error.
	Delete(ctx context.Context, id int64) error

	// Close releases the underlying connection pool.
	Close() error
}

// Remote is a hosted task service that local tasks can be pushed to.
// All Google Tasks API calls go through this interface.
type Remote interface {
	// DefaultList returns the user's default task list.
	DefaultList(ctx context.Context) (TaskList, error)

	// ResolveList finds a list by name (case-insensitive, trimmed).
	// Returns ErrNotFound or ErrAmbiguous when no single list matches.
	ResolveList(ctx context.Context, name string) (TaskList, error)

	// CreateTask creates a new task in the specified list.
	CreateTask(ctx context.Context, listID, title string) error
}
