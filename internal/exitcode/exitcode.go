// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, bad task id, bad flag).
	UserError = 1

	// AuthError indicates a missing or invalid Google login.
	AuthError = 2

	// StorageError indicates the task database is unavailable or a query failed.
	StorageError = 3

	// RemoteError indicates a Google Tasks API or network error.
	RemoteError = 4
)
