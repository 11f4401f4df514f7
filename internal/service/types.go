// Package service defines the backend-agnostic interfaces for task operations.
package service

import (
	"errors"
	"strings"
)

// Task represents a single todo item.
type Task struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// TaskList represents a remote task list.
type TaskList struct {
	ID        string
	Title     string
	IsDefault bool
}

var (
	// ErrEmptyField is returned by Store.Add when the description or status is blank.
	ErrEmptyField = errors.New("description and status are required")

	// ErrNotFound is returned when a remote resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAmbiguous is returned when a remote list name matches more than one list.
	ErrAmbiguous = errors.New("ambiguous")
)

// ValidFields reports whether description and status are both non-blank.
func ValidFields(description, status string) bool {
	return strings.TrimSpace(description) != "" && strings.TrimSpace(status) != ""
}
