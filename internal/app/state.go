// Package app holds the in-memory application state that front-ends drive.
//
// State mirrors the task table and carries the draft fields of a task that
// has not been created yet. Front-ends call the setters as the user types and
// Add/Delete on the corresponding actions; State keeps the store in step.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"todo/internal/service"
)

// Mode is the editing state of the draft fields.
type Mode int

const (
	// Idle means both draft fields are empty.
	Idle Mode = iota
	// Editing means at least one draft field holds text.
	Editing
)

func (m Mode) String() string {
	if m == Editing {
		return "editing"
	}
	return "idle"
}

// State is the application state. It is not safe for concurrent use;
// front-ends drive it from a single goroutine.
type State struct {
	store service.Store
	tasks []service.Task

	draftDescription string
	draftStatus      string
}

// Load builds a State whose task collection is a snapshot of the store.
func Load(ctx context.Context, store service.Store) (*State, error) {
	tasks, err := store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	return &State{store: store, tasks: tasks}, nil
}

// Tasks returns a copy of the current task collection.
func (s *State) Tasks() []service.Task {
	out := make([]service.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len returns the number of tasks in the collection.
func (s *State) Len() int { return len(s.tasks) }

// DraftDescription returns the unsaved description.
func (s *State) DraftDescription() string { return s.draftDescription }

// DraftStatus returns the unsaved status.
func (s *State) DraftStatus() string { return s.draftStatus }

// SetDraftDescription replaces the unsaved description.
func (s *State) SetDraftDescription(v string) { s.draftDescription = v }

// SetDraftStatus replaces the unsaved status.
func (s *State) SetDraftStatus(v string) { s.draftStatus = v }

// Mode reports whether a draft is in progress.
func (s *State) Mode() Mode {
	if s.draftDescription == "" && s.draftStatus == "" {
		return Idle
	}
	return Editing
}

// Add creates a task from the draft fields.
//
// Blank drafts are ignored: ok is false, err is nil and nothing changes.
// On success the task is appended to the collection and the drafts are cleared.
func (s *State) Add(ctx context.Context) (task service.Task, ok bool, err error) {
	desc, status := s.draftDescription, s.draftStatus
	if !service.ValidFields(desc, status) {
		return service.Task{}, false, nil
	}

	id, err := s.store.Add(ctx, desc, status)
	if errors.Is(err, service.ErrEmptyField) {
		return service.Task{}, false, nil
	}
	if err != nil {
		return service.Task{}, false, err
	}

	task = service.Task{ID: id, Description: desc, Status: status}
	s.tasks = append(s.tasks, task)
	s.draftDescription = ""
	s.draftStatus = ""
	return task, true, nil
}

// Delete removes the task with the given id from the store and then from the
// collection. An unknown id leaves the collection unchanged.
func (s *State) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	return nil
}

// Find returns the task with the given id from the collection.
func (s *State) Find(id int64) (service.Task, bool) {
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

// TrimDrafts strips surrounding whitespace from both draft fields.
func (s *State) TrimDrafts() {
	s.draftDescription = strings.TrimSpace(s.draftDescription)
	s.draftStatus = strings.TrimSpace(s.draftStatus)
}
