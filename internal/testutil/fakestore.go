// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"

	"todo/internal/service"
)

// FakeStore is an in-memory implementation of service.Store for testing.
// IDs are assigned from a counter and never reused.
type FakeStore struct {
	mu     sync.RWMutex
	tasks  []service.Task
	nextID int64
	closed bool

	// Error injection for testing
	ListErr   error
	AddErr    error
	DeleteErr error
}

// NewFakeStore creates an empty FakeStore.
func NewFakeStore() *FakeStore {
	return &FakeStore{nextID: 1}
}

// Seed adds a task directly, bypassing validation and error injection.
func (f *FakeStore) Seed(description, status string) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	f.tasks = append(f.tasks, service.Task{ID: id, Description: description, Status: status})
	return id
}

// Snapshot returns the stored tasks without going through List.
func (f *FakeStore) Snapshot() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.Task, len(f.tasks))
	copy(out, f.tasks)
	return out
}

// Closed reports whether Close was called.
func (f *FakeStore) Closed() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.closed
}

// List implements service.Store.
func (f *FakeStore) List(ctx context.Context) ([]service.Task, error) {
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return f.Snapshot(), nil
}

// Add implements service.Store.
func (f *FakeStore) Add(ctx context.Context, description, status string) (int64, error) {
	if f.AddErr != nil {
		return 0, f.AddErr
	}
	if !service.ValidFields(description, status) {
		return 0, service.ErrEmptyField
	}
	return f.Seed(description, status), nil
}

// Delete implements service.Store.
func (f *FakeStore) Delete(ctx context.Context, id int64) error {
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return nil
}

// Close implements service.Store.
func (f *FakeStore) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}
