package store

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"todo/internal/service"
)

func openTestStore(t *testing.T) (*SQLStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "tasks.db")
	s, err := OpenSQLite(context.Background(), path, nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestSQLite_Example(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	id1, err := s.Add(ctx, "Buy milk", "To do")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if id1 != 1 {
		t.Errorf("expected id 1, got %d", id1)
	}

	got, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []service.Task{{ID: 1, Description: "Buy milk", Status: "To do"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	id2, err := s.Add(ctx, "Call Bob", "Done")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if id2 != 2 {
		t.Errorf("expected id 2, got %d", id2)
	}

	if err := s.Delete(ctx, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}

	got, _ = s.List(ctx)
	want = []service.Task{{ID: 2, Description: "Call Bob", Status: "Done"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSQLite_EmptyListIsEmpty(t *testing.T) {
	s, _ := openTestStore(t)

	got, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no tasks, got %v", got)
	}
}

func TestSQLite_AddRejectsEmptyFields(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	cases := []struct{ desc, status string }{
		{"", "To do"},
		{"Buy milk", ""},
		{"   ", "To do"},
		{"Buy milk", "\t"},
	}
	for _, c := range cases {
		id, err := s.Add(ctx, c.desc, c.status)
		if !errors.Is(err, service.ErrEmptyField) {
			t.Errorf("Add(%q, %q): expected ErrEmptyField, got %v", c.desc, c.status, err)
		}
		if id != 0 {
			t.Errorf("Add(%q, %q): expected no id, got %d", c.desc, c.status, id)
		}
	}

	got, _ := s.List(ctx)
	if len(got) != 0 {
		t.Errorf("expected no tasks written, got %v", got)
	}
}

func TestSQLite_IDsNeverReused(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	id1, _ := s.Add(ctx, "a", "To do")
	id2, _ := s.Add(ctx, "b", "To do")
	if err := s.Delete(ctx, id2); err != nil {
		t.Fatalf("delete: %v", err)
	}
	id3, err := s.Add(ctx, "c", "To do")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if id3 == id1 || id3 == id2 {
		t.Errorf("expected a fresh id, got %d (used: %d, %d)", id3, id1, id2)
	}
}

func TestSQLite_DeleteMissingIsNoop(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	_, _ = s.Add(ctx, "keep me", "To do")
	if err := s.Delete(ctx, 42); err != nil {
		t.Fatalf("expected no error deleting a missing id, got %v", err)
	}

	got, _ := s.List(ctx)
	if len(got) != 1 {
		t.Errorf("expected 1 task, got %d", len(got))
	}
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	s, path := openTestStore(t)
	ctx := context.Background()

	id, err := s.Add(ctx, "Water plants", "In progress")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := OpenSQLite(ctx, path, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, _ := reopened.List(ctx)
	want := []service.Task{{ID: id, Description: "Water plants", Status: "In progress"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestOpen_SelectsSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.db")
	st, err := Open(context.Background(), Options{Driver: "SQLite", DSN: path})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer st.Close()

	if _, ok := st.(*SQLStore); !ok {
		t.Errorf("expected *SQLStore, got %T", st)
	}
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), Options{Driver: "oracle", DSN: "x"})
	if err == nil {
		t.Fatal("expected error for unsupported driver")
	}
	if err.Error() != "unsupported driver: oracle" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestOpen_EmptyDSN(t *testing.T) {
	if _, err := Open(context.Background(), Options{}); err == nil {
		t.Fatal("expected error for empty DSN")
	}
}

// noIDResult is a sql.Result from a driver that cannot report inserted ids.
type noIDResult struct {
	id  int64
	err error
}

func (r noIDResult) LastInsertId() (int64, error) { return r.id, r.err }
func (r noIDResult) RowsAffected() (int64, error) { return 1, nil }

func TestInsertedID_FallsBackToMaxInTx(t *testing.T) {
	cases := map[string]noIDResult{
		"unsupported": {err: errors.New("LastInsertId is not supported by this driver")},
		"zero":        {id: 0},
	}
	for name, res := range cases {
		t.Run(name, func(t *testing.T) {
			s, _ := openTestStore(t)
			ctx := context.Background()

			if _, err := s.Add(ctx, "Buy milk", "To do"); err != nil {
				t.Fatalf("add: %v", err)
			}

			tx, err := s.db.BeginTx(ctx, nil)
			if err != nil {
				t.Fatalf("begin: %v", err)
			}
			defer func() { _ = tx.Rollback() }()

			if _, err := tx.ExecContext(ctx, `INSERT INTO tasks (description, status) VALUES (?, ?)`, "Call Bob", "Done"); err != nil {
				t.Fatalf("insert: %v", err)
			}

			// The uncommitted row is only visible inside tx.
			id, err := insertedID(ctx, tx, res)
			if err != nil {
				t.Fatalf("insertedID: %v", err)
			}
			if id != 2 {
				t.Errorf("expected id 2, got %d", id)
			}
		})
	}
}

func TestInsertedID_UsesDriverID(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer func() { _ = tx.Rollback() }()

	id, err := insertedID(ctx, tx, noIDResult{id: 41})
	if err != nil {
		t.Fatalf("insertedID: %v", err)
	}
	if id != 41 {
		t.Errorf("expected driver id 41, got %d", id)
	}
}

func TestInsertedID_EmptyTable(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := insertedID(ctx, tx, noIDResult{err: errors.New("unsupported")}); err == nil {
		t.Fatal("expected error when no row was written")
	}
}

func TestOpen_ServerDriverNeedsDSN(t *testing.T) {
	for _, driver := range []string{"mysql", "postgres"} {
		_, err := Open(context.Background(), Options{Driver: driver})
		if err == nil {
			t.Fatalf("%s: expected error for missing DSN", driver)
		}
		want := "storage unavailable: dsn required for driver " + driver
		if err.Error() != want {
			t.Errorf("%s: expected %q, got %q", driver, want, err.Error())
		}
	}
}
