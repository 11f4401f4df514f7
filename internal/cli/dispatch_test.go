package cli_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"todo/internal/cli"
	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/store"
	"todo/internal/testutil"
)

// testFactory creates a store factory that returns the given FakeStore.
func testFactory(st *testutil.FakeStore) cli.StoreFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Store, error) {
		return st, nil
	}
}

func run(t *testing.T, factory cli.StoreFactory, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(config.EnvDriver, "")
	t.Setenv(config.EnvDSN, "")
	t.Setenv(config.EnvDefaultStatus, "")

	var out, errOut bytes.Buffer
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)
	code = dispatcher.Run(context.Background(), args, &out, &errOut)
	return out.String(), errOut.String(), code
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	_, stderr, code := run(t, testFactory(testutil.NewFakeStore()), "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	_, stderr, code := run(t, testFactory(testutil.NewFakeStore()), "--quiet")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	stdout, stderr, code := run(t, nil, "help")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("expected help output to contain 'Usage:'")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	stdout, stderr, code := run(t, nil, "version")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "todo 0.1.0\n" {
		t.Errorf("expected 'todo 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	_, stderr, code := run(t, nil, "help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_MissingFlagValue(t *testing.T) {
	_, stderr, code := run(t, testFactory(testutil.NewFakeStore()), "add", "--status")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -status\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_NoArgsLists(t *testing.T) {
	st := testutil.NewFakeStore()
	st.Seed("Buy milk", "To do")

	stdout, stderr, code := run(t, testFactory(st))

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "   1  Buy milk  [To do]\n" {
		t.Errorf("unexpected list output %q", stdout)
	}
	if !st.Closed() {
		t.Error("expected store to be closed after dispatch")
	}
}

func TestDispatcher_AddThenList(t *testing.T) {
	st := testutil.NewFakeStore()
	factory := testFactory(st)

	if _, stderr, code := run(t, factory, "add", "-s", "Done", "Call", "Bob"); code != exitcode.Success {
		t.Fatalf("add failed with %d: %s", code, stderr)
	}
	stdout, _, code := run(t, factory, "ls")
	if code != exitcode.Success {
		t.Fatalf("list failed with %d", code)
	}
	if stdout != "   1  Call Bob  [Done]\n" {
		t.Errorf("unexpected list output %q", stdout)
	}
}

func TestDispatcher_StoreOpenError(t *testing.T) {
	factory := func(ctx context.Context, cfg *config.Config) (service.Store, error) {
		return nil, errors.New("unable to open database file")
	}

	stdout, stderr, code := run(t, factory, "list")

	if code != exitcode.StorageError {
		t.Errorf("expected exit code %d, got %d", exitcode.StorageError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	expected := "error: storage error: unable to open database file\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_StoreNotOpenedForHelp(t *testing.T) {
	called := false
	factory := func(ctx context.Context, cfg *config.Config) (service.Store, error) {
		called = true
		return testutil.NewFakeStore(), nil
	}

	if _, _, code := run(t, factory, "help"); code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if called {
		t.Error("help should not open the store")
	}
}

func TestDispatcher_DBFlagSelectsSQLiteFile(t *testing.T) {
	var got *config.Config
	factory := func(ctx context.Context, cfg *config.Config) (service.Store, error) {
		got = cfg
		return testutil.NewFakeStore(), nil
	}

	path := filepath.Join(t.TempDir(), "other.db")
	if _, stderr, code := run(t, factory, "list", "--db", path, "--quiet"); code != exitcode.Success {
		t.Fatalf("expected success, got %d: %s", code, stderr)
	}
	if got.Driver != config.DefaultDriver {
		t.Errorf("expected driver %q, got %q", config.DefaultDriver, got.Driver)
	}
	if got.StoreDSN() != path {
		t.Errorf("expected dsn %q, got %q", path, got.StoreDSN())
	}
	if !got.Quiet {
		t.Error("expected quiet to be set")
	}
}

func TestDispatcher_ServerDriverWithoutDSN(t *testing.T) {
	factory := func(ctx context.Context, cfg *config.Config) (service.Store, error) {
		return store.Open(ctx, store.Options{Driver: cfg.Driver, DSN: cfg.StoreDSN(), Logger: cfg.Logger})
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out, errOut bytes.Buffer
	t.Setenv(config.EnvDriver, "mysql")
	t.Setenv(config.EnvDSN, "")
	code := cli.NewDispatcher(commands.DefaultRegistry, factory).Run(context.Background(), []string{"list"}, &out, &errOut)

	if code != exitcode.StorageError {
		t.Errorf("expected exit code %d, got %d", exitcode.StorageError, code)
	}
	want := "error: storage error: storage unavailable: dsn required for driver mysql\n"
	if errOut.String() != want {
		t.Errorf("expected %q, got %q", want, errOut.String())
	}
}

func TestDispatcher_SQLiteEndToEnd(t *testing.T) {
	factory := func(ctx context.Context, cfg *config.Config) (service.Store, error) {
		return store.Open(ctx, store.Options{Driver: cfg.Driver, DSN: cfg.StoreDSN(), Logger: cfg.Logger})
	}
	db := filepath.Join(t.TempDir(), "tasks.db")

	for _, desc := range []string{"Buy milk", "Call Bob"} {
		if _, stderr, code := run(t, factory, "add", "--db", db, desc); code != exitcode.Success {
			t.Fatalf("add %q failed with %d: %s", desc, code, stderr)
		}
	}
	if _, stderr, code := run(t, factory, "rm", "--db", db, "1"); code != exitcode.Success {
		t.Fatalf("rm failed with %d: %s", code, stderr)
	}

	stdout, _, code := run(t, factory, "list", "--db", db)
	if code != exitcode.Success {
		t.Fatalf("list failed with %d", code)
	}
	if stdout != "   2  Call Bob  [To do]\n" {
		t.Errorf("unexpected list output %q", stdout)
	}
}
