package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"todo/internal/backend/googletasks"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/output"
	"todo/internal/service"
)

func init() {
	Register(&PushCmd{})
}

// RemoteFactory creates a Remote from config.
type RemoteFactory func(ctx context.Context, cfg *config.Config) (service.Remote, error)

// PushCmd copies local tasks to a Google Tasks list.
type PushCmd struct {
	listName string
	remote   RemoteFactory
}

// SetListName sets the list name (for testing).
func (c *PushCmd) SetListName(name string) {
	c.listName = name
}

// SetRemoteFactory replaces the Google Tasks backend (for testing).
func (c *PushCmd) SetRemoteFactory(f RemoteFactory) {
	c.remote = f
}

func (c *PushCmd) Name() string      { return "push" }
func (c *PushCmd) Aliases() []string { return nil }
func (c *PushCmd) Synopsis() string  { return "Copy all tasks to Google Tasks" }
func (c *PushCmd) Usage() string     { return "todo push [--list <list-name>]" }
func (c *PushCmd) NeedsStore() bool  { return true }

func (c *PushCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
}

func (c *PushCmd) Run(ctx context.Context, cfg *config.Config, st service.Store, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	factory := c.remote
	if factory == nil {
		if !cfg.HasOAuthClient() {
			fmt.Fprintf(errOut, "error: %s not found in %s\n", config.OAuthClientFile, cfg.Dir)
			return exitcode.AuthError
		}
		if !cfg.HasToken() {
			fmt.Fprintln(errOut, "error: not logged in (run: todo login)")
			return exitcode.AuthError
		}
		factory = defaultRemote
	}

	tasks, err := st.List(ctx)
	if err != nil {
		return storageFailure(cfg, errOut, err)
	}
	if len(tasks) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks to push")
		}
		return exitcode.Success
	}

	remote, err := factory(ctx, cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
		return exitcode.AuthError
	}

	var list service.TaskList
	if name := strings.TrimSpace(c.listName); name != "" {
		list, err = remote.ResolveList(ctx, name)
		switch {
		case errors.Is(err, service.ErrNotFound):
			fmt.Fprintf(errOut, "error: list not found: %s\n", name)
			return exitcode.UserError
		case errors.Is(err, service.ErrAmbiguous):
			fmt.Fprintf(errOut, "error: ambiguous list name: %s\n", name)
			return exitcode.UserError
		case err != nil:
			return remoteFailure(errOut, err)
		}
	} else {
		list, err = remote.DefaultList(ctx)
		if err != nil {
			return remoteFailure(errOut, err)
		}
	}

	for i, t := range tasks {
		if err := remote.CreateTask(ctx, list.ID, output.RemoteTitle(t)); err != nil {
			fmt.Fprintf(errOut, "error: pushed %d of %d tasks\n", i, len(tasks))
			return remoteFailure(errOut, err)
		}
		cfg.Logger.Debug("task pushed", "id", t.ID, "list", list.Title)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "ok %d\n", len(tasks))
	}
	return exitcode.Success
}

func defaultRemote(ctx context.Context, cfg *config.Config) (service.Remote, error) {
	client, err := googletasks.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// remoteFailure reports a failed Google Tasks call.
func remoteFailure(errOut io.Writer, err error) int {
	if errors.Is(err, googletasks.ErrAuth) {
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
		return exitcode.AuthError
	}
	fmt.Fprintf(errOut, "error: remote error: %v\n", err)
	return exitcode.RemoteError
}
