package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todo/internal/app"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	status string
}

// SetStatus sets the status flag (for testing).
func (c *AddCmd) SetStatus(status string) {
	c.status = status
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string     { return "todo add [--status <status>] <description...>" }
func (c *AddCmd) NeedsStore() bool  { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.status, "status", "", "")
	fs.StringVar(&c.status, "s", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, st service.Store, args []string, out, errOut io.Writer) int {
	description := strings.TrimSpace(strings.Join(args, " "))
	if description == "" {
		fmt.Fprintln(errOut, "error: description required")
		return exitcode.UserError
	}

	status := c.status
	if status == "" {
		status = cfg.DefaultStatus
	}
	status = strings.TrimSpace(status)
	if status == "" {
		fmt.Fprintln(errOut, "error: status required")
		return exitcode.UserError
	}

	state, err := app.Load(ctx, st)
	if err != nil {
		return storageFailure(cfg, errOut, err)
	}

	state.SetDraftDescription(description)
	state.SetDraftStatus(status)
	task, ok, err := state.Add(ctx)
	if err != nil {
		return storageFailure(cfg, errOut, err)
	}
	if !ok {
		fmt.Fprintln(errOut, "error: description and status required")
		return exitcode.UserError
	}

	cfg.Logger.Debug("task created", "id", task.ID, "status", task.Status)
	if !cfg.Quiet {
		fmt.Fprintf(out, "ok %d\n", task.ID)
	}
	return exitcode.Success
}
