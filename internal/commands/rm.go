package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/app"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete tasks by id" }
func (c *RmCmd) Usage() string     { return "todo rm <id...>" }
func (c *RmCmd) NeedsStore() bool  { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, st service.Store, args []string, out, errOut io.Writer) int {
	ids, err := ParseTaskIDs(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	state, err := app.Load(ctx, st)
	if err != nil {
		return storageFailure(cfg, errOut, err)
	}

	for _, id := range ids {
		if _, ok := state.Find(id); !ok {
			// Unknown ids are ignored, but still go through the store so a
			// row added by another process is removed too.
			cfg.Logger.Debug("task not in snapshot", "id", id)
		}
		if err := state.Delete(ctx, id); err != nil {
			return storageFailure(cfg, errOut, err)
		}
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
