// Package console implements the line-oriented interactive menu.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"todo/internal/app"
	"todo/internal/output"
)

// Menu choices.
const (
	ChoiceAdd    = "1"
	ChoiceList   = "2"
	ChoiceExit   = "3"
	ChoiceDelete = "4"
)

const menuText = `
Todo
  1. Add a task
  2. List tasks
  4. Delete a task
  3. Exit
Choice: `

// ErrInput wraps a failure to read menu input.
var ErrInput = errors.New("read input")

// Console reads menu choices from in and drives an app.State.
type Console struct {
	state         *app.State
	in            *bufio.Reader
	out           io.Writer
	defaultStatus string
	readErr       error
}

// New creates a console over the given state.
// defaultStatus is used when the status prompt is left blank.
func New(state *app.State, in io.Reader, out io.Writer, defaultStatus string) *Console {
	return &Console{
		state:         state,
		in:            bufio.NewReader(in),
		out:           out,
		defaultStatus: defaultStatus,
	}
}

// Run shows the menu until the user exits or input ends.
// Storage failures and input read failures (wrapping ErrInput) are returned.
func (c *Console) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		fmt.Fprint(c.out, menuText)
		choice, ok := c.readLine()
		if !ok {
			fmt.Fprintln(c.out)
			if c.readErr != nil {
				return fmt.Errorf("%w: %v", ErrInput, c.readErr)
			}
			return nil
		}

		switch strings.TrimSpace(choice) {
		case ChoiceAdd:
			if err := c.add(ctx); err != nil {
				return err
			}
		case ChoiceList:
			c.list()
		case ChoiceExit:
			fmt.Fprintln(c.out, "bye")
			return nil
		case ChoiceDelete:
			if err := c.delete(ctx); err != nil {
				return err
			}
		default:
			fmt.Fprintln(c.out, "invalid choice, try again")
		}
	}
}

func (c *Console) add(ctx context.Context) error {
	fmt.Fprint(c.out, "Description: ")
	desc, ok := c.readLine()
	if !ok {
		return nil
	}
	fmt.Fprint(c.out, "Status: ")
	status, ok := c.readLine()
	if !ok {
		return nil
	}
	if strings.TrimSpace(status) == "" {
		status = c.defaultStatus
	}

	c.state.SetDraftDescription(desc)
	c.state.SetDraftStatus(status)
	c.state.TrimDrafts()

	task, added, err := c.state.Add(ctx)
	if err != nil {
		return err
	}
	if added {
		fmt.Fprintf(c.out, "added #%d\n", task.ID)
	}
	return nil
}

func (c *Console) list() {
	tasks := c.state.Tasks()
	if len(tasks) == 0 {
		fmt.Fprintln(c.out, "no tasks")
		return
	}
	for i, t := range tasks {
		output.FormatIndexed(c.out, i+1, t)
	}
}

func (c *Console) delete(ctx context.Context) error {
	fmt.Fprint(c.out, "Task id: ")
	line, ok := c.readLine()
	if !ok {
		return nil
	}
	id, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
	if err != nil || id < 1 {
		fmt.Fprintln(c.out, "invalid task id")
		return nil
	}

	_, found := c.state.Find(id)
	if err := c.state.Delete(ctx, id); err != nil {
		return err
	}
	if found {
		fmt.Fprintf(c.out, "deleted #%d\n", id)
	}
	return nil
}

// readLine returns the next input line without its line ending.
// Lines have no length limit. ok is false at end of input or after a read
// error, which is kept in readErr.
func (c *Console) readLine() (string, bool) {
	if c.readErr != nil {
		return "", false
	}
	line, err := c.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			c.readErr = err
			return "", false
		}
		if line == "" {
			return "", false
		}
	}
	return strings.TrimRight(line, "\r\n"), true
}
