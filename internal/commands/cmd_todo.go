package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/colonyops/journey/internal/core/todo"
	"github.com/colonyops/journey/internal/journey"
	"github.com/colonyops/journey/pkg/iojson"
	"github.com/urfave/cli/v3"
)

func (cmd *TodoCmd) todos() *journey.TodoService {
	return cmd.app.Todos
}

// TodoCmd implements the journey todo command group.
type TodoCmd struct {
	flags *Flags
	app   *journey.App

	// list flags
	listFilter todo.Filter

	// create/update --file
	createFile iojson.FileReader[todo.Input]
	updateFile iojson.FileReader[todo.Input]
}

// NewTodoCmd creates a new todo command.
func NewTodoCmd(flags *Flags, app *journey.App) *TodoCmd {
	return &TodoCmd{flags: flags, app: app}
}

// Register adds the todo command to the application.
func (cmd *TodoCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "todo",
		Usage: "Manage todos without going through the HTTP API",
		Description: `Todo commands operate directly on the local database.

Records are printed as JSON using the same shape as the HTTP API.

Examples:
  journey todo list                                   # list all todos, newest first
  journey todo list --category LeetCode --search tree # filter
  journey todo create --title "Two Sum" --priority high
  journey todo update 3 --progress completed          # only --progress changes
  journey todo delete 3`,
		Commands: []*cli.Command{
			cmd.listCmd(),
			cmd.getCmd(),
			cmd.createCmd(),
			cmd.updateCmd(),
			cmd.deleteCmd(),
		},
	})

	return app
}

func (cmd *TodoCmd) listCmd() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "List todos",
		UsageText: "journey todo list [--category <c>] [--priority <p>] [--progress <p>] [--search <text>]",
		Description: `Lists todos as JSON lines, newest first.

Filters combine with AND. --search matches title or description,
case-insensitively.

Examples:
  journey todo list
  journey todo list --priority high --progress not_started
  journey todo list --search "binary tree"`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "category",
				Usage:       "exact category match",
				Destination: &cmd.listFilter.Category,
			},
			&cli.StringFlag{
				Name:        "priority",
				Usage:       "filter by priority (low, medium, high)",
				Destination: &cmd.listFilter.Priority,
			},
			&cli.StringFlag{
				Name:        "progress",
				Usage:       "filter by progress (not_started, in_progress, completed)",
				Destination: &cmd.listFilter.Progress,
			},
			&cli.StringFlag{
				Name:        "search",
				Aliases:     []string{"s"},
				Usage:       "substring match on title or description",
				Destination: &cmd.listFilter.Search,
			},
		},
		Action: cmd.runList,
	}
}

func (cmd *TodoCmd) getCmd() *cli.Command {
	return &cli.Command{
		Name:          "get",
		Usage:         "Print a single todo",
		UsageText:     "journey todo get <id>",
		ShellComplete: TodoIDCompleter(cmd.app),
		Action:        cmd.runGet,
	}
}

func (cmd *TodoCmd) createCmd() *cli.Command {
	return &cli.Command{
		Name:      "create",
		Usage:     "Create a todo",
		UsageText: "journey todo create --title <title> [field flags] | journey todo create -f <file>",
		Description: `Creates a todo from flags or a JSON document.

The JSON document uses the HTTP request shape. Flags given alongside
--file override the document's fields.

Examples:
  journey todo create --title "Design Rate Limiter" --category "System Design"
  echo '{"title":"Two Sum","priority":"high"}' | journey todo create -f -`,
		Flags:  append(fieldFlags(), cmd.createFile.Flag()),
		Action: cmd.runCreate,
	}
}

func (cmd *TodoCmd) updateCmd() *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Update fields of a todo",
		UsageText: "journey todo update <id> [field flags] | journey todo update <id> -f <file>",
		Description: `Updates only the fields that are given. Passing an empty value to
--description, --category or --due-date clears it.

Examples:
  journey todo update 3 --progress in_progress
  journey todo update 3 --due-date ""`,
		Flags:         append(fieldFlags(), cmd.updateFile.Flag()),
		ShellComplete: TodoIDCompleter(cmd.app),
		Action:        cmd.runUpdate,
	}
}

func (cmd *TodoCmd) deleteCmd() *cli.Command {
	return &cli.Command{
		Name:          "delete",
		Aliases:       []string{"rm"},
		Usage:         "Delete a todo",
		UsageText:     "journey todo delete <id>",
		ShellComplete: TodoIDCompleter(cmd.app),
		Action:        cmd.runDelete,
	}
}

// fieldFlag binds a CLI flag to one field of todo.Input.
type fieldFlag struct {
	name  string
	usage string
	set   func(in *todo.Input, v string)
}

var todoFieldFlags = []fieldFlag{
	{"title", "todo title", func(in *todo.Input, v string) { in.Title = todo.Some(v) }},
	{"description", "free-form description", func(in *todo.Input, v string) { in.Description = todo.Some(v) }},
	{"category", "category label", func(in *todo.Input, v string) { in.Category = todo.Some(v) }},
	{"priority", "low, medium or high", func(in *todo.Input, v string) { in.Priority = todo.Some(v) }},
	{"due-date", "due date as YYYY-MM-DD", func(in *todo.Input, v string) { in.DueDate = todo.Some(v) }},
	{"progress", "not_started, in_progress or completed", func(in *todo.Input, v string) { in.Progress = todo.Some(v) }},
}

func fieldFlags() []cli.Flag {
	flags := make([]cli.Flag, 0, len(todoFieldFlags)+1)
	for _, f := range todoFieldFlags {
		flags = append(flags, &cli.StringFlag{Name: f.name, Usage: f.usage})
	}
	return flags
}

// applyFieldFlags sets every field whose flag was given on the command line.
// Flags that were not given leave in untouched.
func applyFieldFlags(c *cli.Command, in todo.Input) todo.Input {
	for _, f := range todoFieldFlags {
		if c.IsSet(f.name) {
			f.set(&in, c.String(f.name))
		}
	}
	return in
}

func (cmd *TodoCmd) readInput(c *cli.Command, fr *iojson.FileReader[todo.Input]) (todo.Input, error) {
	var in todo.Input
	if fr.Provided() {
		var err error
		in, err = fr.Read()
		if err != nil {
			return todo.Input{}, fmt.Errorf("read todo input: %w", err)
		}
	}
	return applyFieldFlags(c, in), nil
}

func parseIDArg(c *cli.Command) (int64, error) {
	if c.NArg() < 1 {
		return 0, fmt.Errorf("usage: %s <id>", c.FullName())
	}

	raw := c.Args().First()
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid todo id %q", raw)
	}
	return id, nil
}

// todoError reports validation failures as a JSON error document on the
// error writer and exits non-zero. Other errors are returned unchanged.
func todoError(c *cli.Command, err error) error {
	if !errors.Is(err, todo.ErrValidation) {
		return err
	}

	if werr := iojson.WriteError(c.Root().ErrWriter, "invalid todo", map[string]any{"errors": todo.Messages(err)}); werr != nil {
		return errors.Join(err, werr)
	}
	return cli.Exit("", 1)
}

func (cmd *TodoCmd) runList(ctx context.Context, c *cli.Command) error {
	items, err := cmd.todos().List(ctx, cmd.listFilter)
	if err != nil {
		return err
	}

	for _, item := range items {
		if err := iojson.WriteLine(c.Root().Writer, item); err != nil {
			return err
		}
	}

	return nil
}

func (cmd *TodoCmd) runGet(ctx context.Context, c *cli.Command) error {
	id, err := parseIDArg(c)
	if err != nil {
		return err
	}

	item, err := cmd.todos().Get(ctx, id)
	if err != nil {
		return err
	}

	return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, item)
}

func (cmd *TodoCmd) runCreate(ctx context.Context, c *cli.Command) error {
	in, err := cmd.readInput(c, &cmd.createFile)
	if err != nil {
		return err
	}

	item, err := cmd.todos().Create(ctx, in)
	if err != nil {
		return todoError(c, err)
	}

	return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, item)
}

func (cmd *TodoCmd) runUpdate(ctx context.Context, c *cli.Command) error {
	id, err := parseIDArg(c)
	if err != nil {
		return err
	}

	in, err := cmd.readInput(c, &cmd.updateFile)
	if err != nil {
		return err
	}

	item, err := cmd.todos().Update(ctx, id, in)
	if err != nil {
		return todoError(c, err)
	}

	return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, item)
}

func (cmd *TodoCmd) runDelete(ctx context.Context, c *cli.Command) error {
	id, err := parseIDArg(c)
	if err != nil {
		return err
	}

	if err := cmd.todos().Delete(ctx, id); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(c.Root().Writer, "deleted")
	return nil
}
