package commands

import (
	"context"
	"fmt"

	"github.com/colonyops/journey/internal/core/todo"
	"github.com/colonyops/journey/internal/journey"
	"github.com/urfave/cli/v3"
)

// TodoIDCompleter returns a ShellCompleteFunc that suggests todo IDs as
// positional completions, formatted as "id:title" for shells that show
// descriptions. Set this as the ShellComplete field on any cli.Command that
// accepts a todo ID.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func TodoIDCompleter(app *journey.App) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		// Delegate to default flag completion when typing a flag
		if args := cmd.Args(); args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		if app.Todos == nil {
			return
		}

		items, err := app.Todos.List(ctx, todo.Filter{})
		if err != nil {
			return
		}

		w := cmd.Root().Writer
		for _, item := range items {
			_, _ = fmt.Fprintf(w, "%d:%s\n", item.ID, item.Title)
		}
	}
}
