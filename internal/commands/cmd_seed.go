package commands

import (
	"context"
	"fmt"

	"github.com/colonyops/journey/internal/journey"
	"github.com/colonyops/journey/internal/journey/seed"
	"github.com/colonyops/journey/pkg/iojson"
	"github.com/urfave/cli/v3"
)

type SeedCmd struct {
	flags *Flags
	app   *journey.App

	force  bool
	format string
}

// NewSeedCmd creates a new seed command.
func NewSeedCmd(flags *Flags, app *journey.App) *SeedCmd {
	return &SeedCmd{flags: flags, app: app}
}

// Register adds the seed command to the application.
func (cmd *SeedCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "seed",
		Usage:     "Load the bundled study plan into the database",
		UsageText: "journey seed [--force] [--format text|json]",
		Description: `Inserts the bundled MAANG preparation todos in a single transaction.

Does nothing when the database already holds todos, unless --force is
given, in which case the bundled todos are added alongside them.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "force",
				Usage:       "seed even when todos already exist",
				Destination: &cmd.force,
			},
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *SeedCmd) run(ctx context.Context, c *cli.Command) error {
	inputs, err := seed.Default()
	if err != nil {
		return fmt.Errorf("load seed data: %w", err)
	}

	result, err := cmd.app.Todos.Seed(ctx, inputs, cmd.force)
	if err != nil {
		return err
	}

	w := c.Root().Writer
	if cmd.format == "json" {
		return iojson.WriteWith(w, c.Root().ErrWriter, result)
	}

	if result.Skipped {
		_, _ = fmt.Fprintf(w, "database already has %d todos, skipping (use --force to seed anyway)\n", result.Existing)
		return nil
	}

	_, _ = fmt.Fprintf(w, "seeded %d todos\n", result.Inserted)
	for _, cc := range result.Categories {
		name := cc.Category
		if name == "" {
			name = "(none)"
		}
		_, _ = fmt.Fprintf(w, "  %-18s %d\n", name, cc.Count)
	}

	return nil
}
