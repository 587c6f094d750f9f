package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/colonyops/journey/internal/core/config"
	"github.com/colonyops/journey/pkg/iojson"
	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "journey config validate [options]",
				Description: "Validates the configuration file, checking the listen address, timeouts, CORS patterns, and file paths.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

// configFieldError is the JSON form of a single failed check.
type configFieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config

	errs, err := fieldErrors(cfg.ValidateDeep(cmd.flags.ConfigPath))
	if err != nil {
		return err
	}
	warnings := cfg.Warnings()

	if cmd.format == "json" {
		out := struct {
			Valid    bool                       `json:"valid"`
			Errors   []configFieldError         `json:"errors,omitempty"`
			Warnings []config.ValidationWarning `json:"warnings,omitempty"`
		}{
			Valid:    len(errs) == 0,
			Errors:   errs,
			Warnings: warnings,
		}
		if err := iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, out); err != nil {
			return err
		}
	} else {
		cmd.outputText(c, errs, warnings)
	}

	if len(errs) > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func (cmd *ConfigValidateCmd) outputText(c *cli.Command, errs []configFieldError, warnings []config.ValidationWarning) {
	w := c.Root().Writer

	for _, warn := range warnings {
		_, _ = fmt.Fprintf(w, "warning %s: %s\n", warn.Category, warn.Message)
		if warn.Item != "" {
			_, _ = fmt.Fprintf(w, "  Item: %s\n", warn.Item)
		}
	}

	for _, fe := range errs {
		_, _ = fmt.Fprintf(w, "error %s: %s\n", fe.Field, fe.Message)
	}

	_, _ = fmt.Fprintln(w)
	if len(errs) == 0 {
		_, _ = fmt.Fprintln(w, "Configuration is valid")
		return
	}

	_, _ = fmt.Fprintf(w, "%d error(s) found\n", len(errs))
}

// fieldErrors flattens a criterio validation error. Errors that are not
// field errors are returned as-is.
func fieldErrors(err error) ([]configFieldError, error) {
	if err == nil {
		return nil, nil
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return nil, err
	}

	out := make([]configFieldError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, configFieldError{Field: fe.Field, Message: fe.Err.Error()})
	}
	return out, nil
}
