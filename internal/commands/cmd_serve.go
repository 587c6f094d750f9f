package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/colonyops/journey/internal/api"
	"github.com/colonyops/journey/internal/core/logging"
	"github.com/colonyops/journey/internal/journey"
	"github.com/colonyops/journey/internal/profiler"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

// ServeCmd runs the HTTP API. It is also the root default action.
type ServeCmd struct {
	flags *Flags
	app   *journey.App

	addr      string
	pprofPort int
}

// NewServeCmd creates a new serve command.
func NewServeCmd(flags *Flags, app *journey.App) *ServeCmd {
	return &ServeCmd{flags: flags, app: app}
}

// Flags returns the serve flags. Each call returns fresh flag values so
// they can be attached to both the root and the serve command.
func (cmd *ServeCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "listen address (overrides server.addr)",
			Sources:     cli.EnvVars("JOURNEY_ADDR"),
			Destination: &cmd.addr,
		},
		&cli.IntFlag{
			Name:        "pprof-port",
			Usage:       "serve net/http/pprof on 127.0.0.1:<port> (0 disables)",
			Sources:     cli.EnvVars("JOURNEY_PPROF_PORT"),
			Destination: &cmd.pprofPort,
		},
	}
}

// Register adds the serve command to the application.
func (cmd *ServeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "serve",
		Usage:     "Start the HTTP API",
		UsageText: "journey serve [--addr <host:port>] [--pprof-port <port>]",
		Description: `Serves the todo API until interrupted.

Routes are available at both /todos and /api/todos. GET /healthz pings
the database.

Examples:
  journey serve
  journey serve --addr 127.0.0.1:8080
  journey serve --pprof-port 6060`,
		Flags:  cmd.Flags(),
		Action: cmd.Run,
	})

	return app
}

// Run starts the API server, and the profiler when requested, and blocks
// until SIGINT or SIGTERM.
func (cmd *ServeCmd) Run(ctx context.Context, c *cli.Command) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := cmd.app.Config

	addr := cfg.Server.Addr
	if cmd.addr != "" {
		addr = cmd.addr
	}

	srv := api.New(api.Options{
		Todos:           cmd.app.Todos,
		Health:          cmd.app,
		Logger:          logging.Component("api"),
		AllowedOrigins:  cfg.Server.CORS.AllowedOrigins,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err := srv.Listen(addr); err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	g, ctx := errgroup.WithContext(ctx)

	if cmd.pprofPort > 0 {
		prof := profiler.New(cmd.pprofPort, logging.Component("profiler"))
		if err := prof.Start(ctx); err != nil {
			return fmt.Errorf("start profiler: %w", err)
		}

		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			return prof.Shutdown(shutdownCtx)
		})
	}

	g.Go(func() error {
		return srv.Serve(ctx)
	})

	_, _ = fmt.Fprintf(c.Root().ErrWriter, "journey listening on http://%s\n", srv.Addr())

	return g.Wait()
}
