package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/colonyops/journey/internal/core/config"
	"github.com/colonyops/journey/internal/data/db"
	"github.com/colonyops/journey/internal/journey"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func newTestApp(t *testing.T) (*Flags, *journey.App) {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()

	database, err := db.Open(cfg.DataDir, db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	return &Flags{Config: &cfg, DataDir: cfg.DataDir}, journey.NewApp(&cfg, database)
}

type cliResult struct {
	stdout string
	stderr string
	err    error
}

// runCLI registers a command on a fresh root and runs it with args.
// Exit codes are returned as errors instead of terminating the test binary.
func runCLI(register func(*cli.Command) *cli.Command, args ...string) cliResult {
	var stdout, stderr bytes.Buffer

	app := register(&cli.Command{
		Name:           "journey",
		Writer:         &stdout,
		ErrWriter:      &stderr,
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	})

	err := app.Run(context.Background(), append([]string{"journey"}, args...))
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}
