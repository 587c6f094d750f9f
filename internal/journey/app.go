// Package journey wires the todo domain to storage and exposes the services
// consumed by the HTTP API and the CLI.
package journey

import (
	"context"

	"github.com/colonyops/journey/internal/core/config"
	"github.com/colonyops/journey/internal/core/logging"
	"github.com/colonyops/journey/internal/data/db"
	"github.com/colonyops/journey/internal/data/stores"
)

// App is the central entry point for all journey operations.
// Commands and the API server consume App instead of cherry-picking raw
// dependencies.
type App struct {
	Todos *TodoService

	Config *config.Config
	DB     *db.DB
}

// NewApp constructs an App from explicit dependencies.
func NewApp(cfg *config.Config, database *db.DB) *App {
	return &App{
		Todos:  NewTodoService(stores.NewTodoStore(database), logging.Component("todo-service")),
		Config: cfg,
		DB:     database,
	}
}

// Ping reports whether the database is reachable.
func (a *App) Ping(ctx context.Context) error {
	return a.DB.Ping(ctx)
}
