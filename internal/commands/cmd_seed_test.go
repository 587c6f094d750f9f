package commands

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/colonyops/journey/internal/core/todo"
	"github.com/colonyops/journey/internal/journey"
	"github.com/colonyops/journey/internal/journey/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedCmd(t *testing.T) {
	ctx := context.Background()
	flags, app := newTestApp(t)

	inputs, err := seed.Default()
	require.NoError(t, err)

	res := runCLI(NewSeedCmd(flags, app).Register, "seed")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "seeded 44 todos")
	assert.Contains(t, res.stdout, "LeetCode")

	items, err := app.Todos.List(ctx, todo.Filter{})
	require.NoError(t, err)
	assert.Len(t, items, len(inputs))

	res = runCLI(NewSeedCmd(flags, app).Register, "seed")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "skipping")

	res = runCLI(NewSeedCmd(flags, app).Register, "seed", "--force", "--format", "json")
	require.NoError(t, res.err)

	var result journey.SeedResult
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &result))
	assert.False(t, result.Skipped)
	assert.Equal(t, int64(len(inputs)), result.Existing)
	assert.Equal(t, len(inputs), result.Inserted)

	items, err = app.Todos.List(ctx, todo.Filter{})
	require.NoError(t, err)
	assert.Len(t, items, 2*len(inputs))
}
