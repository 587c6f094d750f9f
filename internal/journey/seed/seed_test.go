package seed

import (
	"testing"

	"github.com/colonyops/journey/internal/core/todo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	inputs, err := Default()
	require.NoError(t, err)
	require.Len(t, inputs, 44)

	categories := map[string]int{}
	for _, in := range inputs {
		require.NoError(t, todo.ValidateCreate(in), "seed %q", in.Title.Value)
		assert.True(t, todo.Priority(in.Priority.Value).IsValid(), "seed %q priority", in.Title.Value)
		assert.True(t, todo.Progress(in.Progress.Value).IsValid(), "seed %q progress", in.Title.Value)
		categories[in.Category.Value]++
	}

	for _, c := range []string{"Algorithms", "Data Structures", "LeetCode", "System Design"} {
		assert.Positive(t, categories[c], "category %q", c)
	}
}

func TestParse(t *testing.T) {
	t.Run("optional fields stay absent", func(t *testing.T) {
		entries, err := Parse([]byte("- title: Only a title\n"))
		require.NoError(t, err)
		require.Len(t, entries, 1)

		in := entries[0].Input()
		assert.Equal(t, todo.Some("Only a title"), in.Title)
		assert.False(t, in.Description.Set)
		assert.False(t, in.Category.Set)
		assert.False(t, in.Priority.Set)
		assert.False(t, in.Progress.Set)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := Parse([]byte("title: [unclosed"))
		assert.Error(t, err)
	})
}
