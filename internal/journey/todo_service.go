package journey

import (
	"context"
	"fmt"
	"time"

	"github.com/colonyops/journey/internal/core/logging"
	"github.com/colonyops/journey/internal/core/todo"
	"github.com/rs/zerolog"
)

// TodoService wraps todo.Store with validation, defaulting, and the
// partial-update merge.
type TodoService struct {
	store todo.Store
	log   zerolog.Logger
	now   func() time.Time
}

// NewTodoService creates a new TodoService.
func NewTodoService(store todo.Store, log zerolog.Logger) *TodoService {
	return &TodoService{
		store: store,
		log:   log,
		now:   time.Now,
	}
}

// List returns todos matching the filter, newest first.
func (s *TodoService) List(ctx context.Context, filter todo.Filter) ([]todo.Todo, error) {
	items, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return items, nil
}

// Get returns a single todo by ID.
func (s *TodoService) Get(ctx context.Context, id int64) (todo.Todo, error) {
	item, err := s.store.Get(ctx, id)
	if err != nil {
		return todo.Todo{}, fmt.Errorf("get todo %d: %w", id, err)
	}
	return item, nil
}

// Create validates the input, applies defaults, and stores a new todo.
// The returned record is read back from the store.
func (s *TodoService) Create(ctx context.Context, in todo.Input) (todo.Todo, error) {
	item, err := todo.New(in)
	if err != nil {
		return todo.Todo{}, err
	}

	now := s.now()
	item.CreatedAt = now
	item.UpdatedAt = now

	if err := s.store.Create(ctx, &item); err != nil {
		return todo.Todo{}, fmt.Errorf("create todo: %w", err)
	}

	ctx = logging.WithTodoID(ctx, item.ID)
	s.log.Debug().Ctx(ctx).Str("title", item.Title).Msg("todo created")

	return s.Get(ctx, item.ID)
}

// Update merges a sparse input onto the stored todo. Keys absent from the
// input keep their stored value. Returns todo.ErrNotFound before any
// validation when the todo does not exist.
func (s *TodoService) Update(ctx context.Context, id int64, in todo.Input) (todo.Todo, error) {
	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return todo.Todo{}, fmt.Errorf("get todo %d: %w", id, err)
	}

	merged, err := todo.Apply(existing, in)
	if err != nil {
		return todo.Todo{}, err
	}

	merged.UpdatedAt = s.now()
	if merged.UpdatedAt.Before(merged.CreatedAt) {
		merged.UpdatedAt = merged.CreatedAt
	}

	if err := s.store.Update(ctx, merged); err != nil {
		return todo.Todo{}, fmt.Errorf("update todo %d: %w", id, err)
	}

	ctx = logging.WithTodoID(ctx, id)
	s.log.Debug().Ctx(ctx).Msg("todo updated")

	return s.Get(ctx, id)
}

// Delete permanently removes a todo.
func (s *TodoService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete todo %d: %w", id, err)
	}

	s.log.Debug().Ctx(logging.WithTodoID(ctx, id)).Msg("todo deleted")
	return nil
}

// CategoryCount is the number of seeded todos in one category.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// SeedResult reports what Seed did.
type SeedResult struct {
	Skipped    bool            `json:"skipped"`
	Existing   int64           `json:"existing"`
	Inserted   int             `json:"inserted"`
	Categories []CategoryCount `json:"categories,omitempty"`
}

// Seed inserts inputs in one transaction. When the store already holds
// todos it does nothing unless force is set.
func (s *TodoService) Seed(ctx context.Context, inputs []todo.Input, force bool) (SeedResult, error) {
	existing, err := s.store.Count(ctx)
	if err != nil {
		return SeedResult{}, fmt.Errorf("count todos: %w", err)
	}

	if existing > 0 && !force {
		s.log.Info().Int64("existing", existing).Msg("todos already present, skipping seed")
		return SeedResult{Skipped: true, Existing: existing}, nil
	}

	// Stagger created_at so the list order is stable for seeded rows.
	base := s.now()
	items := make([]*todo.Todo, 0, len(inputs))
	for i, in := range inputs {
		item, err := todo.New(in)
		if err != nil {
			return SeedResult{}, fmt.Errorf("seed entry %d: %w", i, err)
		}
		item.CreatedAt = base.Add(time.Duration(i) * time.Microsecond)
		item.UpdatedAt = item.CreatedAt
		items = append(items, &item)
	}

	if err := s.store.CreateMany(ctx, items); err != nil {
		return SeedResult{}, fmt.Errorf("seed todos: %w", err)
	}

	result := SeedResult{Existing: existing, Inserted: len(items), Categories: countCategories(items)}
	s.log.Info().Int("inserted", result.Inserted).Msg("seeded todos")

	return result, nil
}

// countCategories counts items per category in order of first appearance.
func countCategories(items []*todo.Todo) []CategoryCount {
	index := map[string]int{}
	var counts []CategoryCount

	for _, item := range items {
		name := ""
		if item.Category != nil {
			name = *item.Category
		}

		i, ok := index[name]
		if !ok {
			i = len(counts)
			index[name] = i
			counts = append(counts, CategoryCount{Category: name})
		}
		counts[i].Count++
	}

	return counts
}
