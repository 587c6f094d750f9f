package stores

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/colonyops/journey/internal/core/todo"
	"github.com/colonyops/journey/internal/data/db"
)

// TodoStore implements todo.Store using SQLite.
type TodoStore struct {
	db *db.DB
}

var _ todo.Store = (*TodoStore)(nil)

// NewTodoStore creates a new SQLite-backed todo store.
func NewTodoStore(db *db.DB) *TodoStore {
	return &TodoStore{db: db}
}

// Create persists a new todo and writes the assigned ID and timestamps
// back into item.
func (s *TodoStore) Create(ctx context.Context, item *todo.Todo) error {
	if err := insertTodo(ctx, s.db.Conn(), item); err != nil {
		return fmt.Errorf("create todo: %w", classifyWriteError(err))
	}
	return nil
}

// CreateMany inserts every item in a single transaction. Either all items
// are stored or none are.
func (s *TodoStore) CreateMany(ctx context.Context, items []*todo.Todo) error {
	err := s.db.WithTx(ctx, func(tx db.DBTX) error {
		for i, item := range items {
			if err := insertTodo(ctx, tx, item); err != nil {
				return fmt.Errorf("item %d: %w", i, classifyWriteError(err))
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("create todos: %w", err)
	}
	return nil
}

// Get returns a single todo by ID.
func (s *TodoStore) Get(ctx context.Context, id int64) (todo.Todo, error) {
	row := s.db.Conn().QueryRowContext(ctx, "SELECT "+todoColumns+" FROM todos WHERE id = ?", id)

	item, err := scanTodo(row)
	if err != nil {
		if IsNotFoundError(err) {
			return todo.Todo{}, todo.ErrNotFound
		}
		return todo.Todo{}, fmt.Errorf("get todo: %w", err)
	}

	return item, nil
}

// List returns todos matching the filter, ordered by created_at DESC.
func (s *TodoStore) List(ctx context.Context, filter todo.Filter) ([]todo.Todo, error) {
	query, args, err := buildListQuery(filter.Predicates())
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := s.db.Conn().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := make([]todo.Todo, 0)
	for rows.Next() {
		item, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}

	return items, nil
}

// Update overwrites the mutable columns of item.ID. The statement is
// conditional on the row existing, so a concurrent delete surfaces as
// ErrNotFound rather than a silent no-op.
func (s *TodoStore) Update(ctx context.Context, item todo.Todo) error {
	res, err := s.db.Conn().ExecContext(ctx, `
		UPDATE todos
		SET title = ?, description = ?, category = ?, priority = ?, due_date = ?, progress = ?, updated_at = ?
		WHERE id = ?`,
		item.Title,
		toNullString(item.Description),
		toNullString(item.Category),
		string(item.Priority),
		dateToNullString(item.DueDate),
		string(item.Progress),
		item.UpdatedAt.UnixNano(),
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("update todo: %w", classifyWriteError(err))
	}

	return requireAffected(res)
}

// Delete removes a todo by ID.
func (s *TodoStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.Conn().ExecContext(ctx, "DELETE FROM todos WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}

	return requireAffected(res)
}

// Count returns the number of stored todos.
func (s *TodoStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.Conn().QueryRowContext(ctx, "SELECT COUNT(*) FROM todos").Scan(&count); err != nil {
		return 0, fmt.Errorf("count todos: %w", err)
	}
	return count, nil
}

func insertTodo(ctx context.Context, q db.DBTX, item *todo.Todo) error {
	now := time.Now()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	if item.UpdatedAt.IsZero() || item.UpdatedAt.Before(item.CreatedAt) {
		item.UpdatedAt = item.CreatedAt
	}
	if !item.Priority.IsValid() {
		item.Priority = todo.DefaultPriority
	}
	if !item.Progress.IsValid() {
		item.Progress = todo.DefaultProgress
	}

	res, err := q.ExecContext(ctx, `
		INSERT INTO todos (title, description, category, priority, due_date, progress, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		item.Title,
		toNullString(item.Description),
		toNullString(item.Category),
		string(item.Priority),
		dateToNullString(item.DueDate),
		string(item.Progress),
		item.CreatedAt.UnixNano(),
		item.UpdatedAt.UnixNano(),
	)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("read inserted id: %w", err)
	}
	item.ID = id

	return nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return todo.ErrNotFound
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanTodo(row scannable) (todo.Todo, error) {
	var (
		item        todo.Todo
		description sql.NullString
		category    sql.NullString
		priority    string
		dueDate     sql.NullString
		progress    string
		createdAt   int64
		updatedAt   int64
	)

	err := row.Scan(
		&item.ID,
		&item.Title,
		&description,
		&category,
		&priority,
		&dueDate,
		&progress,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return todo.Todo{}, err
	}

	item.Description = fromNullString(description)
	item.Category = fromNullString(category)
	item.Priority = todo.Priority(priority)
	item.Progress = todo.Progress(progress)
	item.CreatedAt = time.Unix(0, createdAt).UTC()
	item.UpdatedAt = time.Unix(0, updatedAt).UTC()

	if dueDate.Valid && dueDate.String != "" {
		d, err := todo.ParseDate(dueDate.String)
		if err != nil {
			return todo.Todo{}, fmt.Errorf("todo %d: due_date: %w", item.ID, err)
		}
		item.DueDate = &d
	}

	return item, nil
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func dateToNullString(d *todo.Date) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}
