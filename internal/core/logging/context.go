package logging

import "context"

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	todoIDKey    contextKey = "todo_id"
)

// WithRequestID adds a request ID to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// WithTodoID adds the ID of the todo being operated on to the context.
func WithTodoID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, todoIDKey, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns empty string if not present.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// GetTodoID retrieves the todo ID from the context.
// Returns 0 if not present.
func GetTodoID(ctx context.Context) int64 {
	if id, ok := ctx.Value(todoIDKey).(int64); ok {
		return id
	}
	return 0
}
