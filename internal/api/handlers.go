package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/colonyops/journey/internal/core/logging"
	"github.com/colonyops/journey/internal/core/todo"
)

// ErrMalformedID is returned when the {id} path segment is not a base-10
// integer.
var ErrMalformedID = errors.New("malformed todo id")

// errMalformedBody marks a request body that is not a JSON object.
var errMalformedBody = errors.New("malformed request body")

const healthTimeout = 2 * time.Second

type messageResponse struct {
	Message string `json:"message"`
}

type statusResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	filter := todo.Filter{
		Category: q.Get("category"),
		Priority: q.Get("priority"),
		Progress: q.Get("progress"),
		Search:   q.Get("search"),
	}

	items, err := s.todos.List(ctx, filter)
	if err != nil {
		s.handleError(ctx, w, err, "fetch todos")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var in todo.Input
	if err := decodeJSON(w, r, &in); err != nil {
		s.handleError(ctx, w, err, "create todo")
		return
	}

	created, err := s.todos.Create(ctx, in)
	if err != nil {
		s.handleError(ctx, w, err, "create todo")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		s.handleError(ctx, w, err, "fetch todo")
		return
	}
	ctx = logging.WithTodoID(ctx, id)

	item, err := s.todos.Get(ctx, id)
	if err != nil {
		s.handleError(ctx, w, err, "fetch todo")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// The id is checked before the body is read.
	id, err := pathID(r)
	if err != nil {
		s.handleError(ctx, w, err, "update todo")
		return
	}
	ctx = logging.WithTodoID(ctx, id)

	var in todo.Input
	if err := decodeJSON(w, r, &in); err != nil {
		s.handleError(ctx, w, err, "update todo")
		return
	}

	updated, err := s.todos.Update(ctx, id, in)
	if err != nil {
		s.handleError(ctx, w, err, "update todo")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		s.handleError(ctx, w, err, "delete todo")
		return
	}
	ctx = logging.WithTodoID(ctx, id)

	if err := s.todos.Delete(ctx, id); err != nil {
		s.handleError(ctx, w, err, "delete todo")
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Todo deleted successfully"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := s.health.Ping(ctx); err != nil {
		s.log.Error().Ctx(r.Context()).Err(err).Msg("health check failed")
		writeError(w, http.StatusServiceUnavailable, "Database unavailable")
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Not found")
}

// methodNotAllowed answers a known path requested with an unsupported method.
func methodNotAllowed(allow string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", allow)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
}

// handleError maps an error to its HTTP status and public message. op
// names the failed operation in the generic storage failure message.
func (s *Server) handleError(ctx context.Context, w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, ErrMalformedID):
		writeError(w, http.StatusBadRequest, "Invalid todo ID")
	case errors.Is(err, errMalformedBody):
		writeError(w, http.StatusBadRequest, "Invalid request body")
	case errors.Is(err, todo.ErrValidation):
		msg := strings.Join(todo.Messages(err), "; ")
		if msg == "" {
			msg = "Invalid todo"
		}
		writeError(w, http.StatusBadRequest, msg)
	case errors.Is(err, todo.ErrNotFound):
		writeError(w, http.StatusNotFound, "Todo not found")
	default:
		s.log.Error().Ctx(ctx).Err(err).Str("op", op).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "Failed to "+op)
	}
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, ErrMalformedID
	}
	return id, nil
}
