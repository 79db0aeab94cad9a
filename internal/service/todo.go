package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/taskfolio/taskfolio-go/internal/model"
)

var (
	ErrOwnerRequired = errors.New("owner id is required")
	ErrTextRequired  = errors.New("task text is required")
)

// TodoStore is the persistence surface TodoService depends on.
type TodoStore interface {
	ListByOwner(ctx context.Context, ownerID string) ([]model.Todo, error)
	Create(ctx context.Context, ownerID, text, deadline string) error
	SetCompleted(ctx context.Context, id int64, completed bool) error
	Delete(ctx context.Context, id int64) error
}

// TodoService handles task operations for the view layer.
type TodoService struct {
	todos TodoStore
}

// NewTodoService creates a new TodoService.
func NewTodoService(todos TodoStore) *TodoService {
	return &TodoService{todos: todos}
}

// List returns the owner's tasks, newest id first. Listing fails open: any
// store error is logged and downgraded to an empty list so the view never
// blocks on a failed fetch. Create, Toggle and Delete propagate their errors
// instead; the asymmetry is the documented policy.
func (s *TodoService) List(ctx context.Context, ownerID string) []model.Todo {
	todos, err := s.todos.ListByOwner(ctx, ownerID)
	if err != nil {
		slog.Warn("listing todos failed, returning empty list", "owner_id", ownerID, "error", err)
		return []model.Todo{}
	}
	if todos == nil {
		todos = []model.Todo{}
	}
	return todos
}

// Create inserts a new task with completed = false. The generated id is
// observed by re-listing.
func (s *TodoService) Create(ctx context.Context, ownerID, text, deadline string) error {
	if ownerID == "" {
		return ErrOwnerRequired
	}
	if text == "" {
		return ErrTextRequired
	}
	return s.todos.Create(ctx, ownerID, text, deadline)
}

// Toggle sets the completed flag of a task. There is no ownership check: any
// caller holding an id may toggle it. Missing ids are a no-op.
func (s *TodoService) Toggle(ctx context.Context, id int64, completed bool) error {
	return s.todos.SetCompleted(ctx, id, completed)
}

// Delete removes a task permanently; there is no undo and no soft-delete.
// Missing ids are a no-op.
func (s *TodoService) Delete(ctx context.Context, id int64) error {
	return s.todos.Delete(ctx, id)
}
