package repository

import (
	"context"
	"database/sql"

	"github.com/taskfolio/taskfolio-go/internal/model"
)

// TodoRepository handles todo persistence. Every statement is a single
// autocommitted operation; concurrent edits are last-write-wins.
type TodoRepository struct {
	db *sql.DB
}

// NewTodoRepository creates a new TodoRepository.
func NewTodoRepository(db *sql.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

// ListByOwner retrieves every todo for the owner, newest id first.
func (r *TodoRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Todo, error) {
	query := `SELECT id, owner_id, text, deadline, completed FROM todos WHERE owner_id = ? ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var todos []model.Todo
	for rows.Next() {
		var t model.Todo
		var deadline sql.NullString
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Text, &deadline, &t.Completed); err != nil {
			return nil, err
		}
		t.Deadline = deadline.String
		todos = append(todos, t)
	}

	return todos, rows.Err()
}

// Create inserts a new, not yet completed todo. The generated id is not
// returned; callers re-list to observe it.
func (r *TodoRepository) Create(ctx context.Context, ownerID, text, deadline string) error {
	query := `INSERT INTO todos (owner_id, text, deadline, completed) VALUES (?, ?, ?, FALSE)`

	var dl any
	if deadline != "" {
		dl = deadline
	}

	_, err := r.db.ExecContext(ctx, query, ownerID, text, dl)
	return err
}

// SetCompleted updates the completed flag unconditionally. There is no
// ownership check, and an id that does not exist affects zero rows without
// being an error.
func (r *TodoRepository) SetCompleted(ctx context.Context, id int64, completed bool) error {
	_, err := r.db.ExecContext(ctx, `UPDATE todos SET completed = ? WHERE id = ?`, completed, id)
	return err
}

// Delete removes the row unconditionally. Missing ids are a no-op; the
// auto-increment id is never reused afterwards.
func (r *TodoRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	return err
}
