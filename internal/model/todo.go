package model

// Todo represents a row in the todos table. Ids are generated by the
// database and never reused after deletion.
type Todo struct {
	ID        int64  `json:"id"`
	OwnerID   string `json:"owner_id"`
	Text      string `json:"text"`
	Deadline  string `json:"deadline,omitempty"`
	Completed bool   `json:"completed"`
}

// CreateTodoRequest represents a task creation request. Deadline is an
// optional date-valued string.
type CreateTodoRequest struct {
	OwnerID  string `json:"owner_id"`
	Text     string `json:"text"`
	Deadline string `json:"deadline"`
}

// ToggleTodoRequest carries the desired completed state for a task.
type ToggleTodoRequest struct {
	Completed bool `json:"completed"`
}
