package repository

import (
	"strings"
	"testing"
)

func TestNewTodoRepository(t *testing.T) {
	repo := NewTodoRepository(nil)
	if repo == nil {
		t.Fatal("expected non-nil TodoRepository")
	}
	if repo.db != nil {
		t.Fatal("expected nil db when constructed with nil")
	}
}

func TestSchemaDDLIdempotent(t *testing.T) {
	for _, ddl := range []string{usersDDL, todosDDL} {
		if !strings.Contains(ddl, "IF NOT EXISTS") {
			t.Errorf("schema DDL must be idempotent, missing IF NOT EXISTS: %s", ddl)
		}
	}
	if !strings.Contains(todosDDL, "AUTO_INCREMENT") {
		t.Error("todos.id must be auto-incrementing so ids are never reused")
	}
	if !strings.Contains(todosDDL, "DEFAULT FALSE") {
		t.Error("todos.completed must default to false")
	}
}
