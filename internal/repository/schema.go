package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// CREATE TABLE IF NOT EXISTS keeps schema setup idempotent so it can run on
// every cold start and on every invocation of the setup endpoint.
const (
	usersDDL = `CREATE TABLE IF NOT EXISTS users (
		user_id       VARCHAR(64)  NOT NULL PRIMARY KEY,
		password_hash VARCHAR(255) NOT NULL,
		nickname      VARCHAR(64)  NOT NULL,
		email         VARCHAR(255) NOT NULL UNIQUE,
		purpose       TEXT         NOT NULL
	)`

	todosDDL = `CREATE TABLE IF NOT EXISTS todos (
		id        BIGINT      NOT NULL AUTO_INCREMENT PRIMARY KEY,
		owner_id  VARCHAR(64) NOT NULL,
		text      TEXT        NOT NULL,
		deadline  VARCHAR(32) NULL,
		completed BOOLEAN     NOT NULL DEFAULT FALSE,
		INDEX idx_todos_owner (owner_id)
	)`
)

// EnsureSchema creates the users and todos tables if they do not exist yet.
// A failure only means later CRUD calls will error, so callers treat it as
// non-fatal.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, usersDDL); err != nil {
		return fmt.Errorf("ensuring users table: %w", err)
	}
	if _, err := db.ExecContext(ctx, todosDDL); err != nil {
		return fmt.Errorf("ensuring todos table: %w", err)
	}
	return nil
}
