package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/taskfolio/taskfolio-go/internal/model"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("user id or email already exists")
)

// UserRepository handles user persistence. Users are inserted once at
// registration and never updated or deleted.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user row. A collision on user_id or email surfaces as
// ErrDuplicateUser without distinguishing which column collided.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (user_id, password_hash, nickname, email, purpose) VALUES (?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		user.UserID, user.PasswordHash, user.Nickname, user.Email, user.Purpose,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateUser
		}
		return err
	}

	return nil
}

// GetByUserID retrieves a user by their identifier.
func (r *UserRepository) GetByUserID(ctx context.Context, userID string) (*model.User, error) {
	query := `SELECT user_id, password_hash, nickname, email, purpose FROM users WHERE user_id = ?`

	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&user.UserID, &user.PasswordHash, &user.Nickname, &user.Email, &user.Purpose,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

// isDuplicateEntryError checks if a MySQL error is a duplicate entry error (code 1062).
func isDuplicateEntryError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}
