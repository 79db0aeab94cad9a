package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/taskfolio/taskfolio-go/internal/crypto"
	"github.com/taskfolio/taskfolio-go/internal/model"
	"github.com/taskfolio/taskfolio-go/internal/repository"
)

var (
	ErrUserIDRequired    = errors.New("user id is required")
	ErrPasswordRequired  = errors.New("password is required")
	ErrNicknameRequired  = errors.New("nickname is required")
	ErrEmailRequired     = errors.New("email is required")
	ErrPurposeRequired   = errors.New("purpose is required")
	ErrDuplicateIdentity = errors.New("user id or email already in use")
	ErrUserNotFound      = errors.New("user not found")
	ErrPasswordMismatch  = errors.New("incorrect password")
	ErrCommunication     = errors.New("communication error")
)

// UserStore is the persistence surface AuthService depends on.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByUserID(ctx context.Context, userID string) (*model.User, error)
}

// AuthService handles registration and login.
type AuthService struct {
	users UserStore
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore) *AuthService {
	return &AuthService{users: users}
}

// Register creates a new user account. The password is stored only as a
// one-way salted hash. There is no automatic login; the caller authenticates
// separately.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) error {
	switch {
	case req.UserID == "":
		return ErrUserIDRequired
	case req.Password == "":
		return ErrPasswordRequired
	case req.Nickname == "":
		return ErrNicknameRequired
	case req.Email == "":
		return ErrEmailRequired
	case req.Purpose == "":
		return ErrPurposeRequired
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return err
	}

	user := &model.User{
		UserID:       req.UserID,
		PasswordHash: hash,
		Nickname:     req.Nickname,
		Email:        req.Email,
		Purpose:      req.Purpose,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			// Does not reveal whether the user id or the email collided.
			return ErrDuplicateIdentity
		}
		return fmt.Errorf("%w: %v", ErrCommunication, err)
	}

	return nil
}

// Login verifies the password against the stored hash and returns the minimal
// session payload: user id, nickname and purpose, never the hash. The payload
// is not a signed token; callers hold it in memory for the browser session
// only. A missing user and a wrong password fail with distinct errors; store
// failures are downgraded to a generic communication error.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.Session, error) {
	user, err := s.users.GetByUserID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.Session{}, ErrUserNotFound
		}
		return model.Session{}, fmt.Errorf("%w: %v", ErrCommunication, err)
	}

	match, err := crypto.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return model.Session{}, fmt.Errorf("%w: %v", ErrCommunication, err)
	}
	if !match {
		return model.Session{}, ErrPasswordMismatch
	}

	return model.Session{
		UserID:   user.UserID,
		Nickname: user.Nickname,
		Purpose:  user.Purpose,
	}, nil
}
