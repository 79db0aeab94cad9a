package service

import (
	"context"

	"github.com/taskfolio/taskfolio-go/internal/model"
	"github.com/taskfolio/taskfolio-go/internal/repository"
)

// fakeUserStore is an in-memory UserStore mirroring the repository's
// contract: duplicate user_id or email collapses to ErrDuplicateUser.
type fakeUserStore struct {
	users map[string]model.User
	err   error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]model.User)}
}

func (f *fakeUserStore) Create(_ context.Context, user *model.User) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.users[user.UserID]; ok {
		return repository.ErrDuplicateUser
	}
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicateUser
		}
	}
	f.users[user.UserID] = *user
	return nil
}

func (f *fakeUserStore) GetByUserID(_ context.Context, userID string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.users[userID]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &user, nil
}

// fakeTodoStore is an in-memory TodoStore. ListByOwner returns rows newest id
// first and ids are never reused, both mirroring the SQL contract.
type fakeTodoStore struct {
	todos   []model.Todo
	nextID  int64
	listErr error
}

func newFakeTodoStore() *fakeTodoStore {
	return &fakeTodoStore{nextID: 1}
}

func (f *fakeTodoStore) ListByOwner(_ context.Context, ownerID string) ([]model.Todo, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []model.Todo
	for i := len(f.todos) - 1; i >= 0; i-- {
		if f.todos[i].OwnerID == ownerID {
			out = append(out, f.todos[i])
		}
	}
	return out, nil
}

func (f *fakeTodoStore) Create(_ context.Context, ownerID, text, deadline string) error {
	f.todos = append(f.todos, model.Todo{
		ID:       f.nextID,
		OwnerID:  ownerID,
		Text:     text,
		Deadline: deadline,
	})
	f.nextID++
	return nil
}

func (f *fakeTodoStore) SetCompleted(_ context.Context, id int64, completed bool) error {
	for i := range f.todos {
		if f.todos[i].ID == id {
			f.todos[i].Completed = completed
		}
	}
	return nil
}

func (f *fakeTodoStore) Delete(_ context.Context, id int64) error {
	for i := range f.todos {
		if f.todos[i].ID == id {
			f.todos = append(f.todos[:i], f.todos[i+1:]...)
			return nil
		}
	}
	return nil
}
