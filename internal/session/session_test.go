package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskfolio/taskfolio-go/internal/model"
	"github.com/taskfolio/taskfolio-go/internal/service"
)

type fakeAuth struct {
	session model.Session
	err     error
}

func (f *fakeAuth) Login(_ context.Context, req model.LoginRequest) (model.Session, error) {
	if f.err != nil {
		return model.Session{}, f.err
	}
	return f.session, nil
}

// fakeTasks mirrors the TaskService contract, including the fail-open,
// newest-first list, and counts list calls to observe re-fetches.
type fakeTasks struct {
	todos     []model.Todo
	nextID    int64
	listCalls int
	createErr error
}

func newFakeTasks() *fakeTasks {
	return &fakeTasks{nextID: 1}
}

func (f *fakeTasks) List(_ context.Context, ownerID string) []model.Todo {
	f.listCalls++
	out := []model.Todo{}
	for i := len(f.todos) - 1; i >= 0; i-- {
		if f.todos[i].OwnerID == ownerID {
			out = append(out, f.todos[i])
		}
	}
	return out
}

func (f *fakeTasks) Create(_ context.Context, ownerID, text, deadline string) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.todos = append(f.todos, model.Todo{ID: f.nextID, OwnerID: ownerID, Text: text, Deadline: deadline})
	f.nextID++
	return nil
}

func (f *fakeTasks) Toggle(_ context.Context, id int64, completed bool) error {
	for i := range f.todos {
		if f.todos[i].ID == id {
			f.todos[i].Completed = completed
		}
	}
	return nil
}

func (f *fakeTasks) Delete(_ context.Context, id int64) error {
	for i := range f.todos {
		if f.todos[i].ID == id {
			f.todos = append(f.todos[:i], f.todos[i+1:]...)
			return nil
		}
	}
	return nil
}

func alice() model.Session {
	return model.Session{UserID: "alice", Nickname: "Alice", Purpose: "grow"}
}

func TestLoginLoadsTaskList(t *testing.T) {
	tasks := newFakeTasks()
	require.NoError(t, tasks.Create(context.Background(), "alice", "existing", ""))
	m := NewManager(&fakeAuth{session: alice()}, tasks)

	sid, err := m.Login(context.Background(), "alice", "pw123")
	require.NoError(t, err)
	require.NotEmpty(t, sid)

	st := m.Get(sid)
	require.NotNil(t, st.User)
	assert.Equal(t, "Alice", st.User.Nickname)
	require.Len(t, st.Todos, 1)
	assert.Equal(t, "existing", st.Todos[0].Text)
}

func TestLoginFailureCreatesNoSession(t *testing.T) {
	m := NewManager(&fakeAuth{err: service.ErrPasswordMismatch}, newFakeTasks())

	sid, err := m.Login(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, service.ErrPasswordMismatch)
	assert.Empty(t, sid)
}

func TestGetUnknownSessionIsLoggedOut(t *testing.T) {
	m := NewManager(&fakeAuth{session: alice()}, newFakeTasks())

	st := m.Get("no-such-session")
	assert.Nil(t, st.User)
	assert.Empty(t, st.Todos)
}

func TestAddTaskRefetchesList(t *testing.T) {
	tasks := newFakeTasks()
	m := NewManager(&fakeAuth{session: alice()}, tasks)

	sid, err := m.Login(context.Background(), "alice", "pw123")
	require.NoError(t, err)
	fetchesAfterLogin := tasks.listCalls

	require.NoError(t, m.AddTask(context.Background(), sid, "write spec", "2025-01-01"))

	assert.Equal(t, fetchesAfterLogin+1, tasks.listCalls, "every mutation must re-fetch the full list")
	st := m.Get(sid)
	require.Len(t, st.Todos, 1)
	assert.Equal(t, "write spec", st.Todos[0].Text)
	assert.False(t, st.Loading)
	assert.Empty(t, st.DraftText, "drafts are cleared after a successful add")
	assert.Empty(t, st.DraftDeadline)
}

func TestAddTaskFailureKeepsDrafts(t *testing.T) {
	tasks := newFakeTasks()
	tasks.createErr = errors.New("connection refused")
	m := NewManager(&fakeAuth{session: alice()}, tasks)

	sid, err := m.Login(context.Background(), "alice", "pw123")
	require.NoError(t, err)

	err = m.AddTask(context.Background(), sid, "write spec", "2025-01-01")
	require.Error(t, err)

	st := m.Get(sid)
	assert.Equal(t, "write spec", st.DraftText)
	assert.Equal(t, "2025-01-01", st.DraftDeadline)
}

func TestMutationsRequireLogin(t *testing.T) {
	m := NewManager(&fakeAuth{session: alice()}, newFakeTasks())
	ctx := context.Background()

	assert.ErrorIs(t, m.AddTask(ctx, "bogus", "x", ""), ErrNotLoggedIn)
	assert.ErrorIs(t, m.ToggleTask(ctx, "bogus", 1, true), ErrNotLoggedIn)
	assert.ErrorIs(t, m.RemoveTask(ctx, "bogus", 1), ErrNotLoggedIn)
	assert.ErrorIs(t, m.Refresh(ctx, "bogus"), ErrNotLoggedIn)
}

func TestToggleAndRemoveRoundTrip(t *testing.T) {
	tasks := newFakeTasks()
	m := NewManager(&fakeAuth{session: alice()}, tasks)
	ctx := context.Background()

	sid, err := m.Login(ctx, "alice", "pw123")
	require.NoError(t, err)

	require.NoError(t, m.AddTask(ctx, sid, "task", ""))
	id := m.Get(sid).Todos[0].ID

	require.NoError(t, m.ToggleTask(ctx, sid, id, true))
	assert.True(t, m.Get(sid).Todos[0].Completed)

	require.NoError(t, m.ToggleTask(ctx, sid, id, false))
	assert.False(t, m.Get(sid).Todos[0].Completed)

	require.NoError(t, m.RemoveTask(ctx, sid, id))
	assert.Empty(t, m.Get(sid).Todos)
}

func TestLogoutDiscardsState(t *testing.T) {
	tasks := newFakeTasks()
	m := NewManager(&fakeAuth{session: alice()}, tasks)

	sid, err := m.Login(context.Background(), "alice", "pw123")
	require.NoError(t, err)

	m.Logout(sid)

	st := m.Get(sid)
	assert.Nil(t, st.User)
	assert.Empty(t, st.Todos)
}

func TestSweepDropsIdleSessions(t *testing.T) {
	m := NewManager(&fakeAuth{session: alice()}, newFakeTasks())

	sid, err := m.Login(context.Background(), "alice", "pw123")
	require.NoError(t, err)

	m.sweep(time.Now().Add(sessionTTL + time.Minute))

	assert.Nil(t, m.Get(sid).User)
}
