// Package session holds the per-browser view state the front end renders
// from: the authenticated user, a cached copy of the task list, a loading
// flag and the input drafts. The store remains the source of truth — every
// mutation re-fetches the full list rather than patching the cache.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/taskfolio/taskfolio-go/internal/model"
)

var ErrNotLoggedIn = errors.New("not logged in")

// Authenticator is the login surface the manager needs.
type Authenticator interface {
	Login(ctx context.Context, req model.LoginRequest) (model.Session, error)
}

// TaskService is the task surface the manager needs. List carries no error
// by contract; it fails open to an empty slice.
type TaskService interface {
	List(ctx context.Context, ownerID string) []model.Todo
	Create(ctx context.Context, ownerID, text, deadline string) error
	Toggle(ctx context.Context, id int64, completed bool) error
	Delete(ctx context.Context, id int64) error
}

// State is a snapshot of one browser session's view state.
type State struct {
	User          *model.Session
	Todos         []model.Todo
	Loading       bool
	DraftText     string
	DraftDeadline string

	lastSeen time.Time
}

// Manager owns all live sessions, keyed by a random cookie id. Sessions live
// in server memory only and are lost on restart, matching the original
// page-memory lifetime; idle ones are swept after sessionTTL.
type Manager struct {
	auth  Authenticator
	tasks TaskService

	mu       sync.Mutex
	sessions map[string]*State
}

const (
	sessionTTL    = 30 * time.Minute
	sweepInterval = 5 * time.Minute
)

// NewManager creates a session manager and starts its idle-session sweeper.
func NewManager(auth Authenticator, tasks TaskService) *Manager {
	m := &Manager{
		auth:     auth,
		tasks:    tasks,
		sessions: make(map[string]*State),
	}
	go m.sweepLoop()
	return m
}

// Login authenticates the credentials and, on success, creates a fresh
// session preloaded with the user's task list. Returns the new session id.
func (m *Manager) Login(ctx context.Context, userID, password string) (string, error) {
	sess, err := m.auth.Login(ctx, model.LoginRequest{UserID: userID, Password: password})
	if err != nil {
		return "", err
	}

	todos := m.tasks.List(ctx, sess.UserID)

	sid, err := newSessionID()
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	m.sessions[sid] = &State{
		User:     &sess,
		Todos:    todos,
		lastSeen: time.Now(),
	}
	m.mu.Unlock()

	return sid, nil
}

// Logout discards the session. There is nothing to invalidate server-side
// beyond dropping the map entry.
func (m *Manager) Logout(sid string) {
	m.mu.Lock()
	delete(m.sessions, sid)
	m.mu.Unlock()
}

// Get returns a snapshot of the session's state, or the zero logged-out
// state when the id is unknown or expired.
func (m *Manager) Get(sid string) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.sessions[sid]
	if !ok {
		return State{}
	}
	st.lastSeen = time.Now()
	return *st
}

// AddTask creates a task for the session's user and re-fetches the list. The
// submitted text and deadline are kept as drafts while the call runs and only
// cleared once it succeeds, so a failed submit re-renders with them intact.
func (m *Manager) AddTask(ctx context.Context, sid, text, deadline string) error {
	st, owner, err := m.begin(sid)
	if err != nil {
		return err
	}

	m.mu.Lock()
	st.DraftText = text
	st.DraftDeadline = deadline
	m.mu.Unlock()

	createErr := m.tasks.Create(ctx, owner, text, deadline)
	m.finish(ctx, st, owner)

	if createErr != nil {
		return createErr
	}

	m.mu.Lock()
	st.DraftText = ""
	st.DraftDeadline = ""
	m.mu.Unlock()
	return nil
}

// ToggleTask flips a task's completed flag and re-fetches the list.
func (m *Manager) ToggleTask(ctx context.Context, sid string, id int64, completed bool) error {
	st, owner, err := m.begin(sid)
	if err != nil {
		return err
	}

	toggleErr := m.tasks.Toggle(ctx, id, completed)
	m.finish(ctx, st, owner)
	return toggleErr
}

// RemoveTask deletes a task and re-fetches the list.
func (m *Manager) RemoveTask(ctx context.Context, sid string, id int64) error {
	st, owner, err := m.begin(sid)
	if err != nil {
		return err
	}

	deleteErr := m.tasks.Delete(ctx, id)
	m.finish(ctx, st, owner)
	return deleteErr
}

// Refresh re-fetches the session's task list from the store.
func (m *Manager) Refresh(ctx context.Context, sid string) error {
	st, owner, err := m.begin(sid)
	if err != nil {
		return err
	}
	m.finish(ctx, st, owner)
	return nil
}

// begin resolves the session and marks it loading.
func (m *Manager) begin(sid string) (*State, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.sessions[sid]
	if !ok || st.User == nil {
		return nil, "", ErrNotLoggedIn
	}
	st.Loading = true
	st.lastSeen = time.Now()
	return st, st.User.UserID, nil
}

// finish unconditionally replaces the cached list with a full re-fetch and
// clears the loading flag. The cache is never patched locally.
func (m *Manager) finish(ctx context.Context, st *State, owner string) {
	todos := m.tasks.List(ctx, owner)

	m.mu.Lock()
	st.Todos = todos
	st.Loading = false
	m.mu.Unlock()
}

func (m *Manager) sweepLoop() {
	for {
		time.Sleep(sweepInterval)
		m.sweep(time.Now())
	}
}

// sweep drops sessions idle longer than sessionTTL.
func (m *Manager) sweep(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for sid, st := range m.sessions {
		if now.Sub(st.lastSeen) > sessionTTL {
			delete(m.sessions, sid)
		}
	}
}

func newSessionID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
