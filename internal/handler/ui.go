package handler

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/taskfolio/taskfolio-go/internal/model"
	"github.com/taskfolio/taskfolio-go/internal/service"
	"github.com/taskfolio/taskfolio-go/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

const sessionCookie = "taskfolio_session"

// UIHandler serves the form-driven single-page view. All state it renders
// from lives in the session manager; every form post redirects back to "/"
// after the mutation and re-fetch complete.
type UIHandler struct {
	sessions *session.Manager
	auth     *service.AuthService
}

// NewUIHandler creates a new UIHandler.
func NewUIHandler(sessions *session.Manager, auth *service.AuthService) *UIHandler {
	return &UIHandler{sessions: sessions, auth: auth}
}

type loginPage struct {
	DraftUserID string
	Error       string
}

type tasksPage struct {
	User          *model.Session
	Todos         []model.Todo
	Loading       bool
	DraftText     string
	DraftDeadline string
	Total         int
	Done          int
}

type registerPage struct {
	Draft model.RegisterRequest
	Error string
}

// HandleIndex handles GET / requests: the login form when logged out, the
// task list otherwise.
func (h *UIHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	st := h.sessions.Get(sessionID(r))
	if st.User == nil {
		h.render(w, "login.html", loginPage{})
		return
	}

	done := 0
	for _, t := range st.Todos {
		if t.Completed {
			done++
		}
	}

	h.render(w, "tasks.html", tasksPage{
		User:          st.User,
		Todos:         st.Todos,
		Loading:       st.Loading,
		DraftText:     st.DraftText,
		DraftDeadline: st.DraftDeadline,
		Total:         len(st.Todos),
		Done:          done,
	})
}

// HandleLoginForm handles POST /login requests. On failure the login form is
// re-rendered with the submitted user id and the error message; on success a
// session cookie is set and the browser is redirected to the task list.
func (h *UIHandler) HandleLoginForm(w http.ResponseWriter, r *http.Request) {
	userID := r.FormValue("user_id")
	password := r.FormValue("password")

	sid, err := h.sessions.Login(r.Context(), userID, password)
	if err != nil {
		h.render(w, "login.html", loginPage{DraftUserID: userID, Error: err.Error()})
		return
	}

	setSessionCookie(w, sid)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleLogout handles POST /logout requests.
func (h *UIHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Logout(sessionID(r))
	clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleRegisterPage handles GET /register requests.
func (h *UIHandler) HandleRegisterPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, "register.html", registerPage{})
}

// HandleRegisterForm handles POST /register requests. Registration does not
// log the user in; success lands on the login form.
func (h *UIHandler) HandleRegisterForm(w http.ResponseWriter, r *http.Request) {
	req := model.RegisterRequest{
		UserID:   r.FormValue("user_id"),
		Password: r.FormValue("password"),
		Nickname: r.FormValue("nickname"),
		Email:    r.FormValue("email"),
		Purpose:  r.FormValue("purpose"),
	}

	if err := h.auth.Register(r.Context(), req); err != nil {
		req.Password = ""
		h.render(w, "register.html", registerPage{Draft: req, Error: err.Error()})
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleAddTask handles POST /tasks requests.
func (h *UIHandler) HandleAddTask(w http.ResponseWriter, r *http.Request) {
	err := h.sessions.AddTask(r.Context(), sessionID(r), r.FormValue("text"), r.FormValue("deadline"))
	h.redirectAfterMutation(w, r, err)
}

// HandleToggleTask handles POST /tasks/{id}/toggle requests.
func (h *UIHandler) HandleToggleTask(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	completed := r.FormValue("completed") == "true"
	h.redirectAfterMutation(w, r, h.sessions.ToggleTask(r.Context(), sessionID(r), id, completed))
}

// HandleDeleteTask handles POST /tasks/{id}/delete requests.
func (h *UIHandler) HandleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.redirectAfterMutation(w, r, h.sessions.RemoveTask(r.Context(), sessionID(r), id))
}

// redirectAfterMutation sends the browser back to the task list. Mutation
// failures land on the same page, which re-renders from the re-fetched state
// and retained drafts.
func (h *UIHandler) redirectAfterMutation(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		slog.Warn("task mutation failed", "path", r.URL.Path, "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *UIHandler) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.ExecuteTemplate(w, name, data); err != nil {
		slog.Error("rendering template failed", "template", name, "error", err)
	}
}

func sessionID(r *http.Request) string {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

func setSessionCookie(w http.ResponseWriter, sid string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
