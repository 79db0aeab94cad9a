package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/taskfolio/taskfolio-go/internal/model"
	"github.com/taskfolio/taskfolio-go/internal/service"
)

// TodoHandler handles HTTP requests for task CRUD. Toggle and delete carry no
// ownership check: any caller who knows an id can hit them, preserving the
// original trust model.
type TodoHandler struct {
	service *service.TodoService
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(svc *service.TodoService) *TodoHandler {
	return &TodoHandler{service: svc}
}

// HandleList handles GET /api/v1/todos/{owner_id} requests. The list fails
// open, so the response is always 200 with an array.
func (h *TodoHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "owner_id")
	if ownerID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid owner id"))
		return
	}

	writeJSON(w, http.StatusOK, h.service.List(r.Context(), ownerID))
}

// HandleCreate handles POST /api/v1/todos requests. No body is returned; the
// caller re-lists to observe the new row and its generated id.
func (h *TodoHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req model.CreateTodoRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.Create(r.Context(), req.OwnerID, req.Text, req.Deadline); err != nil {
		switch {
		case errors.Is(err, service.ErrOwnerRequired), errors.Is(err, service.ErrTextRequired):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// HandleToggle handles PATCH /api/v1/todos/{id} requests. A missing id is a
// no-op, not an error.
func (h *TodoHandler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	id, ok := todoID(w, r)
	if !ok {
		return
	}

	var req model.ToggleTodoRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.Toggle(r.Context(), id, req.Completed); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete handles DELETE /api/v1/todos/{id} requests. Deleting an
// already-deleted id is a no-op.
func (h *TodoHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := todoID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func todoID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid todo id"))
		return 0, false
	}
	return id, true
}
