package handler

import (
	"errors"
	"net/http"

	"github.com/taskfolio/taskfolio-go/internal/model"
	"github.com/taskfolio/taskfolio-go/internal/service"
)

// AuthHandler handles HTTP requests for registration and login.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// HandleRegister handles POST /api/v1/auth/register requests. The response
// body is a result object the front end displays directly.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.Register(r.Context(), req); err != nil {
		switch {
		case isRegistrationValidationError(err):
			writeJSON(w, http.StatusBadRequest, model.RegisterResponse{Error: err.Error()})
		case errors.Is(err, service.ErrDuplicateIdentity):
			writeJSON(w, http.StatusConflict, model.RegisterResponse{Error: err.Error()})
		default:
			writeJSON(w, http.StatusInternalServerError, model.RegisterResponse{Error: service.ErrCommunication.Error()})
		}
		return
	}

	writeJSON(w, http.StatusCreated, model.RegisterResponse{Success: true})
}

// HandleLogin handles POST /api/v1/auth/login requests. "user not found" and
// "incorrect password" stay distinct; everything else collapses to a generic
// communication error.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sess, err := h.service.Login(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrPasswordMismatch):
			writeJSON(w, http.StatusUnauthorized, model.LoginResponse{Error: err.Error()})
		default:
			writeJSON(w, http.StatusInternalServerError, model.LoginResponse{Error: service.ErrCommunication.Error()})
		}
		return
	}

	writeJSON(w, http.StatusOK, model.LoginResponse{Success: true, User: &sess})
}

func isRegistrationValidationError(err error) bool {
	return errors.Is(err, service.ErrUserIDRequired) ||
		errors.Is(err, service.ErrPasswordRequired) ||
		errors.Is(err, service.ErrNicknameRequired) ||
		errors.Is(err, service.ErrEmailRequired) ||
		errors.Is(err, service.ErrPurposeRequired)
}
