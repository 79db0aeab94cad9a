package handler

import (
	"database/sql"
	"net/http"

	"github.com/taskfolio/taskfolio-go/internal/repository"
)

// SetupHandler exposes the idempotent schema initializer.
type SetupHandler struct {
	db *sql.DB
}

// NewSetupHandler creates a new SetupHandler.
func NewSetupHandler(db *sql.DB) *SetupHandler {
	return &SetupHandler{db: db}
}

// HandleSetup handles POST /api/v1/setup requests. The endpoint is
// deliberately unauthenticated, matching the original deployment where anyone
// who could reach the server could invoke table creation; the call being
// idempotent keeps repeated invocations harmless.
func (h *SetupHandler) HandleSetup(w http.ResponseWriter, r *http.Request) {
	if err := repository.EnsureSchema(r.Context(), h.db); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "schema setup failed",
			"details": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "schema ready"})
}
