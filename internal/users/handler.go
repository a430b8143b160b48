package users

import (
	"encoding/json"
	"net/http"

	"github.com/medvoice/medvoice-ai-platform/internal/http/middleware"
	"github.com/medvoice/medvoice-ai-platform/pkg/logging"
)

// Handler handles HTTP requests for users
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a new users handler
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

// EnsureUser handles POST /api/users requests. Identity comes from the
// verified token, never from the body.
func (h *Handler) EnsureUser(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.UserClaimsFromContext(r.Context())
	if !ok || claims.Email == "" {
		http.Error(w, "missing user context", http.StatusUnauthorized)
		return
	}

	user, err := h.repo.Ensure(r.Context(), &EnsureUserRequest{
		Name:  claims.Name,
		Email: claims.Email,
	})
	if err != nil {
		h.logger.Error("failed to ensure user", "error", err, "email", claims.Email)
		http.Error(w, "failed to ensure user", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}
