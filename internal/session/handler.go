package session

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/medvoice/medvoice-ai-platform/internal/http/middleware"
	"github.com/medvoice/medvoice-ai-platform/internal/report"
	"github.com/medvoice/medvoice-ai-platform/pkg/logging"
)

// Handler handles HTTP requests for consultation sessions
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a new session handler
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

// CreateSession handles POST /api/sessions requests
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	email := middleware.UserEmailFromContext(r.Context())
	if email == "" {
		http.Error(w, "missing user context", http.StatusUnauthorized)
		return
	}
	req.CreatedBy = email

	sess, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create session", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.logger.Info("session created", "session_id", sess.SessionID, "created_by", sess.CreatedBy)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(sess)
}

// GetSessions handles GET /api/sessions?sessionId={id|all} requests. "all"
// returns every session for the authenticated user, newest first.
func (h *Handler) GetSessions(w http.ResponseWriter, r *http.Request) {
	email := middleware.UserEmailFromContext(r.Context())
	if email == "" {
		http.Error(w, "missing user context", http.StatusUnauthorized)
		return
	}

	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		http.Error(w, "missing sessionId query parameter", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if sessionID == "all" {
		sessions, err := h.repo.ListByUser(r.Context(), email)
		if err != nil {
			h.logger.Error("failed to list sessions", "error", err, "created_by", email)
			http.Error(w, "failed to list sessions", http.StatusInternalServerError)
			return
		}
		if sessions == nil {
			sessions = []*Session{}
		}
		json.NewEncoder(w).Encode(sessions)
		return
	}

	sess, err := h.repo.GetBySessionID(r.Context(), email, sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to get session", "error", err, "session_id", sessionID)
		http.Error(w, "failed to get session", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(sess)
}

// DownloadReportPDF handles GET /api/sessions/{sessionID}/report.pdf requests
func (h *Handler) DownloadReportPDF(w http.ResponseWriter, r *http.Request) {
	email := middleware.UserEmailFromContext(r.Context())
	if email == "" {
		http.Error(w, "missing user context", http.StatusUnauthorized)
		return
	}

	sessionID := chi.URLParam(r, "sessionID")
	sess, err := h.repo.GetBySessionID(r.Context(), email, sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to get session", "error", err, "session_id", sessionID)
		http.Error(w, "failed to get session", http.StatusInternalServerError)
		return
	}
	if len(sess.Report) == 0 {
		http.Error(w, "session has no report yet", http.StatusNotFound)
		return
	}

	var rep report.StructuredReport
	if err := json.Unmarshal(sess.Report, &rep); err != nil {
		h.logger.Error("stored report is corrupt", "error", err, "session_id", sessionID)
		http.Error(w, "stored report is corrupt", http.StatusInternalServerError)
		return
	}

	pdf, err := report.RenderPDF(&rep)
	if err != nil {
		h.logger.Error("failed to render report PDF", "error", err, "session_id", sessionID)
		http.Error(w, "failed to render report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="medical-report-`+sessionID+`.pdf"`)
	w.Write(pdf)
}
