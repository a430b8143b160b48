package doctors

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/medvoice/medvoice-ai-platform/pkg/logging"
)

// Handler handles HTTP requests for the specialist catalog
type Handler struct {
	suggester *Suggester
	logger    *logging.Logger
}

// NewHandler creates a new doctors handler
func NewHandler(suggester *Suggester, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		suggester: suggester,
		logger:    logger,
	}
}

// ListDoctors handles GET /api/doctors requests
func (h *Handler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Catalog())
}

// SuggestRequest is the body of POST /api/doctors/suggest.
type SuggestRequest struct {
	Notes string `json:"notes"`
}

// SuggestDoctors handles POST /api/doctors/suggest requests
func (h *Handler) SuggestDoctors(w http.ResponseWriter, r *http.Request) {
	var req SuggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Notes) == "" {
		http.Error(w, "notes are required", http.StatusBadRequest)
		return
	}

	suggested, err := h.suggester.Suggest(r.Context(), req.Notes)
	if err != nil {
		h.logger.Error("failed to suggest doctors", "error", err)
		http.Error(w, "failed to suggest doctors", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(suggested)
}
