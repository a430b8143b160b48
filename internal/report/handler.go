package report

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/medvoice/medvoice-ai-platform/pkg/logging"
)

// Handler wires HTTP requests to the report pipeline.
type Handler struct {
	comparator  *Comparator
	synthesizer *Synthesizer
	logger      *logging.Logger
}

// NewHandler creates a report handler.
func NewHandler(comparator *Comparator, synthesizer *Synthesizer, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		comparator:  comparator,
		synthesizer: synthesizer,
		logger:      logger,
	}
}

// CompareRequest is the body of POST /api/reports/compare.
type CompareRequest struct {
	AIReport     StructuredReport `json:"aiReport"`
	DoctorReport string           `json:"doctorReport"`
}

// Compare handles POST /api/reports/compare.
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.comparator.Compare(r.Context(), req.AIReport, req.DoctorReport)
	if err != nil {
		if errors.Is(err, ErrDoctorTextTooShort) {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("comparison failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "comparison failed")
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

// SynthesizeRequest is the body of POST /api/reports/synthesize.
type SynthesizeRequest struct {
	Message           []TranscriptMessage `json:"message"`
	SessionDetails    *SessionDetails     `json:"sessionDetails"`
	SessionID         string              `json:"sessionId"`
	DoctorMedications []string            `json:"doctorMedications,omitempty"`
}

// SynthesizeResponse spreads the report alongside its metadata envelope.
type SynthesizeResponse struct {
	StructuredReport
	Meta Meta `json:"_meta"`
}

// Synthesize handles POST /api/reports/synthesize.
func (h *Handler) Synthesize(w http.ResponseWriter, r *http.Request) {
	var req SynthesizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Message) == 0 || req.SessionID == "" || req.SessionDetails == nil {
		h.writeError(w, http.StatusBadRequest, "missing required fields: message, sessionId, sessionDetails")
		return
	}

	rep, meta, err := h.synthesizer.Synthesize(r.Context(), req.Message, *req.SessionDetails, req.SessionID, req.DoctorMedications)
	if err != nil {
		h.logger.Error("synthesis failed", "error", err, "session_id", req.SessionID)
		h.writeError(w, http.StatusInternalServerError, synthesisErrorMessage(err))
		return
	}

	h.writeJSON(w, http.StatusOK, SynthesizeResponse{StructuredReport: *rep, Meta: *meta})
}

// synthesisErrorMessage maps terminal synthesis failures to caller-safe
// messages. Schema errors name the missing keys to aid debugging; provider
// errors stay generic so upstream detail never leaks.
func synthesisErrorMessage(err error) string {
	var schemaErr *SchemaError
	switch {
	case errors.As(err, &schemaErr):
		return schemaErr.Error()
	case errors.Is(err, ErrInvalidModelJSON):
		return "AI model produced invalid JSON"
	case errors.Is(err, ErrPersistReport):
		return "failed to persist report"
	default:
		return "report synthesis failed"
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
