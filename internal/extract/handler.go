package extract

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/medvoice/medvoice-ai-platform/pkg/logging"
)

// DefaultMaxUploadBytes caps document uploads at 12 MiB.
const DefaultMaxUploadBytes = 12 << 20

// Handler handles HTTP requests for document text extraction
type Handler struct {
	extractor *Extractor
	maxBytes  int64
	logger    *logging.Logger
}

// NewHandler creates a new extract handler
func NewHandler(extractor *Extractor, maxBytes int64, logger *logging.Logger) *Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		extractor: extractor,
		maxBytes:  maxBytes,
		logger:    logger,
	}
}

// ExtractResponse is the body returned for a successful extraction.
type ExtractResponse struct {
	Text string `json:"text"`
}

// ExtractText handles POST /api/extract multipart requests. The uploaded
// document goes in the "file" form field.
func (h *Handler) ExtractText(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large") {
			http.Error(w, ErrFileTooLarge.Error(), http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "invalid multipart request", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "failed to read upload", http.StatusBadRequest)
		return
	}

	text, err := h.extractor.Extract(r.Context(), header.Filename, content)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnsupportedType):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrEmptyDocument):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			h.logger.Error("extraction failed", "error", err, "filename", header.Filename)
			http.Error(w, "extraction failed", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ExtractResponse{Text: text})
}
