package session

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/medvoice/medvoice-ai-platform/internal/http/middleware"
	"github.com/medvoice/medvoice-ai-platform/internal/report"
	"github.com/medvoice/medvoice-ai-platform/pkg/logging"
)

func authedRequest(method, target string, body []byte, email string) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if email != "" {
		ctx := middleware.WithUserClaims(req.Context(), middleware.UserClaims{Email: email})
		req = req.WithContext(ctx)
	}
	return req
}

func TestCreateSession_Success(t *testing.T) {
	repo := NewInMemoryRepository()
	handler := NewHandler(repo, logging.Default())

	body, _ := json.Marshal(CreateSessionRequest{
		Notes:          "Persistent dry cough for two weeks",
		SelectedDoctor: json.RawMessage(`{"id": 2, "specialist": "General Physician"}`),
	})
	req := authedRequest(http.MethodPost, "/api/sessions", body, "jane@example.com")
	w := httptest.NewRecorder()

	handler.CreateSession(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, w.Code)
	}

	var sess Session
	if err := json.NewDecoder(w.Body).Decode(&sess); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if sess.SessionID == "" {
		t.Error("expected session ID to be set")
	}
	if sess.CreatedBy != "jane@example.com" {
		t.Errorf("expected createdBy from auth context, got %s", sess.CreatedBy)
	}
	if sess.CreatedOn.IsZero() {
		t.Error("expected CreatedOn to be set")
	}
}

func TestCreateSession_Unauthenticated(t *testing.T) {
	handler := NewHandler(NewInMemoryRepository(), logging.Default())

	body, _ := json.Marshal(CreateSessionRequest{
		Notes:          "cough",
		SelectedDoctor: json.RawMessage(`{}`),
	})
	req := authedRequest(http.MethodPost, "/api/sessions", body, "")
	w := httptest.NewRecorder()

	handler.CreateSession(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestCreateSession_InvalidRequest(t *testing.T) {
	handler := NewHandler(NewInMemoryRepository(), logging.Default())

	body, _ := json.Marshal(CreateSessionRequest{Notes: ""})
	req := authedRequest(http.MethodPost, "/api/sessions", body, "jane@example.com")
	w := httptest.NewRecorder()

	handler.CreateSession(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestCreateSession_InvalidJSON(t *testing.T) {
	handler := NewHandler(NewInMemoryRepository(), logging.Default())

	req := authedRequest(http.MethodPost, "/api/sessions", []byte("{"), "jane@example.com")
	w := httptest.NewRecorder()

	handler.CreateSession(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestGetSessions_MissingParam(t *testing.T) {
	handler := NewHandler(NewInMemoryRepository(), logging.Default())

	req := authedRequest(http.MethodGet, "/api/sessions", nil, "jane@example.com")
	w := httptest.NewRecorder()

	handler.GetSessions(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestGetSessions_All(t *testing.T) {
	repo := NewInMemoryRepository()
	handler := NewHandler(repo, logging.Default())
	ctx := context.Background()

	for _, notes := range []string{"first visit", "second visit"} {
		if _, err := repo.Create(ctx, &CreateSessionRequest{
			CreatedBy:      "jane@example.com",
			Notes:          notes,
			SelectedDoctor: json.RawMessage(`{}`),
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	// Another user's session must not leak into the listing.
	if _, err := repo.Create(ctx, &CreateSessionRequest{
		CreatedBy:      "other@example.com",
		Notes:          "unrelated",
		SelectedDoctor: json.RawMessage(`{}`),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := authedRequest(http.MethodGet, "/api/sessions?sessionId=all", nil, "jane@example.com")
	w := httptest.NewRecorder()

	handler.GetSessions(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var sessions []*Session
	if err := json.NewDecoder(w.Body).Decode(&sessions); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	for _, sess := range sessions {
		if sess.CreatedBy != "jane@example.com" {
			t.Errorf("unexpected session owner %s", sess.CreatedBy)
		}
	}
}

func TestGetSessions_ByID(t *testing.T) {
	repo := NewInMemoryRepository()
	handler := NewHandler(repo, logging.Default())

	created, err := repo.Create(context.Background(), &CreateSessionRequest{
		CreatedBy:      "jane@example.com",
		Notes:          "headache",
		SelectedDoctor: json.RawMessage(`{}`),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := authedRequest(http.MethodGet, "/api/sessions?sessionId="+created.SessionID, nil, "jane@example.com")
	w := httptest.NewRecorder()

	handler.GetSessions(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var sess Session
	if err := json.NewDecoder(w.Body).Decode(&sess); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if sess.SessionID != created.SessionID {
		t.Errorf("expected session %s, got %s", created.SessionID, sess.SessionID)
	}
}

func TestGetSessions_NotFound(t *testing.T) {
	handler := NewHandler(NewInMemoryRepository(), logging.Default())

	req := authedRequest(http.MethodGet, "/api/sessions?sessionId=nonexistent", nil, "jane@example.com")
	w := httptest.NewRecorder()

	handler.GetSessions(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestGetSessions_OtherUsersSessionIsNotFound(t *testing.T) {
	repo := NewInMemoryRepository()
	handler := NewHandler(repo, logging.Default())

	created, err := repo.Create(context.Background(), &CreateSessionRequest{
		CreatedBy:      "other@example.com",
		Notes:          "private",
		SelectedDoctor: json.RawMessage(`{}`),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := authedRequest(http.MethodGet, "/api/sessions?sessionId="+created.SessionID, nil, "jane@example.com")
	w := httptest.NewRecorder()

	handler.GetSessions(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func pdfRequest(t *testing.T, handler *Handler, sessionID, email string) *httptest.ResponseRecorder {
	t.Helper()
	router := chi.NewRouter()
	router.Get("/api/sessions/{sessionID}/report.pdf", handler.DownloadReportPDF)

	req := authedRequest(http.MethodGet, "/api/sessions/"+sessionID+"/report.pdf", nil, email)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestDownloadReportPDF_Success(t *testing.T) {
	fontFound := false
	for _, path := range []string{
		"/usr/share/fonts/ttf-dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	} {
		if _, err := os.Stat(path); err == nil {
			fontFound = true
			break
		}
	}
	if !fontFound {
		t.Skip("DejaVuSans.ttf not installed")
	}

	repo := NewInMemoryRepository()
	handler := NewHandler(repo, logging.Default())
	ctx := context.Background()

	created, err := repo.Create(ctx, &CreateSessionRequest{
		CreatedBy:      "jane@example.com",
		Notes:          "cough",
		SelectedDoctor: json.RawMessage(`{}`),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rep := report.StructuredReport{
		SessionID:      created.SessionID,
		Agent:          "General Physician",
		User:           "Jane",
		Summary:        "Dry cough, no fever.",
		ChiefComplaint: "cough",
	}
	repJSON, _ := json.Marshal(rep)
	if err := repo.UpdateReport(ctx, created.SessionID, repJSON, json.RawMessage(`[]`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w := pdfRequest(t, handler, created.SessionID, "jane@example.com")

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Error("response body is not a PDF document")
	}
	if !strings.Contains(w.Header().Get("Content-Disposition"), created.SessionID) {
		t.Errorf("Content-Disposition = %q", w.Header().Get("Content-Disposition"))
	}
}

func TestDownloadReportPDF_NoReportYet(t *testing.T) {
	repo := NewInMemoryRepository()
	handler := NewHandler(repo, logging.Default())

	created, err := repo.Create(context.Background(), &CreateSessionRequest{
		CreatedBy:      "jane@example.com",
		Notes:          "cough",
		SelectedDoctor: json.RawMessage(`{}`),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w := pdfRequest(t, handler, created.SessionID, "jane@example.com")

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestRepository_UpdateReport(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, &CreateSessionRequest{
		CreatedBy:      "jane@example.com",
		Notes:          "cough",
		SelectedDoctor: json.RawMessage(`{}`),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reportJSON := json.RawMessage(`{"summary": "done"}`)
	conversation := json.RawMessage(`[{"role": "user", "text": "hi"}]`)
	if err := repo.UpdateReport(ctx, created.SessionID, reportJSON, conversation); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := repo.GetBySessionID(ctx, "jane@example.com", created.SessionID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(found.Report) != string(reportJSON) {
		t.Errorf("report = %s", found.Report)
	}
	if string(found.Conversation) != string(conversation) {
		t.Errorf("conversation = %s", found.Conversation)
	}
}

func TestRepository_UpdateReport_NotFound(t *testing.T) {
	repo := NewInMemoryRepository()
	err := repo.UpdateReport(context.Background(), "nonexistent", json.RawMessage(`{}`), json.RawMessage(`[]`))
	if err != ErrSessionNotFound {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}
