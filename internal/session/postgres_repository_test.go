package session

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
)

func newMockRepo(t *testing.T) (*PostgresRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	return NewPostgresRepository(mock), mock
}

func TestPostgresCreate(t *testing.T) {
	repo, mock := newMockRepo(t)
	createdOn := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO sessions").
		WithArgs(pgxmock.AnyArg(), "cough for two weeks", json.RawMessage(`{"id": 1}`), "jane@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"created_on"}).AddRow(createdOn))

	sess, err := repo.Create(context.Background(), &CreateSessionRequest{
		CreatedBy:      "jane@example.com",
		Notes:          "cough for two weeks",
		SelectedDoctor: json.RawMessage(`{"id": 1}`),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.SessionID == "" {
		t.Error("expected session ID to be generated")
	}
	if !sess.CreatedOn.Equal(createdOn) {
		t.Errorf("CreatedOn = %v, want %v", sess.CreatedOn, createdOn)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresCreate_InvalidRequest(t *testing.T) {
	repo, mock := newMockRepo(t)

	_, err := repo.Create(context.Background(), &CreateSessionRequest{CreatedBy: "jane@example.com"})
	if err != ErrMissingNotes {
		t.Fatalf("expected ErrMissingNotes, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("validation failures must not touch the database: %v", err)
	}
}

func TestPostgresGetBySessionID(t *testing.T) {
	repo, mock := newMockRepo(t)
	createdOn := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)

	rows := pgxmock.NewRows([]string{
		"session_id", "notes", "conversation", "selected_doctor", "report", "created_by", "created_on",
	}).AddRow(
		"sess-1", "cough", json.RawMessage(`[]`), json.RawMessage(`{}`), json.RawMessage(nil), "jane@example.com", createdOn,
	)
	mock.ExpectQuery("SELECT session_id, notes, conversation, selected_doctor, report, created_by, created_on").
		WithArgs("sess-1", "jane@example.com").
		WillReturnRows(rows)

	sess, err := repo.GetBySessionID(context.Background(), "jane@example.com", "sess-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.SessionID != "sess-1" || sess.Notes != "cough" {
		t.Errorf("unexpected session: %+v", sess)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresGetBySessionID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT session_id").
		WithArgs("missing", "jane@example.com").
		WillReturnRows(pgxmock.NewRows([]string{
			"session_id", "notes", "conversation", "selected_doctor", "report", "created_by", "created_on",
		}))

	_, err := repo.GetBySessionID(context.Background(), "jane@example.com", "missing")
	if err != ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestPostgresUpdateReport(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE sessions").
		WithArgs("sess-1", json.RawMessage(`{"summary": "done"}`), json.RawMessage(`[]`)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.UpdateReport(context.Background(), "sess-1",
		json.RawMessage(`{"summary": "done"}`), json.RawMessage(`[]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresUpdateReport_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE sessions").
		WithArgs("missing", json.RawMessage(`{}`), json.RawMessage(`[]`)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.UpdateReport(context.Background(), "missing", json.RawMessage(`{}`), json.RawMessage(`[]`))
	if err != ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestPostgresListByUser(t *testing.T) {
	repo, mock := newMockRepo(t)
	createdOn := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)

	rows := pgxmock.NewRows([]string{
		"session_id", "notes", "conversation", "selected_doctor", "report", "created_by", "created_on",
	}).
		AddRow("sess-2", "follow-up", json.RawMessage(`[]`), json.RawMessage(`{}`), json.RawMessage(nil), "jane@example.com", createdOn.Add(time.Hour)).
		AddRow("sess-1", "cough", json.RawMessage(`[]`), json.RawMessage(`{}`), json.RawMessage(nil), "jane@example.com", createdOn)
	mock.ExpectQuery("SELECT session_id, notes, conversation, selected_doctor, report, created_by, created_on").
		WithArgs("jane@example.com").
		WillReturnRows(rows)

	sessions, err := repo.ListByUser(context.Background(), "jane@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].SessionID != "sess-2" {
		t.Errorf("expected newest first, got %s", sessions[0].SessionID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
