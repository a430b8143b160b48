package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the repository uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores sessions in the relational database.
type PostgresRepository struct {
	pool DB
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool DB) *PostgresRepository {
	if pool == nil {
		panic("session: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// Create inserts a new row.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateSessionRequest) (*Session, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sessionID := uuid.New().String()
	query := `
		INSERT INTO sessions (session_id, notes, selected_doctor, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING created_on
	`
	var createdOn time.Time
	if err := r.pool.QueryRow(ctx, query,
		sessionID,
		req.Notes,
		req.SelectedDoctor,
		req.CreatedBy,
	).Scan(&createdOn); err != nil {
		return nil, fmt.Errorf("session: insert failed: %w", err)
	}

	return &Session{
		SessionID:      sessionID,
		Notes:          req.Notes,
		SelectedDoctor: req.SelectedDoctor,
		CreatedBy:      req.CreatedBy,
		CreatedOn:      createdOn,
	}, nil
}

// GetBySessionID fetches a session scoped to its owner.
func (r *PostgresRepository) GetBySessionID(ctx context.Context, createdBy, sessionID string) (*Session, error) {
	query := `
		SELECT session_id, notes, conversation, selected_doctor, report, created_by, created_on
		FROM sessions
		WHERE session_id = $1 AND created_by = $2
	`
	row := r.pool.QueryRow(ctx, query, sessionID, createdBy)
	sess, err := scanSession(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("session: select failed: %w", err)
	}
	return sess, nil
}

// ListByUser returns the user's sessions, newest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, createdBy string) ([]*Session, error) {
	query := `
		SELECT session_id, notes, conversation, selected_doctor, report, created_by, created_on
		FROM sessions
		WHERE created_by = $1
		ORDER BY created_on DESC
	`
	rows, err := r.pool.Query(ctx, query, createdBy)
	if err != nil {
		return nil, fmt.Errorf("session: list failed: %w", err)
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("session: scan failed: %w", err)
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("session: list failed: %w", err)
	}
	return sessions, nil
}

// UpdateReport attaches the synthesized report and final conversation.
func (r *PostgresRepository) UpdateReport(ctx context.Context, sessionID string, report, conversation json.RawMessage) error {
	query := `
		UPDATE sessions
		SET report = $2, conversation = $3
		WHERE session_id = $1
	`
	tag, err := r.pool.Exec(ctx, query, sessionID, report, conversation)
	if err != nil {
		return fmt.Errorf("session: update report failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func scanSession(row pgx.Row) (*Session, error) {
	var sess Session
	if err := row.Scan(
		&sess.SessionID,
		&sess.Notes,
		&sess.Conversation,
		&sess.SelectedDoctor,
		&sess.Report,
		&sess.CreatedBy,
		&sess.CreatedOn,
	); err != nil {
		return nil, err
	}
	return &sess, nil
}
