package session

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for session storage
type Repository interface {
	Create(ctx context.Context, req *CreateSessionRequest) (*Session, error)
	GetBySessionID(ctx context.Context, createdBy, sessionID string) (*Session, error)
	ListByUser(ctx context.Context, createdBy string) ([]*Session, error)
	UpdateReport(ctx context.Context, sessionID string, report, conversation json.RawMessage) error
}

// InMemoryRepository is a stub implementation of Repository using in-memory storage
type InMemoryRepository struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		sessions: make(map[string]*Session),
	}
}

// Create creates a new session in memory
func (r *InMemoryRepository) Create(ctx context.Context, req *CreateSessionRequest) (*Session, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sess := &Session{
		SessionID:      uuid.New().String(),
		Notes:          req.Notes,
		SelectedDoctor: req.SelectedDoctor,
		CreatedBy:      req.CreatedBy,
		CreatedOn:      time.Now().UTC(),
	}

	r.mu.Lock()
	r.sessions[sess.SessionID] = sess
	r.mu.Unlock()

	return sess, nil
}

// GetBySessionID retrieves a session scoped to its owner
func (r *InMemoryRepository) GetBySessionID(ctx context.Context, createdBy, sessionID string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sess, ok := r.sessions[sessionID]
	if !ok || sess.CreatedBy != createdBy {
		return nil, ErrSessionNotFound
	}

	return sess, nil
}

// ListByUser returns the user's sessions, newest first
func (r *InMemoryRepository) ListByUser(ctx context.Context, createdBy string) ([]*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Session
	for _, sess := range r.sessions {
		if sess.CreatedBy == createdBy {
			out = append(out, sess)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedOn.After(out[j].CreatedOn)
	})
	return out, nil
}

// UpdateReport attaches the synthesized report and final conversation to a
// session. Satisfies the report package's storage interface.
func (r *InMemoryRepository) UpdateReport(ctx context.Context, sessionID string, report, conversation json.RawMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	sess.Report = report
	sess.Conversation = conversation
	return nil
}
