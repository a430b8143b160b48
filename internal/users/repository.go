package users

import (
	"context"
	"sync"
	"time"
)

// starterCredits is the consultation allowance granted to new accounts.
const starterCredits = 10

// Repository defines the interface for user storage
type Repository interface {
	// Ensure returns the existing user for the email or creates one with
	// the starter credit allowance.
	Ensure(ctx context.Context, req *EnsureUserRequest) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// InMemoryRepository is a stub implementation of Repository using in-memory storage
type InMemoryRepository struct {
	mu     sync.Mutex
	users  map[string]*User
	nextID int
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		users:  make(map[string]*User),
		nextID: 1,
	}
}

// Ensure returns the user for the email, creating it on first sight
func (r *InMemoryRepository) Ensure(ctx context.Context, req *EnsureUserRequest) (*User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if user, ok := r.users[req.Email]; ok {
		return user, nil
	}

	user := &User{
		ID:        r.nextID,
		Name:      req.Name,
		Email:     req.Email,
		Credits:   starterCredits,
		CreatedOn: time.Now().UTC(),
	}
	r.nextID++
	r.users[req.Email] = user
	return user, nil
}

// GetByEmail retrieves a user by email
func (r *InMemoryRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}
