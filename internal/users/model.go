package users

import (
	"strings"
	"time"
)

// User is an account known to the platform, keyed by email. Credits gate how
// many consultations the account can run.
type User struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Credits   int       `json:"credits"`
	CreatedOn time.Time `json:"createdOn"`
}

// EnsureUserRequest carries the identity taken from the verified token.
type EnsureUserRequest struct {
	Name  string `json:"-"`
	Email string `json:"-"`
}

// Validate checks the ensure user request.
func (r *EnsureUserRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return ErrMissingEmail
	}
	return nil
}
