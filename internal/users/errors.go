package users

import "errors"

var (
	// ErrMissingEmail is returned when the email is missing
	ErrMissingEmail = errors.New("email is required")

	// ErrUserNotFound is returned when a user is not found
	ErrUserNotFound = errors.New("user not found")
)
