package session

import "errors"

var (
	// ErrMissingUser is returned when no authenticated user is attached
	ErrMissingUser = errors.New("user is required")

	// ErrMissingNotes is returned when the symptom notes are empty
	ErrMissingNotes = errors.New("notes are required")

	// ErrMissingDoctor is returned when no doctor was selected
	ErrMissingDoctor = errors.New("selected doctor is required")

	// ErrSessionNotFound is returned when a session is not found
	ErrSessionNotFound = errors.New("session not found")
)
