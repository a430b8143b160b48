package session

import (
	"encoding/json"
	"strings"
	"time"
)

// Session is one consultation: the doctor the user picked, the running
// conversation transcript, and eventually the synthesized report. Conversation,
// selected doctor, and report are stored as raw JSON documents.
type Session struct {
	SessionID      string          `json:"sessionId"`
	Notes          string          `json:"notes"`
	Conversation   json.RawMessage `json:"conversation,omitempty"`
	SelectedDoctor json.RawMessage `json:"selectedDoctor,omitempty"`
	Report         json.RawMessage `json:"report,omitempty"`
	CreatedBy      string          `json:"createdBy"`
	CreatedOn      time.Time       `json:"createdOn"`
}

// CreateSessionRequest is the request body for starting a consultation.
type CreateSessionRequest struct {
	CreatedBy      string          `json:"-"`
	Notes          string          `json:"notes"`
	SelectedDoctor json.RawMessage `json:"selectedDoctor"`
}

// Validate checks the create session request.
func (r *CreateSessionRequest) Validate() error {
	if strings.TrimSpace(r.CreatedBy) == "" {
		return ErrMissingUser
	}
	if strings.TrimSpace(r.Notes) == "" {
		return ErrMissingNotes
	}
	if len(r.SelectedDoctor) == 0 {
		return ErrMissingDoctor
	}
	return nil
}
