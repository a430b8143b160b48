package report

import (
	"errors"
	"fmt"
)

var (
	// ErrDoctorTextTooShort is returned when the doctor report is under the
	// minimum length for a meaningful comparison.
	ErrDoctorTextTooShort = errors.New("doctor text too short")

	// ErrInvalidModelJSON is returned when the model output cannot be parsed
	// as JSON even after the corrective retry.
	ErrInvalidModelJSON = errors.New("invalid JSON from model")

	// ErrPersistReport is returned when the storage collaborator fails to
	// record the synthesized report.
	ErrPersistReport = errors.New("failed to persist report")
)

// SchemaError reports which required report keys were missing or mistyped in
// the model output.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required fields: %v", e.Missing)
}
