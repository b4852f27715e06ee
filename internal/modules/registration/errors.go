package registration

import (
	"errors"
	"fmt"

	"recipebox/internal/domain"
)

var ErrRegistrationFailed = errors.New("registration failed")

// MsgRegistrationFailed is shown when the form was valid but the submit did
// not go through.
const MsgRegistrationFailed = "Registration failed. Please try again."

// ValidationError carries a message per invalid field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%d invalid field(s)", len(e.Fields))
}

func (e *ValidationError) Unwrap() error {
	return domain.ErrValidation
}
